package schema

import (
	"context"
	"testing"
	"time"

	"github.com/hangxie/parquet-go/v2/parquet"
	"github.com/stretchr/testify/require"

	"github.com/hangxie/parquet-preview/internal/testutils"
	pio "github.com/hangxie/parquet-preview/io"
)

type inner struct {
	Foo string `parquet:"name=foo, type=BYTE_ARRAY, convertedtype=UTF8"`
}

type row struct {
	ID        int64   `parquet:"name=id, type=INT64"`
	Name      *string `parquet:"name=name, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	Flag      bool    `parquet:"name=Flag, type=BOOLEAN"`
	Millis    int64   `parquet:"name=millis, type=INT64, convertedtype=TIMESTAMP_MILLIS"`
	Micros    int64   `parquet:"name=micros, type=INT64, logicaltype=TIMESTAMP, logicaltype.isadjustedtoutc=true, logicaltype.unit=MICROS"`
	Nanos     int64   `parquet:"name=nanos, type=INT64, logicaltype=TIMESTAMP, logicaltype.isadjustedtoutc=false, logicaltype.unit=NANOS"`
	Date      int32   `parquet:"name=date, type=INT32, convertedtype=DATE"`
	Nested    *inner  `parquet:"name=nested, type=STRUCT, repetitiontype=OPTIONAL"`
	LastField float64 `parquet:"name=last_field, type=DOUBLE"`
}

func newTestTree(t *testing.T) *SchemaNode {
	t.Helper()
	path := testutils.WriteParquet(t, "schema.parquet", []row{{ID: 1}})
	location, err := pio.ParseLocation(path)
	require.NoError(t, err)
	pf, err := pio.OpenParquetFile(context.Background(), location, pio.ReadOption{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = pf.Close() })
	return NewSchemaTree(pf.Reader)
}

func TestNewSchemaTree(t *testing.T) {
	root := newTestTree(t)

	names := make([]string, len(root.Children))
	for i, child := range root.Children {
		names[i] = child.Name
	}
	require.Equal(t, []string{"id", "name", "Flag", "millis", "micros", "nanos", "date", "nested", "last_field"}, names)

	nested := root.Children[7]
	require.Len(t, nested.Children, 1)
	require.Equal(t, "foo", nested.Children[0].Name)
	require.Len(t, nested.Children[0].InNamePath, 3)
	require.Nil(t, nested.Children[0].Children)
}

func TestTypeName(t *testing.T) {
	root := newTestTree(t)
	byName := map[string]*SchemaNode{}
	for _, child := range root.Children {
		byName[child.Name] = child
	}

	require.Equal(t, "INT64", byName["id"].TypeName())
	require.Equal(t, "BOOLEAN", byName["Flag"].TypeName())
	require.Equal(t, "DOUBLE", byName["last_field"].TypeName())
	require.Equal(t, "INT64/TIMESTAMP", byName["micros"].TypeName())
	require.Equal(t, "STRUCT", byName["nested"].TypeName())
	require.Contains(t, byName["name"].TypeName(), "BYTE_ARRAY/")
}

func TestTimeUnit(t *testing.T) {
	root := newTestTree(t)
	expected := map[string]time.Duration{
		"id":     0,
		"name":   0,
		"millis": time.Millisecond,
		"micros": time.Microsecond,
		"nanos":  time.Nanosecond,
		"date":   24 * time.Hour,
		"nested": 0,
	}
	for _, child := range root.Children {
		unit, found := expected[child.Name]
		if !found {
			continue
		}
		require.Equal(t, unit, child.TimeUnit(), child.Name)
	}
}

func TestIsRequired(t *testing.T) {
	optional := parquet.FieldRepetitionType_OPTIONAL
	required := parquet.FieldRepetitionType_REQUIRED
	testCases := map[string]struct {
		node     SchemaNode
		expected bool
	}{
		"unset":    {SchemaNode{}, true},
		"required": {SchemaNode{SchemaElement: parquet.SchemaElement{RepetitionType: &required}}, true},
		"optional": {SchemaNode{SchemaElement: parquet.SchemaElement{RepetitionType: &optional}}, false},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			require.Equal(t, tc.expected, tc.node.IsRequired())
		})
	}
}

func TestTimeUnitDuration(t *testing.T) {
	require.Equal(t, time.Duration(0), timeUnitDuration(nil))
	require.Equal(t, time.Millisecond, timeUnitDuration(&parquet.TimeUnit{MILLIS: &parquet.MilliSeconds{}}))
	require.Equal(t, time.Microsecond, timeUnitDuration(&parquet.TimeUnit{MICROS: &parquet.MicroSeconds{}}))
	require.Equal(t, time.Nanosecond, timeUnitDuration(&parquet.TimeUnit{NANOS: &parquet.NanoSeconds{}}))
}
