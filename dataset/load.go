package dataset

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/hangxie/parquet-go/v2/marshal"
	"github.com/sirupsen/logrus"

	pio "github.com/hangxie/parquet-preview/io"
	pschema "github.com/hangxie/parquet-preview/schema"
)

// LoadOption controls how a Parquet file is decoded.
type LoadOption struct {
	PageSize int
	Logger   logrus.FieldLogger
}

type columnBuilder struct {
	name  string
	kind  Kind
	unit  time.Duration
	cells []Cell
}

// Load reads every row of file into memory, each top level field becomes a
// column.
func Load(ctx context.Context, file *pio.ParquetFile, option LoadOption) (*Dataset, error) {
	logger := option.Logger
	if logger == nil {
		discard := logrus.New()
		discard.Out = io.Discard
		logger = discard
	}

	fileReader := file.Reader
	schemaRoot := pschema.NewSchemaTree(fileReader)
	numRows := fileReader.GetNumRows()

	builders := make([]*columnBuilder, len(schemaRoot.Children))
	for i, node := range schemaRoot.Children {
		builders[i] = &columnBuilder{
			name:  node.Name,
			kind:  KindOf(node),
			unit:  node.TimeUnit(),
			cells: make([]Cell, 0, numRows),
		}
		logger.WithFields(logrus.Fields{
			"column":   node.Name,
			"type":     node.TypeName(),
			"kind":     builders[i].kind.String(),
			"required": node.IsRequired(),
		}).Debug("column found")
	}

	transform := func(row any) (any, error) {
		return marshal.ConvertToJSONFriendly(row, fileReader.SchemaHandler)
	}
	sink := func(row any) error {
		values, ok := row.(map[string]any)
		if !ok {
			return fmt.Errorf("unexpected row type %T", row)
		}
		for _, builder := range builders {
			builder.cells = append(builder.cells, NewCell(values[builder.name], builder.kind, builder.unit))
		}
		return nil
	}

	started := time.Now()
	if err := pio.CollectRows(ctx, fileReader, file.URI, option.PageSize, transform, sink); err != nil {
		return nil, err
	}

	columns := make([]Column, len(builders))
	for i, builder := range builders {
		columns[i] = Column{
			Name:  builder.name,
			Kind:  builder.kind,
			Cells: builder.cells,
		}
	}
	dataset, err := New(columns)
	if err != nil {
		return nil, err
	}

	logger.WithFields(logrus.Fields{
		"uri":      file.URI,
		"rows":     dataset.NumRows(),
		"columns":  dataset.NumColumns(),
		"duration": time.Since(started).String(),
	}).Debug("file loaded")
	return dataset, nil
}
