// Package dataset holds a Parquet file decoded into memory as named columns of
// nullable, typed cells.
package dataset

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Kind is the declared element type of a column.
type Kind int

const (
	KindOther Kind = iota
	KindInteger
	KindFloat
	KindBoolean
	KindText
	KindTimestamp
)

var kindNames = map[Kind]string{
	KindOther:     "other",
	KindInteger:   "integer",
	KindFloat:     "floating-point",
	KindBoolean:   "boolean",
	KindText:      "text",
	KindTimestamp: "timestamp",
}

func (k Kind) String() string {
	if name, found := kindNames[k]; found {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

const timestampLayout = "2006-01-02 15:04:05.999999999"

// Value is a tagged variant, only the field matching Kind is meaningful.
type Value struct {
	Kind  Kind
	Int   int64
	Float float64
	Bool  bool
	Text  string
	Time  time.Time
	Raw   any
}

func (v Value) String() string {
	switch v.Kind {
	case KindInteger:
		return strconv.FormatInt(v.Int, 10)
	case KindFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case KindBoolean:
		return strconv.FormatBool(v.Bool)
	case KindText:
		return v.Text
	case KindTimestamp:
		return v.Time.UTC().Format(timestampLayout)
	}

	switch raw := v.Raw.(type) {
	case nil:
		return ""
	case string:
		return raw
	case map[string]any, []any:
		if buf, err := json.Marshal(raw); err == nil {
			return string(buf)
		}
	}
	return fmt.Sprint(v.Raw)
}

// Cell is an optional Value, the zero Cell is null.
type Cell struct {
	Value Value
	Valid bool
}

// Null returns a null cell.
func Null() Cell {
	return Cell{}
}

// Some wraps v into a non-null cell.
func Some(v Value) Cell {
	return Cell{Value: v, Valid: true}
}

func (c Cell) IsNull() bool {
	return !c.Valid
}

func (c Cell) String() string {
	if !c.Valid {
		return "null"
	}
	return c.Value.String()
}

// Column is a named sequence of cells sharing one declared Kind.
type Column struct {
	Name  string
	Kind  Kind
	Cells []Cell
}

// NullCount returns number of null cells.
func (c Column) NullCount() int {
	count := 0
	for _, cell := range c.Cells {
		if cell.IsNull() {
			count++
		}
	}
	return count
}

// Dataset is an immutable set of columns with the same length.
type Dataset struct {
	columns []Column
	numRows int
}

// New builds a dataset, all columns need to have the same number of cells.
func New(columns []Column) (*Dataset, error) {
	numRows := 0
	for i, column := range columns {
		if i == 0 {
			numRows = len(column.Cells)
			continue
		}
		if len(column.Cells) != numRows {
			return nil, fmt.Errorf("column [%s] has %d rows, expected %d", column.Name, len(column.Cells), numRows)
		}
	}
	return &Dataset{columns: columns, numRows: numRows}, nil
}

func (d *Dataset) NumRows() int {
	return d.numRows
}

func (d *Dataset) NumColumns() int {
	return len(d.columns)
}

// Columns returns columns in schema order, callers must not modify them.
func (d *Dataset) Columns() []Column {
	return d.columns
}

// ColumnNames returns names of all columns in schema order.
func (d *Dataset) ColumnNames() []string {
	names := make([]string, len(d.columns))
	for i, column := range d.columns {
		names[i] = column.Name
	}
	return names
}

// Head returns a view of the first numRows rows and numColumns columns,
// limits larger than the dataset are capped.
func (d *Dataset) Head(numRows, numColumns int) *Dataset {
	numRows = max(0, min(numRows, d.numRows))
	numColumns = max(0, min(numColumns, len(d.columns)))

	columns := make([]Column, numColumns)
	for i := range columns {
		columns[i] = Column{
			Name:  d.columns[i].Name,
			Kind:  d.columns[i].Kind,
			Cells: d.columns[i].Cells[:numRows],
		}
	}
	return &Dataset{columns: columns, numRows: numRows}
}

// Row returns cells of row index across all columns.
func (d *Dataset) Row(index int) []Cell {
	row := make([]Cell, len(d.columns))
	for i, column := range d.columns {
		row[i] = column.Cells[index]
	}
	return row
}
