package preview

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/hangxie/parquet-preview/dataset"
	"github.com/hangxie/parquet-preview/format"
)

const lineWidth = 80

var (
	headerLine  = strings.Repeat("=", lineWidth)
	sectionLine = strings.Repeat("-", lineWidth)
)

type report struct {
	Name       string
	Size       int64
	Data       *dataset.Dataset
	Rows       int
	MaxColumns int
	CellWidth  int
}

func (r report) String() string {
	buf := new(strings.Builder)
	r.writeHeader(buf)
	r.writeColumns(buf)
	r.writeSample(buf)
	return buf.String()
}

func (r report) writeHeader(buf *strings.Builder) {
	fmt.Fprintln(buf, headerLine)
	fmt.Fprintf(buf, "Parquet File: %s\n", r.Name)
	fmt.Fprintf(buf, "Size: %s\n", format.FormatSize(r.Size))
	fmt.Fprintln(buf, headerLine)
	fmt.Fprintln(buf)

	fmt.Fprintf(buf, "Shape: %s rows × %s columns\n",
		humanize.Comma(int64(r.Data.NumRows())),
		humanize.Comma(int64(r.Data.NumColumns())))
	fmt.Fprintln(buf)
}

func (r report) writeColumns(buf *strings.Builder) {
	fmt.Fprintln(buf, "Columns:")
	fmt.Fprintln(buf, sectionLine)
	for _, summary := range dataset.Summarize(r.Data) {
		fmt.Fprintf(buf, "  %-30.30s %-15s (nulls: %s (%.1f%%))\n",
			summary.Name, summary.Type, humanize.Comma(int64(summary.NullCount)), summary.NullPercent)
	}
	fmt.Fprintln(buf)
}

func (r report) writeSample(buf *strings.Builder) {
	fmt.Fprintf(buf, "Sample Data (first %d rows):\n", r.Rows)
	fmt.Fprintln(buf, sectionLine)

	if r.Data.NumColumns() > r.MaxColumns {
		fmt.Fprintf(buf, "(Showing first %d of %d columns)\n", r.MaxColumns, r.Data.NumColumns())
	}
	sample := r.Data.Head(r.Rows, r.MaxColumns)

	if sample.NumRows() == 0 {
		fmt.Fprintln(buf, "Empty DataFrame")
		fmt.Fprintf(buf, "Columns: [%s]\n", strings.Join(sample.ColumnNames(), ", "))
	} else {
		header := append([]string{""}, sample.ColumnNames()...)
		for i := range header {
			header[i] = format.TruncateCell(header[i], r.CellWidth)
		}
		rows := make([][]string, sample.NumRows())
		for i := range rows {
			cells := sample.Row(i)
			rows[i] = make([]string, len(cells)+1)
			rows[i][0] = strconv.Itoa(i)
			for j, cell := range cells {
				rows[i][j+1] = format.TruncateCell(cell.String(), r.CellWidth)
			}
		}
		format.RenderTable(buf, header, rows)
	}

	if remaining := r.Data.NumRows() - sample.NumRows(); remaining > 0 {
		fmt.Fprintf(buf, "\n... and %s more rows\n", humanize.Comma(int64(remaining)))
	}
}
