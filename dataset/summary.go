package dataset

// ColumnSummary is the per column statistics shown by preview.
type ColumnSummary struct {
	Name        string
	Type        string
	NullCount   int
	NullPercent float64
}

// Summarize computes one summary per column in schema order.
func Summarize(d *Dataset) []ColumnSummary {
	summaries := make([]ColumnSummary, d.NumColumns())
	for i, column := range d.Columns() {
		nullCount := column.NullCount()
		summaries[i] = ColumnSummary{
			Name:        column.Name,
			Type:        column.Kind.String(),
			NullCount:   nullCount,
			NullPercent: nullPercent(nullCount, d.NumRows()),
		}
	}
	return summaries
}

func nullPercent(nullCount, numRows int) float64 {
	if numRows == 0 {
		return 0
	}
	return float64(nullCount) / float64(numRows) * 100
}
