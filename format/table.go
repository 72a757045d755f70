package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
)

const ellipsis = "..."

var controlReplacer = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ")

// TruncateCell flattens s to a single line and cuts it to at most width runes,
// a cut string ends with "...".
func TruncateCell(s string, width int) string {
	s = controlReplacer.Replace(s)
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= len(ellipsis) {
		return string(runes[:width])
	}
	return string(runes[:width-len(ellipsis)]) + ellipsis
}

// RenderTable writes an aligned, borderless table. The first column is the
// row index and is left aligned, all others are right aligned. Lines carry no
// trailing spaces.
func RenderTable(w io.Writer, header []string, rows [][]string) {
	alignment := make([]int, len(header))
	for i := range alignment {
		alignment[i] = tablewriter.ALIGN_RIGHT
	}
	if len(alignment) != 0 {
		alignment[0] = tablewriter.ALIGN_LEFT
	}

	buf := new(strings.Builder)
	table := tablewriter.NewWriter(buf)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetColumnAlignment(alignment)
	table.SetHeaderAlignment(tablewriter.ALIGN_RIGHT)
	table.SetBorder(false)
	table.SetHeaderLine(false)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)
	table.AppendBulk(rows)
	table.Render()

	rendered := strings.TrimSuffix(buf.String(), "\n")
	if rendered == "" {
		return
	}
	for _, line := range strings.Split(rendered, "\n") {
		_, _ = fmt.Fprintln(w, strings.TrimRight(line, " "))
	}
}
