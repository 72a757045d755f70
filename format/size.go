package format

import "fmt"

var sizeUnits = []string{"B", "KB", "MB", "GB", "TB"}

// FormatSize returns size in bytes as a human readable string with one
// decimal, e.g. "1.5 KB". Sizes past TB are reported in PB.
func FormatSize(size int64) string {
	value := float64(size)
	for _, unit := range sizeUnits {
		if value < 1024 {
			return fmt.Sprintf("%.1f %s", value, unit)
		}
		value /= 1024
	}
	return fmt.Sprintf("%.1f PB", value)
}
