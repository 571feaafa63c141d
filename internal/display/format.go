// Package display provides the banner and human-readable formatting for
// summary output.
package display

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// FormatElapsed renders a duration as "H hours, M minutes, S seconds",
// matching the legacy scanners' summary line.
func FormatElapsed(d time.Duration) string {
	total := int(d.Seconds())
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	return fmt.Sprintf("%d hours, %d minutes, %d seconds", hours, minutes, seconds)
}

// FormatCount renders a file count with thousands separators.
func FormatCount(n int) string {
	return humanize.Comma(int64(n))
}

// FormatBytes renders a byte quantity in binary units (KiB, MiB, GiB).
func FormatBytes(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.IBytes(uint64(n))
}
