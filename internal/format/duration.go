package format

import (
	"fmt"
	"time"
)

// FormatExecutionDuration formats a wall-clock duration for progress lines
// and the dashboard header: milliseconds below one second, tenths of a
// second below one minute, whole seconds above.
func FormatExecutionDuration(d time.Duration) string {
	switch {
	case d < 0:
		return "0ms"
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	default:
		return d.Round(time.Second).String()
	}
}
