package timing

import (
	"fmt"
	"strings"
	"time"
)

// Segment widths of a formatted duration. A segment is either rendered or
// replaced by blanks of the same width, so every output of FormatDuration has the
// same total width. Report columns rely on this for alignment, which makes
// it a correctness requirement rather than cosmetics.
const (
	daysWidth    = 6  // "9999d "
	hoursWidth   = 4  // "23h "
	minutesWidth = 4  // "59m "
	secondsWidth = 10 // "59.999999s"

	// FormattedWidth is the total width of every non-abbreviated FormatDuration
	// result.
	FormattedWidth = daysWidth + hoursWidth + minutesWidth + secondsWidth
)

const day = 24 * time.Hour

// FormatDuration renders d as a fixed-width human-readable duration, decomposed
// into days, hours, minutes and fractional seconds with microsecond
// precision. Day, hour and minute segments appear only when non-zero;
// otherwise equal-width blank padding keeps the columns aligned. Seconds
// are always rendered. When abbreviated is true the leading padding is
// stripped, leaving a compact left-anchored string.
//
// Negative inputs are clamped to zero; measurements are produced from two
// monotonic clock readings and can never be negative.
func FormatDuration(d time.Duration, abbreviated bool) string {
	if d < 0 {
		d = 0
	}

	// Drop sub-microsecond remainders: %9.6f would otherwise round a
	// value like 59.9999995s up to 60.000000s without carrying into
	// the minutes segment.
	d = d.Truncate(time.Microsecond)

	days := d / day
	d -= days * day

	hours := d / time.Hour
	d -= hours * time.Hour

	minutes := d / time.Minute
	d -= minutes * time.Minute

	seconds := float64(d) / float64(time.Second)

	var b strings.Builder

	if days > 0 {
		fmt.Fprintf(&b, "%4dd ", days)
	} else {
		b.WriteString(strings.Repeat(" ", daysWidth))
	}

	if hours > 0 {
		fmt.Fprintf(&b, "%2dh ", hours)
	} else {
		b.WriteString(strings.Repeat(" ", hoursWidth))
	}

	if minutes > 0 {
		fmt.Fprintf(&b, "%2dm ", minutes)
	} else {
		b.WriteString(strings.Repeat(" ", minutesWidth))
	}

	fmt.Fprintf(&b, "%9.6fs", seconds)

	s := b.String()
	if abbreviated {
		s = strings.TrimLeft(s, " ")
	}

	return s
}
