// Package period resolves a requested date range into the current reporting
// window and the length-matched window immediately preceding it.
package period

import (
	"time"

	"bilancio/internal/core"
)

// DefaultWindowDays is the span used when the caller provides no range.
const DefaultWindowDays = 30

// Windows holds the resolved current window and, when the current window
// spans more than one calendar day, the preceding window of equal length.
// Previous is nil for single-day windows: a zero-length previous window
// would silently mismatch, so it is suppressed outright.
type Windows struct {
	Current  core.Window
	Previous *core.Window
}

// Resolve turns an optional from/to pair into reporting windows.
// Defaults: to = now, from = to minus DefaultWindowDays. The result is a
// pure function of (from, to); now is consulted only to fill the defaults.
func Resolve(from, to *time.Time, now time.Time) (Windows, error) {
	end := now
	if to != nil {
		end = *to
	}
	start := end.AddDate(0, 0, -DefaultWindowDays)
	if from != nil {
		start = *from
	}

	current := core.Window{
		Start: core.StartOfDay(start),
		End:   core.EndOfDay(end),
	}
	if current.Start.After(current.End) {
		return Windows{}, core.ErrInvalidRange
	}

	w := Windows{Current: current}
	length := current.Days()
	if length == 0 {
		return w, nil
	}

	prevEnd := core.EndOfDay(current.Start.AddDate(0, 0, -1))
	prevStart := core.StartOfDay(prevEnd.AddDate(0, 0, -length))
	w.Previous = &core.Window{Start: prevStart, End: prevEnd}
	return w, nil
}
