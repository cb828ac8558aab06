package ui

import "fmt"

// ZeroElapsed is the stopwatch display after a reset.
const ZeroElapsed = "00:00:00"

// Stopwatch is elapsed whole seconds plus a running flag. timer identifies
// the live tick chain; ticks carrying any other id are stale and ignored.
type Stopwatch struct {
	Elapsed int
	Running bool
	timer   int
}

// Text formats the elapsed time as HH:MM:SS.
func (s Stopwatch) Text() string {
	return FormatElapsed(s.Elapsed)
}

// StartVisible reports whether the start control is shown.
func (s Stopwatch) StartVisible() bool { return !s.Running }

// StopVisible reports whether the stop control is shown.
func (s Stopwatch) StopVisible() bool { return s.Running }

// FormatElapsed renders total seconds as zero-padded hours:minutes:seconds.
func FormatElapsed(total int) string {
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, total%3600/60, total%60)
}
