package dates

import "time"

// DateOnly is the wire format for every date field the engine accepts.
const DateOnly = "2006-01-02"

// Midnight truncates t to UTC midnight. All stored dates are date-only;
// normalizing here keeps day arithmetic exact.
func Midnight(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of whole days from 'from' to 'to'.
// Negative when 'to' is earlier.
func DaysBetween(from, to time.Time) int {
	return int(Midnight(to).Sub(Midnight(from)).Hours() / 24)
}

// Abs returns the absolute value of n days.
func Abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
