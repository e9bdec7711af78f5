package pricing

import "time"

// Peak windows, inclusive on both ends, evaluated in the instant's location.
const (
	morningPeakStartHour = 7
	morningPeakEndHour   = 9
	eveningPeakStartHour = 17
	eveningPeakEndHour   = 19
)

// IsPeakHour reports whether the instant falls in a peak pricing window:
// a weekday (Monday through Friday) morning 07:00-09:59 or evening
// 17:00-19:59 in the instant's own location. This policy is fixed; richer
// time-of-day tables are layered on by callers via SpecialConditions.
func IsPeakHour(t time.Time) bool {
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}

	hour := t.Hour()
	morning := hour >= morningPeakStartHour && hour <= morningPeakEndHour
	evening := hour >= eveningPeakStartHour && hour <= eveningPeakEndHour
	return morning || evening
}
