package game

import "time"

// action distinguishes the two rate-limited message kinds.
type action int

const (
	actionDraw action = iota
	actionGuess
)

// actionLimiter counts draw and guess actions inside the current wall-clock
// second. Both counters reset together whenever the second advances. Actions
// over the ceiling are dropped silently; this is best-effort flow control,
// not accounting.
type actionLimiter struct {
	second int64
	draw   int
	guess  int
}

// allow registers one occurrence of a at time now and reports whether it
// fits under limit.
func (l *actionLimiter) allow(a action, now time.Time, limit int) bool {
	if s := now.Unix(); s != l.second {
		l.second = s
		l.draw = 0
		l.guess = 0
	}
	switch a {
	case actionDraw:
		l.draw++
		return l.draw <= limit
	default:
		l.guess++
		return l.guess <= limit
	}
}
