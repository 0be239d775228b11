package clock

import "time"

// Clock supplies "now" in the application's civil timezone.
//
// Every attendance computation receives a Clock instead of calling
// time.Now directly, so tests can pin the instant and no code path
// mutates process-global timezone state.
type Clock interface {
	Now() time.Time
	Location() *time.Location
}

type systemClock struct {
	loc *time.Location
}

// System returns a Clock backed by the wall clock, reporting in loc.
func System(loc *time.Location) Clock {
	return &systemClock{loc: loc}
}

func (c *systemClock) Now() time.Time           { return time.Now().In(c.loc) }
func (c *systemClock) Location() *time.Location { return c.loc }

// Fixed is a Clock pinned to a single instant, for tests.
type Fixed struct {
	T time.Time
}

// FixedAt returns a Fixed clock set to t.
func FixedAt(t time.Time) *Fixed { return &Fixed{T: t} }

func (c *Fixed) Now() time.Time           { return c.T }
func (c *Fixed) Location() *time.Location { return c.T.Location() }

// Set moves the fixed clock to t.
func (c *Fixed) Set(t time.Time) { c.T = t }

// StartOfDay returns midnight of t's civil day, in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Today returns midnight of the clock's current civil day.
func Today(c Clock) time.Time {
	return StartOfDay(c.Now())
}

// ISOWeekday maps t's weekday to ISO numbering: Monday=1 .. Sunday=7.
func ISOWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}
