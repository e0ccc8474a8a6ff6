package schedule

import "time"

// Clock abstracts "now" so the booking facade and tests can pin time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

// NewSystemClock returns a Clock backed by the wall clock (UTC).
func NewSystemClock() Clock {
	return systemClock{}
}

// LoadLocation resolves an IANA timezone name (e.g. "Asia/Taipei").
// An empty name resolves to UTC, matching what chat platforms send for
// users without a configured zone.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(name)
}

// DayStart returns midnight of t's calendar day in the given zone.
func DayStart(t time.Time, loc *time.Location) time.Time {
	year, month, day := t.In(loc).Date()
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}
