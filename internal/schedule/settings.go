package schedule

import (
	"fmt"
	"time"
)

// Pattern selects how an environment's bookable slots recur.
type Pattern string

const (
	PatternDaily  Pattern = "DAILY"
	PatternOneOff Pattern = "ONE_OFF"
	PatternCustom Pattern = "CUSTOM"
)

// Valid reports whether p is one of the known recurrence patterns.
func (p Pattern) Valid() bool {
	switch p {
	case PatternDaily, PatternOneOff, PatternCustom:
		return true
	}
	return false
}

// Settings holds the pattern-specific configuration for an environment.
// Only the fields relevant to the pattern are meaningful:
//   - DAILY:   DaysAhead
//   - ONE_OFF: Instant (UTC)
//   - CUSTOM:  DaysAhead and TimesOfDay ("HH:MM", declared order preserved)
type Settings struct {
	DaysAhead  int
	Instant    time.Time
	TimesOfDay []string
}

// FieldError tags a configuration failure to the form field that caused it,
// so the rendering layer can redisplay the form with inline errors.
type FieldError struct {
	Field  string
	Reason string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

const timeOfDayLayout = "15:04"

// ValidateSettings checks s against the requirements of pattern p.
// It returns one FieldError per problem and never mutates s; duplicate
// times-of-day are rejected, not deduplicated.
func ValidateSettings(p Pattern, s Settings, now time.Time) []FieldError {
	var errs []FieldError

	switch p {
	case PatternDaily:
		if s.DaysAhead < 1 {
			errs = append(errs, FieldError{Field: "days_ahead", Reason: "must be at least 1"})
		}

	case PatternOneOff:
		if s.Instant.IsZero() {
			errs = append(errs, FieldError{Field: "instant", Reason: "is required"})
		} else if !now.Before(s.Instant) {
			errs = append(errs, FieldError{Field: "instant", Reason: "cannot be in the past"})
		}

	case PatternCustom:
		if s.DaysAhead < 1 {
			errs = append(errs, FieldError{Field: "days_ahead", Reason: "must be at least 1"})
		}
		if len(s.TimesOfDay) == 0 {
			errs = append(errs, FieldError{Field: "times_of_day", Reason: "at least one time is required"})
		}
		seen := make(map[string]bool, len(s.TimesOfDay))
		for _, tod := range s.TimesOfDay {
			if _, err := time.Parse(timeOfDayLayout, tod); err != nil {
				errs = append(errs, FieldError{Field: "times_of_day", Reason: fmt.Sprintf("%q is not a valid HH:MM time", tod)})
				continue
			}
			if seen[tod] {
				errs = append(errs, FieldError{Field: "times_of_day", Reason: "duplicate times are not allowed"})
				continue
			}
			seen[tod] = true
		}

	default:
		errs = append(errs, FieldError{Field: "pattern", Reason: fmt.Sprintf("unknown pattern %q", string(p))})
	}

	return errs
}
