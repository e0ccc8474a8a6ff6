package schedule

import "time"

// Slot key layouts. Keys are the canonical storage form: the local calendar
// date for day-granularity slots, the UTC-normalized date-time for timed
// slots. Labels always render the same absolute instant in the caller's zone.
const (
	dayKeyLayout  = "2006-01-02"
	timeKeyLayout = "2006-01-02 15:04"

	dayLabelLayout  = "Mon, 2 January"
	timeLabelLayout = "Mon, 2 January 15:04"
)

// Slot is one bookable unit of time, identified by its canonical key and
// carrying a human label in the requesting user's zone.
type Slot struct {
	Key   string
	Label string
}

// Generate derives the ordered set of bookable slots for a recurrence
// pattern, as seen from loc at instant now. The output is deterministic:
// identical inputs yield identical slices. An expired one-off yields an
// empty result, not an error.
func Generate(p Pattern, s Settings, loc *time.Location, now time.Time) []Slot {
	switch p {
	case PatternDaily:
		return generateDaily(s, loc, now)
	case PatternOneOff:
		return generateOneOff(s, loc, now)
	case PatternCustom:
		return generateCustom(s, loc, now)
	}
	return nil
}

// ContainsKey reports whether key belongs to the given generation.
func ContainsKey(slots []Slot, key string) bool {
	for _, slot := range slots {
		if slot.Key == key {
			return true
		}
	}
	return false
}

func generateDaily(s Settings, loc *time.Location, now time.Time) []Slot {
	if s.DaysAhead < 1 {
		return nil
	}

	start := DayStart(now, loc)
	slots := make([]Slot, 0, s.DaysAhead)
	for i := 0; i < s.DaysAhead; i++ {
		day := start.AddDate(0, 0, i)
		slots = append(slots, Slot{
			Key:   day.Format(dayKeyLayout),
			Label: day.Format(dayLabelLayout),
		})
	}
	return slots
}

func generateOneOff(s Settings, loc *time.Location, now time.Time) []Slot {
	// now == Instant counts as expired: the slot is bookable only while
	// strictly in the future.
	if !now.Before(s.Instant) {
		return nil
	}
	return []Slot{{
		Key:   s.Instant.UTC().Format(timeKeyLayout),
		Label: s.Instant.In(loc).Format(timeLabelLayout),
	}}
}

func generateCustom(s Settings, loc *time.Location, now time.Time) []Slot {
	if s.DaysAhead < 1 || len(s.TimesOfDay) == 0 {
		return nil
	}

	start := DayStart(now, loc)
	slots := make([]Slot, 0, s.DaysAhead*len(s.TimesOfDay))
	for i := 0; i < s.DaysAhead; i++ {
		day := start.AddDate(0, 0, i)
		year, month, dayOfMonth := day.Date()
		for _, tod := range s.TimesOfDay {
			parsed, err := time.Parse(timeOfDayLayout, tod)
			if err != nil {
				// Unparseable entries are rejected by ValidateSettings at
				// configuration time; skip rather than guess here.
				continue
			}
			local := time.Date(year, month, dayOfMonth, parsed.Hour(), parsed.Minute(), 0, 0, loc)
			slots = append(slots, Slot{
				Key:   local.UTC().Format(timeKeyLayout),
				Label: local.Format(timeLabelLayout),
			})
		}
	}
	return slots
}
