package schedule

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

var (
	ErrEmptyPattern   = errors.New("weekly pattern is empty")
	ErrInvalidWeekday = errors.New("invalid weekday")
	ErrInvalidTime    = errors.New("invalid time of day")
)

// TimeOfDay is a wall-clock time without a date.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses "15:04" strings.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// On combines the time of day with the given day's date.
func (t TimeOfDay) On(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour, t.Minute, 0, 0, day.Location())
}

// ParseWeekday accepts the spellings that tend to end up in TEXT[]
// columns: "mon", "monday", "Mon", "1", "0" and so on (0 = Sunday,
// 7 also accepted for Sunday).
func ParseWeekday(s string) (time.Weekday, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return 0, ErrInvalidWeekday
	}

	if n, err := strconv.Atoi(s); err == nil {
		if n >= 0 && n <= 6 {
			return time.Weekday(n), nil
		}
		if n == 7 {
			return time.Sunday, nil
		}
		return 0, fmt.Errorf("%w: %q", ErrInvalidWeekday, s)
	}

	switch s {
	case "sun", "sunday":
		return time.Sunday, nil
	case "mon", "monday":
		return time.Monday, nil
	case "tue", "tues", "tuesday":
		return time.Tuesday, nil
	case "wed", "wednesday":
		return time.Wednesday, nil
	case "thu", "thur", "thursday":
		return time.Thursday, nil
	case "fri", "friday":
		return time.Friday, nil
	case "sat", "saturday":
		return time.Saturday, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidWeekday, s)
	}
}

// PatternEntry is one recurring weekly slot.
type PatternEntry struct {
	Day time.Weekday
	At  TimeOfDay
}

// WeeklyPattern is the set of weekly slots a class meets at.
type WeeklyPattern struct {
	Entries []PatternEntry
}

// Validate checks the pattern against the class's declared active days:
// the set of weekdays referenced by entries must equal the active-day
// set, so the two cannot drift apart silently.
func (p WeeklyPattern) Validate(activeDays []time.Weekday) error {
	if len(p.Entries) == 0 {
		return ErrEmptyPattern
	}

	referenced := make(map[time.Weekday]struct{}, len(p.Entries))
	for _, e := range p.Entries {
		referenced[e.Day] = struct{}{}
	}

	declared := make(map[time.Weekday]struct{}, len(activeDays))
	for _, d := range activeDays {
		declared[d] = struct{}{}
	}

	if len(referenced) != len(declared) {
		return fmt.Errorf("pattern days do not match active days")
	}
	for d := range referenced {
		if _, ok := declared[d]; !ok {
			return fmt.Errorf("pattern references %s which is not an active day", d)
		}
	}

	return nil
}

// ExpandOptions control candidate generation. Now is the reference
// instant for past-dropping; IncludePast keeps past candidates for
// backfill runs.
type ExpandOptions struct {
	Now         time.Time
	IncludePast bool
}

// Expand enumerates every day in [from, to] (dates inclusive; the
// clock parts of the bounds are ignored) and emits
// one candidate start per pattern entry registered for that weekday.
// Output is chronological and deduplicated; an empty pattern or an
// inverted range yields an empty slice. Pure function of its inputs.
func (p WeeklyPattern) Expand(from, to time.Time, opts ExpandOptions) []time.Time {
	byDay := make(map[time.Weekday][]TimeOfDay)
	for _, e := range p.Entries {
		byDay[e.Day] = append(byDay[e.Day], e.At)
	}

	loc := from.Location()
	first := truncateToDate(from, loc)
	last := truncateToDate(to, loc)

	seen := make(map[time.Time]struct{})
	var out []time.Time

	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		times, ok := byDay[d.Weekday()]
		if !ok {
			continue
		}
		for _, at := range times {
			candidate := at.On(d)
			if !opts.IncludePast && candidate.Before(opts.Now) {
				continue
			}
			if _, dup := seen[candidate]; dup {
				continue
			}
			seen[candidate] = struct{}{}
			out = append(out, candidate)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })

	return out
}

// truncateToDate returns the date with zero time in the given location.
func truncateToDate(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
