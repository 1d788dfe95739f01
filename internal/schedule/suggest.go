package schedule

import (
	"sort"
	"time"

	"github.com/FinalRule/Rattel-LMS-sub000/internal/models"
	"github.com/FinalRule/Rattel-LMS-sub000/pkg/response"
)

// AvailabilityWindow is a parsed weekly availability range.
type AvailabilityWindow struct {
	Day   time.Weekday
	Start TimeOfDay
	End   TimeOfDay
}

// SuggestSlots walks forward day by day from preferredStart across the
// party's availability windows and returns up to maxCount conflict-free
// intervals in chronological order. One candidate is tried per window
// per day, at the window's start time, and only if the duration fits
// inside the window. The search is capped at horizonDays so it always
// terminates; if the horizon is exhausted without a single accepted
// slot the result is response.ErrNoAvailableSlot.
func SuggestSlots(party Party, windows []AvailabilityWindow, preferredStart time.Time, duration time.Duration, before, after time.Duration, maxCount, horizonDays int, existing []*models.Session, blocks []*models.TimeBlock) ([]TimeInterval, error) {
	if maxCount <= 0 || len(windows) == 0 {
		return nil, response.ErrNoAvailableSlot
	}

	byDay := make(map[time.Weekday][]AvailabilityWindow)
	for _, w := range windows {
		byDay[w.Day] = append(byDay[w.Day], w)
	}
	for d := range byDay {
		ws := byDay[d]
		sort.Slice(ws, func(i, j int) bool {
			return ws[i].Start.On(preferredStart).Before(ws[j].Start.On(preferredStart))
		})
	}

	loc := preferredStart.Location()
	var out []TimeInterval

	day := truncateToDate(preferredStart, loc)
	for i := 0; i < horizonDays && len(out) < maxCount; i, day = i+1, day.AddDate(0, 0, 1) {
		for _, w := range byDay[day.Weekday()] {
			if len(out) >= maxCount {
				break
			}

			start := w.Start.On(day)
			if start.Before(preferredStart) {
				continue
			}
			if start.Add(duration).After(w.End.On(day)) {
				continue
			}

			candidate := NewInterval(start, duration)
			if len(FindConflicts(party, candidate, before, after, existing, blocks, "")) > 0 {
				continue
			}
			out = append(out, candidate)
		}
	}

	if len(out) == 0 {
		return nil, response.ErrNoAvailableSlot
	}

	return out, nil
}
