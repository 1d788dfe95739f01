package schedule

import "time"

// TimeInterval is an immutable half-open time span [Start, End).
type TimeInterval struct {
	Start    time.Time
	Duration time.Duration
}

func NewInterval(start time.Time, duration time.Duration) TimeInterval {
	return TimeInterval{Start: start, Duration: duration}
}

func (i TimeInterval) End() time.Time {
	return i.Start.Add(i.Duration)
}

// Overlaps reports whether the two spans share any instant. Touching
// endpoints (a ends exactly when b starts) do not overlap.
func (i TimeInterval) Overlaps(o TimeInterval) bool {
	return i.Start.Before(o.End()) && o.Start.Before(i.End())
}

// Buffered returns the interval padded on each side. Buffering is used
// for conflict checks only and never changes a stored session.
func (i TimeInterval) Buffered(before, after time.Duration) TimeInterval {
	return TimeInterval{
		Start:    i.Start.Add(-before),
		Duration: i.Duration + before + after,
	}
}
