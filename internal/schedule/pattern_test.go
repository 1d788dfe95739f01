package schedule

import (
	"errors"
	"testing"
	"time"
)

// 2025-03-03 is a Monday.
var monday = time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)

func mustTimeOfDay(t *testing.T, s string) TimeOfDay {
	t.Helper()
	at, err := ParseTimeOfDay(s)
	if err != nil {
		t.Fatalf("ParseTimeOfDay(%q): %v", s, err)
	}
	return at
}

func TestParseWeekday(t *testing.T) {
	cases := []struct {
		in   string
		want time.Weekday
	}{
		{"mon", time.Monday},
		{"Monday", time.Monday},
		{" TUE ", time.Tuesday},
		{"0", time.Sunday},
		{"7", time.Sunday},
		{"5", time.Friday},
	}

	for _, tc := range cases {
		got, err := ParseWeekday(tc.in)
		if err != nil {
			t.Errorf("ParseWeekday(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseWeekday(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}

	for _, bad := range []string{"", "8", "funday", "-1"} {
		if _, err := ParseWeekday(bad); !errors.Is(err, ErrInvalidWeekday) {
			t.Errorf("ParseWeekday(%q) = %v, want ErrInvalidWeekday", bad, err)
		}
	}
}

func TestExpand(t *testing.T) {
	opts := ExpandOptions{Now: monday.AddDate(0, 0, -7)}

	t.Run("single monday slot over one week", func(t *testing.T) {
		p := WeeklyPattern{Entries: []PatternEntry{
			{Day: time.Monday, At: mustTimeOfDay(t, "09:00")},
		}}

		got := p.Expand(monday, monday.AddDate(0, 0, 6), opts)

		if len(got) != 1 {
			t.Fatalf("got %d candidates, want 1: %v", len(got), got)
		}
		want := time.Date(2025, time.March, 3, 9, 0, 0, 0, time.UTC)
		if !got[0].Equal(want) {
			t.Errorf("candidate = %v, want %v", got[0], want)
		}
	})

	t.Run("deterministic for identical inputs", func(t *testing.T) {
		p := WeeklyPattern{Entries: []PatternEntry{
			{Day: time.Monday, At: mustTimeOfDay(t, "09:00")},
			{Day: time.Wednesday, At: mustTimeOfDay(t, "14:30")},
		}}

		first := p.Expand(monday, monday.AddDate(0, 0, 27), opts)
		second := p.Expand(monday, monday.AddDate(0, 0, 27), opts)

		if len(first) != len(second) {
			t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
		}
		for i := range first {
			if !first[i].Equal(second[i]) {
				t.Errorf("candidate %d differs: %v vs %v", i, first[i], second[i])
			}
		}
	})

	t.Run("chronological order across entries", func(t *testing.T) {
		p := WeeklyPattern{Entries: []PatternEntry{
			{Day: time.Friday, At: mustTimeOfDay(t, "08:00")},
			{Day: time.Monday, At: mustTimeOfDay(t, "18:00")},
			{Day: time.Monday, At: mustTimeOfDay(t, "09:00")},
		}}

		got := p.Expand(monday, monday.AddDate(0, 0, 13), opts)

		for i := 1; i < len(got); i++ {
			if !got[i-1].Before(got[i]) {
				t.Errorf("out of order at %d: %v >= %v", i, got[i-1], got[i])
			}
		}
	})

	t.Run("duplicate entries emit one candidate", func(t *testing.T) {
		p := WeeklyPattern{Entries: []PatternEntry{
			{Day: time.Monday, At: mustTimeOfDay(t, "09:00")},
			{Day: time.Monday, At: mustTimeOfDay(t, "09:00")},
		}}

		got := p.Expand(monday, monday.AddDate(0, 0, 6), opts)
		if len(got) != 1 {
			t.Errorf("got %d candidates, want 1", len(got))
		}
	})

	t.Run("empty pattern yields empty sequence", func(t *testing.T) {
		var p WeeklyPattern
		if got := p.Expand(monday, monday.AddDate(0, 0, 6), opts); len(got) != 0 {
			t.Errorf("got %d candidates, want 0", len(got))
		}
	})

	t.Run("inverted range yields empty sequence", func(t *testing.T) {
		p := WeeklyPattern{Entries: []PatternEntry{
			{Day: time.Monday, At: mustTimeOfDay(t, "09:00")},
		}}
		if got := p.Expand(monday.AddDate(0, 0, 6), monday, opts); len(got) != 0 {
			t.Errorf("got %d candidates, want 0", len(got))
		}
	})

	t.Run("past candidates dropped by default", func(t *testing.T) {
		p := WeeklyPattern{Entries: []PatternEntry{
			{Day: time.Monday, At: mustTimeOfDay(t, "09:00")},
		}}
		now := monday.AddDate(0, 0, 7) // second monday

		got := p.Expand(monday, monday.AddDate(0, 0, 13), ExpandOptions{Now: now})

		if len(got) != 1 {
			t.Fatalf("got %d candidates, want 1", len(got))
		}
		if got[0].Before(now) {
			t.Errorf("past candidate %v not dropped", got[0])
		}
	})

	t.Run("include past keeps expired candidates", func(t *testing.T) {
		p := WeeklyPattern{Entries: []PatternEntry{
			{Day: time.Monday, At: mustTimeOfDay(t, "09:00")},
		}}
		now := monday.AddDate(0, 0, 7)

		got := p.Expand(monday, monday.AddDate(0, 0, 13), ExpandOptions{Now: now, IncludePast: true})

		if len(got) != 2 {
			t.Errorf("got %d candidates, want 2", len(got))
		}
	})
}

func TestValidate(t *testing.T) {
	entry := PatternEntry{Day: time.Monday, At: TimeOfDay{Hour: 9}}

	t.Run("empty pattern", func(t *testing.T) {
		var p WeeklyPattern
		if err := p.Validate([]time.Weekday{time.Monday}); !errors.Is(err, ErrEmptyPattern) {
			t.Errorf("got %v, want ErrEmptyPattern", err)
		}
	})

	t.Run("matching active days", func(t *testing.T) {
		p := WeeklyPattern{Entries: []PatternEntry{entry}}
		if err := p.Validate([]time.Weekday{time.Monday}); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("pattern references inactive day", func(t *testing.T) {
		p := WeeklyPattern{Entries: []PatternEntry{entry}}
		if err := p.Validate([]time.Weekday{time.Tuesday}); err == nil {
			t.Error("expected error for day mismatch")
		}
	})

	t.Run("declared day without entries", func(t *testing.T) {
		p := WeeklyPattern{Entries: []PatternEntry{entry}}
		if err := p.Validate([]time.Weekday{time.Monday, time.Friday}); err == nil {
			t.Error("expected error for unreferenced active day")
		}
	})
}
