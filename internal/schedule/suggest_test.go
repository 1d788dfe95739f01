package schedule

import (
	"errors"
	"testing"
	"time"

	"github.com/FinalRule/Rattel-LMS-sub000/internal/models"
	"github.com/FinalRule/Rattel-LMS-sub000/pkg/response"
)

func TestSuggestSlots(t *testing.T) {
	teacher := Party{Kind: models.PartyTeacher, ID: "teacher-1"}
	mondayWindow := AvailabilityWindow{
		Day:   time.Monday,
		Start: TimeOfDay{Hour: 9},
		End:   TimeOfDay{Hour: 12},
	}

	t.Run("returns at most maxCount in chronological order", func(t *testing.T) {
		got, err := SuggestSlots(teacher, []AvailabilityWindow{mondayWindow}, monday, time.Hour, 0, 0, 3, 60, nil, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(got) != 3 {
			t.Fatalf("got %d slots, want 3", len(got))
		}
		for i, slot := range got {
			if slot.Start.Weekday() != time.Monday || slot.Start.Hour() != 9 {
				t.Errorf("slot %d = %v, want a Monday 09:00", i, slot.Start)
			}
			if i > 0 && !got[i-1].Start.Before(slot.Start) {
				t.Errorf("slots out of order at %d", i)
			}
		}
	})

	t.Run("never returns a conflicting slot", func(t *testing.T) {
		// First two Mondays are taken 09:00-10:00.
		busy := []*models.Session{
			teacherSession("sess-1", monday.Add(9*time.Hour), 60, 0),
			teacherSession("sess-2", monday.AddDate(0, 0, 7).Add(9*time.Hour), 60, 0),
		}

		got, err := SuggestSlots(teacher, []AvailabilityWindow{mondayWindow}, monday, time.Hour, 0, 0, 2, 60, busy, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		for _, slot := range got {
			if len(FindConflicts(teacher, slot, 0, 0, busy, nil, "")) != 0 {
				t.Errorf("suggested slot %v conflicts with existing sessions", slot.Start)
			}
		}
		if want := monday.AddDate(0, 0, 14).Add(9 * time.Hour); !got[0].Start.Equal(want) {
			t.Errorf("first slot = %v, want %v", got[0].Start, want)
		}
	})

	t.Run("respects preferred start", func(t *testing.T) {
		preferred := monday.Add(10 * time.Hour)

		got, err := SuggestSlots(teacher, []AvailabilityWindow{mondayWindow}, preferred, time.Hour, 0, 0, 1, 60, nil, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got[0].Start.Before(preferred) {
			t.Errorf("slot %v precedes preferred start %v", got[0].Start, preferred)
		}
	})

	t.Run("no windows terminates with NoAvailableSlot", func(t *testing.T) {
		_, err := SuggestSlots(teacher, nil, monday, time.Hour, 0, 0, 3, 60, nil, nil)
		if !errors.Is(err, response.ErrNoAvailableSlot) {
			t.Errorf("got %v, want ErrNoAvailableSlot", err)
		}
	})

	t.Run("oversized duration exhausts the horizon", func(t *testing.T) {
		_, err := SuggestSlots(teacher, []AvailabilityWindow{mondayWindow}, monday, 4*time.Hour, 0, 0, 1, 365, nil, nil)
		if !errors.Is(err, response.ErrNoAvailableSlot) {
			t.Errorf("got %v, want ErrNoAvailableSlot", err)
		}
	})

	t.Run("partial results below maxCount are not an error", func(t *testing.T) {
		got, err := SuggestSlots(teacher, []AvailabilityWindow{mondayWindow}, monday, time.Hour, 0, 0, 10, 14, nil, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 2 {
			t.Errorf("got %d slots, want 2 within a 14-day horizon", len(got))
		}
	})
}
