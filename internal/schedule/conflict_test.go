package schedule

import (
	"testing"
	"time"

	"github.com/FinalRule/Rattel-LMS-sub000/internal/models"
)

func teacherSession(id string, start time.Time, durationMin, bufferMin int) *models.Session {
	return &models.Session{
		ID:                  id,
		ClassID:             "class-1",
		TeacherID:           "teacher-1",
		StudentIDs:          []string{"student-1"},
		StartTime:           start,
		DurationMinutes:     durationMin,
		BufferBeforeMinutes: bufferMin,
		BufferAfterMinutes:  bufferMin,
		Status:              models.SessionScheduled,
	}
}

func TestFindConflicts(t *testing.T) {
	teacher := Party{Kind: models.PartyTeacher, ID: "teacher-1"}
	// 10:00-11:00 with 5-minute buffers on both sides.
	existing := []*models.Session{teacherSession("sess-1", at(10, 0), 60, 5)}

	t.Run("buffered overlap conflicts", func(t *testing.T) {
		proposed := NewInterval(at(10, 55), 35*time.Minute)

		got := FindConflicts(teacher, proposed, 0, 0, existing, nil, "")
		if len(got) != 1 {
			t.Fatalf("got %d conflicts, want 1", len(got))
		}
		if got[0].SessionID != "sess-1" {
			t.Errorf("conflicting session = %q, want sess-1", got[0].SessionID)
		}
	})

	t.Run("start past buffer is clear", func(t *testing.T) {
		proposed := NewInterval(at(11, 5), 55*time.Minute)

		if got := FindConflicts(teacher, proposed, 0, 0, existing, nil, ""); len(got) != 0 {
			t.Errorf("got %d conflicts, want 0: %v", len(got), got)
		}
	})

	t.Run("proposal buffers count too", func(t *testing.T) {
		proposed := NewInterval(at(11, 10), 50*time.Minute)

		if got := FindConflicts(teacher, proposed, 10*time.Minute, 0, existing, nil, ""); len(got) != 1 {
			t.Errorf("got %d conflicts, want 1", len(got))
		}
	})

	t.Run("cancelled sessions never conflict", func(t *testing.T) {
		cancelled := teacherSession("sess-2", at(10, 0), 60, 5)
		cancelled.Status = models.SessionCancelled

		proposed := NewInterval(at(10, 0), time.Hour)
		if got := FindConflicts(teacher, proposed, 0, 0, []*models.Session{cancelled}, nil, ""); len(got) != 0 {
			t.Errorf("got %d conflicts, want 0", len(got))
		}
	})

	t.Run("excluded session is skipped", func(t *testing.T) {
		proposed := NewInterval(at(10, 0), time.Hour)

		if got := FindConflicts(teacher, proposed, 0, 0, existing, nil, "sess-1"); len(got) != 0 {
			t.Errorf("got %d conflicts, want 0", len(got))
		}
	})

	t.Run("student party matches enrollment", func(t *testing.T) {
		enrolled := Party{Kind: models.PartyStudent, ID: "student-1"}
		other := Party{Kind: models.PartyStudent, ID: "student-2"}
		proposed := NewInterval(at(10, 30), time.Hour)

		if got := FindConflicts(enrolled, proposed, 0, 0, existing, nil, ""); len(got) != 1 {
			t.Errorf("enrolled student: got %d conflicts, want 1", len(got))
		}
		if got := FindConflicts(other, proposed, 0, 0, existing, nil, ""); len(got) != 0 {
			t.Errorf("other student: got %d conflicts, want 0", len(got))
		}
	})

	t.Run("teacher time block conflicts", func(t *testing.T) {
		blocks := []*models.TimeBlock{{
			ID:        "block-1",
			TeacherID: "teacher-1",
			Start:     at(14, 0),
			End:       at(16, 0),
			Type:      models.TimeBlockVacation,
		}}
		proposed := NewInterval(at(15, 0), time.Hour)

		got := FindConflicts(teacher, proposed, 0, 0, nil, blocks, "")
		if len(got) != 1 {
			t.Fatalf("got %d conflicts, want 1", len(got))
		}
		if got[0].TimeBlockID != "block-1" {
			t.Errorf("conflicting block = %q, want block-1", got[0].TimeBlockID)
		}
	})

	t.Run("time blocks do not apply to students", func(t *testing.T) {
		blocks := []*models.TimeBlock{{
			ID:        "block-1",
			TeacherID: "teacher-1",
			Start:     at(14, 0),
			End:       at(16, 0),
			Type:      models.TimeBlockVacation,
		}}
		student := Party{Kind: models.PartyStudent, ID: "student-1"}
		proposed := NewInterval(at(15, 0), time.Hour)

		if got := FindConflicts(student, proposed, 0, 0, nil, blocks, ""); len(got) != 0 {
			t.Errorf("got %d conflicts, want 0", len(got))
		}
	})
}
