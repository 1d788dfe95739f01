package schedule

import (
	"fmt"
	"time"

	"github.com/FinalRule/Rattel-LMS-sub000/internal/models"
)

// Party identifies one side of a session for conflict purposes.
type Party struct {
	Kind models.PartyKind
	ID   string
}

// Conflict is one detected double-booking. Ephemeral: returned to the
// caller, never persisted.
type Conflict struct {
	Party       Party
	SessionID   string
	ClassID     string
	TimeBlockID string
	Reason      string
}

// Involves reports whether the session books the given party, either
// as the teacher or as an enrolled student.
func Involves(s *models.Session, party Party) bool {
	switch party.Kind {
	case models.PartyTeacher:
		return s.TeacherID == party.ID
	case models.PartyStudent:
		for _, id := range s.StudentIDs {
			if id == party.ID {
				return true
			}
		}
	}
	return false
}

// SessionInterval is the session's own span, without buffers.
func SessionInterval(s *models.Session) TimeInterval {
	return NewInterval(s.StartTime, time.Duration(s.DurationMinutes)*time.Minute)
}

// BufferedSessionInterval pads the session with its stored buffers.
func BufferedSessionInterval(s *models.Session) TimeInterval {
	return SessionInterval(s).Buffered(
		time.Duration(s.BufferBeforeMinutes)*time.Minute,
		time.Duration(s.BufferAfterMinutes)*time.Minute,
	)
}

// FindConflicts tests the buffered proposed interval against every
// relevant existing session and, for teachers, every time block.
// Cancelled sessions and the excluded session id never conflict.
// Finding a conflict is a normal result, not an error.
func FindConflicts(party Party, proposed TimeInterval, before, after time.Duration, existing []*models.Session, blocks []*models.TimeBlock, excludeSessionID string) []Conflict {
	padded := proposed.Buffered(before, after)

	var conflicts []Conflict

	for _, s := range existing {
		if s.Status == models.SessionCancelled {
			continue
		}
		if excludeSessionID != "" && s.ID == excludeSessionID {
			continue
		}
		if !Involves(s, party) {
			continue
		}
		if padded.Overlaps(BufferedSessionInterval(s)) {
			conflicts = append(conflicts, Conflict{
				Party:     party,
				SessionID: s.ID,
				ClassID:   s.ClassID,
				Reason: fmt.Sprintf("%s %s is booked %s-%s (buffered)",
					party.Kind, party.ID,
					s.StartTime.Format(time.RFC3339),
					SessionInterval(s).End().Format(time.RFC3339)),
			})
		}
	}

	if party.Kind == models.PartyTeacher {
		for _, b := range blocks {
			if b.TeacherID != party.ID {
				continue
			}
			block := TimeInterval{Start: b.Start, Duration: b.End.Sub(b.Start)}
			if padded.Overlaps(block) {
				conflicts = append(conflicts, Conflict{
					Party:       party,
					TimeBlockID: b.ID,
					Reason: fmt.Sprintf("teacher %s has a %s block %s-%s",
						party.ID, b.Type,
						b.Start.Format(time.RFC3339),
						b.End.Format(time.RFC3339)),
				})
			}
		}
	}

	return conflicts
}
