package models

import "time"

type SessionStatus string

const (
	SessionScheduled   SessionStatus = "scheduled"
	SessionInProgress  SessionStatus = "in_progress"
	SessionCompleted   SessionStatus = "completed"
	SessionCancelled   SessionStatus = "cancelled"
	SessionRescheduled SessionStatus = "rescheduled"
)

type PartyKind string

const (
	PartyTeacher PartyKind = "teacher"
	PartyStudent PartyKind = "student"
)

// Session is one committed calendar slot of a class. Buffer columns are
// copied from the class at creation time so later class edits do not
// change the conflict footprint of already-booked sessions.
type Session struct {
	ID                  string        `db:"session_id"`
	ClassID             string        `db:"class_id"`
	TeacherID           string        `db:"teacher_id"`
	StudentIDs          []string      `db:"student_ids"`
	StartTime           time.Time     `db:"start_time"`
	DurationMinutes     int           `db:"duration_minutes"`
	BufferBeforeMinutes int           `db:"buffer_before_minutes"`
	BufferAfterMinutes  int           `db:"buffer_after_minutes"`
	Status              SessionStatus `db:"status"`
	RescheduledFromID   *string       `db:"rescheduled_from_id"`
}

// Class is owned by the CRUD layer; the scheduling core only reads it.
type Class struct {
	ID                  string   `db:"class_id"`
	Name                string   `db:"class_name"`
	TeacherID           string   `db:"teacher_id"`
	StudentIDs          []string `db:"student_ids"`
	ActiveDays          []string `db:"active_days"`
	PatternEntries      []ClassPatternEntry
	DurationMinutes     int       `db:"duration_minutes"`
	BufferBeforeMinutes int       `db:"buffer_before_minutes"`
	BufferAfterMinutes  int       `db:"buffer_after_minutes"`
	StartDate           time.Time `db:"start_date"`
	EndDate             time.Time `db:"end_date"`
}

// ClassPatternEntry is one (weekday, time-of-day) slot of a class's
// weekly pattern, stored as text ("mon", "15:04").
type ClassPatternEntry struct {
	Weekday   string `db:"weekday"`
	TimeOfDay string `db:"time_of_day"`
}

// AvailabilityWindow is a party's declared weekly availability range,
// consumed by the alternative-slot suggester.
type AvailabilityWindow struct {
	ID        string    `db:"window_id"`
	PartyKind PartyKind `db:"party_kind"`
	PartyID   string    `db:"party_id"`
	Weekday   string    `db:"weekday"`
	StartTime string    `db:"start_time"`
	EndTime   string    `db:"end_time"`
}

type TimeBlockType string

const (
	TimeBlockVacation TimeBlockType = "vacation"
	TimeBlockSick     TimeBlockType = "sick"
	TimeBlockOther    TimeBlockType = "other"
)

// TimeBlock marks a teacher as busy outside of any session.
type TimeBlock struct {
	ID        string        `db:"block_id"`
	TeacherID string        `db:"teacher_id"`
	Start     time.Time     `db:"start_at"`
	End       time.Time     `db:"end_at"`
	Reason    string        `db:"reason"`
	Type      TimeBlockType `db:"block_type"`
}
