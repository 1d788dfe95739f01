package api

import "time"

// Sessions

type GenerateSessionsRequest struct {
	From        string `json:"from" validate:"omitempty,datetime=2006-01-02"`
	To          string `json:"to" validate:"omitempty,datetime=2006-01-02"`
	Policy      string `json:"policy" validate:"required,oneof=strict best_effort"`
	IncludePast bool   `json:"include_past"`
}

type SessionResponse struct {
	ID                  string    `json:"session_id"`
	ClassID             string    `json:"class_id"`
	TeacherID           string    `json:"teacher_id"`
	StudentIDs          []string  `json:"student_ids"`
	Start               time.Time `json:"start"`
	DurationMinutes     int       `json:"duration_minutes"`
	BufferBeforeMinutes int       `json:"buffer_before_minutes"`
	BufferAfterMinutes  int       `json:"buffer_after_minutes"`
	Status              string    `json:"status"`
	RescheduledFromID   *string   `json:"rescheduled_from_id,omitempty"`
}

type ConflictInfo struct {
	PartyKind   string `json:"party_kind"`
	PartyID     string `json:"party_id"`
	SessionID   string `json:"session_id,omitempty"`
	ClassID     string `json:"class_id,omitempty"`
	TimeBlockID string `json:"time_block_id,omitempty"`
	Reason      string `json:"reason"`
}

type SkippedCandidate struct {
	Start     time.Time      `json:"start"`
	Conflicts []ConflictInfo `json:"conflicts"`
}

type GenerateSessionsResponse struct {
	Created []SessionResponse  `json:"created"`
	Skipped []SkippedCandidate `json:"skipped"`
}

// Conflict check

type CheckConflictsRequest struct {
	PartyID             string `json:"party_id" validate:"required"`
	PartyKind           string `json:"party_kind" validate:"required,oneof=teacher student"`
	Start               string `json:"start" validate:"required"`
	DurationMinutes     int    `json:"duration_minutes" validate:"required,min=1"`
	BufferBeforeMinutes *int   `json:"buffer_before_minutes,omitempty" validate:"omitempty,min=0,max=1440"`
	BufferAfterMinutes  *int   `json:"buffer_after_minutes,omitempty" validate:"omitempty,min=0,max=1440"`
	ExcludeSessionID    string `json:"exclude_session_id,omitempty"`
}

type CheckConflictsResponse struct {
	Conflicts []ConflictInfo `json:"conflicts"`
}

// Suggestions

type SuggestRequest struct {
	PartyID         string `json:"party_id" validate:"required"`
	PartyKind       string `json:"party_kind" validate:"required,oneof=teacher student"`
	PreferredStart  string `json:"preferred_start" validate:"required"`
	DurationMinutes int    `json:"duration_minutes" validate:"required,min=1"`
	MaxCount        int    `json:"max_count" validate:"required,min=1,max=50"`
}

type IntervalResponse struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type SuggestResponse struct {
	Slots []IntervalResponse `json:"slots"`
}

// Availability windows

type AvailabilityWindowRequest struct {
	PartyID   string `json:"party_id" validate:"required"`
	PartyKind string `json:"party_kind" validate:"required,oneof=teacher student"`
	Weekday   string `json:"weekday" validate:"required"`
	StartTime string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime   string `json:"end_time" validate:"required,datetime=15:04"`
}

type AvailabilityWindowResponse struct {
	ID        string `json:"window_id"`
	PartyID   string `json:"party_id"`
	PartyKind string `json:"party_kind"`
	Weekday   string `json:"weekday"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// Time blocks

type TimeBlockRequest struct {
	TeacherID string `json:"teacher_id" validate:"required"`
	Start     string `json:"start" validate:"required"`
	End       string `json:"end" validate:"required"`
	Reason    string `json:"reason"`
	Type      string `json:"type" validate:"required,oneof=vacation sick other"`
}

type TimeBlockResponse struct {
	ID        string    `json:"block_id"`
	TeacherID string    `json:"teacher_id"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Reason    string    `json:"reason"`
	Type      string    `json:"type"`
}
