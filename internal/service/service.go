package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/FinalRule/Rattel-LMS-sub000/api"
	"github.com/FinalRule/Rattel-LMS-sub000/internal/config"
	"github.com/FinalRule/Rattel-LMS-sub000/internal/lock"
	"github.com/FinalRule/Rattel-LMS-sub000/internal/models"
	"github.com/FinalRule/Rattel-LMS-sub000/internal/schedule"
	"github.com/FinalRule/Rattel-LMS-sub000/pkg/response"
)

// windowPad widens the session-fetch range beyond the proposal's own
// buffers so neighbouring sessions' stored buffers are still seen by
// the detector. Buffers are capped at 24h (1440 minutes), in request
// validation and by a check constraint on the sessions table, so this
// pad always covers the other side's reach.
const windowPad = 24 * time.Hour

type Service struct {
	store  Store
	locker lock.Locker
	cfg    config.Scheduling
	now    func() time.Time
}

func NewService(store Store, locker lock.Locker, cfg config.Scheduling) *Service {
	return &Service{store: store, locker: locker, cfg: cfg, now: time.Now}
}

type Store interface {
	// Classes
	GetClass(ctx context.Context, classID string) (*models.Class, error)

	// Sessions
	GetSession(ctx context.Context, sessionID string) (*models.Session, error)
	ListSessionsForParty(ctx context.Context, kind models.PartyKind, partyID string, from, to time.Time) ([]*models.Session, error)
	ListSessionsByClass(ctx context.Context, classID string) ([]*models.Session, error)
	CreateSessions(ctx context.Context, sessions []*models.Session) error
	UpdateSessionStatus(ctx context.Context, sessionID string, status models.SessionStatus) error

	// Availability windows
	CreateAvailabilityWindow(ctx context.Context, w *models.AvailabilityWindow) (string, error)
	ListAvailabilityWindows(ctx context.Context, kind models.PartyKind, partyID string) ([]*models.AvailabilityWindow, error)
	DeleteAvailabilityWindow(ctx context.Context, windowID string) error

	// Time blocks
	CreateTimeBlock(ctx context.Context, block *models.TimeBlock) (string, error)
	GetTimeBlock(ctx context.Context, blockID string) (*models.TimeBlock, error)
	ListTimeBlocks(ctx context.Context, teacherID *string, from, to *time.Time) ([]*models.TimeBlock, error)
	DeleteTimeBlock(ctx context.Context, blockID string) error
}

type MaterializePolicy string

const (
	PolicyStrict     MaterializePolicy = "strict"
	PolicyBestEffort MaterializePolicy = "best_effort"
)

// ConflictError carries every conflict found, not just the first, so
// callers can react to all of them. Unwraps to response.ErrConflict.
type ConflictError struct {
	Conflicts []schedule.Conflict
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("scheduling conflict: %d conflicting slot(s)", len(e.Conflicts))
}

func (e *ConflictError) Unwrap() error {
	return response.ErrConflict
}

// GenerateSessions expands the class's weekly pattern over its date
// range (optionally narrowed by the request) and commits the accepted
// candidates as one atomic batch.
func (s *Service) GenerateSessions(ctx context.Context, classID string, req *api.GenerateSessionsRequest) (*api.GenerateSessionsResponse, error) {
	const op = "service.GenerateSessions"

	policy := MaterializePolicy(req.Policy)
	if policy != PolicyStrict && policy != PolicyBestEffort {
		return nil, fmt.Errorf("%s: unknown policy %q: %w", op, req.Policy, response.ErrBadRequest)
	}

	class, err := s.store.GetClass(ctx, classID)
	if err != nil {
		if errors.Is(err, response.ErrClassNotFound) {
			return nil, fmt.Errorf("%s: %w", op, response.ErrClassNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	pattern, activeDays, err := classPattern(class)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := pattern.Validate(activeDays); err != nil {
		return nil, fmt.Errorf("%s: %v: %w", op, err, response.ErrInvalidPattern)
	}

	from, to, err := resolveRange(class, req.From, req.To)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	duration := time.Duration(class.DurationMinutes) * time.Minute
	if duration <= 0 {
		return nil, fmt.Errorf("%s: invalid class duration: %d: %w", op, class.DurationMinutes, response.ErrInvalidPattern)
	}

	candidates := pattern.Expand(from, to, schedule.ExpandOptions{
		Now:         s.now(),
		IncludePast: req.IncludePast,
	})

	parties := classParties(class)
	before := time.Duration(class.BufferBeforeMinutes) * time.Minute
	after := time.Duration(class.BufferAfterMinutes) * time.Minute

	// One lock per party, acquired in sorted order. Two generates for
	// different classes sharing any party contend on that party's key,
	// so detect+insert stays serialized per party. All-or-release: on
	// a denied key everything already held is given back.
	keys := lock.PartyKeys(partyIDs(parties))
	var acquired []string
	release := func() {
		for i := len(acquired) - 1; i >= 0; i-- {
			_ = s.locker.Unlock(ctx, acquired[i])
		}
		acquired = nil
	}
	for _, key := range keys {
		locked, err := s.locker.Lock(ctx, key, s.cfg.LockTTL)
		if err != nil {
			release()
			return nil, fmt.Errorf("%s: lock error: %w", op, err)
		}
		if !locked {
			release()
			return nil, fmt.Errorf("%s: %w", op, response.ErrLocked)
		}
		acquired = append(acquired, key)
	}
	defer release()

	existing, blocks, err := s.fetchBusy(ctx, parties, from.Add(-(before+windowPad)), to.Add(after+windowPad))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var accepted []*models.Session
	var skipped []api.SkippedCandidate

	for _, start := range candidates {
		interval := schedule.NewInterval(start, duration)

		var conflicts []schedule.Conflict
		for _, party := range parties {
			conflicts = append(conflicts,
				schedule.FindConflicts(party, interval, before, after, append(existing, accepted...), blocks, "")...)
		}

		if len(conflicts) > 0 {
			if policy == PolicyStrict {
				return nil, fmt.Errorf("%s: %w", op, &ConflictError{Conflicts: conflicts})
			}
			skipped = append(skipped, api.SkippedCandidate{
				Start:     start,
				Conflicts: conflictInfos(conflicts),
			})
			continue
		}

		accepted = append(accepted, &models.Session{
			ClassID:             class.ID,
			TeacherID:           class.TeacherID,
			StudentIDs:          class.StudentIDs,
			StartTime:           start,
			DurationMinutes:     class.DurationMinutes,
			BufferBeforeMinutes: class.BufferBeforeMinutes,
			BufferAfterMinutes:  class.BufferAfterMinutes,
			Status:              models.SessionScheduled,
		})
	}

	// A unique violation on (class_id, start_time) inside the batch
	// means a concurrent writer won; it surfaces wrapped in
	// response.ErrConflict, the same path as a detected overlap.
	if err := s.store.CreateSessions(ctx, accepted); err != nil {
		return nil, fmt.Errorf("%s: create sessions: %w", op, err)
	}

	resp := &api.GenerateSessionsResponse{
		Created: make([]api.SessionResponse, 0, len(accepted)),
		Skipped: skipped,
	}
	for _, sess := range accepted {
		resp.Created = append(resp.Created, sessionResponse(sess))
	}
	if resp.Skipped == nil {
		resp.Skipped = []api.SkippedCandidate{}
	}

	return resp, nil
}

// CheckConflicts tests a proposed interval against the party's
// committed sessions (and time blocks for teachers). An empty list is
// the normal no-conflict result.
func (s *Service) CheckConflicts(ctx context.Context, req *api.CheckConflictsRequest) (*api.CheckConflictsResponse, error) {
	const op = "service.CheckConflicts"

	party, err := parseParty(req.PartyKind, req.PartyID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	start, err := time.Parse(time.RFC3339, req.Start)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid start: %w", op, response.ErrBadRequest)
	}

	duration := time.Duration(req.DurationMinutes) * time.Minute
	interval := schedule.NewInterval(start, duration)
	before, after := s.resolveBuffers(req.BufferBeforeMinutes, req.BufferAfterMinutes)

	existing, blocks, err := s.fetchBusy(ctx, []schedule.Party{party},
		interval.Start.Add(-(before+windowPad)), interval.End().Add(after+windowPad))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	conflicts := schedule.FindConflicts(party, interval, before, after, existing, blocks, req.ExcludeSessionID)

	return &api.CheckConflictsResponse{Conflicts: conflictInfos(conflicts)}, nil
}

// SuggestAlternatives searches forward across the party's declared
// availability windows for the next conflict-free slots.
func (s *Service) SuggestAlternatives(ctx context.Context, req *api.SuggestRequest) (*api.SuggestResponse, error) {
	const op = "service.SuggestAlternatives"

	party, err := parseParty(req.PartyKind, req.PartyID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	preferredStart, err := time.Parse(time.RFC3339, req.PreferredStart)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid preferred_start: %w", op, response.ErrBadRequest)
	}

	rows, err := s.store.ListAvailabilityWindows(ctx, party.Kind, party.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	windows := make([]schedule.AvailabilityWindow, 0, len(rows))
	for _, row := range rows {
		w, err := parseWindow(row)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		windows = append(windows, w)
	}

	horizon := s.cfg.SuggestHorizonDays
	if horizon <= 0 {
		horizon = 180
	}

	duration := time.Duration(req.DurationMinutes) * time.Minute
	before, after := s.resolveBuffers(nil, nil)

	searchEnd := preferredStart.AddDate(0, 0, horizon)
	existing, blocks, err := s.fetchBusy(ctx, []schedule.Party{party},
		preferredStart.Add(-(before+windowPad)), searchEnd.Add(after+windowPad))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	slots, err := schedule.SuggestSlots(party, windows, preferredStart, duration, before, after, req.MaxCount, horizon, existing, blocks)
	if err != nil {
		if errors.Is(err, response.ErrNoAvailableSlot) {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNoAvailableSlot)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	resp := &api.SuggestResponse{Slots: make([]api.IntervalResponse, 0, len(slots))}
	for _, slot := range slots {
		resp.Slots = append(resp.Slots, api.IntervalResponse{Start: slot.Start, End: slot.End()})
	}

	return resp, nil
}

// Sessions

func (s *Service) GetSession(ctx context.Context, sessionID string) (*api.SessionResponse, error) {
	const op = "service.GetSession"

	sess, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, response.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	resp := sessionResponse(sess)
	return &resp, nil
}

func (s *Service) ListSessionsByClass(ctx context.Context, classID string) ([]api.SessionResponse, error) {
	const op = "service.ListSessionsByClass"

	sessions, err := s.store.ListSessionsByClass(ctx, classID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := make([]api.SessionResponse, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, sessionResponse(sess))
	}

	return result, nil
}

// ListSessionsForParty lists the party's sessions intersecting
// [from, to]. Zero bounds default to one month back and one year ahead
// of the service clock.
func (s *Service) ListSessionsForParty(ctx context.Context, partyKind, partyID string, from, to time.Time) ([]api.SessionResponse, error) {
	const op = "service.ListSessionsForParty"

	party, err := parseParty(partyKind, partyID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if from.IsZero() {
		from = s.now().AddDate(0, -1, 0)
	}
	if to.IsZero() {
		to = s.now().AddDate(1, 0, 0)
	}

	sessions, err := s.store.ListSessionsForParty(ctx, party.Kind, party.ID, from, to)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := make([]api.SessionResponse, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, sessionResponse(sess))
	}

	return result, nil
}

func (s *Service) CancelSession(ctx context.Context, sessionID string) (*api.SessionResponse, error) {
	const op = "service.CancelSession"

	if err := s.store.UpdateSessionStatus(ctx, sessionID, models.SessionCancelled); err != nil {
		if errors.Is(err, response.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.GetSession(ctx, sessionID)
}

// Availability windows

func (s *Service) CreateAvailabilityWindow(ctx context.Context, req *api.AvailabilityWindowRequest) (*api.AvailabilityWindowResponse, error) {
	const op = "service.CreateAvailabilityWindow"

	if _, err := parseParty(req.PartyKind, req.PartyID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	day, err := schedule.ParseWeekday(req.Weekday)
	if err != nil {
		return nil, fmt.Errorf("%s: %v: %w", op, err, response.ErrBadRequest)
	}
	startAt, err := schedule.ParseTimeOfDay(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%s: %v: %w", op, err, response.ErrBadRequest)
	}
	endAt, err := schedule.ParseTimeOfDay(req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%s: %v: %w", op, err, response.ErrBadRequest)
	}
	if !startAt.On(s.now()).Before(endAt.On(s.now())) {
		return nil, fmt.Errorf("%s: end_time must be after start_time: %w", op, response.ErrBadRequest)
	}

	window := &models.AvailabilityWindow{
		PartyKind: models.PartyKind(req.PartyKind),
		PartyID:   req.PartyID,
		Weekday:   strings.ToLower(day.String()[:3]),
		StartTime: startAt.String(),
		EndTime:   endAt.String(),
	}

	id, err := s.store.CreateAvailabilityWindow(ctx, window)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	window.ID = id

	return &api.AvailabilityWindowResponse{
		ID:        window.ID,
		PartyID:   window.PartyID,
		PartyKind: string(window.PartyKind),
		Weekday:   window.Weekday,
		StartTime: window.StartTime,
		EndTime:   window.EndTime,
	}, nil
}

func (s *Service) ListAvailabilityWindows(ctx context.Context, partyKind, partyID string) ([]api.AvailabilityWindowResponse, error) {
	const op = "service.ListAvailabilityWindows"

	party, err := parseParty(partyKind, partyID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	windows, err := s.store.ListAvailabilityWindows(ctx, party.Kind, party.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := make([]api.AvailabilityWindowResponse, 0, len(windows))
	for _, w := range windows {
		result = append(result, api.AvailabilityWindowResponse{
			ID:        w.ID,
			PartyID:   w.PartyID,
			PartyKind: string(w.PartyKind),
			Weekday:   w.Weekday,
			StartTime: w.StartTime,
			EndTime:   w.EndTime,
		})
	}

	return result, nil
}

func (s *Service) DeleteAvailabilityWindow(ctx context.Context, windowID string) error {
	const op = "service.DeleteAvailabilityWindow"

	if err := s.store.DeleteAvailabilityWindow(ctx, windowID); err != nil {
		if errors.Is(err, response.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Time blocks

func (s *Service) CreateTimeBlock(ctx context.Context, req *api.TimeBlockRequest) (*api.TimeBlockResponse, error) {
	const op = "service.CreateTimeBlock"

	start, err := time.Parse(time.RFC3339, req.Start)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid start: %w", op, response.ErrBadRequest)
	}
	end, err := time.Parse(time.RFC3339, req.End)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid end: %w", op, response.ErrBadRequest)
	}
	if !end.After(start) {
		return nil, fmt.Errorf("%s: end must be after start: %w", op, response.ErrBadRequest)
	}

	blockType := models.TimeBlockType(req.Type)
	if blockType != models.TimeBlockVacation && blockType != models.TimeBlockSick && blockType != models.TimeBlockOther {
		return nil, fmt.Errorf("%s: invalid type: %w", op, response.ErrBadRequest)
	}

	block := &models.TimeBlock{
		TeacherID: req.TeacherID,
		Start:     start,
		End:       end,
		Reason:    req.Reason,
		Type:      blockType,
	}

	id, err := s.store.CreateTimeBlock(ctx, block)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.GetTimeBlock(ctx, id)
}

func (s *Service) GetTimeBlock(ctx context.Context, blockID string) (*api.TimeBlockResponse, error) {
	const op = "service.GetTimeBlock"

	block, err := s.store.GetTimeBlock(ctx, blockID)
	if err != nil {
		if errors.Is(err, response.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &api.TimeBlockResponse{
		ID:        block.ID,
		TeacherID: block.TeacherID,
		Start:     block.Start,
		End:       block.End,
		Reason:    block.Reason,
		Type:      string(block.Type),
	}, nil
}

func (s *Service) ListTimeBlocks(ctx context.Context, teacherID *string, from, to *time.Time) ([]*api.TimeBlockResponse, error) {
	const op = "service.ListTimeBlocks"

	blocks, err := s.store.ListTimeBlocks(ctx, teacherID, from, to)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := make([]*api.TimeBlockResponse, 0, len(blocks))
	for _, block := range blocks {
		result = append(result, &api.TimeBlockResponse{
			ID:        block.ID,
			TeacherID: block.TeacherID,
			Start:     block.Start,
			End:       block.End,
			Reason:    block.Reason,
			Type:      string(block.Type),
		})
	}

	return result, nil
}

func (s *Service) DeleteTimeBlock(ctx context.Context, blockID string) error {
	const op = "service.DeleteTimeBlock"

	if err := s.store.DeleteTimeBlock(ctx, blockID); err != nil {
		if errors.Is(err, response.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// helpers

func classPattern(class *models.Class) (schedule.WeeklyPattern, []time.Weekday, error) {
	var pattern schedule.WeeklyPattern

	for _, entry := range class.PatternEntries {
		day, err := schedule.ParseWeekday(entry.Weekday)
		if err != nil {
			return pattern, nil, fmt.Errorf("%v: %w", err, response.ErrInvalidPattern)
		}
		at, err := schedule.ParseTimeOfDay(entry.TimeOfDay)
		if err != nil {
			return pattern, nil, fmt.Errorf("%v: %w", err, response.ErrInvalidPattern)
		}
		pattern.Entries = append(pattern.Entries, schedule.PatternEntry{Day: day, At: at})
	}

	activeDays := make([]time.Weekday, 0, len(class.ActiveDays))
	for _, d := range class.ActiveDays {
		day, err := schedule.ParseWeekday(d)
		if err != nil {
			return pattern, nil, fmt.Errorf("%v: %w", err, response.ErrInvalidPattern)
		}
		activeDays = append(activeDays, day)
	}

	return pattern, activeDays, nil
}

// resolveRange intersects the class's date range with the optional
// request narrowing. Dates only; the expander ignores clock parts.
func resolveRange(class *models.Class, fromStr, toStr string) (time.Time, time.Time, error) {
	from := class.StartDate
	to := class.EndDate

	if fromStr != "" {
		parsed, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid from: %w", response.ErrBadRequest)
		}
		if parsed.After(from) {
			from = parsed
		}
	}
	if toStr != "" {
		parsed, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid to: %w", response.ErrBadRequest)
		}
		if parsed.Before(to) {
			to = parsed
		}
	}

	return from, to, nil
}

func classParties(class *models.Class) []schedule.Party {
	parties := make([]schedule.Party, 0, 1+len(class.StudentIDs))
	parties = append(parties, schedule.Party{Kind: models.PartyTeacher, ID: class.TeacherID})
	for _, id := range class.StudentIDs {
		parties = append(parties, schedule.Party{Kind: models.PartyStudent, ID: id})
	}
	return parties
}

func parseWindow(row *models.AvailabilityWindow) (schedule.AvailabilityWindow, error) {
	day, err := schedule.ParseWeekday(row.Weekday)
	if err != nil {
		return schedule.AvailabilityWindow{}, err
	}
	start, err := schedule.ParseTimeOfDay(row.StartTime)
	if err != nil {
		return schedule.AvailabilityWindow{}, err
	}
	end, err := schedule.ParseTimeOfDay(row.EndTime)
	if err != nil {
		return schedule.AvailabilityWindow{}, err
	}
	return schedule.AvailabilityWindow{Day: day, Start: start, End: end}, nil
}

func partyIDs(parties []schedule.Party) []string {
	ids := make([]string, 0, len(parties))
	for _, p := range parties {
		ids = append(ids, fmt.Sprintf("%s:%s", p.Kind, p.ID))
	}
	return ids
}

// fetchBusy loads every party's committed sessions and the relevant
// teacher time blocks for the window, deduplicated by session id.
func (s *Service) fetchBusy(ctx context.Context, parties []schedule.Party, from, to time.Time) ([]*models.Session, []*models.TimeBlock, error) {
	seen := make(map[string]struct{})
	var sessions []*models.Session
	var blocks []*models.TimeBlock

	for _, party := range parties {
		found, err := s.store.ListSessionsForParty(ctx, party.Kind, party.ID, from, to)
		if err != nil {
			return nil, nil, err
		}
		for _, sess := range found {
			if _, dup := seen[sess.ID]; dup {
				continue
			}
			seen[sess.ID] = struct{}{}
			sessions = append(sessions, sess)
		}

		if party.Kind == models.PartyTeacher {
			teacherID := party.ID
			teacherBlocks, err := s.store.ListTimeBlocks(ctx, &teacherID, &from, &to)
			if err != nil {
				return nil, nil, err
			}
			blocks = append(blocks, teacherBlocks...)
		}
	}

	sort.Slice(sessions, func(i, j int) bool { return sessions[i].StartTime.Before(sessions[j].StartTime) })

	return sessions, blocks, nil
}

// resolveBuffers applies the precedence rule: explicit request value,
// then the configured default, then zero.
func (s *Service) resolveBuffers(before, after *int) (time.Duration, time.Duration) {
	b := s.cfg.DefaultBufferBeforeMinutes
	a := s.cfg.DefaultBufferAfterMinutes
	if before != nil {
		b = *before
	}
	if after != nil {
		a = *after
	}
	return time.Duration(b) * time.Minute, time.Duration(a) * time.Minute
}

func parseParty(kind, id string) (schedule.Party, error) {
	if id == "" {
		return schedule.Party{}, fmt.Errorf("party_id is required: %w", response.ErrBadRequest)
	}
	switch models.PartyKind(kind) {
	case models.PartyTeacher, models.PartyStudent:
		return schedule.Party{Kind: models.PartyKind(kind), ID: id}, nil
	default:
		return schedule.Party{}, fmt.Errorf("unknown party kind %q: %w", kind, response.ErrBadRequest)
	}
}

func conflictInfos(conflicts []schedule.Conflict) []api.ConflictInfo {
	infos := make([]api.ConflictInfo, 0, len(conflicts))
	for _, c := range conflicts {
		infos = append(infos, api.ConflictInfo{
			PartyKind:   string(c.Party.Kind),
			PartyID:     c.Party.ID,
			SessionID:   c.SessionID,
			ClassID:     c.ClassID,
			TimeBlockID: c.TimeBlockID,
			Reason:      c.Reason,
		})
	}
	return infos
}

func sessionResponse(sess *models.Session) api.SessionResponse {
	return api.SessionResponse{
		ID:                  sess.ID,
		ClassID:             sess.ClassID,
		TeacherID:           sess.TeacherID,
		StudentIDs:          sess.StudentIDs,
		Start:               sess.StartTime,
		DurationMinutes:     sess.DurationMinutes,
		BufferBeforeMinutes: sess.BufferBeforeMinutes,
		BufferAfterMinutes:  sess.BufferAfterMinutes,
		Status:              string(sess.Status),
		RescheduledFromID:   sess.RescheduledFromID,
	}
}
