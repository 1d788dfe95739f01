package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/FinalRule/Rattel-LMS-sub000/internal/models"
	"github.com/FinalRule/Rattel-LMS-sub000/pkg/response"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Storage struct {
	db *sql.DB
}

func New(storagePath string) (*Storage, error) {
	const op = "storage.postgres.New"

	db, err := sql.Open("postgres", storagePath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{db: db}, nil
}

func (s *Storage) Close() error {
	if s == nil || s.db == nil {
		return nil
	}

	return s.db.Close()
}

// #### classes ####

func (s *Storage) GetClass(ctx context.Context, classID string) (*models.Class, error) {
	const op = "storage.postgres.GetClass"

	var class models.Class

	err := s.db.QueryRowContext(ctx,
		`SELECT class_id, class_name, teacher_id, student_ids, active_days,
		        duration_minutes, buffer_before_minutes, buffer_after_minutes,
		        start_date, end_date
		 FROM classes WHERE class_id=$1`, classID).Scan(
		&class.ID,
		&class.Name,
		&class.TeacherID,
		pq.Array(&class.StudentIDs),
		pq.Array(&class.ActiveDays),
		&class.DurationMinutes,
		&class.BufferBeforeMinutes,
		&class.BufferAfterMinutes,
		&class.StartDate,
		&class.EndDate,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%s: %w", op, response.ErrClassNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT weekday, time_of_day FROM class_pattern_entries
		 WHERE class_id=$1 ORDER BY weekday, time_of_day`, classID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	defer rows.Close()

	for rows.Next() {
		var entry models.ClassPatternEntry
		if err := rows.Scan(&entry.Weekday, &entry.TimeOfDay); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		class.PatternEntries = append(class.PatternEntries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &class, nil
}

// #### sessions ####

const sessionColumns = `session_id, class_id, teacher_id, student_ids, start_time,
	duration_minutes, buffer_before_minutes, buffer_after_minutes, status, rescheduled_from_id`

func scanSessions(rows *sql.Rows) ([]*models.Session, error) {
	var sessions []*models.Session

	for rows.Next() {
		var sess models.Session
		err := rows.Scan(
			&sess.ID,
			&sess.ClassID,
			&sess.TeacherID,
			pq.Array(&sess.StudentIDs),
			&sess.StartTime,
			&sess.DurationMinutes,
			&sess.BufferBeforeMinutes,
			&sess.BufferAfterMinutes,
			&sess.Status,
			&sess.RescheduledFromID,
		)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, &sess)
	}

	return sessions, rows.Err()
}

func (s *Storage) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	const op = "storage.postgres.GetSession"

	var sess models.Session

	err := s.db.QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE session_id=$1`, sessionID).Scan(
		&sess.ID,
		&sess.ClassID,
		&sess.TeacherID,
		pq.Array(&sess.StudentIDs),
		&sess.StartTime,
		&sess.DurationMinutes,
		&sess.BufferBeforeMinutes,
		&sess.BufferAfterMinutes,
		&sess.Status,
		&sess.RescheduledFromID,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &sess, nil
}

// ListSessionsForParty returns the party's non-cancelled sessions whose
// own span intersects [from, to]. Buffer padding is not applied here;
// callers widen the window instead and leave exact buffered overlap to
// the conflict detector.
func (s *Storage) ListSessionsForParty(ctx context.Context, kind models.PartyKind, partyID string, from, to time.Time) ([]*models.Session, error) {
	const op = "storage.postgres.ListSessionsForParty"

	partyCond := `teacher_id=$1`
	if kind == models.PartyStudent {
		partyCond = `$1 = ANY(student_ids)`
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions
		 WHERE `+partyCond+`
		   AND status <> 'cancelled'
		   AND start_time < $3
		   AND start_time + (duration_minutes * interval '1 minute') > $2
		 ORDER BY start_time`, partyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	defer rows.Close()

	sessions, err := scanSessions(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return sessions, nil
}

func (s *Storage) ListSessionsByClass(ctx context.Context, classID string) ([]*models.Session, error) {
	const op = "storage.postgres.ListSessionsByClass"

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE class_id=$1 ORDER BY start_time`, classID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	defer rows.Close()

	sessions, err := scanSessions(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return sessions, nil
}

// CreateSessions writes the whole accepted batch in one transaction:
// either every session is durably stored or none are.
func (s *Storage) CreateSessions(ctx context.Context, sessions []*models.Session) error {
	const op = "storage.postgres.CreateSessions"

	if len(sessions) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin tx: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, sess := range sessions {
		id, err := createSessionTx(ctx, tx, sess)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		sess.ID = id
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit: %w", op, err)
	}

	return nil
}

func createSessionTx(ctx context.Context, tx *sql.Tx, sess *models.Session) (string, error) {
	const op = "storage.postgres.createSessionTx"

	id := uuid.NewString()

	_, err := tx.ExecContext(ctx,
		`INSERT INTO sessions
		 (session_id, class_id, teacher_id, student_ids, start_time,
		  duration_minutes, buffer_before_minutes, buffer_after_minutes, status, rescheduled_from_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		id,
		sess.ClassID,
		sess.TeacherID,
		pq.Array(sess.StudentIDs),
		sess.StartTime,
		sess.DurationMinutes,
		sess.BufferBeforeMinutes,
		sess.BufferAfterMinutes,
		string(sess.Status),
		sess.RescheduledFromID,
	)
	if err != nil {
		sqlErr, ok := err.(*pq.Error)
		if ok && sqlErr.Code == "23505" {
			return "", fmt.Errorf("%s: %w", op, response.ErrConflict)
		}
		if ok && sqlErr.Code == "23503" {
			return "", fmt.Errorf("%s: %w", op, response.ErrClassNotFound)
		}

		return "", fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (s *Storage) UpdateSessionStatus(ctx context.Context, sessionID string, status models.SessionStatus) error {
	const op = "storage.postgres.UpdateSessionStatus"

	res, err := s.db.ExecContext(ctx,
		`UPDATE sessions SET status=$1 WHERE session_id=$2`, string(status), sessionID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, response.ErrNotFound)
	}

	return nil
}

// #### availability windows ####

func (s *Storage) CreateAvailabilityWindow(ctx context.Context, w *models.AvailabilityWindow) (string, error) {
	const op = "storage.postgres.CreateAvailabilityWindow"

	id := uuid.NewString()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO availability_windows (window_id, party_kind, party_id, weekday, start_time, end_time)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		id, string(w.PartyKind), w.PartyID, w.Weekday, w.StartTime, w.EndTime)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (s *Storage) ListAvailabilityWindows(ctx context.Context, kind models.PartyKind, partyID string) ([]*models.AvailabilityWindow, error) {
	const op = "storage.postgres.ListAvailabilityWindows"

	rows, err := s.db.QueryContext(ctx,
		`SELECT window_id, party_kind, party_id, weekday, start_time, end_time
		 FROM availability_windows
		 WHERE party_kind=$1 AND party_id=$2
		 ORDER BY weekday, start_time`, string(kind), partyID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	defer rows.Close()

	var windows []*models.AvailabilityWindow
	for rows.Next() {
		var w models.AvailabilityWindow
		if err := rows.Scan(&w.ID, &w.PartyKind, &w.PartyID, &w.Weekday, &w.StartTime, &w.EndTime); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		windows = append(windows, &w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return windows, nil
}

func (s *Storage) DeleteAvailabilityWindow(ctx context.Context, windowID string) error {
	const op = "storage.postgres.DeleteAvailabilityWindow"

	res, err := s.db.ExecContext(ctx, `DELETE FROM availability_windows WHERE window_id=$1`, windowID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, response.ErrNotFound)
	}

	return nil
}

// #### time blocks ####

func (s *Storage) CreateTimeBlock(ctx context.Context, block *models.TimeBlock) (string, error) {
	const op = "storage.postgres.CreateTimeBlock"

	id := uuid.NewString()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO time_blocks (block_id, teacher_id, start_at, end_at, reason, block_type)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		id, block.TeacherID, block.Start, block.End, block.Reason, string(block.Type))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (s *Storage) GetTimeBlock(ctx context.Context, blockID string) (*models.TimeBlock, error) {
	const op = "storage.postgres.GetTimeBlock"

	var block models.TimeBlock

	err := s.db.QueryRowContext(ctx,
		`SELECT block_id, teacher_id, start_at, end_at, reason, block_type
		 FROM time_blocks WHERE block_id=$1`, blockID).Scan(
		&block.ID, &block.TeacherID, &block.Start, &block.End, &block.Reason, &block.Type)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &block, nil
}

func (s *Storage) ListTimeBlocks(ctx context.Context, teacherID *string, from, to *time.Time) ([]*models.TimeBlock, error) {
	const op = "storage.postgres.ListTimeBlocks"

	query := `SELECT block_id, teacher_id, start_at, end_at, reason, block_type FROM time_blocks WHERE 1=1`
	args := []any{}

	if teacherID != nil {
		args = append(args, *teacherID)
		query += fmt.Sprintf(` AND teacher_id=$%d`, len(args))
	}
	if from != nil {
		args = append(args, *from)
		query += fmt.Sprintf(` AND end_at > $%d`, len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += fmt.Sprintf(` AND start_at < $%d`, len(args))
	}
	query += ` ORDER BY start_at`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	defer rows.Close()

	var blocks []*models.TimeBlock
	for rows.Next() {
		var block models.TimeBlock
		if err := rows.Scan(&block.ID, &block.TeacherID, &block.Start, &block.End, &block.Reason, &block.Type); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		blocks = append(blocks, &block)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return blocks, nil
}

func (s *Storage) DeleteTimeBlock(ctx context.Context, blockID string) error {
	const op = "storage.postgres.DeleteTimeBlock"

	res, err := s.db.ExecContext(ctx, `DELETE FROM time_blocks WHERE block_id=$1`, blockID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, response.ErrNotFound)
	}

	return nil
}
