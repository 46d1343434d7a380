package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/studyplan/internal/planner"
)

var sessionColumns = []string{
	"id", "topic_id", "subject_id", "date", "start_time", "duration_ns",
	"type", "cognitive_load", "status", "actual_start", "actual_end", "feedback", "notes",
}

// scheduleRepo implements ScheduleRepo.
type scheduleRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *scheduleRepo) Save(ctx context.Context, sched *planner.Schedule) error {
	if sched.ID == "" || sched.StudentID == "" {
		return errors.New("save schedule: missing id or student id")
	}

	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		version := 1
		query, args := builder.Select("id", "version").
			From(builder.Table(tableSchedules)).
			Where(entsql.EQ("student_id", sched.StudentID)).
			Query()
		var oldID string
		var oldVersion int
		err := tx.QueryRowContext(ctx, query, args...).Scan(&oldID, &oldVersion)
		switch {
		case errors.Is(err, sql.ErrNoRows):
		case err != nil:
			return fmt.Errorf("query schedule: %w", err)
		default:
			version = oldVersion + 1
			if err := deleteSchedule(ctx, tx, oldID); err != nil {
				return err
			}
		}

		updated := sched.UpdatedAt
		if updated.IsZero() {
			updated = sched.GeneratedAt
		}
		query, args = builder.Insert(tableSchedules).
			Columns("id", "student_id", "version", "generated_at", "updated_at").
			Values(sched.ID, sched.StudentID, version, sched.GeneratedAt.UTC(), updated.UTC()).
			Query()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("save schedule: %w", err)
		}

		for i, s := range sched.Sessions {
			query, args := builder.Insert(tableStudySessions).
				Columns(append([]string{"schedule_id", "student_id", "position"}, sessionColumns...)...).
				Values(append([]any{sched.ID, sched.StudentID, i}, sessionValues(s)...)...).
				Query()
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("save session %s: %w", s.ID, err)
			}
		}

		// Generate events carry the schedule id in place of a session id.
		seq, err := r.seq.Next(ctx, tx)
		if err != nil {
			return err
		}
		if err := insertSessionEvent(ctx, tx, seq, SessionEventData{
			SessionID: sched.ID,
			StudentID: sched.StudentID,
			Action:    ActionGenerate,
			Detail:    fmt.Sprintf("version %d, %d sessions", version, len(sched.Sessions)),
		}); err != nil {
			return err
		}

		sched.Version = version
		return nil
	})
}

func deleteSchedule(ctx context.Context, tx *sql.Tx, id string) error {
	query, args := builder.Delete(tableStudySessions).
		Where(entsql.EQ("schedule_id", id)).
		Query()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete sessions: %w", err)
	}
	query, args = builder.Delete(tableSchedules).
		Where(entsql.EQ("id", id)).
		Query()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete schedule: %w", err)
	}
	return nil
}

func (r *scheduleRepo) Latest(ctx context.Context, studentID string) (*planner.Schedule, error) {
	query, args := builder.Select("id", "student_id", "version", "generated_at", "updated_at").
		From(builder.Table(tableSchedules)).
		Where(entsql.EQ("student_id", studentID)).
		Query()
	var sched planner.Schedule
	err := r.db.QueryRowContext(ctx, query, args...).
		Scan(&sched.ID, &sched.StudentID, &sched.Version, &sched.GeneratedAt, &sched.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query schedule: %w", err)
	}

	sched.Sessions, err = r.querySessions(ctx, entsql.EQ("schedule_id", sched.ID))
	if err != nil {
		return nil, err
	}
	if sched.Sessions == nil {
		sched.Sessions = []planner.StudySession{}
	}
	return &sched, nil
}

func (r *scheduleRepo) Session(ctx context.Context, id string) (planner.StudySession, string, error) {
	query, args := builder.Select(append([]string{"student_id"}, sessionColumns...)...).
		From(builder.Table(tableStudySessions)).
		Where(entsql.EQ("id", id)).
		Query()
	var studentID string
	sess, err := scanSession(r.db.QueryRowContext(ctx, query, args...), &studentID)
	if errors.Is(err, sql.ErrNoRows) {
		return planner.StudySession{}, "", ErrNotFound
	}
	if err != nil {
		return planner.StudySession{}, "", err
	}
	return sess, studentID, nil
}

func (r *scheduleRepo) Sessions(ctx context.Context, studentID string, filter SessionFilter) ([]planner.StudySession, error) {
	preds := []*entsql.Predicate{entsql.EQ("student_id", studentID)}
	if filter.Status != "" {
		preds = append(preds, entsql.EQ("status", string(filter.Status)))
	}
	if !filter.From.IsZero() {
		preds = append(preds, entsql.GTE("date", formatDate(filter.From)))
	}
	if !filter.To.IsZero() {
		preds = append(preds, entsql.LTE("date", formatDate(filter.To)))
	}
	return r.querySessions(ctx, entsql.And(preds...))
}

func (r *scheduleRepo) querySessions(ctx context.Context, where *entsql.Predicate) ([]planner.StudySession, error) {
	query, args := builder.Select(sessionColumns...).
		From(builder.Table(tableStudySessions)).
		Where(where).
		OrderBy(entsql.Asc("date"), entsql.Asc("position")).
		Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var out []planner.StudySession
	for rows.Next() {
		s, err := scanSession(rows, nil)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return out, nil
}

func (r *scheduleRepo) UpdateSession(ctx context.Context, sess planner.StudySession, ev *SessionEventData) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		var scheduleID string
		query, args := builder.Select("schedule_id").
			From(builder.Table(tableStudySessions)).
			Where(entsql.EQ("id", sess.ID)).
			Query()
		err := tx.QueryRowContext(ctx, query, args...).Scan(&scheduleID)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("query session: %w", err)
		}

		query, args = builder.Update(tableStudySessions).
			Set("date", formatDate(sess.Date)).
			Set("start_time", sess.StartTime).
			Set("duration_ns", int64(sess.Duration)).
			Set("status", string(sess.Status)).
			Set("actual_start", nullTime(sess.ActualStart)).
			Set("actual_end", nullTime(sess.ActualEnd)).
			Set("feedback", string(sess.Feedback)).
			Set("notes", sess.Notes).
			Where(entsql.EQ("id", sess.ID)).
			Query()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("update session: %w", err)
		}

		query, args = builder.Update(tableSchedules).
			Set("updated_at", time.Now().UTC()).
			Where(entsql.EQ("id", scheduleID)).
			Query()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("touch schedule: %w", err)
		}

		if ev == nil {
			return nil
		}
		seq, err := r.seq.Next(ctx, tx)
		if err != nil {
			return err
		}
		return insertSessionEvent(ctx, tx, seq, *ev)
	})
}

func sessionValues(s planner.StudySession) []any {
	return []any{
		s.ID, s.TopicID, s.SubjectID, formatDate(s.Date), s.StartTime, int64(s.Duration),
		string(s.Type), string(s.CognitiveLoad), string(s.Status),
		nullTime(s.ActualStart), nullTime(s.ActualEnd), string(s.Feedback), s.Notes,
	}
}

// scanSession reads the sessionColumns, preceded by the student id when
// studentID is non-nil.
func scanSession(row rowScanner, studentID *string) (planner.StudySession, error) {
	var (
		s                 planner.StudySession
		date              string
		durNS             int64
		typ, load, status string
		start, end        sql.NullTime
		feedback, notes   sql.NullString
	)
	dest := []any{
		&s.ID, &s.TopicID, &s.SubjectID, &date, &s.StartTime, &durNS,
		&typ, &load, &status, &start, &end, &feedback, &notes,
	}
	if studentID != nil {
		dest = append([]any{studentID}, dest...)
	}
	if err := row.Scan(dest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return s, err
		}
		return s, fmt.Errorf("scan session: %w", err)
	}

	d, err := parseDate(date)
	if err != nil {
		return s, fmt.Errorf("session %s date: %w", s.ID, err)
	}
	s.Date = d
	s.Duration = time.Duration(durNS)
	s.Type = planner.SessionType(typ)
	s.CognitiveLoad = planner.CognitiveLoad(load)
	s.Status = planner.SessionStatus(status)
	s.ActualStart = timePtr(start)
	s.ActualEnd = timePtr(end)
	s.Feedback = planner.Feedback(feedback.String)
	s.Notes = notes.String
	return s, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
