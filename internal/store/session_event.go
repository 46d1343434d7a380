package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/studyplan/internal/planner"
)

var eventColumns = []string{
	"id", "sequence", "timestamp", "session_id", "student_id", "action",
	"from_status", "to_status", "feedback", "detail",
}

// eventRepo implements EventRepo.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		seq, err := r.seq.Next(ctx, tx)
		if err != nil {
			return err
		}
		return insertSessionEvent(ctx, tx, seq, data)
	})
}

// insertSessionEvent writes one event row with the given sequence number.
func insertSessionEvent(ctx context.Context, q execQuerier, seq int64, data SessionEventData) error {
	query, args := builder.Insert(tableSessionEvents).
		Columns(eventColumns[1:]...).
		Values(
			seq, time.Now().UTC(), data.SessionID, data.StudentID, data.Action,
			string(data.FromStatus), string(data.ToStatus), string(data.Feedback), data.Detail,
		).
		Query()
	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) SessionEvents(ctx context.Context, opts QueryOpts) ([]SessionEvent, error) {
	sel := builder.Select(eventColumns...).
		From(builder.Table(tableSessionEvents)).
		OrderBy(entsql.Asc("sequence"))
	if opts.StudentID != "" {
		sel.Where(entsql.EQ("student_id", opts.StudentID))
	}
	if opts.SessionID != "" {
		sel.Where(entsql.EQ("session_id", opts.SessionID))
	}
	if opts.After > 0 {
		sel.Where(entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		sel.Where(entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE("timestamp", opts.From.UTC()))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE("timestamp", opts.To.UTC()))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query session events: %w", err)
	}
	defer rows.Close()

	var out []SessionEvent
	for rows.Next() {
		var (
			e                SessionEvent
			from, to         string
			feedback, detail sql.NullString
		)
		if err := rows.Scan(
			&e.ID, &e.Sequence, &e.Timestamp, &e.SessionID, &e.StudentID, &e.Action,
			&from, &to, &feedback, &detail,
		); err != nil {
			return nil, fmt.Errorf("scan session event: %w", err)
		}
		e.FromStatus = planner.SessionStatus(from)
		e.ToStatus = planner.SessionStatus(to)
		e.Feedback = planner.Feedback(feedback.String)
		e.Detail = detail.String
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate session events: %w", err)
	}
	return out, nil
}
