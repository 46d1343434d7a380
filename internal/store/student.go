package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/studyplan/internal/planner"
)

// dateLayout is the storage format of calendar dates.
const dateLayout = "2006-01-02"

var studentColumns = []string{
	"id", "name", "email", "branch", "weekday_hours", "weekend_hours",
	"preferred_time", "target_date", "created_at", "updated_at",
}

// studentRepo implements StudentRepo.
type studentRepo struct {
	db *sql.DB
}

func (r *studentRepo) Save(ctx context.Context, student planner.StudentProfile, subjects []planner.Subject) error {
	if student.ID == "" {
		return errors.New("save student: empty id")
	}
	now := time.Now().UTC()

	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		query, args := builder.Insert(tableStudents).
			Columns(studentColumns...).
			Values(
				student.ID, student.Name, student.Email, student.Branch,
				student.Availability.WeekdayHours, student.Availability.WeekendHours,
				string(student.PreferredTime), formatDate(student.TargetDate), now, now,
			).
			OnConflict(
				entsql.ConflictColumns("id"),
				entsql.ResolveWith(func(u *entsql.UpdateSet) {
					for _, c := range studentColumns {
						if c != "id" && c != "created_at" {
							u.SetExcluded(c)
						}
					}
				}),
			).
			Query()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("save student: %w", err)
		}

		query, args = builder.Delete(tableSubjects).
			Where(entsql.EQ("student_id", student.ID)).
			Query()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("clear subjects: %w", err)
		}

		for i, subj := range subjects {
			data, err := json.Marshal(subj)
			if err != nil {
				return fmt.Errorf("marshal subject %s: %w", subj.ID, err)
			}
			query, args := builder.Insert(tableSubjects).
				Columns("student_id", "subject_id", "position", "data").
				Values(student.ID, subj.ID, i, string(data)).
				Query()
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("save subject %s: %w", subj.ID, err)
			}
		}
		return nil
	})
}

func (r *studentRepo) Get(ctx context.Context, id string) (planner.StudentProfile, []planner.Subject, error) {
	query, args := builder.Select(studentColumns...).
		From(builder.Table(tableStudents)).
		Where(entsql.EQ("id", id)).
		Query()
	student, err := scanStudent(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return planner.StudentProfile{}, nil, err
	}

	query, args = builder.Select("data").
		From(builder.Table(tableSubjects)).
		Where(entsql.EQ("student_id", id)).
		OrderBy(entsql.Asc("position")).
		Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return planner.StudentProfile{}, nil, fmt.Errorf("query subjects: %w", err)
	}
	defer rows.Close()

	var subjects []planner.Subject
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return planner.StudentProfile{}, nil, fmt.Errorf("scan subject: %w", err)
		}
		var subj planner.Subject
		if err := json.Unmarshal([]byte(data), &subj); err != nil {
			return planner.StudentProfile{}, nil, fmt.Errorf("unmarshal subject: %w", err)
		}
		subjects = append(subjects, subj)
	}
	if err := rows.Err(); err != nil {
		return planner.StudentProfile{}, nil, fmt.Errorf("iterate subjects: %w", err)
	}
	return student, subjects, nil
}

func (r *studentRepo) Current(ctx context.Context) (planner.StudentProfile, error) {
	query, args := builder.Select(studentColumns...).
		From(builder.Table(tableStudents)).
		OrderBy(entsql.Desc("updated_at"), entsql.Asc("id")).
		Limit(1).
		Query()
	return scanStudent(r.db.QueryRowContext(ctx, query, args...))
}

func (r *studentRepo) List(ctx context.Context) ([]planner.StudentProfile, error) {
	query, args := builder.Select(studentColumns...).
		From(builder.Table(tableStudents)).
		OrderBy(entsql.Asc("name"), entsql.Asc("id")).
		Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query students: %w", err)
	}
	defer rows.Close()

	var out []planner.StudentProfile
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate students: %w", err)
	}
	return out, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanStudent(row rowScanner) (planner.StudentProfile, error) {
	var (
		s                planner.StudentProfile
		email, branch    sql.NullString
		pref, target     string
		created, updated time.Time
	)
	err := row.Scan(
		&s.ID, &s.Name, &email, &branch,
		&s.Availability.WeekdayHours, &s.Availability.WeekendHours,
		&pref, &target, &created, &updated,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return planner.StudentProfile{}, ErrNotFound
	}
	if err != nil {
		return planner.StudentProfile{}, fmt.Errorf("scan student: %w", err)
	}
	s.Email = email.String
	s.Branch = branch.String
	s.PreferredTime = planner.TimePreference(pref)
	if s.TargetDate, err = parseDate(target); err != nil {
		return planner.StudentProfile{}, fmt.Errorf("student %s target date: %w", s.ID, err)
	}
	return s, nil
}

// formatDate renders the calendar date of t.
func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// parseDate reads a stored calendar date as local midnight.
func parseDate(s string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, s, time.Local)
}
