package calendar

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/leadforge/leadforge/internal/shared"
)

// Repository provides PostgreSQL backed persistence for events and their
// attendee links.
type Repository interface {
	GetByID(ctx context.Context, id int64) (*Event, error)
	// ListForUser returns events the user attends. companyID zero means no
	// company filter.
	ListForUser(ctx context.Context, userID, companyID int64) ([]Event, error)
	Create(ctx context.Context, event Event) (*Event, error)
	// Update rewrites the event row. When replaceAttendees is true the
	// attendee set is replaced with event.AttendeeIDs.
	Update(ctx context.Context, event Event, replaceAttendees bool) error
	Delete(ctx context.Context, id int64) error
}

type pgxDB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

type repository struct {
	db pgxDB
}

// NewRepository constructs a repository.
func NewRepository(db pgxDB) Repository {
	return &repository{db: db}
}

const eventColumns = `id, COALESCE(company_id, 0), name, COALESCE(description, ''), event_type,
	start_time, end_time, is_all_day, COALESCE(location, ''), COALESCE(meeting_url, ''),
	recurrence, created_by, created_at, updated_by, updated_at`

func (r *repository) GetByID(ctx context.Context, id int64) (*Event, error) {
	var event Event
	err := r.db.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id).Scan(
		&event.ID, &event.CompanyID, &event.Name, &event.Description, &event.EventType,
		&event.StartTime, &event.EndTime, &event.IsAllDay, &event.Location, &event.MeetingURL,
		&event.Recurrence, &event.CreatedBy, &event.CreatedAt, &event.UpdatedBy, &event.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("calendar: query event: %w", err)
	}
	attendees, err := r.attendees(ctx, id)
	if err != nil {
		return nil, err
	}
	event.AttendeeIDs = attendees
	return &event, nil
}

func (r *repository) ListForUser(ctx context.Context, userID, companyID int64) ([]Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events
		WHERE id IN (SELECT event_id FROM event_users WHERE user_id = $1)`
	args := []any{userID}
	if companyID != 0 {
		query += ` AND company_id = $2`
		args = append(args, companyID)
	}
	query += ` ORDER BY start_time, id`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("calendar: list events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var event Event
		if err := rows.Scan(
			&event.ID, &event.CompanyID, &event.Name, &event.Description, &event.EventType,
			&event.StartTime, &event.EndTime, &event.IsAllDay, &event.Location, &event.MeetingURL,
			&event.Recurrence, &event.CreatedBy, &event.CreatedAt, &event.UpdatedBy, &event.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("calendar: scan event: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("calendar: list events: %w", err)
	}

	for i := range events {
		attendees, err := r.attendees(ctx, events[i].ID)
		if err != nil {
			return nil, err
		}
		events[i].AttendeeIDs = attendees
	}
	return events, nil
}

func (r *repository) Create(ctx context.Context, event Event) (*Event, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("calendar: begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	err = tx.QueryRow(ctx, `
		INSERT INTO events (company_id, name, description, event_type, start_time, end_time,
			is_all_day, location, meeting_url, recurrence, created_by, created_at, updated_by, updated_at)
		VALUES (NULLIF($1, 0), $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id`,
		event.CompanyID, event.Name, event.Description, event.EventType, event.StartTime, event.EndTime,
		event.IsAllDay, event.Location, event.MeetingURL, event.Recurrence,
		event.CreatedBy, event.CreatedAt, event.UpdatedBy, event.UpdatedAt,
	).Scan(&event.ID)
	if err != nil {
		return nil, fmt.Errorf("calendar: insert event: %w", err)
	}

	if err := insertAttendees(ctx, tx, event.ID, event.AttendeeIDs); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("calendar: commit tx: %w", err)
	}
	return &event, nil
}

func (r *repository) Update(ctx context.Context, event Event, replaceAttendees bool) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("calendar: begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	tag, err := tx.Exec(ctx, `
		UPDATE events SET name = $1, description = $2, event_type = $3, start_time = $4,
			end_time = $5, is_all_day = $6, location = $7, meeting_url = $8, recurrence = $9,
			updated_by = $10, updated_at = $11
		WHERE id = $12`,
		event.Name, event.Description, event.EventType, event.StartTime,
		event.EndTime, event.IsAllDay, event.Location, event.MeetingURL, event.Recurrence,
		event.UpdatedBy, event.UpdatedAt, event.ID)
	if err != nil {
		return fmt.Errorf("calendar: update event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}

	if replaceAttendees {
		if _, err := tx.Exec(ctx, `DELETE FROM event_users WHERE event_id = $1`, event.ID); err != nil {
			return fmt.Errorf("calendar: clear attendees: %w", err)
		}
		if err := insertAttendees(ctx, tx, event.ID, event.AttendeeIDs); err != nil {
			return err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("calendar: commit tx: %w", err)
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("calendar: delete event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) attendees(ctx context.Context, eventID int64) ([]int64, error) {
	rows, err := r.db.Query(ctx,
		`SELECT user_id FROM event_users WHERE event_id = $1 ORDER BY user_id`, eventID)
	if err != nil {
		return nil, fmt.Errorf("calendar: list attendees: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("calendar: scan attendee: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func insertAttendees(ctx context.Context, tx pgx.Tx, eventID int64, userIDs []int64) error {
	for _, userID := range userIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO event_users (event_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			eventID, userID); err != nil {
			return fmt.Errorf("calendar: insert attendee: %w", err)
		}
	}
	return nil
}
