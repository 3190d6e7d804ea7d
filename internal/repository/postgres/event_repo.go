package postgres

import (
	"context"
	"database/sql"

	"mediastaffing/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{DB: db}
}

func (r *eventRepository) Create(ctx context.Context, event *domain.Event) error {
	query := `
		INSERT INTO events (name, location, date, start_time, end_time, ignore_schedule_conflicts, class_suspended, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		event.Name, event.Location, event.Date, event.StartTime, event.EndTime,
		event.IgnoreScheduleConflicts, event.ClassSuspended, event.OwnerID,
		event.CreatedAt, event.UpdatedAt,
	).Scan(&event.ID)
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `
		SELECT id, name, location, date, start_time, end_time, ignore_schedule_conflicts, class_suspended, owner_id, created_at, updated_at
		FROM events
		WHERE id = $1
	`
	event := &domain.Event{}
	var location sql.NullString
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&event.ID, &event.Name, &location, &event.Date, &event.StartTime, &event.EndTime,
		&event.IgnoreScheduleConflicts, &event.ClassSuspended, &event.OwnerID,
		&event.CreatedAt, &event.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	event.Location = location.String
	return event, nil
}

func (r *eventRepository) ListByOwnerID(ctx context.Context, ownerID string) ([]*domain.Event, error) {
	query := `
		SELECT id, name, location, date, start_time, end_time, ignore_schedule_conflicts, class_suspended, owner_id, created_at, updated_at
		FROM events
		WHERE owner_id = $1
		ORDER BY date, start_time, id
	`
	rows, err := r.DB.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*domain.Event, 0)
	for rows.Next() {
		event := &domain.Event{}
		var location sql.NullString
		if err := rows.Scan(
			&event.ID, &event.Name, &location, &event.Date, &event.StartTime, &event.EndTime,
			&event.IgnoreScheduleConflicts, &event.ClassSuspended, &event.OwnerID,
			&event.CreatedAt, &event.UpdatedAt,
		); err != nil {
			return nil, err
		}
		event.Location = location.String
		events = append(events, event)
	}
	return events, rows.Err()
}

func (r *eventRepository) Update(ctx context.Context, event *domain.Event) error {
	query := `
		UPDATE events
		SET name = $2, location = $3, date = $4, start_time = $5, end_time = $6,
		    ignore_schedule_conflicts = $7, class_suspended = $8, updated_at = $9
		WHERE id = $1
	`
	result, err := r.DB.ExecContext(ctx, query,
		event.ID, event.Name, event.Location, event.Date, event.StartTime, event.EndTime,
		event.IgnoreScheduleConflicts, event.ClassSuspended, event.UpdatedAt,
	)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM events WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
