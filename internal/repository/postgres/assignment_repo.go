package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"mediastaffing/internal/domain"
)

type assignmentRepository struct {
	DB *sql.DB
}

func NewAssignmentRepository(db *sql.DB) domain.AssignmentRepository {
	return &assignmentRepository{DB: db}
}

func (r *assignmentRepository) Add(ctx context.Context, a *domain.Assignment) error {
	query := `
		INSERT INTO event_assignments (event_id, staff_id, role, assigned_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.DB.ExecContext(ctx, query, a.EventID, a.StaffID, a.Role.String(), a.AssignedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return domain.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *assignmentRepository) Remove(ctx context.Context, eventID, staffID string, role domain.Role) error {
	query := `
		DELETE FROM event_assignments
		WHERE event_id = $1 AND staff_id = $2 AND role = $3
	`
	result, err := r.DB.ExecContext(ctx, query, eventID, staffID, role.String())
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *assignmentRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Assignment, error) {
	query := `
		SELECT event_id, staff_id, role, assigned_at
		FROM event_assignments
		WHERE event_id = $1
		ORDER BY assigned_at, staff_id
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignments := make([]*domain.Assignment, 0)
	for rows.Next() {
		a := &domain.Assignment{}
		var roleName string
		if err := rows.Scan(&a.EventID, &a.StaffID, &roleName, &a.AssignedAt); err != nil {
			return nil, err
		}
		role, err := domain.ParseRole(roleName)
		if err != nil {
			return nil, err
		}
		a.Role = role
		a.RoleName = roleName
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}
