package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"mediastaffing/internal/domain"
)

type staffRepository struct {
	DB *sql.DB
}

func NewStaffRepository(db *sql.DB) domain.StaffRepository {
	return &staffRepository{DB: db}
}

func rolesToArray(roles domain.RoleSet) []string {
	return roles.Names()
}

func rolesFromArray(names []string) (domain.RoleSet, error) {
	var set domain.RoleSet
	for _, name := range names {
		r, err := domain.ParseRole(name)
		if err != nil {
			return 0, err
		}
		set |= domain.RoleSet(r)
	}
	return set, nil
}

func (r *staffRepository) Create(ctx context.Context, staff *domain.StaffMember) error {
	query := `
		INSERT INTO staff (name, email, roles, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		staff.Name, staff.Email, pq.Array(rolesToArray(staff.Roles)), staff.CreatedAt, staff.UpdatedAt,
	).Scan(&staff.ID)
	if err != nil {
		return err
	}
	if err := r.ReplaceSchedules(ctx, staff.ID, staff.Schedules); err != nil {
		return err
	}
	if err := r.ReplaceSubjectSchedules(ctx, staff.ID, staff.SubjectSchedules); err != nil {
		return err
	}
	return r.ReplaceLeaveDates(ctx, staff.ID, staff.LeaveDates)
}

func (r *staffRepository) GetByID(ctx context.Context, id string) (*domain.StaffMember, error) {
	query := `
		SELECT id, name, email, roles, created_at, updated_at
		FROM staff
		WHERE id = $1
	`
	staff := &domain.StaffMember{}
	var email sql.NullString
	var roles []string
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&staff.ID, &staff.Name, &email, pq.Array(&roles), &staff.CreatedAt, &staff.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	staff.Email = email.String
	if staff.Roles, err = rolesFromArray(roles); err != nil {
		return nil, err
	}
	if err := r.loadChildren(ctx, staff); err != nil {
		return nil, err
	}
	return staff, nil
}

func (r *staffRepository) List(ctx context.Context) ([]*domain.StaffMember, error) {
	query := `
		SELECT id, name, email, roles, created_at, updated_at
		FROM staff
		ORDER BY name, id
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	staffList := make([]*domain.StaffMember, 0)
	for rows.Next() {
		staff := &domain.StaffMember{}
		var email sql.NullString
		var roles []string
		if err := rows.Scan(&staff.ID, &staff.Name, &email, pq.Array(&roles), &staff.CreatedAt, &staff.UpdatedAt); err != nil {
			return nil, err
		}
		staff.Email = email.String
		if staff.Roles, err = rolesFromArray(roles); err != nil {
			return nil, err
		}
		staffList = append(staffList, staff)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Children are loaded per staff member. Rosters are small; the N+1 is
	// acceptable and keeps the queries simple.
	for _, staff := range staffList {
		if err := r.loadChildren(ctx, staff); err != nil {
			return nil, err
		}
	}
	return staffList, nil
}

func (r *staffRepository) loadChildren(ctx context.Context, staff *domain.StaffMember) error {
	schedules, err := r.listSchedules(ctx, staff.ID)
	if err != nil {
		return err
	}
	staff.Schedules = schedules

	subjects, err := r.listSubjectSchedules(ctx, staff.ID)
	if err != nil {
		return err
	}
	staff.SubjectSchedules = subjects

	leaves, err := r.listLeaveDates(ctx, staff.ID)
	if err != nil {
		return err
	}
	staff.LeaveDates = leaves
	return nil
}

func (r *staffRepository) listSchedules(ctx context.Context, staffID string) ([]domain.Schedule, error) {
	query := `
		SELECT id, day_of_week, start_time, end_time, subject, subject_schedule_id
		FROM staff_schedules
		WHERE staff_id = $1
		ORDER BY day_of_week, start_time
	`
	rows, err := r.DB.QueryContext(ctx, query, staffID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	schedules := make([]domain.Schedule, 0)
	for rows.Next() {
		var s domain.Schedule
		var subject, subjectScheduleID sql.NullString
		if err := rows.Scan(&s.ID, &s.DayOfWeek, &s.StartTime, &s.EndTime, &subject, &subjectScheduleID); err != nil {
			return nil, err
		}
		s.Subject = subject.String
		s.SubjectScheduleID = subjectScheduleID.String
		schedules = append(schedules, s)
	}
	return schedules, rows.Err()
}

func (r *staffRepository) listSubjectSchedules(ctx context.Context, staffID string) ([]domain.SubjectSchedule, error) {
	query := `
		SELECT id, subject
		FROM subject_schedules
		WHERE staff_id = $1
		ORDER BY subject, id
	`
	rows, err := r.DB.QueryContext(ctx, query, staffID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subjects := make([]domain.SubjectSchedule, 0)
	for rows.Next() {
		var s domain.SubjectSchedule
		if err := rows.Scan(&s.ID, &s.Subject); err != nil {
			return nil, err
		}
		subjects = append(subjects, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range subjects {
		query := `
			SELECT id, day_of_week, start_time, end_time
			FROM subject_schedule_entries
			WHERE subject_schedule_id = $1
			ORDER BY day_of_week, start_time
		`
		entryRows, err := r.DB.QueryContext(ctx, query, subjects[i].ID)
		if err != nil {
			return nil, err
		}
		entries := make([]domain.Schedule, 0)
		for entryRows.Next() {
			var e domain.Schedule
			if err := entryRows.Scan(&e.ID, &e.DayOfWeek, &e.StartTime, &e.EndTime); err != nil {
				entryRows.Close()
				return nil, err
			}
			e.Subject = subjects[i].Subject
			e.SubjectScheduleID = subjects[i].ID
			entries = append(entries, e)
		}
		if err := entryRows.Err(); err != nil {
			entryRows.Close()
			return nil, err
		}
		entryRows.Close()
		subjects[i].Schedules = entries
	}
	return subjects, nil
}

func (r *staffRepository) listLeaveDates(ctx context.Context, staffID string) ([]domain.LeaveDate, error) {
	query := `
		SELECT id, start_date, end_date
		FROM leave_dates
		WHERE staff_id = $1
		ORDER BY start_date
	`
	rows, err := r.DB.QueryContext(ctx, query, staffID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leaves := make([]domain.LeaveDate, 0)
	for rows.Next() {
		var l domain.LeaveDate
		if err := rows.Scan(&l.ID, &l.StartDate, &l.EndDate); err != nil {
			return nil, err
		}
		leaves = append(leaves, l)
	}
	return leaves, rows.Err()
}

func (r *staffRepository) Update(ctx context.Context, staff *domain.StaffMember) error {
	query := `
		UPDATE staff
		SET name = $2, email = $3, roles = $4, updated_at = $5
		WHERE id = $1
	`
	result, err := r.DB.ExecContext(ctx, query,
		staff.ID, staff.Name, staff.Email, pq.Array(rolesToArray(staff.Roles)), staff.UpdatedAt,
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

func (r *staffRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM staff WHERE id = $1`
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

func (r *staffRepository) ReplaceSchedules(ctx context.Context, staffID string, schedules []domain.Schedule) error {
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM staff_schedules WHERE staff_id = $1`, staffID); err != nil {
		return err
	}
	query := `
		INSERT INTO staff_schedules (staff_id, day_of_week, start_time, end_time, subject, subject_schedule_id)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''))
	`
	for _, s := range schedules {
		if _, err := r.DB.ExecContext(ctx, query, staffID, s.DayOfWeek, s.StartTime, s.EndTime, s.Subject, s.SubjectScheduleID); err != nil {
			return err
		}
	}
	return nil
}

func (r *staffRepository) ReplaceSubjectSchedules(ctx context.Context, staffID string, subjects []domain.SubjectSchedule) error {
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM subject_schedules WHERE staff_id = $1`, staffID); err != nil {
		return err
	}
	for _, subject := range subjects {
		var subjectID string
		query := `
			INSERT INTO subject_schedules (staff_id, subject)
			VALUES ($1, $2)
			RETURNING id
		`
		if err := r.DB.QueryRowContext(ctx, query, staffID, subject.Subject).Scan(&subjectID); err != nil {
			return err
		}
		entryQuery := `
			INSERT INTO subject_schedule_entries (subject_schedule_id, day_of_week, start_time, end_time)
			VALUES ($1, $2, $3, $4)
		`
		for _, e := range subject.Schedules {
			if _, err := r.DB.ExecContext(ctx, entryQuery, subjectID, e.DayOfWeek, e.StartTime, e.EndTime); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *staffRepository) ReplaceLeaveDates(ctx context.Context, staffID string, leaves []domain.LeaveDate) error {
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM leave_dates WHERE staff_id = $1`, staffID); err != nil {
		return err
	}
	query := `
		INSERT INTO leave_dates (staff_id, start_date, end_date)
		VALUES ($1, $2, $3)
	`
	for _, l := range leaves {
		if _, err := r.DB.ExecContext(ctx, query, staffID, l.StartDate, l.EndDate); err != nil {
			return err
		}
	}
	return nil
}
