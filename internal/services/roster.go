package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"mediastaffing/internal/domain"
	"mediastaffing/internal/scheduling"
)

type rosterService struct {
	staffRepo domain.StaffRepository
}

// NewRosterService creates a RosterService with the given repository.
func NewRosterService(staffRepo domain.StaffRepository) domain.RosterService {
	return &rosterService{staffRepo: staffRepo}
}

// validateSchedule checks day range and well-formed, non-inverted times.
func validateSchedule(s domain.Schedule) error {
	if s.DayOfWeek < 0 || s.DayOfWeek > 6 {
		return fmt.Errorf("%w: day_of_week %d out of range", domain.ErrInvalidInput, s.DayOfWeek)
	}
	start, err := scheduling.TimeToMinutes(s.StartTime)
	if err != nil {
		return err
	}
	end, err := scheduling.TimeToMinutes(s.EndTime)
	if err != nil {
		return err
	}
	if end <= start {
		return fmt.Errorf("%w: schedule %s-%s is inverted", domain.ErrInvalidInput, s.StartTime, s.EndTime)
	}
	return nil
}

func validateLeave(l domain.LeaveDate) error {
	const layout = "2006-01-02"
	start, err := time.Parse(layout, l.StartDate)
	if err != nil {
		return fmt.Errorf("%w: malformed leave start date %q", domain.ErrInvalidInput, l.StartDate)
	}
	end, err := time.Parse(layout, l.EndDate)
	if err != nil {
		return fmt.Errorf("%w: malformed leave end date %q", domain.ErrInvalidInput, l.EndDate)
	}
	if end.Before(start) {
		return fmt.Errorf("%w: leave range %s..%s is inverted", domain.ErrInvalidInput, l.StartDate, l.EndDate)
	}
	return nil
}

func validateStaff(staff *domain.StaffMember) error {
	if strings.TrimSpace(staff.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if staff.Roles == 0 {
		return fmt.Errorf("%w: at least one role is required", domain.ErrInvalidInput)
	}
	for _, s := range staff.Schedules {
		if err := validateSchedule(s); err != nil {
			return err
		}
	}
	for _, subject := range staff.SubjectSchedules {
		for _, s := range subject.Schedules {
			if err := validateSchedule(s); err != nil {
				return err
			}
		}
	}
	for _, l := range staff.LeaveDates {
		if err := validateLeave(l); err != nil {
			return err
		}
	}
	return nil
}

func (s *rosterService) CreateStaff(ctx context.Context, staff *domain.StaffMember) error {
	if err := validateStaff(staff); err != nil {
		return err
	}
	now := time.Now()
	staff.CreatedAt = now
	staff.UpdatedAt = now
	if err := s.staffRepo.Create(ctx, staff); err != nil {
		return fmt.Errorf("create staff: %w", err)
	}
	return nil
}

func (s *rosterService) GetStaff(ctx context.Context, id string) (*domain.StaffMember, error) {
	staff, err := s.staffRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get staff: %w", err)
	}
	return staff, nil
}

func (s *rosterService) ListStaff(ctx context.Context) ([]*domain.StaffMember, error) {
	staff, err := s.staffRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list staff: %w", err)
	}
	if staff == nil {
		staff = []*domain.StaffMember{}
	}
	return staff, nil
}

func (s *rosterService) UpdateStaff(ctx context.Context, staff *domain.StaffMember) error {
	if err := validateStaff(staff); err != nil {
		return err
	}
	if _, err := s.staffRepo.GetByID(ctx, staff.ID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get staff: %w", err)
	}
	staff.UpdatedAt = time.Now()
	if err := s.staffRepo.Update(ctx, staff); err != nil {
		return fmt.Errorf("update staff: %w", err)
	}
	if err := s.staffRepo.ReplaceSchedules(ctx, staff.ID, staff.Schedules); err != nil {
		return fmt.Errorf("replace schedules: %w", err)
	}
	if err := s.staffRepo.ReplaceSubjectSchedules(ctx, staff.ID, staff.SubjectSchedules); err != nil {
		return fmt.Errorf("replace subject schedules: %w", err)
	}
	if err := s.staffRepo.ReplaceLeaveDates(ctx, staff.ID, staff.LeaveDates); err != nil {
		return fmt.Errorf("replace leave dates: %w", err)
	}
	return nil
}

func (s *rosterService) DeleteStaff(ctx context.Context, id string) error {
	if err := s.staffRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete staff: %w", err)
	}
	return nil
}
