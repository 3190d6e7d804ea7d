package services

import (
	"context"
	"errors"
	"fmt"

	"mediastaffing/internal/domain"
	"mediastaffing/internal/scheduling"
)

type availabilityService struct {
	eventRepo      domain.EventRepository
	staffRepo      domain.StaffRepository
	assignmentRepo domain.AssignmentRepository
}

// NewAvailabilityService creates an AvailabilityService over the given
// repositories. Every call recomputes from a fresh roster snapshot; the
// engine itself holds no state.
func NewAvailabilityService(
	eventRepo domain.EventRepository,
	staffRepo domain.StaffRepository,
	assignmentRepo domain.AssignmentRepository,
) domain.AvailabilityService {
	return &availabilityService{
		eventRepo:      eventRepo,
		staffRepo:      staffRepo,
		assignmentRepo: assignmentRepo,
	}
}

// load fetches the event, the roster snapshot, and the IDs already claimed by
// the complementary role.
func (s *availabilityService) load(ctx context.Context, eventID string, role domain.Role) (*domain.Event, []*domain.StaffMember, []string, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, nil, domain.ErrNotFound
		}
		return nil, nil, nil, fmt.Errorf("get event: %w", err)
	}
	roster, err := s.staffRepo.List(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("list staff: %w", err)
	}
	assignments, err := s.assignmentRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("list assignments: %w", err)
	}
	var claimed []string
	for _, a := range assignments {
		if a.Role == role.Complement() {
			claimed = append(claimed, a.StaffID)
		}
	}
	return event, roster, claimed, nil
}

func (s *availabilityService) EventAvailability(ctx context.Context, eventID string, role domain.Role) ([]*domain.StaffAvailability, error) {
	event, roster, claimed, err := s.load(ctx, eventID, role)
	if err != nil {
		return nil, err
	}
	availability, err := scheduling.ComputeAvailability(
		roster, event.Date, event.StartTime, event.EndTime,
		event.IgnoreScheduleConflicts, event.ClassSuspended,
	)
	if err != nil {
		return nil, fmt.Errorf("compute availability: %w", err)
	}
	return scheduling.CandidatesForRole(availability, role, claimed), nil
}

func (s *availabilityService) Coverage(ctx context.Context, eventID string, role domain.Role, selectedStaffIDs []string) (*domain.AllocationResult, error) {
	event, roster, claimed, err := s.load(ctx, eventID, role)
	if err != nil {
		return nil, err
	}
	availability, err := scheduling.ComputeAvailability(
		roster, event.Date, event.StartTime, event.EndTime,
		event.IgnoreScheduleConflicts, event.ClassSuspended,
	)
	if err != nil {
		return nil, fmt.Errorf("compute availability: %w", err)
	}
	candidates := scheduling.CandidatesForRole(availability, role, claimed)
	result, err := scheduling.ComputeCoverage(selectedStaffIDs, candidates, event.StartTime, event.EndTime)
	if err != nil {
		return nil, fmt.Errorf("compute coverage: %w", err)
	}
	return result, nil
}

func (s *availabilityService) Recommend(ctx context.Context, eventID string, role domain.Role) (*domain.AllocationSuggestion, error) {
	candidates, err := s.EventAvailability(ctx, eventID, role)
	if err != nil {
		return nil, err
	}
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	suggestion, err := scheduling.RecommendAllocation(candidates, event.StartTime, event.EndTime)
	if err != nil {
		return nil, fmt.Errorf("recommend allocation: %w", err)
	}
	return suggestion, nil
}
