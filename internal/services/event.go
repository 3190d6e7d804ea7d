package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"mediastaffing/internal/domain"
	"mediastaffing/internal/scheduling"
)

type eventService struct {
	eventRepo      domain.EventRepository
	assignmentRepo domain.AssignmentRepository
	staffRepo      domain.StaffRepository
	emailService   domain.EmailService
	logger         *slog.Logger
}

// NewEventService creates an EventService with the given repositories.
// emailService may be nil; assignment notices are then skipped.
func NewEventService(
	eventRepo domain.EventRepository,
	assignmentRepo domain.AssignmentRepository,
	staffRepo domain.StaffRepository,
	emailService domain.EmailService,
	logger *slog.Logger,
) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		assignmentRepo: assignmentRepo,
		staffRepo:      staffRepo,
		emailService:   emailService,
		logger:         logger,
	}
}

func validateEvent(event *domain.Event) error {
	if strings.TrimSpace(event.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if _, err := time.Parse("2006-01-02", event.Date); err != nil {
		return fmt.Errorf("%w: malformed date %q", domain.ErrInvalidInput, event.Date)
	}
	return scheduling.ValidateWindow(event.StartTime, event.EndTime)
}

func (s *eventService) CreateEvent(ctx context.Context, event *domain.Event) error {
	if event.OwnerID == "" {
		return fmt.Errorf("%w: event owner is required", domain.ErrInvalidInput)
	}
	if err := validateEvent(event); err != nil {
		return err
	}
	now := time.Now()
	event.CreatedAt = now
	event.UpdatedAt = now
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (s *eventService) GetEventByID(ctx context.Context, eventID string) (*domain.Event, []*domain.Assignment, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, fmt.Errorf("get event: %w", err)
	}
	assignments, err := s.assignmentRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, nil, fmt.Errorf("list assignments: %w", err)
	}
	if assignments == nil {
		assignments = []*domain.Assignment{}
	}
	return event, assignments, nil
}

func (s *eventService) ListEventsByOwner(ctx context.Context, ownerID string) ([]*domain.Event, error) {
	events, err := s.eventRepo.ListByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, event *domain.Event) error {
	if err := validateEvent(event); err != nil {
		return err
	}
	existing, err := s.eventRepo.GetByID(ctx, event.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	event.OwnerID = existing.OwnerID
	event.CreatedAt = existing.CreatedAt
	event.UpdatedAt = time.Now()
	if err := s.eventRepo.Update(ctx, event); err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	return nil
}

func (s *eventService) DeleteEvent(ctx context.Context, eventID, ownerID string) error {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	if event.OwnerID != ownerID {
		return domain.ErrForbidden
	}
	if err := s.eventRepo.Delete(ctx, eventID); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

func (s *eventService) AssignStaff(ctx context.Context, eventID, staffID string, role domain.Role) (*domain.Assignment, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	staff, err := s.staffRepo.GetByID(ctx, staffID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get staff: %w", err)
	}
	if !staff.Roles.Has(role) {
		return nil, fmt.Errorf("%w: %s cannot serve as %s", domain.ErrInvalidInput, staff.Name, role)
	}

	// One person cannot hold two roles on the same event.
	assignments, err := s.assignmentRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	for _, a := range assignments {
		if a.StaffID == staffID {
			return nil, domain.ErrAlreadyAssigned
		}
	}

	assignment := domain.NewAssignment(eventID, staffID, role, time.Now())
	if err := s.assignmentRepo.Add(ctx, assignment); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.ErrAlreadyAssigned
		}
		return nil, fmt.Errorf("add assignment: %w", err)
	}

	s.notifyAssignment(ctx, event, staff, role)
	return assignment, nil
}

// notifyAssignment sends the assignment notice best-effort; a mail failure
// never fails the assignment.
func (s *eventService) notifyAssignment(ctx context.Context, event *domain.Event, staff *domain.StaffMember, role domain.Role) {
	if s.emailService == nil || staff.Email == "" {
		return
	}
	data := &domain.AssignmentEmailData{
		Email:     staff.Email,
		StaffName: staff.Name,
		EventName: event.Name,
		Role:      role.String(),
		Date:      event.Date,
		StartTime: event.StartTime,
		EndTime:   event.EndTime,
		Location:  event.Location,
	}
	if err := s.emailService.SendAssignmentNotice(ctx, data); err != nil {
		s.logger.WarnContext(ctx, "assignment notice failed", "event_id", event.ID, "staff_id", staff.ID, "err", err)
	}
}

func (s *eventService) UnassignStaff(ctx context.Context, eventID, staffID string, role domain.Role) error {
	if err := s.assignmentRepo.Remove(ctx, eventID, staffID, role); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("remove assignment: %w", err)
	}

	if s.emailService != nil {
		event, eventErr := s.eventRepo.GetByID(ctx, eventID)
		staff, staffErr := s.staffRepo.GetByID(ctx, staffID)
		if eventErr == nil && staffErr == nil && staff.Email != "" {
			data := &domain.UnassignmentEmailData{
				Email:     staff.Email,
				StaffName: staff.Name,
				EventName: event.Name,
				Role:      role.String(),
				Date:      event.Date,
			}
			if err := s.emailService.SendUnassignmentNotice(ctx, data); err != nil {
				s.logger.WarnContext(ctx, "unassignment notice failed", "event_id", eventID, "staff_id", staffID, "err", err)
			}
		}
	}
	return nil
}
