package domain

import (
	"context"
	"errors"
	"time"
)

// ErrInvalidTimeWindow is returned when an event window is inverted or
// crosses midnight. Midnight-crossing windows are rejected rather than
// interpreted as wraparound.
var ErrInvalidTimeWindow = errors.New("invalid time window")

// ErrAlreadyAssigned is returned when assigning a staff member who already
// holds a role on the event.
var ErrAlreadyAssigned = errors.New("staff member already assigned")

// ErrForbidden is returned when the caller is not allowed to act on the event.
var ErrForbidden = errors.New("forbidden")

// Event is a staffed occasion on a single calendar day. Date is "YYYY-MM-DD",
// times are "HH:MM". IgnoreScheduleConflicts treats every staff member as
// fully available; ClassSuspended skips subject-schedule conflicts while
// still honoring regular schedules and leave dates.
// swagger:model Event
type Event struct {
	ID                      string    `json:"id"`
	Name                    string    `json:"name"`
	Location                string    `json:"location,omitempty"`
	Date                    string    `json:"date"`
	StartTime               string    `json:"start_time"`
	EndTime                 string    `json:"end_time"`
	IgnoreScheduleConflicts bool      `json:"ignore_schedule_conflicts"`
	ClassSuspended          bool      `json:"class_suspended"`
	OwnerID                 string    `json:"owner_id"`
	CreatedAt               time.Time `json:"created_at"`
	UpdatedAt               time.Time `json:"updated_at"`
}

// NewEvent returns a new Event with the given fields. ID is typically set by
// the repository on create.
func NewEvent(name, location, date, startTime, endTime, ownerID string, createdAt, updatedAt time.Time) *Event {
	return &Event{
		Name:      name,
		Location:  location,
		Date:      date,
		StartTime: startTime,
		EndTime:   endTime,
		OwnerID:   ownerID,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// Assignment records one staff member covering one role at an event.
// swagger:model Assignment
type Assignment struct {
	EventID    string    `json:"event_id"`
	StaffID    string    `json:"staff_id"`
	Role       Role      `json:"-"`
	RoleName   string    `json:"role"`
	AssignedAt time.Time `json:"assigned_at"`
}

// NewAssignment returns an Assignment with RoleName derived from role.
func NewAssignment(eventID, staffID string, role Role, assignedAt time.Time) *Assignment {
	return &Assignment{
		EventID:    eventID,
		StaffID:    staffID,
		Role:       role,
		RoleName:   role.String(),
		AssignedAt: assignedAt,
	}
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	ListByOwnerID(ctx context.Context, ownerID string) ([]*Event, error)
	Update(ctx context.Context, event *Event) error
	Delete(ctx context.Context, id string) error
}

// AssignmentRepository defines storage for event staffing assignments.
type AssignmentRepository interface {
	Add(ctx context.Context, a *Assignment) error
	Remove(ctx context.Context, eventID, staffID string, role Role) error
	ListByEventID(ctx context.Context, eventID string) ([]*Assignment, error)
}

// EventService defines the business logic for events and their assignments.
type EventService interface {
	CreateEvent(ctx context.Context, event *Event) error
	GetEventByID(ctx context.Context, eventID string) (*Event, []*Assignment, error)
	ListEventsByOwner(ctx context.Context, ownerID string) ([]*Event, error)
	UpdateEvent(ctx context.Context, event *Event) error
	DeleteEvent(ctx context.Context, eventID, ownerID string) error
	AssignStaff(ctx context.Context, eventID, staffID string, role Role) (*Assignment, error)
	UnassignStaff(ctx context.Context, eventID, staffID string, role Role) error
}
