package domain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Sentinel errors shared across repositories and services.
var (
	ErrNotFound     = errors.New("not found")
	ErrDuplicate    = errors.New("already exists")
	ErrInvalidInput = errors.New("invalid input")
)

// Role identifies a staffing role a staff member can take at an event.
// Stored as a bitmask so membership checks are a single AND.
type Role uint8

const (
	RoleVideographer Role = 1 << iota
	RolePhotographer
)

const roleNameVideographer = "videographer"
const roleNamePhotographer = "photographer"

// String returns the lowercase role name, or "unknown" for an unmapped value.
func (r Role) String() string {
	switch r {
	case RoleVideographer:
		return roleNameVideographer
	case RolePhotographer:
		return roleNamePhotographer
	}
	return "unknown"
}

// ParseRole maps a role name to its Role value.
func ParseRole(s string) (Role, error) {
	switch s {
	case roleNameVideographer:
		return RoleVideographer, nil
	case roleNamePhotographer:
		return RolePhotographer, nil
	}
	return 0, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, s)
}

// Complement returns the other staffing role. A person cannot hold both
// roles on the same event, so assignment checks always consult the complement.
func (r Role) Complement() Role {
	if r == RoleVideographer {
		return RolePhotographer
	}
	return RoleVideographer
}

// RoleSet is a bitmask of roles a staff member can perform.
// It marshals to/from a JSON array of role names.
type RoleSet uint8

// NewRoleSet returns a RoleSet containing the given roles.
func NewRoleSet(roles ...Role) RoleSet {
	var s RoleSet
	for _, r := range roles {
		s |= RoleSet(r)
	}
	return s
}

// Has reports whether the set contains the given role.
func (s RoleSet) Has(r Role) bool {
	return s&RoleSet(r) != 0
}

// Roles returns the set members in declaration order.
func (s RoleSet) Roles() []Role {
	var out []Role
	for _, r := range []Role{RoleVideographer, RolePhotographer} {
		if s.Has(r) {
			out = append(out, r)
		}
	}
	return out
}

// Names returns the role names in the set, in declaration order.
func (s RoleSet) Names() []string {
	roles := s.Roles()
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = r.String()
	}
	return names
}

func (s RoleSet) MarshalJSON() ([]byte, error) {
	names := s.Names()
	if names == nil {
		names = []string{}
	}
	return json.Marshal(names)
}

func (s *RoleSet) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	var set RoleSet
	for _, name := range names {
		r, err := ParseRole(name)
		if err != nil {
			return err
		}
		set |= RoleSet(r)
	}
	*s = set
	return nil
}

// Schedule is a recurring weekly commitment. DayOfWeek follows time.Weekday
// numbering (0 = Sunday). Times are wall-clock "HH:MM" in the event's local
// timezone; a schedule never spans midnight.
// swagger:model Schedule
type Schedule struct {
	ID                string `json:"id"`
	DayOfWeek         int    `json:"day_of_week"`
	StartTime         string `json:"start_time"`
	EndTime           string `json:"end_time"`
	Subject           string `json:"subject,omitempty"`
	SubjectScheduleID string `json:"subject_schedule_id,omitempty"`
}

// IsSubjectBound reports whether the schedule belongs to a subject schedule.
// Subject-bound entries are skipped for class-suspended events.
func (s Schedule) IsSubjectBound() bool {
	return s.SubjectScheduleID != ""
}

// SubjectSchedule groups the weekly entries of one named class or subject.
// swagger:model SubjectSchedule
type SubjectSchedule struct {
	ID        string     `json:"id"`
	Subject   string     `json:"subject"`
	Schedules []Schedule `json:"schedules"`
}

// LeaveDate is an inclusive calendar-date range during which the staff member
// is unavailable all day. Dates are "YYYY-MM-DD".
// swagger:model LeaveDate
type LeaveDate struct {
	ID        string `json:"id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// StaffMember is one roster entry with their recurring commitments and leave.
// The scheduling engine reads these; it never mutates them.
// swagger:model StaffMember
type StaffMember struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	Email            string            `json:"email,omitempty"`
	Roles            RoleSet           `json:"roles"`
	Schedules        []Schedule        `json:"schedules"`
	SubjectSchedules []SubjectSchedule `json:"subject_schedules"`
	LeaveDates       []LeaveDate       `json:"leave_dates"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

// NewStaffMember returns a new StaffMember. ID is typically set by the
// repository on create.
func NewStaffMember(name, email string, roles RoleSet, createdAt, updatedAt time.Time) *StaffMember {
	return &StaffMember{
		Name:      name,
		Email:     email,
		Roles:     roles,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// StaffRepository defines the interface for roster storage. Get and List
// return staff with schedules, subject schedules, and leave dates resolved.
type StaffRepository interface {
	Create(ctx context.Context, staff *StaffMember) error
	GetByID(ctx context.Context, id string) (*StaffMember, error)
	List(ctx context.Context) ([]*StaffMember, error)
	Update(ctx context.Context, staff *StaffMember) error
	Delete(ctx context.Context, id string) error
	ReplaceSchedules(ctx context.Context, staffID string, schedules []Schedule) error
	ReplaceSubjectSchedules(ctx context.Context, staffID string, subjects []SubjectSchedule) error
	ReplaceLeaveDates(ctx context.Context, staffID string, leaves []LeaveDate) error
}

// RosterService defines the business logic for managing the staff roster.
type RosterService interface {
	CreateStaff(ctx context.Context, staff *StaffMember) error
	GetStaff(ctx context.Context, id string) (*StaffMember, error)
	ListStaff(ctx context.Context) ([]*StaffMember, error)
	UpdateStaff(ctx context.Context, staff *StaffMember) error
	DeleteStaff(ctx context.Context, id string) error
}
