package services

import (
	"context"
	"fmt"

	"mediastaffing/internal/domain"
)

// fakeStaffRepo is an in-memory StaffRepository for tests.
type fakeStaffRepo struct {
	byID   map[string]*domain.StaffMember
	nextID int
	err    error // if set, every call returns this error
}

func newFakeStaffRepo() *fakeStaffRepo {
	return &fakeStaffRepo{byID: make(map[string]*domain.StaffMember), nextID: 1}
}

func (f *fakeStaffRepo) Create(ctx context.Context, staff *domain.StaffMember) error {
	if f.err != nil {
		return f.err
	}
	staff.ID = fmt.Sprintf("st-%d", f.nextID)
	f.nextID++
	f.byID[staff.ID] = staff
	return nil
}

func (f *fakeStaffRepo) GetByID(ctx context.Context, id string) (*domain.StaffMember, error) {
	if f.err != nil {
		return nil, f.err
	}
	if s, ok := f.byID[id]; ok {
		return s, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeStaffRepo) List(ctx context.Context) ([]*domain.StaffMember, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*domain.StaffMember, 0, len(f.byID))
	// Deterministic order by insertion id.
	for i := 1; i < f.nextID; i++ {
		if s, ok := f.byID[fmt.Sprintf("st-%d", i)]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStaffRepo) Update(ctx context.Context, staff *domain.StaffMember) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.byID[staff.ID]; !ok {
		return domain.ErrNotFound
	}
	f.byID[staff.ID] = staff
	return nil
}

func (f *fakeStaffRepo) Delete(ctx context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeStaffRepo) ReplaceSchedules(ctx context.Context, staffID string, schedules []domain.Schedule) error {
	if f.err != nil {
		return f.err
	}
	if s, ok := f.byID[staffID]; ok {
		s.Schedules = schedules
	}
	return nil
}

func (f *fakeStaffRepo) ReplaceSubjectSchedules(ctx context.Context, staffID string, subjects []domain.SubjectSchedule) error {
	if f.err != nil {
		return f.err
	}
	if s, ok := f.byID[staffID]; ok {
		s.SubjectSchedules = subjects
	}
	return nil
}

func (f *fakeStaffRepo) ReplaceLeaveDates(ctx context.Context, staffID string, leaves []domain.LeaveDate) error {
	if f.err != nil {
		return f.err
	}
	if s, ok := f.byID[staffID]; ok {
		s.LeaveDates = leaves
	}
	return nil
}

// fakeEventRepo is an in-memory EventRepository for tests.
type fakeEventRepo struct {
	byID   map[string]*domain.Event
	nextID int
	err    error
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{byID: make(map[string]*domain.Event), nextID: 1}
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	if f.err != nil {
		return f.err
	}
	e.ID = fmt.Sprintf("ev-%d", f.nextID)
	f.nextID++
	f.byID[e.ID] = e
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	if e, ok := f.byID[id]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) ListByOwnerID(ctx context.Context, ownerID string) ([]*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.Event
	for i := 1; i < f.nextID; i++ {
		if e, ok := f.byID[fmt.Sprintf("ev-%d", i)]; ok && e.OwnerID == ownerID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) Update(ctx context.Context, e *domain.Event) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.byID[e.ID]; !ok {
		return domain.ErrNotFound
	}
	f.byID[e.ID] = e
	return nil
}

func (f *fakeEventRepo) Delete(ctx context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

// fakeAssignmentRepo is an in-memory AssignmentRepository for tests.
type fakeAssignmentRepo struct {
	assignments []*domain.Assignment
	err         error
}

func (f *fakeAssignmentRepo) Add(ctx context.Context, a *domain.Assignment) error {
	if f.err != nil {
		return f.err
	}
	for _, existing := range f.assignments {
		if existing.EventID == a.EventID && existing.StaffID == a.StaffID && existing.Role == a.Role {
			return domain.ErrDuplicate
		}
	}
	f.assignments = append(f.assignments, a)
	return nil
}

func (f *fakeAssignmentRepo) Remove(ctx context.Context, eventID, staffID string, role domain.Role) error {
	if f.err != nil {
		return f.err
	}
	for i, a := range f.assignments {
		if a.EventID == eventID && a.StaffID == staffID && a.Role == role {
			f.assignments = append(f.assignments[:i], f.assignments[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeAssignmentRepo) ListByEventID(ctx context.Context, eventID string) ([]*domain.Assignment, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.Assignment
	for _, a := range f.assignments {
		if a.EventID == eventID {
			out = append(out, a)
		}
	}
	return out, nil
}

// fakeEmailService records sent notices.
type fakeEmailService struct {
	assignments   []*domain.AssignmentEmailData
	unassignments []*domain.UnassignmentEmailData
	err           error
}

func (f *fakeEmailService) SendAssignmentNotice(ctx context.Context, data *domain.AssignmentEmailData) error {
	if f.err != nil {
		return f.err
	}
	f.assignments = append(f.assignments, data)
	return nil
}

func (f *fakeEmailService) SendUnassignmentNotice(ctx context.Context, data *domain.UnassignmentEmailData) error {
	if f.err != nil {
		return f.err
	}
	f.unassignments = append(f.unassignments, data)
	return nil
}
