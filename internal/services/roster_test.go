package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediastaffing/internal/domain"
)

func validStaff() *domain.StaffMember {
	return &domain.StaffMember{
		Name:  "Ana Reyes",
		Email: "ana@example.com",
		Roles: domain.NewRoleSet(domain.RoleVideographer),
		Schedules: []domain.Schedule{
			{DayOfWeek: 1, StartTime: "09:00", EndTime: "10:00"},
		},
		LeaveDates: []domain.LeaveDate{
			{StartDate: "2024-05-01", EndDate: "2024-05-03"},
		},
	}
}

func TestRosterService_CreateStaff(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(*domain.StaffMember)
		wantErr error
	}{
		{name: "valid", mutate: func(*domain.StaffMember) {}},
		{
			name:    "missing name",
			mutate:  func(s *domain.StaffMember) { s.Name = "  " },
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "no roles",
			mutate:  func(s *domain.StaffMember) { s.Roles = 0 },
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "day of week out of range",
			mutate:  func(s *domain.StaffMember) { s.Schedules[0].DayOfWeek = 7 },
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "inverted schedule",
			mutate:  func(s *domain.StaffMember) { s.Schedules[0].StartTime, s.Schedules[0].EndTime = "10:00", "09:00" },
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "malformed schedule time",
			mutate:  func(s *domain.StaffMember) { s.Schedules[0].StartTime = "9am" },
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "inverted leave range",
			mutate:  func(s *domain.StaffMember) { s.LeaveDates[0].StartDate, s.LeaveDates[0].EndDate = "2024-05-03", "2024-05-01" },
			wantErr: domain.ErrInvalidInput,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeStaffRepo()
			svc := NewRosterService(repo)

			staff := validStaff()
			tt.mutate(staff)
			err := svc.CreateStaff(ctx, staff)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, repo.byID)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, staff.ID)
			assert.False(t, staff.CreatedAt.IsZero())
		})
	}
}

func TestRosterService_UpdateStaff_ReplacesChildCollections(t *testing.T) {
	ctx := context.Background()
	repo := newFakeStaffRepo()
	svc := NewRosterService(repo)

	staff := validStaff()
	require.NoError(t, svc.CreateStaff(ctx, staff))

	staff.Schedules = []domain.Schedule{{DayOfWeek: 2, StartTime: "13:00", EndTime: "15:00"}}
	staff.LeaveDates = nil
	staff.SubjectSchedules = []domain.SubjectSchedule{
		{Subject: "CS101", Schedules: []domain.Schedule{{DayOfWeek: 3, StartTime: "08:00", EndTime: "09:00", SubjectScheduleID: "subj-1"}}},
	}
	require.NoError(t, svc.UpdateStaff(ctx, staff))

	stored := repo.byID[staff.ID]
	assert.Equal(t, 2, stored.Schedules[0].DayOfWeek)
	assert.Empty(t, stored.LeaveDates)
	assert.Len(t, stored.SubjectSchedules, 1)
}

func TestRosterService_UpdateStaff_NotFound(t *testing.T) {
	svc := NewRosterService(newFakeStaffRepo())
	staff := validStaff()
	staff.ID = "st-missing"
	err := svc.UpdateStaff(context.Background(), staff)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRosterService_ListStaff_EmptyIsNotError(t *testing.T) {
	svc := NewRosterService(newFakeStaffRepo())
	got, err := svc.ListStaff(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRosterService_DeleteStaff(t *testing.T) {
	ctx := context.Background()
	repo := newFakeStaffRepo()
	svc := NewRosterService(repo)

	staff := validStaff()
	require.NoError(t, svc.CreateStaff(ctx, staff))
	require.NoError(t, svc.DeleteStaff(ctx, staff.ID))
	require.ErrorIs(t, svc.DeleteStaff(ctx, staff.ID), domain.ErrNotFound)
}
