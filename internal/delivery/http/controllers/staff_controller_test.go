package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"mediastaffing/internal/delivery/http/helpers"
	"mediastaffing/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRosterService implements domain.RosterService for handler tests.
type fakeRosterService struct {
	createErr  error
	updateErr  error
	deleteErr  error
	getErr     error
	staff      *domain.StaffMember
	lastCreate *domain.StaffMember
	lastUpdate *domain.StaffMember
}

func (f *fakeRosterService) CreateStaff(ctx context.Context, staff *domain.StaffMember) error {
	f.lastCreate = staff
	if f.createErr != nil {
		return f.createErr
	}
	staff.ID = "st-created"
	return nil
}

func (f *fakeRosterService) GetStaff(ctx context.Context, id string) (*domain.StaffMember, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.staff, nil
}

func (f *fakeRosterService) ListStaff(ctx context.Context) ([]*domain.StaffMember, error) {
	if f.staff == nil {
		return []*domain.StaffMember{}, nil
	}
	return []*domain.StaffMember{f.staff}, nil
}

func (f *fakeRosterService) UpdateStaff(ctx context.Context, staff *domain.StaffMember) error {
	f.lastUpdate = staff
	return f.updateErr
}

func (f *fakeRosterService) DeleteStaff(ctx context.Context, id string) error {
	return f.deleteErr
}

func TestStaffController_CreateStaff(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		wantStatus     int
		wantBodySubstr string
		checkStaff     func(t *testing.T, staff *domain.StaffMember)
	}{
		{
			name: "success with schedules and leave",
			body: `{
				"name": "Ana",
				"email": "ana@example.com",
				"roles": ["videographer", "photographer"],
				"schedules": [{"day_of_week": 1, "start_time": "09:00", "end_time": "10:00"}],
				"subject_schedules": [{"subject": "CS101", "schedules": [{"day_of_week": 2, "start_time": "11:00", "end_time": "12:00"}]}],
				"leave_dates": [{"start_date": "2024-05-10", "end_date": "2024-05-12"}]
			}`,
			wantStatus: http.StatusCreated,
			checkStaff: func(t *testing.T, staff *domain.StaffMember) {
				assert.True(t, staff.Roles.Has(domain.RoleVideographer))
				assert.True(t, staff.Roles.Has(domain.RolePhotographer))
				require.Len(t, staff.Schedules, 1)
				require.Len(t, staff.SubjectSchedules, 1)
				assert.Equal(t, "CS101", staff.SubjectSchedules[0].Subject)
				assert.Equal(t, "CS101", staff.SubjectSchedules[0].Schedules[0].Subject)
				require.Len(t, staff.LeaveDates, 1)
			},
		},
		{
			name:           "missing roles",
			body:           `{"name":"Ana"}`,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "at least one role is required",
		},
		{
			name:           "unknown role",
			body:           `{"name":"Ana","roles":["editor"]}`,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "unknown role",
		},
		{
			name:           "invalid email",
			body:           `{"name":"Ana","email":"not-an-email","roles":["videographer"]}`,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "invalid email format",
		},
		{
			name:           "subject without name",
			body:           `{"name":"Ana","roles":["videographer"],"subject_schedules":[{"subject":"","schedules":[]}]}`,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "subject name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeRosterService{}
			ctrl := NewStaffController(testLogger, fake)

			req := authedRequest(http.MethodPost, "http://test/staff", tt.body)
			rr := httptest.NewRecorder()

			ctrl.CreateStaff(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantBodySubstr != "" {
				assert.Contains(t, rr.Body.String(), tt.wantBodySubstr)
			}
			if tt.checkStaff != nil {
				require.NotNil(t, fake.lastCreate)
				tt.checkStaff(t, fake.lastCreate)
			}
		})
	}
}

func TestStaffController_GetStaff(t *testing.T) {
	tests := []struct {
		name       string
		getErr     error
		wantStatus int
		wantCode   string
	}{
		{"success", nil, http.StatusOK, ""},
		{"not found", domain.ErrNotFound, http.StatusNotFound, helpers.ErrCodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeRosterService{
				staff:  &domain.StaffMember{ID: "st-1", Name: "Ana", Roles: domain.NewRoleSet(domain.RoleVideographer)},
				getErr: tt.getErr,
			}
			ctrl := NewStaffController(testLogger, fake)

			req := authedRequest(http.MethodGet, "http://test/staff/st-1", "")
			req.SetPathValue("staffID", "st-1")
			rr := httptest.NewRecorder()

			ctrl.GetStaff(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantCode != "" {
				var envelope helpers.APIResponse
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
				require.NotNil(t, envelope.Error)
				assert.Equal(t, tt.wantCode, envelope.Error.Code)
				return
			}
			var envelope struct {
				Data  *domain.StaffMember `json:"data"`
				Error *helpers.APIError   `json:"error"`
			}
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
			require.NotNil(t, envelope.Data)
			assert.Equal(t, "st-1", envelope.Data.ID)
			assert.Equal(t, []string{"videographer"}, envelope.Data.Roles.Names())
		})
	}
}

func TestStaffController_UpdateStaff(t *testing.T) {
	fake := &fakeRosterService{}
	ctrl := NewStaffController(testLogger, fake)

	body := `{"name":"Ana","roles":["photographer"]}`
	req := authedRequest(http.MethodPut, "http://test/staff/st-1", body)
	req.SetPathValue("staffID", "st-1")
	rr := httptest.NewRecorder()

	ctrl.UpdateStaff(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.NotNil(t, fake.lastUpdate)
	assert.Equal(t, "st-1", fake.lastUpdate.ID)
	assert.True(t, fake.lastUpdate.Roles.Has(domain.RolePhotographer))
}

func TestStaffController_DeleteStaff_NotFound(t *testing.T) {
	fake := &fakeRosterService{deleteErr: domain.ErrNotFound}
	ctrl := NewStaffController(testLogger, fake)

	req := authedRequest(http.MethodDelete, "http://test/staff/missing", "")
	req.SetPathValue("staffID", "missing")
	rr := httptest.NewRecorder()

	ctrl.DeleteStaff(rr, req)

	require.Equal(t, http.StatusNotFound, rr.Code)
}
