package controllers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"mediastaffing/internal/delivery/http/helpers"
	"mediastaffing/internal/delivery/http/middleware"
	"mediastaffing/internal/domain"
)

// ScheduleEntry is a weekly schedule entry in staff requests.
type ScheduleEntry struct {
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// SubjectScheduleEntry is a named class block with its weekly entries.
type SubjectScheduleEntry struct {
	Subject   string          `json:"subject"`
	Schedules []ScheduleEntry `json:"schedules"`
}

// LeaveDateEntry is an inclusive leave range in staff requests.
type LeaveDateEntry struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// StaffRequest is the request body for POST /staff and PUT /staff/{staffID}.
type StaffRequest struct {
	Name             string                 `json:"name"`
	Email            string                 `json:"email"`
	Roles            []string               `json:"roles"`
	Schedules        []ScheduleEntry        `json:"schedules"`
	SubjectSchedules []SubjectScheduleEntry `json:"subject_schedules"`
	LeaveDates       []LeaveDateEntry       `json:"leave_dates"`
}

// Validate implements Validator. Detailed time and date validation happens in
// the service layer; this catches the structural problems.
func (s StaffRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(s.Name) == "" {
		errs = append(errs, "name is required")
	}
	if s.Email != "" && !emailRegex.MatchString(strings.TrimSpace(strings.ToLower(s.Email))) {
		errs = append(errs, "invalid email format")
	}
	if len(s.Roles) == 0 {
		errs = append(errs, "at least one role is required")
	}
	for _, name := range s.Roles {
		if _, err := domain.ParseRole(name); err != nil {
			errs = append(errs, fmt.Sprintf("unknown role %q", name))
		}
	}
	for _, sub := range s.SubjectSchedules {
		if strings.TrimSpace(sub.Subject) == "" {
			errs = append(errs, "subject schedule requires a subject name")
		}
	}
	return errs
}

func (s StaffRequest) toDomain() *domain.StaffMember {
	var roles domain.RoleSet
	for _, name := range s.Roles {
		if r, err := domain.ParseRole(name); err == nil {
			roles |= domain.RoleSet(r)
		}
	}
	staff := &domain.StaffMember{
		Name:  strings.TrimSpace(s.Name),
		Email: strings.TrimSpace(strings.ToLower(s.Email)),
		Roles: roles,
	}
	for _, e := range s.Schedules {
		staff.Schedules = append(staff.Schedules, domain.Schedule{
			DayOfWeek: e.DayOfWeek,
			StartTime: e.StartTime,
			EndTime:   e.EndTime,
		})
	}
	for _, sub := range s.SubjectSchedules {
		subject := domain.SubjectSchedule{Subject: strings.TrimSpace(sub.Subject)}
		for _, e := range sub.Schedules {
			subject.Schedules = append(subject.Schedules, domain.Schedule{
				DayOfWeek: e.DayOfWeek,
				StartTime: e.StartTime,
				EndTime:   e.EndTime,
				Subject:   subject.Subject,
			})
		}
		staff.SubjectSchedules = append(staff.SubjectSchedules, subject)
	}
	for _, l := range s.LeaveDates {
		staff.LeaveDates = append(staff.LeaveDates, domain.LeaveDate{
			StartDate: l.StartDate,
			EndDate:   l.EndDate,
		})
	}
	return staff
}

type StaffController struct {
	Logger  *slog.Logger
	Service domain.RosterService
}

func NewStaffController(logger *slog.Logger, svc domain.RosterService) *StaffController {
	return &StaffController{Logger: logger, Service: svc}
}

// CreateStaff godoc
// @Summary Add a staff member to the roster
// @Description Creates a roster entry with roles, weekly schedules, subject schedules, and leave dates. Requires authentication.
// @Tags staff
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body StaffRequest true "Staff member data"
// @Success 201 {object} helpers.APIResponse "data contains the created staff member"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /staff [post]
func (c *StaffController) CreateStaff(w http.ResponseWriter, r *http.Request) {
	var req StaffRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if _, ok := middleware.UserIDFromContext(r.Context()); !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	staff := req.toDomain()
	if err := c.Service.CreateStaff(r.Context(), staff); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, staff)
}

// ListStaff godoc
// @Summary List the roster
// @Description Returns all staff members with schedules, subject schedules, and leave dates. Requires authentication.
// @Tags staff
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the staff list"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /staff [get]
func (c *StaffController) ListStaff(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.UserIDFromContext(r.Context()); !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	staff, err := c.Service.ListStaff(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, staff)
}

// GetStaff godoc
// @Summary Get a staff member
// @Description Returns one staff member by ID. Requires authentication.
// @Tags staff
// @Produce json
// @Security BearerAuth
// @Param staffID path string true "Staff ID"
// @Success 200 {object} helpers.APIResponse "data contains the staff member"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /staff/{staffID} [get]
func (c *StaffController) GetStaff(w http.ResponseWriter, r *http.Request) {
	staffID := r.PathValue("staffID")
	if staffID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing staffID")
		return
	}
	if _, ok := middleware.UserIDFromContext(r.Context()); !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	staff, err := c.Service.GetStaff(r.Context(), staffID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "staff member not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, staff)
}

// UpdateStaff godoc
// @Summary Replace a staff member
// @Description Replaces the roster entry, including schedules, subject schedules, and leave dates. Requires authentication.
// @Tags staff
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param staffID path string true "Staff ID"
// @Param body body StaffRequest true "Staff member data"
// @Success 200 {object} helpers.APIResponse "data contains the updated staff member"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /staff/{staffID} [put]
func (c *StaffController) UpdateStaff(w http.ResponseWriter, r *http.Request) {
	staffID := r.PathValue("staffID")
	if staffID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing staffID")
		return
	}
	var req StaffRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if _, ok := middleware.UserIDFromContext(r.Context()); !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	staff := req.toDomain()
	staff.ID = staffID
	if err := c.Service.UpdateStaff(r.Context(), staff); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "staff member not found")
			return
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, staff)
}

// DeleteStaff godoc
// @Summary Remove a staff member
// @Description Deletes the roster entry and its schedules, subject schedules, and leave dates. Requires authentication.
// @Tags staff
// @Produce json
// @Security BearerAuth
// @Param staffID path string true "Staff ID"
// @Success 200 {object} helpers.APIResponse "data contains a confirmation message"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /staff/{staffID} [delete]
func (c *StaffController) DeleteStaff(w http.ResponseWriter, r *http.Request) {
	staffID := r.PathValue("staffID")
	if staffID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing staffID")
		return
	}
	if _, ok := middleware.UserIDFromContext(r.Context()); !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.DeleteStaff(r.Context(), staffID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "staff member not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"message": "staff member deleted"})
}
