package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"mediastaffing/internal/delivery/http/helpers"
	"mediastaffing/internal/delivery/http/middleware"
	"mediastaffing/internal/domain"
)

// CoverageRequest is the request body for POST /events/{eventID}/coverage.
type CoverageRequest struct {
	Role     string   `json:"role"`
	StaffIDs []string `json:"staff_ids"`
}

// Validate implements Validator.
func (c CoverageRequest) Validate() []string {
	var errs []string
	if c.Role == "" {
		errs = append(errs, "role is required")
	} else if _, err := domain.ParseRole(c.Role); err != nil {
		errs = append(errs, "role must be \"videographer\" or \"photographer\"")
	}
	return errs
}

type AvailabilityController struct {
	Logger  *slog.Logger
	Service domain.AvailabilityService
}

func NewAvailabilityController(logger *slog.Logger, svc domain.AvailabilityService) *AvailabilityController {
	return &AvailabilityController{Logger: logger, Service: svc}
}

func roleFromQuery(w http.ResponseWriter, r *http.Request) (domain.Role, bool) {
	role, err := domain.ParseRole(r.URL.Query().Get("role"))
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "role query parameter must be \"videographer\" or \"photographer\"")
		return 0, false
	}
	return role, true
}

// EventAvailability godoc
// @Summary Availability of role candidates for an event
// @Description Runs the scheduling engine for every staff member who can take the role and is not already claimed by the complementary role on this event. Staff with no usable time in the window are omitted.
// @Tags availability
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param role query string true "Role name"
// @Success 200 {object} helpers.APIResponse "data contains per-staff availability verdicts"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/availability [get]
func (c *AvailabilityController) EventAvailability(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	role, ok := roleFromQuery(w, r)
	if !ok {
		return
	}
	if _, ok := middleware.UserIDFromContext(r.Context()); !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	availability, err := c.Service.EventAvailability(r.Context(), eventID, role)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, availability)
}

// Coverage godoc
// @Summary Coverage of an event window by selected staff
// @Description Computes the percentage of the event window covered by the selected staff members' free time, and the gaps that remain.
// @Tags availability
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param body body CoverageRequest true "Role and selected staff IDs"
// @Success 200 {object} helpers.APIResponse "data contains coverage percentage and gaps, or null when there is nothing to compute"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/coverage [post]
func (c *AvailabilityController) Coverage(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	var req CoverageRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if _, ok := middleware.UserIDFromContext(r.Context()); !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	role, _ := domain.ParseRole(req.Role)
	result, err := c.Service.Coverage(r.Context(), eventID, role, req.StaffIDs)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, result)
}

// Recommend godoc
// @Summary Recommend a staff allocation for an event role
// @Description Greedy allocation: a fully available candidate wins outright; otherwise partially available candidates are combined by descending free time until the window is covered or candidates run out.
// @Tags availability
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param role query string true "Role name"
// @Success 200 {object} helpers.APIResponse "data contains the suggestion, or null when the event has no time window"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/recommendation [get]
func (c *AvailabilityController) Recommend(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	role, ok := roleFromQuery(w, r)
	if !ok {
		return
	}
	if _, ok := middleware.UserIDFromContext(r.Context()); !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	suggestion, err := c.Service.Recommend(r.Context(), eventID, role)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, suggestion)
}

func (c *AvailabilityController) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
		return
	}
	if errors.Is(err, domain.ErrInvalidInput) || errors.Is(err, domain.ErrInvalidTimeWindow) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
}
