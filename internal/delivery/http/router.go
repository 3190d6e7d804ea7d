package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"mediastaffing/internal/delivery/http/controllers"
	"mediastaffing/internal/delivery/http/middleware"
	"mediastaffing/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(
	authController *controllers.AuthController,
	staffController *controllers.StaffController,
	eventController *controllers.EventController,
	availabilityController *controllers.AvailabilityController,
	verifier domain.TokenVerifier,
	logger *slog.Logger,
) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier, logger)

	// Auth
	mux.HandleFunc("POST /auth/signup", authController.SignUp)
	mux.HandleFunc("POST /auth/login", authController.Login)

	// Roster
	mux.HandleFunc("POST /staff", auth(staffController.CreateStaff))
	mux.HandleFunc("GET /staff", auth(staffController.ListStaff))
	mux.HandleFunc("GET /staff/{staffID}", auth(staffController.GetStaff))
	mux.HandleFunc("PUT /staff/{staffID}", auth(staffController.UpdateStaff))
	mux.HandleFunc("DELETE /staff/{staffID}", auth(staffController.DeleteStaff))

	// Events
	mux.HandleFunc("POST /events", auth(eventController.CreateEvent))
	mux.HandleFunc("GET /events", auth(eventController.ListEvents))
	mux.HandleFunc("GET /events/{eventID}", auth(eventController.GetEventByID))
	mux.HandleFunc("PUT /events/{eventID}", auth(eventController.UpdateEvent))
	mux.HandleFunc("DELETE /events/{eventID}", auth(eventController.DeleteEvent))

	// Assignments
	mux.HandleFunc("POST /events/{eventID}/assignments", auth(eventController.AssignStaff))
	mux.HandleFunc("DELETE /events/{eventID}/assignments/{staffID}", auth(eventController.UnassignStaff))

	// Scheduling engine
	mux.HandleFunc("GET /events/{eventID}/availability", auth(availabilityController.EventAvailability))
	mux.HandleFunc("POST /events/{eventID}/coverage", auth(availabilityController.Coverage))
	mux.HandleFunc("GET /events/{eventID}/recommendation", auth(availabilityController.Recommend))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
