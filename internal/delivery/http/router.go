package http

import (
	"net/http"

	"clinic-management-api/internal/delivery/http/handler"
	"clinic-management-api/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router              *mux.Router
	authHandler         *handler.AuthHandler
	appointmentHandler  *handler.AppointmentHandler
	availabilityHandler *handler.AvailabilityHandler
	patientHandler      *handler.PatientHandler
	serviceHandler      *handler.ServiceHandler
	providerHandler     *handler.ProviderHandler
	auditLogHandler     *handler.AuditLogHandler
	notificationHandler *handler.NotificationHandler
	authMiddleware      *middleware.AuthMiddleware
	corsMiddleware      *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	appointmentHandler *handler.AppointmentHandler,
	availabilityHandler *handler.AvailabilityHandler,
	patientHandler *handler.PatientHandler,
	serviceHandler *handler.ServiceHandler,
	providerHandler *handler.ProviderHandler,
	auditLogHandler *handler.AuditLogHandler,
	notificationHandler *handler.NotificationHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		authHandler:         authHandler,
		appointmentHandler:  appointmentHandler,
		availabilityHandler: availabilityHandler,
		patientHandler:      patientHandler,
		serviceHandler:      serviceHandler,
		providerHandler:     providerHandler,
		auditLogHandler:     auditLogHandler,
		notificationHandler: notificationHandler,
		authMiddleware:      authMiddleware,
		corsMiddleware:      corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register-clinic", r.authHandler.RegisterClinic).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Scheduling (any clinic member)
	scheduling := api.NewRoute().Subrouter()
	scheduling.Use(r.authMiddleware.Authenticate)
	scheduling.Use(middleware.RequireStaff)
	scheduling.HandleFunc("/appointments", r.appointmentHandler.CreateAppointments).Methods(http.MethodPost)
	// Cancellation kept as GET for compatibility with existing clients
	scheduling.HandleFunc("/appointments/{id}/cancel", r.appointmentHandler.CancelAppointment).Methods(http.MethodGet)
	scheduling.HandleFunc("/appointments/{id}/finalize", r.appointmentHandler.FinalizeAppointment).Methods(http.MethodPut)
	scheduling.HandleFunc("/providers/{id}/availability", r.appointmentHandler.GetDayAvailability).Methods(http.MethodGet)
	scheduling.HandleFunc("/patients", r.patientHandler.CreatePatient).Methods(http.MethodPost)
	scheduling.HandleFunc("/patients", r.patientHandler.GetPatients).Methods(http.MethodGet)
	scheduling.HandleFunc("/services", r.serviceHandler.GetServices).Methods(http.MethodGet)
	scheduling.HandleFunc("/notifications", r.notificationHandler.GetMyNotifications).Methods(http.MethodGet)
	scheduling.HandleFunc("/notifications/{id}/read", r.notificationHandler.MarkNotificationRead).Methods(http.MethodPut)

	// Admin routes
	admin := api.NewRoute().Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/providers", r.providerHandler.CreateProvider).Methods(http.MethodPost)
	admin.HandleFunc("/providers", r.providerHandler.GetProviders).Methods(http.MethodGet)
	admin.HandleFunc("/providers/{id}/windows", r.availabilityHandler.GetWeekSchedule).Methods(http.MethodGet)
	admin.HandleFunc("/providers/{id}/windows", r.availabilityHandler.ReplaceWeekSchedule).Methods(http.MethodPut)
	admin.HandleFunc("/services", r.serviceHandler.CreateService).Methods(http.MethodPost)
	admin.HandleFunc("/services/{id}", r.serviceHandler.UpdateService).Methods(http.MethodPut)
	admin.HandleFunc("/services/{id}", r.serviceHandler.DeleteService).Methods(http.MethodDelete)
	admin.HandleFunc("/audit-logs", r.auditLogHandler.GetAuditLogs).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
