package http

import (
	"net/http"

	"hrms-backend/internal/handlers"
	"hrms-backend/internal/middleware"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth        *handlers.AuthHandler
	User        *handlers.UserHandler
	Employee    *handlers.EmployeeHandler
	Company     *handlers.CompanyHandler
	Attendance  *handlers.AttendanceHandler
	Correction  *handlers.CorrectionHandler
	Leave       *handlers.LeaveHandler
	Salary      *handlers.SalaryHandler
	Settings    *handlers.SettingsHandler
	Dashboard   *handlers.DashboardHandler
	Health      *handlers.HealthHandler
	AuthChecker *middleware.AuthMiddleware
}

func NewRouter(h Handlers, log *zap.Logger) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.RequestLogger(log), middleware.PanicRecovery(log), middleware.MetricsMiddleware)

	// Subrouters authenticate once; these wrappers only read the role from the context.
	am := h.AuthChecker
	admin := func(fn http.HandlerFunc) http.HandlerFunc {
		return middleware.RequireAdmin(fn).ServeHTTP
	}
	privileged := func(fn http.HandlerFunc) http.HandlerFunc {
		return middleware.RequirePrivileged(fn).ServeHTTP
	}

	r.HandleFunc("/", handlers.Root).Methods("GET")

	// Health endpoints (no auth required - for Kubernetes liveness/readiness checks)
	r.HandleFunc("/health", h.Health.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", h.Health.ReadinessHealth).Methods("GET")
	r.HandleFunc("/health/detailed", h.Health.DetailedHealth).Methods("GET")
	r.Handle("/metrics", promhttp.Handler())

	api := r.PathPrefix("/api/v1").Subrouter()

	// Public API routes - Authentication
	api.HandleFunc("/auth/register", h.Auth.Register).Methods("POST")
	api.HandleFunc("/auth/login", h.Auth.Login).Methods("POST")

	authAPI := api.PathPrefix("/auth").Subrouter()
	authAPI.Use(am.Authenticate)
	authAPI.HandleFunc("/users/me", h.Auth.Me).Methods("GET")
	authAPI.HandleFunc("/logout", h.Auth.Logout).Methods("POST")
	authAPI.HandleFunc("/2fa/setup", h.Auth.SetupTOTP).Methods("POST")
	authAPI.HandleFunc("/2fa/enable", h.Auth.EnableTOTP).Methods("POST")
	authAPI.HandleFunc("/2fa/disable", h.Auth.DisableTOTP).Methods("POST")

	usersAPI := api.PathPrefix("/users").Subrouter()
	usersAPI.Use(am.Authenticate)
	usersAPI.HandleFunc("", admin(h.User.ListUsers)).Methods("GET")
	usersAPI.HandleFunc("", admin(h.User.CreateUser)).Methods("POST")
	usersAPI.HandleFunc("", h.User.UpdateMe).Methods("PUT")
	usersAPI.HandleFunc("/{id:[0-9]+}", h.User.GetUser).Methods("GET")
	usersAPI.HandleFunc("/{id:[0-9]+}", h.User.UpdateUser).Methods("PUT")
	usersAPI.HandleFunc("/{id:[0-9]+}", admin(h.User.DeleteUser)).Methods("DELETE")

	employeesAPI := api.PathPrefix("/employees").Subrouter()
	employeesAPI.Use(am.Authenticate)
	employeesAPI.HandleFunc("", privileged(h.Employee.List)).Methods("GET")
	employeesAPI.HandleFunc("", privileged(h.Employee.Create)).Methods("POST")
	employeesAPI.HandleFunc("/me", h.Employee.Me).Methods("GET")
	employeesAPI.HandleFunc("/{employee_profile_id:[0-9]+}", h.Employee.Get).Methods("GET")
	employeesAPI.HandleFunc("/{employee_profile_id:[0-9]+}", h.Employee.Update).Methods("PUT")

	companiesAPI := api.PathPrefix("/companies").Subrouter()
	companiesAPI.Use(am.Authenticate)
	companiesAPI.HandleFunc("", privileged(h.Company.List)).Methods("GET")
	companiesAPI.HandleFunc("", admin(h.Company.Create)).Methods("POST")

	attendanceAPI := api.PathPrefix("/attendance").Subrouter()
	attendanceAPI.Use(am.Authenticate)
	attendanceAPI.HandleFunc("/check-in", h.Attendance.CheckIn).Methods("POST")
	attendanceAPI.HandleFunc("/check-out", h.Attendance.CheckOut).Methods("POST")
	attendanceAPI.HandleFunc("/me", h.Attendance.Me).Methods("GET")
	attendanceAPI.HandleFunc("/daily", privileged(h.Attendance.Daily)).Methods("GET")
	attendanceAPI.HandleFunc("/weekly", privileged(h.Attendance.Weekly)).Methods("GET")
	attendanceAPI.HandleFunc("/all", privileged(h.Attendance.All)).Methods("GET")
	attendanceAPI.HandleFunc("/manual", privileged(h.Attendance.Manual)).Methods("POST")
	attendanceAPI.HandleFunc("/employee/{employee_profile_id:[0-9]+}", h.Attendance.ByEmployee).Methods("GET")

	correctionAPI := api.PathPrefix("/attendance-correction").Subrouter()
	correctionAPI.Use(am.Authenticate)
	correctionAPI.HandleFunc("/", h.Correction.Create).Methods("POST")
	correctionAPI.HandleFunc("", h.Correction.Create).Methods("POST")
	correctionAPI.HandleFunc("/me", h.Correction.Mine).Methods("GET")
	correctionAPI.HandleFunc("/pending", privileged(h.Correction.Pending)).Methods("GET")
	correctionAPI.HandleFunc("/{request_id:[0-9]+}/approve", privileged(h.Correction.Approve)).Methods("PUT")
	correctionAPI.HandleFunc("/{request_id:[0-9]+}/reject", privileged(h.Correction.Reject)).Methods("PUT")

	leaveAPI := api.PathPrefix("/leave").Subrouter()
	leaveAPI.Use(am.Authenticate)
	leaveAPI.HandleFunc("/apply", h.Leave.Apply).Methods("POST")
	leaveAPI.HandleFunc("/my-requests", h.Leave.Mine).Methods("GET")
	leaveAPI.HandleFunc("/pending", privileged(h.Leave.Pending)).Methods("GET")
	leaveAPI.HandleFunc("/balance", h.Leave.Balance).Methods("GET")
	leaveAPI.HandleFunc("/balance", privileged(h.Leave.Allocate)).Methods("PUT")
	leaveAPI.HandleFunc("/{leave_id:[0-9]+}/approve", privileged(h.Leave.Approve)).Methods("PUT")
	leaveAPI.HandleFunc("/{leave_id:[0-9]+}/reject", privileged(h.Leave.Reject)).Methods("PUT")
	leaveAPI.HandleFunc("/{leave_id:[0-9]+}/cancel", h.Leave.Cancel).Methods("PUT")

	salaryAPI := api.PathPrefix("/salary").Subrouter()
	salaryAPI.Use(am.Authenticate)
	salaryAPI.HandleFunc("/structure", privileged(h.Salary.Create)).Methods("POST")
	salaryAPI.HandleFunc("/structure/{salary_id:[0-9]+}", privileged(h.Salary.Update)).Methods("PUT")
	salaryAPI.HandleFunc("/me", h.Salary.Mine).Methods("GET")
	salaryAPI.HandleFunc("/all", privileged(h.Salary.Payroll)).Methods("GET")
	salaryAPI.HandleFunc("/{employee_profile_id:[0-9]+}/slip", h.Salary.Slip).Methods("GET")
	salaryAPI.HandleFunc("/{employee_profile_id:[0-9]+}/slip/archive", privileged(h.Salary.Archive)).Methods("POST")

	settingsAPI := api.PathPrefix("/settings").Subrouter()
	settingsAPI.Use(am.Authenticate)
	settingsAPI.HandleFunc("/me", h.Settings.Get).Methods("GET")
	settingsAPI.HandleFunc("/me", h.Settings.Update).Methods("PUT")

	dashboardAPI := api.PathPrefix("/dashboard").Subrouter()
	dashboardAPI.Use(am.Authenticate)
	dashboardAPI.HandleFunc("/me", h.Dashboard.Employee).Methods("GET")
	dashboardAPI.HandleFunc("/admin", privileged(h.Dashboard.Admin)).Methods("GET")

	// Audit trail (admin only)
	logsAPI := api.PathPrefix("/activity-logs").Subrouter()
	logsAPI.Use(am.Authenticate)
	logsAPI.HandleFunc("", admin(h.Dashboard.ActivityLogs)).Methods("GET")

	return r
}
