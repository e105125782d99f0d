package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/punchclockhq/punchclock/pkg/accounts"
	"github.com/punchclockhq/punchclock/pkg/dashboard"
	"github.com/punchclockhq/punchclock/pkg/lifecycle"
	"github.com/punchclockhq/punchclock/pkg/observability"
	"github.com/punchclockhq/punchclock/pkg/quota"
	"github.com/punchclockhq/punchclock/pkg/store"
	"github.com/punchclockhq/punchclock/pkg/timesheet"
)

// Server wires the HTTP surface over the domain services.
type Server struct {
	store     *store.Store
	accounts  *accounts.Service
	quota     *quota.Checker
	lifecycle *lifecycle.Service
	timesheet *timesheet.Service
	dashboard *dashboard.Service

	logger  *observability.Logger
	metrics *observability.Metrics
	otel    *observability.OTelMetrics
}

// Options carries the dependencies for NewServer. Logger is required;
// Metrics and OTel may be nil to disable the respective instrumentation.
type Options struct {
	Store     *store.Store
	Accounts  *accounts.Service
	Quota     *quota.Checker
	Lifecycle *lifecycle.Service
	Timesheet *timesheet.Service
	Dashboard *dashboard.Service
	Logger    *observability.Logger
	Metrics   *observability.Metrics
	OTel      *observability.OTelMetrics
}

// NewServer creates a new API server
func NewServer(opts Options) *Server {
	return &Server{
		store:     opts.Store,
		accounts:  opts.Accounts,
		quota:     opts.Quota,
		lifecycle: opts.Lifecycle,
		timesheet: opts.Timesheet,
		dashboard: opts.Dashboard,
		logger:    opts.Logger,
		metrics:   opts.Metrics,
		otel:      opts.OTel,
	}
}

// RegisterRoutes registers all API routes on the router.
func (s *Server) RegisterRoutes(router *mux.Router) {
	router.Use(s.recoveryMiddleware)
	router.Use(s.loggingMiddleware)
	if s.metrics != nil {
		router.Use(observability.HTTPMetricsMiddleware(s.metrics))
	}

	v1 := router.PathPrefix("/api/v1").Subrouter()

	v1.HandleFunc("/users", s.Signup).Methods("POST")
	v1.HandleFunc("/users/{id}", s.GetUser).Methods("GET")
	v1.HandleFunc("/users/{id}", s.UpdateUser).Methods("PUT")
	v1.HandleFunc("/users/{id}/subscription", s.GetUserSubscription).Methods("GET")

	v1.HandleFunc("/orgs", s.CreateOrganization).Methods("POST")
	v1.HandleFunc("/orgs", s.ListOrganizations).Methods("GET")
	v1.HandleFunc("/orgs/{id}", s.GetOrganization).Methods("GET")
	v1.HandleFunc("/orgs/{id}", s.UpdateOrganization).Methods("PUT")

	v1.HandleFunc("/subscriptions", s.CreateSubscription).Methods("POST")
	v1.HandleFunc("/subscriptions/{id}", s.GetSubscription).Methods("GET")
	v1.HandleFunc("/subscriptions/{id}", s.UpdateSubscription).Methods("PUT")

	v1.HandleFunc("/customers", s.CreateCustomer).Methods("POST")
	v1.HandleFunc("/customers", s.ListCustomers).Methods("GET")
	v1.HandleFunc("/customers/{id}", s.GetCustomer).Methods("GET")
	v1.HandleFunc("/customers/{id}", s.UpdateCustomer).Methods("PUT")
	v1.HandleFunc("/customers/{id}", s.DeleteCustomer).Methods("DELETE")

	v1.HandleFunc("/projects", s.CreateProject).Methods("POST")
	v1.HandleFunc("/projects", s.ListProjects).Methods("GET")
	v1.HandleFunc("/projects/{id}", s.GetProject).Methods("GET")
	v1.HandleFunc("/projects/{id}", s.UpdateProject).Methods("PUT")
	v1.HandleFunc("/projects/{id}", s.DeleteProject).Methods("DELETE")

	v1.HandleFunc("/time-entries", s.CreateTimeEntry).Methods("POST")
	v1.HandleFunc("/time-entries", s.ListTimeEntries).Methods("GET")
	v1.HandleFunc("/time-entries/{id}", s.GetTimeEntry).Methods("GET")
	v1.HandleFunc("/time-entries/{id}", s.UpdateTimeEntry).Methods("PUT")
	v1.HandleFunc("/time-entries/{id}", s.DeleteTimeEntry).Methods("DELETE")

	v1.HandleFunc("/dashboard", s.GetDashboard).Methods("GET")
}

// Handler returns the fully-wired root handler with tracing instrumentation.
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()
	s.RegisterRoutes(router)
	return otelhttp.NewHandler(router, "punchclock-api")
}
