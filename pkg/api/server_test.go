package api

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/punchclockhq/punchclock/pkg/accounts"
	"github.com/punchclockhq/punchclock/pkg/dashboard"
	"github.com/punchclockhq/punchclock/pkg/domain"
	"github.com/punchclockhq/punchclock/pkg/lifecycle"
	"github.com/punchclockhq/punchclock/pkg/observability"
	"github.com/punchclockhq/punchclock/pkg/quota"
	"github.com/punchclockhq/punchclock/pkg/store"
	"github.com/punchclockhq/punchclock/pkg/timesheet"

	_ "github.com/mattn/go-sqlite3" // SQLite driver for testing
)

func newTestServer(t *testing.T) (http.Handler, *store.Store) {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	st := store.New(db)
	require.NoError(t, st.Migrate(context.Background()))

	cache, err := dashboard.NewCache(nil, time.Minute)
	require.NoError(t, err)

	srv := NewServer(Options{
		Store:     st,
		Accounts:  accounts.NewService(st),
		Quota:     quota.NewChecker(st),
		Lifecycle: lifecycle.NewService(st),
		Timesheet: timesheet.NewService(st),
		Dashboard: dashboard.NewService(st, cache),
		Logger:    observability.NewLogger(observability.ErrorLevel, io.Discard),
	})
	router := mux.NewRouter()
	srv.RegisterRoutes(router)
	return router, st
}

func doRequest(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), "body: %s", rec.Body.String())
	return out
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decodeBody[ErrorBody](t, rec).Error.Code
}

func signup(t *testing.T, h http.Handler, email string) accounts.SignupResult {
	t.Helper()
	rec := doRequest(t, h, "POST", "/api/v1/users", map[string]string{
		"email":    email,
		"name":     "Tester",
		"password": "hunter2hunter2",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeBody[accounts.SignupResult](t, rec)
}

func TestSignup(t *testing.T) {
	h, _ := newTestServer(t)

	result := signup(t, h, "new@example.com")
	assert.NotEmpty(t, result.User.ID)
	assert.Equal(t, "Tester's Organization", result.Organization.Name)
	assert.Equal(t, result.User.ID, result.Organization.OwnerID)
	assert.Equal(t, domain.PlanFree, result.Subscription.Plan)
	assert.Equal(t, 3, result.Subscription.MaxCustomers)
	assert.Equal(t, 3, result.Subscription.MaxProjects)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	h, _ := newTestServer(t)
	signup(t, h, "dupe@example.com")

	rec := doRequest(t, h, "POST", "/api/v1/users", map[string]string{
		"email":    "dupe@example.com",
		"name":     "Other",
		"password": "hunter2hunter2",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "conflict", errorCode(t, rec))
}

func TestSignup_MissingFields(t *testing.T) {
	h, _ := newTestServer(t)

	rec := doRequest(t, h, "POST", "/api/v1/users", map[string]string{"email": "x@example.com"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "bad_request", errorCode(t, rec))
}

func TestGetUser(t *testing.T) {
	h, _ := newTestServer(t)
	result := signup(t, h, "get@example.com")

	rec := doRequest(t, h, "GET", "/api/v1/users/"+result.User.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	user := decodeBody[domain.User](t, rec)
	assert.Equal(t, "get@example.com", user.Email)

	rec = doRequest(t, h, "GET", "/api/v1/users/does-not-exist", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", errorCode(t, rec))
}

func TestUpdateUser(t *testing.T) {
	h, _ := newTestServer(t)
	result := signup(t, h, "update@example.com")

	rec := doRequest(t, h, "PUT", "/api/v1/users/"+result.User.ID, map[string]string{"name": "Renamed"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	user := decodeBody[domain.User](t, rec)
	assert.Equal(t, "Renamed", user.Name)
	assert.Equal(t, "update@example.com", user.Email)

	rec = doRequest(t, h, "PUT", "/api/v1/users/does-not-exist", map[string]string{"name": "X"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOrganizations(t *testing.T) {
	h, _ := newTestServer(t)
	result := signup(t, h, "orgs@example.com")

	rec := doRequest(t, h, "POST", "/api/v1/orgs", map[string]string{
		"name":     "Second Org",
		"owner_id": result.User.ID,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	org := decodeBody[domain.Organization](t, rec)
	assert.Equal(t, "Second Org", org.Name)

	// Unknown owner is a 404, not a silent create.
	rec = doRequest(t, h, "POST", "/api/v1/orgs", map[string]string{
		"name":     "Orphan",
		"owner_id": "does-not-exist",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, h, "GET", "/api/v1/orgs", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, h, "GET", "/api/v1/orgs?owner_id="+result.User.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	orgs := decodeBody[[]domain.Organization](t, rec)
	assert.Len(t, orgs, 2) // signup default plus Second Org

	rec = doRequest(t, h, "PUT", "/api/v1/orgs/"+org.ID, map[string]string{"name": "Renamed Org"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Renamed Org", decodeBody[domain.Organization](t, rec).Name)
}

func TestCreateSubscription(t *testing.T) {
	h, st := newTestServer(t)

	// A user without a subscription; signup would already create one.
	user := &domain.User{Email: "bare@example.com", Name: "Bare"}
	require.NoError(t, st.CreateUser(context.Background(), user))

	rec := doRequest(t, h, "POST", "/api/v1/subscriptions", map[string]any{
		"user_id": user.ID,
		"plan":    "pro",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	sub := decodeBody[domain.Subscription](t, rec)
	assert.Equal(t, domain.PlanPro, sub.Plan)
	assert.Equal(t, domain.SubscriptionActive, sub.Status)
	assert.Equal(t, 50, sub.MaxCustomers)
	assert.Equal(t, 100, sub.MaxProjects)

	// Second subscription for the same user conflicts.
	rec = doRequest(t, h, "POST", "/api/v1/subscriptions", map[string]any{
		"user_id": user.ID,
		"plan":    "free",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doRequest(t, h, "POST", "/api/v1/subscriptions", map[string]any{
		"user_id": user.ID,
		"plan":    "platinum",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateSubscription_ExplicitLimits(t *testing.T) {
	h, st := newTestServer(t)

	user := &domain.User{Email: "custom@example.com", Name: "Custom"}
	require.NoError(t, st.CreateUser(context.Background(), user))

	rec := doRequest(t, h, "POST", "/api/v1/subscriptions", map[string]any{
		"user_id":       user.ID,
		"plan":          "enterprise",
		"max_customers": 10,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	sub := decodeBody[domain.Subscription](t, rec)
	assert.Equal(t, 10, sub.MaxCustomers)
	assert.Equal(t, domain.Unlimited, sub.MaxProjects)
}

func TestGetUserSubscription(t *testing.T) {
	h, _ := newTestServer(t)
	result := signup(t, h, "subs@example.com")

	rec := doRequest(t, h, "GET", "/api/v1/users/"+result.User.ID+"/subscription", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	sub := decodeBody[domain.Subscription](t, rec)
	assert.Equal(t, result.Subscription.ID, sub.ID)

	rec = doRequest(t, h, "GET", "/api/v1/users/does-not-exist/subscription", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateSubscription(t *testing.T) {
	h, _ := newTestServer(t)
	result := signup(t, h, "upgrade@example.com")

	rec := doRequest(t, h, "PUT", "/api/v1/subscriptions/"+result.Subscription.ID, map[string]any{
		"plan":          "pro",
		"max_customers": 50,
		"max_projects":  100,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	sub := decodeBody[domain.Subscription](t, rec)
	assert.Equal(t, domain.PlanPro, sub.Plan)
	assert.Equal(t, 50, sub.MaxCustomers)
}

func createCustomer(t *testing.T, h http.Handler, result accounts.SignupResult, name string) domain.Customer {
	t.Helper()
	rec := doRequest(t, h, "POST", "/api/v1/customers", map[string]string{
		"name":            name,
		"organization_id": result.Organization.ID,
		"created_by":      result.User.ID,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeBody[domain.Customer](t, rec)
}

func TestCreateCustomer_QuotaEnforced(t *testing.T) {
	h, _ := newTestServer(t)
	result := signup(t, h, "quota@example.com")

	// Free plan allows three customers.
	for i := 0; i < 3; i++ {
		createCustomer(t, h, result, fmt.Sprintf("Customer %d", i))
	}

	rec := doRequest(t, h, "POST", "/api/v1/customers", map[string]string{
		"name":            "One Too Many",
		"organization_id": result.Organization.ID,
		"created_by":      result.User.ID,
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "limit_exceeded", errorCode(t, rec))
}

func TestCreateCustomer_InactiveSubscription(t *testing.T) {
	h, _ := newTestServer(t)
	result := signup(t, h, "lapsed@example.com")

	rec := doRequest(t, h, "PUT", "/api/v1/subscriptions/"+result.Subscription.ID, map[string]string{
		"status": "cancelled",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, h, "POST", "/api/v1/customers", map[string]string{
		"name":            "Blocked",
		"organization_id": result.Organization.ID,
		"created_by":      result.User.ID,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "invalid_state", errorCode(t, rec))
}

func TestListCustomers(t *testing.T) {
	h, _ := newTestServer(t)
	result := signup(t, h, "list@example.com")
	createCustomer(t, h, result, "Acme")
	createCustomer(t, h, result, "Globex")

	rec := doRequest(t, h, "GET", "/api/v1/customers", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, h, "GET", "/api/v1/customers?org_id="+result.Organization.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	customers := decodeBody[[]domain.Customer](t, rec)
	assert.Len(t, customers, 2)
}

func TestCustomerLifecycle(t *testing.T) {
	h, _ := newTestServer(t)
	result := signup(t, h, "lifecycle@example.com")
	customer := createCustomer(t, h, result, "Doomed")

	rec := doRequest(t, h, "POST", "/api/v1/projects", map[string]string{
		"name":            "Doomed Project",
		"customer_id":     customer.ID,
		"organization_id": result.Organization.ID,
		"created_by":      result.User.ID,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	project := decodeBody[domain.Project](t, rec)

	rec = doRequest(t, h, "DELETE", "/api/v1/customers/"+customer.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeBody[DeleteResponse](t, rec).Deleted)

	// The cascade takes the project with it.
	rec = doRequest(t, h, "GET", "/api/v1/projects/"+project.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Repeating the delete is not an error.
	rec = doRequest(t, h, "DELETE", "/api/v1/customers/"+customer.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decodeBody[DeleteResponse](t, rec).Deleted)
}

func TestCreateProject_CustomerChecks(t *testing.T) {
	h, _ := newTestServer(t)
	result := signup(t, h, "projects@example.com")
	other := signup(t, h, "other-org@example.com")
	foreign := createCustomer(t, h, other, "Foreign")

	rec := doRequest(t, h, "POST", "/api/v1/projects", map[string]string{
		"name":            "Cross Tenant",
		"customer_id":     foreign.ID,
		"organization_id": result.Organization.ID,
		"created_by":      result.User.ID,
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, h, "POST", "/api/v1/projects", map[string]string{
		"name":            "No Such Customer",
		"customer_id":     "does-not-exist",
		"organization_id": result.Organization.ID,
		"created_by":      result.User.ID,
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListProjects(t *testing.T) {
	h, _ := newTestServer(t)
	result := signup(t, h, "plist@example.com")
	first := createCustomer(t, h, result, "First")
	second := createCustomer(t, h, result, "Second")

	for _, c := range []domain.Customer{first, second} {
		rec := doRequest(t, h, "POST", "/api/v1/projects", map[string]string{
			"name":            "Project for " + c.Name,
			"customer_id":     c.ID,
			"organization_id": result.Organization.ID,
			"created_by":      result.User.ID,
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec := doRequest(t, h, "GET", "/api/v1/projects", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, h, "GET", "/api/v1/projects?org_id="+result.Organization.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[[]domain.Project](t, rec), 2)

	rec = doRequest(t, h, "GET", "/api/v1/projects?org_id="+result.Organization.ID+"&customer_id="+first.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	projects := decodeBody[[]domain.Project](t, rec)
	require.Len(t, projects, 1)
	assert.Equal(t, first.ID, projects[0].CustomerID)
}

func TestTimeEntries(t *testing.T) {
	h, _ := newTestServer(t)
	result := signup(t, h, "entries@example.com")

	start := time.Date(2026, 8, 19, 9, 0, 0, 0, time.UTC)
	end := start.Add(150 * time.Minute)

	rec := doRequest(t, h, "POST", "/api/v1/time-entries", map[string]any{
		"user_id":     result.User.ID,
		"description": "morning work",
		"start_time":  start,
		"end_time":    end,
		"tags":        []string{"billable"},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	entry := decodeBody[domain.TimeEntry](t, rec)
	require.NotNil(t, entry.DurationMinutes)
	assert.Equal(t, 150, *entry.DurationMinutes)

	// Open timer: no end, no duration.
	rec = doRequest(t, h, "POST", "/api/v1/time-entries", map[string]any{
		"user_id":     result.User.ID,
		"description": "still running",
		"start_time":  start.Add(4 * time.Hour),
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	open := decodeBody[domain.TimeEntry](t, rec)
	assert.Nil(t, open.DurationMinutes)

	rec = doRequest(t, h, "POST", "/api/v1/time-entries", map[string]any{
		"user_id":     result.User.ID,
		"description": "no start",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, h, "GET", "/api/v1/time-entries?user_id="+result.User.ID+"&tags=billable", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	entries := decodeBody[[]domain.TimeEntry](t, rec)
	require.Len(t, entries, 1)
	assert.Equal(t, entry.ID, entries[0].ID)

	rec = doRequest(t, h, "GET", "/api/v1/time-entries?start_date=not-a-date", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateTimeEntry_StopsTimer(t *testing.T) {
	h, _ := newTestServer(t)
	result := signup(t, h, "timer@example.com")

	start := time.Date(2026, 8, 19, 9, 0, 0, 0, time.UTC)
	rec := doRequest(t, h, "POST", "/api/v1/time-entries", map[string]any{
		"user_id":    result.User.ID,
		"start_time": start,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	entry := decodeBody[domain.TimeEntry](t, rec)

	rec = doRequest(t, h, "PUT", "/api/v1/time-entries/"+entry.ID, map[string]any{
		"end_time": start.Add(90 * time.Minute),
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decodeBody[domain.TimeEntry](t, rec)
	require.NotNil(t, updated.DurationMinutes)
	assert.Equal(t, 90, *updated.DurationMinutes)

	rec = doRequest(t, h, "PUT", "/api/v1/time-entries/does-not-exist", map[string]any{
		"description": "nope",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteTimeEntry(t *testing.T) {
	h, _ := newTestServer(t)
	result := signup(t, h, "del-entry@example.com")

	rec := doRequest(t, h, "POST", "/api/v1/time-entries", map[string]any{
		"user_id":    result.User.ID,
		"start_time": time.Date(2026, 8, 19, 9, 0, 0, 0, time.UTC),
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	entry := decodeBody[domain.TimeEntry](t, rec)

	rec = doRequest(t, h, "DELETE", "/api/v1/time-entries/"+entry.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeBody[DeleteResponse](t, rec).Deleted)

	rec = doRequest(t, h, "DELETE", "/api/v1/time-entries/"+entry.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decodeBody[DeleteResponse](t, rec).Deleted)
}

func TestGetDashboard(t *testing.T) {
	h, _ := newTestServer(t)
	result := signup(t, h, "dash@example.com")
	customer := createCustomer(t, h, result, "Dash Customer")

	// Start one second in the past so the entry lands inside today's window
	// regardless of when the test runs.
	start := time.Now().UTC().Add(-time.Second)
	rec := doRequest(t, h, "POST", "/api/v1/time-entries", map[string]any{
		"user_id":     result.User.ID,
		"customer_id": customer.ID,
		"start_time":  start,
		"end_time":    start.Add(30 * time.Minute),
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, h, "GET", "/api/v1/dashboard", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, h, "GET", "/api/v1/dashboard?user_id="+result.User.ID+"&org_id="+result.Organization.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	stats := decodeBody[dashboard.Stats](t, rec)
	assert.Equal(t, 30, stats.TotalTimeToday)
	assert.Equal(t, 1, stats.TotalCustomers)
	require.Len(t, stats.TopCustomersByTime, 1)
	assert.Equal(t, customer.ID, stats.TopCustomersByTime[0].ID)
}

func TestUnknownJSONFieldRejected(t *testing.T) {
	h, _ := newTestServer(t)
	result := signup(t, h, "strict@example.com")

	rec := doRequest(t, h, "PUT", "/api/v1/users/"+result.User.ID, map[string]string{"nmae": "typo"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "bad_request", errorCode(t, rec))
}

func TestListTimeEntries_BareEndDateCoversWholeDay(t *testing.T) {
	h, _ := newTestServer(t)
	result := signup(t, h, "boundary@example.com")

	// Started in the final second of the day; a bare end_date for that day
	// must still match it.
	start := time.Date(2026, 8, 19, 23, 59, 59, 500_000_000, time.UTC)
	rec := doRequest(t, h, "POST", "/api/v1/time-entries", map[string]any{
		"user_id":     result.User.ID,
		"description": "late night",
		"start_time":  start,
		"end_time":    start.Add(10 * time.Minute),
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doRequest(t, h, "GET", "/api/v1/time-entries?user_id="+result.User.ID+"&start_date=2026-08-19&end_date=2026-08-19", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	entries := decodeBody[[]domain.TimeEntry](t, rec)
	require.Len(t, entries, 1)
	assert.Equal(t, "late night", entries[0].Description)

	// The day before must not match it.
	rec = doRequest(t, h, "GET", "/api/v1/time-entries?user_id="+result.User.ID+"&end_date=2026-08-18", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeBody[[]domain.TimeEntry](t, rec))
}

func TestPanicRecoveredAsInternalError(t *testing.T) {
	h, _ := newTestServer(t)

	router := h.(*mux.Router)
	router.HandleFunc("/api/v1/boom", func(http.ResponseWriter, *http.Request) {
		panic("handler exploded")
	}).Methods("GET")

	rec := doRequest(t, h, "GET", "/api/v1/boom", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal", errorCode(t, rec))
}

func TestRequestsRecordedOnOTelPipeline(t *testing.T) {
	_, st := newTestServer(t)

	otelMetrics, err := observability.NewOTelMetrics()
	require.NoError(t, err)

	cache, err := dashboard.NewCache(nil, time.Minute)
	require.NoError(t, err)
	srv := NewServer(Options{
		Store:     st,
		Accounts:  accounts.NewService(st),
		Quota:     quota.NewChecker(st),
		Lifecycle: lifecycle.NewService(st),
		Timesheet: timesheet.NewService(st),
		Dashboard: dashboard.NewService(st, cache),
		Logger:    observability.NewLogger(observability.ErrorLevel, io.Discard),
		OTel:      otelMetrics,
	})
	router := mux.NewRouter()
	srv.RegisterRoutes(router)

	// The global meter is a no-op here; the middleware path must still serve
	// requests normally with recording on.
	rec := doRequest(t, router, "GET", "/api/v1/users/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
