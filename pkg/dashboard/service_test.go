package dashboard

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/punchclockhq/punchclock/pkg/domain"
	"github.com/punchclockhq/punchclock/pkg/store"

	_ "github.com/mattn/go-sqlite3" // SQLite driver for testing
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	st := store.New(db)
	require.NoError(t, st.Migrate(context.Background()))
	return st
}

func seedAccount(t *testing.T, st *store.Store) (*domain.User, *domain.Organization) {
	t.Helper()
	ctx := context.Background()
	user := &domain.User{Email: "worker@example.com", Name: "Worker"}
	require.NoError(t, st.CreateUser(ctx, user))
	org := &domain.Organization{Name: "Acme", OwnerID: user.ID}
	require.NoError(t, st.CreateOrganization(ctx, org))
	return user, org
}

func seedEntry(t *testing.T, st *store.Store, userID string, start time.Time, minutes int, customerID, projectID *string) *domain.TimeEntry {
	t.Helper()
	end := start.Add(time.Duration(minutes) * time.Minute)
	entry := &domain.TimeEntry{
		UserID:          userID,
		CustomerID:      customerID,
		ProjectID:       projectID,
		Description:     "work",
		StartTime:       start,
		EndTime:         &end,
		DurationMinutes: &minutes,
	}
	require.NoError(t, st.CreateTimeEntry(context.Background(), entry))
	return entry
}

// A Wednesday, so yesterday falls inside the Sunday-based week and eight
// days ago falls inside the month but before the week.
var testNow = time.Date(2026, 8, 19, 15, 0, 0, 0, time.UTC)

func TestStats_TimeWindows(t *testing.T) {
	st := newTestStore(t)
	user, org := seedAccount(t, st)

	day := func(offset int, hour int) time.Time {
		return time.Date(2026, 8, 19+offset, hour, 0, 0, 0, time.UTC)
	}
	seedEntry(t, st, user.ID, day(0, 9), 120, nil, nil)
	seedEntry(t, st, user.ID, day(0, 13), 60, nil, nil)
	seedEntry(t, st, user.ID, day(-1, 10), 180, nil, nil)
	seedEntry(t, st, user.ID, day(-8, 10), 240, nil, nil)

	svc := NewService(st, nil)
	svc.now = func() time.Time { return testNow }

	stats, err := svc.Stats(context.Background(), user.ID, org.ID)
	require.NoError(t, err)

	assert.Equal(t, 180, stats.TotalTimeToday)
	assert.Equal(t, 360, stats.TotalTimeThisWeek)
	assert.Equal(t, 600, stats.TotalTimeThisMonth)
}

func TestStats_OpenTimerExcludedFromTotalsButRecent(t *testing.T) {
	st := newTestStore(t)
	user, org := seedAccount(t, st)
	ctx := context.Background()

	seedEntry(t, st, user.ID, testNow.Add(-2*time.Hour), 60, nil, nil)

	open := &domain.TimeEntry{
		UserID:      user.ID,
		Description: "running",
		StartTime:   testNow.Add(-30 * time.Minute),
	}
	require.NoError(t, st.CreateTimeEntry(ctx, open))

	svc := NewService(st, nil)
	svc.now = func() time.Time { return testNow }

	stats, err := svc.Stats(ctx, user.ID, org.ID)
	require.NoError(t, err)

	assert.Equal(t, 60, stats.TotalTimeToday)
	require.Len(t, stats.RecentEntries, 2)
	assert.Equal(t, open.ID, stats.RecentEntries[0].ID)
}

func TestStats_CountsAndRecentCap(t *testing.T) {
	st := newTestStore(t)
	user, org := seedAccount(t, st)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		c := &domain.Customer{OrganizationID: org.ID, Name: "Customer", CreatedBy: user.ID}
		require.NoError(t, st.CreateCustomer(ctx, c))
	}
	for i := 0; i < 12; i++ {
		seedEntry(t, st, user.ID, testNow.Add(-time.Duration(i+1)*time.Hour), 10, nil, nil)
	}

	svc := NewService(st, nil)
	svc.now = func() time.Time { return testNow }

	stats, err := svc.Stats(ctx, user.ID, org.ID)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.TotalCustomers)
	assert.Equal(t, 0, stats.TotalProjects)
	assert.Len(t, stats.RecentEntries, 10)
}

func TestStats_TopCustomersByTime(t *testing.T) {
	st := newTestStore(t)
	user, org := seedAccount(t, st)
	ctx := context.Background()

	globex := &domain.Customer{OrganizationID: org.ID, Name: "Globex", CreatedBy: user.ID}
	require.NoError(t, st.CreateCustomer(ctx, globex))
	initech := &domain.Customer{OrganizationID: org.ID, Name: "Initech", CreatedBy: user.ID}
	require.NoError(t, st.CreateCustomer(ctx, initech))

	// Globex accumulates across two entries; Initech has one larger entry.
	seedEntry(t, st, user.ID, testNow.Add(-3*time.Hour), 30, &globex.ID, nil)
	seedEntry(t, st, user.ID, testNow.Add(-5*time.Hour), 40, &globex.ID, nil)
	seedEntry(t, st, user.ID, testNow.Add(-4*time.Hour), 90, &initech.ID, nil)

	// Last month: outside the ranking window.
	seedEntry(t, st, user.ID, testNow.AddDate(0, -1, 0), 500, &globex.ID, nil)

	svc := NewService(st, nil)
	svc.now = func() time.Time { return testNow }

	stats, err := svc.Stats(ctx, user.ID, org.ID)
	require.NoError(t, err)

	require.Len(t, stats.TopCustomersByTime, 2)
	assert.Equal(t, "Initech", stats.TopCustomersByTime[0].Name)
	assert.Equal(t, 90, stats.TopCustomersByTime[0].TotalMinutes)
	assert.Equal(t, "Globex", stats.TopCustomersByTime[1].Name)
	assert.Equal(t, 70, stats.TopCustomersByTime[1].TotalMinutes)
}

func TestStats_TopProjectsTieBreaksOnID(t *testing.T) {
	st := newTestStore(t)
	user, org := seedAccount(t, st)
	ctx := context.Background()

	customer := &domain.Customer{OrganizationID: org.ID, Name: "Globex", CreatedBy: user.ID}
	require.NoError(t, st.CreateCustomer(ctx, customer))

	a := &domain.Project{ID: "a-project", OrganizationID: org.ID, CustomerID: customer.ID, Name: "Alpha", CreatedBy: user.ID, IsActive: true}
	require.NoError(t, st.CreateProject(ctx, a))
	b := &domain.Project{ID: "b-project", OrganizationID: org.ID, CustomerID: customer.ID, Name: "Beta", CreatedBy: user.ID, IsActive: true}
	require.NoError(t, st.CreateProject(ctx, b))

	seedEntry(t, st, user.ID, testNow.Add(-3*time.Hour), 60, nil, &b.ID)
	seedEntry(t, st, user.ID, testNow.Add(-5*time.Hour), 60, nil, &a.ID)

	svc := NewService(st, nil)
	svc.now = func() time.Time { return testNow }

	stats, err := svc.Stats(ctx, user.ID, org.ID)
	require.NoError(t, err)

	require.Len(t, stats.TopProjectsByTime, 2)
	assert.Equal(t, "a-project", stats.TopProjectsByTime[0].ID)
	assert.Equal(t, "b-project", stats.TopProjectsByTime[1].ID)
}

func TestStats_ServedFromCache(t *testing.T) {
	st := newTestStore(t)
	user, org := seedAccount(t, st)
	ctx := context.Background()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	cache, err := NewCache(client, time.Minute)
	require.NoError(t, err)

	seedEntry(t, st, user.ID, testNow.Add(-2*time.Hour), 60, nil, nil)

	svc := NewService(st, cache)
	svc.now = func() time.Time { return testNow }

	stats, err := svc.Stats(ctx, user.ID, org.ID)
	require.NoError(t, err)
	assert.Equal(t, 60, stats.TotalTimeToday)

	// A write after the first read is invisible until the TTL passes.
	seedEntry(t, st, user.ID, testNow.Add(-time.Hour), 30, nil, nil)

	stats, err = svc.Stats(ctx, user.ID, org.ID)
	require.NoError(t, err)
	assert.Equal(t, 60, stats.TotalTimeToday)
}

func TestCache_LocalTierWithoutRedis(t *testing.T) {
	cache, err := NewCache(nil, time.Minute)
	require.NoError(t, err)
	ctx := context.Background()

	_, ok := cache.Get(ctx, "k")
	assert.False(t, ok)

	cache.Set(ctx, "k", []byte("v"))
	payload, ok := cache.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, []byte("v"), payload)
}
