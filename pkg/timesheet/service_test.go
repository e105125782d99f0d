package timesheet

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/punchclockhq/punchclock/pkg/domain"
	"github.com/punchclockhq/punchclock/pkg/store"

	_ "github.com/mattn/go-sqlite3" // SQLite driver for testing
)

func newTestService(t *testing.T) (*Service, *store.Store) {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	st := store.New(db)
	require.NoError(t, st.Migrate(context.Background()))
	return NewService(st), st
}

func seedUser(t *testing.T, st *store.Store) *domain.User {
	t.Helper()
	user := &domain.User{Email: "worker@example.com", Name: "Worker"}
	require.NoError(t, st.CreateUser(context.Background(), user))
	return user
}

func TestCreateEntry_DerivesDuration(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()
	user := seedUser(t, st)

	start := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)
	end := start.Add(2*time.Hour + 30*time.Minute)

	entry := &domain.TimeEntry{
		UserID:      user.ID,
		Description: "design review",
		StartTime:   start,
		EndTime:     &end,
	}
	require.NoError(t, svc.CreateEntry(ctx, entry))

	require.NotNil(t, entry.DurationMinutes)
	assert.Equal(t, 150, *entry.DurationMinutes)
}

func TestCreateEntry_SubMinuteRoundsDown(t *testing.T) {
	svc, st := newTestService(t)
	user := seedUser(t, st)

	start := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)
	end := start.Add(30 * time.Second)

	entry := &domain.TimeEntry{UserID: user.ID, Description: "quick", StartTime: start, EndTime: &end}
	require.NoError(t, svc.CreateEntry(context.Background(), entry))

	require.NotNil(t, entry.DurationMinutes)
	assert.Equal(t, 0, *entry.DurationMinutes)
}

func TestCreateEntry_OpenEnded(t *testing.T) {
	svc, st := newTestService(t)
	user := seedUser(t, st)

	entry := &domain.TimeEntry{
		UserID:      user.ID,
		Description: "still running",
		StartTime:   time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC),
	}
	require.NoError(t, svc.CreateEntry(context.Background(), entry))
	assert.Nil(t, entry.DurationMinutes)
}

func TestCreateEntry_RequiresStartTime(t *testing.T) {
	svc, st := newTestService(t)
	user := seedUser(t, st)

	err := svc.CreateEntry(context.Background(), &domain.TimeEntry{UserID: user.ID, Description: "no start"})
	require.Error(t, err)
}

func TestUpdateEntry_RecomputesFromEffectiveTimes(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()
	user := seedUser(t, st)

	start := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	entry := &domain.TimeEntry{UserID: user.ID, Description: "work", StartTime: start, EndTime: &end}
	require.NoError(t, svc.CreateEntry(ctx, entry))

	// Move only end_time; start_time comes from the stored row.
	updated, err := svc.UpdateEntry(ctx, entry.ID, store.TimeEntryUpdate{
		EndTime: domain.Some(start.Add(3 * time.Hour)),
	})
	require.NoError(t, err)
	require.NotNil(t, updated.DurationMinutes)
	assert.Equal(t, 180, *updated.DurationMinutes)

	// Move only start_time; end_time comes from the stored row.
	updated, err = svc.UpdateEntry(ctx, entry.ID, store.TimeEntryUpdate{
		StartTime: domain.Some(start.Add(30 * time.Minute)),
	})
	require.NoError(t, err)
	require.NotNil(t, updated.DurationMinutes)
	assert.Equal(t, 150, *updated.DurationMinutes)
}

func TestUpdateEntry_NullEndTimeClearsDuration(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()
	user := seedUser(t, st)

	start := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	entry := &domain.TimeEntry{UserID: user.ID, Description: "work", StartTime: start, EndTime: &end}
	require.NoError(t, svc.CreateEntry(ctx, entry))

	updated, err := svc.UpdateEntry(ctx, entry.ID, store.TimeEntryUpdate{
		EndTime: domain.Null[time.Time](),
	})
	require.NoError(t, err)
	assert.Nil(t, updated.EndTime)
	assert.Nil(t, updated.DurationMinutes)
}

func TestUpdateEntry_UntouchedTimesKeepDuration(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()
	user := seedUser(t, st)

	start := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)
	end := start.Add(45 * time.Minute)
	entry := &domain.TimeEntry{UserID: user.ID, Description: "work", StartTime: start, EndTime: &end}
	require.NoError(t, svc.CreateEntry(ctx, entry))

	updated, err := svc.UpdateEntry(ctx, entry.ID, store.TimeEntryUpdate{
		Description: domain.Some("renamed"),
	})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Description)
	require.NotNil(t, updated.DurationMinutes)
	assert.Equal(t, 45, *updated.DurationMinutes)
}

func TestUpdateEntry_Missing(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.UpdateEntry(context.Background(), "no-such-entry", store.TimeEntryUpdate{
		Description: domain.Some("x"),
	})
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}
