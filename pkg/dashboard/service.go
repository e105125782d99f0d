package dashboard

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/punchclockhq/punchclock/pkg/domain"
	"github.com/punchclockhq/punchclock/pkg/store"
)

const (
	recentEntryLimit = 10
	rankingLimit     = 5
)

// Stats is the dashboard payload for one (user, organization) pair.
type Stats struct {
	TotalTimeToday     int                 `json:"total_time_today"`
	TotalTimeThisWeek  int                 `json:"total_time_this_week"`
	TotalTimeThisMonth int                 `json:"total_time_this_month"`
	TotalCustomers     int                 `json:"total_customers"`
	TotalProjects      int                 `json:"total_projects"`
	RecentEntries      []*domain.TimeEntry `json:"recent_entries"`
	TopCustomersByTime []Ranking           `json:"top_customers_by_time"`
	TopProjectsByTime  []Ranking           `json:"top_projects_by_time"`
}

// Ranking is one row of a top-N breakdown.
type Ranking struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	TotalMinutes int    `json:"total_minutes"`
}

// Service computes read-only dashboard statistics. Time totals cover only
// finished entries (non-null duration); open timers still show up in the
// recent list. The week starts on Sunday.
type Service struct {
	store *store.Store
	db    *sql.DB
	cache *Cache
	now   func() time.Time
}

// NewService creates a new dashboard service. cache may be nil to disable
// response caching.
func NewService(st *store.Store, cache *Cache) *Service {
	return &Service{
		store: st,
		db:    st.DB(),
		cache: cache,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func startOfWeek(t time.Time) time.Time {
	// Sunday-based: Weekday() is 0 for Sunday.
	return startOfDay(t).AddDate(0, 0, -int(t.Weekday()))
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// Stats assembles the dashboard for a user within an organization. Results
// may be served from cache for up to the cache TTL.
func (s *Service) Stats(ctx context.Context, userID, organizationID string) (*Stats, error) {
	cacheKey := fmt.Sprintf("dashboard:%s:%s", userID, organizationID)
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, cacheKey); ok {
			stats := &Stats{}
			if err := json.Unmarshal(cached, stats); err == nil {
				return stats, nil
			}
		}
	}

	now := s.now()
	stats := &Stats{}
	var err error

	if stats.TotalTimeToday, err = s.totalMinutes(ctx, userID, startOfDay(now), now); err != nil {
		return nil, err
	}
	if stats.TotalTimeThisWeek, err = s.totalMinutes(ctx, userID, startOfWeek(now), now); err != nil {
		return nil, err
	}
	if stats.TotalTimeThisMonth, err = s.totalMinutes(ctx, userID, startOfMonth(now), now); err != nil {
		return nil, err
	}

	if stats.TotalCustomers, err = s.store.CountCustomers(ctx, organizationID); err != nil {
		return nil, err
	}
	if stats.TotalProjects, err = s.store.CountProjects(ctx, organizationID); err != nil {
		return nil, err
	}

	if stats.RecentEntries, err = s.store.ListRecentTimeEntries(ctx, userID, recentEntryLimit); err != nil {
		return nil, err
	}
	if stats.RecentEntries == nil {
		stats.RecentEntries = []*domain.TimeEntry{}
	}

	monthStart := startOfMonth(now)
	if stats.TopCustomersByTime, err = s.topByTime(ctx, "customers", "customer_id", userID, organizationID, monthStart, now); err != nil {
		return nil, err
	}
	if stats.TopProjectsByTime, err = s.topByTime(ctx, "projects", "project_id", userID, organizationID, monthStart, now); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if payload, err := json.Marshal(stats); err == nil {
			s.cache.Set(ctx, cacheKey, payload)
		}
	}
	return stats, nil
}

func (s *Service) totalMinutes(ctx context.Context, userID string, from, to time.Time) (int, error) {
	query := `
		SELECT COALESCE(SUM(duration_minutes), 0)
		FROM time_entries
		WHERE user_id = $1 AND start_time >= $2 AND start_time <= $3
		  AND duration_minutes IS NOT NULL
	`
	var total int
	if err := s.db.QueryRowContext(ctx, query, userID, from, to).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum time entries: %w", err)
	}
	return total, nil
}

// topByTime ranks customers or projects by tracked minutes in the window.
// Ties break on id ascending so the order is deterministic.
func (s *Service) topByTime(ctx context.Context, table, fkColumn, userID, organizationID string, from, to time.Time) ([]Ranking, error) {
	query := fmt.Sprintf(`
		SELECT t.id, t.name, SUM(e.duration_minutes) AS total
		FROM time_entries e
		JOIN %s t ON e.%s = t.id
		WHERE e.user_id = $1 AND t.organization_id = $2
		  AND e.start_time >= $3 AND e.start_time <= $4
		  AND e.duration_minutes IS NOT NULL
		GROUP BY t.id, t.name
		ORDER BY total DESC, t.id ASC
		LIMIT %d
	`, table, fkColumn, rankingLimit)

	rows, err := s.db.QueryContext(ctx, query, userID, organizationID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to rank %s by time: %w", table, err)
	}
	defer rows.Close()

	rankings := []Ranking{}
	for rows.Next() {
		var r Ranking
		if err := rows.Scan(&r.ID, &r.Name, &r.TotalMinutes); err != nil {
			return nil, fmt.Errorf("failed to scan ranking: %w", err)
		}
		rankings = append(rankings, r)
	}
	return rankings, rows.Err()
}
