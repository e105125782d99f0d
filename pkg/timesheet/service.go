package timesheet

import (
	"context"
	"fmt"
	"time"

	"github.com/punchclockhq/punchclock/pkg/domain"
	"github.com/punchclockhq/punchclock/pkg/store"
)

// Service keeps duration_minutes consistent with start_time/end_time on
// every time entry write. Duration is floor((end - start) / 60s); it is null
// whenever end_time is null.
type Service struct {
	store *store.Store
}

// NewService creates a new timesheet service
func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

func durationMinutes(start, end time.Time) int {
	return int(end.Sub(start) / time.Minute)
}

// CreateEntry derives the duration and inserts the entry.
func (s *Service) CreateEntry(ctx context.Context, entry *domain.TimeEntry) error {
	if entry.StartTime.IsZero() {
		return fmt.Errorf("start_time is required")
	}
	if entry.EndTime != nil {
		d := durationMinutes(entry.StartTime, *entry.EndTime)
		entry.DurationMinutes = &d
	} else {
		entry.DurationMinutes = nil
	}
	return s.store.CreateTimeEntry(ctx, entry)
}

// UpdateEntry applies a partial update and recomputes the duration from the
// effective times (new value when provided, existing value otherwise). An
// explicit null end_time always clears the duration.
func (s *Service) UpdateEntry(ctx context.Context, id string, update store.TimeEntryUpdate) (*domain.TimeEntry, error) {
	existing, err := s.store.GetTimeEntry(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, &domain.NotFoundError{Entity: "time entry", ID: id}
	}

	if update.EndTime.Set && !update.EndTime.Valid {
		update.DurationMinutes = domain.Null[int]()
	} else if update.StartTime.Set || update.EndTime.Set {
		start := existing.StartTime
		if update.StartTime.Set && update.StartTime.Valid {
			start = update.StartTime.Value
		}
		end := existing.EndTime
		if update.EndTime.Set && update.EndTime.Valid {
			v := update.EndTime.Value
			end = &v
		}
		if end != nil {
			update.DurationMinutes = domain.Some(durationMinutes(start, *end))
		}
	}

	return s.store.UpdateTimeEntry(ctx, id, update)
}
