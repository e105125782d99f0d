package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/punchclockhq/punchclock/pkg/domain"
)

// CreateTimeEntry inserts a new time entry, assigning id and timestamps.
// DurationMinutes is computed by the timesheet service before insertion.
func (s *Store) CreateTimeEntry(ctx context.Context, entry *domain.TimeEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	now := s.now()
	entry.CreatedAt = now
	entry.UpdatedAt = now
	if entry.Tags == nil {
		entry.Tags = []string{}
	}

	tagsJSON, err := encodeTags(entry.Tags)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO time_entries (id, user_id, customer_id, project_id, description, start_time, end_time, duration_minutes, tags, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err = s.q.ExecContext(ctx, query, entry.ID, entry.UserID,
		entry.CustomerID, entry.ProjectID, entry.Description,
		entry.StartTime, entry.EndTime, entry.DurationMinutes,
		tagsJSON, entry.CreatedAt, entry.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create time entry: %w", err)
	}
	return nil
}

func scanTimeEntryColumns(scan func(dest ...any) error) (*domain.TimeEntry, error) {
	entry := &domain.TimeEntry{}
	var customerID, projectID sql.NullString
	var endTime sql.NullTime
	var duration sql.NullInt64
	var tagsJSON []byte
	err := scan(
		&entry.ID, &entry.UserID, &customerID, &projectID, &entry.Description,
		&entry.StartTime, &endTime, &duration, &tagsJSON,
		&entry.CreatedAt, &entry.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if customerID.Valid {
		entry.CustomerID = &customerID.String
	}
	if projectID.Valid {
		entry.ProjectID = &projectID.String
	}
	if endTime.Valid {
		t := endTime.Time
		entry.EndTime = &t
	}
	if duration.Valid {
		d := int(duration.Int64)
		entry.DurationMinutes = &d
	}
	tags, err := decodeTags(tagsJSON)
	if err != nil {
		return nil, err
	}
	entry.Tags = tags
	return entry, nil
}

const timeEntryColumns = `id, user_id, customer_id, project_id, description, start_time, end_time, duration_minutes, tags, created_at, updated_at`

// GetTimeEntry retrieves a time entry by id, returning nil when absent.
func (s *Store) GetTimeEntry(ctx context.Context, id string) (*domain.TimeEntry, error) {
	query := `SELECT ` + timeEntryColumns + ` FROM time_entries WHERE id = $1`
	row := s.q.QueryRowContext(ctx, query, id)
	entry, err := scanTimeEntryColumns(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get time entry: %w", err)
	}
	return entry, nil
}

// TimeEntryFilter narrows ListTimeEntries. All fields are optional; Tags
// matches entries carrying at least one of the given tags.
type TimeEntryFilter struct {
	UserID     *string
	CustomerID *string
	ProjectID  *string
	StartDate  *time.Time
	EndDate    *time.Time
	Tags       []string
}

// ListTimeEntries lists entries matching the filter, newest start_time first.
// Tag matching runs in Go since the tag list is stored as JSON text.
func (s *Store) ListTimeEntries(ctx context.Context, filter TimeEntryFilter) ([]*domain.TimeEntry, error) {
	conditions := []string{}
	args := []any{}
	argPos := 1

	addCondition := func(column string, value any) {
		conditions = append(conditions, fmt.Sprintf("%s = $%d", column, argPos))
		args = append(args, value)
		argPos++
	}
	if filter.UserID != nil {
		addCondition("user_id", *filter.UserID)
	}
	if filter.CustomerID != nil {
		addCondition("customer_id", *filter.CustomerID)
	}
	if filter.ProjectID != nil {
		addCondition("project_id", *filter.ProjectID)
	}
	if filter.StartDate != nil {
		conditions = append(conditions, fmt.Sprintf("start_time >= $%d", argPos))
		args = append(args, *filter.StartDate)
		argPos++
	}
	if filter.EndDate != nil {
		conditions = append(conditions, fmt.Sprintf("start_time <= $%d", argPos))
		args = append(args, *filter.EndDate)
		argPos++
	}

	query := `SELECT ` + timeEntryColumns + ` FROM time_entries`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY start_time DESC`

	rows, err := s.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list time entries: %w", err)
	}
	defer rows.Close()

	var entries []*domain.TimeEntry
	for rows.Next() {
		entry, err := scanTimeEntryColumns(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan time entry: %w", err)
		}
		if len(filter.Tags) > 0 && !hasAnyTag(entry.Tags, filter.Tags) {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func hasAnyTag(entryTags, wanted []string) bool {
	for _, w := range wanted {
		for _, t := range entryTags {
			if t == w {
				return true
			}
		}
	}
	return false
}

// ListRecentTimeEntries returns the most recent entries for a user, ordered
// by start_time descending, capped at limit.
func (s *Store) ListRecentTimeEntries(ctx context.Context, userID string, limit int) ([]*domain.TimeEntry, error) {
	query := `SELECT ` + timeEntryColumns + ` FROM time_entries WHERE user_id = $1 ORDER BY start_time DESC LIMIT $2`
	rows, err := s.q.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent time entries: %w", err)
	}
	defer rows.Close()

	var entries []*domain.TimeEntry
	for rows.Next() {
		entry, err := scanTimeEntryColumns(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan time entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// TimeEntryUpdate holds the mutable time entry fields for partial updates.
// CustomerID, ProjectID and EndTime are nullable: explicit nulls clear them.
// DurationMinutes is derived by the timesheet service, never set by callers.
type TimeEntryUpdate struct {
	Description     domain.Optional[string]    `json:"description"`
	CustomerID      domain.Optional[string]    `json:"customer_id"`
	ProjectID       domain.Optional[string]    `json:"project_id"`
	StartTime       domain.Optional[time.Time] `json:"start_time"`
	EndTime         domain.Optional[time.Time] `json:"end_time"`
	Tags            domain.Optional[[]string]  `json:"tags"`
	DurationMinutes domain.Optional[int]       `json:"-"`
}

// UpdateTimeEntry writes only the fields present in the update and refreshes
// updated_at.
func (s *Store) UpdateTimeEntry(ctx context.Context, id string, update TimeEntryUpdate) (*domain.TimeEntry, error) {
	setClauses := []string{}
	args := []any{}
	argPos := 1

	if update.Description.Set && update.Description.Valid {
		setClauses = append(setClauses, fmt.Sprintf("description = $%d", argPos))
		args = append(args, update.Description.Value)
		argPos++
	}
	for _, field := range []struct {
		column string
		value  domain.Optional[string]
	}{
		{"customer_id", update.CustomerID},
		{"project_id", update.ProjectID},
	} {
		if !field.value.Set {
			continue
		}
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", field.column, argPos))
		if field.value.Valid {
			args = append(args, field.value.Value)
		} else {
			args = append(args, nil)
		}
		argPos++
	}
	if update.StartTime.Set && update.StartTime.Valid {
		setClauses = append(setClauses, fmt.Sprintf("start_time = $%d", argPos))
		args = append(args, update.StartTime.Value)
		argPos++
	}
	if update.EndTime.Set {
		setClauses = append(setClauses, fmt.Sprintf("end_time = $%d", argPos))
		if update.EndTime.Valid {
			args = append(args, update.EndTime.Value)
		} else {
			args = append(args, nil)
		}
		argPos++
	}
	if update.DurationMinutes.Set {
		setClauses = append(setClauses, fmt.Sprintf("duration_minutes = $%d", argPos))
		if update.DurationMinutes.Valid {
			args = append(args, update.DurationMinutes.Value)
		} else {
			args = append(args, nil)
		}
		argPos++
	}
	if update.Tags.Set && update.Tags.Valid {
		tagsJSON, err := encodeTags(update.Tags.Value)
		if err != nil {
			return nil, err
		}
		setClauses = append(setClauses, fmt.Sprintf("tags = $%d", argPos))
		args = append(args, tagsJSON)
		argPos++
	}

	setClauses = append(setClauses, fmt.Sprintf("updated_at = $%d", argPos))
	args = append(args, s.now())
	argPos++

	args = append(args, id)
	query := fmt.Sprintf("UPDATE time_entries SET %s WHERE id = $%d", strings.Join(setClauses, ", "), argPos)

	result, err := s.q.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update time entry: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return nil, &domain.NotFoundError{Entity: "time entry", ID: id}
	}

	return s.GetTimeEntry(ctx, id)
}

// DeleteTimeEntry removes a time entry. Returns whether a row was removed.
func (s *Store) DeleteTimeEntry(ctx context.Context, id string) (bool, error) {
	result, err := s.q.ExecContext(ctx, `DELETE FROM time_entries WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete time entry: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return affected > 0, nil
}

// DeleteTimeEntriesByCustomer removes every entry referencing a customer
// directly. Used by the lifecycle cascader; returns rows removed.
func (s *Store) DeleteTimeEntriesByCustomer(ctx context.Context, customerID string) (int64, error) {
	result, err := s.q.ExecContext(ctx, `DELETE FROM time_entries WHERE customer_id = $1`, customerID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete time entries by customer: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return affected, nil
}

// DeleteTimeEntriesByProject removes every entry referencing a project.
// Used by the lifecycle cascader; returns rows removed.
func (s *Store) DeleteTimeEntriesByProject(ctx context.Context, projectID string) (int64, error) {
	result, err := s.q.ExecContext(ctx, `DELETE FROM time_entries WHERE project_id = $1`, projectID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete time entries by project: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return affected, nil
}
