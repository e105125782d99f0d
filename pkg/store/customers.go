package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/punchclockhq/punchclock/pkg/domain"
)

// CreateCustomer inserts a new customer, assigning id and timestamps. Plan
// limit checks happen in pkg/quota before this is called.
func (s *Store) CreateCustomer(ctx context.Context, customer *domain.Customer) error {
	if customer.ID == "" {
		customer.ID = uuid.NewString()
	}
	now := s.now()
	customer.CreatedAt = now
	customer.UpdatedAt = now

	query := `
		INSERT INTO customers (id, name, email, phone, address, organization_id, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.q.ExecContext(ctx, query, customer.ID, customer.Name,
		customer.Email, customer.Phone, customer.Address,
		customer.OrganizationID, customer.CreatedBy,
		customer.CreatedAt, customer.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}
	return nil
}

func scanCustomerColumns(scan func(dest ...any) error) (*domain.Customer, error) {
	customer := &domain.Customer{}
	var email, phone, address sql.NullString
	err := scan(
		&customer.ID, &customer.Name, &email, &phone, &address,
		&customer.OrganizationID, &customer.CreatedBy,
		&customer.CreatedAt, &customer.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if email.Valid {
		customer.Email = &email.String
	}
	if phone.Valid {
		customer.Phone = &phone.String
	}
	if address.Valid {
		customer.Address = &address.String
	}
	return customer, nil
}

// GetCustomer retrieves a customer by id, returning nil when absent.
func (s *Store) GetCustomer(ctx context.Context, id string) (*domain.Customer, error) {
	query := `
		SELECT id, name, email, phone, address, organization_id, created_by, created_at, updated_at
		FROM customers
		WHERE id = $1
	`
	row := s.q.QueryRowContext(ctx, query, id)
	customer, err := scanCustomerColumns(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return customer, nil
}

// ListCustomers lists all customers of an organization, newest first.
func (s *Store) ListCustomers(ctx context.Context, organizationID string) ([]*domain.Customer, error) {
	query := `
		SELECT id, name, email, phone, address, organization_id, created_by, created_at, updated_at
		FROM customers
		WHERE organization_id = $1
		ORDER BY created_at DESC
	`
	rows, err := s.q.QueryContext(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	defer rows.Close()

	var customers []*domain.Customer
	for rows.Next() {
		customer, err := scanCustomerColumns(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, customer)
	}
	return customers, rows.Err()
}

// CountCustomers counts the customers of an organization for limit checks.
func (s *Store) CountCustomers(ctx context.Context, organizationID string) (int, error) {
	var count int
	err := s.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM customers WHERE organization_id = $1`, organizationID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count customers: %w", err)
	}
	return count, nil
}

// CustomerUpdate holds the mutable customer fields for partial updates.
// Email, phone and address are nullable: explicit nulls clear them.
type CustomerUpdate struct {
	Name    domain.Optional[string] `json:"name"`
	Email   domain.Optional[string] `json:"email"`
	Phone   domain.Optional[string] `json:"phone"`
	Address domain.Optional[string] `json:"address"`
}

// UpdateCustomer writes only the fields present in the update and refreshes
// updated_at.
func (s *Store) UpdateCustomer(ctx context.Context, id string, update CustomerUpdate) (*domain.Customer, error) {
	setClauses := []string{}
	args := []any{}
	argPos := 1

	if update.Name.Set && update.Name.Valid {
		setClauses = append(setClauses, fmt.Sprintf("name = $%d", argPos))
		args = append(args, update.Name.Value)
		argPos++
	}
	for _, field := range []struct {
		column string
		value  domain.Optional[string]
	}{
		{"email", update.Email},
		{"phone", update.Phone},
		{"address", update.Address},
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

	setClauses = append(setClauses, fmt.Sprintf("updated_at = $%d", argPos))
	args = append(args, s.now())
	argPos++

	args = append(args, id)
	query := fmt.Sprintf("UPDATE customers SET %s WHERE id = $%d", strings.Join(setClauses, ", "), argPos)

	result, err := s.q.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return nil, &domain.NotFoundError{Entity: "customer", ID: id}
	}

	return s.GetCustomer(ctx, id)
}

// DeleteCustomer removes the customer row only; dependent projects and time
// entries are handled by the lifecycle cascader. Returns whether a row was
// removed.
func (s *Store) DeleteCustomer(ctx context.Context, id string) (bool, error) {
	result, err := s.q.ExecContext(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete customer: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return affected > 0, nil
}
