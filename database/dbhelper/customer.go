package dbhelper

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/brasas-burger/zapbot/database"
	"github.com/brasas-burger/zapbot/models"
)

// isUniqueViolation reports the Postgres unique_violation error class.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// Customers implements the bot's customer store over Postgres. Phones and
// tax ids are stored already normalized, so lookups are plain equality.
type Customers struct{}

func (Customers) FindByPhone(ctx context.Context, phone string) (models.Customer, error) {
	return scanCustomer(database.Brasas.QueryRowContext(ctx, `
		SELECT id, phone, name, tax_id, email, created_at
		FROM customers
		WHERE phone = $1`, phone))
}

func (Customers) FindByTaxID(ctx context.Context, taxID string) (models.Customer, error) {
	return scanCustomer(database.Brasas.QueryRowContext(ctx, `
		SELECT id, phone, name, tax_id, email, created_at
		FROM customers
		WHERE tax_id = $1`, taxID))
}

func (Customers) Create(ctx context.Context, phone, name string, taxID, email *string) (models.Customer, error) {
	return scanCustomer(database.Brasas.QueryRowContext(ctx, `
		INSERT INTO customers (phone, name, tax_id, email)
		VALUES ($1, $2, $3, $4)
		RETURNING id, phone, name, tax_id, email, created_at`,
		phone, name, taxID, email))
}

func scanCustomer(row *sql.Row) (models.Customer, error) {
	var c models.Customer
	err := row.Scan(&c.ID, &c.Phone, &c.Name, &c.TaxID, &c.Email, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Customer{}, models.ErrNotFound
	}
	if isUniqueViolation(err) {
		return models.Customer{}, models.ErrConflict
	}
	return c, err
}
