package dbhelper

import (
	"context"
	"database/sql"
	"errors"

	"github.com/brasas-burger/zapbot/database"
	"github.com/brasas-burger/zapbot/models"
)

// Menu implements the bot's catalog store. Only active items are visible.
type Menu struct{}

func (Menu) ListActive(ctx context.Context) ([]models.MenuItem, error) {
	rows, err := database.Brasas.QueryContext(ctx, `
		SELECT id, name, price_cents, is_active, created_at
		FROM menu_items
		WHERE is_active
		ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.MenuItem
	for rows.Next() {
		var m models.MenuItem
		if err := rows.Scan(&m.ID, &m.Name, &m.PriceCents, &m.IsActive, &m.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

// FindByNamePartial returns the first active item whose name contains the
// reference, case-insensitive, in name order.
func (Menu) FindByNamePartial(ctx context.Context, text string) (models.MenuItem, error) {
	var m models.MenuItem
	err := database.Brasas.QueryRowContext(ctx, `
		SELECT id, name, price_cents, is_active, created_at
		FROM menu_items
		WHERE is_active AND name ILIKE '%' || $1 || '%'
		ORDER BY name ASC
		LIMIT 1`, text).
		Scan(&m.ID, &m.Name, &m.PriceCents, &m.IsActive, &m.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.MenuItem{}, models.ErrNotFound
	}
	return m, err
}

func CountActiveMenuItems(ctx context.Context) (int, error) {
	var count int
	err := database.Brasas.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM menu_items WHERE is_active`).Scan(&count)
	return count, err
}
