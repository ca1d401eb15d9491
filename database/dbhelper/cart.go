package dbhelper

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/brasas-burger/zapbot/database"
	"github.com/brasas-burger/zapbot/models"
)

// Carts implements the bot's cart store. The schema enforces the two
// invariants the engine relies on: a partial unique index allows one OPEN
// cart per customer, and (cart_id, menu_item_id) is the line-item key.
type Carts struct{}

func (Carts) FindOpenByCustomer(ctx context.Context, customerID uuid.UUID) (models.Cart, error) {
	var c models.Cart
	err := database.Brasas.QueryRowContext(ctx, `
		SELECT id, customer_id, status, created_at
		FROM carts
		WHERE customer_id = $1 AND status = 'OPEN'`, customerID).
		Scan(&c.ID, &c.CustomerID, &c.Status, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Cart{}, models.ErrNotFound
	}
	return c, err
}

// Create inserts a new OPEN cart. Losing the race to a concurrent insert for
// the same customer surfaces as models.ErrConflict so the caller can re-read.
func (Carts) Create(ctx context.Context, customerID uuid.UUID) (models.Cart, error) {
	var c models.Cart
	err := database.Brasas.QueryRowContext(ctx, `
		INSERT INTO carts (customer_id, status)
		VALUES ($1, 'OPEN')
		RETURNING id, customer_id, status, created_at`, customerID).
		Scan(&c.ID, &c.CustomerID, &c.Status, &c.CreatedAt)
	if isUniqueViolation(err) {
		return models.Cart{}, models.ErrConflict
	}
	return c, err
}

// UpsertLineItem merges deltaQuantity into the (cart, menu item) row.
func (Carts) UpsertLineItem(ctx context.Context, cartID, menuItemID uuid.UUID, deltaQuantity int) error {
	_, err := database.Brasas.ExecContext(ctx, `
		INSERT INTO cart_items (cart_id, menu_item_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (cart_id, menu_item_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity`,
		cartID, menuItemID, deltaQuantity)
	return err
}

// ListLineItems joins lines with the catalog, subtotal computed in the
// query, ordered by product name for stable rendering.
func (Carts) ListLineItems(ctx context.Context, cartID uuid.UUID) ([]models.CartLine, error) {
	rows, err := database.Brasas.QueryContext(ctx, `
		SELECT ci.cart_id, ci.menu_item_id, mi.name, mi.price_cents, ci.quantity,
		       ci.quantity * mi.price_cents AS subtotal_cents
		FROM cart_items ci
		JOIN menu_items mi ON mi.id = ci.menu_item_id
		WHERE ci.cart_id = $1
		ORDER BY mi.name ASC`, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []models.CartLine
	for rows.Next() {
		var l models.CartLine
		if err := rows.Scan(&l.CartID, &l.MenuItemID, &l.Name, &l.PriceCents, &l.Quantity, &l.SubtotalCents); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}
