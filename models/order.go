package models

import (
	"time"

	"github.com/google/uuid"
)

type CartStatus string

const (
	CartOpen   CartStatus = "OPEN"
	CartClosed CartStatus = "CLOSED"
)

// MenuItem prices are stored in centavos to keep arithmetic exact.
type MenuItem struct {
	ID         uuid.UUID `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	PriceCents int64     `db:"price_cents" json:"price_cents"`
	IsActive   bool      `db:"is_active" json:"is_active"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// Cart is the order in progress. At most one OPEN cart exists per customer.
type Cart struct {
	ID         uuid.UUID  `db:"id" json:"id"`
	CustomerID uuid.UUID  `db:"customer_id" json:"customer_id"`
	Status     CartStatus `db:"status" json:"status"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
}

// CartLine is one (cart, menu item) row joined with the catalog entry.
// SubtotalCents is computed at read time, never stored.
type CartLine struct {
	CartID        uuid.UUID `db:"cart_id" json:"cart_id"`
	MenuItemID    uuid.UUID `db:"menu_item_id" json:"menu_item_id"`
	Name          string    `db:"name" json:"name"`
	PriceCents    int64     `db:"price_cents" json:"price_cents"`
	Quantity      int       `db:"quantity" json:"quantity"`
	SubtotalCents int64     `db:"subtotal_cents" json:"subtotal_cents"`
}
