package bot

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/brasas-burger/zapbot/models"
)

// ErrProductNotFound distinguishes a reference that matched nothing on the
// menu from cart-level store misses.
var ErrProductNotFound = errors.New("product not found")

// Engine mutates the cart model: product resolution, open-cart lookup and
// line-item merging.
type Engine struct {
	Catalog CatalogStore
	Carts   CartStore
}

// FindProduct matches a spoken product reference against active menu items.
// Partial, case-insensitive, first match in name order; a reference matching
// several items is not disambiguated further.
func (e *Engine) FindProduct(ctx context.Context, reference string) (models.MenuItem, error) {
	item, err := e.Catalog.FindByNamePartial(ctx, reference)
	if errors.Is(err, models.ErrNotFound) {
		return models.MenuItem{}, ErrProductNotFound
	}
	return item, err
}

// GetOrCreateOpenCart returns the customer's OPEN cart, creating one when
// absent. A create that loses the uniqueness race falls back to re-reading
// the winner's cart, so two concurrent adds never end up with two OPEN carts.
func (e *Engine) GetOrCreateOpenCart(ctx context.Context, customerID uuid.UUID) (models.Cart, error) {
	cart, err := e.Carts.FindOpenByCustomer(ctx, customerID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return models.Cart{}, err
	}

	cart, err = e.Carts.Create(ctx, customerID)
	if err == nil {
		return cart, nil
	}
	if errors.Is(err, models.ErrConflict) {
		return e.Carts.FindOpenByCustomer(ctx, customerID)
	}
	return models.Cart{}, err
}

// AddItem merges quantity into the (cart, menu item) line. Repeated adds of
// the same product increment the existing row.
func (e *Engine) AddItem(ctx context.Context, cartID, menuItemID uuid.UUID, quantity int) error {
	if quantity <= 0 {
		quantity = 1
	}
	return e.Carts.UpsertLineItem(ctx, cartID, menuItemID, quantity)
}

// ListItems returns the cart's lines with computed subtotals, ordered by
// product name for deterministic rendering.
func (e *Engine) ListItems(ctx context.Context, cartID uuid.UUID) ([]models.CartLine, error) {
	return e.Carts.ListLineItems(ctx, cartID)
}

// Add resolves the product reference and runs the full add sequence,
// returning the matched item and the updated cart contents.
func (e *Engine) Add(ctx context.Context, customerID uuid.UUID, reference string, quantity int) (models.MenuItem, []models.CartLine, error) {
	item, err := e.FindProduct(ctx, reference)
	if err != nil {
		return models.MenuItem{}, nil, err
	}

	cart, err := e.GetOrCreateOpenCart(ctx, customerID)
	if err != nil {
		return item, nil, fmt.Errorf("failed to open cart: %w", err)
	}

	if err := e.AddItem(ctx, cart.ID, item.ID, quantity); err != nil {
		return item, nil, fmt.Errorf("failed to add item: %w", err)
	}

	lines, err := e.ListItems(ctx, cart.ID)
	if err != nil {
		return item, nil, fmt.Errorf("failed to list cart: %w", err)
	}
	return item, lines, nil
}
