package bot

import (
	"context"

	"github.com/google/uuid"

	"github.com/brasas-burger/zapbot/models"
)

// Store contracts consumed by the bot core. The Postgres implementations live
// in database/dbhelper; tests use in-memory fakes. Lookups return
// models.ErrNotFound on a miss, never a nil-and-nil pair.

type CustomerStore interface {
	FindByPhone(ctx context.Context, phone string) (models.Customer, error)
	FindByTaxID(ctx context.Context, taxID string) (models.Customer, error)
	Create(ctx context.Context, phone, name string, taxID, email *string) (models.Customer, error)
}

type CatalogStore interface {
	ListActive(ctx context.Context) ([]models.MenuItem, error)
	FindByNamePartial(ctx context.Context, text string) (models.MenuItem, error)
}

type CartStore interface {
	FindOpenByCustomer(ctx context.Context, customerID uuid.UUID) (models.Cart, error)
	Create(ctx context.Context, customerID uuid.UUID) (models.Cart, error)
	UpsertLineItem(ctx context.Context, cartID, menuItemID uuid.UUID, deltaQuantity int) error
	ListLineItems(ctx context.Context, cartID uuid.UUID) ([]models.CartLine, error)
}

// Messenger is the outbound transport (UltraMsg in production).
type Messenger interface {
	Send(ctx context.Context, phone, text string) error
}

// Responder generates free-form replies when no structured intent applies.
// Implementations degrade to an apology string instead of failing the request.
type Responder interface {
	Complete(ctx context.Context, userMessage, contextString string) (string, error)
}

// Styler is the optional dialect post-processing stage.
type Styler interface {
	Style(text string) string
}
