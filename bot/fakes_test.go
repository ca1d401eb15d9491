package bot

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/brasas-burger/zapbot/models"
)

// In-memory stores mirroring the Postgres behavior, including the
// uniqueness constraints the cart engine relies on.

type fakeCustomers struct {
	mu      sync.Mutex
	byPhone map[string]models.Customer
	failql  error // when set, every call fails with it
}

func newFakeCustomers() *fakeCustomers {
	return &fakeCustomers{byPhone: make(map[string]models.Customer)}
}

func (f *fakeCustomers) FindByPhone(ctx context.Context, phone string) (models.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failql != nil {
		return models.Customer{}, f.failql
	}
	c, ok := f.byPhone[phone]
	if !ok {
		return models.Customer{}, models.ErrNotFound
	}
	return c, nil
}

func (f *fakeCustomers) FindByTaxID(ctx context.Context, taxID string) (models.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failql != nil {
		return models.Customer{}, f.failql
	}
	for _, c := range f.byPhone {
		if c.TaxID != nil && *c.TaxID == taxID {
			return c, nil
		}
	}
	return models.Customer{}, models.ErrNotFound
}

func (f *fakeCustomers) Create(ctx context.Context, phone, name string, taxID, email *string) (models.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failql != nil {
		return models.Customer{}, f.failql
	}
	if _, ok := f.byPhone[phone]; ok {
		return models.Customer{}, models.ErrConflict
	}
	c := models.Customer{ID: uuid.New(), Phone: phone, Name: name, TaxID: taxID, Email: email}
	f.byPhone[phone] = c
	return c, nil
}

type fakeCatalog struct {
	items []models.MenuItem
}

func newFakeCatalog(items ...models.MenuItem) *fakeCatalog {
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return &fakeCatalog{items: items}
}

func (f *fakeCatalog) ListActive(ctx context.Context) ([]models.MenuItem, error) {
	var out []models.MenuItem
	for _, it := range f.items {
		if it.IsActive {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakeCatalog) FindByNamePartial(ctx context.Context, text string) (models.MenuItem, error) {
	needle := strings.ToLower(text)
	for _, it := range f.items {
		if it.IsActive && strings.Contains(strings.ToLower(it.Name), needle) {
			return it, nil
		}
	}
	return models.MenuItem{}, models.ErrNotFound
}

func (f *fakeCatalog) byID(id uuid.UUID) (models.MenuItem, bool) {
	for _, it := range f.items {
		if it.ID == id {
			return it, true
		}
	}
	return models.MenuItem{}, false
}

type fakeCarts struct {
	mu      sync.Mutex
	catalog *fakeCatalog
	open    map[uuid.UUID]models.Cart         // customer id -> OPEN cart
	lines   map[uuid.UUID]map[uuid.UUID]int   // cart id -> menu item id -> qty
}

func newFakeCarts(catalog *fakeCatalog) *fakeCarts {
	return &fakeCarts{
		catalog: catalog,
		open:    make(map[uuid.UUID]models.Cart),
		lines:   make(map[uuid.UUID]map[uuid.UUID]int),
	}
}

func (f *fakeCarts) FindOpenByCustomer(ctx context.Context, customerID uuid.UUID) (models.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.open[customerID]
	if !ok {
		return models.Cart{}, models.ErrNotFound
	}
	return c, nil
}

func (f *fakeCarts) Create(ctx context.Context, customerID uuid.UUID) (models.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.open[customerID]; ok {
		return models.Cart{}, models.ErrConflict
	}
	c := models.Cart{ID: uuid.New(), CustomerID: customerID, Status: models.CartOpen}
	f.open[customerID] = c
	f.lines[c.ID] = make(map[uuid.UUID]int)
	return c, nil
}

func (f *fakeCarts) UpsertLineItem(ctx context.Context, cartID, menuItemID uuid.UUID, deltaQuantity int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.lines[cartID]; !ok {
		f.lines[cartID] = make(map[uuid.UUID]int)
	}
	f.lines[cartID][menuItemID] += deltaQuantity
	return nil
}

func (f *fakeCarts) ListLineItems(ctx context.Context, cartID uuid.UUID) ([]models.CartLine, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.CartLine
	for itemID, qty := range f.lines[cartID] {
		item, ok := f.catalog.byID(itemID)
		if !ok {
			continue
		}
		out = append(out, models.CartLine{
			CartID:        cartID,
			MenuItemID:    itemID,
			Name:          item.Name,
			PriceCents:    item.PriceCents,
			Quantity:      qty,
			SubtotalCents: int64(qty) * item.PriceCents,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type fakeMessenger struct {
	mu    sync.Mutex
	sent  []string // "phone|text"
	fail  error
}

func (f *fakeMessenger) Send(ctx context.Context, phone, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return f.fail
	}
	f.sent = append(f.sent, phone+"|"+text)
	return nil
}

func (f *fakeMessenger) last() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.sent) == 0 {
		return ""
	}
	return f.sent[len(f.sent)-1]
}

type fakeResponder struct {
	reply string
	fail  error

	lastMessage string
	lastContext string
}

func (f *fakeResponder) Complete(ctx context.Context, userMessage, contextString string) (string, error) {
	f.lastMessage = userMessage
	f.lastContext = contextString
	if f.fail != nil {
		return "", f.fail
	}
	return f.reply, nil
}
