package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"storefront/internal/domain"
	"storefront/internal/notify"
	"storefront/internal/repository"

	"github.com/google/uuid"
)

var errStoreDown = errors.New("store unavailable")

// Mock repositories for testing
type mockProductRepository struct {
	mu       sync.Mutex
	products map[uuid.UUID]*domain.Product
	listErr  error
}

func newMockProductRepository(products ...*domain.Product) *mockProductRepository {
	m := &mockProductRepository{products: make(map[uuid.UUID]*domain.Product)}
	for _, p := range products {
		m.products[p.ID] = p
	}
	return m
}

func (m *mockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[product.ID] = product
	return nil
}

func (m *mockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	product, exists := m.products[id]
	if !exists {
		return nil, repository.ErrProductNotFound
	}
	return product, nil
}

func (m *mockProductRepository) ListInStock(ctx context.Context, category string) ([]*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []*domain.Product
	for _, p := range m.products {
		if !p.InStock {
			continue
		}
		if category != "" && category != "all" && p.Category != category {
			continue
		}
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

type mockCategoryRepository struct {
	categories []*domain.Category
	err        error
}

func (m *mockCategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	m.categories = append(m.categories, category)
	return nil
}

func (m *mockCategoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.categories, nil
}

func (m *mockCategoryRepository) FindBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	for _, c := range m.categories {
		if c.Slug == slug {
			return c, nil
		}
	}
	return nil, repository.ErrCategoryNotFound
}

// mockCartRepository keeps line items per session in insertion order
type mockCartRepository struct {
	mu      sync.Mutex
	items   map[uuid.UUID][]domain.CartItem
	lists   int
	failAdd bool
}

func newMockCartRepository() *mockCartRepository {
	return &mockCartRepository{items: make(map[uuid.UUID][]domain.CartItem)}
}

func (m *mockCartRepository) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]domain.CartItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lists++
	out := make([]domain.CartItem, len(m.items[sessionID]))
	copy(out, m.items[sessionID])
	return out, nil
}

func (m *mockCartRepository) AddOrIncrement(ctx context.Context, item *domain.CartItem) (*domain.CartItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAdd {
		return nil, errStoreDown
	}
	lines := m.items[item.SessionID]
	for i := range lines {
		if lines[i].SameVariant(item.ProductID, item.Size, item.Color) {
			lines[i].Quantity += item.Quantity
			lines[i].UpdatedAt = item.UpdatedAt
			stored := lines[i]
			return &stored, nil
		}
	}
	m.items[item.SessionID] = append(lines, *item)
	stored := *item
	return &stored, nil
}

func (m *mockCartRepository) UpdateQuantity(ctx context.Context, sessionID, id uuid.UUID, quantity int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	lines := m.items[sessionID]
	for i := range lines {
		if lines[i].ID == id {
			lines[i].Quantity = quantity
			return nil
		}
	}
	return repository.ErrCartItemNotFound
}

func (m *mockCartRepository) Delete(ctx context.Context, sessionID, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	lines := m.items[sessionID]
	for i := range lines {
		if lines[i].ID == id {
			m.items[sessionID] = append(lines[:i:i], lines[i+1:]...)
			return nil
		}
	}
	return repository.ErrCartItemNotFound
}

func (m *mockCartRepository) DeleteBySession(ctx context.Context, sessionID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, sessionID)
	return nil
}

type mockWishlistRepository struct {
	mu      sync.Mutex
	entries map[uuid.UUID][]domain.WishlistEntry
}

func newMockWishlistRepository() *mockWishlistRepository {
	return &mockWishlistRepository{entries: make(map[uuid.UUID][]domain.WishlistEntry)}
}

func (m *mockWishlistRepository) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]domain.WishlistEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.WishlistEntry, len(m.entries[sessionID]))
	copy(out, m.entries[sessionID])
	return out, nil
}

func (m *mockWishlistRepository) Create(ctx context.Context, entry *domain.WishlistEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.entries[entry.SessionID] {
		if e.ProductID == entry.ProductID {
			return repository.ErrWishlistEntryExists
		}
	}
	m.entries[entry.SessionID] = append(m.entries[entry.SessionID], *entry)
	return nil
}

func (m *mockWishlistRepository) Delete(ctx context.Context, sessionID, productID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	entries := m.entries[sessionID]
	for i, e := range entries {
		if e.ProductID == productID {
			m.entries[sessionID] = append(entries[:i:i], entries[i+1:]...)
			return nil
		}
	}
	return repository.ErrWishlistEntryNotFound
}

func (m *mockWishlistRepository) DeleteBySession(ctx context.Context, sessionID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, sessionID)
	return nil
}

type mockSessionRepository struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*domain.Session
}

func newMockSessionRepository() *mockSessionRepository {
	return &mockSessionRepository{sessions: make(map[uuid.UUID]*domain.Session)}
}

func (m *mockSessionRepository) Create(ctx context.Context, session *domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.ID] = session
	return nil
}

func (m *mockSessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, exists := m.sessions[id]
	if !exists {
		return nil, repository.ErrSessionNotFound
	}
	if session.Revoked {
		return nil, repository.ErrSessionRevoked
	}
	return session, nil
}

func (m *mockSessionRepository) Revoke(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, exists := m.sessions[id]
	if !exists {
		return repository.ErrSessionNotFound
	}
	session.Revoked = true
	return nil
}

type mockOrderRepository struct {
	mu     sync.Mutex
	orders []*domain.Order
	err    error
}

func (m *mockOrderRepository) CreateBatch(ctx context.Context, orders []*domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.orders = append(m.orders, orders...)
	return nil
}

func (m *mockOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) ([]*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Order
	for _, o := range m.orders {
		if o.OrderNumber == orderNumber {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return nil, repository.ErrOrderNotFound
	}
	return out, nil
}

// recordingNotifier keeps every notice it receives
type recordingNotifier struct {
	mu      sync.Mutex
	notices []notify.Notice
}

func (n *recordingNotifier) Notify(_ context.Context, notice notify.Notice) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices = append(n.notices, notice)
}

func (n *recordingNotifier) last() (notify.Notice, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.notices) == 0 {
		return notify.Notice{}, false
	}
	return n.notices[len(n.notices)-1], true
}

func testProduct(name string, price float64) *domain.Product {
	return &domain.Product{
		ID:        uuid.New(),
		Name:      name,
		Category:  "clothing",
		Price:     price,
		Size:      domain.StringPtr("M"),
		Color:     domain.StringPtr("Black"),
		InStock:   true,
		CreatedAt: time.Now(),
	}
}
