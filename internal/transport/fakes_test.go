package transport

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"time"

	"storefront/internal/catalog"
	"storefront/internal/domain"
	"storefront/internal/middleware"
	"storefront/internal/notify"
	"storefront/internal/repository"
	"storefront/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service fakes for handler tests. Each records the arguments of its last call.

type fakeCatalog struct {
	lastConfig catalog.FilterSortConfig
	result     *service.BrowseResult
	products   map[uuid.UUID]*domain.Product
	categories []*domain.Category
	err        error
}

func (f *fakeCatalog) Browse(_ context.Context, cfg catalog.FilterSortConfig) *service.BrowseResult {
	f.lastConfig = cfg
	if f.result == nil {
		return &service.BrowseResult{Products: []*domain.Product{}, Subcategories: []string{}}
	}
	return f.result
}

func (f *fakeCatalog) Categories(context.Context) ([]*domain.Category, error) {
	return f.categories, f.err
}

func (f *fakeCatalog) Product(_ context.Context, id uuid.UUID) (*domain.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	return p, nil
}

type fakeCart struct {
	view      *service.CartView
	err       error
	lastItem  uuid.UUID
	lastQty   int
	lastSize  string
	lastColor string
	cleared   bool
}

func (f *fakeCart) result() (*service.CartView, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.view == nil {
		return &service.CartView{Items: []domain.CartItem{}}, nil
	}
	return f.view, nil
}

func (f *fakeCart) GetCart(context.Context, uuid.UUID) (*service.CartView, error) {
	return f.result()
}

func (f *fakeCart) AddToCart(_ context.Context, _, productID uuid.UUID, qty int, size, color string) (*service.CartView, error) {
	f.lastItem, f.lastQty, f.lastSize, f.lastColor = productID, qty, size, color
	return f.result()
}

func (f *fakeCart) UpdateQuantity(_ context.Context, _, itemID uuid.UUID, qty int) (*service.CartView, error) {
	f.lastItem, f.lastQty = itemID, qty
	return f.result()
}

func (f *fakeCart) RemoveFromCart(_ context.Context, _, itemID uuid.UUID) (*service.CartView, error) {
	f.lastItem = itemID
	return f.result()
}

func (f *fakeCart) ClearCart(context.Context, uuid.UUID) error {
	f.cleared = true
	return f.err
}

type fakeWishlist struct {
	saved map[uuid.UUID]bool
	err   error
}

func (f *fakeWishlist) Toggle(_ context.Context, _, productID uuid.UUID) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	f.saved[productID] = !f.saved[productID]
	return f.saved[productID], nil
}

func (f *fakeWishlist) IsInWishlist(_ context.Context, _, productID uuid.UUID) (bool, error) {
	return f.saved[productID], f.err
}

func (f *fakeWishlist) List(context.Context, uuid.UUID) ([]uuid.UUID, error) {
	ids := []uuid.UUID{}
	for id, in := range f.saved {
		if in {
			ids = append(ids, id)
		}
	}
	return ids, f.err
}

func (f *fakeWishlist) Clear(context.Context, uuid.UUID) error {
	f.saved = map[uuid.UUID]bool{}
	return f.err
}

type fakeCheckout struct {
	result      *service.CheckoutResult
	err         error
	lastProduct uuid.UUID
	lastSize    string
	lastColor   string
}

func (f *fakeCheckout) Checkout(context.Context, uuid.UUID) (*service.CheckoutResult, error) {
	return f.result, f.err
}

func (f *fakeCheckout) ProductLink(_ context.Context, productID uuid.UUID, size, color string) (string, error) {
	f.lastProduct, f.lastSize, f.lastColor = productID, size, color
	if f.err != nil {
		return "", f.err
	}
	return "https://wa.me/254700000000?text=hi", nil
}

// fakeSessions accepts the token "valid" for session
type fakeSessions struct {
	session uuid.UUID
	ended   bool
}

func (f *fakeSessions) Start(context.Context) (*domain.Session, string, error) {
	return &domain.Session{ID: f.session}, "valid", nil
}

func (f *fakeSessions) Validate(_ context.Context, token string) (uuid.UUID, error) {
	if token != "valid" {
		return uuid.Nil, service.ErrInvalidSession
	}
	return f.session, nil
}

func (f *fakeSessions) End(context.Context, uuid.UUID) error {
	f.ended = true
	return nil
}

type testAPI struct {
	router   chi.Router
	session  uuid.UUID
	catalog  *fakeCatalog
	cart     *fakeCart
	wishlist *fakeWishlist
	checkout *fakeCheckout
	sessions *fakeSessions
	inbox    *notify.Inbox
}

func newTestAPI() *testAPI {
	logger := zap.NewNop()
	api := &testAPI{
		router:   chi.NewRouter(),
		session:  uuid.New(),
		catalog:  &fakeCatalog{products: map[uuid.UUID]*domain.Product{}},
		cart:     &fakeCart{},
		wishlist: &fakeWishlist{saved: map[uuid.UUID]bool{}},
		checkout: &fakeCheckout{},
		inbox:    notify.NewInbox(5, time.Minute, nil),
	}
	api.sessions = &fakeSessions{session: api.session}
	sessionMW := middleware.SessionMiddleware(api.sessions, logger)

	NewCatalogHandler(api.catalog, logger).RegisterRoutes(api.router)
	NewCartHandler(api.cart, logger).RegisterRoutes(api.router, sessionMW)
	NewWishlistHandler(api.wishlist, logger).RegisterRoutes(api.router, sessionMW)
	NewCheckoutHandler(api.checkout, logger).RegisterRoutes(api.router, sessionMW)
	NewSessionHandler(api.sessions, api.inbox, logger).RegisterRoutes(api.router, sessionMW)
	return api
}

func (api *testAPI) serve(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	api.router.ServeHTTP(w, req)
	return w
}

// authed returns a request carrying the valid session token
func authed(method, target string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Authorization", "Bearer valid")
	return req
}

var errBoom = errors.New("boom")
