package service

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/cache"
	"storefront/internal/cart"
	"storefront/internal/domain"
	"storefront/internal/notify"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// CartView is a cart together with its derived totals
type CartView struct {
	Items       []domain.CartItem `json:"items"`
	TotalItems  int               `json:"total_items"`
	TotalAmount float64           `json:"total_amount"`
}

func newCartView(c *cart.Cart) *CartView {
	return &CartView{
		Items:       c.Items(),
		TotalItems:  c.TotalItems(),
		TotalAmount: c.TotalAmount(),
	}
}

// CartService defines the interface for session cart operations. Every
// mutation is persisted before the returned view is built, so the view always
// reflects the store.
type CartService interface {
	GetCart(ctx context.Context, sessionID uuid.UUID) (*CartView, error)
	AddToCart(ctx context.Context, sessionID, productID uuid.UUID, quantity int, size, color string) (*CartView, error)
	UpdateQuantity(ctx context.Context, sessionID, itemID uuid.UUID, quantity int) (*CartView, error)
	RemoveFromCart(ctx context.Context, sessionID, itemID uuid.UUID) (*CartView, error)
	ClearCart(ctx context.Context, sessionID uuid.UUID) error
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	cache       cache.CartCache
	locker      *SessionLocker
	notifier    notify.Notifier
	logger      *zap.Logger
	sfg         singleflight.Group
}

// NewCartService creates a new instance of CartService
func NewCartService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	cartCache cache.CartCache,
	locker *SessionLocker,
	notifier notify.Notifier,
	logger *zap.Logger,
) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		cache:       cartCache,
		locker:      locker,
		notifier:    notifier,
		logger:      logger,
	}
}

// GetCart returns the session's cart. Concurrent reads of one session share a
// single load, which runs detached from any one caller's cancellation; each
// caller still stops waiting when its own context ends.
func (s *cartService) GetCart(ctx context.Context, sessionID uuid.UUID) (*CartView, error) {
	shared := context.WithoutCancel(ctx)
	ch := s.sfg.DoChan(sessionID.String(), func() (interface{}, error) {
		unlock := s.locker.Lock(sessionID)
		defer unlock()
		return s.load(shared, sessionID)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return newCartView(res.Val.(*cart.Cart)), nil
	}
}

// load reads the cart through the cache. Callers must hold the session lock.
func (s *cartService) load(ctx context.Context, sessionID uuid.UUID) (*cart.Cart, error) {
	items, err := s.cache.Get(ctx, sessionID)
	if err == nil {
		return cart.FromItems(sessionID, items), nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("Cart cache read failed", zap.String("session_id", sessionID.String()), zap.Error(err))
	}

	items, err = s.cartRepo.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	if err := s.cache.Set(ctx, sessionID, items); err != nil {
		s.logger.Warn("Cart cache write failed", zap.String("session_id", sessionID.String()), zap.Error(err))
	}

	return cart.FromItems(sessionID, items), nil
}

func (s *cartService) invalidate(ctx context.Context, sessionID uuid.UUID) {
	if err := s.cache.Delete(ctx, sessionID); err != nil {
		s.logger.Warn("Cart cache invalidation failed", zap.String("session_id", sessionID.String()), zap.Error(err))
	}
}

// reload drops the cached copy and reads the cart back from the store
func (s *cartService) reload(ctx context.Context, sessionID uuid.UUID) (*CartView, error) {
	s.invalidate(ctx, sessionID)
	c, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return newCartView(c), nil
}

// AddToCart adds quantity units of a product variant. An empty size or color
// falls back to the product's own. Adding a variant already in the cart grows
// its line.
func (s *cartService) AddToCart(ctx context.Context, sessionID, productID uuid.UUID, quantity int, size, color string) (*CartView, error) {
	view, err := s.addToCart(ctx, sessionID, productID, quantity, size, color)
	if err != nil {
		s.notifier.Notify(ctx, notify.Failure(sessionID, "Failed to add to cart"))
		return nil, err
	}

	s.notifier.Notify(ctx, notify.Success(sessionID, "Added to cart!"))
	return view, nil
}

func (s *cartService) addToCart(ctx context.Context, sessionID, productID uuid.UUID, quantity int, size, color string) (*CartView, error) {
	if quantity <= 0 {
		return nil, cart.ErrInvalidQuantity
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if size == "" {
		size = domain.StringValue(product.Size)
	}
	if color == "" {
		color = domain.StringValue(product.Color)
	}

	unlock := s.locker.Lock(sessionID)
	defer unlock()

	c, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	item, _, err := c.Add(product, quantity, size, color)
	if err != nil {
		return nil, err
	}

	// the store applies the increment itself, so send only the added units
	item.Quantity = quantity
	if _, err := s.cartRepo.AddOrIncrement(ctx, &item); err != nil {
		return nil, fmt.Errorf("failed to add to cart: %w", err)
	}

	s.logger.Debug("Added to cart",
		zap.String("session_id", sessionID.String()),
		zap.String("product_id", productID.String()),
		zap.Int("quantity", quantity),
	)

	return s.reload(ctx, sessionID)
}

// UpdateQuantity sets a line's quantity; zero or less removes the line
func (s *cartService) UpdateQuantity(ctx context.Context, sessionID, itemID uuid.UUID, quantity int) (*CartView, error) {
	if quantity <= 0 {
		return s.RemoveFromCart(ctx, sessionID, itemID)
	}

	unlock := s.locker.Lock(sessionID)
	defer unlock()

	if err := s.cartRepo.UpdateQuantity(ctx, sessionID, itemID, quantity); err != nil {
		if errors.Is(err, repository.ErrCartItemNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update quantity: %w", err)
	}

	return s.reload(ctx, sessionID)
}

// RemoveFromCart deletes a line. Removing an unknown line is not an error.
func (s *cartService) RemoveFromCart(ctx context.Context, sessionID, itemID uuid.UUID) (*CartView, error) {
	unlock := s.locker.Lock(sessionID)
	defer unlock()

	if err := s.cartRepo.Delete(ctx, sessionID, itemID); err != nil && !errors.Is(err, repository.ErrCartItemNotFound) {
		return nil, fmt.Errorf("failed to remove from cart: %w", err)
	}

	return s.reload(ctx, sessionID)
}

// ClearCart removes every line of the session
func (s *cartService) ClearCart(ctx context.Context, sessionID uuid.UUID) error {
	unlock := s.locker.Lock(sessionID)
	defer unlock()

	if err := s.cartRepo.DeleteBySession(ctx, sessionID); err != nil {
		return err
	}

	s.invalidate(ctx, sessionID)
	return nil
}
