package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront/internal/domain"
	"storefront/internal/notify"
	"storefront/internal/repository"
	"storefront/internal/wishlist"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// WishlistService defines the interface for session wishlist operations
type WishlistService interface {
	Toggle(ctx context.Context, sessionID, productID uuid.UUID) (bool, error)
	IsInWishlist(ctx context.Context, sessionID, productID uuid.UUID) (bool, error)
	List(ctx context.Context, sessionID uuid.UUID) ([]uuid.UUID, error)
	Clear(ctx context.Context, sessionID uuid.UUID) error
}

type wishlistService struct {
	wishlistRepo repository.WishlistRepository
	productRepo  repository.ProductRepository
	locker       *SessionLocker
	notifier     notify.Notifier
	logger       *zap.Logger
}

// NewWishlistService creates a new instance of WishlistService
func NewWishlistService(
	wishlistRepo repository.WishlistRepository,
	productRepo repository.ProductRepository,
	locker *SessionLocker,
	notifier notify.Notifier,
	logger *zap.Logger,
) WishlistService {
	return &wishlistService{
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
		locker:       locker,
		notifier:     notifier,
		logger:       logger,
	}
}

func (s *wishlistService) set(ctx context.Context, sessionID uuid.UUID) (*wishlist.Set, error) {
	entries, err := s.wishlistRepo.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load wishlist: %w", err)
	}

	ids := make([]uuid.UUID, len(entries))
	for i, entry := range entries {
		ids[i] = entry.ProductID
	}
	return wishlist.NewSet(ids...), nil
}

// Toggle saves the product if it is not in the wishlist and removes it
// otherwise. It reports whether the product is saved afterwards.
func (s *wishlistService) Toggle(ctx context.Context, sessionID, productID uuid.UUID) (bool, error) {
	saved, err := s.toggle(ctx, sessionID, productID)
	if err != nil {
		s.logger.Error("Failed to update wishlist",
			zap.String("session_id", sessionID.String()),
			zap.String("product_id", productID.String()),
			zap.Error(err),
		)
		s.notifier.Notify(ctx, notify.Failure(sessionID, "Failed to update wishlist"))
		return false, err
	}
	return saved, nil
}

func (s *wishlistService) toggle(ctx context.Context, sessionID, productID uuid.UUID) (bool, error) {
	unlock := s.locker.Lock(sessionID)
	defer unlock()

	set, err := s.set(ctx, sessionID)
	if err != nil {
		return false, err
	}

	if !set.Toggle(productID) {
		if err := s.wishlistRepo.Delete(ctx, sessionID, productID); err != nil && !errors.Is(err, repository.ErrWishlistEntryNotFound) {
			return false, err
		}
		return false, nil
	}

	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return false, err
	}

	entry := &domain.WishlistEntry{
		ID:        uuid.New(),
		SessionID: sessionID,
		ProductID: productID,
		CreatedAt: time.Now(),
	}
	if err := s.wishlistRepo.Create(ctx, entry); err != nil && !errors.Is(err, repository.ErrWishlistEntryExists) {
		return false, err
	}
	return true, nil
}

// IsInWishlist reports whether the product is saved for the session
func (s *wishlistService) IsInWishlist(ctx context.Context, sessionID, productID uuid.UUID) (bool, error) {
	set, err := s.set(ctx, sessionID)
	if err != nil {
		return false, err
	}
	return set.Contains(productID), nil
}

// List returns the saved product ids, oldest first
func (s *wishlistService) List(ctx context.Context, sessionID uuid.UUID) ([]uuid.UUID, error) {
	entries, err := s.wishlistRepo.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load wishlist: %w", err)
	}

	ids := make([]uuid.UUID, len(entries))
	for i, entry := range entries {
		ids[i] = entry.ProductID
	}
	return ids, nil
}

// Clear empties the session's wishlist
func (s *wishlistService) Clear(ctx context.Context, sessionID uuid.UUID) error {
	unlock := s.locker.Lock(sessionID)
	defer unlock()

	return s.wishlistRepo.DeleteBySession(ctx, sessionID)
}
