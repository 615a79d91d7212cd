// Package cache keeps a read-through copy of session carts.
package cache

import (
	"context"
	"errors"

	"storefront/internal/domain"

	"github.com/google/uuid"
)

var ErrCacheMiss = errors.New("cache miss")

// CartCache stores a session's line items
type CartCache interface {
	Get(ctx context.Context, sessionID uuid.UUID) ([]domain.CartItem, error)
	Set(ctx context.Context, sessionID uuid.UUID, items []domain.CartItem) error
	Delete(ctx context.Context, sessionID uuid.UUID) error
}

// Noop never holds anything. It is used when no Redis is configured.
type Noop struct{}

func (Noop) Get(context.Context, uuid.UUID) ([]domain.CartItem, error) { return nil, ErrCacheMiss }
func (Noop) Set(context.Context, uuid.UUID, []domain.CartItem) error   { return nil }
func (Noop) Delete(context.Context, uuid.UUID) error                   { return nil }
