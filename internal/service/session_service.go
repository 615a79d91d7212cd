package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront/internal/domain"
	"storefront/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultSessionTTL is used when no session lifetime is configured
const DefaultSessionTTL = 30 * 24 * time.Hour

var (
	ErrInvalidSession = errors.New("invalid session")
	ErrSessionExpired = errors.New("session has expired")
)

// SessionService defines the interface for anonymous session lifecycle
type SessionService interface {
	Start(ctx context.Context) (*domain.Session, string, error)
	Validate(ctx context.Context, token string) (uuid.UUID, error)
	End(ctx context.Context, sessionID uuid.UUID) error
}

// Claims represents the session token claims
type Claims struct {
	SessionID uuid.UUID `json:"session_id"`
	jwt.RegisteredClaims
}

type sessionService struct {
	sessionRepo repository.SessionRepository
	carts       CartService
	wishlists   WishlistService
	secret      string
	ttl         time.Duration
	logger      *zap.Logger
	now         func() time.Time
}

// NewSessionService creates a new instance of SessionService
func NewSessionService(
	sessionRepo repository.SessionRepository,
	carts CartService,
	wishlists WishlistService,
	secret string,
	ttl time.Duration,
	logger *zap.Logger,
) SessionService {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &sessionService{
		sessionRepo: sessionRepo,
		carts:       carts,
		wishlists:   wishlists,
		secret:      secret,
		ttl:         ttl,
		logger:      logger,
		now:         time.Now,
	}
}

// Start creates a session and returns it with its signed token
func (s *sessionService) Start(ctx context.Context) (*domain.Session, string, error) {
	now := s.now()
	session := &domain.Session{
		ID:        uuid.New(),
		ExpiresAt: now.Add(s.ttl),
		CreatedAt: now,
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, "", fmt.Errorf("failed to create session: %w", err)
	}

	token, err := s.sign(session)
	if err != nil {
		return nil, "", fmt.Errorf("failed to sign session token: %w", err)
	}

	s.logger.Debug("Session started", zap.String("session_id", session.ID.String()))
	return session, token, nil
}

func (s *sessionService) sign(session *domain.Session) (string, error) {
	claims := &Claims{
		SessionID: session.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   session.ID.String(),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(session.CreatedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secret))
}

// Validate checks the token signature and that the session it names is still
// active in the store
func (s *sessionService) Validate(ctx context.Context, tokenString string) (uuid.UUID, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.secret), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return uuid.Nil, ErrSessionExpired
		}
		return uuid.Nil, ErrInvalidSession
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.SessionID == uuid.Nil {
		return uuid.Nil, ErrInvalidSession
	}

	session, err := s.sessionRepo.FindByID(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) || errors.Is(err, repository.ErrSessionRevoked) {
			return uuid.Nil, ErrInvalidSession
		}
		return uuid.Nil, fmt.Errorf("failed to find session: %w", err)
	}

	if !session.Active(s.now()) {
		return uuid.Nil, ErrSessionExpired
	}

	return session.ID, nil
}

// End revokes the session and discards its cart and wishlist
func (s *sessionService) End(ctx context.Context, sessionID uuid.UUID) error {
	if err := s.carts.ClearCart(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	if err := s.wishlists.Clear(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to clear wishlist: %w", err)
	}

	if err := s.sessionRepo.Revoke(ctx, sessionID); err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil
		}
		return fmt.Errorf("failed to revoke session: %w", err)
	}

	s.logger.Debug("Session ended", zap.String("session_id", sessionID.String()))
	return nil
}
