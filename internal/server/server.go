package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"storefront/internal/cache"
	"storefront/internal/config"
	"storefront/internal/database"
	custommiddleware "storefront/internal/middleware"
	"storefront/internal/notify"
	"storefront/internal/repository"
	"storefront/internal/service"
	"storefront/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	// noticeCapacity bounds the pending notices kept per session
	noticeCapacity = 20
	// noticeTTL is how long an undrained session keeps its notices
	noticeTTL = 30 * time.Minute
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	db     *database.Service
	redis  *redis.Client
}

// NewServer wires the store, the cart cache and the HTTP routes. A nil
// redisClient disables the cart cache and rate limiting.
func NewServer(cfg *config.Config, logger *zap.Logger, db *database.Service, redisClient *redis.Client) *Server {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.CORSMiddleware(cfg.Server.AllowedOrigins, cfg.IsDevelopment()))

	var cartCache cache.CartCache = cache.Noop{}
	sessionChain := []func(http.Handler) http.Handler{}
	if redisClient != nil {
		cartCache = cache.NewRedisCache(redisClient, cfg.Redis.CartTTL)

		limit := custommiddleware.RateLimitConfig{
			RequestsPerWindow: cfg.RateLimit.Requests,
			Window:            cfg.RateLimit.Window,
		}
		byIP, bySession := limit, limit
		byIP.KeyPrefix = "ratelimit:public"
		bySession.KeyPrefix = "ratelimit:session"
		router.Use(custommiddleware.RateLimitMiddleware(redisClient, byIP, logger))
		sessionChain = append(sessionChain, custommiddleware.RateLimitMiddleware(redisClient, bySession, logger))
	} else {
		logger.Warn("Redis is not configured, cart cache and rate limiting are disabled")
	}

	s := &Server{
		config: cfg,
		logger: logger,
		db:     db,
		redis:  redisClient,
	}

	router.Get("/health", s.health)

	// Initialize repositories
	sqlDB := db.DB()
	productRepo := repository.NewProductRepository(sqlDB)
	categoryRepo := repository.NewCategoryRepository(sqlDB)
	cartRepo := repository.NewCartRepository(sqlDB)
	wishlistRepo := repository.NewWishlistRepository(sqlDB)
	sessionRepo := repository.NewSessionRepository(sqlDB)
	orderRepo := repository.NewOrderRepository(sqlDB)

	// Initialize services
	inbox := notify.NewInbox(noticeCapacity, noticeTTL, notify.NewLogNotifier(logger))
	locker := service.NewSessionLocker()
	catalogService := service.NewCatalogService(productRepo, categoryRepo, logger)
	cartService := service.NewCartService(cartRepo, productRepo, cartCache, locker, inbox, logger)
	wishlistService := service.NewWishlistService(wishlistRepo, productRepo, locker, inbox, logger)
	checkoutService := service.NewCheckoutService(cartService, productRepo, orderRepo, cfg.Checkout, logger)
	sessionService := service.NewSessionService(sessionRepo, cartService, wishlistService, cfg.Session.Secret, cfg.Session.TTL, logger)

	// Session middleware resolves the session first so rate limits apply per session
	sessionChain = append([]func(http.Handler) http.Handler{
		custommiddleware.SessionMiddleware(sessionService, logger),
	}, sessionChain...)
	sessionMiddleware := chi.Chain(sessionChain...).Handler

	// Register routes
	transport.NewCatalogHandler(catalogService, logger).RegisterRoutes(router)
	transport.NewCartHandler(cartService, logger).RegisterRoutes(router, sessionMiddleware)
	transport.NewWishlistHandler(wishlistService, logger).RegisterRoutes(router, sessionMiddleware)
	transport.NewCheckoutHandler(checkoutService, logger).RegisterRoutes(router, sessionMiddleware)
	transport.NewSessionHandler(sessionService, inbox, logger).RegisterRoutes(router, sessionMiddleware)

	s.Server = &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return s
}

// health reports liveness along with the state of the store and the cache.
// An unreachable store answers 503.
func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	body := map[string]interface{}{"status": "ok"}

	db := s.db.Health(r.Context())
	body["database"] = db
	if db["status"] != "up" {
		status = http.StatusServiceUnavailable
		body["status"] = "degraded"
	}

	switch {
	case s.redis == nil:
		body["redis"] = "disabled"
	default:
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.redis.Ping(ctx).Err(); err != nil {
			body["redis"] = "down"
		} else {
			body["redis"] = "up"
		}
	}

	custommiddleware.RespondWithJSON(w, status, body)
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis connection", zap.Error(err))
		}
	}

	// Close database connection
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
