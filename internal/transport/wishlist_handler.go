package transport

import (
	"net/http"

	"storefront/internal/middleware"
	"storefront/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// WishlistResponse lists the saved product ids
type WishlistResponse struct {
	ProductIDs []uuid.UUID `json:"product_ids"`
	Count      int         `json:"count"`
}

// MembershipResponse reports whether a product is saved
type MembershipResponse struct {
	ProductID  uuid.UUID `json:"product_id"`
	InWishlist bool      `json:"in_wishlist"`
}

// WishlistHandler handles HTTP requests for the session wishlist
type WishlistHandler struct {
	wishlistService service.WishlistService
	logger          *zap.Logger
}

// NewWishlistHandler creates a new WishlistHandler
func NewWishlistHandler(wishlistService service.WishlistService, logger *zap.Logger) *WishlistHandler {
	return &WishlistHandler{
		wishlistService: wishlistService,
		logger:          logger,
	}
}

// RegisterRoutes registers the wishlist routes behind the session middleware
func (h *WishlistHandler) RegisterRoutes(r chi.Router, sessionMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/wishlist", func(r chi.Router) {
		r.Use(sessionMiddleware)
		r.Get("/", h.List)
		r.Get("/{productID}", h.Contains)
		r.Post("/{productID}/toggle", h.Toggle)
	})
}

// List handles reading the wishlist
func (h *WishlistHandler) List(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionFromRequest(w, r, h.logger)
	if !ok {
		return
	}

	ids, err := h.wishlistService.List(r.Context(), sessionID)
	if err != nil {
		respondWithServiceError(w, h.logger, err, "failed to get wishlist")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, WishlistResponse{ProductIDs: ids, Count: len(ids)})
}

// Contains handles the membership query
func (h *WishlistHandler) Contains(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionFromRequest(w, r, h.logger)
	if !ok {
		return
	}
	productID, ok := uuidParam(w, r, "productID")
	if !ok {
		return
	}

	in, err := h.wishlistService.IsInWishlist(r.Context(), sessionID, productID)
	if err != nil {
		respondWithServiceError(w, h.logger, err, "failed to get wishlist")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, MembershipResponse{ProductID: productID, InWishlist: in})
}

// Toggle handles saving or unsaving a product
func (h *WishlistHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionFromRequest(w, r, h.logger)
	if !ok {
		return
	}
	productID, ok := uuidParam(w, r, "productID")
	if !ok {
		return
	}

	in, err := h.wishlistService.Toggle(r.Context(), sessionID, productID)
	if err != nil {
		respondWithServiceError(w, h.logger, err, "failed to update wishlist")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, MembershipResponse{ProductID: productID, InWishlist: in})
}
