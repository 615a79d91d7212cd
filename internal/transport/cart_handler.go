package transport

import (
	"net/http"

	"storefront/internal/middleware"
	"storefront/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AddItemRequest represents the add-to-cart payload. Size and color default
// to the product's own when omitted.
type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,gt=0,lte=999"`
	Size      string `json:"size" validate:"max=32"`
	Color     string `json:"color" validate:"max=32"`
}

// UpdateItemRequest sets a line's quantity. Zero removes the line.
type UpdateItemRequest struct {
	Quantity *int `json:"quantity" validate:"required,gte=0,lte=999"`
}

// CartHandler handles HTTP requests for the session cart
type CartHandler struct {
	cartService service.CartService
	logger      *zap.Logger
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService service.CartService, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		logger:      logger,
	}
}

// RegisterRoutes registers the cart routes behind the session middleware
func (h *CartHandler) RegisterRoutes(r chi.Router, sessionMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/cart", func(r chi.Router) {
		r.Use(sessionMiddleware)
		r.Get("/", h.GetCart)
		r.Delete("/", h.ClearCart)
		r.Post("/items", h.AddItem)
		r.Put("/items/{id}", h.UpdateItem)
		r.Delete("/items/{id}", h.RemoveItem)
	})
}

// GetCart handles reading the cart with its totals
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionFromRequest(w, r, h.logger)
	if !ok {
		return
	}

	view, err := h.cartService.GetCart(r.Context(), sessionID)
	if err != nil {
		respondWithServiceError(w, h.logger, err, "failed to get cart")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, view)
}

// AddItem handles adding a product variant to the cart
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionFromRequest(w, r, h.logger)
	if !ok {
		return
	}

	var req AddItemRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		respondWithDecodeError(w, h.logger, err)
		return
	}

	productID := uuid.MustParse(req.ProductID)
	view, err := h.cartService.AddToCart(r.Context(), sessionID, productID, req.Quantity, req.Size, req.Color)
	if err != nil {
		respondWithServiceError(w, h.logger, err, "failed to add to cart")
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, view)
}

// UpdateItem handles setting a line's quantity
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionFromRequest(w, r, h.logger)
	if !ok {
		return
	}
	itemID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	var req UpdateItemRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		respondWithDecodeError(w, h.logger, err)
		return
	}

	view, err := h.cartService.UpdateQuantity(r.Context(), sessionID, itemID, *req.Quantity)
	if err != nil {
		respondWithServiceError(w, h.logger, err, "failed to update cart item")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, view)
}

// RemoveItem handles removing a line from the cart
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionFromRequest(w, r, h.logger)
	if !ok {
		return
	}
	itemID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	view, err := h.cartService.RemoveFromCart(r.Context(), sessionID, itemID)
	if err != nil {
		respondWithServiceError(w, h.logger, err, "failed to remove cart item")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, view)
}

// ClearCart handles emptying the cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionFromRequest(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.cartService.ClearCart(r.Context(), sessionID); err != nil {
		respondWithServiceError(w, h.logger, err, "failed to clear cart")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
