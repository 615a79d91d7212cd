package transport

import (
	"net/http"

	"storefront/internal/middleware"
	"storefront/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// OrderLinkResponse carries a single product deep link
type OrderLinkResponse struct {
	Link string `json:"link"`
}

// CheckoutHandler handles the hand-off to the messaging channel
type CheckoutHandler struct {
	checkoutService service.CheckoutService
	logger          *zap.Logger
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(checkoutService service.CheckoutService, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		logger:          logger,
	}
}

// RegisterRoutes registers the checkout routes. The single product order link
// is public; checking out the cart needs a session.
func (h *CheckoutHandler) RegisterRoutes(r chi.Router, sessionMiddleware func(http.Handler) http.Handler) {
	r.Get("/api/products/{id}/order-link", h.ProductOrderLink)
	r.With(sessionMiddleware).Post("/api/checkout", h.Checkout)
}

// Checkout handles formatting the cart into an order message and deep link
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionFromRequest(w, r, h.logger)
	if !ok {
		return
	}

	result, err := h.checkoutService.Checkout(r.Context(), sessionID)
	if err != nil {
		respondWithServiceError(w, h.logger, err, "failed to check out")
		return
	}

	h.logger.Info("Checkout link issued",
		zap.String("session_id", sessionID.String()),
		zap.String("order_number", result.OrderNumber),
	)
	middleware.RespondWithJSON(w, http.StatusOK, result)
}

// ProductOrderLink handles the single product deep link
func (h *CheckoutHandler) ProductOrderLink(w http.ResponseWriter, r *http.Request) {
	productID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	q := r.URL.Query()
	link, err := h.checkoutService.ProductLink(r.Context(), productID, q.Get("size"), q.Get("color"))
	if err != nil {
		respondWithServiceError(w, h.logger, err, "failed to build order link")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, OrderLinkResponse{Link: link})
}
