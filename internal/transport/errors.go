package transport

import (
	"errors"
	"net/http"

	"storefront/internal/cart"
	"storefront/internal/checkout"
	"storefront/internal/middleware"
	"storefront/internal/repository"
	"storefront/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// respondWithServiceError maps a service error onto the JSON error envelope.
// Errors without a mapping are logged and reported as fallback with a 500.
func respondWithServiceError(w http.ResponseWriter, logger *zap.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, repository.ErrProductNotFound):
		middleware.RespondWithError(w, http.StatusNotFound, "product not found")
	case errors.Is(err, repository.ErrCartItemNotFound):
		middleware.RespondWithError(w, http.StatusNotFound, "cart item not found")
	case errors.Is(err, cart.ErrInvalidQuantity):
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, checkout.ErrEmptyCart):
		middleware.RespondWithError(w, http.StatusConflict, "cart is empty")
	case errors.Is(err, checkout.ErrMissingContact):
		logger.Error("Checkout contact is not configured")
		middleware.RespondWithError(w, http.StatusServiceUnavailable, "checkout is unavailable")
	case errors.Is(err, service.ErrInvalidSession), errors.Is(err, service.ErrSessionExpired):
		middleware.RespondWithError(w, http.StatusUnauthorized, err.Error())
	default:
		logger.Error(fallback, zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, fallback)
	}
}

// respondWithDecodeError reports a request body that failed to decode or
// validate
func respondWithDecodeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	logger.Debug("Request validation failed", zap.Error(err))

	if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
		middleware.RespondWithValidationErrors(w, validationErrors)
		return
	}

	middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
}

// sessionFromRequest returns the session resolved by the session middleware
func sessionFromRequest(w http.ResponseWriter, r *http.Request, logger *zap.Logger) (uuid.UUID, bool) {
	sessionID, ok := middleware.GetSessionID(r.Context())
	if !ok {
		logger.Error("Session ID not found in context")
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return uuid.Nil, false
	}
	return sessionID, true
}

// uuidParam parses a UUID route parameter, answering 400 when it is malformed
func uuidParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		middleware.RespondWithErrorDetails(w, http.StatusBadRequest, "invalid "+name,
			map[string]interface{}{"param": name})
		return uuid.Nil, false
	}
	return id, true
}
