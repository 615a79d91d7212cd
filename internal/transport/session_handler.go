package transport

import (
	"net/http"
	"time"

	"storefront/internal/middleware"
	"storefront/internal/notify"
	"storefront/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionResponse is returned when a session starts
type SessionResponse struct {
	SessionID uuid.UUID `json:"session_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// NoticesResponse carries the pending outcome notices of a session
type NoticesResponse struct {
	Notices []notify.Notice `json:"notices"`
}

// NoticeBox holds pending notices per session
type NoticeBox interface {
	Drain(sessionID uuid.UUID) []notify.Notice
	Forget(sessionID uuid.UUID)
}

// SessionHandler handles the anonymous session lifecycle
type SessionHandler struct {
	sessionService service.SessionService
	notices        NoticeBox
	logger         *zap.Logger
}

// NewSessionHandler creates a new SessionHandler
func NewSessionHandler(sessionService service.SessionService, notices NoticeBox, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
		notices:        notices,
		logger:         logger,
	}
}

// RegisterRoutes registers the session routes
func (h *SessionHandler) RegisterRoutes(r chi.Router, sessionMiddleware func(http.Handler) http.Handler) {
	r.Post("/api/session", h.Start)
	r.Group(func(r chi.Router) {
		r.Use(sessionMiddleware)
		r.Delete("/api/session", h.End)
		r.Get("/api/notices", h.Notices)
	})
}

// Start handles creating an anonymous session
func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	session, token, err := h.sessionService.Start(r.Context())
	if err != nil {
		respondWithServiceError(w, h.logger, err, "failed to start session")
		return
	}

	h.logger.Info("Session started", zap.String("session_id", session.ID.String()))
	middleware.RespondWithJSON(w, http.StatusCreated, SessionResponse{
		SessionID: session.ID,
		Token:     token,
		ExpiresAt: session.ExpiresAt,
	})
}

// End handles tearing down the session with its cart and wishlist
func (h *SessionHandler) End(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionFromRequest(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.sessionService.End(r.Context(), sessionID); err != nil {
		respondWithServiceError(w, h.logger, err, "failed to end session")
		return
	}
	h.notices.Forget(sessionID)

	h.logger.Info("Session ended", zap.String("session_id", sessionID.String()))
	w.WriteHeader(http.StatusNoContent)
}

// Notices handles draining the session's pending notices
func (h *SessionHandler) Notices(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionFromRequest(w, r, h.logger)
	if !ok {
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, NoticesResponse{Notices: h.notices.Drain(sessionID)})
}
