package websocket

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"traderoutes/internal/config"
	apierrors "traderoutes/internal/errors"
	"traderoutes/internal/infrastructure"
)

// Handler upgrades HTTP requests and attaches the connection to the hub.
type Handler struct {
	hub          *Hub
	views        ViewProvider
	validator    Validator
	opts         ClientOptions
	upgrader     websocket.Upgrader
	errorHandler *apierrors.ErrorHandler
	logger       *slog.Logger
}

// NewHandler creates the /ws handler. An empty allowedOrigins list accepts
// any origin.
func NewHandler(hub *Hub, views ViewProvider, validator Validator, cfg config.WebSocketConfig, allowedOrigins []string, errorHandler *apierrors.ErrorHandler, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}

	h := &Handler{
		hub:          hub,
		views:        views,
		validator:    validator,
		opts:         ClientOptionsFrom(cfg),
		errorHandler: errorHandler,
		logger:       infrastructure.WithComponent(logger, "websocket.handler"),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  cfg.ReadBufferSize,
		WriteBufferSize: cfg.WriteBufferSize,
		CheckOrigin:     checkOrigin(allowedOrigins),
	}
	return h
}

func checkOrigin(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || len(allowed) == 0 {
			return true
		}
		for _, a := range allowed {
			if a == "*" || strings.EqualFold(a, origin) {
				return true
			}
		}
		return false
	}
}

// ServeHTTP implements http.Handler
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !websocket.IsWebSocketUpgrade(r) {
		h.errorHandler.HandleError(w, r, apierrors.New(http.StatusBadRequest,
			apierrors.CodeWebSocketUpgrade, "expected a websocket upgrade request"))
		return
	}

	// The upgrader writes its own error response on failure.
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WarnContext(r.Context(), "WebSocket upgrade failed",
			slog.String("error", err.Error()),
			slog.String("origin", r.Header.Get("Origin")))
		return
	}

	// The connection outlives the request deadline.
	ctx := context.WithoutCancel(r.Context())
	client := NewClient(ctx, h.hub, NewConnectionWrapper(conn), h.views, h.validator, h.opts, h.logger)

	h.hub.Register(client)
	go client.WritePump()
	go client.ReadPump()
}
