package websocket

import (
	"context"
	"time"

	"traderoutes/pkg/contracts/domain"
)

// Connection defines the interface for WebSocket connections
// This allows for proper mocking in tests
type Connection interface {
	// WriteMessage writes a message with the given message type and payload
	WriteMessage(messageType int, data []byte) error

	// ReadMessage reads a message from the connection
	ReadMessage() (messageType int, p []byte, err error)

	Close() error
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error
	SetReadLimit(limit int64)
	SetPongHandler(h func(string) error)

	// RemoteAddr returns the remote network address
	RemoteAddr() string
}

// ViewProvider builds the dashboard view for one selection.
type ViewProvider interface {
	View(ctx context.Context, req domain.SelectionRequest) (*domain.View, error)
}

// Validator checks a decoded request against its struct tags.
type Validator interface {
	ValidateStruct(v interface{}) error
}
