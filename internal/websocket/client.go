package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"traderoutes/internal/config"
	apierrors "traderoutes/internal/errors"
	"traderoutes/internal/infrastructure"
	"traderoutes/internal/services"
	"traderoutes/pkg/contracts/api/v1"
	"traderoutes/pkg/contracts/domain"
	"traderoutes/pkg/contracts/events"
)

const sendBufferSize = 256

// ClientOptions holds the per-connection timing limits.
type ClientOptions struct {
	WriteWait      time.Duration
	PongWait       time.Duration
	PingPeriod     time.Duration
	MaxMessageSize int64
}

// ClientOptionsFrom converts the websocket configuration section.
func ClientOptionsFrom(cfg config.WebSocketConfig) ClientOptions {
	return ClientOptions{
		WriteWait:      cfg.WriteWait,
		PongWait:       cfg.PongWait,
		PingPeriod:     cfg.PingPeriod,
		MaxMessageSize: cfg.MaxMessageSize,
	}
}

// Client is a middleman between the websocket connection and the hub
type Client struct {
	hub       *Hub
	conn      Connection
	views     ViewProvider
	validator Validator
	opts      ClientOptions
	logger    *slog.Logger

	// Buffered channel of outbound messages; never closed
	send chan []byte

	quit      chan struct{}
	closeOnce sync.Once

	ctx         context.Context
	id          string
	traceID     string
	remoteAddr  string
	connectedAt time.Time
}

// NewClient creates a client for conn. ctx carries the trace id of the
// upgrade request and must outlive the connection.
func NewClient(ctx context.Context, hub *Hub, conn Connection, views ViewProvider, validator Validator, opts ClientOptions, logger *slog.Logger) *Client {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}
	ctx = infrastructure.EnsureTraceID(services.WithSource(ctx, services.SourceWebSocket))
	id := infrastructure.GenerateTraceID()

	return &Client{
		hub:         hub,
		conn:        conn,
		views:       views,
		validator:   validator,
		opts:        opts,
		logger:      logger.With(slog.String("client_id", id)),
		send:        make(chan []byte, sendBufferSize),
		quit:        make(chan struct{}),
		ctx:         ctx,
		id:          id,
		traceID:     infrastructure.GetTraceID(ctx),
		remoteAddr:  conn.RemoteAddr(),
		connectedAt: time.Now(),
	}
}

// ID returns the client identifier sent in the connection message.
func (c *Client) ID() string {
	return c.id
}

func (c *Client) context() context.Context {
	return c.ctx
}

// Send queues msg for delivery. It reports false when the buffer is full or
// the client is closed.
func (c *Client) Send(msg events.WebSocketMessage) bool {
	data, err := json.Marshal(msg)
	if err != nil {
		c.logger.ErrorContext(c.ctx, "Failed to marshal message",
			slog.String("type", string(msg.Type)),
			slog.String("error", err.Error()))
		return false
	}
	return c.enqueue(data)
}

func (c *Client) enqueue(data []byte) bool {
	select {
	case <-c.quit:
		return false
	default:
	}

	select {
	case c.send <- data:
		return true
	case <-c.quit:
		return false
	default:
		return false
	}
}

// close stops both pumps. Safe to call more than once.
func (c *Client) close() {
	c.closeOnce.Do(func() { close(c.quit) })
}

// ReadPump pumps messages from the websocket connection to the hub.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		c.close()
		c.conn.Close()
	}()

	c.conn.SetReadLimit(c.opts.MaxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(c.opts.PongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(c.opts.PongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				c.logger.WarnContext(c.ctx, "WebSocket read error", slog.String("error", err.Error()))
			}
			return
		}

		c.handleMessage(message)
	}
}

// WritePump pumps messages from the hub to the websocket connection.
func (c *Client) WritePump() {
	ticker := time.NewTicker(c.opts.PingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message := <-c.send:
			if err := c.write(websocket.TextMessage, message); err != nil {
				c.logger.DebugContext(c.ctx, "WebSocket write failed", slog.String("error", err.Error()))
				c.close()
				return
			}

		case <-ticker.C:
			if err := c.write(websocket.PingMessage, nil); err != nil {
				c.close()
				return
			}

		case <-c.quit:
			c.drain()
			c.write(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
			return
		}
	}
}

// drain flushes what was queued before the client was closed so a
// shutdown notice still reaches the peer.
func (c *Client) drain() {
	for {
		select {
		case message := <-c.send:
			if err := c.write(websocket.TextMessage, message); err != nil {
				return
			}
		default:
			return
		}
	}
}

func (c *Client) write(messageType int, data []byte) error {
	c.conn.SetWriteDeadline(time.Now().Add(c.opts.WriteWait))
	return c.conn.WriteMessage(messageType, data)
}

func (c *Client) handleMessage(raw []byte) {
	var msg events.ClientMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		c.Send(events.NewErrorMessage("", events.ErrCodeInvalidMessage, "message is not valid JSON", nil))
		return
	}

	c.hub.metrics.RecordWebSocketMessage(c.ctx, string(msg.Type))

	defer func() {
		rvr := recover()
		if rvr == nil {
			return
		}
		c.logger.ErrorContext(c.ctx, "panic recovered",
			slog.String("panic", fmt.Sprint(rvr)),
			slog.String("stack", string(debug.Stack())),
			slog.String("type", string(msg.Type)))
		c.Send(events.NewErrorMessage(msg.ID, events.ErrCodeServerError, "failed to process message", nil))
	}()

	switch msg.Type {
	case events.MessageTypeHeartbeat:
		// pongs keep the connection alive; nothing to answer
	case events.MessageTypeSelection:
		c.handleSelection(msg)
	default:
		c.Send(events.NewErrorMessage(msg.ID, events.ErrCodeUnsupportedType,
			"unsupported message type: "+string(msg.Type), nil))
	}
}

func (c *Client) handleSelection(msg events.ClientMessage) {
	var req domain.SelectionRequest
	if len(msg.Data) > 0 {
		if err := json.Unmarshal(msg.Data, &req); err != nil {
			c.Send(events.NewErrorMessage(msg.ID, events.ErrCodeInvalidRequest, "selection data is malformed", nil))
			return
		}
	}

	if c.validator != nil {
		if err := c.validator.ValidateStruct(api.QueryFromSelection(req)); err != nil {
			var details interface{}
			var apiErr *apierrors.APIError
			if errors.As(err, &apiErr) {
				details = apiErr.Details
			}
			c.Send(events.NewErrorMessage(msg.ID, events.ErrCodeInvalidRequest, "selection failed validation", details))
			return
		}
	}

	view, err := c.views.View(c.ctx, req)
	if err != nil {
		c.logger.ErrorContext(c.ctx, "Failed to build view", slog.String("error", err.Error()))
		c.Send(events.NewErrorMessage(msg.ID, events.ErrCodeServerError, "failed to build dashboard view", nil))
		return
	}

	reply := events.NewReply(msg.ID, events.MessageTypeDashboardView, view)
	reply.TraceID = c.traceID
	if !c.Send(reply) {
		c.logger.WarnContext(c.ctx, "Client send buffer full, disconnecting",
			slog.String("reply_to", msg.ID))
		c.close()
	}
}
