package websocket

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"traderoutes/pkg/contracts/events"
)

// mockConnection feeds queued inbound frames to ReadMessage and records
// every frame written.
type mockConnection struct {
	incoming  chan []byte
	closed    chan struct{}
	closeOnce sync.Once

	mu      sync.Mutex
	written []writtenFrame
	notify  chan struct{}
}

type writtenFrame struct {
	messageType int
	data        []byte
}

func newMockConnection() *mockConnection {
	return &mockConnection{
		incoming: make(chan []byte, 16),
		closed:   make(chan struct{}),
		notify:   make(chan struct{}, 64),
	}
}

func (m *mockConnection) push(t *testing.T, v interface{}) {
	t.Helper()
	data, ok := v.([]byte)
	if !ok {
		var err error
		data, err = json.Marshal(v)
		require.NoError(t, err)
	}
	m.incoming <- data
}

func (m *mockConnection) WriteMessage(messageType int, data []byte) error {
	select {
	case <-m.closed:
		return errors.New("connection closed")
	default:
	}
	m.mu.Lock()
	m.written = append(m.written, writtenFrame{messageType: messageType, data: append([]byte(nil), data...)})
	m.mu.Unlock()
	select {
	case m.notify <- struct{}{}:
	default:
	}
	return nil
}

func (m *mockConnection) ReadMessage() (int, []byte, error) {
	select {
	case data := <-m.incoming:
		return websocket.TextMessage, data, nil
	case <-m.closed:
		return 0, nil, &websocket.CloseError{Code: websocket.CloseNormalClosure}
	}
}

func (m *mockConnection) Close() error {
	m.closeOnce.Do(func() { close(m.closed) })
	return nil
}

func (m *mockConnection) SetReadDeadline(time.Time) error  { return nil }
func (m *mockConnection) SetWriteDeadline(time.Time) error { return nil }
func (m *mockConnection) SetReadLimit(int64)               {}
func (m *mockConnection) SetPongHandler(func(string) error) {}
func (m *mockConnection) RemoteAddr() string               { return "127.0.0.1:5555" }

// textMessages decodes every text frame written so far.
func (m *mockConnection) textMessages(t *testing.T) []decodedMessage {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []decodedMessage
	for _, f := range m.written {
		if f.messageType != websocket.TextMessage {
			continue
		}
		var msg decodedMessage
		require.NoError(t, json.Unmarshal(f.data, &msg))
		out = append(out, msg)
	}
	return out
}

func (m *mockConnection) wroteClose() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, f := range m.written {
		if f.messageType == websocket.CloseMessage {
			return true
		}
	}
	return false
}

// waitFor blocks until a text message of type typ has been written.
func (m *mockConnection) waitFor(t *testing.T, typ events.MessageType) decodedMessage {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		for _, msg := range m.textMessages(t) {
			if msg.Type == typ {
				return msg
			}
		}
		select {
		case <-m.notify:
		case <-deadline:
			t.Fatalf("timed out waiting for %q message", typ)
		}
	}
}

type decodedMessage struct {
	ID      string             `json:"id"`
	Type    events.MessageType `json:"type"`
	TraceID string             `json:"trace_id"`
	Data    json.RawMessage    `json:"data"`
}
