// Package events contains the WebSocket message contracts of the dashboard.
package events

import (
	"encoding/json"
	"time"
)

// MessageType defines the type of WebSocket message
type MessageType string

const (
	// Client to server
	MessageTypeSelection MessageType = "selection"
	MessageTypeHeartbeat MessageType = "heartbeat"

	// Server to client
	MessageTypeConnection     MessageType = "connection"
	MessageTypeDashboardView  MessageType = "dashboard:view"
	MessageTypeError          MessageType = "error"
	MessageTypeServerShutdown MessageType = "server:shutdown"
)

// Error codes sent in ErrorData.Code
const (
	ErrCodeInvalidMessage  = "INVALID_MESSAGE"
	ErrCodeUnsupportedType = "UNSUPPORTED_TYPE"
	ErrCodeInvalidRequest  = "INVALID_REQUEST"
	ErrCodeServerError     = "SERVER_ERROR"
)

// BaseMessage represents the base structure for all WebSocket messages
type BaseMessage struct {
	ID        string      `json:"id,omitempty"`       // Unique message ID
	Type      MessageType `json:"type"`               // Message type
	Timestamp time.Time   `json:"timestamp"`          // Message timestamp
	TraceID   string      `json:"trace_id,omitempty"` // Request trace ID
}

// WebSocketMessage is a server to client message.
type WebSocketMessage struct {
	BaseMessage
	Data interface{} `json:"data,omitempty"`
}

// ClientMessage is a client to server message; Data is decoded per Type.
type ClientMessage struct {
	ID   string          `json:"id,omitempty"`
	Type MessageType     `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// ConnectionData is sent once when a client registers.
type ConnectionData struct {
	ClientID   string `json:"client_id"`
	Status     string `json:"status"`
	APIVersion string `json:"api_version"`
}

// ErrorData is the payload of an error message.
type ErrorData struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// ShutdownData is broadcast before the server closes connections.
type ShutdownData struct {
	Reason string `json:"reason"`
}

// NewMessage builds a server message stamped with the current time.
func NewMessage(msgType MessageType, data interface{}) WebSocketMessage {
	return WebSocketMessage{
		BaseMessage: BaseMessage{
			Type:      msgType,
			Timestamp: time.Now().UTC(),
		},
		Data: data,
	}
}

// NewReply builds a message answering the client message with id replyTo.
func NewReply(replyTo string, msgType MessageType, data interface{}) WebSocketMessage {
	msg := NewMessage(msgType, data)
	msg.ID = replyTo
	return msg
}

// NewErrorMessage builds an error message.
func NewErrorMessage(replyTo, code, message string, details interface{}) WebSocketMessage {
	return NewReply(replyTo, MessageTypeError, ErrorData{Code: code, Message: message, Details: details})
}
