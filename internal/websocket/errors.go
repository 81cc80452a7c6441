package websocket

import "errors"

// ErrHubStopped is returned when broadcasting after Shutdown.
var ErrHubStopped = errors.New("websocket hub stopped")
