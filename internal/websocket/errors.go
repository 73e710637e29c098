package websocket

import "errors"

// Connection-related errors
var (
	ErrConnectionClosed = errors.New("connection closed")
	ErrWriteTimeout     = errors.New("write timeout")
	ErrInvalidJSON      = errors.New("invalid JSON data")
)

// Gateway-related errors
var (
	ErrNilConnection = errors.New("connection cannot be nil")
)

// Handler-related errors
var (
	ErrUnknownMessageType = errors.New("unknown message type")
)
