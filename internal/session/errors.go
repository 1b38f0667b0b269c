package session

import "errors"

// Sentinel errors for session lifecycle operations.
var (
	// ErrAlreadyConnected indicates Connect was called while a session
	// is active or being established.
	ErrAlreadyConnected = errors.New("session: already connected")

	// ErrConnectFailed indicates the initial broker connection failed.
	ErrConnectFailed = errors.New("session: connect failed")
)
