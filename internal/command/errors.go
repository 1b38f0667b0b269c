package command

import "errors"

// Sentinel errors for command mapping and validation.
var (
	// ErrUnknownEntity indicates an MQTT topic suffix with no mapping.
	// Callers log and drop the message.
	ErrUnknownEntity = errors.New("command: unknown entity")

	// ErrUnknownCommand indicates a name outside the canonical vocabulary.
	ErrUnknownCommand = errors.New("command: unknown command")

	// ErrInvalidParams indicates a missing or out-of-range parameter.
	ErrInvalidParams = errors.New("command: invalid parameters")
)
