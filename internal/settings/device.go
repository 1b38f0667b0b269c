package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// deviceIDKey is where the stable per-install identity lives.
const deviceIDKey = "device_id"

// deviceIDPrefix namespaces generated identifiers.
const deviceIDPrefix = "wallpanel-"

// DeviceID returns the stable per-install device identifier, generating
// and persisting one on first call.
//
// The identifier is independent of any user-chosen display name and
// survives renames; discovery unique_ids are built from it so entities
// keep their history when the device is renamed.
func (s *Store) DeviceID(ctx context.Context) (string, error) {
	id, err := s.Get(ctx, deviceIDKey)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return "", err
	}

	id = deviceIDPrefix + uuid.NewString()
	if err := s.Set(ctx, deviceIDKey, id); err != nil {
		return "", fmt.Errorf("persisting device id: %w", err)
	}
	return id, nil
}
