package settings

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func testStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(Config{
		Path:        filepath.Join(t.TempDir(), "wallpanel.db"),
		BusyTimeout: 5,
	})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })

	return s
}

// =============================================================================
// Open/Close Tests
// =============================================================================

func TestOpenCreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "wallpanel.db")

	s, err := Open(Config{Path: path, BusyTimeout: 5})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer s.Close()

	if s.Path() != path {
		t.Errorf("Path() = %q, want %q", s.Path(), path)
	}
}

func TestClose(t *testing.T) {
	s := testStore(t)

	if err := s.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestHealthCheck(t *testing.T) {
	s := testStore(t)

	if err := s.HealthCheck(context.Background()); err != nil {
		t.Errorf("HealthCheck() error = %v", err)
	}
}

// =============================================================================
// Get/Set Tests
// =============================================================================

func TestSetGet(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if err := s.Set(ctx, "theme", "dark"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, err := s.Get(ctx, "theme")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != "dark" {
		t.Errorf("Get() = %q, want %q", got, "dark")
	}
}

func TestSetOverwrites(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if err := s.Set(ctx, "theme", "dark"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := s.Set(ctx, "theme", "light"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, err := s.Get(ctx, "theme")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != "light" {
		t.Errorf("Get() = %q, want %q", got, "light")
	}
}

func TestGetMissing(t *testing.T) {
	s := testStore(t)

	_, err := s.Get(context.Background(), "nonexistent")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

// =============================================================================
// DeviceID Tests
// =============================================================================

func TestDeviceIDGenerated(t *testing.T) {
	s := testStore(t)

	id, err := s.DeviceID(context.Background())
	if err != nil {
		t.Fatalf("DeviceID() error = %v", err)
	}

	if !strings.HasPrefix(id, "wallpanel-") {
		t.Errorf("DeviceID() = %q, want wallpanel- prefix", id)
	}
	if len(id) <= len("wallpanel-") {
		t.Errorf("DeviceID() = %q, want generated suffix", id)
	}
}

func TestDeviceIDStable(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	first, err := s.DeviceID(ctx)
	if err != nil {
		t.Fatalf("DeviceID() error = %v", err)
	}

	second, err := s.DeviceID(ctx)
	if err != nil {
		t.Fatalf("DeviceID() error = %v", err)
	}

	if first != second {
		t.Errorf("DeviceID() changed between calls: %q vs %q", first, second)
	}
}

func TestDeviceIDSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wallpanel.db")
	ctx := context.Background()

	s, err := Open(Config{Path: path, BusyTimeout: 5})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	first, err := s.DeviceID(ctx)
	if err != nil {
		t.Fatalf("DeviceID() error = %v", err)
	}
	s.Close()

	s, err = Open(Config{Path: path, BusyTimeout: 5})
	if err != nil {
		t.Fatalf("reopen Open() error = %v", err)
	}
	defer s.Close()

	second, err := s.DeviceID(ctx)
	if err != nil {
		t.Fatalf("DeviceID() error = %v", err)
	}

	if first != second {
		t.Errorf("DeviceID() changed across reopen: %q vs %q", first, second)
	}
}
