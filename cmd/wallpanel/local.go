package main

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/nerrad567/wallpanel-core/internal/command"
	"github.com/nerrad567/wallpanel-core/internal/infrastructure/logging"
	"github.com/nerrad567/wallpanel-core/internal/settings"
	"github.com/nerrad567/wallpanel-core/internal/status"
)

// Settings keys for the state that survives restarts.
const (
	keyBrightness = "local.brightness"
	keyVolume     = "local.volume"
	keyURL        = "local.url"
)

// localDevice is the dev-mode device backend.
//
// It implements both status.Provider and command.Handler against an
// in-memory state, so the full control plane (HTTP, MQTT, discovery,
// telemetry) can run without panel hardware attached. Brightness, volume
// and the current URL persist through the settings store.
type localDevice struct {
	store   *settings.Store
	logger  *logging.Logger
	started time.Time

	mu       sync.Mutex
	snap     status.Snapshot
	onChange func()
}

// newLocalDevice builds the dev backend, restoring persisted state.
func newLocalDevice(ctx context.Context, store *settings.Store, logger *logging.Logger, version string) *localDevice {
	snap := status.Default()
	snap.Screen.On = true
	snap.Screen.Brightness = 50
	snap.Audio.Volume = 50
	snap.Device.Model = "WallPanel Dev"
	snap.Device.Manufacturer = "WallPanel Project"
	snap.Device.AppVersion = version
	snap.Battery.Level = 100
	snap.Battery.Charging = true
	snap.Battery.ACPlugged = true

	d := &localDevice{
		store:   store,
		logger:  logger,
		started: time.Now(),
		snap:    snap,
	}
	d.restore(ctx)
	return d
}

// restore loads the persisted values, ignoring anything missing or stale.
func (d *localDevice) restore(ctx context.Context) {
	if v, err := d.store.Get(ctx, keyBrightness); err == nil {
		if n, convErr := strconv.Atoi(v); convErr == nil && n >= 0 && n <= 100 {
			d.snap.Screen.Brightness = n
		}
	}
	if v, err := d.store.Get(ctx, keyVolume); err == nil {
		if n, convErr := strconv.Atoi(v); convErr == nil && n >= 0 && n <= 100 {
			d.snap.Audio.Volume = n
		}
	}
	if v, err := d.store.Get(ctx, keyURL); err == nil {
		d.snap.Webview.URL = v
	}
}

// SetOnChange registers a callback invoked after every state mutation.
// Used to push fresh snapshots to MQTT and WebSocket consumers.
func (d *localDevice) SetOnChange(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onChange = fn
}

// Snapshot implements status.Provider.
func (d *localDevice) Snapshot() status.Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()

	snap := d.snap
	snap.Device.UptimeSeconds = int64(time.Since(d.started).Seconds())
	return snap
}

// Execute implements command.Handler by applying the command to the
// local state. Commands arrive pre-validated; values are trusted here.
func (d *localDevice) Execute(ctx context.Context, cmd command.Command) (map[string]any, error) {
	d.mu.Lock()

	switch cmd.Name {
	case command.SetBrightness:
		d.snap.Screen.Brightness = intValue(cmd.Params["value"])
		d.persist(ctx, keyBrightness, strconv.Itoa(d.snap.Screen.Brightness))
	case command.SetVolume:
		d.snap.Audio.Volume = intValue(cmd.Params["value"])
		d.persist(ctx, keyVolume, strconv.Itoa(d.snap.Audio.Volume))
	case command.ScreenOn:
		d.snap.Screen.On = true
	case command.ScreenOff:
		d.snap.Screen.On = false
	case command.Wake:
		d.snap.Screen.On = true
	case command.SetURL, command.Navigate:
		url, _ := cmd.Params["url"].(string)
		d.snap.Webview.URL = url
		d.persist(ctx, keyURL, url)
	case command.StartRotation:
		d.snap.Rotation.Active = true
	case command.StopRotation:
		d.snap.Rotation.Active = false
	case command.SetAutoBrightness:
		enabled, _ := cmd.Params["enabled"].(bool)
		d.snap.AutoBrightness.Enabled = enabled
	case command.PlayAudio:
		d.snap.Audio.Playing = true
	case command.StopAudio:
		d.snap.Audio.Playing = false
	case command.Speak, command.Toast, command.LaunchApp, command.EvalJS,
		command.Reboot, command.ClearCache, command.RemoteKey:
		// Side-effect only on real hardware; logged below.
	default:
		d.mu.Unlock()
		return nil, fmt.Errorf("local device: unsupported command %q", cmd.Name)
	}

	onChange := d.onChange
	d.mu.Unlock()

	d.logger.Info("local device command applied", "command", cmd.Name, "params", cmd.Params)

	if onChange != nil {
		onChange()
	}
	return nil, nil
}

// persist writes a settings key under the state lock; failures are
// logged, never surfaced, since the in-memory state already changed.
func (d *localDevice) persist(ctx context.Context, key, value string) {
	if err := d.store.Set(ctx, key, value); err != nil {
		d.logger.Warn("persisting local state failed", "key", key, "error", err)
	}
}

// intValue extracts a validated integer parameter.
func intValue(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case float64:
		return int(n)
	default:
		return 0
	}
}
