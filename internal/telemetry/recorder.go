package telemetry

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/nerrad567/wallpanel-core/internal/infrastructure/config"
	"github.com/nerrad567/wallpanel-core/internal/status"
)

// Default timeouts for InfluxDB operations.
const (
	defaultConnectTimeout = 10 * time.Second
	defaultPingTimeout    = 5 * time.Second

	// millisecondsPerSecond converts seconds to milliseconds for the InfluxDB API.
	millisecondsPerSecond = 1000
)

// Sentinel errors for the recorder.
var (
	// ErrDisabled indicates telemetry is switched off in config.
	ErrDisabled = errors.New("telemetry: disabled in configuration")

	// ErrConnectionFailed indicates the InfluxDB server was unreachable.
	ErrConnectionFailed = errors.New("telemetry: connection failed")

	// ErrNotConnected indicates an operation on a closed recorder.
	ErrNotConnected = errors.New("telemetry: not connected")
)

// Recorder writes status snapshots to InfluxDB as time-series points.
//
// Recording is strictly best-effort: writes are non-blocking and batched,
// and failures surface only through the optional error callback. The
// control plane never waits on telemetry.
//
// Thread Safety:
//   - All methods are safe for concurrent use from multiple goroutines.
type Recorder struct {
	client   influxdb2.Client
	writeAPI api.WriteAPI
	cfg      config.InfluxDBConfig
	deviceID string

	// connected tracks current connection state.
	connected bool
	mu        sync.RWMutex

	// onError is called when async write errors occur.
	onError func(err error)
}

// Connect establishes a connection to the InfluxDB server.
//
// It performs the following setup:
//  1. Creates the client with token authentication
//  2. Verifies connectivity with a ping
//  3. Configures the non-blocking write API with batching
//  4. Starts the async write-error drain
//
// Parameters:
//   - cfg: InfluxDB configuration from config.yaml
//   - deviceID: Stable device identifier, tagged on every point
//
// Returns:
//   - *Recorder: Connected recorder ready for use
//   - error: If telemetry is disabled or the connection fails
func Connect(cfg config.InfluxDBConfig, deviceID string) (*Recorder, error) {
	if !cfg.Enabled {
		return nil, ErrDisabled
	}

	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 100
	}
	flushInterval := cfg.FlushInterval
	if flushInterval <= 0 {
		flushInterval = 10
	}

	// #nosec G115 -- values validated above to be positive
	client := influxdb2.NewClientWithOptions(
		cfg.URL,
		cfg.Token,
		influxdb2.DefaultOptions().
			SetBatchSize(uint(batchSize)).
			SetFlushInterval(uint(flushInterval)*millisecondsPerSecond),
	)

	ctx, cancel := context.WithTimeout(context.Background(), defaultConnectTimeout)
	defer cancel()

	healthy, err := client.Ping(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: ping failed: %w", ErrConnectionFailed, err)
	}
	if !healthy {
		client.Close()
		return nil, fmt.Errorf("%w: server not healthy", ErrConnectionFailed)
	}

	writeAPI := client.WriteAPI(cfg.Org, cfg.Bucket)

	r := &Recorder{
		client:    client,
		writeAPI:  writeAPI,
		cfg:       cfg,
		deviceID:  deviceID,
		connected: true,
	}

	errorsCh := writeAPI.Errors()
	go r.handleWriteErrors(errorsCh)

	return r, nil
}

// handleWriteErrors drains async write errors from the WriteAPI.
func (r *Recorder) handleWriteErrors(errorsCh <-chan error) {
	for err := range errorsCh {
		r.mu.RLock()
		callback := r.onError
		r.mu.RUnlock()

		if callback != nil {
			callback(err)
		}
	}
}

// SetOnError sets a callback for async write failures.
func (r *Recorder) SetOnError(callback func(err error)) {
	r.mu.Lock()
	r.onError = callback
	r.mu.Unlock()
}

// Record writes one status snapshot as a wallpanel_status point.
//
// Fields cover the numeric and boolean readings worth graphing; -1
// sentinel values are recorded as-is so gaps in sensor coverage remain
// visible in the series. Non-blocking; silently a no-op when closed.
func (r *Recorder) Record(snap status.Snapshot) {
	if !r.IsConnected() {
		return
	}

	point := write.NewPoint(
		"wallpanel_status",
		map[string]string{
			"device_id": r.deviceID,
		},
		map[string]interface{}{
			"battery_level":       snap.Battery.Level,
			"battery_charging":    snap.Battery.Charging,
			"screen_on":           snap.Screen.On,
			"screen_brightness":   snap.Screen.Brightness,
			"audio_volume":        snap.Audio.Volume,
			"light_level":         snap.Sensors.LightLevel,
			"memory_free_bytes":   snap.Memory.FreeBytes,
			"memory_total_bytes":  snap.Memory.TotalBytes,
			"storage_free_bytes":  snap.Storage.FreeBytes,
			"storage_total_bytes": snap.Storage.TotalBytes,
			"wifi_signal_level":   snap.Wifi.SignalLevel,
		},
		time.Now(),
	)

	r.writeAPI.WritePoint(point)
}

// IsConnected returns the current connection state.
func (r *Recorder) IsConnected() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.connected
}

// Close flushes pending writes and shuts the recorder down.
//
// Returns:
//   - error: nil (the InfluxDB client Close doesn't return errors)
func (r *Recorder) Close() error {
	if r.client == nil {
		return nil
	}

	r.mu.Lock()
	r.connected = false
	r.mu.Unlock()

	r.writeAPI.Flush()
	r.client.Close()

	return nil
}

// HealthCheck verifies the InfluxDB connection is alive.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//
// Returns:
//   - error: nil if healthy, error describing the issue otherwise
func (r *Recorder) HealthCheck(ctx context.Context) error {
	if !r.IsConnected() {
		return ErrNotConnected
	}

	pingCtx, cancel := context.WithTimeout(ctx, defaultPingTimeout)
	defer cancel()

	healthy, err := r.client.Ping(pingCtx)
	if err != nil {
		return fmt.Errorf("telemetry health check: %w", err)
	}
	if !healthy {
		return fmt.Errorf("%w: server not healthy", ErrConnectionFailed)
	}

	return nil
}
