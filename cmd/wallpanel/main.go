// WallPanel Core - Device Control and Telemetry Plane
//
// This is the main entry point for the WallPanel Core service. It runs
// alongside a wall-mounted panel device and exposes:
//   - An HTTP API for status reads, device actions, and a WebSocket stream
//   - An MQTT session with availability, retained state, and commands
//   - Home Assistant discovery for the device's entities
//   - Optional InfluxDB telemetry recording
package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/nerrad567/wallpanel-core/internal/api"
	"github.com/nerrad567/wallpanel-core/internal/discovery"
	"github.com/nerrad567/wallpanel-core/internal/infrastructure/config"
	"github.com/nerrad567/wallpanel-core/internal/infrastructure/logging"
	"github.com/nerrad567/wallpanel-core/internal/session"
	"github.com/nerrad567/wallpanel-core/internal/settings"
	"github.com/nerrad567/wallpanel-core/internal/telemetry"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	// Cancel on interrupt signals (Ctrl+C, SIGTERM) for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
// Returning an error allows main to handle exit codes consistently.
//
// Parameters:
//   - ctx: Context for cancellation and shutdown signals
//
// Returns:
//   - error: nil on clean shutdown, or error describing failure
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting WallPanel Core",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	// Load configuration
	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	// Open the settings store
	store, err := settings.Open(settings.Config{
		Path:        cfg.Settings.Path,
		BusyTimeout: cfg.Settings.BusyTimeout,
	})
	if err != nil {
		return fmt.Errorf("opening settings store: %w", err)
	}
	defer func() {
		log.Info("closing settings store")
		if closeErr := store.Close(); closeErr != nil {
			log.Error("error closing settings store", "error", closeErr)
		}
	}()
	log.Info("settings store opened", "path", store.Path())

	// Resolve the stable device identity
	deviceID, err := store.DeviceID(ctx)
	if err != nil {
		return fmt.Errorf("resolving device id: %w", err)
	}
	topicID := cfg.Device.Name
	if topicID == "" {
		topicID = deviceID
	}
	log.Info("device identity resolved",
		"device_id", deviceID,
		"topic_id", topicID,
		"allow_control", cfg.Device.AllowControl,
	)

	// Dev-mode device backend: local state, no hardware
	device := newLocalDevice(ctx, store, log, version)

	// Connect the telemetry recorder (optional)
	var recorder *telemetry.Recorder
	if cfg.InfluxDB.Enabled {
		recorder, err = telemetry.Connect(cfg.InfluxDB, deviceID)
		if err != nil {
			return fmt.Errorf("connecting to InfluxDB: %w", err)
		}
		defer func() {
			log.Info("closing telemetry recorder")
			if closeErr := recorder.Close(); closeErr != nil {
				log.Error("error closing telemetry recorder", "error", closeErr)
			}
		}()
		recorder.SetOnError(func(err error) {
			log.Error("telemetry write error", "error", err)
		})
		log.Info("telemetry recorder connected",
			"url", cfg.InfluxDB.URL,
			"bucket", cfg.InfluxDB.Bucket,
		)
	} else {
		log.Info("telemetry disabled")
	}

	// Start the HTTP API server
	server, err := api.New(api.Deps{
		Config:       cfg.HTTP,
		WS:           cfg.WebSocket,
		AllowControl: cfg.Device.AllowControl,
		Logger:       log,
		Provider:     device,
		Handler:      device,
		Version:      version,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}
	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("starting API server: %w", err)
	}
	defer func() {
		log.Info("stopping API server")
		if closeErr := server.Close(); closeErr != nil {
			log.Error("error stopping API server", "error", closeErr)
		}
	}()

	// Connect the MQTT session (optional)
	var mqttSession *session.Manager
	if cfg.MQTT.Enabled {
		var builder *discovery.Builder
		if cfg.Discovery.Enabled {
			builder = discovery.NewBuilder(discovery.Params{
				DeviceID:  deviceID,
				TopicID:   topicID,
				BaseTopic: cfg.MQTT.BaseTopic,
				Prefix:    cfg.Discovery.Prefix,
				Version:   version,
				LocalIP:   localIP(),
			})
		}

		mqttSession, err = session.New(session.Deps{
			Config:       cfg.MQTT,
			TopicID:      topicID,
			AllowControl: cfg.Device.AllowControl,
			Provider:     device,
			Handler:      device,
			Discovery:    builder,
			Logger:       log,
			OnConnectionChanged: func(connected bool) {
				log.Info("MQTT connectivity changed", "connected", connected)
			},
		})
		if err != nil {
			return fmt.Errorf("creating MQTT session: %w", err)
		}
		if err := mqttSession.Connect(ctx); err != nil {
			return fmt.Errorf("connecting MQTT session: %w", err)
		}
		defer func() {
			log.Info("disconnecting MQTT session")
			mqttSession.Disconnect()
		}()
		log.Info("MQTT session connected",
			"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
			"base_topic", cfg.MQTT.BaseTopic,
		)
	} else {
		log.Info("MQTT disabled")
	}

	// Push fresh state everywhere when a command changes it, and record
	// the change in telemetry when enabled.
	device.SetOnChange(func() {
		server.PushStatus()
		if mqttSession != nil {
			mqttSession.NotifyStatusChanged()
		}
		if recorder != nil {
			recorder.Record(device.Snapshot())
		}
	})

	// Verify everything came up healthy. The MQTT session is checked
	// separately: a broker that is down at startup is not fatal, the
	// session keeps redialing in the background.
	if err := healthCheck(ctx, server, store, recorder); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	if mqttSession != nil {
		if err := mqttSession.HealthCheck(ctx); err != nil {
			log.Warn("MQTT session not connected yet, retrying in background", "error", err)
		}
	}
	log.Info("health checks passed")

	log.Info("initialisation complete, waiting for shutdown signal")

	// Wait for shutdown signal
	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")

	// Deferred Close() calls run in reverse order:
	// 1. MQTT session (publishes offline before closing)
	// 2. API server
	// 3. Telemetry recorder (if enabled)
	// 4. Settings store

	log.Info("WallPanel Core stopped")
	return nil
}

// getConfigPath returns the configuration file path.
// Uses WALLPANEL_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("WALLPANEL_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}

// healthCheck verifies the components that must be up for the process
// to be useful. MQTT is deliberately excluded; transport availability
// is the session manager's problem, never the process's.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//   - server: API server to check
//   - store: Settings store to check
//   - recorder: Telemetry recorder to check (may be nil if disabled)
//
// Returns:
//   - error: First health check failure, or nil if all healthy
func healthCheck(ctx context.Context, server *api.Server, store *settings.Store, recorder *telemetry.Recorder) error {
	if err := server.HealthCheck(ctx); err != nil {
		return fmt.Errorf("api: %w", err)
	}

	if err := store.HealthCheck(ctx); err != nil {
		return fmt.Errorf("settings: %w", err)
	}

	if recorder != nil {
		if err := recorder.HealthCheck(ctx); err != nil {
			return fmt.Errorf("telemetry: %w", err)
		}
	}

	return nil
}

// localIP returns the outbound interface address for the discovery
// configuration URL. Empty when it cannot be determined; the URL is then
// simply omitted from discovery payloads.
func localIP() string {
	conn, err := net.Dial("udp", "203.0.113.1:9")
	if err != nil {
		return ""
	}
	defer conn.Close()

	addr, ok := conn.LocalAddr().(*net.UDPAddr)
	if !ok {
		return ""
	}
	return addr.IP.String()
}
