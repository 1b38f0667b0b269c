package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nerrad567/wallpanel-core/internal/command"
	"github.com/nerrad567/wallpanel-core/internal/discovery"
	"github.com/nerrad567/wallpanel-core/internal/infrastructure/config"
	"github.com/nerrad567/wallpanel-core/internal/infrastructure/mqtt"
	"github.com/nerrad567/wallpanel-core/internal/status"
)

// Availability payloads. Retained on the availability topic; the Last
// Will carries the same offline payload for unclean drops.
const (
	payloadOnline  = "online"
	payloadOffline = "offline"
)

// reconnectDelay is the pause between teardown and redial in Reconnect.
const reconnectDelay = 500 * time.Millisecond

// dispatchTimeout bounds a single command execution.
const dispatchTimeout = 30 * time.Second

// State is the session connection state.
type State int

// Session states.
const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
	StateReconnecting
)

// String returns the state name for logging.
func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateReconnecting:
		return "reconnecting"
	}
	return "unknown"
}

// Broker is the transport surface the manager needs. Satisfied by
// *mqtt.Client; tests substitute a fake.
type Broker interface {
	Publish(topic string, payload []byte, qos byte, retained bool) error
	PublishString(topic, payload string, qos byte, retained bool) error
	Subscribe(topic string, qos byte, handler mqtt.MessageHandler) error
	Close() error
	IsConnected() bool
	SetOnConnect(callback func())
	SetOnDisconnect(callback func(err error))
}

// DialFunc establishes a broker connection with the given Last Will.
type DialFunc func(cfg config.MQTTConfig, will mqtt.Will) (Broker, error)

// Logger is the minimal logging surface this package needs.
// Satisfied by *logging.Logger.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Deps contains everything the manager needs to operate.
type Deps struct {
	// Config is the MQTT section of the runtime configuration.
	Config config.MQTTConfig

	// TopicID is the human-readable topic segment for this device.
	TopicID string

	// AllowControl gates the command subscription. When false the
	// session publishes status but never subscribes to set/#.
	AllowControl bool

	// Provider supplies status snapshots. Wrapped with status.Safe
	// internally, so it may be nil or panicky.
	Provider status.Provider

	// Handler executes validated canonical commands.
	Handler command.Handler

	// Discovery builds the retained discovery config set. Nil disables
	// discovery publishing.
	Discovery *discovery.Builder

	// Logger for session events.
	Logger Logger

	// OnConnectionChanged is invoked with the new connectivity on every
	// connect/disconnect transition. Optional.
	OnConnectionChanged func(connected bool)

	// Dial overrides the transport factory. Nil uses the real client.
	Dial DialFunc
}

// Manager owns the MQTT session: connection lifecycle, availability,
// periodic state publishing, discovery, and inbound command dispatch.
//
// Exactly one logical broker connection exists per manager. All exported
// methods are safe for concurrent use.
type Manager struct {
	cfg      config.MQTTConfig
	topics   Topics
	qos      byte
	allowCtl bool
	provider status.Provider
	handler  command.Handler
	builder  *discovery.Builder
	logger   Logger
	onChange func(bool)
	dial     DialFunc

	mu     sync.Mutex
	state  State
	client Broker

	// disconnectRequested distinguishes an explicit Disconnect from a
	// transport drop, so reconnect logic and logging behave correctly.
	disconnectRequested atomic.Bool

	pubMu   sync.Mutex
	pubStop chan struct{}
	pubWG   sync.WaitGroup

	// redialStop terminates the background redial loop that runs when
	// the initial dial fails.
	redialMu   sync.Mutex
	redialStop chan struct{}
}

// New creates a session manager from its dependencies.
//
// Returns an error when the command handler is missing; every other
// collaborator has a safe default.
func New(deps Deps) (*Manager, error) {
	if deps.Handler == nil {
		return nil, fmt.Errorf("session: command handler is required")
	}
	if deps.Logger == nil {
		return nil, fmt.Errorf("session: logger is required")
	}

	dial := deps.Dial
	if dial == nil {
		dial = func(cfg config.MQTTConfig, will mqtt.Will) (Broker, error) {
			return mqtt.Connect(cfg, will)
		}
	}

	return &Manager{
		cfg:      deps.Config,
		topics:   Topics{Base: deps.Config.BaseTopic, TopicID: deps.TopicID},
		qos:      byte(deps.Config.QoS),
		allowCtl: deps.AllowControl,
		provider: status.Safe(deps.Provider, deps.Logger),
		handler:  deps.Handler,
		builder:  deps.Discovery,
		logger:   deps.Logger,
		onChange: deps.OnConnectionChanged,
		dial:     dial,
	}, nil
}

// Connect establishes the broker session.
//
// Registers the Last Will (retained offline), dials, then runs the
// connected sequence: retained online, discovery batch, one immediate
// state publish, command subscription, periodic publisher. Returns
// ErrAlreadyConnected if a session is already active.
//
// A dial failure is not fatal: the manager parks in Reconnecting and
// keeps redialing with bounded backoff until it succeeds or Disconnect
// is called. An explicit Disconnect issued while the dial is in flight
// wins; the fresh transport is closed and nothing is published.
func (m *Manager) Connect(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", ErrConnectFailed, ctx.Err())
	default:
	}

	m.mu.Lock()
	if m.state != StateDisconnected {
		m.mu.Unlock()
		return ErrAlreadyConnected
	}
	m.state = StateConnecting
	m.mu.Unlock()

	m.disconnectRequested.Store(false)

	client, err := m.dial(m.cfg, m.will())
	if err != nil {
		if m.disconnectRequested.Load() {
			return fmt.Errorf("%w: disconnect requested while dialing", ErrConnectFailed)
		}
		m.logger.Error("MQTT connect failed, retrying in background", "error", err)
		m.setState(StateReconnecting)
		m.notifyConnection(false)
		m.startRedial()
		return nil
	}

	if !m.adopt(client) {
		return fmt.Errorf("%w: disconnect requested while dialing", ErrConnectFailed)
	}
	return nil
}

// will returns the Last Will registration for this session.
func (m *Manager) will() mqtt.Will {
	return mqtt.Will{
		Topic:   m.topics.Availability(),
		Payload: payloadOffline,
		QoS:     m.qos,
	}
}

// adopt installs a freshly dialed transport and runs the connected
// sequence. Returns false, closing the transport, when an explicit
// Disconnect arrived while the dial was in flight; the session then
// stays down with nothing published.
func (m *Manager) adopt(client Broker) bool {
	m.mu.Lock()
	if m.disconnectRequested.Load() {
		m.mu.Unlock()
		if err := client.Close(); err != nil {
			m.logger.Warn("transport close failed", "error", err)
		}
		m.logger.Info("connect abandoned, disconnect requested while dialing")
		return false
	}
	m.client = client
	m.state = StateConnected
	m.mu.Unlock()

	// Callbacks drive reconnect handling from here on. The connected
	// sequence runs below, so a spurious early callback is ignored by
	// the state check in handleReconnected.
	client.SetOnConnect(m.handleReconnected)
	client.SetOnDisconnect(m.handleConnectionLost)

	m.announce()
	m.startPublisher()
	m.notifyConnection(true)

	m.logger.Info("MQTT session established",
		"broker", fmt.Sprintf("%s:%d", m.cfg.Broker.Host, m.cfg.Broker.Port),
		"topic_id", m.topics.TopicID,
	)

	return true
}

// startRedial launches the background loop that retries the initial
// dial with bounded backoff. At most one loop runs at a time; it exits
// on success or when Disconnect is called.
func (m *Manager) startRedial() {
	m.redialMu.Lock()
	if m.redialStop != nil {
		m.redialMu.Unlock()
		return
	}
	stop := make(chan struct{})
	m.redialStop = stop
	m.redialMu.Unlock()

	go func() {
		defer func() {
			m.redialMu.Lock()
			if m.redialStop == stop {
				m.redialStop = nil
			}
			m.redialMu.Unlock()
		}()

		delay := time.Duration(m.cfg.Reconnect.InitialDelay) * time.Second
		if delay <= 0 {
			delay = time.Second
		}
		maxDelay := time.Duration(m.cfg.Reconnect.MaxDelay) * time.Second
		if maxDelay < delay {
			maxDelay = delay
		}

		for {
			select {
			case <-stop:
				return
			case <-time.After(delay):
			}
			if m.disconnectRequested.Load() {
				return
			}

			client, err := m.dial(m.cfg, m.will())
			if err != nil {
				m.logger.Warn("MQTT redial failed", "error", err, "next_delay", delay.String())
				delay *= 2
				if delay > maxDelay {
					delay = maxDelay
				}
				continue
			}

			m.adopt(client)
			return
		}
	}()
}

// stopRedial terminates the background redial loop if running.
func (m *Manager) stopRedial() {
	m.redialMu.Lock()
	if m.redialStop != nil {
		close(m.redialStop)
		m.redialStop = nil
	}
	m.redialMu.Unlock()
}

// Disconnect tears the session down cleanly.
//
// Safe to call from any state, including mid-connect, and idempotent.
// Publishes retained offline before closing so availability is correct
// on graceful shutdown (the Last Will only covers unclean drops), stops
// the periodic publisher, and suppresses reconnection until Connect is
// called again.
func (m *Manager) Disconnect() {
	m.disconnectRequested.Store(true)

	m.mu.Lock()
	client := m.client
	prev := m.state
	m.client = nil
	m.state = StateDisconnected
	m.mu.Unlock()

	m.stopRedial()
	m.stopPublisher()

	if client == nil || prev == StateDisconnected {
		return
	}

	if err := client.PublishString(m.topics.Availability(), payloadOffline, m.qos, true); err != nil {
		m.logger.Warn("offline publish on disconnect failed", "error", err)
	}

	if err := client.Close(); err != nil {
		m.logger.Warn("transport close failed", "error", err)
	}

	// handleConnectionLost already reported a mid-reconnect session as
	// down; only a live session transitions here.
	if prev == StateConnected {
		m.notifyConnection(false)
	}
	m.logger.Info("MQTT session closed")
}

// Reconnect tears down any existing session and dials again after a
// short fixed delay, avoiding overlapping sessions.
func (m *Manager) Reconnect(ctx context.Context) error {
	m.Disconnect()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(reconnectDelay):
	}

	return m.Connect(ctx)
}

// NotifyStatusChanged publishes an immediate out-of-band state update,
// independent of the periodic timer. No-op while disconnected.
func (m *Manager) NotifyStatusChanged() {
	if m.State() != StateConnected {
		return
	}
	m.publishState()
}

// State returns the current connection state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// HealthCheck reports whether the session is connected.
func (m *Manager) HealthCheck(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("session health check: %w", ctx.Err())
	default:
	}

	if m.State() != StateConnected {
		return fmt.Errorf("session health check: state %s", m.State())
	}
	return nil
}

// handleReconnected runs the connected sequence after the transport
// recovers from a drop. Fires exactly once per recovery.
func (m *Manager) handleReconnected() {
	if m.disconnectRequested.Load() {
		return
	}

	m.mu.Lock()
	if m.state == StateConnected {
		// Initial connect path already ran the sequence.
		m.mu.Unlock()
		return
	}
	m.state = StateConnected
	m.mu.Unlock()

	m.logger.Info("MQTT session recovered")

	m.announce()
	m.startPublisher()
	m.notifyConnection(true)
}

// handleConnectionLost reacts to an unexpected transport drop. The
// underlying client retries with bounded backoff; this just parks the
// session in Reconnecting and stops the timer.
func (m *Manager) handleConnectionLost(err error) {
	if m.disconnectRequested.Load() {
		return
	}

	m.mu.Lock()
	m.state = StateReconnecting
	m.mu.Unlock()

	m.stopPublisher()
	m.logger.Warn("MQTT connection lost, reconnecting", "error", err)
	m.notifyConnection(false)
}

// announce runs the per-connect publishing sequence: retained online,
// the discovery batch, one immediate state snapshot, and the command
// subscription when control is allowed.
func (m *Manager) announce() {
	m.mu.Lock()
	client := m.client
	m.mu.Unlock()
	if client == nil {
		return
	}

	if err := client.PublishString(m.topics.Availability(), payloadOnline, m.qos, true); err != nil {
		m.logger.Error("availability publish failed", "error", err)
	}

	if m.builder != nil {
		for _, entry := range m.builder.Build() {
			if err := client.Publish(entry.Topic, entry.Payload, m.qos, true); err != nil {
				m.logger.Error("discovery publish failed", "topic", entry.Topic, "error", err)
			}
		}
	}

	m.publishState()

	if m.allowCtl {
		if err := client.Subscribe(m.topics.CommandFilter(), m.qos, m.handleMessage); err != nil {
			m.logger.Error("command subscribe failed", "filter", m.topics.CommandFilter(), "error", err)
		}
	}
}

// publishState marshals a fresh snapshot and publishes it retained.
func (m *Manager) publishState() {
	m.mu.Lock()
	client := m.client
	m.mu.Unlock()
	if client == nil {
		return
	}

	snap := m.provider.Snapshot()
	data, err := json.Marshal(snap)
	if err != nil {
		m.logger.Error("snapshot marshal failed", "error", err)
		return
	}

	if err := client.Publish(m.topics.State(), data, m.qos, true); err != nil {
		m.logger.Warn("state publish failed", "error", err)
	}
}

// startPublisher starts the periodic state publisher if not running.
// The next tick is scheduled only after the previous publish attempt
// finishes, so slow publishes never overlap.
func (m *Manager) startPublisher() {
	if m.disconnectRequested.Load() {
		return
	}

	m.pubMu.Lock()
	defer m.pubMu.Unlock()

	if m.pubStop != nil {
		return
	}

	stop := make(chan struct{})
	m.pubStop = stop

	interval := m.cfg.StatePublishInterval()

	m.pubWG.Add(1)
	go func() {
		defer m.pubWG.Done()

		timer := time.NewTimer(interval)
		defer timer.Stop()

		for {
			select {
			case <-stop:
				return
			case <-timer.C:
				m.publishState()
				timer.Reset(interval)
			}
		}
	}()
}

// stopPublisher stops the periodic publisher if running.
func (m *Manager) stopPublisher() {
	m.pubMu.Lock()
	if m.pubStop != nil {
		close(m.pubStop)
		m.pubStop = nil
	}
	m.pubMu.Unlock()
}

// setState sets the connection state under lock.
func (m *Manager) setState(s State) {
	m.mu.Lock()
	m.state = s
	m.mu.Unlock()
}

// notifyConnection invokes the connection-changed callback if set.
func (m *Manager) notifyConnection(connected bool) {
	if m.onChange != nil {
		m.onChange(connected)
	}
}
