package session

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/nerrad567/wallpanel-core/internal/command"
	"github.com/nerrad567/wallpanel-core/internal/discovery"
	"github.com/nerrad567/wallpanel-core/internal/infrastructure/config"
	"github.com/nerrad567/wallpanel-core/internal/infrastructure/mqtt"
	"github.com/nerrad567/wallpanel-core/internal/status"
)

// =============================================================================
// Test Doubles
// =============================================================================

type publishRecord struct {
	topic    string
	payload  string
	retained bool
}

// fakeBroker records every transport call and lets tests drive the
// connection callbacks.
type fakeBroker struct {
	mu           sync.Mutex
	published    []publishRecord
	subscribed   map[string]mqtt.MessageHandler
	closed       bool
	onConnect    func()
	onDisconnect func(err error)
	failPublish  bool
}

func newFakeBroker() *fakeBroker {
	return &fakeBroker{subscribed: make(map[string]mqtt.MessageHandler)}
}

func (f *fakeBroker) Publish(topic string, payload []byte, qos byte, retained bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failPublish {
		return mqtt.ErrPublishFailed
	}
	f.published = append(f.published, publishRecord{topic, string(payload), retained})
	return nil
}

func (f *fakeBroker) PublishString(topic, payload string, qos byte, retained bool) error {
	return f.Publish(topic, []byte(payload), qos, retained)
}

func (f *fakeBroker) Subscribe(topic string, qos byte, handler mqtt.MessageHandler) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subscribed[topic] = handler
	return nil
}

func (f *fakeBroker) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeBroker) IsConnected() bool { return true }

func (f *fakeBroker) SetOnConnect(callback func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onConnect = callback
}

func (f *fakeBroker) SetOnDisconnect(callback func(err error)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onDisconnect = callback
}

func (f *fakeBroker) records() []publishRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]publishRecord, len(f.published))
	copy(out, f.published)
	return out
}

func (f *fakeBroker) countTopic(topic string) int {
	n := 0
	for _, rec := range f.records() {
		if rec.topic == topic {
			n++
		}
	}
	return n
}

func (f *fakeBroker) handlerFor(filter string) mqtt.MessageHandler {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.subscribed[filter]
}

func (f *fakeBroker) dropConnection(err error) {
	f.mu.Lock()
	cb := f.onDisconnect
	f.mu.Unlock()
	if cb != nil {
		cb(err)
	}
}

func (f *fakeBroker) recoverConnection() {
	f.mu.Lock()
	cb := f.onConnect
	f.mu.Unlock()
	if cb != nil {
		cb()
	}
}

// recordingHandler captures executed commands.
type recordingHandler struct {
	mu       sync.Mutex
	executed []command.Command
	done     chan struct{}
}

func newRecordingHandler() *recordingHandler {
	return &recordingHandler{done: make(chan struct{}, 16)}
}

func (h *recordingHandler) Execute(ctx context.Context, cmd command.Command) (map[string]any, error) {
	h.mu.Lock()
	h.executed = append(h.executed, cmd)
	h.mu.Unlock()
	h.done <- struct{}{}
	return map[string]any{"executed": true}, nil
}

func (h *recordingHandler) commands() []command.Command {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]command.Command, len(h.executed))
	copy(out, h.executed)
	return out
}

// nopLogger discards everything.
type nopLogger struct{}

func (nopLogger) Debug(msg string, args ...any) {}
func (nopLogger) Info(msg string, args ...any)  {}
func (nopLogger) Warn(msg string, args ...any)  {}
func (nopLogger) Error(msg string, args ...any) {}

// =============================================================================
// Fixtures
// =============================================================================

func testMQTTConfig() config.MQTTConfig {
	return config.MQTTConfig{
		Broker: config.MQTTBrokerConfig{
			Host:     "127.0.0.1",
			Port:     1883,
			ClientID: "wallpanel-test",
		},
		QoS:             1,
		BaseTopic:       "wallpanel",
		PublishInterval: 30,
		Reconnect: config.MQTTReconnectConfig{
			InitialDelay: 1,
			MaxDelay:     30,
		},
	}
}

func testDiscoveryBuilder() *discovery.Builder {
	return discovery.NewBuilder(discovery.Params{
		DeviceID:  "wallpanel-test-id",
		TopicID:   "test-panel",
		BaseTopic: "wallpanel",
		Prefix:    "homeassistant",
		Version:   "0.0.1",
	})
}

type fixture struct {
	manager *Manager
	broker  *fakeBroker
	handler *recordingHandler
	changes chan bool
}

func newFixture(t *testing.T, mutate func(*Deps)) *fixture {
	t.Helper()

	broker := newFakeBroker()
	handler := newRecordingHandler()
	changes := make(chan bool, 16)

	snap := status.Default()
	snap.Battery.Level = 75

	deps := Deps{
		Config:       testMQTTConfig(),
		TopicID:      "test-panel",
		AllowControl: true,
		Provider:     status.ProviderFunc(func() status.Snapshot { return snap }),
		Handler:      handler,
		Discovery:    testDiscoveryBuilder(),
		Logger:       nopLogger{},
		OnConnectionChanged: func(connected bool) {
			changes <- connected
		},
		Dial: func(cfg config.MQTTConfig, will mqtt.Will) (Broker, error) {
			if will.Topic != "wallpanel/test-panel/availability" {
				t.Errorf("will topic = %q, want wallpanel/test-panel/availability", will.Topic)
			}
			if will.Payload != "offline" {
				t.Errorf("will payload = %q, want offline", will.Payload)
			}
			return broker, nil
		},
	}
	if mutate != nil {
		mutate(&deps)
	}

	m, err := New(deps)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(m.Disconnect)

	return &fixture{manager: m, broker: broker, handler: handler, changes: changes}
}

func waitChange(t *testing.T, ch chan bool, want bool) {
	t.Helper()
	select {
	case got := <-ch:
		if got != want {
			t.Errorf("connection change = %v, want %v", got, want)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for connection change")
	}
}

// =============================================================================
// Connect Sequence Tests
// =============================================================================

func TestConnectSequence(t *testing.T) {
	fx := newFixture(t, nil)

	if err := fx.manager.Connect(context.Background()); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}

	if got := fx.manager.State(); got != StateConnected {
		t.Errorf("State() = %v, want %v", got, StateConnected)
	}
	waitChange(t, fx.changes, true)

	// Exactly one retained online publish.
	records := fx.broker.records()
	if n := fx.broker.countTopic("wallpanel/test-panel/availability"); n != 1 {
		t.Errorf("availability publishes = %d, want 1", n)
	}
	if records[0].topic != "wallpanel/test-panel/availability" || records[0].payload != "online" {
		t.Errorf("first publish = %+v, want retained online availability", records[0])
	}
	if !records[0].retained {
		t.Error("availability publish not retained")
	}

	// One full discovery batch, retained.
	wantDiscovery := len(testDiscoveryBuilder().Build())
	gotDiscovery := 0
	for _, rec := range records {
		if strings.HasPrefix(rec.topic, "homeassistant/") {
			gotDiscovery++
			if !rec.retained {
				t.Errorf("discovery publish %s not retained", rec.topic)
			}
		}
	}
	if gotDiscovery != wantDiscovery {
		t.Errorf("discovery publishes = %d, want %d", gotDiscovery, wantDiscovery)
	}

	// One immediate state publish, retained, after the discovery batch.
	if n := fx.broker.countTopic("wallpanel/test-panel/state"); n != 1 {
		t.Errorf("state publishes = %d, want 1", n)
	}
	last := records[len(records)-1]
	if last.topic != "wallpanel/test-panel/state" {
		t.Errorf("last publish topic = %q, want state", last.topic)
	}

	var snap status.Snapshot
	if err := json.Unmarshal([]byte(last.payload), &snap); err != nil {
		t.Fatalf("state payload unmarshal error = %v", err)
	}
	if snap.Battery.Level != 75 {
		t.Errorf("published battery.level = %d, want 75", snap.Battery.Level)
	}

	// Command subscription registered.
	if fx.broker.handlerFor("wallpanel/test-panel/set/#") == nil {
		t.Error("set/# subscription not registered")
	}
}

func TestConnectTwice(t *testing.T) {
	fx := newFixture(t, nil)

	if err := fx.manager.Connect(context.Background()); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}

	err := fx.manager.Connect(context.Background())
	if !errors.Is(err, ErrAlreadyConnected) {
		t.Errorf("second Connect() error = %v, want ErrAlreadyConnected", err)
	}
}

func TestConnectDialFailureRetriesInBackground(t *testing.T) {
	var mu sync.Mutex
	dials := 0
	broker := newFakeBroker()
	fx := newFixture(t, func(d *Deps) {
		d.Dial = func(config.MQTTConfig, mqtt.Will) (Broker, error) {
			mu.Lock()
			defer mu.Unlock()
			dials++
			if dials == 1 {
				return nil, errors.New("broker unreachable")
			}
			return broker, nil
		}
	})

	// A dead broker at startup is not fatal: Connect reports the session
	// down and keeps dialing in the background.
	if err := fx.manager.Connect(context.Background()); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	waitChange(t, fx.changes, false)
	if got := fx.manager.State(); got != StateReconnecting {
		t.Errorf("State() after failed dial = %v, want %v", got, StateReconnecting)
	}

	// The redial loop establishes the session and runs the full
	// connected sequence.
	waitChange(t, fx.changes, true)
	if got := fx.manager.State(); got != StateConnected {
		t.Errorf("State() after redial = %v, want %v", got, StateConnected)
	}
	if n := broker.countTopic("wallpanel/test-panel/availability"); n != 1 {
		t.Errorf("availability publishes = %d, want 1", n)
	}
}

func TestDisconnectStopsBackgroundRedial(t *testing.T) {
	var mu sync.Mutex
	dials := 0
	fx := newFixture(t, func(d *Deps) {
		d.Dial = func(config.MQTTConfig, mqtt.Will) (Broker, error) {
			mu.Lock()
			defer mu.Unlock()
			dials++
			return nil, errors.New("broker unreachable")
		}
	})

	if err := fx.manager.Connect(context.Background()); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	waitChange(t, fx.changes, false)

	fx.manager.Disconnect()
	if got := fx.manager.State(); got != StateDisconnected {
		t.Errorf("State() after Disconnect = %v, want %v", got, StateDisconnected)
	}

	// Past the initial redial delay, no further dial attempts happen.
	time.Sleep(1500 * time.Millisecond)
	mu.Lock()
	got := dials
	mu.Unlock()
	if got != 1 {
		t.Errorf("dials after Disconnect = %d, want 1", got)
	}
}

func TestConnectControlDisabledSkipsSubscription(t *testing.T) {
	fx := newFixture(t, func(d *Deps) {
		d.AllowControl = false
	})

	if err := fx.manager.Connect(context.Background()); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}

	if fx.broker.handlerFor("wallpanel/test-panel/set/#") != nil {
		t.Error("set/# subscription registered with control disabled")
	}

	// Status publishing continues regardless.
	if n := fx.broker.countTopic("wallpanel/test-panel/state"); n != 1 {
		t.Errorf("state publishes = %d, want 1", n)
	}
}

func TestConnectWithoutDiscovery(t *testing.T) {
	fx := newFixture(t, func(d *Deps) {
		d.Discovery = nil
	})

	if err := fx.manager.Connect(context.Background()); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}

	for _, rec := range fx.broker.records() {
		if strings.HasPrefix(rec.topic, "homeassistant/") {
			t.Errorf("unexpected discovery publish %s with nil builder", rec.topic)
		}
	}
}

// =============================================================================
// Disconnect Tests
// =============================================================================

func TestDisconnectPublishesOfflineBeforeClose(t *testing.T) {
	fx := newFixture(t, nil)

	if err := fx.manager.Connect(context.Background()); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	waitChange(t, fx.changes, true)

	fx.manager.Disconnect()

	records := fx.broker.records()
	last := records[len(records)-1]
	if last.topic != "wallpanel/test-panel/availability" || last.payload != "offline" {
		t.Errorf("last publish = %+v, want retained offline availability", last)
	}
	if !last.retained {
		t.Error("offline publish not retained")
	}
	if !fx.broker.closed {
		t.Error("transport not closed after Disconnect()")
	}
	if got := fx.manager.State(); got != StateDisconnected {
		t.Errorf("State() = %v, want %v", got, StateDisconnected)
	}
	waitChange(t, fx.changes, false)
}

func TestDisconnectIdempotent(t *testing.T) {
	fx := newFixture(t, nil)

	if err := fx.manager.Connect(context.Background()); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}

	fx.manager.Disconnect()
	offlineCount := 0
	for _, rec := range fx.broker.records() {
		if rec.payload == "offline" {
			offlineCount++
		}
	}

	fx.manager.Disconnect()
	fx.manager.Disconnect()

	offlineAfter := 0
	for _, rec := range fx.broker.records() {
		if rec.payload == "offline" {
			offlineAfter++
		}
	}
	if offlineAfter != offlineCount {
		t.Errorf("repeat Disconnect() published offline again: %d vs %d", offlineAfter, offlineCount)
	}
}

func TestDisconnectBeforeConnect(t *testing.T) {
	fx := newFixture(t, nil)

	// Must not panic and must not touch the transport.
	fx.manager.Disconnect()

	if len(fx.broker.records()) != 0 {
		t.Errorf("publishes = %d, want 0", len(fx.broker.records()))
	}
}

func TestNoReconnectAfterExplicitDisconnect(t *testing.T) {
	fx := newFixture(t, nil)

	if err := fx.manager.Connect(context.Background()); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	waitChange(t, fx.changes, true)

	fx.manager.Disconnect()
	waitChange(t, fx.changes, false)

	before := len(fx.broker.records())

	// A late transport callback after explicit disconnect is ignored.
	fx.broker.dropConnection(errors.New("stale drop"))
	fx.broker.recoverConnection()

	if got := fx.manager.State(); got != StateDisconnected {
		t.Errorf("State() = %v, want %v", got, StateDisconnected)
	}
	if len(fx.broker.records()) != before {
		t.Error("publishes occurred after explicit Disconnect()")
	}
}

func TestDisconnectDuringDial(t *testing.T) {
	dialStarted := make(chan struct{})
	release := make(chan struct{})
	broker := newFakeBroker()
	fx := newFixture(t, func(d *Deps) {
		d.Dial = func(config.MQTTConfig, mqtt.Will) (Broker, error) {
			close(dialStarted)
			<-release
			return broker, nil
		}
	})

	errCh := make(chan error, 1)
	go func() { errCh <- fx.manager.Connect(context.Background()) }()

	// Disconnect lands while the dial is still in flight, then the dial
	// completes. The disconnect must win.
	<-dialStarted
	fx.manager.Disconnect()
	close(release)

	select {
	case err := <-errCh:
		if !errors.Is(err, ErrConnectFailed) {
			t.Errorf("Connect() error = %v, want ErrConnectFailed", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for Connect to return")
	}

	if got := fx.manager.State(); got != StateDisconnected {
		t.Errorf("State() after explicit Disconnect = %v, want %v", got, StateDisconnected)
	}
	if n := len(broker.records()); n != 0 {
		t.Errorf("publishes after explicit Disconnect = %d, want 0", n)
	}
	if !broker.closed {
		t.Error("abandoned transport not closed")
	}
}

func TestDisconnectAfterDropNotifiesOnce(t *testing.T) {
	fx := newFixture(t, nil)

	if err := fx.manager.Connect(context.Background()); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	waitChange(t, fx.changes, true)

	fx.broker.dropConnection(errors.New("connection reset"))
	waitChange(t, fx.changes, false)

	// The drop already reported the session down; the explicit
	// Disconnect must not report it a second time.
	fx.manager.Disconnect()

	select {
	case got := <-fx.changes:
		t.Errorf("unexpected connection change %v after drop already reported", got)
	case <-time.After(200 * time.Millisecond):
	}
	if got := fx.manager.State(); got != StateDisconnected {
		t.Errorf("State() = %v, want %v", got, StateDisconnected)
	}
}

// =============================================================================
// Reconnect Tests
// =============================================================================

func TestTransportDropAndRecovery(t *testing.T) {
	fx := newFixture(t, nil)

	if err := fx.manager.Connect(context.Background()); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	waitChange(t, fx.changes, true)

	onlineBefore := 0
	for _, rec := range fx.broker.records() {
		if rec.payload == "online" {
			onlineBefore++
		}
	}
	if onlineBefore != 1 {
		t.Fatalf("online publishes after connect = %d, want 1", onlineBefore)
	}

	// Simulated transport drop while disconnectRequested=false.
	fx.broker.dropConnection(errors.New("connection reset"))
	waitChange(t, fx.changes, false)

	if got := fx.manager.State(); got != StateReconnecting {
		t.Errorf("State() after drop = %v, want %v", got, StateReconnecting)
	}

	// Simulated recovery: exactly one fresh online, one discovery batch,
	// one immediate state publish.
	fx.broker.recoverConnection()
	waitChange(t, fx.changes, true)

	if got := fx.manager.State(); got != StateConnected {
		t.Errorf("State() after recovery = %v, want %v", got, StateConnected)
	}

	if n := fx.broker.countTopic("wallpanel/test-panel/availability"); n != 2 {
		t.Errorf("total availability publishes = %d, want 2", n)
	}
	if n := fx.broker.countTopic("wallpanel/test-panel/state"); n != 2 {
		t.Errorf("total state publishes = %d, want 2", n)
	}

	wantDiscovery := 2 * len(testDiscoveryBuilder().Build())
	gotDiscovery := 0
	for _, rec := range fx.broker.records() {
		if strings.HasPrefix(rec.topic, "homeassistant/") {
			gotDiscovery++
		}
	}
	if gotDiscovery != wantDiscovery {
		t.Errorf("total discovery publishes = %d, want %d", gotDiscovery, wantDiscovery)
	}
}

func TestReconnectTearsDownThenDials(t *testing.T) {
	dials := 0
	broker := newFakeBroker()
	fx := newFixture(t, func(d *Deps) {
		d.Dial = func(config.MQTTConfig, mqtt.Will) (Broker, error) {
			dials++
			return broker, nil
		}
	})

	if err := fx.manager.Connect(context.Background()); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}

	if err := fx.manager.Reconnect(context.Background()); err != nil {
		t.Fatalf("Reconnect() error = %v", err)
	}

	if dials != 2 {
		t.Errorf("dials = %d, want 2", dials)
	}
	if got := fx.manager.State(); got != StateConnected {
		t.Errorf("State() = %v, want %v", got, StateConnected)
	}
}

// =============================================================================
// Status Publish Tests
// =============================================================================

func TestNotifyStatusChanged(t *testing.T) {
	fx := newFixture(t, nil)

	if err := fx.manager.Connect(context.Background()); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}

	before := fx.broker.countTopic("wallpanel/test-panel/state")
	fx.manager.NotifyStatusChanged()

	if got := fx.broker.countTopic("wallpanel/test-panel/state"); got != before+1 {
		t.Errorf("state publishes = %d, want %d", got, before+1)
	}
}

func TestNotifyStatusChangedWhileDisconnected(t *testing.T) {
	fx := newFixture(t, nil)

	fx.manager.NotifyStatusChanged()

	if n := len(fx.broker.records()); n != 0 {
		t.Errorf("publishes = %d, want 0", n)
	}
}

// =============================================================================
// Command Dispatch Tests
// =============================================================================

func deliver(t *testing.T, fx *fixture, topic, payload string) {
	t.Helper()
	handler := fx.broker.handlerFor("wallpanel/test-panel/set/#")
	if handler == nil {
		t.Fatal("set/# subscription not registered")
	}
	if err := handler(topic, []byte(payload)); err != nil {
		t.Fatalf("message handler error = %v", err)
	}
}

func TestInboundCommandDispatched(t *testing.T) {
	fx := newFixture(t, nil)

	if err := fx.manager.Connect(context.Background()); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}

	deliver(t, fx, "wallpanel/test-panel/set/brightness", "42")

	select {
	case <-fx.handler.done:
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for command dispatch")
	}

	cmds := fx.handler.commands()
	if len(cmds) != 1 {
		t.Fatalf("executed commands = %d, want 1", len(cmds))
	}
	if cmds[0].Name != command.SetBrightness {
		t.Errorf("command name = %q, want %q", cmds[0].Name, command.SetBrightness)
	}
	if cmds[0].Params["value"] != 42 {
		t.Errorf("command value = %v, want 42", cmds[0].Params["value"])
	}
}

func TestInboundUnknownEntityDropped(t *testing.T) {
	fx := newFixture(t, nil)

	if err := fx.manager.Connect(context.Background()); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}

	deliver(t, fx, "wallpanel/test-panel/set/thermostat", "22")

	time.Sleep(100 * time.Millisecond)
	if n := len(fx.handler.commands()); n != 0 {
		t.Errorf("executed commands = %d, want 0", n)
	}
}

func TestInboundInvalidParamsDropped(t *testing.T) {
	fx := newFixture(t, nil)

	if err := fx.manager.Connect(context.Background()); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}

	deliver(t, fx, "wallpanel/test-panel/set/brightness", "250")

	time.Sleep(100 * time.Millisecond)
	if n := len(fx.handler.commands()); n != 0 {
		t.Errorf("executed commands = %d, want 0", n)
	}
}

// =============================================================================
// Topics Tests
// =============================================================================

func TestTopics(t *testing.T) {
	topics := Topics{Base: "wallpanel", TopicID: "kitchen-panel"}

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"Availability", topics.Availability(), "wallpanel/kitchen-panel/availability"},
		{"State", topics.State(), "wallpanel/kitchen-panel/state"},
		{"CommandFilter", topics.CommandFilter(), "wallpanel/kitchen-panel/set/#"},
		{"CommandPrefix", topics.CommandPrefix(), "wallpanel/kitchen-panel/set/"},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s() = %q, want %q", tt.name, tt.got, tt.want)
		}
	}
}

// =============================================================================
// Lifecycle Tests
// =============================================================================

func TestNewRequiresHandler(t *testing.T) {
	_, err := New(Deps{Logger: nopLogger{}})
	if err == nil {
		t.Error("New() without handler expected error")
	}
}

func TestHealthCheck(t *testing.T) {
	fx := newFixture(t, nil)

	if err := fx.manager.HealthCheck(context.Background()); err == nil {
		t.Error("HealthCheck() while disconnected expected error")
	}

	if err := fx.manager.Connect(context.Background()); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}

	if err := fx.manager.HealthCheck(context.Background()); err != nil {
		t.Errorf("HealthCheck() while connected error = %v", err)
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateDisconnected, "disconnected"},
		{StateConnecting, "connecting"},
		{StateConnected, "connected"},
		{StateReconnecting, "reconnecting"},
		{State(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}
