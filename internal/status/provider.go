package status

// Provider supplies the current device state.
//
// Implementations live outside this module (the display/sensor layer owns
// the live data); a dev-mode loopback lives in cmd/wallpanel. Providers
// must be safe to call from multiple goroutines concurrently: the HTTP
// server, the MQTT publisher, and the WebSocket hub all read through the
// same instance.
type Provider interface {
	// Snapshot returns the current device state. It must be cheap and
	// must not block on I/O.
	Snapshot() Snapshot
}

// Logger is the minimal logging surface this package needs.
type Logger interface {
	Error(msg string, args ...any)
}

// Safe wraps a provider so that a panic inside it yields Default()
// instead of taking down the caller.
//
// A nil provider is also tolerated and always yields Default(). The
// wrapper keeps the "never throws, every key present" contract out of
// every consumer.
func Safe(p Provider, logger Logger) Provider {
	return &safeProvider{inner: p, logger: logger}
}

type safeProvider struct {
	inner  Provider
	logger Logger
}

func (s *safeProvider) Snapshot() (snap Snapshot) {
	if s.inner == nil {
		return Default()
	}

	defer func() {
		if r := recover(); r != nil {
			if s.logger != nil {
				s.logger.Error("status provider panic recovered", "panic", r)
			}
			snap = Default()
		}
	}()

	return s.inner.Snapshot()
}

// ProviderFunc adapts a plain function to the Provider interface.
type ProviderFunc func() Snapshot

// Snapshot implements Provider.
func (f ProviderFunc) Snapshot() Snapshot { return f() }
