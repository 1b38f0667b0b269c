package session

import (
	"context"
	"strings"

	"github.com/nerrad567/wallpanel-core/internal/command"
)

// handleMessage maps an inbound set/# message to a canonical command and
// dispatches it.
//
// Runs on the transport's delivery goroutine, so the handler execution
// is pushed onto its own goroutine; delivery must never block on a slow
// device action. Unknown entities and invalid parameters are logged and
// dropped; the command handler never sees them.
func (m *Manager) handleMessage(topic string, payload []byte) error {
	if !m.allowCtl {
		// Subscription only exists when control is allowed, but a
		// racing unsubscribe can still deliver a stray message.
		return nil
	}

	entity := strings.TrimPrefix(topic, m.topics.CommandPrefix())
	if entity == topic || entity == "" {
		m.logger.Warn("command topic outside device namespace", "topic", topic)
		return nil
	}

	cmd, err := command.MapEntity(entity, string(payload))
	if err != nil {
		m.logger.Warn("command dropped", "entity", entity, "error", err)
		return nil
	}

	if err := command.Validate(cmd); err != nil {
		m.logger.Warn("command rejected", "command", cmd.Name, "error", err)
		return nil
	}

	go m.execute(cmd)

	return nil
}

// execute runs one validated command against the handler.
func (m *Manager) execute(cmd command.Command) {
	ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
	defer cancel()

	if _, err := m.handler.Execute(ctx, cmd); err != nil {
		m.logger.Error("command execution failed", "command", cmd.Name, "error", err)
		return
	}

	m.logger.Debug("command executed", "command", cmd.Name)
}
