package app

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/zhubert/supportchat/internal/api"
	"github.com/zhubert/supportchat/internal/ui"
)

const healthTimeout = 5 * time.Second

// HealthMsg carries the result of a health check against BaseURL.
type HealthMsg struct {
	BaseURL string
	Status  *api.HealthStatus
	Err     error
}

// checkHealth marks the header as checking and probes the service.
func (m *Model) checkHealth() tea.Cmd {
	m.header.SetHealth(ui.HealthUnknown)
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), healthTimeout)
		defer cancel()
		status, err := client.Health(ctx)
		return HealthMsg{BaseURL: client.BaseURL(), Status: status, Err: err}
	}
}

func (m *Model) handleHealthMsg(msg HealthMsg) (tea.Model, tea.Cmd) {
	if msg.BaseURL != m.client.BaseURL() {
		return m, nil
	}
	switch {
	case msg.Err != nil:
		m.log.Warn("health check failed", "error", msg.Err)
		m.header.SetHealth(ui.HealthDown)
	case !msg.Status.Healthy():
		m.log.Warn("service reports unhealthy", "status", msg.Status.Status)
		m.header.SetHealth(ui.HealthDown)
	default:
		m.header.SetHealth(ui.HealthOK)
	}
	return m, nil
}
