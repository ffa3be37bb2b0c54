package health

import (
	"context"

	"github.com/vietddude/chargewindow/internal/dashboard"
)

const (
	ComponentEnergyMix      = "energy_mix"
	ComponentChargingWindow = "charging_window"
)

// Monitor derives health from the dashboard state.
type Monitor struct {
	apiBaseURL string
	mix        *dashboard.EnergyMixState
	window     *dashboard.OptimalWindowState
}

// NewMonitor creates a new health monitor.
func NewMonitor(apiBaseURL string, mix *dashboard.EnergyMixState, window *dashboard.OptimalWindowState) *Monitor {
	return &Monitor{
		apiBaseURL: apiBaseURL,
		mix:        mix,
		window:     window,
	}
}

// CheckHealth evaluates every panel. A failed mix load is critical because the
// dashboard has nothing to show; a failed window calculation only degrades it.
func (m *Monitor) CheckHealth(ctx context.Context) HealthReport {
	components := make(map[string]ComponentHealth, 2)

	mix := m.mix.Snapshot()
	mixHealth := ComponentHealth{
		Name:    ComponentEnergyMix,
		Status:  StatusHealthy,
		Loading: mix.Loading,
		Error:   mix.Error,
	}
	switch {
	case mix.Error != "":
		mixHealth.Status = StatusCritical
	case mix.Loading:
		mixHealth.Status = StatusDegraded
	}
	components[ComponentEnergyMix] = mixHealth

	win := m.window.Snapshot()
	winHealth := ComponentHealth{
		Name:    ComponentChargingWindow,
		Status:  StatusHealthy,
		Loading: win.Loading,
		Error:   win.Error,
	}
	if win.Error != "" {
		winHealth.Status = StatusDegraded
	}
	components[ComponentChargingWindow] = winHealth

	// Aggregate status (worst case wins)
	status := StatusHealthy
	for _, c := range components {
		if c.Status == StatusCritical {
			status = StatusCritical
			break
		}
		if c.Status == StatusDegraded {
			status = StatusDegraded
		}
	}

	return HealthReport{
		SystemStatus: status,
		APIBaseURL:   m.apiBaseURL,
		Components:   components,
	}
}
