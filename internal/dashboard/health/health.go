// Package health reports dashboard health and serves the dashboard over HTTP.
package health

// SystemStatus represents the overall health state of the system or a component.
type SystemStatus string

const (
	StatusHealthy  SystemStatus = "healthy"
	StatusDegraded SystemStatus = "degraded"
	StatusCritical SystemStatus = "critical"
)

// ComponentHealth describes one dashboard panel.
type ComponentHealth struct {
	Name    string       `json:"name"`
	Status  SystemStatus `json:"status"`
	Loading bool         `json:"loading"`
	Error   string       `json:"error,omitempty"`
}

// HealthReport contains the full system health report.
type HealthReport struct {
	SystemStatus SystemStatus               `json:"system_status"`
	APIBaseURL   string                     `json:"api_base_url"`
	Components   map[string]ComponentHealth `json:"components"`
}
