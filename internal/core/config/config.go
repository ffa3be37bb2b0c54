package config

import (
	"time"

	"github.com/vietddude/chargewindow/internal/infra/httpclient"
)

// BaseURLEnv names the variable consulted for the API base URL.
const BaseURLEnv = "CHARGEWINDOW_API_BASE_URL"

// AppConfig represents the top-level configuration.
type AppConfig struct {
	API     httpclient.Config `yaml:"api"`
	Server  ServerConfig      `yaml:"server"`
	Logging LoggingConfig     `yaml:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int `yaml:"port"`
	// RefreshInterval reloads the energy mix periodically. 0 = load once.
	RefreshInterval time.Duration `yaml:"refresh_interval"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}
