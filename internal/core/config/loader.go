package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/vietddude/chargewindow/internal/infra/httpclient"
)

// Load reads configuration from a YAML file. A missing file is not an error:
// defaults are used and the base URL comes from the environment.
func Load(path string) (*AppConfig, error) {
	var cfg AppConfig

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// fall through to defaults
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		// Expand environment variables in the YAML content
		expandedData := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expandedData), &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *AppConfig) {
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = os.Getenv(BaseURLEnv)
	}
	if cfg.API.MaxRetries == 0 {
		cfg.API.MaxRetries = httpclient.DefaultMaxRetries
	}
	if cfg.API.RetryDelay == 0 {
		cfg.API.RetryDelay = httpclient.DefaultRetryDelay
	}
	if cfg.API.AttemptTimeout == 0 {
		cfg.API.AttemptTimeout = httpclient.DefaultAttemptTimeout
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
}
