package server

import (
	"fmt"
	"time"

	"github.com/inferloop/perfintel/internal/intelligence"
	"github.com/inferloop/perfintel/pkg/errors"
)

// Config contains the configuration for the perfintel server
type Config struct {
	Server ServerConfig `json:"server" yaml:"server"`

	LogLevel  string `json:"log_level" yaml:"log_level"`
	LogFormat string `json:"log_format" yaml:"log_format"` // "json", "text"

	MetricsNamespace string `json:"metrics_namespace" yaml:"metrics_namespace"`

	Engine *intelligence.Config `json:"engine,omitempty" yaml:"engine,omitempty"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host         string        `json:"host" yaml:"host"`
	Port         int           `json:"port" yaml:"port"`
	ReadTimeout  time.Duration `json:"read_timeout" yaml:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout" yaml:"write_timeout"`
	IdleTimeout  time.Duration `json:"idle_timeout" yaml:"idle_timeout"`
}

// NewDefaultConfig creates a default server configuration
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         8080,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		LogLevel:         "info",
		LogFormat:        "text",
		MetricsNamespace: "perfintel",
	}
}

// Validate validates the server configuration
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: invalid port %d", errors.ErrInvalidConfiguration, c.Server.Port)
	}
	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("%w: read timeout must be positive", errors.ErrInvalidConfiguration)
	}
	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("%w: write timeout must be positive", errors.ErrInvalidConfiguration)
	}
	if c.Engine != nil {
		if err := c.Engine.WithDefaults().Validate(); err != nil {
			return fmt.Errorf("%w: engine: %v", errors.ErrInvalidConfiguration, err)
		}
	}
	return nil
}

// GetAddress returns the server listen address
func (c *Config) GetAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
