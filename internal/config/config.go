// Package config provides YAML-based configuration loading for the 2048
// client and the reference board service.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

// Config is the complete application configuration.
type Config struct {
	Client ClientConfig `yaml:"client"`
	Engine EngineConfig `yaml:"engine"`
	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
}

// ClientConfig configures the connection to the board service.
type ClientConfig struct {
	BaseURL  string        `yaml:"base_url"`
	Timeout  time.Duration `yaml:"timeout"`
	Protocol string        `yaml:"protocol"` // "v2" (rows + score) or "v1" (rows only)
}

// EngineConfig configures action dispatch.
type EngineConfig struct {
	QueueSize int    `yaml:"queue_size"`
	Policy    string `yaml:"policy"` // "fifo" or "coalesce"
}

// ServerConfig configures the reference board service.
type ServerConfig struct {
	Address string  `yaml:"address"`
	Size    int     `yaml:"size"`
	Spawn4  float64 `yaml:"spawn4"` // Probability that a spawned tile is a 4
	Seed    int64   `yaml:"seed"`   // 0 = time-based
	DB      string  `yaml:"db"`
	Legacy  bool    `yaml:"legacy"`
}

// LogConfig configures logging. An empty File logs to stderr.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Validate reports every invalid setting.
func (c Config) Validate() error {
	var errs []error

	switch c.Client.Protocol {
	case "", "v1", "v2":
	default:
		errs = append(errs, fmt.Errorf("client.protocol: unknown protocol %q", c.Client.Protocol))
	}
	if c.Client.BaseURL == "" {
		errs = append(errs, errors.New("client.base_url: must not be empty"))
	}
	if c.Client.Timeout < 0 {
		errs = append(errs, errors.New("client.timeout: must not be negative"))
	}

	switch c.Engine.Policy {
	case "", "fifo", "coalesce":
	default:
		errs = append(errs, fmt.Errorf("engine.policy: unknown policy %q", c.Engine.Policy))
	}
	if c.Engine.QueueSize <= 0 {
		errs = append(errs, fmt.Errorf("engine.queue_size: must be positive, got %d", c.Engine.QueueSize))
	}

	if c.Server.Size < 2 {
		errs = append(errs, fmt.Errorf("server.size: must be at least 2, got %d", c.Server.Size))
	}
	if c.Server.Spawn4 < 0 || c.Server.Spawn4 > 1 {
		errs = append(errs, fmt.Errorf("server.spawn4: must be within [0, 1], got %v", c.Server.Spawn4))
	}

	if c.Log.Level != "" {
		if _, err := log.ParseLevel(c.Log.Level); err != nil {
			errs = append(errs, fmt.Errorf("log.level: %w", err))
		}
	}

	return errors.Join(errs...)
}
