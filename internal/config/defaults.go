package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/t2048.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Client: ClientConfig{
			BaseURL:  "http://localhost:8080",
			Timeout:  5 * time.Second,
			Protocol: "v2",
		},
		Engine: EngineConfig{
			QueueSize: 64,
			Policy:    "fifo",
		},
		Server: ServerConfig{
			Address: "localhost:8080",
			Size:    4,
			Spawn4:  0.10,
			DB:      ":memory:",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
