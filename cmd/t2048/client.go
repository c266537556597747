package main

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/engine"
	"github.com/vovakirdan/tui-2048/internal/transport"
)

// newClient builds the transport client described by cfg.
func newClient(cfg config.ClientConfig, logger *log.Logger) (*transport.Client, error) {
	protocol, err := transport.ParseProtocol(cfg.Protocol)
	if err != nil {
		return nil, err
	}
	return transport.New(transport.Config{
		BaseURL:  cfg.BaseURL,
		Timeout:  cfg.Timeout,
		Protocol: protocol,
	}, transport.WithLogger(logger)), nil
}

// newEngine builds an engine over client.
func newEngine(cfg config.EngineConfig, client engine.Transport, logger *log.Logger) (*engine.Engine, error) {
	policy, err := engine.ParsePolicy(cfg.Policy)
	if err != nil {
		return nil, err
	}
	return engine.New(client, engine.Config{
		QueueSize: cfg.QueueSize,
		Policy:    policy,
	}, engine.WithLogger(logger)), nil
}
