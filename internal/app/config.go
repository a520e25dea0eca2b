package app

import (
	"errors"
	"fmt"
	"strings"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// NodesFile is the node configuration file. Empty means no user nodes.
	NodesFile string

	LogFormat       string
	LogLevel        string
	HealthcheckPort int

	// NATSURL enables mirroring of value changes when set.
	NATSURL     string
	NATSSubject string
}

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	var errs []error

	switch cfg.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("invalid log level %q, must be one of debug, info, warn, error", cfg.LogLevel))
	}
	switch cfg.LogFormat {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("invalid log format %q, must be text or json", cfg.LogFormat))
	}
	if cfg.HealthcheckPort < 0 || cfg.HealthcheckPort > 65535 {
		errs = append(errs, fmt.Errorf("invalid healthcheck port %d", cfg.HealthcheckPort))
	}
	if strings.ContainsAny(cfg.NATSSubject, "*> \t") {
		errs = append(errs, fmt.Errorf("invalid NATS subject prefix %q, wildcards and whitespace are not allowed", cfg.NATSSubject))
	}
	if cfg.NATSSubject != "" && cfg.NATSURL == "" {
		errs = append(errs, errors.New("NATS subject prefix requires a NATS URL"))
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return &cfg, nil
}
