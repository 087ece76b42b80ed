// Package config loads the pubsub listener configuration.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"solana-shreds-lab/internal/solana"
)

// Environment variables overriding the listener endpoints.
const (
	WSURLEnvVariable  = "WS_URL"
	RPCURLEnvVariable = "RPC_URL"
)

type (
	// Log contains the configuration for the logger.
	Log struct {
		Level  string `yaml:"level,omitempty"`
		Format string `yaml:"format,omitempty"`
	}

	// Metrics contains the configuration for the Prometheus endpoint.
	Metrics struct {
		Address string `yaml:"address,omitempty"`
	}

	// Listener contains the logsSubscribe configuration. When RPCURL is
	// set the node is health checked before subscribing.
	Listener struct {
		WSURL      string            `yaml:"wsURL,omitempty"`
		RPCURL     string            `yaml:"rpcURL,omitempty"`
		Mentions   []string          `yaml:"mentions,omitempty"`
		Commitment solana.Commitment `yaml:"commitment,omitempty"`
		// Output is the log file lines are appended to. Empty means stdout.
		Output string `yaml:"output,omitempty"`
		// Duration stops the listener after the given time. Zero runs until signalled.
		Duration time.Duration `yaml:"duration,omitempty"`

		WS solana.WSClientConfig `yaml:"ws,omitempty"`
	}

	// Config contains the configuration for the pubsub listener.
	Config struct {
		Listener Listener `yaml:"listener,omitempty"`
		Log      Log      `yaml:"log,omitempty"`
		Metrics  Metrics  `yaml:"metrics,omitempty"`
	}
)

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Listener: Listener{
			Mentions:   []string{solana.RaydiumAMMV4},
			Commitment: solana.CommitmentProcessed,
			WS:         solana.DefaultWSConfig(),
		},
		Log: Log{Level: "info", Format: "console"},
	}
}

// LoadFile decodes the file at fp into cfg. Unknown fields are rejected.
func LoadFile(fp string, cfg *Config) error {
	buf, err := os.ReadFile(fp)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(buf))
	dec.KnownFields(true)

	if err := dec.Decode(cfg); err != nil {
		return fmt.Errorf("failed to decode config file: %w", err)
	}
	return nil
}

// ApplyEnv applies environment overrides through lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(WSURLEnvVariable); ok && v != "" {
		c.Listener.WSURL = v
	}
	if v, ok := lookup(RPCURLEnvVariable); ok && v != "" {
		c.Listener.RPCURL = v
	}
}

// Validate checks that the configuration can start a listener.
func (c *Config) Validate() error {
	if c.Listener.WSURL == "" {
		return errors.New("websocket url is required (set " + WSURLEnvVariable + " or listener.wsURL)")
	}
	switch c.Listener.Commitment {
	case "", solana.CommitmentProcessed, solana.CommitmentConfirmed, solana.CommitmentFinalized:
	default:
		return fmt.Errorf("unknown commitment %q", c.Listener.Commitment)
	}
	for _, m := range c.Listener.Mentions {
		if _, err := solana.ParsePubkey(m); err != nil {
			return fmt.Errorf("mention %q: %w", m, err)
		}
	}
	if c.Listener.Duration < 0 {
		return errors.New("duration must not be negative")
	}
	return nil
}
