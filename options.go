package crossway

import (
	"fmt"
	"strings"
)

// Config holds monitor settings
type Config struct {
	Name      string
	Observers []Observer
	// LogLevel enables a logging observer prefixed with Name when set
	LogLevel *LogLevel
}

// DefaultConfig returns the settings used when no options are given
func DefaultConfig() Config {
	return Config{Name: "intersection"}
}

// Validate checks that the configuration can build a monitor
func (c Config) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return NewConfigurationError("Monitor", "name must not be empty")
	}
	for i, obs := range c.Observers {
		if obs == nil {
			return NewConfigurationError("Monitor", fmt.Sprintf("observer %d is nil", i))
		}
	}
	if c.LogLevel != nil && (*c.LogLevel < LogError || *c.LogLevel > LogDebug) {
		return NewConfigurationError("Monitor", fmt.Sprintf("unknown log level %d", *c.LogLevel))
	}
	return nil
}

// Option configures a monitor
type Option func(*Config)

// WithName sets the monitor name used in logs
func WithName(name string) Option {
	return func(c *Config) {
		c.Name = name
	}
}

// WithObserver registers an observer
func WithObserver(observer Observer) Option {
	return func(c *Config) {
		c.Observers = append(c.Observers, observer)
	}
}

// WithLogger registers a logging observer at the given level. Its prefix is
// the final monitor name, whatever order the options are given in.
func WithLogger(level LogLevel) Option {
	return func(c *Config) {
		c.LogLevel = &level
	}
}
