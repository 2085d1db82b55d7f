package simulation

import (
	"fmt"
	"time"

	"github.com/anggasct/crossway"
)

// Config describes one simulation run
type Config struct {
	// Vehicles is the number of vehicles to drive when Movements is empty
	Vehicles int
	// Concurrency caps the number of vehicles between arrival and departure;
	// zero or less means every vehicle arrives at once
	Concurrency int
	// MaxCrossing is the upper bound of the random time a vehicle spends inside
	MaxCrossing time.Duration
	// Seed makes the generated movements and crossing times reproducible
	Seed int64
	// Movements is an explicit plan, one entry per vehicle
	Movements []crossway.Movement
}

// DefaultConfig returns a small, fast run
func DefaultConfig() Config {
	return Config{
		Vehicles:    100,
		Concurrency: 10,
		MaxCrossing: 2 * time.Millisecond,
		Seed:        1,
	}
}

// Validate checks the configuration
func (c Config) Validate() error {
	if len(c.Movements) == 0 && c.Vehicles <= 0 {
		return crossway.NewConfigurationError("Simulation", "no vehicles to drive")
	}
	if c.MaxCrossing < 0 {
		return crossway.NewConfigurationError("Simulation", "crossing time must not be negative")
	}
	for i, m := range c.Movements {
		if !m.Valid() {
			return crossway.NewConfigurationError("Simulation", fmt.Sprintf("vehicle %d has invalid movement %s", i, m))
		}
	}
	return nil
}
