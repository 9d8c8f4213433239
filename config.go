package chash

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"github.com/xyproto/env/v2"
)

// Default configuration values.
const (
	DefaultInitialCapacity = 1
	DefaultExpandThreshold = 1.25
	DefaultShrinkThreshold = 0.5
)

// Environment variables consulted by FromEnv.
const (
	EnvInitialCapacity = "CHASH_INITIAL_CAPACITY"
	EnvExpandThreshold = "CHASH_EXPAND_THRESHOLD"
	EnvShrinkThreshold = "CHASH_SHRINK_THRESHOLD"
	EnvHasher          = "CHASH_HASHER"
)

// ErrInvalidConfig is wrapped by every problem reported from Config.Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the tunables of a Table.
type Config struct {
	// InitialCapacity is the bucket count of an empty table. It must be a
	// power of two; shrinking never goes below 1 regardless of this value.
	InitialCapacity int

	// ExpandThreshold is the load factor above which capacity doubles.
	ExpandThreshold float64

	// ShrinkThreshold is the load factor below which capacity halves.
	// Zero disables shrinking.
	ShrinkThreshold float64

	// Hasher maps keys to bucket indices. Defaults to XXHash.
	Hasher Hasher

	// Logger receives resize events at debug level. Defaults to a logger
	// that discards everything.
	Logger logrus.FieldLogger

	// envErrs records variables FromEnv could not parse so Validate can
	// report them alongside the other problems.
	envErrs []error
}

// DefaultConfig returns the configuration used by New when no options are
// given: capacity 1, expand above 1.25, shrink below 0.5, xxHash.
func DefaultConfig() Config {
	return Config{
		InitialCapacity: DefaultInitialCapacity,
		ExpandThreshold: DefaultExpandThreshold,
		ShrinkThreshold: DefaultShrinkThreshold,
		Hasher:          XXHash,
		Logger:          discardLogger(),
	}
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Option mutates a Config before a Table is built from it.
type Option func(*Config)

// WithInitialCapacity sets the starting bucket count. It must be a power of
// two.
func WithInitialCapacity(capacity int) Option {
	return func(c *Config) {
		c.InitialCapacity = capacity
	}
}

// WithExpandThreshold sets the load factor above which the table grows.
func WithExpandThreshold(threshold float64) Option {
	return func(c *Config) {
		c.ExpandThreshold = threshold
	}
}

// WithShrinkThreshold sets the load factor below which the table shrinks.
// Pass 0 to disable shrinking.
func WithShrinkThreshold(threshold float64) Option {
	return func(c *Config) {
		c.ShrinkThreshold = threshold
	}
}

// WithHasher replaces the hash function.
func WithHasher(h Hasher) Option {
	return func(c *Config) {
		c.Hasher = h
	}
}

// WithLogger sets the logger used for resize events. A nil logger is ignored.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Config) {
		if l != nil {
			c.Logger = l
		}
	}
}

// FromEnv overrides the configuration with the CHASH_* environment variables
// that are set. Variables that are unset or empty leave the current value
// untouched; malformed values are reported by Validate.
func FromEnv() Option {
	return func(c *Config) {
		// env caches the environment; refresh it so every call sees the
		// current values.
		env.Load()

		if v := env.Str(EnvInitialCapacity, ""); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				c.envErrs = append(c.envErrs, fmt.Errorf("%s: %w", EnvInitialCapacity, err))
			} else {
				c.InitialCapacity = n
			}
		}
		c.ExpandThreshold = envFloat(c, EnvExpandThreshold, c.ExpandThreshold)
		c.ShrinkThreshold = envFloat(c, EnvShrinkThreshold, c.ShrinkThreshold)
		if name := env.Str(EnvHasher, ""); name != "" {
			h, err := HasherByName(name)
			if err != nil {
				c.envErrs = append(c.envErrs, fmt.Errorf("%s: %w", EnvHasher, err))
			} else {
				c.Hasher = h
			}
		}
	}
}

func envFloat(c *Config, name string, current float64) float64 {
	v := env.Str(name, "")
	if v == "" {
		return current
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		c.envErrs = append(c.envErrs, fmt.Errorf("%s: %w", name, err))
		return current
	}
	return f
}

// Validate reports every problem with the configuration, not only the first.
func (c Config) Validate() error {
	var result *multierror.Error

	if c.InitialCapacity < 1 || c.InitialCapacity&(c.InitialCapacity-1) != 0 {
		result = multierror.Append(result, fmt.Errorf("%w: initial capacity %d is not a power of two",
			ErrInvalidConfig, c.InitialCapacity))
	}
	if math.IsNaN(c.ExpandThreshold) || c.ExpandThreshold <= 0 {
		result = multierror.Append(result, fmt.Errorf("%w: expand threshold %g must be a positive number",
			ErrInvalidConfig, c.ExpandThreshold))
	}
	if math.IsNaN(c.ShrinkThreshold) || math.IsInf(c.ShrinkThreshold, 0) || c.ShrinkThreshold < 0 {
		result = multierror.Append(result, fmt.Errorf("%w: shrink threshold %g must be a finite, non-negative number",
			ErrInvalidConfig, c.ShrinkThreshold))
	}
	// Halving from below the shrink threshold must land at or below the
	// expand threshold, and doubling from above it must land at or above
	// the shrink threshold.
	if c.ExpandThreshold < 2*c.ShrinkThreshold {
		result = multierror.Append(result, fmt.Errorf("%w: expand threshold %g is less than twice the shrink threshold %g",
			ErrInvalidConfig, c.ExpandThreshold, c.ShrinkThreshold))
	}
	for _, err := range c.envErrs {
		result = multierror.Append(result, fmt.Errorf("%w: %w", ErrInvalidConfig, err))
	}
	if c.Hasher == nil {
		result = multierror.Append(result, fmt.Errorf("%w: hasher is nil", ErrInvalidConfig))
	}

	return result.ErrorOrNil()
}
