// Copyright © 2026 chrona-physics Contributors
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

// config.go reduces the NewClock/NewPhysicsObject API footprint using
// functional options, the same pattern the teacher engine uses for its
// engine-wide Config/Attr pair.
// See: http://dave.cheney.net/2014/10/17/functional-options-for-friendly-apis

import "log/slog"

// defaultCycleLimit bounds the number of preprocess/event cycles a single
// Clock.RunTo call may execute before failing with ErrCycleLimitExceeded.
const defaultCycleLimit = 10_000

// clockConfig carries attributes that can be set when constructing a Clock.
type clockConfig struct {
	cycleLimit int
	logger     *slog.Logger
}

// clockDefaults provides reasonable defaults so a Clock works without any
// options being set.
var clockDefaults = clockConfig{
	cycleLimit: defaultCycleLimit,
	logger:     slog.Default(),
}

// ClockOption configures a Clock at construction time. For use with NewClock.
type ClockOption func(*clockConfig)

// WithCycleLimit overrides the default 10,000 cycle safety limit applied to
// every Clock.RunTo call. Values less than 1 are ignored.
func WithCycleLimit(limit int) ClockOption {
	return func(c *clockConfig) {
		if limit > 0 {
			c.cycleLimit = limit
		}
	}
}

// WithLogger overrides the *slog.Logger used for the clock's diagnostic
// output (the warning logged when Schedule discards a past-time event). A
// nil logger is ignored.
func WithLogger(logger *slog.Logger) ClockOption {
	return func(c *clockConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// objectConfig carries attributes that can be set when constructing a
// PhysicsObject.
type objectConfig struct {
	disabled bool
}

// ObjectOption configures a PhysicsObject at construction time. For use
// with NewPhysicsObject.
type ObjectOption func(*objectConfig)

// WithDisabled creates the PhysicsObject already disabled: it will not
// subscribe to its geometry or trajectory until Enable is called.
func WithDisabled() ObjectOption {
	return func(c *objectConfig) { c.disabled = true }
}
