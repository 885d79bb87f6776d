// Copyright © 2026 chrona-physics Contributors
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

import "errors"

// Sentinel errors. All three are programmer errors: each indicates the
// caller violated an API precondition rather than some recoverable runtime
// condition. Wrap with fmt.Errorf("...: %w", Err...) at the call site to
// add context; callers should compare with errors.Is against these values.
var (
	// ErrInvalidTime is returned by Clock.RunTo when target is before the
	// clock's current time.
	ErrInvalidTime = errors.New("chrona: runTo target precedes clock time")

	// ErrCycleLimitExceeded is returned by Clock.RunTo when more than the
	// clock's configured cycle limit (WithCycleLimit) of preprocess/event
	// cycles run within one call,
	// indicating an infinite event cascade (typically a zero-delay
	// reschedule loop or a perpetual contact never separated).
	ErrCycleLimitExceeded = errors.New("chrona: runTo exceeded cycle limit")

	// ErrUnsupportedArguments is returned when a constructor or setter is
	// dispatched with an argument shape it cannot interpret.
	ErrUnsupportedArguments = errors.New("chrona: unsupported constructor arguments")
)
