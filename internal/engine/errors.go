package engine

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned by New when the configuration fails
// validation; errors.Is matches it, and the error message carries the
// offending-field detail.
var ErrInvalidConfig = errors.New("engine: invalid config")

// ErrInvalidFrame is returned by Tick when sample_rate_hz <= 0 or a buffer
// length changes between ticks without an intervening
// ResetPlaybackState.
var ErrInvalidFrame = errors.New("engine: invalid frame")

func wrapConfigErr(err error) error {
	return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
}
