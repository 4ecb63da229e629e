package decoder

import (
	"errors"
	"fmt"
	"math"
)

// Config holds beam search parameters.
type Config struct {
	// Alpha weights the bigram estimate against the trigram estimate:
	// step = Alpha*P(g|p) + (1-Alpha)*P(g|p, prev). 1.0 is bigram-only.
	Alpha float64
	// BeamWidth is the number of hypotheses kept after each phoneme.
	BeamWidth int
}

// DefaultConfig returns bigram-only decoding with a beam of 10.
func DefaultConfig() Config {
	return Config{
		Alpha:     1.0,
		BeamWidth: 10,
	}
}

// ErrInvalidConfig is matched by every *ConfigurationError.
var ErrInvalidConfig = errors.New("invalid decoder configuration")

// ConfigurationError reports a parameter outside its valid range.
type ConfigurationError struct {
	Field string
	Value any
	Want  string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("decoder: %s = %v, want %s", e.Field, e.Value, e.Want)
}

func (e *ConfigurationError) Is(target error) bool { return target == ErrInvalidConfig }

// Validate rejects out-of-range parameters. Values are never clamped.
func (c Config) Validate() error {
	if math.IsNaN(c.Alpha) || c.Alpha < 0 || c.Alpha > 1 {
		return &ConfigurationError{Field: "alpha", Value: c.Alpha, Want: "a value in [0, 1]"}
	}
	if c.BeamWidth < 1 {
		return &ConfigurationError{Field: "beam width", Value: c.BeamWidth, Want: ">= 1"}
	}
	return nil
}
