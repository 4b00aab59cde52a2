package energy

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration indicates constants or sweep settings that cannot be evaluated.
	ErrConfiguration = errors.New("energy: invalid configuration")

	// ErrIntegration indicates a sample whose value could not be computed.
	ErrIntegration = errors.New("energy: integration failed")

	// ErrNegativeRadius indicates an inner integral requested for r1 < 0.
	ErrNegativeRadius = errors.New("energy: radius must be non-negative")

	// ErrNonFiniteSample indicates a sample that evaluated to NaN or Inf.
	ErrNonFiniteSample = errors.New("energy: sample is not finite")
)

// ConfigurationError names the offending setting.
type ConfigurationError struct {
	Field   string
	Value   any
	Reason  string
	Wrapped error
}

func (e *ConfigurationError) Error() string {
	msg := fmt.Sprintf("invalid configuration: %s=%v: %s", e.Field, e.Value, e.Reason)
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

func (e *ConfigurationError) Unwrap() error { return e.Wrapped }

// IntegrationError wraps a per-sample failure with its sweep position.
type IntegrationError struct {
	Index   int
	R1      float64
	Wrapped error
}

func (e *IntegrationError) Error() string {
	return fmt.Sprintf("sample %d (r1=%.6g): %v", e.Index, e.R1, e.Wrapped)
}

func (e *IntegrationError) Is(target error) bool { return target == ErrIntegration }

func (e *IntegrationError) Unwrap() error { return e.Wrapped }
