package parameterservice

import (
	"errors"
	"fmt"

	platformservice "github.com/redjax/kparams/internal/services/platformService"
)

var (
	// ErrInsufficientCoverage is returned when too few offset records ran for the platform.
	ErrInsufficientCoverage = errors.New("insufficient offsets for platform")
	// ErrStoreFrozen is the panic value (wrapped) for writes to a frozen store.
	ErrStoreFrozen = errors.New("parameter store is frozen")
	// ErrUnknownProfile is returned when a forced profile name is not registered.
	ErrUnknownProfile = errors.New("unknown offsets profile")
)

// CoverageError reports how many offset records ran against the required minimum.
type CoverageError struct {
	Identity platformservice.Identity
	Count    int
	Min      int
}

func (e *CoverageError) Error() string {
	return fmt.Sprintf("somehow, there are no offsets for %s %s (%d of %d records matched)",
		e.Identity.Device, e.Identity.Build, e.Count, e.Min)
}

func (e *CoverageError) Unwrap() error { return ErrInsufficientCoverage }

// MissingParameterError is the panic value for reads of an unset parameter.
type MissingParameterError struct {
	Key Key
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("parameter %s is not set", e.Key)
}
