package authz

import (
	"errors"
	"fmt"
)

var (
	// ErrCapabilityNotImplemented indicates the target's resource kind
	// defines no check for the requested permission at the required
	// scope. A missing check is a configuration defect, not a denial,
	// so it surfaces as an error instead of a verdict.
	ErrCapabilityNotImplemented = errors.New("authz: capability not implemented")

	// ErrMalformedTarget indicates the target variant could not be
	// determined. The resolver never guesses a scope.
	ErrMalformedTarget = errors.New("authz: malformed target")
)

// NotImplementedError reports which capability was missing and where.
type NotImplementedError struct {
	Kind       string
	Capability string
	Scope      Scope
}

func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("authz: resource kind %q has no %s-scoped %s", e.Kind, e.Scope, e.Capability)
}

// Is makes errors.Is(err, ErrCapabilityNotImplemented) match.
func (e *NotImplementedError) Is(target error) bool {
	return target == ErrCapabilityNotImplemented
}
