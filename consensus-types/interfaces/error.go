package interfaces

import (
	"fmt"

	"github.com/YoutacRandS-VA/teku/runtime/version"
	"github.com/pkg/errors"
)

// ErrUnsupportedVersion is matched by every UnsupportedVersionError.
var ErrUnsupportedVersion = errors.New("unsupported version")

// UnsupportedVersionError is returned when a value is required to implement
// the fields of a fork it predates.
type UnsupportedVersionError struct {
	Actual   int
	Expected int
}

// NewUnsupportedVersionError returns an UnsupportedVersionError for a value
// of fork actual required as fork expected.
func NewUnsupportedVersionError(actual, expected int) error {
	return &UnsupportedVersionError{Actual: actual, Expected: expected}
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("%s: value is %s, %s required", ErrUnsupportedVersion, version.String(e.Actual), version.String(e.Expected))
}

// Is lets errors.Is match ErrUnsupportedVersion.
func (e *UnsupportedVersionError) Is(target error) bool {
	return target == ErrUnsupportedVersion
}

type versioned interface {
	Version() int
}

// requireVersion turns a capability probe into an error carrying both versions.
func requireVersion[V any](v versioned, probe func() (V, bool), expected int) (V, error) {
	if out, ok := probe(); ok {
		return out, nil
	}
	var zero V
	return zero, NewUnsupportedVersionError(v.Version(), expected)
}
