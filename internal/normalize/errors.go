package normalize

import (
	"errors"
	"fmt"
)

// ErrStructuralViolation matches every error raised when a row set breaks an
// invariant the data source is expected to uphold.
var ErrStructuralViolation = errors.New("structural violation")

// MissingMarkerError reports that no row carried the marker type.
type MissingMarkerError struct {
	Marker string
}

func (e *MissingMarkerError) Error() string {
	return fmt.Sprintf("structural violation: no row with type %q", e.Marker)
}

func (e *MissingMarkerError) Is(target error) bool {
	return target == ErrStructuralViolation
}

// MissingFieldError reports a required field that is null or empty.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("structural violation: required field %q is missing", e.Field)
}

func (e *MissingFieldError) Is(target error) bool {
	return target == ErrStructuralViolation
}
