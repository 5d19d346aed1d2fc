package deadline

import (
	"errors"
	"fmt"

	"github.com/iwvelando/mediation-calc/pkg/constants"
)

// ErrInvalidDateFormat matches any InvalidDateFormatError via errors.Is.
var ErrInvalidDateFormat = errors.New("invalid date format")

// InvalidDateFormatError reports start-date text that does not match DD.MM.YYYY.
type InvalidDateFormatError struct {
	Input string
	Err   error
}

func (e *InvalidDateFormatError) Error() string {
	return fmt.Sprintf("invalid date format %q: expected format DD.MM.YYYY (%s)", e.Input, constants.DateLayout)
}

// Unwrap returns the underlying parse error.
func (e *InvalidDateFormatError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrInvalidDateFormat.
func (e *InvalidDateFormatError) Is(target error) bool {
	return target == ErrInvalidDateFormat
}
