package invoice

import (
	"errors"
	"fmt"
)

// ErrInvalidOption matches any InvalidOptionError via errors.Is.
var ErrInvalidOption = errors.New("invalid tax treatment option")

// InvalidOptionError reports an option code outside the defined tax treatments.
type InvalidOptionError struct {
	Code int
}

func (e *InvalidOptionError) Error() string {
	return fmt.Sprintf("invalid tax treatment option %d: expected a value from 1 to %d", e.Code, len(treatments))
}

// Is reports whether target is ErrInvalidOption.
func (e *InvalidOptionError) Is(target error) bool {
	return target == ErrInvalidOption
}
