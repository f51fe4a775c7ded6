package history

import (
	"errors"
	"fmt"
)

// NotFoundError is returned when no build with the given ID was recorded.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("build %q not found in history", e.ID)
}

// IsNotFound returns true if err is or wraps a NotFoundError.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}
