package builder

import (
	"errors"
	"fmt"
)

// DiscoveryError is returned when the build directory cannot be prepared or
// the source directory yields no compilation units.
type DiscoveryError struct {
	Path    string
	Message string
	Err     error
}

func (e *DiscoveryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v", e.Message, e.Path, e.Err)
	}
	return fmt.Sprintf("%s %s", e.Message, e.Path)
}

func (e *DiscoveryError) Unwrap() error {
	return e.Err
}

// IsDiscovery returns true if err is or wraps a DiscoveryError.
func IsDiscovery(err error) bool {
	var target *DiscoveryError
	return errors.As(err, &target)
}

// ConfigError is returned for an invalid build configuration.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid build config %s: %s", e.Field, e.Message)
}
