package design

import "fmt"

// ConfigurationError indicates an invalid design space, weight set, or run
// setting. It always surfaces before any trial runs.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}
