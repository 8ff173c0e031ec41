package discovery

import (
	"errors"
	"fmt"
)

// ErrBudgetExhausted ends a run that keeps failing to find anything. The
// summary returned alongside it is still valid.
var ErrBudgetExhausted = errors.New("attempt budget exhausted without finding any plate")

// ConfigError reports an invalid run parameter. It is returned before any lookup happens.
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }
