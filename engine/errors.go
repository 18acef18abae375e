package engine

import (
	"errors"

	"github.com/ember-gfx/ember/config"
)

// ConfigurationError is re-exported so hosts handle validation and
// engine errors from one package.
type ConfigurationError = config.ConfigurationError

var (
	// ErrUnknownSystem reports a system id with no slot.
	ErrUnknownSystem = errors.New("engine: unknown system")

	// ErrSuspended reports an operation on a system suspended by a
	// configuration error. Configure it with a valid config to resume.
	ErrSuspended = errors.New("engine: system suspended")
)

// IsConfiguration reports whether err is (or wraps) a ConfigurationError.
func IsConfiguration(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}
