package cli

import (
	"errors"
	"fmt"

	"llmprice-hq/pricebook/pkg/config"
)

// ConfigError represents an error in configuration.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error in %s: %s", e.Field, e.Message)
}

// CommandError represents an error from a command execution.
type CommandError struct {
	Command string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %s failed: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError.
func NewConfigError(field, message string) *ConfigError {
	return &ConfigError{
		Field:   field,
		Message: message,
	}
}

// NewCommandError creates a new CommandError.
func NewCommandError(command string, err error) *CommandError {
	return &CommandError{
		Command: command,
		Err:     err,
	}
}

// ConfigErrorFrom reports the first field of a config.ValidationError as a
// ConfigError. Other errors are returned unchanged.
func ConfigErrorFrom(err error) error {
	var verr config.ValidationError
	if errors.As(err, &verr) && len(verr.Errors) > 0 {
		fe := verr.Errors[0]
		msg := fe.Message
		if n := len(verr.Errors) - 1; n > 0 {
			msg = fmt.Sprintf("%s (and %d more)", msg, n)
		}
		return NewConfigError(fe.Field, msg)
	}
	return err
}
