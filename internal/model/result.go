package model

import (
	"errors"
	"fmt"
)

// BoardConfigResult is the outcome of a configuration update.
// The set is closed; the string values are stable and safe to persist or log.
type BoardConfigResult string

const (
	Success         BoardConfigResult = "success"
	SuccessNoChange BoardConfigResult = "success_no_change"
	InvalidFormat   BoardConfigResult = "invalid_format"
	InvalidConfigID BoardConfigResult = "invalid_config_id"
	InvalidOptionID BoardConfigResult = "invalid_option_id"
)

func (r BoardConfigResult) String() string { return string(r) }

// OK reports whether r is Success or SuccessNoChange.
func (r BoardConfigResult) OK() bool {
	return r == Success || r == SuccessNoChange
}

// Message returns a user-facing description of r.
func (r BoardConfigResult) Message() string {
	switch r {
	case Success:
		return "configuration updated"
	case SuccessNoChange:
		return "configuration unchanged"
	case InvalidFormat:
		return "invalid configuration format, expected id=option[,id=option...]"
	case InvalidConfigID:
		return "unknown configuration id"
	case InvalidOptionID:
		return "unknown option for configuration id"
	}
	return "unknown result " + string(r)
}

// Err returns nil for successful results and a *ConfigError otherwise.
func (r BoardConfigResult) Err(input string) error {
	if r.OK() {
		return nil
	}
	return &ConfigError{Result: r, Input: input}
}

// ConfigError reports a rejected configuration string or update.
type ConfigError struct {
	Result BoardConfigResult
	Input  string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %q", e.Result.Message(), e.Input)
}

// ResultOf extracts the BoardConfigResult carried by err. A nil error is Success.
func ResultOf(err error) (BoardConfigResult, bool) {
	if err == nil {
		return Success, true
	}
	var ce *ConfigError
	if errors.As(err, &ce) {
		return ce.Result, true
	}
	return "", false
}
