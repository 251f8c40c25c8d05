package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ConfigurationError reports missing or invalid options, an unknown
// platform, or an unknown currency label.
type ConfigurationError struct {
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return "configuration error: " + e.Reason + ": " + e.Err.Error()
	}
	return "configuration error: " + e.Reason
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// ConversionError reports an exchange token the codec does not know.
type ConversionError struct {
	What  string // what was being converted, e.g. "kraken currency code"
	Value string
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("conversion error: unsupported %s [%s]", e.What, e.Value)
}

// ExchangeError reports a failed exchange call: a non-empty error list in
// the response envelope, an HTTP status >= 300, a transport failure, or a
// malformed envelope.
type ExchangeError struct {
	Op       string
	Messages []string
	Err      error
}

func (e *ExchangeError) Error() string {
	var b strings.Builder
	b.WriteString("exchange error")
	if e.Op != "" {
		b.WriteString(" [" + e.Op + "]")
	}
	if len(e.Messages) > 0 {
		b.WriteString(": " + strings.Join(e.Messages, "; "))
	}
	if e.Err != nil {
		b.WriteString(": " + e.Err.Error())
	}
	return b.String()
}

func (e *ExchangeError) Unwrap() error {
	return e.Err
}

// NotificationError reports a failed POST to the notification webhook.
type NotificationError struct {
	StatusCode int
	Err        error
}

func (e *NotificationError) Error() string {
	if e.Err != nil {
		return "notification error: " + e.Err.Error()
	}
	return fmt.Sprintf("notification error: webhook responded with status %d", e.StatusCode)
}

func (e *NotificationError) Unwrap() error {
	return e.Err
}

// InternalError wraps any other unexpected condition.
type InternalError struct {
	Err error
}

func (e *InternalError) Error() string {
	return "internal error: " + e.Err.Error()
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

// IsConfigurationError tells whether err is a ConfigurationError anywhere
// in its chain.
func IsConfigurationError(err error) bool {
	var target *ConfigurationError
	return errors.As(err, &target)
}

// IsExchangeError tells whether err is an ExchangeError anywhere in its
// chain.
func IsExchangeError(err error) bool {
	var target *ExchangeError
	return errors.As(err, &target)
}
