package geoimage

import (
	"errors"
	"fmt"
)

// StatusCode classifies a failed operation.
type StatusCode int

const (
	// NoError is the code of a successful status.
	NoError StatusCode = iota
	// ResourceUnavailable means required data (such as pixel data) is missing.
	ResourceUnavailable
	// ServiceUnavailable means a collaborator such as a backend could not be used.
	ServiceUnavailable
	// ConfigurationError means required properties are missing or inconsistent.
	ConfigurationError
	// AssertionFailure means an illegal state was detected.
	AssertionFailure
	// GeneralError is anything else.
	GeneralError
)

var statusCodeText = [...]string{
	NoError:             "No error",
	ResourceUnavailable: "Resource unavailable",
	ServiceUnavailable:  "Service unavailable",
	ConfigurationError:  "Configuration error",
	AssertionFailure:    "Assertion failure",
	GeneralError:        "General error",
}

func (c StatusCode) String() string {
	if c < 0 || int(c) >= len(statusCodeText) {
		return statusCodeText[GeneralError]
	}
	return statusCodeText[c]
}

// Status is the error type returned by this package. Two statuses match
// under errors.Is when their codes are equal and the target either has no
// message or the same message.
type Status struct {
	Code    StatusCode
	Message string
}

// Error implements error.
func (s *Status) Error() string {
	if s.Message == "" {
		return s.Code.String()
	}
	return s.Code.String() + ": " + s.Message
}

// Is reports whether target is a Status with the same code.
func (s *Status) Is(target error) bool {
	var t *Status
	if !errors.As(target, &t) {
		return false
	}
	return s.Code == t.Code && (t.Message == "" || t.Message == s.Message)
}

// Sentinel statuses for errors.Is.
var (
	ErrResourceUnavailable = &Status{Code: ResourceUnavailable}
	ErrIncompatibleSRS     = &Status{Code: GeneralError, Message: "cropping extent does not have an equivalent spatial reference"}
	ErrTransformFailed     = &Status{Code: GeneralError, Message: "coordinate transformation failed"}
	ErrInvalidExtent       = &Status{Code: ConfigurationError, Message: "invalid extent"}
)

// newStatus returns a Status with a formatted message.
func newStatus(code StatusCode, format string, args ...any) *Status {
	return &Status{Code: code, Message: fmt.Sprintf(format, args...)}
}

// StatusOf extracts the code of err; nil maps to NoError and foreign
// errors to GeneralError.
func StatusOf(err error) StatusCode {
	if err == nil {
		return NoError
	}
	var s *Status
	if errors.As(err, &s) {
		return s.Code
	}
	return GeneralError
}
