package utils

import (
	"errors"
	"fmt"
)

// InvalidRequestError is returned when a publication request is missing or malformed. It is always raised before any I/O.
type InvalidRequestError struct {
	Field  string
	Reason string
}

func (e *InvalidRequestError) Error() string {
	if e.Field == "" {
		return "invalid publication request: " + e.Reason
	}
	return fmt.Sprintf("invalid publication request: '%s' %s", e.Field, e.Reason)
}

func NewInvalidRequestError(field, reason string) *InvalidRequestError {
	return &InvalidRequestError{Field: field, Reason: reason}
}

// LocalIOError represents a failure to read the artifact or to write into the staging directory.
type LocalIOError struct {
	Op   string
	Path string
	Err  error
}

func (e *LocalIOError) Error() string {
	return fmt.Sprintf("failed to %s '%s': %s", e.Op, e.Path, e.Err.Error())
}

func (e *LocalIOError) Unwrap() error {
	return e.Err
}

func NewLocalIOError(op, path string, err error) *LocalIOError {
	return &LocalIOError{Op: op, Path: path, Err: err}
}

// RenderError wraps a failure of the metadata renderer.
type RenderError struct {
	Template string
	Err      error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("failed to render '%s': %s", e.Template, e.Err.Error())
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// TransportError means the transfer did not complete, so no usable HTTP status was received.
type TransportError struct {
	Target   string
	ExitCode int
	// Status is whatever status text was captured, usually empty.
	Status string
	Err    error
}

func (e *TransportError) Error() string {
	msg := "Transfer to " + e.Target + " failed"
	if e.ExitCode != 0 {
		msg += fmt.Sprintf(" with exit code %d", e.ExitCode)
	}
	if e.Status == "" {
		msg += " (no HTTP response received)"
	} else {
		msg += " (status " + e.Status + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// HttpRejectionError means the transfer completed but the repository answered with a status other than 200 or 201.
type HttpRejectionError struct {
	Target  string
	Status  string
	Message string
}

func (e *HttpRejectionError) Error() string {
	msg := "Status code " + e.Status + " for " + e.Target
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// BatchFailure aggregates an upload batch failure. It carries the first observed task error.
type BatchFailure struct {
	Err error
}

func (e *BatchFailure) Error() string {
	return "Artifact Upload failed: " + e.Err.Error()
}

func (e *BatchFailure) Unwrap() error {
	return e.Err
}

// Target returns the target URI of the failed upload, if known.
func (e *BatchFailure) Target() string {
	var rejection *HttpRejectionError
	if errors.As(e.Err, &rejection) {
		return rejection.Target
	}
	var transportErr *TransportError
	if errors.As(e.Err, &transportErr) {
		return transportErr.Target
	}
	return ""
}

// Status returns the HTTP status of the failed upload. Empty when no response was received.
func (e *BatchFailure) Status() string {
	var rejection *HttpRejectionError
	if errors.As(e.Err, &rejection) {
		return rejection.Status
	}
	var transportErr *TransportError
	if errors.As(e.Err, &transportErr) {
		return transportErr.Status
	}
	return ""
}
