// Package wmi is a typed client for the Windows Management Instrumentation
// service. It issues WQL queries and class enumerations over a connected
// session, iterates the results one record at a time, and decodes the
// dynamically typed property values into concrete Go scalars.
//
// This file defines the failure taxonomy. Use errors.Is/errors.As for typed
// assertions rather than string matching.
package wmi

import (
	"errors"
	"fmt"
)

// Sentinel errors for failure classification.
var (
	// ErrTimeout indicates the service did not produce a record within the
	// bounded wait of a cursor advance. Retryable.
	ErrTimeout = errors.New("wmi timeout")

	// ErrTypeMismatch indicates a typed extraction was requested for a
	// variant whose tag does not support it.
	ErrTypeMismatch = errors.New("wrong value type requested")
)

// ComError is a protocol-level failure: an operation the WMI service
// rejected with an HRESULT. The message carries the resolved human-readable
// reason plus the raw hex code.
type ComError struct {
	// Op describes the failed operation, e.g. `Failed to execute query "..."`.
	Op string
	// Status is the raw HRESULT returned by the service.
	Status HRESULT
}

func (e *ComError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", e.Op, resolveStatus(e.Status), e.Status)
}

// TypeError is a decode-level failure: a typed extraction was requested for
// a tag outside the accepted coercion table. It names the raw tag value.
type TypeError struct {
	// Tag is the variant's raw type tag.
	Tag VarType
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("wrong value type requested: %d", uint16(e.Tag))
}

// Is reports a match against ErrTypeMismatch.
func (e *TypeError) Is(target error) bool {
	return target == ErrTypeMismatch
}

// TimeoutError is raised only by Result.Next when the bounded wait expires
// before the service returns a record. It is a transient condition; the
// cursor is left unchanged and the advance may be retried.
type TimeoutError struct {
	// Op describes the operation that timed out.
	Op string
}

func (e *TimeoutError) Error() string {
	return e.Op
}

// Is reports a match against ErrTimeout.
func (e *TimeoutError) Is(target error) bool {
	return target == ErrTimeout
}

// Timeout marks the error as a timeout for net.Error-style inspection.
func (e *TimeoutError) Timeout() bool {
	return true
}
