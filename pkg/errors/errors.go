// Copyright (c) 2026, Tidevault Authors.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package errors

import "fmt"

// ErrorCode classifies a pipeline failure by the phase that produced it.
// The code surfaces in the process-exit diagnostic so an operator can tell a
// fetch problem from a git problem without reading a stack trace.
type ErrorCode string

const (
	// ErrCodeTransport indicates the telemetry fetch failed (connection
	// error or non-success HTTP status). No archive state was touched.
	ErrCodeTransport ErrorCode = "TRANSPORT"
	// ErrCodeFilesystem indicates a snapshot, index, or latest-artifact
	// write failed. The prior committed archive remains last-known-good.
	ErrCodeFilesystem ErrorCode = "FILESYSTEM"
	// ErrCodeIndex indicates an index document could not be produced.
	ErrCodeIndex ErrorCode = "INDEX"
	// ErrCodeVersionControl indicates a git sync, commit, or push failed.
	ErrCodeVersionControl ErrorCode = "VERSION_CONTROL"
	// ErrCodeConfig indicates invalid vessel or archiver configuration.
	ErrCodeConfig ErrorCode = "CONFIG"
	// ErrCodeTimeout indicates an operation exceeded its time limit.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
)

// StructuredError provides structured error information for observability.
// It includes an error code for programmatic handling, a human-readable
// message, the underlying cause, and optional context for debugging.
type StructuredError struct {
	Code    ErrorCode
	Message string
	Cause   error
	Context map[string]any
}

// Error implements the error interface.
func (e *StructuredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is and errors.As support.
func (e *StructuredError) Unwrap() error {
	return e.Cause
}

// New creates a new StructuredError with the given code and message.
func New(code ErrorCode, message string) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a phase code and message.
func Wrap(code ErrorCode, message string, cause error) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WrapWithContext wraps an error with additional context information.
func WrapWithContext(code ErrorCode, message string, cause error, context map[string]any) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
		Cause:   cause,
		Context: context,
	}
}

// CodeOf returns the ErrorCode carried by err or any error it wraps, or the
// empty code when none is present.
func CodeOf(err error) ErrorCode {
	for err != nil {
		if se, ok := err.(*StructuredError); ok {
			return se.Code
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return ""
		}
		err = u.Unwrap()
	}
	return ""
}
