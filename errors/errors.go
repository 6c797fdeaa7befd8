package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// AppError is the unified error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Recoverable indicates the resolver may backtrack past this error.
	Recoverable bool `json:"recoverable"`
	// Component names the component the error originated from, if any.
	Component string `json:"component,omitempty"`
	// Trace lists why each candidate alternative was rejected.
	Trace []string `json:"trace,omitempty"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Code))
	b.WriteString(": ")
	if e.Component != "" {
		b.WriteString(e.Component)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	if len(e.Trace) > 0 {
		b.WriteString(" [")
		b.WriteString(strings.Join(e.Trace, "; "))
		b.WriteString("]")
	}
	if e.Cause != nil {
		fmt.Fprintf(&b, " (cause: %v)", e.Cause)
	}
	return b.String()
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithComponent records the originating component and returns the receiver.
func (e *AppError) WithComponent(name string) *AppError {
	e.Component = name
	return e
}

// WithTrace replaces the rejection trace and returns the receiver.
func (e *AppError) WithTrace(trace []string) *AppError {
	e.Trace = append([]string(nil), trace...)
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic recoverable detection.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:        code,
		Message:     message,
		Recoverable: IsRecoverableCode(code),
	}
}

// Newf is New with a format string.
func Newf(code ErrorCode, format string, args ...any) *AppError {
	return New(code, fmt.Sprintf(format, args...))
}

// --- Resolution errors ---

// InvalidInput creates an error for an input no acceptance group could handle.
func InvalidInput(component, reason string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidInput, Message: reason,
		Recoverable: true, Component: component,
	}
}

// MissingInput creates an error for a matched but absent artifact.
func MissingInput(formatID, component, path string) *AppError {
	return &AppError{
		Code:      ErrCodeMissingInput,
		Message:   fmt.Sprintf("specified input for format %s does not exist: %s", formatID, path),
		Component: component,
		Details:   map[string]any{"format": formatID, "path": path},
	}
}

// AutoSetup creates an error for violated auto-wiring preconditions.
func AutoSetup(component, reason string) *AppError {
	return &AppError{Code: ErrCodeAutoSetup, Message: reason, Component: component}
}

// Scheduling creates an error for a resolution or scheduling failure.
func Scheduling(reason string) *AppError {
	return &AppError{Code: ErrCodeScheduling, Message: reason}
}

// --- Execution errors ---

// EmptyDirectory creates an error for output directories left empty after a run.
func EmptyDirectory(dirs []string) *AppError {
	return &AppError{
		Code:    ErrCodeEmptyDirectory,
		Message: fmt.Sprintf("target directory/directories %s is/are empty, expected contents", strings.Join(dirs, ",")),
		Details: map[string]any{"dirs": append([]string(nil), dirs...)},
	}
}

// TaskFailed wraps a task run failure.
func TaskFailed(taskID string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeTaskFailed, Message: fmt.Sprintf("task %s failed", taskID),
		Details: map[string]any{"task": taskID}, Cause: cause,
	}
}

// --- Declaration errors ---

// InvalidDeclaration creates an error for a malformed declaration.
func InvalidDeclaration(name, reason string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidDeclaration, Message: reason,
		Details: map[string]any{"name": name},
	}
}

// InvalidParameter creates an error for a parameter that cannot be decoded or coerced.
func InvalidParameter(name, reason string) *AppError {
	details := make(map[string]any)
	if name != "" {
		details["parameter"] = name
	}
	return &AppError{
		Code: ErrCodeInvalidParameter, Message: fmt.Sprintf("invalid parameter: %s", reason),
		Details: details,
	}
}

// NotFound creates an error for an unknown name.
func NotFound(kind, name string) *AppError {
	return &AppError{
		Code: ErrCodeNotFound, Message: fmt.Sprintf("no such %s: %s", kind, name),
		Details: map[string]any{"kind": kind, "name": name},
	}
}

// AlreadyExists creates an error for a duplicate registration.
func AlreadyExists(kind, name string) *AppError {
	return &AppError{
		Code: ErrCodeAlreadyExists, Message: fmt.Sprintf("%s %s already registered", kind, name),
		Details: map[string]any{"kind": kind, "name": name},
	}
}

// Frozen creates an error for a registry mutation after initialization.
func Frozen(op string) *AppError {
	return &AppError{
		Code: ErrCodeFrozen, Message: fmt.Sprintf("registry is frozen, cannot %s", op),
	}
}

// Internal creates an error for an unexpected failure.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "an unexpected error occurred", Cause: cause,
	}
}

// --- Inspection ---

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// CodeOf returns the code of the first AppError in err's chain, or "".
func CodeOf(err error) ErrorCode {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return ""
}

// Is reports whether err's chain contains an AppError with the given code.
func Is(err error, code ErrorCode) bool {
	for e := err; e != nil; e = stderrors.Unwrap(e) {
		if appErr, ok := e.(*AppError); ok && appErr.Code == code {
			return true
		}
	}
	return false
}
