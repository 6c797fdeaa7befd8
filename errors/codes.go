package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Resolution errors
const (
	// ErrCodeInvalidInput indicates no acceptance group could handle the input.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeMissingInput indicates an extension matched but the artifact is absent.
	ErrCodeMissingInput ErrorCode = "MISSING_INPUT"
	// ErrCodeAutoSetup indicates auto-wiring preconditions were violated.
	ErrCodeAutoSetup ErrorCode = "AUTOSETUP_ERROR"
	// ErrCodeScheduling indicates resolution or scheduling could not complete.
	ErrCodeScheduling ErrorCode = "SCHEDULING_ERROR"
)

// Execution errors
const (
	// ErrCodeEmptyDirectory indicates a task reported success with an empty output directory.
	ErrCodeEmptyDirectory ErrorCode = "EMPTY_DIRECTORY"
	// ErrCodeTaskFailed indicates a task run returned an error.
	ErrCodeTaskFailed ErrorCode = "TASK_FAILED"
)

// Declaration errors
const (
	// ErrCodeInvalidDeclaration indicates a malformed format, task or component declaration.
	ErrCodeInvalidDeclaration ErrorCode = "INVALID_DECLARATION"
	// ErrCodeInvalidParameter indicates a parameter value could not be decoded or coerced.
	ErrCodeInvalidParameter ErrorCode = "INVALID_PARAMETER"
	// ErrCodeNotFound indicates a named component, format or task class is unknown.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeAlreadyExists indicates a name was registered twice.
	ErrCodeAlreadyExists ErrorCode = "ALREADY_EXISTS"
	// ErrCodeFrozen indicates the registry was mutated after its initialization phase.
	ErrCodeFrozen ErrorCode = "REGISTRY_FROZEN"
)

// Internal errors
const (
	// ErrCodeInternal indicates an unexpected failure.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var recoverableCodes = map[ErrorCode]bool{
	ErrCodeInvalidInput: true,
}

// IsRecoverableCode reports whether the chain resolver may swallow an error
// with this code and try the next alternative.
func IsRecoverableCode(code ErrorCode) bool {
	return recoverableCodes[code]
}
