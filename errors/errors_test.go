package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestAppError_New_Recoverable(t *testing.T) {
	err := New(ErrCodeInvalidInput, "no entry point")
	if !err.Recoverable {
		t.Error("INVALID_INPUT should be recoverable")
	}
	err = New(ErrCodeMissingInput, "gone")
	if err.Recoverable {
		t.Error("MISSING_INPUT should not be recoverable")
	}
}

func TestAppError_InvalidInput_Success(t *testing.T) {
	err := InvalidInput("Parse", "unable to find an entry point")
	if err.Code != ErrCodeInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %s", err.Code)
	}
	if err.Component != "Parse" {
		t.Errorf("expected component Parse, got %q", err.Component)
	}
	if !err.Recoverable {
		t.Error("InvalidInput should be recoverable")
	}
}

func TestAppError_MissingInput_Details(t *testing.T) {
	err := MissingInput("txt", "Tokenize", "doc.txt")
	if err.Details["format"] != "txt" {
		t.Errorf("expected format=txt, got %v", err.Details["format"])
	}
	if err.Details["path"] != "doc.txt" {
		t.Errorf("expected path=doc.txt, got %v", err.Details["path"])
	}
	if !strings.Contains(err.Error(), "doc.txt") {
		t.Errorf("Error() should mention the path, got %q", err.Error())
	}
}

func TestAppError_Error_Format(t *testing.T) {
	err := InvalidInput("Parse", "unable to find an entry point").
		WithTrace([]string{"format conll does not match", "tried Tokenize"})
	s := err.Error()
	for _, want := range []string{"INVALID_INPUT", "Parse", "entry point", "format conll does not match; tried Tokenize"} {
		if !strings.Contains(s, want) {
			t.Errorf("expected %q in %q", want, s)
		}
	}
}

func TestAppError_WithTrace_Copies(t *testing.T) {
	trace := []string{"a"}
	err := InvalidInput("X", "r").WithTrace(trace)
	trace[0] = "changed"
	if err.Trace[0] != "a" {
		t.Error("expected trace to be copied")
	}
}

func TestAppError_WithCause_Chain(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := TaskFailed("Tokenize/ucto", cause)
	if !stderrors.Is(err, cause) {
		t.Error("expected cause to be reachable through Unwrap")
	}
	if !strings.Contains(err.Error(), "root cause") {
		t.Errorf("Error() should contain cause, got %q", err.Error())
	}
}

func TestAppError_WithDetails_Merge(t *testing.T) {
	err := NotFound("component", "Parse").WithDetails(map[string]any{"extra": "info"})
	if err.Details["extra"] != "info" {
		t.Error("expected extra=info in details")
	}
	if err.Details["name"] != "Parse" {
		t.Error("expected original details to be preserved")
	}
}

func TestAppError_WithDetail_NilMap(t *testing.T) {
	err := &AppError{}
	err.WithDetail("key", "value")
	if err.Details["key"] != "value" {
		t.Errorf("expected key=value, got %v", err.Details["key"])
	}
}

func TestEmptyDirectory_ListsDirs(t *testing.T) {
	err := EmptyDirectory([]string{"out/a", "out/b"})
	if !strings.Contains(err.Message, "out/a,out/b") {
		t.Errorf("unexpected message %q", err.Message)
	}
}

func TestIs_WalksChain(t *testing.T) {
	inner := AutoSetup("Tok", "no output slots")
	wrapped := fmt.Errorf("planning: %w", TaskFailed("t", inner))

	if !Is(wrapped, ErrCodeAutoSetup) {
		t.Error("expected AUTOSETUP_ERROR to be found in chain")
	}
	if !Is(wrapped, ErrCodeTaskFailed) {
		t.Error("expected TASK_FAILED to be found in chain")
	}
	if Is(wrapped, ErrCodeInvalidInput) {
		t.Error("did not expect INVALID_INPUT")
	}
	if Is(nil, ErrCodeInvalidInput) {
		t.Error("nil error matches nothing")
	}
}

func TestCodeOf(t *testing.T) {
	if got := CodeOf(Scheduling("too deep")); got != ErrCodeScheduling {
		t.Errorf("expected SCHEDULING_ERROR, got %s", got)
	}
	if got := CodeOf(fmt.Errorf("plain")); got != "" {
		t.Errorf("expected empty code, got %s", got)
	}
}

func TestAsAppError(t *testing.T) {
	appErr, ok := AsAppError(fmt.Errorf("wrap: %w", Frozen("register")))
	if !ok {
		t.Fatal("expected AppError")
	}
	if appErr.Code != ErrCodeFrozen {
		t.Errorf("expected REGISTRY_FROZEN, got %s", appErr.Code)
	}
	if _, ok := AsAppError(fmt.Errorf("plain")); ok {
		t.Error("plain error is not an AppError")
	}
}
