package logger

import (
	"time"
)

// Standard field key constants for structured logging.
const (
	FieldComponent = "component"
	FieldTask      = "task"
	FieldFormat    = "format"
	FieldInput     = "input"
	FieldOutput    = "output"
	FieldDepth     = "depth"
	FieldRunID     = "run_id"
	FieldScheduler = "scheduler"
	FieldStatus    = "status"
	FieldError     = "error"
	FieldDuration  = "duration_ms"
)

// Fields builds a map[string]interface{} from alternating key-value pairs.
//
//	logger.Info("done", logger.Fields("task", id, "status", "completed"))
func Fields(kvs ...interface{}) map[string]interface{} {
	m := make(map[string]interface{}, len(kvs)/2)
	for i := 0; i < len(kvs)-1; i += 2 {
		if key, ok := kvs[i].(string); ok {
			m[key] = kvs[i+1]
		}
	}
	return m
}

// ErrorFields creates fields for a task that failed.
func ErrorFields(taskID string, err error) map[string]interface{} {
	return map[string]interface{}{
		FieldTask:  taskID,
		FieldError: err.Error(),
	}
}

// DurationFields creates fields for a timed task.
func DurationFields(taskID string, d time.Duration) map[string]interface{} {
	return map[string]interface{}{
		FieldTask:     taskID,
		FieldDuration: d.Milliseconds(),
	}
}
