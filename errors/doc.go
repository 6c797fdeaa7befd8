// Package errors provides the error taxonomy used while planning and running
// component chains. Every failure is an AppError carrying a machine-readable
// code, the component it originated from and, for resolution failures, the
// trace of alternatives that were rejected on the way.
package errors
