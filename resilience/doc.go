// Package resilience keeps flaky collaborators from failing a run.
//
// Retry re-attempts an operation with exponential backoff; it is used for
// external tools and for status updates sent to a remote scheduler.
// Breaker stops talking to a remote scheduler that keeps failing, so a
// dead endpoint costs a few failed calls rather than one per task.
package resilience
