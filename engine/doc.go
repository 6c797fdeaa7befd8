// Package engine executes a resolved plan.
//
// A Runner turns the plan's task graph into dag nodes and runs them in
// dependency order. Each task is skipped when its outputs already exist;
// otherwise its output directories are prepared, it runs, and directories
// of a failed or empty-handed run are renamed to <dir>.failed so the next
// run starts over.
//
// Before running, the Runner probes the configured scheduler endpoint.
// When it answers, every task state transition is reported to it; when it
// does not, or the local scheduler was requested, the run is local only.
// Either way tasks execute in this process.
package engine
