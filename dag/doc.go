// Package dag executes a graph of nodes in dependency order.
//
// BuildLevels groups nodes with Kahn's algorithm; nodes on the same level
// are independent and the Engine runs them concurrently, bounded by
// MaxParallel. A node whose upstream failed or was skipped is skipped.
// WithLogging and WithTracing wrap nodes without changing their behavior.
package dag
