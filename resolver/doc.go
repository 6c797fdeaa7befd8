// Package resolver turns a component name and a starting input into a
// wired task graph.
//
// Resolution is depth-first. For a component instance, each acceptance
// group is tried in order; a group either matches, yielding a feed of
// producer slots keyed by format id, or is rejected with a reason that is
// kept in the trace. Referenced components are instantiated with
// propagated parameters and resolved recursively. The first matching group
// wins, and tasks created by rejected groups are rolled back.
//
// Only InvalidInput is a rejection. Every other error (MissingInput,
// AutoSetupError, SchedulingError) ends the whole resolution.
package resolver
