// Package params holds the typed configuration values bound to components
// and tasks.
//
// Values are constructed once at the boundary (CLI flags, JSON bundles,
// YAML defaults) and coerced to the kind a declaration asks for. Inside the
// resolver they are only copied, never re-parsed: Propagate is a pure
// function of the parent's values, the child's declared names and the
// explicit overrides.
package params
