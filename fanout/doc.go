// Package fanout plans one independent component instance per input.
//
// Inputs come from an explicit list (FromList) or from the entries of a
// directory matching a glob pattern (FromDir, sorted by name). Plan
// resolves every input into the same task graph under its own scope,
// "Component[i]", with a private copy of the parameter bundle.
//
//	b, err := fanout.FromDir(fs, "Frog", "corpus", "*.txt", bundle)
//	plan, err := fanout.Plan(res, b)
package fanout
