// Package process runs the external tools behind task classes.
//
// Tools are executed directly (no shell). Options are rendered from
// typed parameters following the conventions NLP command-line tools
// expect; CommandLine renders the same invocation as a shell-quoted
// string for logs.
package process
