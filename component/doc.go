// Package component holds the declarations of pipeline components and the
// registry they are looked up in.
//
// A component declares its parameters and an ordered list of acceptance
// groups. Each group is an ordered tuple of items: a raw input format or a
// reference to another (upstream) component. The resolver tries the groups
// in order; the first one that fully resolves wins.
//
// The Registry has an initialization phase. Formats, task classes and
// components are registered, cross-component extensions (Accept,
// InheritParameters) are applied, and Freeze checks every reference.
// After Freeze the registry is read-only and safe for concurrent use.
//
// # Reserved parameters
//
// Every component implicitly declares its input parameter (inputfile by
// default), outputdir, replaceinputdir, startcomponent and inputslot.
package component
