// Package task defines the unit handed to the execution engine.
//
// A Class declares a kind of processing step: its parameters, its named
// input slots and its named output slots. A Task is a Class bound to
// parameter values and to producer slots of other tasks. Slots are looked
// up through the class declaration, never by scanning names.
//
// The package also implements the output directory convention: a failed
// task's directory D is renamed to D.failed and renamed back before the
// next attempt.
package task
