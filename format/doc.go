// Package format matches raw input paths against declared input formats.
//
// A Descriptor names a format and the file extensions (or directory
// suffixes) it is recognised by. The Matcher checks a path against a
// descriptor, normalises it into a basename and extension, and verifies
// that the artifact exists on the backing filesystem.
package format
