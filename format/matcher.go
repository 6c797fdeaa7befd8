package format

import (
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/afero"

	"github.com/kbukum/nlpwire/errors"
)

// Resolved is the outcome of matching a path against a Descriptor.
// Valid is false when the descriptor does not apply; that is not an error.
type Resolved struct {
	FormatID  string
	Basename  string
	Extension string
	// Path is the artifact that was checked for existence.
	Path      string
	Directory bool
	Valid     bool
}

// String renders the resolved artifact path, or "" when invalid.
func (r Resolved) String() string {
	if !r.Valid {
		return ""
	}
	return r.Path
}

// Matcher matches paths against descriptors on a backing filesystem.
type Matcher struct {
	fs afero.Fs
}

// NewMatcher returns a Matcher that checks artifacts on fs.
// A nil fs means the operating system filesystem.
func NewMatcher(fs afero.Fs) *Matcher {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Matcher{fs: fs}
}

// Match checks path against d. Extensions are compared case-sensitively
// as suffixes, in declaration order. When force is set and no suffix
// matches, the first declared extension is assumed and the path is used
// as given. A syntactic match whose artifact is absent (or of the wrong
// kind) fails with MissingInput; callers attach the component name.
func (m *Matcher) Match(path string, d *Descriptor, force bool) (Resolved, error) {
	res := Resolved{FormatID: d.ID, Directory: d.Directory}
	if path == "" || len(d.Extensions) == 0 {
		return res, nil
	}

	matched := false
	for _, ext := range d.Extensions {
		ext = strings.TrimPrefix(ext, ".")
		if strings.HasSuffix(path, "."+ext) && len(path) > len(ext)+1 {
			res.Basename = path[:len(path)-len(ext)-1]
			res.Extension = ext
			res.Path = path
			matched = true
			break
		}
	}
	if !matched {
		if !force {
			return res, nil
		}
		res.Extension = strings.TrimPrefix(d.Extensions[0], ".")
		res.Basename = strings.TrimSuffix(path, filepath.Ext(path))
		res.Path = path
	}

	if err := m.check(res.Path, d.Directory); err != nil {
		return Resolved{FormatID: d.ID, Directory: d.Directory}, errors.MissingInput(d.ID, "", res.Path).WithCause(err)
	}
	res.Valid = true
	return res, nil
}

// Exists reports whether path is present on the backing filesystem.
func (m *Matcher) Exists(path string) bool {
	ok, err := afero.Exists(m.fs, path)
	return err == nil && ok
}

func (m *Matcher) check(path string, directory bool) error {
	info, err := m.fs.Stat(path)
	if err != nil {
		return err
	}
	if directory && !info.IsDir() {
		return &os.PathError{Op: "match", Path: path, Err: syscall.ENOTDIR}
	}
	if !directory && info.IsDir() {
		return &os.PathError{Op: "match", Path: path, Err: syscall.EISDIR}
	}
	return nil
}

