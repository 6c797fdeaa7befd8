package task

import (
	"os"
	"strings"

	"github.com/spf13/afero"

	"github.com/kbukum/nlpwire/errors"
)

// Fs is the backing filesystem tasks write to.
type Fs = afero.Fs

// FailedSuffix marks the output directory of a failed attempt.
const FailedSuffix = ".failed"

// PrepareOutputDir readies d for a new attempt: an existing d is reused,
// a d.failed left by an earlier attempt is renamed back, otherwise d is
// created.
func PrepareOutputDir(fs Fs, d string) error {
	if ok, err := afero.DirExists(fs, d); err != nil {
		return err
	} else if ok {
		return nil
	}
	if ok, err := afero.DirExists(fs, d+FailedSuffix); err != nil {
		return err
	} else if ok {
		return fs.Rename(d+FailedSuffix, d)
	}
	return fs.MkdirAll(d, 0o755)
}

// PrepareOutputDir prepares d and records it as one of the task's output
// directories.
func (t *Task) PrepareOutputDir(fs Fs, d string) error {
	if err := PrepareOutputDir(fs, d); err != nil {
		return err
	}
	for _, known := range t.OutputDirs {
		if known == d {
			return nil
		}
	}
	t.OutputDirs = append(t.OutputDirs, d)
	return nil
}

// MarkFailed renames d to d.failed. Marking twice leaves a single suffix,
// and a stale d.failed is replaced.
func MarkFailed(fs Fs, d string) error {
	d = strings.TrimSuffix(d, FailedSuffix)
	if _, err := fs.Stat(d); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if ok, _ := afero.Exists(fs, d+FailedSuffix); ok {
		if err := fs.RemoveAll(d + FailedSuffix); err != nil {
			return err
		}
	}
	return fs.Rename(d, d+FailedSuffix)
}

// MarkFailed marks every recorded output directory of the task failed.
func (t *Task) MarkFailed(fs Fs) error {
	var first error
	for _, d := range t.OutputDirs {
		if err := MarkFailed(fs, d); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// VerifyOutputDirs checks that each existing directory has content.
// Empty ones are marked failed and reported together as EmptyDirectory.
func VerifyOutputDirs(fs Fs, dirs []string) error {
	var empty []string
	for _, d := range dirs {
		ok, err := afero.DirExists(fs, d)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		isEmpty, err := afero.IsEmpty(fs, d)
		if err != nil {
			return err
		}
		if !isEmpty {
			continue
		}
		if err := MarkFailed(fs, d); err != nil {
			return err
		}
		empty = append(empty, d)
	}
	if len(empty) > 0 {
		return errors.EmptyDirectory(empty)
	}
	return nil
}
