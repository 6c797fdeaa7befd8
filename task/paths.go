package task

import (
	"path/filepath"
	"strings"

	"github.com/kbukum/nlpwire/errors"
)

// ReplaceExtension swaps a trailing ".strip" for ".add". Either may be
// empty; leading dots are ignored.
func ReplaceExtension(path, strip, add string) string {
	strip = strings.TrimPrefix(strip, ".")
	add = strings.TrimPrefix(add, ".")
	if strip != "" && strings.HasSuffix(path, "."+strip) {
		path = path[:len(path)-len(strip)-1]
	}
	if add != "" {
		path += "." + add
	}
	return path
}

// OutputFromInput derives an output path from the artifact bound to input.
// When the task's outputdir parameter is set (and not "."), the file is
// placed there under its base name; a replaceinputdir prefix is cut from
// the input first.
func OutputFromInput(t *Task, input, strip, add string) (string, error) {
	in, err := t.InputTarget(input)
	if err != nil {
		return "", err
	}
	outputdir := t.Params.String(ParamOutputDir)
	if outputdir == "" || outputdir == "." {
		return ReplaceExtension(in, strip, add), nil
	}
	if prefix := t.Params.String(ParamReplaceInputDir); prefix != "" {
		in = strings.TrimPrefix(in, prefix)
	}
	return filepath.Join(outputdir, filepath.Base(ReplaceExtension(in, strip, add))), nil
}

func errNoSlot(s *OutputSlot) error {
	return errors.NotFound("output slot", s.String())
}
