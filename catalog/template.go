package catalog

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/kbukum/nlpwire/logger"
	"github.com/kbukum/nlpwire/process"
	"github.com/kbukum/nlpwire/task"
)

// Placeholder kinds in an argument template:
//
//	{name}         parameter value
//	{in:slot}      path of the first producer bound to an input slot
//	{inputs:slot}  paths of all producers bound to an input slot, one word each
//	{out:slot}     path of an output slot
var placeholder = regexp.MustCompile(`\{(?:(in|inputs|out):)?([A-Za-z_][A-Za-z0-9_.\-]*)\}`)

// argTemplate is a parsed argument template.
type argTemplate struct {
	words []string
}

func parseTemplate(s string) (*argTemplate, error) {
	words, err := process.SplitTemplate(s)
	if err != nil {
		return nil, err
	}
	return &argTemplate{words: words}, nil
}

// check reports placeholders that refer to undeclared names.
func (at *argTemplate) check(c *task.Class) []string {
	var problems []string
	declared := make(map[string]bool)
	for _, name := range c.ParameterNames() {
		declared[name] = true
	}
	for _, w := range at.words {
		for _, m := range placeholder.FindAllStringSubmatch(w, -1) {
			kind, name := m[1], m[2]
			switch kind {
			case "":
				if !declared[name] {
					problems = append(problems, fmt.Sprintf("argument %s refers to undeclared parameter %s", w, name))
				}
			case "in", "inputs":
				if !c.HasInput(name) {
					problems = append(problems, fmt.Sprintf("argument %s refers to undeclared input %s", w, name))
				}
				if kind == "inputs" && w != m[0] {
					problems = append(problems, fmt.Sprintf("argument %s: {inputs:...} must be a whole word", w))
				}
			case "out":
				if _, ok := c.Output(name); !ok {
					problems = append(problems, fmt.Sprintf("argument %s refers to undeclared output %s", w, name))
				}
			}
		}
	}
	return problems
}

// expand substitutes placeholders for the task being run.
func (at *argTemplate) expand(rc *task.RunContext) ([]string, error) {
	out := make([]string, 0, len(at.words))
	for _, w := range at.words {
		if m := placeholder.FindStringSubmatch(w); m != nil && m[1] == "inputs" && m[0] == w {
			paths, err := rc.Task.InputTargets(m[2])
			if err != nil {
				return nil, err
			}
			out = append(out, paths...)
			continue
		}
		var firstErr error
		expanded := placeholder.ReplaceAllStringFunc(w, func(ph string) string {
			m := placeholder.FindStringSubmatch(ph)
			var (
				v   string
				err error
			)
			switch m[1] {
			case "":
				v = rc.Task.Params.String(m[2])
			case "in":
				v, err = rc.Input(m[2])
			case "out":
				v, err = rc.Output(m[2])
			}
			if err != nil && firstErr == nil {
				firstErr = err
			}
			return v
		})
		if firstErr != nil {
			return nil, firstErr
		}
		out = append(out, expanded)
	}
	return out, nil
}

// toolRun returns the run function of a YAML-declared task class.
func toolRun(spec TaskSpec, at *argTemplate, adapter *process.Adapter) task.RunFunc {
	return func(ctx context.Context, rc *task.RunContext) error {
		positional, err := at.expand(rc)
		if err != nil {
			return err
		}
		cmd := process.Build(spec.Executable, positional, process.OptionsFrom(rc.Task.Params, spec.Options...), spec.Style)
		if spec.Stdin != "" {
			if cmd.StdinFrom, err = rc.Input(spec.Stdin); err != nil {
				return err
			}
		}
		if spec.Stdout != "" {
			if cmd.StdoutTo, err = rc.Output(spec.Stdout); err != nil {
				return err
			}
		}

		res, err := adapter.Run(ctx, cmd, spec.IgnoreFailure)
		if err != nil {
			if res != nil && len(res.Stderr) > 0 {
				return fmt.Errorf("%w: %s", err, strings.TrimSpace(string(res.Stderr)))
			}
			return err
		}
		if res.Failed() {
			rc.Log.Warn("Tool failed, continuing", map[string]interface{}{
				"command":        process.CommandLine(cmd),
				"exit_code":      res.ExitCode,
				logger.FieldTask: rc.Task.ID,
			})
		}
		return nil
	}
}
