package process

import (
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/kbukum/nlpwire/params"
)

// Style controls how options are rendered.
type Style struct {
	// NoSpace glues values to their flag: -xvalue.
	NoSpace bool `yaml:"nospace"`
	// SingleHyphen uses -name even for multi-letter names.
	SingleHyphen bool `yaml:"singlehyphen"`
	// AssignOp renders long options as --name=value.
	AssignOp bool `yaml:"assignop"`
	// OptionsLast puts options after the positional arguments.
	OptionsLast bool `yaml:"options_last"`
}

// Option is a named value to pass on the command line.
type Option struct {
	Name  string
	Value params.Value
}

// OptionsFrom picks the named values, in the given order.
func OptionsFrom(vs params.Values, names ...string) []Option {
	opts := make([]Option, 0, len(names))
	for _, name := range names {
		if v, ok := vs[name]; ok {
			opts = append(opts, Option{Name: name, Value: v})
		}
	}
	return opts
}

// FormatOptions renders options as argument tokens. Unset, false and
// empty values are skipped, true booleans become bare flags. Names
// starting with "__" are internal and skipped; "a__b" becomes "a-b" and a
// leading "_" is dropped. Single-letter names get one hyphen.
func FormatOptions(opts []Option, style Style) []string {
	var out []string
	for _, o := range opts {
		if !o.Value.IsSet() || strings.HasPrefix(o.Name, "__") {
			continue
		}
		if o.Value.Kind() == params.KindBool && !o.Value.Bool() {
			continue
		}
		value := o.Value.String()
		if o.Value.Kind() != params.KindBool && value == "" {
			continue
		}

		key := strings.ReplaceAll(o.Name, "__", "-")
		key = strings.TrimPrefix(key, "_")
		if key == "" {
			continue
		}
		delimiter := " "
		if style.NoSpace {
			delimiter = ""
		}
		if len(key) == 1 || style.SingleHyphen {
			key = "-" + key
		} else {
			key = "--" + key
			if style.AssignOp {
				delimiter = "="
			}
		}

		switch {
		case o.Value.Kind() == params.KindBool:
			out = append(out, key)
		case delimiter == " ":
			out = append(out, key, value)
		default:
			out = append(out, key+delimiter+value)
		}
	}
	return out
}

// Build assembles the command for an executable, positional arguments and
// options. Java archives are run through "java -jar".
func Build(executable string, positional []string, opts []Option, style Style) Command {
	cmd := Command{Binary: executable}
	if strings.HasSuffix(executable, ".jar") {
		cmd.Binary = "java"
		cmd.Args = append(cmd.Args, "-jar", executable)
	}
	flags := FormatOptions(opts, style)
	if style.OptionsLast {
		cmd.Args = append(cmd.Args, positional...)
		cmd.Args = append(cmd.Args, flags...)
	} else {
		cmd.Args = append(cmd.Args, flags...)
		cmd.Args = append(cmd.Args, positional...)
	}
	return cmd
}

// ShellQuote quotes s for a POSIX shell.
func ShellQuote(s string) string {
	return shellquote.Join(s)
}

// CommandLine renders cmd as a shell command line.
func CommandLine(cmd Command) string {
	line := shellquote.Join(append([]string{cmd.Binary}, cmd.Args...)...)
	if cmd.StdinFrom != "" && cmd.Stdin == nil {
		line += " < " + ShellQuote(cmd.StdinFrom)
	}
	if cmd.StdoutTo != "" {
		line += " > " + ShellQuote(cmd.StdoutTo)
	}
	if cmd.StderrTo != "" {
		line += " 2> " + ShellQuote(cmd.StderrTo)
	}
	return line
}

// SplitTemplate splits a shell-style argument template into words.
func SplitTemplate(s string) ([]string, error) {
	return shellquote.Split(s)
}
