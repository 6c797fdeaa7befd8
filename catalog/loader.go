package catalog

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
	"go.yaml.in/yaml/v3"

	"github.com/kbukum/nlpwire/component"
	"github.com/kbukum/nlpwire/errors"
	"github.com/kbukum/nlpwire/logger"
	"github.com/kbukum/nlpwire/process"
	"github.com/kbukum/nlpwire/task"
)

// Option configures a Loader.
type Option func(*Loader)

// WithAdapter sets the adapter YAML task classes run their tools with.
func WithAdapter(a *process.Adapter) Option {
	return func(l *Loader) { l.adapter = a }
}

// WithLogger sets the loader's logger.
func WithLogger(log *logger.Logger) Option {
	return func(l *Loader) { l.log = log }
}

// Loader reads catalog files.
type Loader struct {
	fs      afero.Fs
	adapter *process.Adapter
	log     *logger.Logger
}

// NewLoader creates a loader reading from fs. A nil fs means the OS
// filesystem.
func NewLoader(fs afero.Fs, opts ...Option) *Loader {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	l := &Loader{fs: fs, log: logger.GetGlobalLogger()}
	for _, opt := range opts {
		opt(l)
	}
	if l.adapter == nil {
		l.adapter = process.NewAdapter(process.Config{}, l.log)
	}
	return l
}

// Catalog summarizes what a Load registered.
type Catalog struct {
	Files      []string
	Formats    []string
	Tasks      []string
	Components []string
}

// Load reads the given files, and the YAML files of the given
// directories, with their includes, and registers their declarations:
// all formats first, then task classes, then components, then injected
// acceptances and inherited parameters.
func (l *Loader) Load(reg *component.Registry, paths ...string) (*Catalog, error) {
	var files []*File
	stack := make(map[string]bool)    // current include path (cycle detection)
	resolved := make(map[string]bool) // already loaded (dedup)

	for _, p := range paths {
		expanded, err := l.expand(p)
		if err != nil {
			return nil, err
		}
		for _, path := range expanded {
			if err := l.collect(path, stack, resolved, &files); err != nil {
				return nil, err
			}
		}
	}

	cat := &Catalog{}
	for _, f := range files {
		cat.Files = append(cat.Files, f.path)
		for _, d := range f.Formats {
			if err := reg.RegisterFormat(d); err != nil {
				return nil, inFile(f, err)
			}
			cat.Formats = append(cat.Formats, d.ID)
		}
	}
	for _, f := range files {
		for _, spec := range f.Tasks {
			c, err := l.taskClass(spec)
			if err != nil {
				return nil, inFile(f, err)
			}
			if err := reg.RegisterTask(c); err != nil {
				return nil, inFile(f, err)
			}
			cat.Tasks = append(cat.Tasks, c.Name)
		}
	}
	for _, f := range files {
		for _, spec := range f.Components {
			d, err := descriptor(reg, spec)
			if err != nil {
				return nil, inFile(f, err)
			}
			if err := reg.Register(d); err != nil {
				return nil, inFile(f, err)
			}
			cat.Components = append(cat.Components, d.Name)
		}
	}
	for _, f := range files {
		for _, spec := range f.Components {
			if len(spec.Accept) > 0 {
				if err := reg.Accept(spec.Name, spec.Accept...); err != nil {
					return nil, inFile(f, err)
				}
			}
			if len(spec.Inherit) > 0 {
				if err := reg.InheritParameters(spec.Name, spec.Inherit...); err != nil {
					return nil, inFile(f, err)
				}
			}
		}
	}

	l.log.Info("Catalog loaded", map[string]interface{}{
		"files":      len(cat.Files),
		"formats":    len(cat.Formats),
		"tasks":      len(cat.Tasks),
		"components": len(cat.Components),
	})
	return cat, nil
}

// expand turns a directory into its YAML files, sorted.
func (l *Loader) expand(path string) ([]string, error) {
	isDir, err := afero.IsDir(l.fs, path)
	if err != nil {
		return nil, errors.NotFound("catalog", path).WithCause(err)
	}
	if !isDir {
		return []string{filepath.Clean(path)}, nil
	}
	var out []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := afero.Glob(l.fs, filepath.Join(path, pattern))
		if err != nil {
			return nil, err
		}
		out = append(out, matches...)
	}
	sort.Strings(out)
	return out, nil
}

// collect appends path's includes, then path itself, to files.
func (l *Loader) collect(path string, stack, resolved map[string]bool, files *[]*File) error {
	if stack[path] {
		return errors.InvalidDeclaration(path, "circular include detected for catalog "+path)
	}
	if resolved[path] {
		return nil // already loaded through another include (diamond)
	}
	stack[path] = true
	defer delete(stack, path)

	f, err := l.parse(path)
	if err != nil {
		return err
	}
	for _, inc := range f.Includes {
		if !filepath.IsAbs(inc) {
			inc = filepath.Join(filepath.Dir(path), inc)
		}
		if err := l.collect(filepath.Clean(inc), stack, resolved, files); err != nil {
			return err
		}
	}

	resolved[path] = true
	*files = append(*files, f)
	return nil
}

func (l *Loader) parse(path string) (*File, error) {
	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return nil, errors.NotFound("catalog", path).WithCause(err)
	}
	f := &File{path: path}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(f); err != nil && !stderrors.Is(err, io.EOF) {
		return nil, errors.InvalidDeclaration(path, fmt.Sprintf("parsing %s: %v", path, err)).WithCause(err)
	}
	return f, nil
}

// taskClass builds the class of a tool-backed task.
func (l *Loader) taskClass(spec TaskSpec) (*task.Class, error) {
	if strings.TrimSpace(spec.Executable) == "" {
		return nil, errors.InvalidDeclaration(spec.Name, "task "+spec.Name+" has no executable")
	}
	c := &task.Class{
		Name:       spec.Name,
		Parameters: spec.Parameters,
		Inputs:     spec.Inputs,
		Outputs:    spec.Outputs,
		Executable: spec.Executable,
	}
	at, err := parseTemplate(spec.Args)
	if err != nil {
		return nil, errors.InvalidDeclaration(spec.Name, "args: "+err.Error())
	}
	problems := at.check(c)
	declared := make(map[string]bool)
	for _, name := range c.ParameterNames() {
		declared[name] = true
	}
	for _, o := range spec.Options {
		if !declared[o] {
			problems = append(problems, "option "+o+" is not a declared parameter")
		}
	}
	if spec.Stdin != "" && !c.HasInput(spec.Stdin) {
		problems = append(problems, "stdin refers to undeclared input "+spec.Stdin)
	}
	if _, ok := c.Output(spec.Stdout); spec.Stdout != "" && !ok {
		problems = append(problems, "stdout refers to undeclared output "+spec.Stdout)
	}
	if len(problems) > 0 {
		return nil, errors.InvalidDeclaration(spec.Name, strings.Join(problems, "; "))
	}
	c.Run = toolRun(spec, at, l.adapter)
	return c, nil
}

// descriptor builds a component from its spec; autosetup names are looked
// up among the registered task classes.
func descriptor(reg *component.Registry, spec ComponentSpec) (*component.Descriptor, error) {
	d := &component.Descriptor{
		Name:           spec.Name,
		Description:    spec.Description,
		InputParameter: spec.InputParameter,
		Parameters:     spec.Parameters,
	}
	for gi, group := range spec.Accepts {
		g := make(component.Group, 0, len(group))
		for _, it := range group {
			item, err := it.Item()
			if err != nil {
				return nil, errors.InvalidDeclaration(spec.Name, fmt.Sprintf("accepts group %d: %v", gi+1, err))
			}
			g = append(g, item)
		}
		d.Accepts = append(d.Accepts, g)
	}
	for _, name := range spec.AutoSetup {
		c, err := reg.Task(name)
		if err != nil {
			return nil, err
		}
		d.AutoSetup = append(d.AutoSetup, c)
	}
	return d, nil
}

// inFile adds the catalog path to err.
func inFile(f *File, err error) error {
	if appErr, ok := errors.AsAppError(err); ok {
		return appErr.WithDetail("catalog", f.path)
	}
	return fmt.Errorf("%s: %w", f.path, err)
}
