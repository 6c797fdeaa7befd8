package catalog

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"

	"github.com/kbukum/nlpwire/component"
	"github.com/kbukum/nlpwire/engine"
	"github.com/kbukum/nlpwire/errors"
	"github.com/kbukum/nlpwire/logger"
	"github.com/kbukum/nlpwire/params"
	"github.com/kbukum/nlpwire/resolver"
	"github.com/kbukum/nlpwire/task"
)

const baseYAML = `
formats:
  - id: txt
    extensions: [txt]
  - id: conll
    extensions: [.conll]
`

const toolsYAML = `
includes: [base.yml]
tasks:
  - name: Tokenizer
    executable: ucto
    parameters:
      - {name: language, type: string, default: nld}
    inputs: [txt]
    outputs: [{name: tok, strip: txt, add: tok}]
    options: [language]
    args: "{in:txt} {out:tok}"
`

const componentsYAML = `
includes: [tools.yml, base.yml]
components:
  - name: Tokenize
    parameters:
      - {name: language, type: string}
    accepts: [[txt]]
    autosetup: [Tokenizer]
  - name: Parse
    accepts:
      - [conll]
      - [{component: Tokenize, params: {language: eng}}]
      - [{format: txt, force: true}]
    autosetup: [Tokenizer]
    inherit: [Tokenize]
`

func memFs(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for name, content := range files {
		if err := afero.WriteFile(fs, name, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return fs
}

func newLoader(fs afero.Fs) *Loader {
	return NewLoader(fs, WithLogger(logger.NewNop()))
}

func TestLoad_IncludesOnceInDependencyOrder(t *testing.T) {
	fs := memFs(t, map[string]string{
		"cat/base.yml":       baseYAML,
		"cat/tools.yml":      toolsYAML,
		"cat/components.yml": componentsYAML,
	})
	reg := component.NewRegistry()

	cat, err := newLoader(fs).Load(reg, "cat/components.yml")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := &Catalog{
		Files:      []string{"cat/base.yml", "cat/tools.yml", "cat/components.yml"},
		Formats:    []string{"txt", "conll"},
		Tasks:      []string{"Tokenizer"},
		Components: []string{"Tokenize", "Parse"},
	}
	if diff := cmp.Diff(want, cat); diff != "" {
		t.Fatalf("catalog mismatch (-want +got):\n%s", diff)
	}

	groups, err := reg.Groups("Parse")
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, g := range groups {
		got = append(got, g[0].String())
	}
	if diff := cmp.Diff([]string{"format conll", "component Tokenize", "format txt (forced)"}, got); diff != "" {
		t.Errorf("groups mismatch (-want +got):\n%s", diff)
	}
	ref := groups[1][0].(component.ComponentRef)
	if ref.Overrides.String("language") != "eng" {
		t.Errorf("ref overrides = %v", ref.Overrides)
	}

	decls, err := reg.Parameters("Parse")
	if err != nil {
		t.Fatal(err)
	}
	if !containsDecl(decls, "language") {
		t.Error("Parse should inherit the language parameter")
	}
}

func containsDecl(decls []params.Decl, name string) bool {
	for _, d := range decls {
		if d.Name == name {
			return true
		}
	}
	return false
}

func TestLoad_Directory(t *testing.T) {
	fs := memFs(t, map[string]string{
		"cat/b.yaml": "formats: [{id: b, extensions: [b]}]",
		"cat/a.yml":  "formats: [{id: a, extensions: [a]}]",
		"cat/README": "not yaml",
	})
	cat, err := newLoader(fs).Load(component.NewRegistry(), "cat")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if diff := cmp.Diff([]string{"cat/a.yml", "cat/b.yaml"}, cat.Files); diff != "" {
		t.Errorf("files mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		code  errors.ErrorCode
		want  string
	}{
		{
			name:  "include cycle",
			files: map[string]string{"main.yml": "includes: [a.yml]", "a.yml": "includes: [b.yml]", "b.yml": "includes: [a.yml]"},
			code:  errors.ErrCodeInvalidDeclaration,
			want:  "circular include",
		},
		{
			name:  "missing include",
			files: map[string]string{"main.yml": "includes: [nope.yml]"},
			code:  errors.ErrCodeNotFound,
		},
		{
			name:  "unknown field",
			files: map[string]string{"main.yml": "formats: [{id: txt, extensions: [txt], colour: red}]"},
			code:  errors.ErrCodeInvalidDeclaration,
			want:  "colour",
		},
		{
			name: "undeclared placeholder",
			files: map[string]string{"main.yml": `
tasks:
  - {name: T, executable: t, inputs: [txt], outputs: [{name: out, strip: txt, add: out}], args: "{lang} {in:txt}"}
`},
			code: errors.ErrCodeInvalidDeclaration,
			want: "undeclared parameter lang",
		},
		{
			name: "no executable",
			files: map[string]string{"main.yml": `
tasks:
  - {name: T, inputs: [txt], outputs: [{name: out, strip: txt, add: out}]}
`},
			code: errors.ErrCodeInvalidDeclaration,
			want: "no executable",
		},
		{
			name: "unknown autosetup class",
			files: map[string]string{"main.yml": `
formats: [{id: txt, extensions: [txt]}]
components:
  - {name: C, accepts: [[txt]], autosetup: [Nope]}
`},
			code: errors.ErrCodeNotFound,
		},
		{
			name: "item with format and component",
			files: map[string]string{"main.yml": `
components:
  - {name: C, accepts: [[{format: txt, component: D}]], autosetup: []}
`},
			code: errors.ErrCodeInvalidDeclaration,
			want: "both format",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newLoader(memFs(t, tt.files)).Load(component.NewRegistry(), "main.yml")
			if !errors.Is(err, tt.code) {
				t.Fatalf("error = %v, want code %s", err, tt.code)
			}
			if tt.want != "" && !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestTemplateCheck(t *testing.T) {
	c := &task.Class{
		Name:       "T",
		Parameters: []params.Decl{{Name: "lang", Kind: params.KindString}},
		Inputs:     []string{"txt"},
		Outputs:    []task.OutputDecl{{Name: "out", Strip: "txt", Add: "out"}},
	}
	tests := []struct {
		args     string
		problems int
	}{
		{"-l {lang} {in:txt} {out:out}", 0},
		{"--outdir={outputdir} {inputs:txt}", 0},
		{"{in:tok}", 1},
		{"{out:tok}", 1},
		{"--files={inputs:txt}", 1},
	}
	for _, tt := range tests {
		at, err := parseTemplate(tt.args)
		if err != nil {
			t.Fatalf("parseTemplate(%q) error = %v", tt.args, err)
		}
		if got := at.check(c); len(got) != tt.problems {
			t.Errorf("check(%q) = %v, want %d problems", tt.args, got, tt.problems)
		}
	}
}

func TestToolTasksRunEndToEnd(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "doc.txt")
	if err := os.WriteFile(input, []byte("hello world\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	catPath := filepath.Join(dir, "catalog.yml")
	if err := os.WriteFile(catPath, []byte(`
formats: [{id: txt, extensions: [txt]}]
tasks:
  - name: Copy
    executable: cp
    inputs: [txt]
    outputs: [{name: copy, strip: txt, add: copy}]
    args: "{in:txt} {out:copy}"
  - name: Upper
    executable: tr
    inputs: [copy]
    outputs: [{name: upper, strip: copy, add: upper}]
    args: "a-z A-Z"
    stdin: copy
    stdout: upper
components:
  - {name: CopyText, accepts: [[txt]], autosetup: [Copy]}
  - {name: Shout, accepts: [[{component: CopyText}]], autosetup: [Upper]}
`), 0o644); err != nil {
		t.Fatal(err)
	}

	fs := afero.NewOsFs()
	reg := component.NewRegistry()
	if _, err := newLoader(fs).Load(reg, catPath); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	res, err := resolver.New(reg, fs, resolver.WithLogger(logger.NewNop()))
	if err != nil {
		t.Fatal(err)
	}
	plan, err := res.Plan("Shout", params.Values{"inputfile": params.String(input)})
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	runner, err := engine.New(engine.Config{LogDir: filepath.Join(dir, "logs")}, fs,
		engine.WithLogger(logger.NewNop()), engine.WithScheduler(engine.Local()))
	if err != nil {
		t.Fatal(err)
	}
	report, err := runner.Run(context.Background(), plan)
	if err != nil {
		t.Fatal(err)
	}
	if !report.Success {
		t.Fatalf("run failed: %v", report.Err())
	}
	data, err := os.ReadFile(filepath.Join(dir, "doc.upper"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "HELLO WORLD\n" {
		t.Errorf("doc.upper = %q", data)
	}
}
