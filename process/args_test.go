package process_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kbukum/nlpwire/params"
	"github.com/kbukum/nlpwire/process"
)

func TestFormatOptions(t *testing.T) {
	opts := []process.Option{
		{Name: "language", Value: params.String("nld")},
		{Name: "skip", Value: params.Bool(false)},
		{Name: "verbose", Value: params.Bool(true)},
		{Name: "max__length", Value: params.Int(100)},
		{Name: "L", Value: params.String("nl")},
		{Name: "_config", Value: params.String("frog.cfg")},
		{Name: "__internal", Value: params.String("x")},
		{Name: "empty", Value: params.String("")},
		{Name: "unset"},
	}

	tests := []struct {
		name  string
		style process.Style
		want  []string
	}{
		{"default", process.Style{},
			[]string{"--language", "nld", "--verbose", "--max-length", "100", "-L", "nl", "--config", "frog.cfg"}},
		{"assign", process.Style{AssignOp: true},
			[]string{"--language=nld", "--verbose", "--max-length=100", "-L", "nl", "--config=frog.cfg"}},
		{"single hyphen no space", process.Style{SingleHyphen: true, NoSpace: true},
			[]string{"-languagenld", "-verbose", "-max-length100", "-Lnl", "-configfrog.cfg"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := process.FormatOptions(opts, tt.style)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("FormatOptions() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestOptionsFrom(t *testing.T) {
	vs := params.Values{"b": params.Int(1), "a": params.Int(2)}
	got := process.OptionsFrom(vs, "a", "missing", "b")
	if len(got) != 2 || got[0].Name != "a" || got[1].Name != "b" {
		t.Errorf("OptionsFrom() = %+v", got)
	}
}

func TestBuild(t *testing.T) {
	opts := []process.Option{{Name: "x", Value: params.Bool(true)}}

	cmd := process.Build("ucto", []string{"in.txt", "out.tok"}, opts, process.Style{})
	if diff := cmp.Diff([]string{"-x", "in.txt", "out.tok"}, cmd.Args); diff != "" {
		t.Errorf("args mismatch (-want +got):\n%s", diff)
	}

	cmd = process.Build("tools/tagger.jar", []string{"in.txt"}, opts, process.Style{OptionsLast: true})
	if cmd.Binary != "java" {
		t.Errorf("jar should run through java, got %q", cmd.Binary)
	}
	if diff := cmp.Diff([]string{"-jar", "tools/tagger.jar", "in.txt", "-x"}, cmd.Args); diff != "" {
		t.Errorf("args mismatch (-want +got):\n%s", diff)
	}
}

func TestShellQuote(t *testing.T) {
	tests := map[string]string{
		"plain.txt":   "plain.txt",
		"two words":   "'two words'",
		"":            "''",
		"$HOME/a.txt": `\$HOME/a.txt`,
	}
	for in, want := range tests {
		if got := process.ShellQuote(in); got != want {
			t.Errorf("ShellQuote(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCommandLine(t *testing.T) {
	cmd := process.Command{
		Binary:    "frog",
		Args:      []string{"-t", "my doc.txt"},
		StdinFrom: "in.txt",
		StdoutTo:  "out file.xml",
		StderrTo:  "err.log",
	}
	want := `frog -t 'my doc.txt' < in.txt > 'out file.xml' 2> err.log`
	if got := cmd.String(); got != want {
		t.Errorf("CommandLine() = %q, want %q", got, want)
	}
}

func TestSplitTemplate(t *testing.T) {
	got, err := process.SplitTemplate(`-c "{config}" {input}`)
	if err != nil {
		t.Fatalf("SplitTemplate() error = %v", err)
	}
	if diff := cmp.Diff([]string{"-c", "{config}", "{input}"}, got); diff != "" {
		t.Errorf("SplitTemplate() mismatch (-want +got):\n%s", diff)
	}
}
