package process

import (
	"io"
	"time"
)

// Command configures a subprocess to execute.
type Command struct {
	// Binary is the executable path or name (resolved via PATH).
	Binary string
	// Args are the command-line arguments.
	Args []string
	// Dir is the working directory. If empty, uses the current directory.
	Dir string
	// Env is additional environment variables (key=value). Merged with os.Environ.
	Env []string
	// Stdin provides input to the process. May be nil.
	Stdin io.Reader
	// StdinFrom, StdoutTo and StderrTo redirect the streams from or to files.
	// StdinFrom is ignored when Stdin is set.
	StdinFrom string
	StdoutTo  string
	StderrTo  string
	// GracePeriod is how long to wait after SIGTERM before SIGKILL.
	// Defaults to 5 seconds if zero.
	GracePeriod time.Duration
}

// String renders the command as a shell-quoted line, including redirects.
func (c Command) String() string {
	return CommandLine(c)
}
