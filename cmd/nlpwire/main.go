// nlpwire resolves component chains over input files and runs them.
//
// Usage:
//
//	nlpwire run <component> --input <path> [--param k=v]... [--params '{...}']
//	nlpwire plan <component> --input <path>
//	nlpwire batch <component> --inputs a.txt,b.txt
//	nlpwire batch-dir <component> --dir <dir> [--pattern '*.txt']
//	nlpwire components
//	nlpwire version
package main

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
)

func main() {
	if err := newRootCmd(afero.NewOsFs()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
