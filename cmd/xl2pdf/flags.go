package main

import (
	"os"

	flag "github.com/spf13/pflag"
)

// cliFlags holds all parsed command-line flags.
type cliFlags struct {
	output    string
	recursive bool
	overwrite bool
	retry     int
	verbose   bool
	quiet     bool
	config    string

	fs *flag.FlagSet
}

// changed reports whether the named flag was set on the command line,
// distinguishing explicit values from defaults when merging with config.
func (f *cliFlags) changed(name string) bool {
	return f.fs != nil && f.fs.Changed(name)
}

// parseFlags parses args (without the program name) and returns the flags
// and remaining positional arguments.
func parseFlags(args []string) (*cliFlags, []string, error) {
	fs := flag.NewFlagSet("xl2pdf", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() { printUsage(os.Stderr) }

	f := &cliFlags{}
	fs.StringVarP(&f.output, "output", "o", "", "output PDF file or directory")
	fs.BoolVarP(&f.recursive, "recursive", "r", false, "include subdirectories when input is a directory")
	fs.BoolVar(&f.overwrite, "overwrite", false, "overwrite existing PDFs instead of adding a numeric suffix")
	fs.IntVar(&f.retry, "retry", 1, "retry passes for failed conversions")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed progress and errors")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	f.fs = fs
	return f, fs.Args(), nil
}
