package main

import (
	"fmt"

	flag "github.com/spf13/pflag"
)

// buildFlags holds all flags for the build tool.
type buildFlags struct {
	config  string
	source  string
	outHTML string
	outMeta string
	check   bool
	verbose bool
	version bool
}

// parseFlags parses command-line arguments into buildFlags.
// Flag values override config file values.
func parseFlags(args []string) (*buildFlags, error) {
	fs := flag.NewFlagSet("bookgen", flag.ContinueOnError)
	flags := &buildFlags{}

	fs.StringVarP(&flags.config, "config", "c", "", "YAML build config (path, or bare name resolved to <name>.yaml)")
	fs.StringVarP(&flags.source, "source", "s", "", "Markdown source file")
	fs.StringVar(&flags.outHTML, "out-html", "", "annotated HTML artifact path")
	fs.StringVar(&flags.outMeta, "out-meta", "", "JSON metadata artifact path")
	fs.BoolVar(&flags.check, "check", false, "verify existing artifacts against the source instead of writing")
	fs.BoolVarP(&flags.verbose, "verbose", "v", false, "verbose output")
	fs.BoolVar(&flags.version, "version", false, "print version and exit")

	if err := fs.Parse(args[1:]); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if fs.NArg() > 1 {
		return nil, fmt.Errorf("%w: at most one positional source argument", ErrUsage)
	}
	// A positional argument is shorthand for --source.
	if fs.NArg() == 1 && flags.source == "" {
		flags.source = fs.Arg(0)
	}

	return flags, nil
}
