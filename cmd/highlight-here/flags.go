package main

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/peterbourgon/ff/v3"

	"github.com/fusionbox/django-highlight-here/internal/flagvalue"
)

var (
	errHelp             = flag.ErrHelp
	errInvalidArguments = errors.New("invalid arguments")
)

// params holds all arguments for highlight-here.
type params struct {
	version bool

	Path  string
	Class string

	Parent bool
	Blocks bool

	Output string
	Color  bool
	Debug  flagvalue.LogSwitch

	File string
}

// cliParser parses the command line arguments for highlight-here.
type cliParser struct {
	Stdout io.Writer
	Stderr io.Writer
}

const _usage = `USAGE: highlight-here [OPTIONS] -path PATH [FILE]

Reads an HTML fragment from FILE or stdin, adds a class to every link
that points at PATH or a page above it, and prints the result.

OPTIONS

  -path PATH
	path of the current page. Required.
  -class NAME
	class to add to matching links. Defaults to "here".
  -parent
	mark the parent element of each matching link instead.
  -blocks
	rewrite only regions wrapped in highlight markers,
	<!-- highlight_here --> ... <!-- endhighlight -->.
  -out FILE
	write output to FILE instead of stdout.
  -color
	colorize output for the terminal.
  -debug[=FILE]
	print a line per link explaining the decision,
	to stderr or to FILE.
  -version
	report the tool version.

Flags may also be set with HIGHLIGHT_HERE_* environment variables,
e.g. HIGHLIGHT_HERE_CLASS=active.
`

func (cmd *cliParser) newFlagSet() (*params, *flag.FlagSet) {
	flag := flag.NewFlagSet("highlight-here", flag.ContinueOnError)
	flag.SetOutput(cmd.Stderr)
	flag.Usage = func() {
		fmt.Fprint(cmd.Stderr, _usage)
	}

	var p params

	// Matching:
	flag.StringVar(&p.Path, "path", "", "")
	flag.StringVar(&p.Class, "class", "", "")
	flag.BoolVar(&p.Parent, "parent", false, "")
	flag.BoolVar(&p.Blocks, "blocks", false, "")

	// Output:
	flag.StringVar(&p.Output, "out", "", "")
	flag.BoolVar(&p.Color, "color", false, "")

	// Program-level:
	flag.Var(&p.Debug, "debug", "")
	flag.BoolVar(&p.version, "version", false, "")

	return &p, flag
}

func (cmd *cliParser) Parse(args []string) (*params, error) {
	p, fset := cmd.newFlagSet()
	if err := ff.Parse(fset, args, ff.WithEnvVarPrefix("HIGHLIGHT_HERE")); err != nil {
		return nil, err
	}
	args = fset.Args()

	if p.version {
		fmt.Fprintln(cmd.Stdout, "highlight-here", _version)
		return nil, errHelp
	}

	switch len(args) {
	case 0:
		p.File = "-"
	case 1:
		p.File = args[0]
	default:
		fmt.Fprintln(cmd.Stderr, "Please provide at most one file.")
		fset.Usage()
		return nil, errInvalidArguments
	}

	if p.Path == "" {
		fmt.Fprintln(cmd.Stderr, "Please provide a page path with -path.")
		fset.Usage()
		return nil, errInvalidArguments
	}

	if p.Parent && p.Blocks {
		fmt.Fprintln(cmd.Stderr,
			"Cannot use -parent with -blocks; use highlight_here_parent markers instead.")
		return nil, errInvalidArguments
	}

	return p, nil
}
