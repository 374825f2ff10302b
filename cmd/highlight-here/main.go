// highlight-here rewrites an HTML fragment,
// marking the links that point at the current page.
package main

import (
	"errors"
	"flag"
	"io"
	"log"
	"os"

	"braces.dev/errtrace"

	highlighthere "github.com/fusionbox/django-highlight-here"
	"github.com/fusionbox/django-highlight-here/internal/colorize"
	"github.com/fusionbox/django-highlight-here/internal/errdefer"
)

func main() {
	cmd := mainCmd{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
	os.Exit(cmd.Run(os.Args[1:]))
}

// mainCmd is the actual entry point to the program.
type mainCmd struct {
	Stdin  io.Reader // == os.Stdin
	Stdout io.Writer // == os.Stdout
	Stderr io.Writer // == os.Stderr

	log *log.Logger
}

func (cmd *mainCmd) Run(args []string) (exitCode int) {
	cmd.log = log.New(cmd.Stderr, "", 0)

	opts, err := (&cliParser{
		Stdout: cmd.Stdout,
		Stderr: cmd.Stderr,
	}).Parse(args)
	if err != nil {
		// '$cmd -h' should exit with zero.
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		// No need to print anything.
		// Parse prints messages.
		return 1
	}

	if err := cmd.run(opts); err != nil {
		cmd.log.Printf("highlight-here: %v", err)
		return 1
	}
	return 0
}

func (cmd *mainCmd) run(opts *params) (err error) {
	markup, err := cmd.readMarkup(opts.File)
	if err != nil {
		return err
	}

	debugLog, closeLog, err := opts.Debug.Logger(cmd.Stderr)
	if err != nil {
		return err
	}
	defer errdefer.CloseFunc(&err, closeLog)

	h := highlighthere.Highlighter{
		Class:    opts.Class,
		DebugLog: debugLog,
	}

	rewrite := h.Here
	switch {
	case opts.Blocks:
		rewrite = h.Blocks
	case opts.Parent:
		rewrite = h.HereParent
	}

	got, err := rewrite(markup, opts.Path)
	if err != nil {
		return err
	}

	out, closeOut, err := cmd.openOutput(opts.Output)
	if err != nil {
		return err
	}
	defer errdefer.CloseFunc(&err, closeOut)

	if opts.Color {
		return colorize.HTML(out, got)
	}
	_, err = io.WriteString(out, got)
	return err
}

// readMarkup reads the fragment to rewrite. "-" means stdin.
func (cmd *mainCmd) readMarkup(file string) (_ string, err error) {
	r := cmd.Stdin
	if file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return "", errtrace.Wrap(err)
		}
		defer errdefer.Close(&err, f)
		r = f
	}

	b, err := io.ReadAll(r)
	if err != nil {
		return "", errtrace.Wrap(err)
	}
	return string(b), nil
}

// openOutput opens the destination for the rewritten fragment.
// Empty means stdout.
func (cmd *mainCmd) openOutput(path string) (io.Writer, func() error, error) {
	if path == "" {
		return cmd.Stdout, closeNop, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, errtrace.Wrap(err)
	}
	return f, f.Close, nil
}

func closeNop() error { return nil }
