// Package flagvalue provides flag.Value implementations
// for the highlight-here CLI.
package flagvalue

import (
	"flag"
	"io"
	"log"
	"os"

	"braces.dev/errtrace"
)

// LogSwitch is a flag that turns on a debug log.
// It accepts both "-debug" and "-debug=FILE":
// without a value the log goes to a fallback writer,
// with one it goes to the named file.
type LogSwitch string

var _ flag.Getter = (*LogSwitch)(nil)

// Get returns the destination chosen for the log,
// or "-" if the flag was passed without a value.
func (ls *LogSwitch) Get() any { return string(*ls) }

// String returns the destination chosen for the log,
// or "-" if the flag was passed without a value.
func (ls *LogSwitch) String() string { return string(*ls) }

// IsBoolFlag marks this as a flag
// that doesn't require a value.
func (*LogSwitch) IsBoolFlag() bool { return true }

// Set receives the value for this flag.
// An explicit "-" means the same as no value.
func (ls *LogSwitch) Set(v string) error {
	if v == "true" {
		v = "-"
	}
	*ls = LogSwitch(v)
	return nil
}

// Bool reports whether this flag was set at all.
func (ls *LogSwitch) Bool() bool { return len(*ls) > 0 }

// Logger builds the debug logger for this flag,
// with a function to flush and close it.
//
// This has three possible behaviors:
//
//   - the flag wasn't passed in: returns a nil logger
//   - the flag was passed without a value: logs to the provided fallback
//   - the flag was passed with a value: creates the file and logs to it
//
// A nil logger means debugging is off and may be assigned as-is.
func (ls *LogSwitch) Logger(fallback io.Writer) (l *log.Logger, close func() error, err error) {
	switch *ls {
	case "":
		return nil, closeNop, nil
	case "-":
		return log.New(fallback, "", 0), closeNop, nil
	default:
		f, err := os.Create(string(*ls))
		if err != nil {
			return nil, nil, errtrace.Wrap(err)
		}
		return log.New(f, "", 0), f.Close, nil
	}
}

func closeNop() error { return nil }
