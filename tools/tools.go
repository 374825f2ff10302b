//go:build tools
// +build tools

package tools

// Tools used during development.
import (
	_ "github.com/mgechev/revive"
	_ "honnef.co/go/tools/cmd/staticcheck"
)
