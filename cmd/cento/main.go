// cento drives a corner-stitched tiling plane from rectangle files.
//
// Build:
//
//	go build -o cento ./cmd/cento
//
// Usage:
//
//	cento run [--out DIR] [--format obj|dxf|pdf|xlsx] [--metrics FILE] [--log-level L] FILE
//	cento parse FILE
//	cento render [--format F] [--labels FILE] FILE
//
// run inserts every rectangle of FILE with body ids counting from zero, then
// removes them in insertion order, validating the tiling after each step. It
// exits with 1 on usage or input errors, 2 when a step breaks the tiling
// (before and after snapshots are written to the output directory), and 3
// when the plane is not back to its single space tile at the end.
package main

import (
	"os"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/tdewolff/argp"
)

// Exit codes.
const (
	exitOK        = 0
	exitUsage     = 1
	exitInvariant = 2
	exitNotEmpty  = 3
)

// Error types attached to command errors.
const (
	errTypeConfig    = "config"
	errTypeParse     = "parse"
	errTypeOverlap   = "overlap"
	errTypeInvariant = "invariant"
	errTypeExport    = "export"
)

// Main is the bare command; it only shows usage.
type Main struct{}

func (cmd *Main) Run() error { return argp.ShowUsage }

func main() {
	root := argp.NewCmd(&Main{}, "Corner-stitched tiling plane driver")
	root.AddCmd(&Run{}, "run", "Insert and remove every rectangle, validating each step")
	root.AddCmd(&Parse{}, "parse", "Print the rectangles read from a file")
	root.AddCmd(&Render{}, "render", "Insert every rectangle and export the tiling")
	root.Parse()
	root.PrintHelp()
}

// exit terminates the process with code, logging err first.
func exit(code int, err error) error {
	if err != nil {
		logs.WithTag("error_type", errors.Type(err)).Error(err)
		if code == exitOK {
			code = exitUsage
		}
	}
	if code != exitOK {
		os.Exit(code)
	}
	return nil
}
