// Command abacus evaluates definition documents.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
)

// Context is shared by all commands.
type Context struct {
	Config string
	Stdout io.Writer
	// Stderr receives logs and telemetry. Nil means os.Stderr.
	Stderr io.Writer
}

func (c *Context) stderr() io.Writer {
	if c.Stderr == nil {
		return os.Stderr
	}
	return c.Stderr
}

// CLI represents the command-line interface
var CLI struct {
	Config string   `help:"Settings file (.yaml, .yml or .json)" type:"path"`
	Eval   EvalCmd  `cmd:"" help:"Resolve the outputs of a definition document"`
	Types  TypesCmd `cmd:"" help:"List the type names usable in typed expressions"`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("abacus"),
		kong.Description("Resolve expression trees over constants, symbols and lookup tables."),
		kong.UsageOnError(),
	)

	err := ctx.Run(&Context{Config: CLI.Config, Stdout: os.Stdout, Stderr: os.Stderr})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
