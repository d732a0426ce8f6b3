package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

// Context represents the global context for commands
type Context struct {
	Config  string
	Verbose bool
	Quiet   bool
	Stdout  io.Writer
	// Base is cancelled on interrupt; long running commands stop with it.
	Base context.Context
}

// CLI represents the command-line interface
var CLI struct {
	Config  string     `help:"Configuration file path" default:"tmplexpr.yaml"`
	Verbose bool       `help:"Enable verbose output" short:"v"`
	Quiet   bool       `help:"Suppress output" short:"q"`
	Parse   ParseCmd   `cmd:"" help:"Parse an expression and print its tree"`
	Type    TypeCmd    `cmd:"" help:"Parse a type"`
	Check   CheckCmd   `cmd:"" help:"Check expressions in template files"`
	Version VersionCmd `cmd:"" help:"Show version information"`
}

// VersionCmd represents the version command
type VersionCmd struct{}

// Run executes the version command
func (cmd *VersionCmd) Run(ctx *Context) error {
	fmt.Fprintln(ctx.Stdout, "tmplexpr v0.1.0")
	return nil
}

func main() {
	ctx := kong.Parse(&CLI)

	verbosity := 0
	if CLI.Verbose {
		verbosity = 2
	} else if CLI.Quiet {
		verbosity = -1
	}

	commonlog.Configure(verbosity, nil)

	base, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	appCtx := &Context{
		Config:  CLI.Config,
		Verbose: CLI.Verbose,
		Quiet:   CLI.Quiet,
		Stdout:  os.Stdout,
		Base:    base,
	}

	err := ctx.Run(appCtx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
