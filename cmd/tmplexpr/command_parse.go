package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/goccy/go-yaml"

	"github.com/shibukawa/tmplexpr/ast"
)

// ParseCmd represents the parse command
type ParseCmd struct {
	Expression string `arg:"" help:"Expression to parse, or - to read it from stdin"`
	Format     string `help:"Output format (text, json, yaml)" default:"text" enum:"text,json,yaml"`

	stdin io.Reader `kong:"-"`
}

// Run executes the parse command
func (cmd *ParseCmd) Run(ctx *Context) error {
	src, err := cmd.source()
	if err != nil {
		return err
	}

	config, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	p, err := config.NewParser()
	if err != nil {
		return err
	}

	expr, err := p.Parse(src)
	if err != nil {
		return err
	}

	if ctx.Verbose {
		color.New(color.FgBlue).Fprintf(ctx.Stdout, "Parsed %d characters\n", len([]rune(src)))
	}

	return writeTree(ctx.Stdout, cmd.Format, expr.String(), ast.Dump(expr))
}

func (cmd *ParseCmd) source() (string, error) {
	if cmd.Expression != "-" {
		return cmd.Expression, nil
	}

	in := cmd.stdin
	if in == nil {
		in = os.Stdin
	}

	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("failed to read expression: %w", err)
	}

	return strings.TrimRight(string(data), "\r\n"), nil
}

// TypeCmd represents the type command
type TypeCmd struct {
	Type   string `arg:"" help:"Type to parse"`
	Format string `help:"Output format (text, json, yaml)" default:"text" enum:"text,json,yaml"`
}

// Run executes the type command
func (cmd *TypeCmd) Run(ctx *Context) error {
	config, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	p, err := config.NewParser()
	if err != nil {
		return err
	}

	typ, err := p.ParseType(cmd.Type)
	if err != nil {
		return err
	}

	return writeTree(ctx.Stdout, cmd.Format, typ.String(), ast.DumpType(typ))
}

func writeTree(w io.Writer, format, text string, tree map[string]any) error {
	switch format {
	case "", "text":
		_, err := fmt.Fprintln(w, text)
		return err
	case "json":
		data, err := json.MarshalIndent(tree, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}

		_, err = fmt.Fprintln(w, string(data))

		return err
	case "yaml":
		data, err := yaml.Marshal(tree)
		if err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}

		_, err = w.Write(data)

		return err
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}
