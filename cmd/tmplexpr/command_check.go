package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/shibukawa/tmplexpr/templatescan"
	"github.com/shibukawa/tmplexpr/watch"
)

// CheckCmd represents the check command
type CheckCmd struct {
	Paths []string `arg:"" optional:"" help:"Template files or directories (default: scan.input_dir)" type:"path"`
	Watch bool     `help:"Watch for file changes and check again"`
}

// Run executes the check command
func (cmd *CheckCmd) Run(ctx *Context) error {
	config, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	p, err := config.NewParser()
	if err != nil {
		return err
	}

	scanner := templatescan.New(p, config.Scan)

	paths := cmd.Paths
	if len(paths) == 0 {
		paths = []string{config.Scan.InputDir}
	}

	if ctx.Verbose {
		color.New(color.FgBlue).Fprintf(ctx.Stdout, "Checking %v\n", paths)
	}

	report := &templatescan.Report{}

	for _, path := range paths {
		r, err := scanPath(scanner, path)
		if err != nil {
			return err
		}

		report.Merge(r)
	}

	printReport(ctx, report)

	if cmd.Watch {
		return cmd.watch(ctx, scanner, paths)
	}

	if len(report.Diagnostics) > 0 {
		return fmt.Errorf("%w: %d", ErrProblemsFound, len(report.Diagnostics))
	}

	return nil
}

func (cmd *CheckCmd) watch(ctx *Context, scanner *templatescan.Scanner, paths []string) error {
	base := ctx.Base
	if base == nil {
		base = context.Background()
	}

	dirs := make([]string, 0, len(paths))

	for _, path := range paths {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			path = filepath.Dir(path)
		}

		dirs = append(dirs, path)
	}

	if !ctx.Quiet {
		color.New(color.FgBlue).Fprintf(ctx.Stdout, "Watching %v (Ctrl+C to stop)\n", dirs)
	}

	return watch.Watch(base, dirs, scanner.Matches, func(path string) error {
		report, err := scanner.ScanFile(path)
		if err != nil {
			color.New(color.FgRed).Fprintf(ctx.Stdout, "%v\n", err)
			return nil
		}

		printReport(ctx, report)

		return nil
	})
}

func scanPath(scanner *templatescan.Scanner, path string) (*templatescan.Report, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to access %s: %w", path, err)
	}

	if info.IsDir() {
		return scanner.ScanDir(path)
	}

	return scanner.ScanFile(path)
}

func printReport(ctx *Context, report *templatescan.Report) {
	red := color.New(color.FgRed)

	for _, d := range report.Diagnostics {
		red.Fprintf(ctx.Stdout, "%s\n", d)

		if d.Attribute != "" {
			if text, marker, ok := caret(d.Expression, d.Line, d.Column); ok {
				fmt.Fprintf(ctx.Stdout, "    %s\n    %s\n", text, marker)
			}
		}
	}

	if ctx.Quiet {
		return
	}

	summary := fmt.Sprintf("%d files, %d expressions, %d problems", report.Files, report.Expressions, len(report.Diagnostics))
	if len(report.Diagnostics) == 0 {
		color.New(color.FgGreen).Fprintln(ctx.Stdout, summary)
	} else {
		red.Fprintln(ctx.Stdout, summary)
	}
}

// caret returns the given line of an expression and a marker line with a
// caret under column. Tabs before the column are copied into the marker so
// that it lines up with the text.
func caret(expression string, line, column int) (string, string, bool) {
	lines := strings.Split(expression, "\n")
	if line < 1 || line > len(lines) || column < 1 {
		return "", "", false
	}

	text := strings.TrimSuffix(lines[line-1], "\r")
	runes := []rune(text)

	var marker strings.Builder

	for i := range column - 1 {
		if i < len(runes) && runes[i] == '\t' {
			marker.WriteByte('\t')
		} else {
			marker.WriteByte(' ')
		}
	}

	marker.WriteByte('^')

	return text, marker.String(), true
}
