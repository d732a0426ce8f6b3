package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/shibukawa/tmplexpr"
)

// loadConfig loads the configuration named on the command line. The default
// file may be absent; an explicitly named one must exist.
func loadConfig(ctx *Context) (*tmplexpr.Config, error) {
	if ctx.Config != tmplexpr.DefaultConfigFile {
		if _, err := os.Stat(ctx.Config); errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", tmplexpr.ErrConfigFileNotFound, ctx.Config)
		}
	}

	config, err := tmplexpr.LoadConfig(ctx.Config)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	return config, nil
}
