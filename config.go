// Package tmplexpr holds the project configuration shared by the command
// line tool and the template scanner.
package tmplexpr

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"

	"github.com/shibukawa/tmplexpr/classresolver"
	"github.com/shibukawa/tmplexpr/parser"
)

// DefaultConfigFile is the configuration file name looked up by the CLI.
const DefaultConfigFile = "tmplexpr.yaml"

// Config represents the tmplexpr configuration
type Config struct {
	// Classes lists fully qualified class names known to the resolver.
	Classes []string      `yaml:"classes"`
	Imports ImportsConfig `yaml:"imports"`
	Parser  ParserConfig  `yaml:"parser"`
	Scan    ScanConfig    `yaml:"scan"`
}

// ImportsConfig makes known classes reachable by their simple names
type ImportsConfig struct {
	Classes  []string `yaml:"classes"`
	Packages []string `yaml:"packages"`
}

// ParserConfig represents parser settings
type ParserConfig struct {
	StrictKeywords bool `yaml:"strict_keywords"`
	Trace          bool `yaml:"trace"`
}

// ScanConfig represents template scanning settings
type ScanConfig struct {
	InputDir   string   `yaml:"input_dir"`
	Extensions []string `yaml:"extensions"`
	// ElementPrefixes are namespace prefixes whose elements hold an expression in every attribute.
	ElementPrefixes []string `yaml:"element_prefixes"`
	// AttributePrefixes are namespace prefixes whose attributes hold an expression on any element.
	AttributePrefixes []string `yaml:"attribute_prefixes"`
}

var (
	qualifiedNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)*$`)
	prefixPattern        = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.-]*$`)
)

// LoadConfig loads configuration from the specified file
func LoadConfig(configPath string) (*Config, error) {
	err := loadEnvFiles()
	if err != nil {
		return nil, fmt.Errorf("failed to load environment files: %w", err)
	}

	_, err = os.Stat(configPath)
	if errors.Is(err, os.ErrNotExist) {
		config := getDefaultConfig()
		expandConfigEnvVars(config)

		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return ParseConfig(data)
}

// ParseConfig parses YAML configuration. Unknown fields are errors.
func ParseConfig(data []byte) (*Config, error) {
	var config Config

	err := yaml.UnmarshalWithOptions(data, &config, yaml.Strict())
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&config)
	expandConfigEnvVars(&config)

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// ClassResolver builds the resolver described by Classes and Imports.
func (c *Config) ClassResolver() (*classresolver.Importing, error) {
	resolver := classresolver.NewImporting(classresolver.NewSet(c.Classes...))

	for _, pkg := range c.Imports.Packages {
		if err := resolver.ImportPackage(pkg); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrConfigValidation, err)
		}
	}

	for _, class := range c.Imports.Classes {
		if err := resolver.ImportClass(class); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrConfigValidation, err)
		}
	}

	return resolver, nil
}

// ParserOptions returns the parser options selected by the configuration.
func (c *Config) ParserOptions() []parser.Option {
	var opts []parser.Option

	if c.Parser.StrictKeywords {
		opts = append(opts, parser.WithStrictKeywords())
	}

	if c.Parser.Trace {
		opts = append(opts, parser.WithTrace(os.Stderr))
	}

	return opts
}

// NewParser returns a parser wired to the configured class resolver.
func (c *Config) NewParser() (*parser.Parser, error) {
	resolver, err := c.ClassResolver()
	if err != nil {
		return nil, err
	}

	return parser.New(resolver, c.ParserOptions()...), nil
}

// validateConfig validates the configuration for common errors and inconsistencies
func validateConfig(config *Config) error {
	for _, class := range config.Classes {
		if !qualifiedNamePattern.MatchString(class) {
			return fmt.Errorf("%w: classes: %w '%s'", ErrConfigValidation, ErrInvalidClassName, class)
		}
	}

	for _, class := range config.Imports.Classes {
		if !qualifiedNamePattern.MatchString(class) {
			return fmt.Errorf("%w: imports.classes: %w '%s'", ErrConfigValidation, ErrInvalidClassName, class)
		}

		if !contains(config.Classes, class) {
			return fmt.Errorf("%w: imports.classes: '%s' is not listed in classes", ErrConfigValidation, class)
		}
	}

	for _, pkg := range config.Imports.Packages {
		if !qualifiedNamePattern.MatchString(pkg) {
			return fmt.Errorf("%w: imports.packages: %w '%s'", ErrConfigValidation, ErrInvalidClassName, pkg)
		}
	}

	for _, ext := range config.Scan.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf("%w: scan.extensions: '%s' must start with '.'", ErrConfigValidation, ext)
		}
	}

	for _, prefix := range append(append([]string{}, config.Scan.ElementPrefixes...), config.Scan.AttributePrefixes...) {
		if !prefixPattern.MatchString(prefix) {
			return fmt.Errorf("%w: scan: invalid namespace prefix '%s'", ErrConfigValidation, prefix)
		}
	}

	return nil
}

// getDefaultConfig returns the default configuration
func getDefaultConfig() *Config {
	return &Config{
		Classes: []string{},
		Imports: ImportsConfig{
			Classes:  []string{},
			Packages: []string{},
		},
		Scan: ScanConfig{
			InputDir:          "./templates",
			Extensions:        []string{".html", ".xml"},
			ElementPrefixes:   []string{"std"},
			AttributePrefixes: []string{"html", "attr", "event"},
		},
	}
}

// applyDefaults fills values that were left empty in the configuration file
func applyDefaults(config *Config) {
	defaults := getDefaultConfig()

	if config.Classes == nil {
		config.Classes = defaults.Classes
	}

	if config.Imports.Classes == nil {
		config.Imports.Classes = defaults.Imports.Classes
	}

	if config.Imports.Packages == nil {
		config.Imports.Packages = defaults.Imports.Packages
	}

	if config.Scan.InputDir == "" {
		config.Scan.InputDir = defaults.Scan.InputDir
	}

	if len(config.Scan.Extensions) == 0 {
		config.Scan.Extensions = defaults.Scan.Extensions
	}

	if config.Scan.ElementPrefixes == nil {
		config.Scan.ElementPrefixes = defaults.Scan.ElementPrefixes
	}

	if config.Scan.AttributePrefixes == nil {
		config.Scan.AttributePrefixes = defaults.Scan.AttributePrefixes
	}
}

// loadEnvFiles loads .env files if they exist
func loadEnvFiles() error {
	if fileExists(".env") {
		err := godotenv.Load(".env")
		if err != nil {
			return fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	return nil
}

// expandEnvVars expands environment variables in the format ${VAR} or $VAR
func expandEnvVars(s string) string {
	re1 := regexp.MustCompile(`\$\{([^}]+)\}`)
	s = re1.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[2 : len(match)-1])
	})

	re2 := regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
	s = re2.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[1:])
	})

	return s
}

// expandConfigEnvVars expands environment variables in path-like fields
func expandConfigEnvVars(config *Config) {
	config.Scan.InputDir = expandEnvVars(config.Scan.InputDir)
}

// fileExists checks if a file exists
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}

	return false
}
