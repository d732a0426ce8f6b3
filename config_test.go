package tmplexpr

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	config, err := LoadConfig("does-not-exist.yaml")
	assert.NoError(t, err)
	assert.Equal(t, "./templates", config.Scan.InputDir)
	assert.Equal(t, []string{".html", ".xml"}, config.Scan.Extensions)
	assert.Equal(t, []string{"std"}, config.Scan.ElementPrefixes)
	assert.Equal(t, []string{"html", "attr", "event"}, config.Scan.AttributePrefixes)
	assert.False(t, config.Parser.StrictKeywords)
}

func TestLoadConfig_FromFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	err := os.WriteFile(filepath.Join(dir, ".env"), []byte("TEMPLATE_ROOT=/srv/templates\n"), 0o644)
	assert.NoError(t, err)

	path := filepath.Join(dir, DefaultConfigFile)
	err = os.WriteFile(path, []byte(`
classes:
  - java.lang.Math
  - java.util.List
imports:
  classes: [java.util.List]
  packages: [java.lang]
parser:
  strict_keywords: true
scan:
  input_dir: ${TEMPLATE_ROOT}/pages
  extensions: [.xhtml]
`), 0o644)
	assert.NoError(t, err)

	config, err := LoadConfig(path)
	assert.NoError(t, err)
	assert.Equal(t, []string{"java.lang.Math", "java.util.List"}, config.Classes)
	assert.Equal(t, "/srv/templates/pages", config.Scan.InputDir)
	assert.Equal(t, []string{".xhtml"}, config.Scan.Extensions)
	assert.Equal(t, []string{"std"}, config.Scan.ElementPrefixes)
	assert.True(t, config.Parser.StrictKeywords)
	assert.Equal(t, 1, len(config.ParserOptions()))
}

func TestParseConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "unknown field", yaml: "dialect: postgres\n"},
		{name: "invalid class", yaml: "classes: [java..Math]\n"},
		{name: "import of unknown class", yaml: "classes: [a.B]\nimports:\n  classes: [c.D]\n"},
		{name: "invalid package", yaml: "imports:\n  packages: [\"1pkg\"]\n"},
		{name: "extension without dot", yaml: "scan:\n  extensions: [html]\n"},
		{name: "prefix with colon", yaml: "scan:\n  attribute_prefixes: [\"a:b\"]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestParseConfig_ValidationSentinel(t *testing.T) {
	_, err := ParseConfig([]byte("classes: [\"not a class\"]\n"))
	assert.IsError(t, err, ErrConfigValidation)
	assert.IsError(t, err, ErrInvalidClassName)
}

func TestConfig_NewParser(t *testing.T) {
	config, err := ParseConfig([]byte(`
classes: [java.lang.Math, java.util.Collections]
imports:
  packages: [java.lang]
  classes: [java.util.Collections]
`))
	assert.NoError(t, err)

	p, err := config.NewParser()
	assert.NoError(t, err)

	expr, err := p.Parse("Math.max(a, Collections.size(b))")
	assert.NoError(t, err)
	assert.Equal(t, "java.lang.Math::max(a, java.util.Collections::size(b))", expr.String())
}

func TestConfig_ClassResolverConflict(t *testing.T) {
	config := getDefaultConfig()
	config.Classes = []string{"a.List", "b.List"}
	config.Imports.Classes = []string{"a.List", "b.List"}

	_, err := config.ClassResolver()
	assert.IsError(t, err, ErrConfigValidation)
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("TMPLEXPR_HOME", "/opt/tmplexpr")

	tests := []struct {
		input    string
		expected string
	}{
		{"${TMPLEXPR_HOME}/templates", "/opt/tmplexpr/templates"},
		{"$TMPLEXPR_HOME/templates", "/opt/tmplexpr/templates"},
		{"./templates", "./templates"},
		{"${TMPLEXPR_UNSET_VARIABLE}x", "x"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, expandEnvVars(tt.input))
		})
	}
}
