// Package testhelper holds fixtures shared by package tests.
package testhelper

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

var leadingWhiteSpaces = regexp.MustCompile(`^[ \t]+`)

// TrimIndent removes the first line and the indentation of the second line
// from every line, so fixtures can be written as indented raw strings.
func TrimIndent(t *testing.T, src string) string {
	t.Helper()

	lines := strings.Split(src, "\n")
	if len(lines) < 2 {
		return src
	}

	indent := leadingWhiteSpaces.FindString(lines[1])

	for i, line := range lines {
		lines[i] = strings.TrimPrefix(line, indent)
	}

	return strings.Join(lines[1:], "\n")
}

// WriteFile writes content to name under dir, creating parent directories,
// and returns the full path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)

	err := os.MkdirAll(filepath.Dir(path), 0o755)
	if err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}

	err = os.WriteFile(path, []byte(content), 0o644)
	if err != nil {
		t.Fatalf("write %s: %v", path, err)
	}

	return path
}
