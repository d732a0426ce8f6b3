// Package templatescan finds expressions in XML and XHTML templates and
// reports the ones that do not parse.
//
// An attribute holds an expression when its namespace prefix is one of the
// attribute prefixes (html:text="user.name"), or when its element's prefix
// is one of the element prefixes (<std:if test="a != null">).
package templatescan

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/beevik/etree"
	"github.com/tliron/commonlog"

	"github.com/shibukawa/tmplexpr"
	"github.com/shibukawa/tmplexpr/parser"
)

// ErrMalformedTemplate is returned when a template is not well-formed XML.
var ErrMalformedTemplate = errors.New("malformed template")

var log = commonlog.GetLogger("tmplexpr.scan")

// Expression is an attribute value that holds an expression.
type Expression struct {
	File      string
	Path      string
	Attribute string
	Source    string
}

// Diagnostic reports an expression that failed to parse. Offset, Line and
// Column are relative to the attribute value.
type Diagnostic struct {
	File       string
	Path       string
	Attribute  string
	Expression string
	Offset     int
	Line       int
	Column     int
	Message    string
}

func (d Diagnostic) String() string {
	if d.Attribute == "" {
		return fmt.Sprintf("%s: %s", d.File, d.Message)
	}

	return fmt.Sprintf("%s: %s@%s: %s", d.File, d.Path, d.Attribute, d.Message)
}

// Report summarises a scan.
type Report struct {
	Files       int
	Expressions int
	Diagnostics []Diagnostic
}

// Scanner checks templates with one parser. Like the parser it is not safe
// for concurrent use.
type Scanner struct {
	parser *parser.Parser
	config tmplexpr.ScanConfig
}

func New(p *parser.Parser, config tmplexpr.ScanConfig) *Scanner {
	return &Scanner{parser: p, config: config}
}

// Extract lists the expression attributes of a template document in
// document order.
func (s *Scanner) Extract(file string, doc *etree.Document) []Expression {
	var result []Expression

	var visit func(elem *etree.Element)
	visit = func(elem *etree.Element) {
		wholeElement := slices.Contains(s.config.ElementPrefixes, elem.Space)

		for _, attr := range elem.Attr {
			if attr.Space == "xmlns" || (attr.Space == "" && attr.Key == "xmlns") {
				continue
			}

			if wholeElement || (attr.Space != "" && slices.Contains(s.config.AttributePrefixes, attr.Space)) {
				result = append(result, Expression{
					File:      file,
					Path:      elem.GetPath(),
					Attribute: attr.FullKey(),
					Source:    attr.Value,
				})
			}
		}

		for _, child := range elem.ChildElements() {
			visit(child)
		}
	}

	if root := doc.Root(); root != nil {
		visit(root)
	}

	return result
}

// Check parses each expression and returns a diagnostic for every failure.
func (s *Scanner) Check(expressions []Expression) []Diagnostic {
	var diagnostics []Diagnostic

	for _, e := range expressions {
		_, err := s.parser.Parse(e.Source)
		if err == nil {
			continue
		}

		d := Diagnostic{
			File:       e.File,
			Path:       e.Path,
			Attribute:  e.Attribute,
			Expression: e.Source,
			Message:    err.Error(),
		}

		var parseErr *parser.ParseError
		if errors.As(err, &parseErr) {
			d.Offset = parseErr.Offset
			d.Line = parseErr.Line
			d.Column = parseErr.Column
		}

		log.Debugf("%s", d)

		diagnostics = append(diagnostics, d)
	}

	return diagnostics
}

// ScanFile checks a single template.
func (s *Scanner) ScanFile(path string) (*Report, error) {
	doc := etree.NewDocument()

	err := doc.ReadFromFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
			return nil, fmt.Errorf("failed to read template: %w", err)
		}

		return nil, fmt.Errorf("%w: %s: %w", ErrMalformedTemplate, path, err)
	}

	expressions := s.Extract(path, doc)
	log.Debugf("%s: %d expressions", path, len(expressions))

	return &Report{
		Files:       1,
		Expressions: len(expressions),
		Diagnostics: s.Check(expressions),
	}, nil
}

// ScanDir checks every template under dir whose extension is configured.
// Malformed templates are reported as diagnostics without an attribute.
func (s *Scanner) ScanDir(dir string) (*Report, error) {
	total := &Report{}

	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if entry.IsDir() || !s.Matches(path) {
			return nil
		}

		report, err := s.ScanFile(path)
		if errors.Is(err, ErrMalformedTemplate) {
			log.Warningf("%s", err)

			total.Files++
			total.Diagnostics = append(total.Diagnostics, Diagnostic{File: path, Message: err.Error()})

			return nil
		} else if err != nil {
			return err
		}

		total.Merge(report)

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", dir, err)
	}

	log.Infof("scanned %d files, %d expressions, %d problems", total.Files, total.Expressions, len(total.Diagnostics))

	return total, nil
}

// Matches reports whether path has one of the configured extensions.
func (s *Scanner) Matches(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))

	for _, want := range s.config.Extensions {
		if ext == strings.ToLower(want) {
			return true
		}
	}

	return false
}

// Merge adds other to r.
func (r *Report) Merge(other *Report) {
	r.Files += other.Files
	r.Expressions += other.Expressions
	r.Diagnostics = append(r.Diagnostics, other.Diagnostics...)
}
