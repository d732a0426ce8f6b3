package classresolver

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidImport is returned for an import that is not a dotted identifier chain.
	ErrInvalidImport = errors.New("classresolver: invalid import")
	// ErrConflictingImport is returned when two single-class imports share a simple name.
	ErrConflictingImport = errors.New("classresolver: conflicting import")
)

// Importing resolves names the way a source file with import declarations
// would: single-class imports make a class reachable by its simple name,
// package imports make every class of a package reachable by its simple
// name, and fully qualified names are passed to the underlying resolver.
type Importing struct {
	inner    Resolver
	classes  map[string]string
	packages []string
}

// NewImporting wraps inner, which decides whether a fully qualified name exists.
func NewImporting(inner Resolver) *Importing {
	if inner == nil {
		inner = None
	}

	return &Importing{inner: inner, classes: map[string]string{}}
}

// ImportClass makes className reachable by its last segment. The class must
// be known to the underlying resolver.
func (r *Importing) ImportClass(className string) error {
	if !isQualifiedName(className) {
		return fmt.Errorf("%w: %q", ErrInvalidImport, className)
	}

	canonical, ok := r.inner.FindClass(className)
	if !ok {
		return fmt.Errorf("%w: class %q not found", ErrInvalidImport, className)
	}

	simple := className[strings.LastIndex(className, ".")+1:]
	if existing, ok := r.classes[simple]; ok && existing != canonical {
		return fmt.Errorf("%w: %s already imported as %s", ErrConflictingImport, simple, existing)
	}

	r.classes[simple] = canonical

	return nil
}

// ImportPackage makes every class of pkg reachable by its simple name.
// Single-class imports take precedence; earlier package imports win over
// later ones.
func (r *Importing) ImportPackage(pkg string) error {
	if !isQualifiedName(pkg) {
		return fmt.Errorf("%w: package %q", ErrInvalidImport, pkg)
	}

	for _, p := range r.packages {
		if p == pkg {
			return nil
		}
	}

	r.packages = append(r.packages, pkg)

	return nil
}

func (r *Importing) FindClass(name string) (string, bool) {
	if !strings.Contains(name, ".") {
		if className, ok := r.classes[name]; ok {
			return className, true
		}

		for _, pkg := range r.packages {
			if className, ok := r.inner.FindClass(pkg + "." + name); ok {
				return className, true
			}
		}

		return "", false
	}

	if className, ok := r.inner.FindClass(name); ok {
		return className, true
	}

	// Outer.Inner where Outer is imported.
	head, rest, _ := strings.Cut(name, ".")
	if outer, ok := r.FindClass(head); ok {
		return r.inner.FindClass(outer + "." + rest)
	}

	return "", false
}

func isQualifiedName(name string) bool {
	if name == "" {
		return false
	}

	for _, part := range strings.Split(name, ".") {
		if part == "" {
			return false
		}

		for i, c := range part {
			switch {
			case c == '_', c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z':
			case i > 0 && c >= '0' && c <= '9':
			default:
				return false
			}
		}
	}

	return true
}
