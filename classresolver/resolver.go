// Package classresolver maps dotted names found in expressions to canonical
// class names.
//
// The parser asks a Resolver whether a dotted identifier chain such as
// "java.lang.Math" names a class. Implementations must be free of side
// effects visible to the parser and must answer "not found" instead of
// failing.
package classresolver

import (
	"slices"
	"strings"
)

// Resolver finds the canonical class name for a dotted name.
type Resolver interface {
	FindClass(name string) (string, bool)
}

// Func adapts a function to Resolver.
type Func func(name string) (string, bool)

func (f Func) FindClass(name string) (string, bool) {
	return f(name)
}

// None never resolves anything; every dotted chain is instance access.
var None Resolver = Func(func(string) (string, bool) { return "", false })

// Set resolves exactly the fully qualified class names it contains.
type Set struct {
	classes map[string]struct{}
}

// NewSet creates a Set holding the given fully qualified names.
func NewSet(classes ...string) *Set {
	s := &Set{classes: make(map[string]struct{}, len(classes))}
	for _, c := range classes {
		s.Add(c)
	}

	return s
}

// Add registers a fully qualified class name. Blank names are ignored.
func (s *Set) Add(className string) {
	className = strings.TrimSpace(className)
	if className == "" {
		return
	}

	s.classes[className] = struct{}{}
}

func (s *Set) FindClass(name string) (string, bool) {
	if _, ok := s.classes[name]; ok {
		return name, true
	}

	return "", false
}

// Classes returns the registered names in sorted order.
func (s *Set) Classes() []string {
	names := make([]string, 0, len(s.classes))
	for name := range s.classes {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// Chain asks each resolver in turn and returns the first match.
type Chain []Resolver

func (c Chain) FindClass(name string) (string, bool) {
	for _, r := range c {
		if r == nil {
			continue
		}

		if className, ok := r.FindClass(name); ok {
			return className, true
		}
	}

	return "", false
}
