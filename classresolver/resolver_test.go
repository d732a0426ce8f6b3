package classresolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSet(t *testing.T) {
	s := NewSet("java.lang.Math", " java.util.List ", "")

	name, ok := s.FindClass("java.lang.Math")
	assert.True(t, ok)
	assert.Equal(t, "java.lang.Math", name)

	_, ok = s.FindClass("Math")
	assert.False(t, ok)

	assert.Equal(t, []string{"java.lang.Math", "java.util.List"}, s.Classes())
}

func TestFuncAndNone(t *testing.T) {
	calls := 0
	r := Func(func(name string) (string, bool) {
		calls++
		return "pkg." + name, name == "A"
	})

	name, ok := r.FindClass("A")
	assert.True(t, ok)
	assert.Equal(t, "pkg.A", name)
	assert.Equal(t, 1, calls)

	_, ok = None.FindClass("java.lang.Math")
	assert.False(t, ok)
}

func TestChain(t *testing.T) {
	c := Chain{nil, NewSet("a.B"), Func(func(name string) (string, bool) { return "x." + name, true })}

	name, ok := c.FindClass("a.B")
	assert.True(t, ok)
	assert.Equal(t, "a.B", name)

	name, ok = c.FindClass("C")
	assert.True(t, ok)
	assert.Equal(t, "x.C", name)

	_, ok = Chain{}.FindClass("C")
	assert.False(t, ok)
}

func TestImporting(t *testing.T) {
	known := NewSet("java.lang.Math", "java.lang.String", "java.util.List", "java.util.Map", "java.util.Map.Entry", "com.example.List")
	r := NewImporting(known)

	require.NoError(t, r.ImportPackage("java.lang"))
	require.NoError(t, r.ImportClass("java.util.Map"))
	require.NoError(t, r.ImportPackage("java.lang"))

	tests := []struct {
		name  string
		input string
		want  string
		found bool
	}{
		{name: "package import", input: "Math", want: "java.lang.Math", found: true},
		{name: "class import", input: "Map", want: "java.util.Map", found: true},
		{name: "nested through import", input: "Map.Entry", want: "java.util.Map.Entry", found: true},
		{name: "fully qualified", input: "java.util.List", want: "java.util.List", found: true},
		{name: "not imported", input: "List", found: false},
		{name: "unknown qualified", input: "java.util.Set", found: false},
		{name: "variable-like", input: "user.name", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := r.FindClass(tt.input)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestImportingErrors(t *testing.T) {
	r := NewImporting(NewSet("java.util.List", "com.example.List"))

	require.NoError(t, r.ImportClass("java.util.List"))
	require.NoError(t, r.ImportClass("java.util.List"))

	err := r.ImportClass("com.example.List")
	assert.ErrorIs(t, err, ErrConflictingImport)

	err = r.ImportClass("java.util.Missing")
	assert.ErrorIs(t, err, ErrInvalidImport)

	err = r.ImportClass("java..List")
	assert.ErrorIs(t, err, ErrInvalidImport)

	err = r.ImportPackage("1java")
	assert.ErrorIs(t, err, ErrInvalidImport)
}

func TestImportingNilInner(t *testing.T) {
	r := NewImporting(nil)

	_, ok := r.FindClass("Anything")
	assert.False(t, ok)
}
