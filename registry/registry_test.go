package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pathkit/jsonpath/spec"
)

func TestNewDefaultHasBuiltins(t *testing.T) {
	reg := NewDefault()
	for _, name := range []string{"length", "count", "value", "match", "search"} {
		_, ok := reg.Get(name)
		assert.True(t, ok, "expected built-in %q to be registered", name)
	}
}

func TestNewDefaultWithoutRegexOmitsMatchAndSearch(t *testing.T) {
	reg := NewDefaultWithoutRegex()
	for _, name := range []string{"length", "count", "value"} {
		_, ok := reg.Get(name)
		assert.True(t, ok, "expected built-in %q to be registered", name)
	}
	for _, name := range []string{"match", "search"} {
		_, ok := reg.Get(name)
		assert.False(t, ok, "expected %q to be omitted", name)
	}
}

func TestRegisterOverridesEarlierEntry(t *testing.T) {
	reg := New()
	first := &Function{
		Name: "custom", ParamTypes: []spec.PathType{spec.PathValue}, ResultType: spec.PathValue,
		Evaluate: func(args []spec.JSONPathValue) spec.JSONPathValue { return spec.ValueFrom("first") },
	}
	second := &Function{
		Name: "custom", ParamTypes: []spec.PathType{spec.PathValue}, ResultType: spec.PathValue,
		Evaluate: func(args []spec.JSONPathValue) spec.JSONPathValue { return spec.ValueFrom("second") },
	}
	require.NoError(t, reg.Register(first))
	require.NoError(t, reg.Register(second))

	fn, ok := reg.Get("custom")
	require.True(t, ok)
	got := fn.Evaluate(nil).(spec.ValueType)
	assert.Equal(t, "second", got.Value())
}

func TestRegisterOverridesBuiltin(t *testing.T) {
	reg := NewDefault()
	override := &Function{
		Name:       "length",
		ParamTypes: []spec.PathType{spec.PathValue},
		ResultType: spec.PathValue,
		Evaluate: func(args []spec.JSONPathValue) spec.JSONPathValue {
			return spec.ValueFrom(float64(42))
		},
	}
	require.NoError(t, reg.Register(override))

	fn, ok := reg.Get("length")
	require.True(t, ok)
	got := fn.Evaluate([]spec.JSONPathValue{spec.ValueFrom("abc")}).(spec.ValueType)
	assert.Equal(t, 42.0, got.Value())
}

func TestLengthFunc(t *testing.T) {
	fn, ok := NewDefault().Get("length")
	require.True(t, ok)

	got := fn.Evaluate([]spec.JSONPathValue{spec.ValueFrom("abc")})
	vt, ok := got.(spec.ValueType)
	require.True(t, ok)
	assert.Equal(t, 3.0, vt.Value())

	got = fn.Evaluate([]spec.JSONPathValue{spec.ValueFrom(42.0)})
	vt, ok = got.(spec.ValueType)
	require.True(t, ok)
	assert.True(t, vt.IsNothing())
}

func TestCountAndValueFuncs(t *testing.T) {
	reg := NewDefault()
	countFn, _ := reg.Get("count")
	got := countFn.Evaluate([]spec.JSONPathValue{spec.NodesFrom(spec.NodeList{1, 2, 3})})
	vt := got.(spec.ValueType)
	assert.Equal(t, 3.0, vt.Value())

	valueFn, _ := reg.Get("value")
	got = valueFn.Evaluate([]spec.JSONPathValue{spec.NodesFrom(spec.NodeList{"only"})})
	vt = got.(spec.ValueType)
	assert.Equal(t, "only", vt.Value())

	got = valueFn.Evaluate([]spec.JSONPathValue{spec.NodesFrom(spec.NodeList{"a", "b"})})
	vt = got.(spec.ValueType)
	assert.True(t, vt.IsNothing())
}

func TestMatchAndSearchFuncs(t *testing.T) {
	reg := NewDefault()
	matchFn, _ := reg.Get("match")
	searchFn, _ := reg.Get("search")

	got := matchFn.Evaluate([]spec.JSONPathValue{spec.ValueFrom("abc"), spec.ValueFrom("a.c")})
	assert.True(t, bool(got.(spec.LogicalType)))

	got = matchFn.Evaluate([]spec.JSONPathValue{spec.ValueFrom("xabcx"), spec.ValueFrom("a.c")})
	assert.False(t, bool(got.(spec.LogicalType)))

	got = searchFn.Evaluate([]spec.JSONPathValue{spec.ValueFrom("xabcx"), spec.ValueFrom("a.c")})
	assert.True(t, bool(got.(spec.LogicalType)))
}

func TestMatchAnchorsAcrossAlternation(t *testing.T) {
	reg := NewDefault()
	matchFn, _ := reg.Get("match")

	// Go's regexp resolves "a|ab" leftmost-first: against "ab" it finds
	// "a" at [0,1] before ever trying "ab". A naive unanchored-find plus
	// span check would wrongly report no full match.
	got := matchFn.Evaluate([]spec.JSONPathValue{spec.ValueFrom("ab"), spec.ValueFrom("a|ab")})
	assert.True(t, bool(got.(spec.LogicalType)))

	got = matchFn.Evaluate([]spec.JSONPathValue{spec.ValueFrom("abc"), spec.ValueFrom("a|ab")})
	assert.False(t, bool(got.(spec.LogicalType)))
}

func TestCompileIRegexpDotExcludesLineTerminators(t *testing.T) {
	re, err := CompileIRegexp(".")
	require.NoError(t, err)
	assert.False(t, re.MatchString("\n"))
	assert.False(t, re.MatchString("\r"))
	assert.True(t, re.MatchString("x"))
}
