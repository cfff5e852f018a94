package jsonpath

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pathkit/jsonpath/registry"
	"github.com/pathkit/jsonpath/spec"
)

func decode(t *testing.T, doc string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(doc), &v))
	return v
}

func TestParseAndSelect(t *testing.T) {
	p, err := Parse("$.a.b[0]")
	require.NoError(t, err)
	assert.Equal(t, `$["a"]["b"][0]`, p.String())

	nodes, err := p.Select(decode(t, `{"a": {"b": [1, 2, 3]}}`))
	require.NoError(t, err)
	assert.Equal(t, spec.NodeList{1.0}, nodes)
}

func TestMustParsePanicsOnInvalidQuery(t *testing.T) {
	assert.Panics(t, func() {
		MustParse("not a query")
	})
}

func TestIsSingular(t *testing.T) {
	p := MustParse("$.a.b")
	assert.True(t, p.IsSingular())

	p = MustParse("$.a[*]")
	assert.False(t, p.IsSingular())
}

func TestFirstReturnsErrorWhenEmpty(t *testing.T) {
	p := MustParse("$.missing")
	_, err := p.First(decode(t, `{}`))
	require.Error(t, err)
	var notFound *spec.ExactlyOneError
	require.ErrorAs(t, err, &notFound)
	assert.True(t, notFound.Empty())
}

func TestFirstReturnsFirstMatch(t *testing.T) {
	p := MustParse("$.a[*]")
	got, err := p.First(decode(t, `{"a": [10, 20, 30]}`))
	require.NoError(t, err)
	assert.Equal(t, 10.0, got)
}

func TestSelectContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := MustParse("$..*")
	_, err := p.SelectContext(ctx, decode(t, `{"a": [1, 2, 3]}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSelectLocated(t *testing.T) {
	p := MustParse("$.a[1]")
	located, err := p.SelectLocated(decode(t, `{"a": [1, 2, 3]}`))
	require.NoError(t, err)
	require.Len(t, located, 1)
	assert.Equal(t, 2.0, located[0].Node)
	assert.Equal(t, `$['a'][1]`, located[0].Path.String())
}

func TestNewParserWithoutRegexRejectsMatchAndSearch(t *testing.T) {
	p := NewParserWithoutRegex()
	_, err := p.Parse("$[?match(@.a, 'x')]")
	require.Error(t, err)

	_, err = p.Parse("$[?search(@.a, 'x')]")
	require.Error(t, err)

	_, err = p.Parse("$[?length(@.a) == 1]")
	require.NoError(t, err)
}

func TestParserWithCustomRegistry(t *testing.T) {
	reg := registry.NewDefault()
	require.NoError(t, reg.Register(&registry.Function{
		Name:       "double",
		ParamTypes: []spec.PathType{spec.PathValue},
		ResultType: spec.PathValue,
		Evaluate: func(args []spec.JSONPathValue) spec.JSONPathValue {
			vt, ok := args[0].(spec.ValueType)
			if !ok || vt.IsNothing() {
				return spec.Nothing
			}
			n, ok := vt.Value().(float64)
			if !ok {
				return spec.Nothing
			}
			return spec.ValueFrom(n * 2)
		},
	}))

	p, err := NewParserWithRegistry(reg).Parse("$.a[?double(@.n) == 4]")
	require.NoError(t, err)

	nodes, err := p.Select(decode(t, `{"a": [{"n": 1}, {"n": 2}, {"n": 3}]}`))
	require.NoError(t, err)
	require.Len(t, nodes, 1)
}

func TestScanAndValueRoundTrip(t *testing.T) {
	var p Path
	require.NoError(t, p.Scan("$.a.b"))
	assert.Equal(t, `$["a"]["b"]`, p.String())

	v, err := p.Value()
	require.NoError(t, err)
	assert.Equal(t, `$["a"]["b"]`, v)

	require.NoError(t, p.Scan([]byte("$.c")))
	assert.Equal(t, `$["c"]`, p.String())

	require.NoError(t, p.Scan(nil))

	err = p.Scan(42)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrScan)
}

func TestScanRejectsInvalidQuery(t *testing.T) {
	var p Path
	err := p.Scan("not a query")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrScan)
}

func TestTextMarshalRoundTrip(t *testing.T) {
	p := MustParse("$.a.b[*]")
	text, err := p.MarshalText()
	require.NoError(t, err)

	var p2 Path
	require.NoError(t, p2.UnmarshalText(text))
	assert.Equal(t, p.String(), p2.String())
}

func TestBinaryMarshalRoundTrip(t *testing.T) {
	p := MustParse("$..book[?@.price < 10]")
	data, err := p.MarshalBinary()
	require.NoError(t, err)

	var p2 Path
	require.NoError(t, p2.UnmarshalBinary(data))
	assert.Equal(t, p.String(), p2.String())
}

func TestEndToEndBookstoreScenarios(t *testing.T) {
	doc := decode(t, `{
		"store": {
			"book": [
				{"category": "fiction", "author": "Waugh", "price": 12.99},
				{"category": "fiction", "author": "Melville", "price": 8.99, "isbn": "0-553-21311-3"}
			],
			"bicycle": {"color": "red", "price": 19.95}
		}
	}`)

	cases := []struct {
		query string
		want  int
	}{
		{"$.store.book[*].author", 2},
		{"$..author", 2},
		{"$.store.*", 2},
		{"$.store..price", 3},
		{"$..book[2]", 0},
		{"$..book[-1]", 1},
		{"$..book[0,1]", 2},
		{"$..book[:1]", 1},
		{"$..book[?@.isbn]", 1},
		{"$..book[?@.price<10]", 1},
		{"$..*", 14},
	}
	for _, c := range cases {
		p, err := Parse(c.query)
		require.NoError(t, err, c.query)
		nodes, err := p.Select(doc)
		require.NoError(t, err, c.query)
		assert.Len(t, nodes, c.want, c.query)
	}
}

func TestParseNegativeCases(t *testing.T) {
	cases := []string{
		"$[-0]",
		"no-root",
		"$.a[?@.a[*] == 1]",
		"$[",
		"$['unterminated",
	}
	for _, c := range cases {
		_, err := Parse(c)
		assert.Error(t, err, c)
	}
}
