package exec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pathkit/jsonpath/internal/value"
	"github.com/pathkit/jsonpath/parser"
)

const bookstoreJSON = `{
  "store": {
    "book": [
      {"category": "reference", "author": "Nigel Rees", "title": "Sayings of the Century", "price": 8.95},
      {"category": "fiction", "author": "Evelyn Waugh", "title": "Sword of Honour", "price": 12.99},
      {"category": "fiction", "author": "Herman Melville", "title": "Moby Dick", "isbn": "0-553-21311-3", "price": 8.99},
      {"category": "fiction", "author": "J. R. R. Tolkien", "title": "The Lord of the Rings", "isbn": "0-395-19395-8", "price": 22.99}
    ],
    "bicycle": {"color": "red", "price": 19.95}
  }
}`

func selectStrings(t *testing.T, path, doc string) []any {
	t.Helper()
	v, err := value.Parse([]byte(doc))
	require.NoError(t, err)
	q, err := parser.Parse(nil, path)
	require.NoError(t, err)
	nodes, err := New().Select(q, v)
	require.NoError(t, err)
	return []any(nodes)
}

func TestSelectAllAuthors(t *testing.T) {
	got := selectStrings(t, "$.store.book[*].author", bookstoreJSON)
	assert.Equal(t, []any{"Nigel Rees", "Evelyn Waugh", "Herman Melville", "J. R. R. Tolkien"}, got)
}

func TestSelectDescendantAuthors(t *testing.T) {
	got := selectStrings(t, "$..author", bookstoreJSON)
	assert.Equal(t, []any{"Nigel Rees", "Evelyn Waugh", "Herman Melville", "J. R. R. Tolkien"}, got)
}

func TestSelectWildcardStore(t *testing.T) {
	got := selectStrings(t, "$.store.*", bookstoreJSON)
	assert.Len(t, got, 2)
}

func TestSelectIndexAndNegativeIndex(t *testing.T) {
	got := selectStrings(t, "$..book[2].title", bookstoreJSON)
	assert.Equal(t, []any{"Moby Dick"}, got)

	got = selectStrings(t, "$..book[-1].title", bookstoreJSON)
	assert.Equal(t, []any{"The Lord of the Rings"}, got)
}

func TestSelectMultipleIndices(t *testing.T) {
	got := selectStrings(t, "$..book[0,1].title", bookstoreJSON)
	assert.Equal(t, []any{"Sayings of the Century", "Sword of Honour"}, got)
}

func TestSelectSlice(t *testing.T) {
	got := selectStrings(t, "$..book[:2].title", bookstoreJSON)
	assert.Equal(t, []any{"Sayings of the Century", "Sword of Honour"}, got)

	got = selectStrings(t, "$..book[::-1].title", bookstoreJSON)
	assert.Equal(t, []any{
		"The Lord of the Rings", "Moby Dick", "Sword of Honour", "Sayings of the Century",
	}, got)
}

func TestSelectFilterExistence(t *testing.T) {
	got := selectStrings(t, "$..book[?@.isbn].title", bookstoreJSON)
	assert.Equal(t, []any{"Moby Dick", "The Lord of the Rings"}, got)
}

func TestSelectFilterComparison(t *testing.T) {
	got := selectStrings(t, "$..book[?@.price<10].title", bookstoreJSON)
	assert.Equal(t, []any{"Sayings of the Century", "Moby Dick"}, got)
}

func TestSelectFilterWithFunctionCall(t *testing.T) {
	got := selectStrings(t, `$..book[?length(@.author) > 13].author`, bookstoreJSON)
	assert.Equal(t, []any{"Herman Melville", "J. R. R. Tolkien"}, got)
}

func TestSelectDescendantWildcardOrder(t *testing.T) {
	doc := `{"a": [1, 2], "b": {"c": 3}}`
	got := selectStrings(t, "$..*", doc)
	// The root's children (a's array, b's object), then a's elements, then
	// b's member c.
	require.Len(t, got, 5)
	assert.Equal(t, []any{1.0, 2.0, 3.0}, got[2:])
}

func TestSelectLocatedPaths(t *testing.T) {
	v, err := value.Parse([]byte(bookstoreJSON))
	require.NoError(t, err)
	q, err := parser.Parse(nil, "$..book[0].title")
	require.NoError(t, err)
	located, err := New().SelectLocated(q, v)
	require.NoError(t, err)
	require.Len(t, located, 1)
	assert.Equal(t, `$['store']['book'][0]['title']`, located[0].Path.String())
}

func TestSelectNegativeZeroEqualsZero(t *testing.T) {
	doc := `{"a": [{"n": 0}, {"n": 1}]}`
	got := selectStrings(t, "$.a[?@.n == -0].n", doc)
	assert.Equal(t, []any{0.0}, got)
}
