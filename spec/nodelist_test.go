package spec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeListExactlyOne(t *testing.T) {
	_, err := NodeList{}.ExactlyOne()
	var eoErr *ExactlyOneError
	require.ErrorAs(t, err, &eoErr)
	assert.True(t, eoErr.Empty())

	v, err := NodeList{42}.ExactlyOne()
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	_, err = NodeList{1, 2}.ExactlyOne()
	require.ErrorAs(t, err, &eoErr)
	n, more := eoErr.MoreThanOne()
	assert.True(t, more)
	assert.Equal(t, 2, n)
}

func TestLocatedNodeListDeduplicate(t *testing.T) {
	list := LocatedNodeList{
		{Path: NormalizedPath{Index(0)}, Node: "a"},
		{Path: NormalizedPath{Index(0)}, Node: "a-dup"},
		{Path: NormalizedPath{Index(1)}, Node: "b"},
	}
	deduped := list.Deduplicate()
	require.Len(t, deduped, 2)
	assert.Equal(t, "a", deduped[0].Node)
	assert.Equal(t, "b", deduped[1].Node)
}

func TestLocatedNodeListSortAndClone(t *testing.T) {
	list := LocatedNodeList{
		{Path: NormalizedPath{Index(2)}, Node: "c"},
		{Path: NormalizedPath{Index(1)}, Node: "b"},
	}
	clone := list.Clone()
	clone.Sort()
	assert.Equal(t, "b", clone[0].Node)
	assert.Equal(t, "c", clone[1].Node)
	// original is untouched by sorting the clone
	assert.Equal(t, "c", list[0].Node)
}
