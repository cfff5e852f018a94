package spec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPathQueryIsSingular(t *testing.T) {
	singular := &PathQuery{Segments: []Segment{
		{Kind: ChildSegment, Selectors: []Selector{NameSelector{Name: "a"}}},
		{Kind: ChildSegment, Selectors: []Selector{IndexSelector{Index: 0}}},
	}}
	assert.True(t, singular.IsSingular())
	assert.Equal(t, "$['a'][0]", singular.AsNormalizedPath().String())

	wildcard := &PathQuery{Segments: []Segment{
		{Kind: ChildSegment, Selectors: []Selector{WildcardSelector{}}},
	}}
	assert.False(t, wildcard.IsSingular())

	multiSelector := &PathQuery{Segments: []Segment{
		{Kind: ChildSegment, Selectors: []Selector{NameSelector{Name: "a"}, NameSelector{Name: "b"}}},
	}}
	assert.False(t, multiSelector.IsSingular())

	descendant := &PathQuery{Segments: []Segment{
		{Kind: DescendantSegment, Selectors: []Selector{NameSelector{Name: "a"}}},
	}}
	assert.False(t, descendant.IsSingular())
}

func TestPathQueryString(t *testing.T) {
	q := &PathQuery{Segments: []Segment{
		{Kind: ChildSegment, Selectors: []Selector{NameSelector{Name: "store"}}},
		{Kind: DescendantSegment, Selectors: []Selector{WildcardSelector{}}},
	}}
	assert.Equal(t, `$["store"]..[*]`, q.String())

	rel := &PathQuery{Relative: true}
	assert.Equal(t, "@", rel.String())
}
