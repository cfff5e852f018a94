package spec

import "strings"

// SegmentKind distinguishes a child segment, which looks only at the
// immediate children of each node in the current working list, from a
// descendant segment, which looks at the node itself and every descendant.
type SegmentKind uint8

const (
	// ChildSegment is the ".name", "[...]", and ".*" form.
	ChildSegment SegmentKind = iota
	// DescendantSegment is the "..name", "..[...]" and "..*" form.
	DescendantSegment
)

// Segment is one "." or ".." step of a query, carrying one or more
// selectors that are all applied to the same working list and whose
// results are concatenated in the order the selectors appear.
type Segment struct {
	Kind      SegmentKind
	Selectors []Selector
}

// String renders the segment in canonical bracketed form, e.g. "[0]",
// `["a","b"]`, or "..[*]".
func (s Segment) String() string {
	var buf strings.Builder
	if s.Kind == DescendantSegment {
		buf.WriteString("..")
	}
	buf.WriteByte('[')
	for i, sel := range s.Selectors {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(sel.String())
	}
	buf.WriteByte(']')
	return buf.String()
}

// IsSingular reports whether s can only ever produce at most one result
// node from any single input node: a child segment with exactly one
// selector, itself a name or index selector.
func (s Segment) IsSingular() bool {
	if s.Kind != ChildSegment || len(s.Selectors) != 1 {
		return false
	}
	switch s.Selectors[0].(type) {
	case NameSelector, IndexSelector:
		return true
	default:
		return false
	}
}
