package spec

import "strings"

// PathQuery is a full JSONPath query: a root identifier ("$" or, within a
// filter expression, "@") followed by zero or more segments applied in
// order. A PathQuery rooted at "@" is relative and only valid inside a
// filter selector's expression; one rooted at "$" is absolute and valid
// anywhere, including as the top-level query handed to Parse.
type PathQuery struct {
	Relative bool
	Segments []Segment
}

// String renders q in canonical JSONPath syntax.
func (q *PathQuery) String() string {
	var buf strings.Builder
	if q.Relative {
		buf.WriteByte('@')
	} else {
		buf.WriteByte('$')
	}
	for _, seg := range q.Segments {
		buf.WriteString(seg.String())
	}
	return buf.String()
}

// IsSingular reports whether q is a singular query: every segment selects
// at most one child by name or index, so q can select at most one node
// from any input value. Singular queries are the only queries RFC 9535
// permits on either side of a filter comparison.
func (q *PathQuery) IsSingular() bool {
	for _, seg := range q.Segments {
		if !seg.IsSingular() {
			return false
		}
	}
	return true
}

// AsNormalizedPath converts a singular query's segments into a
// NormalizedPath, for use as a literal path prefix. Callers must first
// confirm IsSingular(); the result is meaningless otherwise.
func (q *PathQuery) AsNormalizedPath() NormalizedPath {
	path := make(NormalizedPath, 0, len(q.Segments))
	for _, seg := range q.Segments {
		switch sel := seg.Selectors[0].(type) {
		case NameSelector:
			path = append(path, Name(sel.Name))
		case IndexSelector:
			path = append(path, Index(sel.Index))
		}
	}
	return path
}
