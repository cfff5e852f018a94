package spec

import (
	"fmt"
	"strconv"
	"strings"
)

// Selector is one bracketed or shorthand step within a Segment: a name,
// wildcard, index, slice, or filter selector. Each concrete type below
// implements it.
type Selector interface {
	fmt.Stringer
	selectorNode()
}

// NameSelector selects the member of an object whose key equals Name.
type NameSelector struct {
	Name string
}

func (NameSelector) selectorNode() {}

// String renders s using double-quoted JSONPath string-literal syntax.
func (s NameSelector) String() string {
	return quoteString(s.Name, '"')
}

// WildcardSelector selects every child of a node: every member value of an
// object, or every element of an array.
type WildcardSelector struct{}

func (WildcardSelector) selectorNode() {}

// String returns "*".
func (WildcardSelector) String() string { return "*" }

// IndexSelector selects the array element at Index, which may be negative
// to count from the end of the array (-1 is the last element).
type IndexSelector struct {
	Index int64
}

func (IndexSelector) selectorNode() {}

// String renders the decimal index.
func (s IndexSelector) String() string { return strconv.FormatInt(s.Index, 10) }

// SliceSelector selects a run of array elements, following Python-style
// slice semantics (RFC 9535 §2.3.4). Start, End, and Step are pointers so
// the selector can distinguish "omitted" (nil) from an explicit value,
// including explicit zero.
type SliceSelector struct {
	Start *int64
	End   *int64
	Step  *int64
}

func (SliceSelector) selectorNode() {}

// String renders the selector as "start:end:step", omitting any component
// left unset, and omitting the trailing ":step" entirely when Step is nil.
func (s SliceSelector) String() string {
	var buf strings.Builder
	if s.Start != nil {
		buf.WriteString(strconv.FormatInt(*s.Start, 10))
	}
	buf.WriteByte(':')
	if s.End != nil {
		buf.WriteString(strconv.FormatInt(*s.End, 10))
	}
	if s.Step != nil {
		buf.WriteByte(':')
		buf.WriteString(strconv.FormatInt(*s.Step, 10))
	}
	return buf.String()
}

// StepOrDefault returns the slice's step, defaulting to 1 when unset.
func (s SliceSelector) StepOrDefault() int64 {
	if s.Step == nil {
		return 1
	}
	return *s.Step
}

// FilterSelector selects every child (of an object or array) for which
// Expr evaluates to logical true.
type FilterSelector struct {
	Expr *LogicalOrExpr
}

func (FilterSelector) selectorNode() {}

// String renders "?" followed by the filter expression.
func (s FilterSelector) String() string {
	return "?" + s.Expr.String()
}

// quoteString renders s as a JSONPath string literal delimited by quote
// (either '\'' or '"'), escaping per RFC 9535 §2.3.1's shared escape table.
func quoteString(s string, quote byte) string {
	var buf strings.Builder
	buf.WriteByte(quote)
	for _, r := range s {
		switch r {
		case rune(quote):
			buf.WriteByte('\\')
			buf.WriteRune(r)
		case '\\':
			buf.WriteString(`\\`)
		case '\b':
			buf.WriteString(`\b`)
		case '\f':
			buf.WriteString(`\f`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		default:
			if r < 0x20 {
				buf.WriteString(`\u`)
				buf.WriteString(pad4(strconv.FormatInt(int64(r), 16)))
			} else {
				buf.WriteRune(r)
			}
		}
	}
	buf.WriteByte(quote)
	return buf.String()
}
