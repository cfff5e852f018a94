package spec

import (
	"strconv"
	"strings"
)

// PathElement is a single step of a NormalizedPath: either a member name or
// an array index. Exactly one of the two accessors is meaningful for any
// given PathElement; IsIndex reports which.
type PathElement struct {
	name  string
	index int64
	isIdx bool
}

// Name returns a PathElement selecting an object member named name.
func Name(name string) PathElement { return PathElement{name: name} }

// Index returns a PathElement selecting an array element at the
// non-negative, normalized index idx.
func Index(idx int64) PathElement { return PathElement{index: idx, isIdx: true} }

// IsIndex reports whether e is an array-index element (as opposed to a
// member-name element).
func (e PathElement) IsIndex() bool { return e.isIdx }

// NameValue returns the member name of e. Only meaningful when !e.IsIndex().
func (e PathElement) NameValue() string { return e.name }

// IndexValue returns the array index of e. Only meaningful when
// e.IsIndex().
func (e PathElement) IndexValue() int64 { return e.index }

// writeTo writes the bracketed, RFC 9535 normalized-path representation of
// e to buf: ['name'] or [index].
func (e PathElement) writeTo(buf *strings.Builder) {
	buf.WriteByte('[')
	if e.isIdx {
		buf.WriteString(strconv.FormatInt(e.index, 10))
	} else {
		buf.WriteByte('\'')
		writeNormalizedName(buf, e.name)
		buf.WriteByte('\'')
	}
	buf.WriteByte(']')
}

// writeNormalizedName writes name to buf, escaping it per RFC 9535 §2.7's
// normalized-path single-quoted string rules: backslash and single quote
// are escaped, as are control characters, using the same escapes allowed
// in double-quoted string literals.
func writeNormalizedName(buf *strings.Builder, name string) {
	for _, r := range name {
		switch r {
		case '\'':
			buf.WriteString(`\'`)
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
}

func pad4(s string) string {
	for len(s) < 4 {
		s = "0" + s
	}
	return s
}

// NormalizedPath is the ordered sequence of PathElements uniquely
// identifying a node's location from the root of the queried document. The
// empty NormalizedPath denotes the root.
type NormalizedPath []PathElement

// String returns the canonical "$['a'][0]..." representation of p.
func (p NormalizedPath) String() string {
	buf := new(strings.Builder)
	buf.WriteByte('$')
	for _, e := range p {
		e.writeTo(buf)
	}
	return buf.String()
}

// ToJSONPointer renders p as an RFC 6901 JSON Pointer.
func (p NormalizedPath) ToJSONPointer() string {
	if len(p) == 0 {
		return ""
	}
	buf := new(strings.Builder)
	for _, e := range p {
		buf.WriteByte('/')
		if e.isIdx {
			buf.WriteString(strconv.FormatInt(e.index, 10))
		} else {
			buf.WriteString(escapePointerToken(e.name))
		}
	}
	return buf.String()
}

// escapePointerToken escapes name per RFC 6901: "~" becomes "~0" and "/"
// becomes "~1".
func escapePointerToken(name string) string {
	if !strings.ContainsAny(name, "~/") {
		return name
	}
	var buf strings.Builder
	for _, r := range name {
		switch r {
		case '~':
			buf.WriteString("~0")
		case '/':
			buf.WriteString("~1")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}

// Equal reports whether p and other name the same location.
func (p NormalizedPath) Equal(other NormalizedPath) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}
