package parser

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/pathkit/jsonpath/registry"
)

// parser holds the scanning state for one Parse call: the query text, the
// current byte offset into it, and the registry used to resolve and
// validate function calls. There is no separate tokenizer; selectors,
// operators, and literals are recognized directly from the input runes as
// the recursive-descent grammar functions in parser.go consume them.
type parser struct {
	query string
	pos   int
	reg   *registry.Registry

	// lastWasNegZero records whether the most recent parseIntLiteral call
	// parsed exactly "-0"; see parseIntLiteral's doc comment.
	lastWasNegZero bool
}

func newParser(query string, reg *registry.Registry) *parser {
	return &parser{query: query, reg: reg}
}

// eof reports whether the scan position is at or past the end of input.
func (p *parser) eof() bool { return p.pos >= len(p.query) }

// peek returns the rune at the current position without consuming it, and
// 0 at EOF.
func (p *parser) peek() rune {
	if p.eof() {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(p.query[p.pos:])
	return r
}

// peekAt returns the rune n runes past the current position's rune start,
// scanning rune-by-rune; used for small fixed lookahead (e.g. "..").
func (p *parser) peekAt(n int) rune {
	pos := p.pos
	for i := 0; i < n; i++ {
		if pos >= len(p.query) {
			return 0
		}
		_, size := utf8.DecodeRuneInString(p.query[pos:])
		pos += size
	}
	if pos >= len(p.query) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(p.query[pos:])
	return r
}

// advance consumes and returns the rune at the current position.
func (p *parser) advance() rune {
	r, size := utf8.DecodeRuneInString(p.query[p.pos:])
	p.pos += size
	return r
}

// byteAt returns the raw byte at the current position, for ASCII-only
// structural characters ('[', ']', ',', etc.) where a full rune decode is
// unnecessary overhead.
func (p *parser) byteAt() byte {
	if p.eof() {
		return 0
	}
	return p.query[p.pos]
}

// errorf builds a *ParseError anchored at the current scan position.
func (p *parser) errorf(format string, args ...any) *ParseError {
	return &ParseError{Msg: fmt.Sprintf(format, args...), Offset: p.pos, Query: p.query}
}

// errorAt builds a *ParseError anchored at a specific offset.
func (p *parser) errorAt(offset int, format string, args ...any) *ParseError {
	return &ParseError{Msg: fmt.Sprintf(format, args...), Offset: offset, Query: p.query}
}

// skipBlank consumes zero or more of the blank characters RFC 9535 §2.1.1
// permits between tokens: space, horizontal tab, line feed, carriage
// return.
func (p *parser) skipBlank() {
	for !p.eof() {
		switch p.byteAt() {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

// consumeByte consumes the current byte if it equals b, reporting whether
// it did.
func (p *parser) consumeByte(b byte) bool {
	if !p.eof() && p.byteAt() == b {
		p.pos++
		return true
	}
	return false
}

// expectByte consumes the current byte, requiring it to equal b.
func (p *parser) expectByte(b byte) error {
	if !p.consumeByte(b) {
		return p.errorf("expected %q", string(b))
	}
	return nil
}

// consumeLiteral consumes s if it appears at the current position,
// reporting whether it did.
func (p *parser) consumeLiteral(s string) bool {
	if strings.HasPrefix(p.query[p.pos:], s) {
		p.pos += len(s)
		return true
	}
	return false
}

// isDigit reports whether b is an ASCII decimal digit.
func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// isNameFirst reports whether r may begin a shorthand member-name
// selector, per RFC 9535 §2.5.1's name-first production: ASCII letters,
// underscore, and non-ASCII Unicode code points from U+0080 upward.
func isNameFirst(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r >= 0x80
}

// isNameChar reports whether r may continue a shorthand member name,
// which additionally permits ASCII digits.
func isNameChar(r rune) bool {
	return isNameFirst(r) || (r >= '0' && r <= '9')
}

// scanName consumes a maximal run of name characters starting at the
// current position and returns it; the caller has already confirmed the
// first rune satisfies isNameFirst.
func (p *parser) scanName() string {
	start := p.pos
	for !p.eof() && isNameChar(p.peek()) {
		p.advance()
	}
	return p.query[start:p.pos]
}

