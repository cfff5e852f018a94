// Package parser implements a hand-written recursive-descent parser for
// RFC 9535 JSONPath query expressions, producing a *spec.PathQuery
// directly -- no separate tokenizer or parser-generator pass.
package parser

import (
	"github.com/pathkit/jsonpath/registry"
	"github.com/pathkit/jsonpath/spec"
)

// Parse parses path as a top-level JSONPath query ("$..."), resolving any
// function calls it contains against reg. A nil reg parses against
// registry.NewDefault().
func Parse(reg *registry.Registry, path string) (*spec.PathQuery, error) {
	if reg == nil {
		reg = registry.NewDefault()
	}
	p := newParser(path, reg)
	if !p.consumeByte('$') {
		return nil, p.errorf("a JSONPath query must begin with '$'")
	}
	segs, err := p.parseSegments()
	if err != nil {
		return nil, err
	}
	if !p.eof() {
		return nil, p.errorf("unexpected input after query")
	}
	return &spec.PathQuery{Segments: segs}, nil
}

// MustParse is like Parse but panics if path fails to parse.
func MustParse(reg *registry.Registry, path string) *spec.PathQuery {
	q, err := Parse(reg, path)
	if err != nil {
		panic(err)
	}
	return q
}

// parseSegments consumes a run of child and descendant segments, each
// optionally preceded by blank space, stopping (without error) at the
// first position that isn't a valid segment start -- typically the end
// of the query, a closing ')', or a ','.
func (p *parser) parseSegments() ([]spec.Segment, error) {
	var segs []spec.Segment
	for {
		save := p.pos
		p.skipBlank()
		switch {
		case p.consumeLiteral(".."):
			seg, err := p.parseDescendantSegment()
			if err != nil {
				return nil, err
			}
			segs = append(segs, seg)

		case p.consumeByte('.'):
			seg, err := p.parseDotSegment()
			if err != nil {
				return nil, err
			}
			segs = append(segs, seg)

		case !p.eof() && p.byteAt() == '[':
			sels, err := p.parseBracketedSelection()
			if err != nil {
				return nil, err
			}
			segs = append(segs, spec.Segment{Kind: spec.ChildSegment, Selectors: sels})

		default:
			p.pos = save
			return segs, nil
		}
	}
}

// parseDotSegment parses the tail of a child segment after its leading
// "." has been consumed: either ".*" or a member-name shorthand.
func (p *parser) parseDotSegment() (spec.Segment, error) {
	if p.consumeByte('*') {
		return spec.Segment{Kind: spec.ChildSegment, Selectors: []spec.Selector{spec.WildcardSelector{}}}, nil
	}
	if p.eof() || !isNameFirst(p.peek()) {
		return spec.Segment{}, p.errorf("expected member name or '*' after '.'")
	}
	name := p.scanName()
	return spec.Segment{Kind: spec.ChildSegment, Selectors: []spec.Selector{spec.NameSelector{Name: name}}}, nil
}

// parseDescendantSegment parses the tail of a descendant segment after
// its leading ".." has been consumed: a bracketed selection, ".*"'s
// bare-wildcard form, or a bare member-name shorthand.
func (p *parser) parseDescendantSegment() (spec.Segment, error) {
	switch {
	case !p.eof() && p.byteAt() == '[':
		sels, err := p.parseBracketedSelection()
		if err != nil {
			return spec.Segment{}, err
		}
		return spec.Segment{Kind: spec.DescendantSegment, Selectors: sels}, nil

	case p.consumeByte('*'):
		return spec.Segment{Kind: spec.DescendantSegment, Selectors: []spec.Selector{spec.WildcardSelector{}}}, nil

	case !p.eof() && isNameFirst(p.peek()):
		name := p.scanName()
		return spec.Segment{Kind: spec.DescendantSegment, Selectors: []spec.Selector{spec.NameSelector{Name: name}}}, nil

	default:
		return spec.Segment{}, p.errorf("expected selector after '..'")
	}
}

// parseBracketedSelection parses a "[selector,selector,...]" list.
func (p *parser) parseBracketedSelection() ([]spec.Selector, error) {
	if err := p.expectByte('['); err != nil {
		return nil, err
	}
	p.skipBlank()
	var sels []spec.Selector
	for {
		sel, err := p.parseSelector()
		if err != nil {
			return nil, err
		}
		sels = append(sels, sel)
		p.skipBlank()
		if p.consumeByte(',') {
			p.skipBlank()
			continue
		}
		break
	}
	if err := p.expectByte(']'); err != nil {
		return nil, err
	}
	return sels, nil
}

// parseSelector parses a single selector: wildcard, filter, quoted name,
// or the shared index/slice production.
func (p *parser) parseSelector() (spec.Selector, error) {
	if p.eof() {
		return nil, p.errorf("expected selector, found end of input")
	}
	switch c := p.byteAt(); {
	case c == '*':
		p.pos++
		return spec.WildcardSelector{}, nil

	case c == '?':
		p.pos++
		p.skipBlank()
		expr, err := p.parseLogicalOr()
		if err != nil {
			return nil, err
		}
		return spec.FilterSelector{Expr: expr}, nil

	case c == '\'' || c == '"':
		name, err := p.parseQuotedString()
		if err != nil {
			return nil, err
		}
		return spec.NameSelector{Name: name}, nil

	case c == ':':
		return p.parseSliceSelector(nil)

	case isDigit(c) || c == '-':
		start := p.pos
		n, err := p.parseIntLiteral()
		if err != nil {
			return nil, err
		}
		save := p.pos
		p.skipBlank()
		if !p.eof() && p.byteAt() == ':' {
			return p.parseSliceSelector(&n)
		}
		p.pos = save
		if p.lastWasNegZero {
			return nil, p.errorAt(start, "-0 is not a valid index")
		}
		return spec.IndexSelector{Index: n}, nil

	default:
		return nil, p.errorf("invalid selector")
	}
}

// parseSliceSelector parses the ":end:step" tail of a slice selector; the
// "start:" part, if any, has already been parsed into start and the
// current position is at the ':' that follows it.
func (p *parser) parseSliceSelector(start *int64) (spec.Selector, error) {
	if err := p.expectByte(':'); err != nil {
		return nil, err
	}
	p.skipBlank()
	var end, step *int64
	if !p.eof() && (isDigit(p.byteAt()) || p.byteAt() == '-') {
		v, err := p.parseIntLiteral()
		if err != nil {
			return nil, err
		}
		end = &v
		p.skipBlank()
	}
	if p.consumeByte(':') {
		p.skipBlank()
		if !p.eof() && (isDigit(p.byteAt()) || p.byteAt() == '-') {
			v, err := p.parseIntLiteral()
			if err != nil {
				return nil, err
			}
			step = &v
		}
	}
	return spec.SliceSelector{Start: start, End: end, Step: step}, nil
}

// parseFilterQuery parses a query appearing inside a filter expression:
// either a relative query rooted at "@" or an absolute one rooted at "$".
func (p *parser) parseFilterQuery() (*spec.PathQuery, error) {
	var relative bool
	switch {
	case p.consumeByte('@'):
		relative = true
	case p.consumeByte('$'):
		relative = false
	default:
		return nil, p.errorf("expected '@' or '$'")
	}
	segs, err := p.parseSegments()
	if err != nil {
		return nil, err
	}
	return &spec.PathQuery{Relative: relative, Segments: segs}, nil
}
