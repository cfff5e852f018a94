// Package jsonpath implements RFC 9535 JSONPath: parsing a query string
// into a reusable Path, and evaluating a Path against any JSON value to
// select a list of nodes or their located (path-annotated) equivalents.
package jsonpath

import (
	"context"

	"github.com/pathkit/jsonpath/exec"
	"github.com/pathkit/jsonpath/parser"
	"github.com/pathkit/jsonpath/registry"
	"github.com/pathkit/jsonpath/spec"
)

// Path is a parsed, immutable JSONPath query, ready to run against any
// number of JSON values.
type Path struct {
	query *spec.PathQuery
	reg   *registry.Registry
}

// Parse parses path as a JSONPath query string, resolving any function
// calls it contains against the default registry (length, count, match,
// search, value).
func Parse(path string) (*Path, error) {
	return NewParser().Parse(path)
}

// MustParse is like Parse but panics if path fails to parse. It's
// intended for package-level Path variables built from a literal query
// known to be valid.
func MustParse(path string) *Path {
	p, err := Parse(path)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the canonical JSONPath rendering of p.
func (p *Path) String() string { return p.query.String() }

// IsSingular reports whether p can select at most one node from any
// input value.
func (p *Path) IsSingular() bool { return p.query.IsSingular() }

// Select evaluates p against value and returns the selected nodes, in
// the document order RFC 9535 §2.5 defines.
func (p *Path) Select(value any) (spec.NodeList, error) {
	return p.executor().Select(p.query, value)
}

// SelectLocated is like Select, but also returns each result node's
// normalized path within value.
func (p *Path) SelectLocated(value any) (spec.LocatedNodeList, error) {
	return p.executor().SelectLocated(p.query, value)
}

// SelectContext is like Select, but aborts (with ctx.Err()) if ctx is
// canceled before evaluation completes; checked between segments, so a
// pathological query over a huge document can still be interrupted.
func (p *Path) SelectContext(ctx context.Context, value any) (spec.NodeList, error) {
	return exec.New(exec.WithRegistry(p.reg), exec.WithContext(ctx)).Select(p.query, value)
}

// First returns the first node p selects from value, or an
// *spec.ExactlyOneError if it selects none. Useful for the common case of
// a query the caller expects to be effectively singular against
// well-formed input, without requiring IsSingular() at parse time.
func (p *Path) First(value any) (any, error) {
	nodes, err := p.Select(value)
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, &spec.ExactlyOneError{Count: 0}
	}
	return nodes[0], nil
}

func (p *Path) executor() *exec.Executor {
	return exec.New(exec.WithRegistry(p.reg))
}

// NewParser is an alias for NewParserWithRegistry(registry.NewDefault()),
// provided so the common case doesn't need to import the registry
// package just to call Parse.
func NewParser() *Parser {
	return NewParserWithRegistry(registry.NewDefault())
}

// NewParserWithoutRegex is like NewParser but builds its registry from
// registry.NewDefaultWithoutRegex, so a query calling match() or
// search() fails to parse instead of running. It's the Go expression of
// RFC 9535's optional "regex engine" capability, for callers who want to
// withhold that capability rather than assume it's always present.
func NewParserWithoutRegex() *Parser {
	return NewParserWithRegistry(registry.NewDefaultWithoutRegex())
}

// Parser parses JSONPath query strings against a fixed function
// registry, letting a caller register extension functions once and reuse
// the parser across many queries.
type Parser struct {
	reg *registry.Registry
}

// NewParserWithRegistry returns a Parser that resolves function calls
// against reg.
func NewParserWithRegistry(reg *registry.Registry) *Parser {
	return &Parser{reg: reg}
}

// Parse parses path against p's registry.
func (p *Parser) Parse(path string) (*Path, error) {
	q, err := parser.Parse(p.reg, path)
	if err != nil {
		return nil, err
	}
	return &Path{query: q, reg: p.reg}, nil
}
