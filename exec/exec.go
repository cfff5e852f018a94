// Package exec evaluates a parsed *spec.PathQuery against an in-memory
// JSON value, implementing RFC 9535 §2's segment and selector semantics:
// the working-list walk that threads a NormalizedPath alongside each
// candidate node, child vs. descendant segment traversal, and the five
// selector kinds including filter-expression evaluation.
//
// Members of a *value.Object are visited in insertion order. A plain
// map[string]any records no order, so its members are visited in sorted
// key order instead (see value.FromMap).
package exec

import (
	"context"
	"errors"
	"fmt"

	"github.com/pathkit/jsonpath/internal/value"
	"github.com/pathkit/jsonpath/registry"
	"github.com/pathkit/jsonpath/spec"
)

// ErrExecution wraps every error exec itself returns, distinct from a
// context cancellation/deadline error, which is returned unwrapped so
// errors.Is(err, context.Canceled) keeps working.
var ErrExecution = errors.New("exec")

// ErrInvalid wraps errors caused by a malformed *spec.PathQuery reaching
// the evaluator -- a selector type evalSelector doesn't recognize. RFC
// 9535 evaluation itself never fails against well-formed input, so this
// path is only reachable from a hand-built AST, not from parser.Parse.
var ErrInvalid = fmt.Errorf("%w invalid", ErrExecution)

// item is one entry of the segment-evaluation working list: a candidate
// node paired with the normalized path that locates it from the root.
type item struct {
	path spec.NormalizedPath
	node any
}

// Executor evaluates queries against JSON values. The zero value is not
// usable; construct one with New.
type Executor struct {
	reg *registry.Registry
	ctx context.Context
}

// Option configures an Executor.
type Option func(*Executor)

// WithRegistry sets the function registry used to resolve and evaluate
// function calls encountered during evaluation. Queries are normally
// parsed and executed against the same registry, but an Executor doesn't
// require that: it only needs a registry that defines whatever functions
// the query's AST actually names.
func WithRegistry(reg *registry.Registry) Option {
	return func(e *Executor) { e.reg = reg }
}

// WithContext sets a context whose cancellation aborts a Select call in
// progress; checked at each segment boundary, the same granularity the
// teacher's exec.Executor uses its context for.
func WithContext(ctx context.Context) Option {
	return func(e *Executor) { e.ctx = ctx }
}

// New returns an Executor. Without WithRegistry, it resolves function
// calls against registry.NewDefault().
func New(opts ...Option) *Executor {
	e := &Executor{reg: registry.NewDefault(), ctx: context.Background()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Select evaluates query against root and returns the selected nodes in
// document order.
func (e *Executor) Select(query *spec.PathQuery, root any) (spec.NodeList, error) {
	items, err := e.evalQueryItems(query, root, root)
	if err != nil {
		return nil, err
	}
	out := make(spec.NodeList, len(items))
	for i, it := range items {
		out[i] = it.node
	}
	return out, nil
}

// SelectLocated is like Select but also returns each result's normalized
// path.
func (e *Executor) SelectLocated(query *spec.PathQuery, root any) (spec.LocatedNodeList, error) {
	items, err := e.evalQueryItems(query, root, root)
	if err != nil {
		return nil, err
	}
	out := make(spec.LocatedNodeList, len(items))
	for i, it := range items {
		out[i] = spec.LocatedNode{Path: it.path, Node: it.node}
	}
	return out, nil
}

// evalQueryItems runs query starting from "start" (root for an absolute
// query, the current filter node for a relative one), with root always
// available for any "$"-rooted sub-query a filter expression contains.
func (e *Executor) evalQueryItems(query *spec.PathQuery, start, root any) ([]item, error) {
	current := []item{{node: start}}
	for _, seg := range query.Segments {
		if err := e.checkCancel(); err != nil {
			return nil, err
		}
		next, err := e.evalSegment(seg, current, root)
		if err != nil {
			return nil, err
		}
		current = next
	}
	return current, nil
}

func (e *Executor) checkCancel() error {
	select {
	case <-e.ctx.Done():
		return e.ctx.Err()
	default:
		return nil
	}
}

// evalSegment applies seg to every item in current, concatenating each
// item's results in order.
func (e *Executor) evalSegment(seg spec.Segment, current []item, root any) ([]item, error) {
	var out []item
	for _, it := range current {
		switch seg.Kind {
		case spec.ChildSegment:
			res, err := e.evalSelectors(seg.Selectors, it, root)
			if err != nil {
				return nil, err
			}
			out = append(out, res...)

		case spec.DescendantSegment:
			var err error
			visitDescendants(it, func(visited item) bool {
				var res []item
				res, err = e.evalSelectors(seg.Selectors, visited, root)
				if err != nil {
					return false
				}
				out = append(out, res...)
				return true
			})
			if err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// visitDescendants calls visit for it and then, recursively, for every
// descendant of it.node, in the node-itself-then-children,
// depth-first-pre-order sequence RFC 9535 §2.5.2 specifies for
// descendant segments: array elements in index order, object members in
// source (insertion) order. It stops early if visit returns false.
func visitDescendants(it item, visit func(item) bool) bool {
	if !visit(it) {
		return false
	}
	switch v := it.node.(type) {
	case []any:
		for i, child := range v {
			childItem := item{path: appendPath(it.path, spec.Index(int64(i))), node: child}
			if !visitDescendants(childItem, visit) {
				return false
			}
		}
	case *value.Object:
		ok := true
		v.Each(func(k string, val any) bool {
			childItem := item{path: appendPath(it.path, spec.Name(k)), node: val}
			ok = visitDescendants(childItem, visit)
			return ok
		})
		if !ok {
			return false
		}
	case map[string]any:
		obj := value.FromMap(v)
		ok := true
		obj.Each(func(k string, val any) bool {
			childItem := item{path: appendPath(it.path, spec.Name(k)), node: val}
			ok = visitDescendants(childItem, visit)
			return ok
		})
		if !ok {
			return false
		}
	}
	return true
}

// appendPath returns it's path with elem appended, without mutating the
// original backing array -- required since sibling branches of the
// descendant walk share the same path prefix.
func appendPath(p spec.NormalizedPath, elem spec.PathElement) spec.NormalizedPath {
	out := make(spec.NormalizedPath, len(p)+1)
	copy(out, p)
	out[len(p)] = elem
	return out
}

// evalSelectors applies each of sels to it.node in order, concatenating
// their individual result lists.
func (e *Executor) evalSelectors(sels []spec.Selector, it item, root any) ([]item, error) {
	var out []item
	for _, sel := range sels {
		res, err := e.evalSelector(sel, it, root)
		if err != nil {
			return nil, err
		}
		out = append(out, res...)
	}
	return out, nil
}

func (e *Executor) evalSelector(sel spec.Selector, it item, root any) ([]item, error) {
	switch s := sel.(type) {
	case spec.NameSelector:
		return e.evalName(s, it), nil
	case spec.WildcardSelector:
		return evalWildcard(it), nil
	case spec.IndexSelector:
		return evalIndex(s, it), nil
	case spec.SliceSelector:
		return evalSlice(s, it), nil
	case spec.FilterSelector:
		return e.evalFilter(s, it, root)
	default:
		return nil, fmt.Errorf("%w: unrecognized selector type %T", ErrInvalid, sel)
	}
}

func (e *Executor) evalName(s spec.NameSelector, it item) []item {
	obj, ok := value.AsObject(it.node)
	if !ok {
		return nil
	}
	v, ok := obj.Get(s.Name)
	if !ok {
		return nil
	}
	return []item{{path: appendPath(it.path, spec.Name(s.Name)), node: v}}
}

func evalWildcard(it item) []item {
	if arr, ok := value.AsArray(it.node); ok {
		out := make([]item, len(arr))
		for i, v := range arr {
			out[i] = item{path: appendPath(it.path, spec.Index(int64(i))), node: v}
		}
		return out
	}
	if obj, ok := value.AsObject(it.node); ok {
		out := make([]item, 0, obj.Len())
		obj.Each(func(k string, v any) bool {
			out = append(out, item{path: appendPath(it.path, spec.Name(k)), node: v})
			return true
		})
		return out
	}
	return nil
}

func evalIndex(s spec.IndexSelector, it item) []item {
	arr, ok := value.AsArray(it.node)
	if !ok {
		return nil
	}
	idx := normalizeIndex(s.Index, len(arr))
	if idx < 0 || idx >= int64(len(arr)) {
		return nil
	}
	return []item{{path: appendPath(it.path, spec.Index(idx)), node: arr[idx]}}
}

// normalizeIndex converts a possibly-negative RFC 9535 index into its
// non-negative array position; a negative index i selects len+i, i.e. -1
// is the last element.
func normalizeIndex(i int64, length int) int64 {
	if i < 0 {
		return int64(length) + i
	}
	return i
}
