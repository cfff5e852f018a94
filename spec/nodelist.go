package spec

import (
	"fmt"
	"iter"
	"sort"
)

// NodeList is an ordered, possibly-duplicate-containing sequence of nodes
// selected by a query. Nodes are borrowed references into the JSON value
// the query was run against; a NodeList must not outlive that value.
type NodeList []any

// Len returns the number of nodes in n.
func (n NodeList) Len() int { return len(n) }

// First returns the first node in n, or nil if n is empty.
func (n NodeList) First() any {
	if len(n) == 0 {
		return nil
	}
	return n[0]
}

// Last returns the last node in n, or nil if n is empty.
func (n NodeList) Last() any {
	if len(n) == 0 {
		return nil
	}
	return n[len(n)-1]
}

// Get returns the node at index i. Panics if i is out of range, matching
// ordinary slice indexing.
func (n NodeList) Get(i int) any { return n[i] }

// All returns an iterator over the nodes in order (provided for symmetry
// with LocatedNodeList.All; NodeList itself is already a slice).
func (n NodeList) All() iter.Seq[any] {
	return func(yield func(any) bool) {
		for _, v := range n {
			if !yield(v) {
				return
			}
		}
	}
}

// ExactlyOneError reports that a NodeList did not contain exactly one node.
// It distinguishes the "found nothing" and "found more than one" cases so
// callers can react differently (e.g. treat "nothing" as optional but
// "more than one" as a query bug).
type ExactlyOneError struct {
	// Count is the number of nodes actually found. Zero means empty;
	// anything greater than one means MoreThanOne.
	Count int
}

// Error implements the error interface.
func (e *ExactlyOneError) Error() string {
	if e.Count == 0 {
		return "jsonpath: expected exactly one node, found none"
	}
	return fmt.Sprintf("jsonpath: expected exactly one node, found %d", e.Count)
}

// Empty reports whether the list that produced e was empty.
func (e *ExactlyOneError) Empty() bool { return e.Count == 0 }

// MoreThanOne reports whether the list that produced e had more than one
// node, returning the count.
func (e *ExactlyOneError) MoreThanOne() (int, bool) {
	return e.Count, e.Count > 1
}

// ExactlyOne returns the sole node in n, or an *ExactlyOneError if n does
// not contain exactly one node.
func (n NodeList) ExactlyOne() (any, error) {
	if len(n) != 1 {
		return nil, &ExactlyOneError{Count: len(n)}
	}
	return n[0], nil
}

// AtMostOne returns the sole node in n (or nil if n is empty), or an
// *ExactlyOneError if n contains more than one node.
func (n NodeList) AtMostOne() (any, error) {
	switch len(n) {
	case 0:
		return nil, nil
	case 1:
		return n[0], nil
	default:
		return nil, &ExactlyOneError{Count: len(n)}
	}
}

// LocatedNode pairs a node with the NormalizedPath that locates it in the
// queried document.
type LocatedNode struct {
	Path NormalizedPath
	Node any
}

// LocatedNodeList is an ordered sequence of LocatedNodes, in the same
// document-order the evaluator visited them.
type LocatedNodeList []LocatedNode

// Len returns the number of entries in n.
func (n LocatedNodeList) Len() int { return len(n) }

// Nodes returns just the node half of each pair, in order; it equals what
// the unlocated Query would have returned for the same input.
func (n LocatedNodeList) Nodes() iter.Seq[any] {
	return func(yield func(any) bool) {
		for _, ln := range n {
			if !yield(ln.Node) {
				return
			}
		}
	}
}

// Paths returns just the path half of each pair, in order.
func (n LocatedNodeList) Paths() iter.Seq[NormalizedPath] {
	return func(yield func(NormalizedPath) bool) {
		for _, ln := range n {
			if !yield(ln.Path) {
				return
			}
		}
	}
}

// All returns an iterator over the (path, node) pairs in order.
func (n LocatedNodeList) All() iter.Seq[LocatedNode] {
	return func(yield func(LocatedNode) bool) {
		for _, ln := range n {
			if !yield(ln) {
				return
			}
		}
	}
}

// NodeList projects n down to its unlocated NodeList, preserving order.
func (n LocatedNodeList) NodeList() NodeList {
	out := make(NodeList, len(n))
	for i, ln := range n {
		out[i] = ln.Node
	}
	return out
}

// Deduplicate returns a new LocatedNodeList retaining only the first
// occurrence of each distinct NormalizedPath, preserving relative order.
// Deduplication is by normalized-path equality; node-value equality is
// irrelevant, per spec.
func (n LocatedNodeList) Deduplicate() LocatedNodeList {
	seen := make(map[string]struct{}, len(n))
	out := make(LocatedNodeList, 0, len(n))
	for _, ln := range n {
		key := ln.Path.String()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, ln)
	}
	return out
}

// Clone returns a shallow copy of n, safe to mutate (e.g. sort) without
// affecting n.
func (n LocatedNodeList) Clone() LocatedNodeList {
	out := make(LocatedNodeList, len(n))
	copy(out, n)
	return out
}

// Sort sorts n in place by normalized path string, ascending.
func (n LocatedNodeList) Sort() {
	sort.Slice(n, func(i, j int) bool {
		return n[i].Path.String() < n[j].Path.String()
	})
}
