package spec

import (
	"fmt"
	"strconv"
)

// PathType is the type a JSONPathValue may be converted to when it flows
// into a position (a function parameter, or a filter's logical/comparable
// position) that requires a specific one of the three. It mirrors RFC
// 9535 §2.4.1's ValueType/LogicalType/NodesType trio.
type PathType uint8

const (
	// PathValue is a single JSON value (or Nothing).
	PathValue PathType = iota
	// PathLogical is a boolean-valued result, used only in a filter's
	// logical-expr positions.
	PathLogical
	// PathNodes is a (possibly empty) node list, the result of evaluating
	// a filter-query.
	PathNodes
)

// String names the path type, for diagnostics.
func (t PathType) String() string {
	switch t {
	case PathValue:
		return "ValueType"
	case PathLogical:
		return "LogicalType"
	case PathNodes:
		return "NodesType"
	default:
		return "unknown"
	}
}

// FuncType is the type of a function-call argument expression as written,
// before conversion to the PathType its parameter declares, per the RFC
// 9535 §2.4.1 function type system. It differs from PathType in that it
// also distinguishes a bare literal from a computed value, to drive the
// table of permitted implicit conversions in ConvertsTo.
type FuncType uint8

const (
	// FuncLiteral is an AST literal: a JSON number, string, bool, or null.
	FuncLiteral FuncType = iota
	// FuncSingularQuery is a singular query: converts to ValueType (the
	// queried node's value, or Nothing if the query selects no node).
	FuncSingularQuery
	// FuncValue is a value already of ValueType (e.g. another function
	// call's result).
	FuncValue
	// FuncNodeList is a node list: the result of a non-singular query, or
	// of a function whose declared result type is NodesType.
	FuncNodeList
	// FuncLogical is a LogicalType value: the result of a filter
	// sub-expression or a function whose declared result type is
	// LogicalType.
	FuncLogical
)

// ConvertsTo reports whether a value of type t may be used where a
// parameter declared as pv is expected, per RFC 9535 Table 7's implicit
// conversion rules: a NodesType argument converts to LogicalType (testing
// for non-empty) but not to ValueType, which only a literal, a singular
// query, or a value-typed result supplies; a LogicalType argument converts
// only to LogicalType.
func (t FuncType) ConvertsTo(pv PathType) bool {
	switch t {
	case FuncLiteral, FuncSingularQuery, FuncValue:
		return pv == PathValue
	case FuncNodeList:
		return pv == PathNodes || pv == PathLogical
	case FuncLogical:
		return pv == PathLogical
	default:
		return false
	}
}

// JSONPathValue is a value flowing through filter-expression and
// function-argument evaluation: a ValueType, a LogicalType, or a
// NodesType.
type JSONPathValue interface {
	fmt.Stringer
	// PathType returns which of the three result categories this value
	// belongs to.
	PathType() PathType
}

// NodesType is a filter-query's result: the list of nodes it selected.
type NodesType NodeList

// PathType implements JSONPathValue.
func (NodesType) PathType() PathType { return PathNodes }

// String renders the node count, for diagnostics; node lists have no
// JSONPath literal syntax.
func (n NodesType) String() string { return fmt.Sprintf("NodesType(len=%d)", len(n)) }

// NodesFrom converts a NodeList into a NodesType.
func NodesFrom(n NodeList) NodesType { return NodesType(n) }

// Empty reports whether n selected no nodes.
func (n NodesType) Empty() bool { return len(n) == 0 }

// LogicalType is a filter sub-expression's two-valued (no "error") result.
type LogicalType bool

const (
	LogicalFalse LogicalType = false
	LogicalTrue  LogicalType = true
)

// PathType implements JSONPathValue.
func (LogicalType) PathType() PathType { return PathLogical }

// String renders "true" or "false".
func (l LogicalType) String() string {
	if l {
		return "true"
	}
	return "false"
}

// Bool returns l as a plain bool.
func (l LogicalType) Bool() bool { return bool(l) }

// LogicalFrom converts a plain bool into a LogicalType.
func LogicalFrom(b bool) LogicalType { return LogicalType(b) }

// LogicalNot returns the negation of l.
func LogicalNot(l LogicalType) LogicalType { return !l }

// ValueType wraps a single JSON value (nil, bool, float64, string, []any,
// *value.Object) or the special Nothing sentinel produced when a singular
// query selects no node.
type ValueType struct {
	val       any
	isNothing bool
}

// PathType implements JSONPathValue.
func (ValueType) PathType() PathType { return PathValue }

// Nothing is the ValueType representing "no value", distinct from JSON
// null: the result of a singular query that selected no node, or of a
// function parameter left unfulfilled by one.
var Nothing = ValueType{isNothing: true}

// ValueFrom wraps v as a present ValueType.
func ValueFrom(v any) ValueType { return ValueType{val: v} }

// IsNothing reports whether v is the Nothing sentinel.
func (v ValueType) IsNothing() bool { return v.isNothing }

// Value returns the wrapped value; meaningless if IsNothing().
func (v ValueType) Value() any { return v.val }

// String renders the wrapped value's Go representation; Nothing renders
// as "<nothing>", which never appears in JSONPath source syntax.
func (v ValueType) String() string {
	if v.isNothing {
		return "<nothing>"
	}
	switch t := v.val.(type) {
	case nil:
		return "null"
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprintf("%v", t)
	}
}

// TestFilter reports the truthiness of v when used directly as a
// test-expr. A well-formed query never reaches this for a plain
// filter-query (those test on node existence, not on the selected
// value) or for a function call (parser.Parse rejects a bare function
// test-expr unless its ResultType is PathLogical); it remains reachable
// only from a hand-built AST that bypasses the parser.
func (v ValueType) TestFilter() bool {
	if v.isNothing {
		return false
	}
	switch t := v.val.(type) {
	case nil:
		return false
	case bool:
		return t
	default:
		return true
	}
}
