package spec

import (
	"fmt"
	"strings"
)

// FunctionExprArg is one argument to a function call: a literal, a
// singular query, a filter-query (non-singular, or used for its node
// list), or a nested function call.
type FunctionExprArg interface {
	fmt.Stringer
	// FuncType reports the argument's own type, before any implicit
	// conversion to the parameter type the called function declares.
	FuncType() FuncType
}

// FuncType implements FunctionExprArg for a bare literal.
func (LiteralArg) FuncType() FuncType { return FuncLiteral }

// SingularQueryExpr is a query argument known, at parse time, to select at
// most one node; it supplies a ValueType (or Nothing) argument.
type SingularQueryExpr struct {
	Query *PathQuery
}

// FuncType implements FunctionExprArg.
func (SingularQueryExpr) FuncType() FuncType { return FuncSingularQuery }

// String renders the wrapped query.
func (e SingularQueryExpr) String() string { return e.Query.String() }

func (SingularQueryExpr) comparableNode() {}

// FilterQueryExpr is a query argument used for its full node list, either
// because it's non-singular or because the parameter itself wants
// NodesType.
type FilterQueryExpr struct {
	Query *PathQuery
}

// FuncType implements FunctionExprArg.
func (FilterQueryExpr) FuncType() FuncType { return FuncNodeList }

// String renders the wrapped query.
func (e FilterQueryExpr) String() string { return e.Query.String() }

// FunctionExpr is a function call: a name from the active registry and
// its argument list. ResultType is filled in by the parser once the
// function is resolved in the registry and argument types are validated
// against its signature, per RFC 9535 §2.4.3.
type FunctionExpr struct {
	Name       string
	Args       []FunctionExprArg
	ResultType PathType
}

// FuncType implements FunctionExprArg, for nested function-call arguments.
func (f *FunctionExpr) FuncType() FuncType {
	switch f.ResultType {
	case PathLogical:
		return FuncLogical
	case PathNodes:
		return FuncNodeList
	default:
		return FuncValue
	}
}

func (*FunctionExpr) basicExprNode()  {}
func (*FunctionExpr) comparableNode() {}

// String renders "name(arg1,arg2,...)".
func (f *FunctionExpr) String() string {
	parts := make([]string, len(f.Args))
	for i, a := range f.Args {
		parts[i] = a.String()
	}
	return f.Name + "(" + strings.Join(parts, ",") + ")"
}

// NotFuncExpr negates a boolean-typed function call used as a test-expr,
// e.g. "!match(@.a, 'x')". It's distinct from ParenExpr's negation because it
// wraps a bare function call rather than a parenthesized logical-or-expr.
type NotFuncExpr struct {
	Expr *FunctionExpr
}

func (*NotFuncExpr) basicExprNode() {}

// String renders "!name(args)".
func (n *NotFuncExpr) String() string { return "!" + n.Expr.String() }
