package spec

import (
	"fmt"
	"strconv"
	"strings"
)

// LogicalOrExpr is a filter expression's top production: one or more
// logical-and-exprs joined by "||", left to right, short-circuiting.
type LogicalOrExpr struct {
	Operands []*LogicalAndExpr
}

// String renders the expression with canonical "||" joins.
func (e *LogicalOrExpr) String() string {
	parts := make([]string, len(e.Operands))
	for i, op := range e.Operands {
		parts[i] = op.String()
	}
	return strings.Join(parts, " || ")
}

// LogicalAndExpr is one or more basic-exprs joined by "&&", left to right,
// short-circuiting.
type LogicalAndExpr struct {
	Operands []BasicExpr
}

// String renders the expression with canonical "&&" joins.
func (e *LogicalAndExpr) String() string {
	parts := make([]string, len(e.Operands))
	for i, op := range e.Operands {
		parts[i] = op.String()
	}
	return strings.Join(parts, " && ")
}

// BasicExpr is one operand of a LogicalAndExpr: a parenthesized
// sub-expression, an existence/function test, or a comparison.
type BasicExpr interface {
	fmt.Stringer
	basicExprNode()
}

// ParenExpr is a parenthesized logical-or-expr, optionally negated.
type ParenExpr struct {
	Negated bool
	Expr    *LogicalOrExpr
}

func (*ParenExpr) basicExprNode() {}

// String renders "(expr)" or "!(expr)".
func (e *ParenExpr) String() string {
	if e.Negated {
		return "!(" + e.Expr.String() + ")"
	}
	return "(" + e.Expr.String() + ")"
}

// ExistExpr tests whether Query, a filter-query (relative or absolute),
// selects at least one node, optionally negated to test for non-existence.
type ExistExpr struct {
	Negated bool
	Query   *PathQuery
}

func (*ExistExpr) basicExprNode() {}

// String renders the query, prefixed with "!" when negated.
func (e *ExistExpr) String() string {
	if e.Negated {
		return "!" + e.Query.String()
	}
	return e.Query.String()
}

// CompOp is one of the six RFC 9535 comparison operators. Comparisons are
// non-associative: each comparison-expr has exactly one operator between
// exactly two comparables.
type CompOp uint8

const (
	CompEqual CompOp = iota
	CompNotEqual
	CompLess
	CompLessOrEqual
	CompGreater
	CompGreaterOrEqual
)

// String returns the operator's source-syntax spelling.
func (op CompOp) String() string {
	switch op {
	case CompEqual:
		return "=="
	case CompNotEqual:
		return "!="
	case CompLess:
		return "<"
	case CompLessOrEqual:
		return "<="
	case CompGreater:
		return ">"
	case CompGreaterOrEqual:
		return ">="
	default:
		return "?"
	}
}

// Comparable is one side of a ComparisonExpr: a literal, a singular query,
// or a function expression whose result type is Value.
type Comparable interface {
	fmt.Stringer
	comparableNode()
}

// ComparisonExpr compares two comparables with Op.
type ComparisonExpr struct {
	Left  Comparable
	Op    CompOp
	Right Comparable
}

func (*ComparisonExpr) basicExprNode() {}

// String renders "left op right".
func (e *ComparisonExpr) String() string {
	return e.Left.String() + " " + e.Op.String() + " " + e.Right.String()
}

// LiteralArg is a literal value appearing in a comparable position or as a
// function argument: a JSON number, string, boolean, or null.
type LiteralArg struct {
	Value any
}

func (LiteralArg) comparableNode() {}

// String renders the literal using JSON/JSONPath literal syntax.
func (l LiteralArg) String() string {
	switch v := l.Value.(type) {
	case nil:
		return "null"
	case bool:
		if v {
			return "true"
		}
		return "false"
	case string:
		return quoteString(v, '\'')
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return fmt.Sprint(v)
	}
}
