package exec

import (
	"github.com/pathkit/jsonpath/internal/value"
	"github.com/pathkit/jsonpath/spec"
)

// evalFilter implements the filter-selector, RFC 9535 §2.3.5: for an
// array, test every element in index order; for an object, test every
// member value in source order; any other node type selects nothing.
func (e *Executor) evalFilter(s spec.FilterSelector, it item, root any) ([]item, error) {
	if arr, ok := value.AsArray(it.node); ok {
		var out []item
		for i, child := range arr {
			ok, err := e.evalLogicalOr(s.Expr, child, root)
			if err != nil {
				return nil, err
			}
			if ok {
				out = append(out, item{path: appendPath(it.path, spec.Index(int64(i))), node: child})
			}
		}
		return out, nil
	}
	if obj, ok := value.AsObject(it.node); ok {
		var out []item
		var err error
		obj.Each(func(k string, child any) bool {
			var ok bool
			ok, err = e.evalLogicalOr(s.Expr, child, root)
			if err != nil {
				return false
			}
			if ok {
				out = append(out, item{path: appendPath(it.path, spec.Name(k)), node: child})
			}
			return true
		})
		if err != nil {
			return nil, err
		}
		return out, nil
	}
	return nil, nil
}

func (e *Executor) evalLogicalOr(expr *spec.LogicalOrExpr, current, root any) (bool, error) {
	for _, and := range expr.Operands {
		ok, err := e.evalLogicalAnd(and, current, root)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

func (e *Executor) evalLogicalAnd(expr *spec.LogicalAndExpr, current, root any) (bool, error) {
	for _, be := range expr.Operands {
		ok, err := e.evalBasicExpr(be, current, root)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

func (e *Executor) evalBasicExpr(be spec.BasicExpr, current, root any) (bool, error) {
	switch t := be.(type) {
	case *spec.ParenExpr:
		ok, err := e.evalLogicalOr(t.Expr, current, root)
		if err != nil {
			return false, err
		}
		if t.Negated {
			ok = !ok
		}
		return ok, nil

	case *spec.ExistExpr:
		items, err := e.evalFilterQueryItems(t.Query, current, root)
		if err != nil {
			return false, err
		}
		exists := len(items) > 0
		if t.Negated {
			exists = !exists
		}
		return exists, nil

	case *spec.ComparisonExpr:
		left, err := e.evalComparable(t.Left, current, root)
		if err != nil {
			return false, err
		}
		right, err := e.evalComparable(t.Right, current, root)
		if err != nil {
			return false, err
		}
		return compareValues(left, right, t.Op), nil

	case *spec.FunctionExpr:
		result, err := e.evalFunctionExpr(t, current, root)
		if err != nil {
			return false, err
		}
		return testFilterResult(result), nil

	case *spec.NotFuncExpr:
		result, err := e.evalFunctionExpr(t.Expr, current, root)
		if err != nil {
			return false, err
		}
		return !testFilterResult(result), nil

	default:
		return false, nil
	}
}

// testFilterResult reports a function call's result's truthiness when
// the call is itself used as a test-expr. parser.Parse only lets a bare
// function call or NotFuncExpr through when its ResultType is
// PathLogical, so in practice this always takes the LogicalType branch;
// the ValueType/NodesType branches are defensive handling for an AST
// built by hand rather than by the parser.
func testFilterResult(v spec.JSONPathValue) bool {
	switch t := v.(type) {
	case spec.LogicalType:
		return t.Bool()
	case spec.ValueType:
		return t.TestFilter()
	case spec.NodesType:
		return !t.Empty()
	default:
		return false
	}
}

func (e *Executor) evalComparable(c spec.Comparable, current, root any) (spec.ValueType, error) {
	switch v := c.(type) {
	case spec.LiteralArg:
		return spec.ValueFrom(v.Value), nil

	case spec.SingularQueryExpr:
		items, err := e.evalFilterQueryItems(v.Query, current, root)
		if err != nil {
			return spec.Nothing, err
		}
		if len(items) != 1 {
			return spec.Nothing, nil
		}
		return spec.ValueFrom(items[0].node), nil

	case *spec.FunctionExpr:
		result, err := e.evalFunctionExpr(v, current, root)
		if err != nil {
			return spec.Nothing, err
		}
		if vt, ok := result.(spec.ValueType); ok {
			return vt, nil
		}
		return spec.Nothing, nil

	default:
		return spec.Nothing, nil
	}
}

// evalFilterQueryItems evaluates q, a filter-query, starting from current
// if q is relative ("@") or from root if q is absolute ("$").
func (e *Executor) evalFilterQueryItems(q *spec.PathQuery, current, root any) ([]item, error) {
	start := root
	if q.Relative {
		start = current
	}
	return e.evalQueryItems(q, start, root)
}

func (e *Executor) evalFunctionExpr(fn *spec.FunctionExpr, current, root any) (spec.JSONPathValue, error) {
	def, ok := e.reg.Get(fn.Name)
	if !ok {
		return spec.Nothing, nil
	}
	args := make([]spec.JSONPathValue, len(fn.Args))
	for i, a := range fn.Args {
		switch av := a.(type) {
		case spec.LiteralArg:
			args[i] = spec.ValueFrom(av.Value)

		case spec.SingularQueryExpr:
			items, err := e.evalFilterQueryItems(av.Query, current, root)
			if err != nil {
				return spec.Nothing, err
			}
			if len(items) == 1 {
				args[i] = spec.ValueFrom(items[0].node)
			} else {
				args[i] = spec.Nothing
			}

		case spec.FilterQueryExpr:
			items, err := e.evalFilterQueryItems(av.Query, current, root)
			if err != nil {
				return spec.Nothing, err
			}
			nodes := make(spec.NodeList, len(items))
			for j, it := range items {
				nodes[j] = it.node
			}
			args[i] = spec.NodesFrom(nodes)

		case *spec.FunctionExpr:
			v, err := e.evalFunctionExpr(av, current, root)
			if err != nil {
				return spec.Nothing, err
			}
			args[i] = v
		}
	}
	return def.Evaluate(args), nil
}

// compareValues implements RFC 9535 §2.3.5.2.2's comparison semantics:
// Nothing is equal only to Nothing, ordering operators are defined only
// between two numbers or two strings, and == otherwise falls back to
// value.Equal's structural/numeric equality (which treats -0 and 0 as
// equal, satisfying RFC 9535's explicit requirement).
func compareValues(left, right spec.ValueType, op spec.CompOp) bool {
	if left.IsNothing() || right.IsNothing() {
		eq := left.IsNothing() && right.IsNothing()
		switch op {
		case spec.CompEqual:
			return eq
		case spec.CompNotEqual:
			return !eq
		default:
			return false
		}
	}
	switch op {
	case spec.CompEqual:
		return value.Equal(left.Value(), right.Value())
	case spec.CompNotEqual:
		return !value.Equal(left.Value(), right.Value())
	default:
		return compareOrdered(left.Value(), right.Value(), op)
	}
}

func compareOrdered(a, b any, op spec.CompOp) bool {
	switch av := a.(type) {
	case float64:
		bv, ok := b.(float64)
		if !ok {
			return false
		}
		return applyOrder(av < bv, av == bv, av > bv, op)
	case string:
		bv, ok := b.(string)
		if !ok {
			return false
		}
		return applyOrder(av < bv, av == bv, av > bv, op)
	default:
		return false
	}
}

func applyOrder(lt, eq, gt bool, op spec.CompOp) bool {
	switch op {
	case spec.CompLess:
		return lt
	case spec.CompLessOrEqual:
		return lt || eq
	case spec.CompGreater:
		return gt
	case spec.CompGreaterOrEqual:
		return gt || eq
	default:
		return false
	}
}
