package parser

import "github.com/pathkit/jsonpath/spec"

// parseLogicalOr parses a logical-or-expr: one or more logical-and-exprs
// joined by "||", left-associative and short-circuiting at evaluation
// time (the parser itself doesn't short-circuit; exec does).
func (p *parser) parseLogicalOr() (*spec.LogicalOrExpr, error) {
	first, err := p.parseLogicalAnd()
	if err != nil {
		return nil, err
	}
	ops := []*spec.LogicalAndExpr{first}
	for {
		save := p.pos
		p.skipBlank()
		if !p.consumeLiteral("||") {
			p.pos = save
			break
		}
		p.skipBlank()
		next, err := p.parseLogicalAnd()
		if err != nil {
			return nil, err
		}
		ops = append(ops, next)
	}
	return &spec.LogicalOrExpr{Operands: ops}, nil
}

// parseLogicalAnd parses a logical-and-expr: one or more basic-exprs
// joined by "&&".
func (p *parser) parseLogicalAnd() (*spec.LogicalAndExpr, error) {
	first, err := p.parseBasicExpr()
	if err != nil {
		return nil, err
	}
	ops := []spec.BasicExpr{first}
	for {
		save := p.pos
		p.skipBlank()
		if !p.consumeLiteral("&&") {
			p.pos = save
			break
		}
		p.skipBlank()
		next, err := p.parseBasicExpr()
		if err != nil {
			return nil, err
		}
		ops = append(ops, next)
	}
	return &spec.LogicalAndExpr{Operands: ops}, nil
}

// parseBasicExpr parses one operand of a logical-and-expr: a (possibly
// negated) parenthesized expression, a (possibly negated) existence or
// function test, or a comparison.
func (p *parser) parseBasicExpr() (spec.BasicExpr, error) {
	negated := p.consumeByte('!')

	if !p.eof() && p.byteAt() == '(' {
		return p.parseParenExpr(negated)
	}

	if negated {
		return p.parseNegatedTestExpr()
	}

	return p.parseComparisonOrTest()
}

// parseParenExpr parses "(" logical-or-expr ")", already knowing whether
// it was preceded by a "!".
func (p *parser) parseParenExpr(negated bool) (spec.BasicExpr, error) {
	if err := p.expectByte('('); err != nil {
		return nil, err
	}
	p.skipBlank()
	inner, err := p.parseLogicalOr()
	if err != nil {
		return nil, err
	}
	p.skipBlank()
	if err := p.expectByte(')'); err != nil {
		return nil, err
	}
	return &spec.ParenExpr{Negated: negated, Expr: inner}, nil
}

// parseNegatedTestExpr parses the operand of a leading "!" that isn't a
// parenthesized expression: a filter-query (existence test) or a
// function call.
func (p *parser) parseNegatedTestExpr() (spec.BasicExpr, error) {
	if !p.eof() && (p.byteAt() == '@' || p.byteAt() == '$') {
		q, err := p.parseFilterQuery()
		if err != nil {
			return nil, err
		}
		return &spec.ExistExpr{Negated: true, Query: q}, nil
	}
	if !p.eof() && isFuncNameStart(rune(p.byteAt())) {
		start := p.pos
		fn, err := p.parseFunctionExpr()
		if err != nil {
			return nil, err
		}
		if fn.ResultType != spec.PathLogical {
			return nil, p.errorAt(start, "function %q does not return a logical value, so its result requires a comparison", fn.Name)
		}
		return &spec.NotFuncExpr{Expr: fn}, nil
	}
	return nil, p.errorf("expected query or function call after '!'")
}

// parseComparisonOrTest parses a basic-expr that isn't negated and isn't
// parenthesized: a bare filter-query (an existence test), a bare or
// compared function call, or a literal-led comparison.
func (p *parser) parseComparisonOrTest() (spec.BasicExpr, error) {
	switch {
	case !p.eof() && (p.byteAt() == '@' || p.byteAt() == '$'):
		q, err := p.parseFilterQuery()
		if err != nil {
			return nil, err
		}
		save := p.pos
		p.skipBlank()
		op, ok := p.tryParseCompOp()
		if !ok {
			p.pos = save
			return &spec.ExistExpr{Query: q}, nil
		}
		if !q.IsSingular() {
			return nil, p.errorAt(save, "a non-singular query cannot be compared")
		}
		p.skipBlank()
		right, err := p.parseComparable()
		if err != nil {
			return nil, err
		}
		return &spec.ComparisonExpr{Left: spec.SingularQueryExpr{Query: q}, Op: op, Right: right}, nil

	case !p.eof() && isFuncNameStart(rune(p.byteAt())) && !p.atKeywordLiteral():
		start := p.pos
		fn, err := p.parseFunctionExpr()
		if err != nil {
			return nil, err
		}
		save := p.pos
		p.skipBlank()
		op, ok := p.tryParseCompOp()
		if !ok {
			if fn.ResultType != spec.PathLogical {
				return nil, p.errorAt(start, "function %q does not return a logical value, so its result requires a comparison", fn.Name)
			}
			p.pos = save
			return fn, nil
		}
		p.skipBlank()
		right, err := p.parseComparable()
		if err != nil {
			return nil, err
		}
		return &spec.ComparisonExpr{Left: fn, Op: op, Right: right}, nil

	default:
		lit, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		p.skipBlank()
		op, ok := p.tryParseCompOp()
		if !ok {
			return nil, p.errorf("expected a comparison operator after literal")
		}
		p.skipBlank()
		right, err := p.parseComparable()
		if err != nil {
			return nil, err
		}
		return &spec.ComparisonExpr{Left: lit, Op: op, Right: right}, nil
	}
}

// parseComparable parses the right-hand side of a comparison: a literal,
// a singular query, or a function call.
func (p *parser) parseComparable() (spec.Comparable, error) {
	switch {
	case !p.eof() && (p.byteAt() == '@' || p.byteAt() == '$'):
		start := p.pos
		q, err := p.parseFilterQuery()
		if err != nil {
			return nil, err
		}
		if !q.IsSingular() {
			return nil, p.errorAt(start, "a non-singular query cannot be compared")
		}
		return spec.SingularQueryExpr{Query: q}, nil

	case !p.eof() && isFuncNameStart(rune(p.byteAt())) && !p.atKeywordLiteral():
		return p.parseFunctionExpr()

	default:
		return p.parseLiteral()
	}
}

// atKeywordLiteral reports whether the name at the current position is one
// of the literals true, false, or null rather than a function name.
func (p *parser) atKeywordLiteral() bool {
	save := p.pos
	name := p.scanFuncName()
	p.pos = save
	return name == "true" || name == "false" || name == "null"
}

// tryParseCompOp consumes one of the six comparison operators if present,
// reporting ok=false (and consuming nothing) otherwise.
func (p *parser) tryParseCompOp() (spec.CompOp, bool) {
	switch {
	case p.consumeLiteral("=="):
		return spec.CompEqual, true
	case p.consumeLiteral("!="):
		return spec.CompNotEqual, true
	case p.consumeLiteral("<="):
		return spec.CompLessOrEqual, true
	case p.consumeLiteral(">="):
		return spec.CompGreaterOrEqual, true
	case p.consumeLiteral("<"):
		return spec.CompLess, true
	case p.consumeLiteral(">"):
		return spec.CompGreater, true
	default:
		return 0, false
	}
}

// parseLiteral parses a JSON literal: a string, number, true, false, or
// null.
func (p *parser) parseLiteral() (spec.LiteralArg, error) {
	if p.eof() {
		return spec.LiteralArg{}, p.errorf("expected literal, found end of input")
	}
	switch c := p.byteAt(); {
	case c == '\'' || c == '"':
		s, err := p.parseQuotedString()
		if err != nil {
			return spec.LiteralArg{}, err
		}
		return spec.LiteralArg{Value: s}, nil

	case isDigit(c) || c == '-':
		f, err := p.parseNumberLiteral()
		if err != nil {
			return spec.LiteralArg{}, err
		}
		return spec.LiteralArg{Value: f}, nil

	case p.consumeLiteral("true"):
		return spec.LiteralArg{Value: true}, nil

	case p.consumeLiteral("false"):
		return spec.LiteralArg{Value: false}, nil

	case p.consumeLiteral("null"):
		return spec.LiteralArg{Value: nil}, nil

	default:
		return spec.LiteralArg{}, p.errorf("expected a literal value")
	}
}

// isFuncNameStart reports whether r may begin a function name: RFC 9535
// function names are lowercase-ASCII identifiers.
func isFuncNameStart(r rune) bool { return r >= 'a' && r <= 'z' }

// isFuncNameChar reports whether r may continue a function name.
func isFuncNameChar(r rune) bool {
	return isFuncNameStart(r) || r == '_' || (r >= '0' && r <= '9')
}

// scanFuncName consumes a maximal run of function-name characters.
func (p *parser) scanFuncName() string {
	start := p.pos
	for !p.eof() {
		r := rune(p.byteAt())
		if !isFuncNameChar(r) {
			break
		}
		p.pos++
	}
	return p.query[start:p.pos]
}

// parseFunctionExpr parses a function call: name "(" args ")", resolving
// name against the parser's registry and validating argument count and
// types against its signature.
func (p *parser) parseFunctionExpr() (*spec.FunctionExpr, error) {
	start := p.pos
	name := p.scanFuncName()
	if err := p.expectByte('('); err != nil {
		return nil, err
	}
	p.skipBlank()
	var args []spec.FunctionExprArg
	if p.eof() || p.byteAt() != ')' {
		for {
			arg, err := p.parseFunctionArg()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			p.skipBlank()
			if p.consumeByte(',') {
				p.skipBlank()
				continue
			}
			break
		}
	}
	if err := p.expectByte(')'); err != nil {
		return nil, err
	}

	fn, ok := p.reg.Get(name)
	if !ok {
		return nil, p.errorAt(start, "unknown function %q", name)
	}
	if len(args) != fn.Arity() {
		return nil, p.errorAt(start, "function %q expects %d argument(s), got %d", name, fn.Arity(), len(args))
	}
	for i, a := range args {
		if sq, ok := a.(spec.SingularQueryExpr); ok && fn.ParamTypes[i] != spec.PathValue {
			a = spec.FilterQueryExpr{Query: sq.Query}
			args[i] = a
		}
		if !a.FuncType().ConvertsTo(fn.ParamTypes[i]) {
			return nil, p.errorAt(start, "argument %d to function %q has an incompatible type", i+1, name)
		}
	}
	return &spec.FunctionExpr{Name: name, Args: args, ResultType: fn.ResultType}, nil
}

// parseFunctionArg parses one function-call argument: a query (wrapped as
// a SingularQueryExpr or FilterQueryExpr depending on its singularity), a
// nested function call, or a literal.
func (p *parser) parseFunctionArg() (spec.FunctionExprArg, error) {
	switch {
	case !p.eof() && (p.byteAt() == '@' || p.byteAt() == '$'):
		q, err := p.parseFilterQuery()
		if err != nil {
			return nil, err
		}
		if q.IsSingular() {
			return spec.SingularQueryExpr{Query: q}, nil
		}
		return spec.FilterQueryExpr{Query: q}, nil

	case !p.eof() && isFuncNameStart(rune(p.byteAt())) && !p.atKeywordLiteral():
		return p.parseFunctionExpr()

	default:
		return p.parseLiteral()
	}
}
