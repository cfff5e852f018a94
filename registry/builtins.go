package registry

import (
	"regexp"
	"regexp/syntax"

	"github.com/pathkit/jsonpath/internal/value"
	"github.com/pathkit/jsonpath/spec"
)

// builtins returns the five functions RFC 9535 §2.4.4-8 requires every
// conforming implementation to provide.
func builtins() []*Function {
	return []*Function{
		lengthFunc(),
		countFunc(),
		valueFunc(),
		matchFunc(),
		searchFunc(),
	}
}

// lengthFunc implements length(), §2.4.4: the length of a string (its
// count of Unicode scalar values), the count of elements in an array, the
// count of members in an object, or Nothing for any other value type.
func lengthFunc() *Function {
	return &Function{
		Name:       "length",
		ParamTypes: []spec.PathType{spec.PathValue},
		ResultType: spec.PathValue,
		Evaluate: func(args []spec.JSONPathValue) spec.JSONPathValue {
			v, ok := args[0].(spec.ValueType)
			if !ok || v.IsNothing() {
				return spec.Nothing
			}
			switch t := v.Value().(type) {
			case string:
				return spec.ValueFrom(float64(len([]rune(t))))
			case []any:
				return spec.ValueFrom(float64(len(t)))
			case *value.Object:
				return spec.ValueFrom(float64(t.Len()))
			case map[string]any:
				return spec.ValueFrom(float64(len(t)))
			default:
				return spec.Nothing
			}
		},
	}
}

// countFunc implements count(), §2.4.5: the number of nodes a node-list
// argument contains. Unlike length, count never produces Nothing: an
// empty node list yields a count of zero.
func countFunc() *Function {
	return &Function{
		Name:       "count",
		ParamTypes: []spec.PathType{spec.PathNodes},
		ResultType: spec.PathValue,
		Evaluate: func(args []spec.JSONPathValue) spec.JSONPathValue {
			n, ok := args[0].(spec.NodesType)
			if !ok {
				return spec.ValueFrom(float64(0))
			}
			return spec.ValueFrom(float64(len(n)))
		},
	}
}

// valueFunc implements value(), §2.4.8: the sole node of a node-list
// argument containing exactly one node, or Nothing if it contains zero or
// more than one.
func valueFunc() *Function {
	return &Function{
		Name:       "value",
		ParamTypes: []spec.PathType{spec.PathNodes},
		ResultType: spec.PathValue,
		Evaluate: func(args []spec.JSONPathValue) spec.JSONPathValue {
			n, ok := args[0].(spec.NodesType)
			if !ok || len(n) != 1 {
				return spec.Nothing
			}
			return spec.ValueFrom(n[0])
		},
	}
}

// matchFunc implements match(), §2.4.6: whether the entire first argument
// matches the I-Regexp pattern given by the second.
func matchFunc() *Function {
	return &Function{
		Name:       "match",
		ParamTypes: []spec.PathType{spec.PathValue, spec.PathValue},
		ResultType: spec.PathLogical,
		Evaluate: func(args []spec.JSONPathValue) spec.JSONPathValue {
			return spec.LogicalFrom(runRegex(args, true))
		},
	}
}

// searchFunc implements search(), §2.4.7: whether any substring of the
// first argument matches the I-Regexp pattern given by the second.
func searchFunc() *Function {
	return &Function{
		Name:       "search",
		ParamTypes: []spec.PathType{spec.PathValue, spec.PathValue},
		ResultType: spec.PathLogical,
		Evaluate: func(args []spec.JSONPathValue) spec.JSONPathValue {
			return spec.LogicalFrom(runRegex(args, false))
		},
	}
}

// runRegex extracts the subject and pattern strings from args, compiles
// the pattern per RFC 9485's I-Regexp-over-Go-regexp translation, and
// reports whether it matches (wholly, when anchor is true; anywhere,
// otherwise). Any type mismatch or regex compile failure is a silent
// false, consistent with RFC 9535's two-valued filter logic: a
// function-typed test never produces an error, only true or false.
func runRegex(args []spec.JSONPathValue, anchor bool) bool {
	subject, ok := stringArg(args, 0)
	if !ok {
		return false
	}
	pattern, ok := stringArg(args, 1)
	if !ok {
		return false
	}
	var re *regexp.Regexp
	var err error
	if anchor {
		re, err = compileAnchoredIRegexp(pattern)
	} else {
		re, err = CompileIRegexp(pattern)
	}
	if err != nil {
		return false
	}
	return re.MatchString(subject)
}

func stringArg(args []spec.JSONPathValue, i int) (string, bool) {
	if i >= len(args) {
		return "", false
	}
	v, ok := args[i].(spec.ValueType)
	if !ok || v.IsNothing() {
		return "", false
	}
	s, ok := v.Value().(string)
	return s, ok
}

// CompileIRegexp compiles pattern, an RFC 9485 I-Regexp, into a Go
// *regexp.Regexp whose "." does not match the line-terminator characters
// I-Regexp excludes it from (LF, CR, and the Unicode line/paragraph
// separators), which Go's default "." only partially honors. The pattern
// is parsed into a regexp/syntax tree, rewritten to replace every
// "any-char-except-newline" node with an explicit negated class, and
// recompiled -- the same AST-rewrite technique used to adapt XQuery regex
// flags to Go's regexp/syntax. Used as-is (unanchored) by search().
func CompileIRegexp(pattern string) (*regexp.Regexp, error) {
	rewritten, err := rewriteIRegexp(pattern)
	if err != nil {
		return nil, err
	}
	return regexp.Compile(rewritten)
}

// compileAnchoredIRegexp is CompileIRegexp wrapped in \A(?:...)\z so the
// compiled regexp only matches when it consumes the entire subject,
// exactly the semantics match() requires. Go's regexp package resolves
// alternation leftmost-first rather than leftmost-longest, so an
// unanchored FindStringIndex plus a post-hoc span check (checking
// whether the first match happens to span the whole subject) gives the
// wrong answer for a pattern like "a|ab" against "ab": the engine finds
// "a" at [0,1] first and never considers "ab", even though "ab" is also
// a valid match spanning the whole subject. Anchoring at compile time
// forces the engine to search for a match that fills the \A...\z
// bracket instead of merely checking the first unanchored match it
// happens to find.
func compileAnchoredIRegexp(pattern string) (*regexp.Regexp, error) {
	rewritten, err := rewriteIRegexp(pattern)
	if err != nil {
		return nil, err
	}
	return regexp.Compile(`\A(?:` + rewritten + `)\z`)
}

// rewriteIRegexp parses pattern as a Perl-syntax regexp, rewrites every
// "." to exclude the line terminators, and renders it back to source.
func rewriteIRegexp(pattern string) (string, error) {
	re, err := syntax.Parse(pattern, syntax.Perl)
	if err != nil {
		return "", err
	}
	replaceDot(re)
	return re.String(), nil
}

// lineTerminators are the runes I-Regexp's "." must not match, beyond the
// single '\n' Go's regexp/syntax.OpAnyCharNotNL already excludes.
var lineTerminators = []rune{'\n', '\r', '\u2028', '\u2029'}

// replaceDot walks re's parse tree in place, turning every
// OpAnyCharNotNL node (Go's rendering of an unflagged ".") into an
// OpCharClass that excludes all of lineTerminators, not just '\n'.
func replaceDot(re *syntax.Regexp) {
	if re.Op == syntax.OpAnyCharNotNL {
		re.Op = syntax.OpCharClass
		re.Rune = excludeRunesClass(lineTerminators)
		return
	}
	for _, sub := range re.Sub {
		replaceDot(sub)
	}
}

// excludeRunesClass returns a regexp/syntax rune-class (a sorted sequence
// of [lo,hi] pairs) matching every rune in [0, utf8.MaxRune] except those
// listed in excl, which must already be sorted ascending.
func excludeRunesClass(excl []rune) []rune {
	const maxRune = 0x10FFFF
	var out []rune
	lo := rune(0)
	for _, r := range excl {
		if r > lo {
			out = append(out, lo, r-1)
		}
		lo = r + 1
	}
	if lo <= maxRune {
		out = append(out, lo, maxRune)
	}
	return out
}
