// Package registry holds tables of JSONPath functions available to filter
// expressions: the five built-ins RFC 9535 §2.4.4-8 requires (length,
// count, match, search, value) plus any extensions a caller registers.
// Each Registry is an independent value: there is no package-level
// registry, and every NewDefault call builds a new one. Its shape -- a New
// constructor, a mutex-guarded map, Register and Get -- follows the
// registry package of the real-world RFC 9535 implementation this
// module's parser and function type system are grounded on.
package registry

import (
	"sync"

	"github.com/pathkit/jsonpath/spec"
)

// Function describes one callable entry: its declared parameter types
// (used by the parser to validate argument conversions at parse time, per
// RFC 9535 §2.4.3), its result type, and the evaluator that computes its
// value at query-evaluation time.
type Function struct {
	// Name is the function's identifier, as it appears in JSONPath source.
	Name string
	// ParamTypes lists the declared type of each positional parameter.
	// Variadic or optional parameters are not part of RFC 9535; every
	// built-in and extension function has a fixed arity.
	ParamTypes []spec.PathType
	// ResultType is the type of value Evaluate returns.
	ResultType spec.PathType
	// Evaluate computes the function's result from already-converted
	// argument values, one per ParamTypes entry, in order.
	Evaluate func(args []spec.JSONPathValue) spec.JSONPathValue
}

// Arity returns the number of parameters f declares.
func (f *Function) Arity() int { return len(f.ParamTypes) }

// Registry is a mutex-guarded table of functions, keyed by name.
type Registry struct {
	mu    sync.RWMutex
	funcs map[string]*Function
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{funcs: make(map[string]*Function)}
}

// Register adds fn to r under fn.Name, replacing any function already
// registered under that name: names are registered once at startup and
// are globally unique within a Registry, but a later Register call
// (including one of the five built-ins' own names) intentionally
// overrides an earlier one rather than erroring, so a caller can extend
// or override a registry's built-ins without constructing one by hand.
func (r *Registry) Register(fn *Function) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.funcs[fn.Name] = fn
	return nil
}

// MustRegister is like Register but panics on error; Register currently
// never errors, but MustRegister is kept so a registry's own fixed set
// of built-ins can be installed the same way extensions are.
func (r *Registry) MustRegister(fn *Function) {
	if err := r.Register(fn); err != nil {
		panic(err)
	}
}

// Get looks up a function by name.
func (r *Registry) Get(name string) (*Function, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.funcs[name]
	return fn, ok
}

// NewDefault returns a Registry pre-populated with the five RFC 9535
// built-in functions: length, count, match, search, and value.
func NewDefault() *Registry {
	r := New()
	for _, fn := range builtins() {
		r.MustRegister(fn)
	}
	return r
}

// NewDefaultWithoutRegex is like NewDefault but omits match and search.
// RFC 9535 §2.4.7 lets a conformance level withhold I-Regexp support
// behind an optional "regex engine" capability; a query that calls
// match()/search() against a Registry built this way fails to parse with
// an unknown-function error, the same way it would with the capability
// absent, rather than compiling and then behaving unpredictably.
func NewDefaultWithoutRegex() *Registry {
	r := New()
	for _, fn := range builtins() {
		if fn.Name == "match" || fn.Name == "search" {
			continue
		}
		r.MustRegister(fn)
	}
	return r
}
