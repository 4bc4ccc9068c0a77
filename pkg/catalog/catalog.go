// Package catalog implements the host-function signature contract of spec
// §4.2: named, ordered-parameter signatures with arity/type validation, and
// a name-keyed registry the linker resolves call sites against.
//
// Grounded on the teacher's registration pattern (pkg/eval/eval.go:
// env.store["len"] = &BuiltinFunction{Fn: func(args ...Object) Object {...}})
// generalized from an untyped variadic closure into a typed Signature.
package catalog

import (
	"fmt"

	"jyro/pkg/value"
)

// ParamType is a parameter's declared type; ParamAny matches anything.
type ParamType int

const (
	ParamAny ParamType = iota
	ParamNumber
	ParamString
	ParamBoolean
	ParamObject
	ParamArray
	ParamNull
)

func (t ParamType) String() string {
	switch t {
	case ParamNumber:
		return "Number"
	case ParamString:
		return "String"
	case ParamBoolean:
		return "Boolean"
	case ParamObject:
		return "Object"
	case ParamArray:
		return "Array"
	case ParamNull:
		return "Null"
	default:
		return "Any"
	}
}

func (t ParamType) matches(k value.Kind) bool {
	switch t {
	case ParamAny:
		return true
	case ParamNumber:
		return k == value.KindNumber
	case ParamString:
		return k == value.KindString
	case ParamBoolean:
		return k == value.KindBoolean
	case ParamObject:
		return k == value.KindObject
	case ParamArray:
		return k == value.KindArray
	case ParamNull:
		return k == value.KindNull
	default:
		return false
	}
}

// Param describes one formal parameter of a Signature.
type Param struct {
	Name     string
	Type     ParamType
	Optional bool
}

// Signature is a host function's callable shape: name, ordered parameters,
// return type (return type is informational only — the interpreter does not
// enforce it, since Jyro has no static type checking beyond this catalog).
type Signature struct {
	Name       string
	Parameters []Param
	ReturnType ParamType
}

// Context is passed to every Function invocation; it carries whatever a host
// function needs to call back into the runtime (cancellation, nested script
// execution) without the catalog package depending on the interpreter.
type Context struct {
	// Cancelled reports whether the host has requested cancellation; long
	// running host functions should check it cooperatively.
	Cancelled func() bool
	// CallScript is set when a script resolver was supplied to Execute; it
	// runs name's resolved source as a nested script (see pkg/builtins/script.go).
	CallScript func(name string, args []*value.Value) (*value.Value, error)
}

// Function is implemented by every host function registered in a Registry.
type Function interface {
	Signature() Signature
	Execute(args []*value.Value, ctx *Context) (*value.Value, error)
}

// NewSignature validates that required parameters precede optional ones
// (spec §4.2: "violation is a construction-time error") and returns the
// Signature, or an error describing the violation.
func NewSignature(name string, returnType ParamType, params ...Param) (Signature, error) {
	seenOptional := false
	for _, p := range params {
		if p.Optional {
			seenOptional = true
			continue
		}
		if seenOptional {
			return Signature{}, fmt.Errorf("catalog: signature %q: required parameter %q follows an optional parameter", name, p.Name)
		}
	}
	return Signature{Name: name, Parameters: params, ReturnType: returnType}, nil
}

// ValidateArgs checks arity then per-position type compatibility (spec §4.2).
func (s Signature) ValidateArgs(args []*value.Value) error {
	required := 0
	for _, p := range s.Parameters {
		if !p.Optional {
			required++
		}
	}
	total := len(s.Parameters)
	if len(args) < required || len(args) > total {
		return fmt.Errorf("%s: expected between %d and %d arguments, got %d", s.Name, required, total, len(args))
	}
	for i, arg := range args {
		p := s.Parameters[i]
		if !p.Type.matches(arg.Kind()) {
			return fmt.Errorf("%s: argument %d (%s) expected %s, got %s", s.Name, i+1, p.Name, p.Type, arg.Kind())
		}
	}
	return nil
}

// Registry is a name->Function table. It is mutable until frozen by the
// linker into a LinkedProgram's immutable function map.
type Registry struct {
	fns       map[string]Function
	Conflicts []string // names registered more than once (last writer wins)
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{fns: make(map[string]Function)}
}

// Register adds fn under its signature name. A duplicate name is recorded in
// Conflicts (spec §4.4: "non-fatal warning — last writer wins") rather than
// rejected.
func (r *Registry) Register(fn Function) {
	name := fn.Signature().Name
	if _, exists := r.fns[name]; exists {
		r.Conflicts = append(r.Conflicts, name)
	}
	r.fns[name] = fn
}

// Lookup returns the registered Function for name, if any.
func (r *Registry) Lookup(name string) (Function, bool) {
	fn, ok := r.fns[name]
	return fn, ok
}

// Snapshot returns an immutable copy of the name->Function table, suitable
// for freezing into a LinkedProgram.
func (r *Registry) Snapshot() map[string]Function {
	out := make(map[string]Function, len(r.fns))
	for k, v := range r.fns {
		out[k] = v
	}
	return out
}
