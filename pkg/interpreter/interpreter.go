// Package interpreter tree-walks a linker.LinkedProgram against a root
// value.Value (spec §4.6-§4.8): scope discipline, control-flow semantics,
// operator semantics and iteration over host data.
//
// Grounded on the teacher's Eval(node ast.Node, env *Environment) Object
// dispatch switch (pkg/eval/eval.go) and its evalProgram/evalBlockStatement/
// evalWhileStatement helpers. Control flow is restructured per spec §9's
// design note into an explicit Signal{Kind, ...} sum returned by every
// statement evaluator, replacing the teacher's *ReturnValue/*ErrorObj
// sentinel-object unwinding with an explicit result type.
package interpreter

import (
	"errors"

	"jyro/pkg/ast"
	"jyro/pkg/catalog"
	"jyro/pkg/diag"
	"jyro/pkg/limiter"
	"jyro/pkg/linker"
	"jyro/pkg/value"
)

// lambdaBinding pairs a lambda expression with the scope it closed over
// (SPEC_FULL.md §C.7). Stored by index on the Interpreter rather than inside
// the value.Value itself, since the value model has no Function variant.
type lambdaBinding struct {
	expr     *ast.LambdaExpression
	captured *scope
}

var (
	errNotCallable = errors.New("value is not callable")
	errLambdaBody  = errors.New("lambda body raised an error")
)

// SignalKind tags what kind of exceptional transfer a statement produced.
type SignalKind int

const (
	SigNormal SignalKind = iota
	SigBreak
	SigContinue
	SigReturn
	SigError
)

// Signal is the explicit result every statement evaluator returns (spec §9).
type Signal struct {
	Kind   SignalKind
	Return *value.Value // set only when Kind == SigReturn and a value was given
}

var normal = Signal{Kind: SigNormal}

// Interpreter executes one LinkedProgram against one root value.Value. An
// Interpreter instance is single-use: construct one per Execute call (spec §5).
type Interpreter struct {
	program   *linker.LinkedProgram
	data      *value.Value
	scope     *scope
	limiter   *limiter.Limiter
	report    *diag.Report
	cancelled func() bool

	scriptResolver func(name string) (string, bool)
	linkFunc       func(source string) (*linker.LinkedProgram, *diag.Report, error)

	returned    bool
	returnValue *value.Value

	lambdas []lambdaBinding
}

// New constructs an Interpreter. cancel may be nil (never cancelled).
// scriptResolver/linkFunc are used only by the CallScript host function
// (pkg/builtins/script.go) and may both be nil if no resolver was supplied.
func New(
	program *linker.LinkedProgram,
	data *value.Value,
	lim *limiter.Limiter,
	cancel func() bool,
	scriptResolver func(name string) (string, bool),
	linkFunc func(source string) (*linker.LinkedProgram, *diag.Report, error),
) *Interpreter {
	if cancel == nil {
		cancel = func() bool { return false }
	}
	root := newScope(nil)
	root.declare("Data", data)
	return &Interpreter{
		program:        program,
		data:           data,
		scope:          root,
		limiter:        lim,
		report:         &diag.Report{},
		cancelled:      cancel,
		scriptResolver: scriptResolver,
		linkFunc:       linkFunc,
	}
}

// Run executes the program's statements in the global scope. It returns the
// final Signal (only SigReturn/SigError/SigNormal are meaningful at this
// level — the validator rejects break/continue outside a loop).
func (in *Interpreter) Run() Signal {
	for _, stmt := range in.program.Program.Statements {
		sig := in.execStatement(stmt)
		if sig.Kind == SigReturn {
			in.returned = true
			in.returnValue = sig.Return
			return sig
		}
		if sig.Kind == SigError {
			return sig
		}
	}
	return normal
}

// Report returns the diagnostics accumulated during Run.
func (in *Interpreter) Report() *diag.Report { return in.report }

// ReturnValue returns the value bound by a `return expr` statement, if any
// (SPEC_FULL.md §C.1's return-value-binding extension). Nil if the script
// never returned a value.
func (in *Interpreter) ReturnValue() *value.Value { return in.returnValue }

// Metadata returns the limiter's final counters for the execution result.
func (in *Interpreter) Metadata() limiter.Metadata { return in.limiter.Snapshot() }

// --- shared helpers used by exec.go and eval.go ---

func (in *Interpreter) pushScope() { in.scope = newScope(in.scope) }
func (in *Interpreter) popScope()  { in.scope = in.scope.outer }

func (in *Interpreter) raise(n ast.Node, code diag.Code, format string, args ...any) Signal {
	pos := n.Pos()
	in.report.Add(code, diag.Error, diag.Execution, pos.Line, pos.Column, format, args...)
	return Signal{Kind: SigError}
}

func (in *Interpreter) raiseLimiter(n ast.Node, exceeded error) Signal {
	pos := n.Pos()
	in.report.Add(diag.CodeLimitExceeded, diag.Error, diag.Execution, pos.Line, pos.Column, "%s", exceeded.Error())
	return Signal{Kind: SigError}
}

func (in *Interpreter) raiseCancelled(n ast.Node) Signal {
	pos := n.Pos()
	in.report.Add(diag.CodeCancelled, diag.Error, diag.Execution, pos.Line, pos.Column, "execution cancelled by host")
	return Signal{Kind: SigError}
}

// lookupFunction resolves a call's callee against the frozen function table.
func (in *Interpreter) lookupFunction(name string) (catalog.Function, bool) {
	fn, ok := in.program.Functions[name]
	return fn, ok
}

// hostContext builds the catalog.Context passed to every host function call,
// wiring cancellation and the CallScript builtin's nested-execution callback
// (spec §4.2, §6 "Script resolver").
func (in *Interpreter) hostContext() *catalog.Context {
	return &catalog.Context{
		Cancelled:  in.cancelled,
		CallScript: in.callScript,
	}
}

// callScript resolves name via scriptResolver, links it, and runs it as a
// nested script invocation (spec §6, §C.8) whose Data root is args as an
// Array, or Null when no args are given; the caller's Data is not passed. It is the
// implementation backing pkg/builtins/script.go's CallScript host function.
func (in *Interpreter) callScript(name string, args []*value.Value) (*value.Value, error) {
	if in.scriptResolver == nil || in.linkFunc == nil {
		return nil, errors.New("no script resolver configured for this execution")
	}
	source, ok := in.scriptResolver(name)
	if !ok {
		return nil, errors.New("unknown script: " + name)
	}
	if exceeded := in.limiter.EnterScriptCall(); exceeded != nil {
		return nil, exceeded
	}
	defer in.limiter.ExitScriptCall()

	linked, report, err := in.linkFunc(source)
	if err != nil {
		return nil, err
	}
	if report != nil && report.HasErrors() {
		return nil, errors.New("nested script failed validation or linking")
	}

	var argsObj *value.Value
	if len(args) > 0 {
		argsObj = value.NewArray(args...)
	} else {
		argsObj = value.Null
	}

	nested := New(linked, argsObj, in.limiter, in.cancelled, in.scriptResolver, in.linkFunc)
	sig := nested.Run()
	in.report.Merge(nested.Report())
	if sig.Kind == SigError {
		return nil, errors.New("nested script raised an error")
	}
	if nested.ReturnValue() != nil {
		return nested.ReturnValue(), nil
	}
	return value.Null, nil
}
