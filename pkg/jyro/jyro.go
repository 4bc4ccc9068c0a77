// Package jyro is the host-facing entry point assembling lex -> parse ->
// validate -> link -> execute into the single Execute call spec §6
// describes. It has no teacher analog (the teacher wires lexer/parser
// straight into its compiler+VM from cmd/flowa/main.go); this package plays
// that same "glue" role for the tree-walking pipeline.
package jyro

import (
	"jyro/pkg/catalog"
	"jyro/pkg/diag"
	"jyro/pkg/interpreter"
	"jyro/pkg/lexer"
	"jyro/pkg/limiter"
	"jyro/pkg/linker"
	"jyro/pkg/parser"
	"jyro/pkg/validator"
	"jyro/pkg/value"
)

// Options configures one Execute call (spec §6 "Options").
type Options struct {
	// Limits overrides the resource limiter's defaults. The zero value
	// (limiter.Options{}) means "use limiter.DefaultOptions()".
	Limits limiter.Options
	// Cancel, if non-nil, is polled at every statement/loop/call boundary
	// (spec §4.5's cooperative cancellation).
	Cancel func() bool
	// ScriptResolver resolves a nested script invocation's name to source
	// text, backing the CallScript host function (spec §6, §C.8). May be nil.
	ScriptResolver func(name string) (string, bool)
}

// Result is the `(success, final root value, diagnostics list, metadata)`
// tuple spec §4.8 describes, plus the bound return value extension from
// SPEC_FULL.md §C.1.
type Result struct {
	Success     bool
	Data        *value.Value
	Diagnostics []diag.Diagnostic
	ReturnValue *value.Value
	Metadata    limiter.Metadata
}

// Execute runs source against data using the functions registered in
// catalogReg, per spec §4's full pipeline: a failed stage short-circuits
// later stages, preserving its diagnostics in the returned Result (spec §1
// "Data flow is strictly sequential").
func Execute(source string, data *value.Value, catalogReg *catalog.Registry, opts Options) Result {
	if data == nil {
		data = value.NewObject()
	}
	if catalogReg == nil {
		catalogReg = catalog.NewRegistry()
	}

	linked, report, parseErr := compile(source, catalogReg)
	if parseErr {
		return Result{Success: false, Data: data, Diagnostics: report.Items()}
	}
	if report.HasErrors() {
		return Result{Success: false, Data: data, Diagnostics: report.Items()}
	}

	lim := newLimiter(opts.Limits)
	linkFunc := func(src string) (*linker.LinkedProgram, *diag.Report, error) {
		l, r, failed := compile(src, catalogReg)
		if failed {
			return nil, r, nil
		}
		return l, r, nil
	}

	interp := interpreter.New(linked, data, lim, opts.Cancel, opts.ScriptResolver, linkFunc)
	sig := interp.Run()

	full := &diag.Report{}
	full.Merge(report)
	full.Merge(interp.Report())

	return Result{
		Success:     sig.Kind != interpreter.SigError && !full.HasErrors(),
		Data:        data,
		Diagnostics: full.Items(),
		ReturnValue: interp.ReturnValue(),
		Metadata:    interp.Metadata(),
	}
}

// compile runs lex -> parse -> validate -> link, returning the linked
// program (nil on failure) and whether parsing itself failed (a condition
// the caller short-circuits on before even consulting the report's errors,
// since a malformed AST cannot safely be validated/linked).
func compile(source string, catalogReg *catalog.Registry) (*linker.LinkedProgram, *diag.Report, bool) {
	report := &diag.Report{}

	l := lexer.New(source)
	p := parser.New(l)
	program := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		for _, msg := range errs {
			report.Add(diag.CodeSyntaxError, diag.Error, diag.Parsing, 0, 0, "%s", msg)
		}
		return nil, report, true
	}

	validationReport := validator.Validate(program, catalogReg)
	report.Merge(validationReport)
	if validationReport.HasErrors() {
		return nil, report, false
	}

	linked, linkReport := linker.Link(program, catalogReg)
	report.Merge(linkReport)
	if linkReport.HasErrors() {
		return nil, report, false
	}

	return linked, report, false
}

func newLimiter(opts limiter.Options) *limiter.Limiter {
	if opts == (limiter.Options{}) {
		opts = limiter.DefaultOptions()
	}
	return limiter.New(opts)
}
