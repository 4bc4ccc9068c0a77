package linker

import (
	"testing"

	"jyro/pkg/catalog"
	"jyro/pkg/diag"
	"jyro/pkg/lexer"
	"jyro/pkg/parser"
	"jyro/pkg/value"
)

type stubFn struct{ name string }

func (s stubFn) Signature() catalog.Signature {
	sig, _ := catalog.NewSignature(s.name, catalog.ParamAny)
	return sig
}
func (stubFn) Execute(args []*value.Value, ctx *catalog.Context) (*value.Value, error) {
	return value.Null, nil
}

func TestUndefinedFunctionIsFatal(t *testing.T) {
	l := lexer.New(`Data.x = greet("world")`)
	p := parser.New(l)
	program := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}

	_, report := Link(program, catalog.NewRegistry())
	if !report.HasErrors() {
		t.Fatalf("expected an UndefinedFunction error")
	}
}

func TestResolvedFunctionLinksCleanly(t *testing.T) {
	l := lexer.New(`Data.x = greet("world")`)
	p := parser.New(l)
	program := p.ParseProgram()

	reg := catalog.NewRegistry()
	reg.Register(stubFn{name: "greet"})

	linked, report := Link(program, reg)
	if report.HasErrors() {
		t.Fatalf("did not expect errors, got: %v", report.Items())
	}
	if _, ok := linked.Functions["greet"]; !ok {
		t.Fatalf("expected greet to be present in the frozen function table")
	}
}

func TestDuplicateRegistrationIsWarningNotError(t *testing.T) {
	l := lexer.New(`Data.x = greet("world")`)
	p := parser.New(l)
	program := p.ParseProgram()

	reg := catalog.NewRegistry()
	reg.Register(stubFn{name: "greet"})
	reg.Register(stubFn{name: "greet"})

	_, report := Link(program, reg)
	if report.HasErrors() {
		t.Fatalf("duplicate registration should be a warning, not an error: %v", report.Items())
	}
	foundWarning := false
	for _, d := range report.Items() {
		if d.Severity == diag.Warning {
			foundWarning = true
		}
	}
	if !foundWarning {
		t.Fatalf("expected at least one warning diagnostic for the duplicate registration")
	}
}

func TestCallInsideLambdaBodyIsCollected(t *testing.T) {
	l := lexer.New(`var f = lambda(x) => double(x)`)
	p := parser.New(l)
	program := p.ParseProgram()

	_, report := Link(program, catalog.NewRegistry())
	if !report.HasErrors() {
		t.Fatalf("expected an UndefinedFunction error for 'double' called inside the lambda body")
	}
}

func TestCallInsideTypeCheckOperandIsCollected(t *testing.T) {
	l := lexer.New(`Data.x = compute() is number`)
	p := parser.New(l)
	program := p.ParseProgram()

	_, report := Link(program, catalog.NewRegistry())
	if !report.HasErrors() {
		t.Fatalf("expected an UndefinedFunction error for 'compute' inside the is-expression operand")
	}
}
