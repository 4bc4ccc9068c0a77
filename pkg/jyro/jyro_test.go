package jyro

import (
	"testing"

	"jyro/pkg/catalog"
	"jyro/pkg/value"
)

func run(t *testing.T, source string) Result {
	t.Helper()
	return Execute(source, value.NewObject(), catalog.NewRegistry(), Options{})
}

// Scenario A (spec §8): arithmetic precedence.
func TestScenarioArithmetic(t *testing.T) {
	res := run(t, `Data.result = (5 + 3) * 2 - 4 / 2`)
	if !res.Success {
		t.Fatalf("expected success, got diagnostics: %v", res.Diagnostics)
	}
	if res.Data.Property("result").AsNumber() != 14 {
		t.Errorf("result = %v, want 14", res.Data.Property("result").AsNumber())
	}
}

// Scenario B: array indexing.
func TestScenarioArrayIndex(t *testing.T) {
	res := run(t, `var arr = [10,20,30]
Data.result = arr[1]`)
	if !res.Success {
		t.Fatalf("expected success, got diagnostics: %v", res.Diagnostics)
	}
	if res.Data.Property("result").AsNumber() != 20 {
		t.Errorf("result = %v, want 20", res.Data.Property("result").AsNumber())
	}
}

// Scenario C: division by zero is a runtime error, Data left unchanged.
func TestScenarioDivisionByZero(t *testing.T) {
	res := run(t, `Data.result = 10 / 0`)
	if res.Success {
		t.Fatalf("expected failure")
	}
	if res.Data.HasProperty("result") {
		t.Errorf("Data.result should be unset after the failed assignment")
	}
	errCount := 0
	for _, d := range res.Diagnostics {
		if d.Stage.String() == "Execution" {
			errCount++
		}
	}
	if errCount != 1 {
		t.Errorf("expected exactly one Execution diagnostic, got %d", errCount)
	}
}

// Scenario D: continue restarts the while condition without skipping the
// increment guarded by it.
func TestScenarioWhileContinue(t *testing.T) {
	res := run(t, `var i = 0
var s = 0
while i < 5 do
	if i == 3 then
		i = i + 1
		continue
	end
	s = s + i
	i = i + 1
end
Data.result = s`)
	if !res.Success {
		t.Fatalf("expected success, got diagnostics: %v", res.Diagnostics)
	}
	if res.Data.Property("result").AsNumber() != 7 {
		t.Errorf("result = %v, want 7", res.Data.Property("result").AsNumber())
	}
}

// Scenario E: shadowing inside an if-block does not leak outward.
func TestScenarioShadowing(t *testing.T) {
	res := run(t, `var x = 10
if true then
	var x = 20
	Data.inner = x
end
Data.outer = x`)
	if !res.Success {
		t.Fatalf("expected success, got diagnostics: %v", res.Diagnostics)
	}
	if res.Data.Property("inner").AsNumber() != 20 {
		t.Errorf("inner = %v, want 20", res.Data.Property("inner").AsNumber())
	}
	if res.Data.Property("outer").AsNumber() != 10 {
		t.Errorf("outer = %v, want 10", res.Data.Property("outer").AsNumber())
	}
}

// Scenario F: switch picks the first matching case, no fallthrough.
func TestScenarioSwitch(t *testing.T) {
	res := run(t, `switch true do
case 75 >= 100 then
	Data.t = "G"
case 75 >= 50 then
	Data.t = "S"
default then
	Data.t = "B"
end`)
	if !res.Success {
		t.Fatalf("expected success, got diagnostics: %v", res.Diagnostics)
	}
	if res.Data.Property("t").AsString() != "S" {
		t.Errorf("t = %q, want S", res.Data.Property("t").AsString())
	}
}

func TestParseErrorShortCircuits(t *testing.T) {
	res := run(t, `Data.x = (1 +`)
	if res.Success {
		t.Fatalf("expected failure on a malformed script")
	}
	if len(res.Diagnostics) == 0 {
		t.Fatalf("expected at least one syntax diagnostic")
	}
}

func TestUndefinedFunctionShortCircuitsExecution(t *testing.T) {
	res := run(t, `Data.x = mystery()`)
	if res.Success {
		t.Fatalf("expected failure for a call to an unregistered function")
	}
}

func TestReturnValueBinding(t *testing.T) {
	res := Execute(`return 42`, value.NewObject(), catalog.NewRegistry(), Options{})
	if !res.Success {
		t.Fatalf("expected success, got diagnostics: %v", res.Diagnostics)
	}
	if res.ReturnValue == nil || res.ReturnValue.AsNumber() != 42 {
		t.Fatalf("expected ReturnValue 42, got %v", res.ReturnValue)
	}
}

func TestCancellationTerminatesExecution(t *testing.T) {
	calls := 0
	cancel := func() bool {
		calls++
		return calls > 1
	}
	res := Execute(`while true do
	Data.n = 1
end`, value.NewObject(), catalog.NewRegistry(), Options{Cancel: cancel})
	if res.Success {
		t.Fatalf("expected cancellation to fail the execution")
	}
}

func TestHostFunctionRegistrationAndInvocation(t *testing.T) {
	reg := catalog.NewRegistry()
	reg.Register(doubleFn{})
	res := Execute(`Data.result = double(21)`, value.NewObject(), reg, Options{})
	if !res.Success {
		t.Fatalf("expected success, got diagnostics: %v", res.Diagnostics)
	}
	if res.Data.Property("result").AsNumber() != 42 {
		t.Errorf("result = %v, want 42", res.Data.Property("result").AsNumber())
	}
}

type doubleFn struct{}

func (doubleFn) Signature() catalog.Signature {
	sig, _ := catalog.NewSignature("double", catalog.ParamNumber, catalog.Param{Name: "n", Type: catalog.ParamNumber})
	return sig
}
func (doubleFn) Execute(args []*value.Value, ctx *catalog.Context) (*value.Value, error) {
	return value.Number(args[0].AsNumber() * 2), nil
}
