package builtins

import (
	"errors"

	"jyro/pkg/catalog"
	"jyro/pkg/value"
)

// callScriptFn exposes pkg/interpreter's nested-script support (wired through
// catalog.Context.CallScript) as an ordinary callable, so a script can invoke
// another named script the same way it calls any other host function (spec
// §6, §C.8). It has no direct teacher analog — the teacher's VM has no
// nested-program invocation primitive — so it is grounded on the Context
// plumbing added to pkg/interpreter/interpreter.go for this purpose rather
// than on borrowed teacher code.
type callScriptFn struct{}

func (callScriptFn) Signature() catalog.Signature {
	sig, _ := catalog.NewSignature("call_script", catalog.ParamAny,
		catalog.Param{Name: "name", Type: catalog.ParamString},
		catalog.Param{Name: "args", Type: catalog.ParamArray, Optional: true})
	return sig
}

func (callScriptFn) Execute(args []*value.Value, ctx *catalog.Context) (*value.Value, error) {
	if ctx == nil || ctx.CallScript == nil {
		return nil, errors.New("call_script: no script resolver configured for this execution")
	}
	name := args[0].AsString()
	var scriptArgs []*value.Value
	if len(args) > 1 && args[1].Kind() == value.KindArray {
		scriptArgs = args[1].Elements()
	}
	return ctx.CallScript(name, scriptArgs)
}

// RegisterScript adds call_script to reg.
func RegisterScript(reg *catalog.Registry) {
	reg.Register(callScriptFn{})
}
