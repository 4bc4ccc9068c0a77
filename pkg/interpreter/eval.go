package interpreter

import (
	"strconv"
	"strings"

	"jyro/pkg/ast"
	"jyro/pkg/diag"
	"jyro/pkg/value"
)

// evalAsSignal evaluates an expression, translating any runtime error into a
// Signal{Kind: SigError} (already recorded in the report) so statement-level
// code can propagate it uniformly alongside Break/Continue/Return.
func (in *Interpreter) evalAsSignal(e ast.Expression) (*value.Value, Signal) {
	v, sig := in.eval(e)
	return v, sig
}

// eval evaluates a single expression node (spec §4.6).
func (in *Interpreter) eval(e ast.Expression) (*value.Value, Signal) {
	switch ex := e.(type) {
	case *ast.NumberLiteral:
		return value.Number(ex.Value), normal
	case *ast.StringLiteral:
		return value.String(ex.Value), normal
	case *ast.BooleanLiteral:
		return value.Bool(ex.Value), normal
	case *ast.NullLiteral:
		return value.Null, normal
	case *ast.DataRoot:
		return in.data, normal
	case *ast.Identifier:
		v, ok := in.scope.lookup(ex.Name)
		if !ok {
			return nil, in.raise(ex, diag.CodeInternalError, "internal error: identifier %q unresolved at execution (validator should have caught this)", ex.Name)
		}
		return v, normal
	case *ast.UnaryExpression:
		return in.evalUnary(ex)
	case *ast.BinaryExpression:
		return in.evalBinary(ex)
	case *ast.TernaryExpression:
		return in.evalTernary(ex)
	case *ast.MemberExpression:
		return in.evalMember(ex)
	case *ast.IndexExpression:
		return in.evalIndex(ex)
	case *ast.CallExpression:
		return in.evalCall(ex)
	case *ast.ArrayLiteral:
		return in.evalArrayLiteral(ex)
	case *ast.ObjectLiteral:
		return in.evalObjectLiteral(ex)
	case *ast.LambdaExpression:
		return in.evalLambda(ex)
	case *ast.TypeCheckExpression:
		return in.evalTypeCheck(ex)
	default:
		return nil, in.raise(e, diag.CodeInternalError, "unsupported expression node %T", e)
	}
}

func (in *Interpreter) evalUnary(ex *ast.UnaryExpression) (*value.Value, Signal) {
	right, sig := in.eval(ex.Right)
	if sig.Kind != SigNormal {
		return nil, sig
	}
	switch ex.Operator {
	case "-":
		res, err := value.Neg(right)
		if err != nil {
			return nil, in.raise(ex, diag.CodeTypeMismatch, "%s", err.Error())
		}
		return res, normal
	case "not":
		return value.Bool(!right.Truthy()), normal
	default:
		return nil, in.raise(ex, diag.CodeInternalError, "unknown unary operator %q", ex.Operator)
	}
}

// evalBinary implements spec §4.1/§4.6, including short-circuit and/or.
func (in *Interpreter) evalBinary(ex *ast.BinaryExpression) (*value.Value, Signal) {
	switch ex.Operator {
	case "and":
		left, sig := in.eval(ex.Left)
		if sig.Kind != SigNormal {
			return nil, sig
		}
		if !left.Truthy() {
			return value.Bool(false), normal
		}
		right, sig := in.eval(ex.Right)
		if sig.Kind != SigNormal {
			return nil, sig
		}
		return value.Bool(right.Truthy()), normal
	case "or":
		left, sig := in.eval(ex.Left)
		if sig.Kind != SigNormal {
			return nil, sig
		}
		if left.Truthy() {
			return value.Bool(true), normal
		}
		right, sig := in.eval(ex.Right)
		if sig.Kind != SigNormal {
			return nil, sig
		}
		return value.Bool(right.Truthy()), normal
	}

	left, sig := in.eval(ex.Left)
	if sig.Kind != SigNormal {
		return nil, sig
	}
	right, sig := in.eval(ex.Right)
	if sig.Kind != SigNormal {
		return nil, sig
	}

	switch ex.Operator {
	case "+":
		res, err := value.Add(left, right)
		if err != nil {
			return nil, in.raise(ex, diag.CodeTypeMismatch, "%s", err.Error())
		}
		return res, normal
	case "-":
		res, err := value.Sub(left, right)
		if err != nil {
			return nil, in.raise(ex, diag.CodeTypeMismatch, "%s", err.Error())
		}
		return res, normal
	case "*":
		res, err := value.Mul(left, right)
		if err != nil {
			return nil, in.raise(ex, diag.CodeTypeMismatch, "%s", err.Error())
		}
		return res, normal
	case "/":
		res, err := value.Div(left, right)
		if err != nil {
			return nil, in.raise(ex, diag.CodeDivisionByZero, "%s", err.Error())
		}
		return res, normal
	case "%":
		res, err := value.Mod(left, right)
		if err != nil {
			return nil, in.raise(ex, diag.CodeDivisionByZero, "%s", err.Error())
		}
		return res, normal
	case "==":
		return value.Bool(value.Equal(left, right)), normal
	case "!=":
		return value.Bool(!value.Equal(left, right)), normal
	case "<":
		ok, err := value.Less(left, right)
		if err != nil {
			return nil, in.raise(ex, diag.CodeTypeMismatch, "%s", err.Error())
		}
		return value.Bool(ok), normal
	case "<=":
		ok, err := value.LessEqual(left, right)
		if err != nil {
			return nil, in.raise(ex, diag.CodeTypeMismatch, "%s", err.Error())
		}
		return value.Bool(ok), normal
	case ">":
		ok, err := value.Greater(left, right)
		if err != nil {
			return nil, in.raise(ex, diag.CodeTypeMismatch, "%s", err.Error())
		}
		return value.Bool(ok), normal
	case ">=":
		ok, err := value.GreaterEqual(left, right)
		if err != nil {
			return nil, in.raise(ex, diag.CodeTypeMismatch, "%s", err.Error())
		}
		return value.Bool(ok), normal
	default:
		return nil, in.raise(ex, diag.CodeInternalError, "unknown binary operator %q", ex.Operator)
	}
}

func (in *Interpreter) evalTypeCheck(ex *ast.TypeCheckExpression) (*value.Value, Signal) {
	v, sig := in.eval(ex.Value)
	if sig.Kind != SigNormal {
		return nil, sig
	}
	var want value.Kind
	switch ex.Tag {
	case ast.TagNumber:
		want = value.KindNumber
	case ast.TagString:
		want = value.KindString
	case ast.TagBoolean:
		want = value.KindBoolean
	case ast.TagObject:
		want = value.KindObject
	case ast.TagArray:
		want = value.KindArray
	default:
		return nil, in.raise(ex, diag.CodeInternalError, "unknown type tag in type check")
	}
	return value.Bool(v.Kind() == want), normal
}

func (in *Interpreter) evalTernary(ex *ast.TernaryExpression) (*value.Value, Signal) {
	cond, sig := in.eval(ex.Condition)
	if sig.Kind != SigNormal {
		return nil, sig
	}
	if cond.Truthy() {
		return in.eval(ex.Then)
	}
	return in.eval(ex.Else)
}

func (in *Interpreter) evalMember(ex *ast.MemberExpression) (*value.Value, Signal) {
	obj, sig := in.eval(ex.Object)
	if sig.Kind != SigNormal {
		return nil, sig
	}
	if obj.Kind() == value.KindNull {
		return nil, in.raise(ex, diag.CodeNullAccess, "cannot access property %q on null", ex.Name)
	}
	if obj.Kind() != value.KindObject {
		return nil, in.raise(ex, diag.CodeTypeMismatch, "cannot access property %q on a %s", ex.Name, obj.Kind())
	}
	return obj.Property(ex.Name), normal
}

func (in *Interpreter) evalIndex(ex *ast.IndexExpression) (*value.Value, Signal) {
	obj, sig := in.eval(ex.Object)
	if sig.Kind != SigNormal {
		return nil, sig
	}
	if obj.Kind() == value.KindNull {
		return nil, in.raise(ex, diag.CodeNullAccess, "cannot index into null")
	}
	idx, sig := in.eval(ex.Index)
	if sig.Kind != SigNormal {
		return nil, sig
	}
	switch obj.Kind() {
	case value.KindArray:
		i, ok := arrayIndex(idx, obj.Len())
		if !ok {
			return nil, in.raise(ex, diag.CodeIndexOutOfRange, "array index %s out of range", value.Stringify(idx))
		}
		return obj.Get(i), normal
	case value.KindObject:
		return obj.Property(value.Stringify(idx)), normal
	default:
		return nil, in.raise(ex, diag.CodeTypeMismatch, "cannot index into a %s", obj.Kind())
	}
}

// evalCall implements spec §4.6's call semantics: the callee is always a
// bare name resolved against the frozen function table (spec §9:
// identifier-in-call-position is a function reference, never a local's
// value — ambiguity between the two is rejected earlier, at validation time).
func (in *Interpreter) evalCall(ex *ast.CallExpression) (*value.Value, Signal) {
	fn, ok := in.lookupFunction(ex.Callee)
	if !ok {
		return nil, in.raise(ex, diag.CodeInternalError, "internal error: call to %q unresolved at execution (linker should have caught this)", ex.Callee)
	}

	args := make([]*value.Value, 0, len(ex.Arguments))
	for _, argExpr := range ex.Arguments {
		v, sig := in.eval(argExpr)
		if sig.Kind != SigNormal {
			return nil, sig
		}
		args = append(args, v)
	}

	if in.cancelled() {
		return nil, in.raiseCancelled(ex)
	}
	if exceeded := in.limiter.EnterCall(); exceeded != nil {
		return nil, in.raiseLimiter(ex, exceeded)
	}
	defer in.limiter.ExitCall()

	if err := fn.Signature().ValidateArgs(args); err != nil {
		return nil, in.raise(ex, diag.CodeTypeMismatch, "%s", err.Error())
	}

	result, err := fn.Execute(args, in.hostContext())
	if err != nil {
		return nil, in.raise(ex, diag.CodeHostFunctionFailure, "%s", err.Error())
	}
	if result == nil {
		result = value.Null
	}
	return result, normal
}

func (in *Interpreter) evalArrayLiteral(ex *ast.ArrayLiteral) (*value.Value, Signal) {
	elems := make([]*value.Value, 0, len(ex.Elements))
	for _, elExpr := range ex.Elements {
		v, sig := in.eval(elExpr)
		if sig.Kind != SigNormal {
			return nil, sig
		}
		elems = append(elems, v)
	}
	return value.NewArray(elems...), normal
}

func (in *Interpreter) evalObjectLiteral(ex *ast.ObjectLiteral) (*value.Value, Signal) {
	obj := value.NewObject()
	for _, entry := range ex.Entries {
		key, sig := in.evalObjectKey(entry.Key)
		if sig.Kind != SigNormal {
			return nil, sig
		}
		val, sig := in.eval(entry.Value)
		if sig.Kind != SigNormal {
			return nil, sig
		}
		obj.SetProperty(key, val)
	}
	return obj, normal
}

// evalObjectKey implements spec §4.6: "keys in object literals may be
// string-literal or identifier tokens (both interpreted as strings) or an
// expression (stringified at construction)".
func (in *Interpreter) evalObjectKey(key ast.Expression) (string, Signal) {
	switch k := key.(type) {
	case *ast.Identifier:
		return k.Name, normal
	case *ast.StringLiteral:
		return k.Value, normal
	default:
		v, sig := in.eval(key)
		if sig.Kind != SigNormal {
			return "", sig
		}
		return value.Stringify(v), normal
	}
}

func (in *Interpreter) evalLambda(ex *ast.LambdaExpression) (*value.Value, Signal) {
	// Lambdas are a design extension (SPEC_FULL.md §C.7); the value model has
	// no Function variant, so a lambda is represented as a Native-ish Object
	// stamped with a conventional marker property pair that in.CallLambda
	// recognizes. catalog.Context carries no lambda hook, so host functions
	// called during Run have no way to invoke it.
	obj := value.NewObject()
	obj.SetProperty("__lambda__", value.Bool(true))
	in.lambdas = append(in.lambdas, lambdaBinding{expr: ex, captured: in.scope})
	obj.SetProperty("__lambda_id__", value.Number(float64(len(in.lambdas)-1)))
	return obj, normal
}

// CallLambda invokes a lambda value previously produced by evalLambda,
// capturing by reference to the enclosing frame via an explicit captured
// scope pointer (spec §9: "implementers choosing to port lambdas should use
// explicit captured-slot lists to avoid GC-style cycles").
func (in *Interpreter) CallLambda(lambdaVal *value.Value, args []*value.Value) (*value.Value, error) {
	if lambdaVal.Kind() != value.KindObject || !lambdaVal.HasProperty("__lambda__") {
		return nil, errNotCallable
	}
	id := int(lambdaVal.Property("__lambda_id__").AsNumber())
	if id < 0 || id >= len(in.lambdas) {
		return nil, errNotCallable
	}
	binding := in.lambdas[id]
	prevScope := in.scope
	in.scope = newScope(binding.captured)
	for i, p := range binding.expr.Parameters {
		if i < len(args) {
			in.scope.declare(p, args[i])
		} else {
			in.scope.declare(p, value.Null)
		}
	}
	v, sig := in.eval(binding.expr.Body)
	in.scope = prevScope
	if sig.Kind == SigError {
		return nil, errLambdaBody
	}
	return v, nil
}

func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
