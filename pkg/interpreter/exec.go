package interpreter

import (
	"jyro/pkg/ast"
	"jyro/pkg/diag"
	"jyro/pkg/value"
)

// execStatement dispatches one statement, enforcing the statement-count and
// cancellation checks spec §4.5/§5 require at every statement boundary.
func (in *Interpreter) execStatement(s ast.Statement) Signal {
	if in.cancelled() {
		return in.raiseCancelled(s)
	}
	if exceeded := in.limiter.CountStatement(); exceeded != nil {
		return in.raiseLimiter(s, exceeded)
	}

	switch st := s.(type) {
	case *ast.VarDecl:
		return in.execVarDecl(st)
	case *ast.Assignment:
		return in.execAssignment(st)
	case *ast.ExpressionStatement:
		if st.Expr == nil {
			return normal
		}
		_, sig := in.evalAsSignal(st.Expr)
		return sig
	case *ast.IfStatement:
		return in.execIf(st)
	case *ast.SwitchStatement:
		return in.execSwitch(st)
	case *ast.WhileStatement:
		return in.execWhile(st)
	case *ast.ForeachStatement:
		return in.execForeach(st)
	case *ast.ReturnStatement:
		return in.execReturn(st)
	case *ast.BreakStatement:
		return Signal{Kind: SigBreak}
	case *ast.ContinueStatement:
		return Signal{Kind: SigContinue}
	default:
		return in.raise(s, diag.CodeInternalError, "unsupported statement node %T", s)
	}
}

// execBlock runs a block's statements in a fresh scope, releasing that scope
// on every exit path (spec §3 "Scope lifecycle").
func (in *Interpreter) execBlock(b *ast.BlockStatement) Signal {
	in.pushScope()
	defer in.popScope()
	for _, stmt := range b.Statements {
		sig := in.execStatement(stmt)
		if sig.Kind != SigNormal {
			return sig
		}
	}
	return normal
}

func (in *Interpreter) execVarDecl(v *ast.VarDecl) Signal {
	var val *value.Value = value.Null
	if v.Initializer != nil {
		var sig Signal
		val, sig = in.evalAsSignal(v.Initializer)
		if sig.Kind != SigNormal {
			return sig
		}
	}
	if v.Tag != ast.TagNone {
		if coerced, ok := coerce(val, v.Tag); ok {
			val = coerced
		}
	}
	in.scope.declare(v.Name, val)
	return normal
}

// coerce applies the optional single-type annotation's runtime coercion
// (spec §1 "optional single-type annotations used for runtime coercion").
// It is best-effort: if val cannot be coerced to tag, it is returned
// unchanged and the declared value simply carries its original kind — this
// annotation is a coercion hint, not a static type system (spec §1 Non-goals).
func coerce(val *value.Value, tag ast.TypeTag) (*value.Value, bool) {
	switch tag {
	case ast.TagString:
		if val.Kind() != value.KindString {
			return value.String(value.Stringify(val)), true
		}
	case ast.TagNumber:
		if val.Kind() == value.KindString {
			if n, ok := parseNumber(val.AsString()); ok {
				return value.Number(n), true
			}
		}
	case ast.TagBoolean:
		if val.Kind() != value.KindBoolean {
			return value.Bool(val.Truthy()), true
		}
	}
	return val, false
}

func (in *Interpreter) execAssignment(a *ast.Assignment) Signal {
	val, sig := in.evalAsSignal(a.Value)
	if sig.Kind != SigNormal {
		return sig
	}

	t := a.Target
	if len(t.Accessors) == 0 {
		if t.IsData {
			// `Data = expr` replaces the whole root is not meaningful since Data
			// is shared with the host by reference; treat it as rebinding the
			// local slot is disallowed — fall through to property assignment
			// semantics is inapplicable here, so this is simply unsupported.
			return in.raise(a, diag.CodeInvalidAssignTarget, "cannot assign directly to Data; assign a property or index instead")
		}
		if !in.scope.assign(t.Root, val) {
			in.scope.declare(t.Root, val)
		}
		return normal
	}

	container, sig2 := in.resolveChainBase(a, t)
	if sig2.Kind != SigNormal {
		return sig2
	}

	last := t.Accessors[len(t.Accessors)-1]
	for _, acc := range t.Accessors[:len(t.Accessors)-1] {
		next, sig3 := in.stepAccessor(a, container, acc)
		if sig3.Kind != SigNormal {
			return sig3
		}
		container = next
	}

	return in.setFinal(a, container, last, val)
}

// resolveChainBase evaluates the root of an assignment target (identifier or
// Data), declaring a fresh local when it is a bare identifier with at least
// one accessor but no existing binding would be invalid per spec §4.3 — the
// validator already rejects that case, so here we only need to look it up.
func (in *Interpreter) resolveChainBase(n ast.Node, t ast.AssignTarget) (*value.Value, Signal) {
	if t.IsData {
		return in.data, normal
	}
	v, ok := in.scope.lookup(t.Root)
	if !ok {
		return nil, in.raise(n, diag.CodeInternalError, "internal error: identifier %q unresolved at execution (validator should have caught this)", t.Root)
	}
	return v, normal
}

func (in *Interpreter) stepAccessor(n ast.Node, container *value.Value, acc ast.Accessor) (*value.Value, Signal) {
	if container.Kind() == value.KindNull {
		return nil, in.raise(n, diag.CodeNullAccess, "cannot access a property or index on null")
	}
	if acc.IsIndex {
		idx, sig := in.evalAsSignal(acc.IndexExp)
		if sig.Kind != SigNormal {
			return nil, sig
		}
		if container.Kind() == value.KindArray {
			i, ok := arrayIndex(idx, container.Len())
			if !ok {
				return nil, in.raise(n, diag.CodeIndexOutOfRange, "array index %s out of range", value.Stringify(idx))
			}
			return container.Get(i), normal
		}
		if container.Kind() == value.KindObject {
			return container.Property(value.Stringify(idx)), normal
		}
		return nil, in.raise(n, diag.CodeTypeMismatch, "cannot index into a %s", container.Kind())
	}
	if container.Kind() != value.KindObject {
		return nil, in.raise(n, diag.CodeTypeMismatch, "cannot access property %q on a %s", acc.Name, container.Kind())
	}
	return container.Property(acc.Name), normal
}

// setFinal performs the last write in an assignment chain (spec §4.7).
func (in *Interpreter) setFinal(n ast.Node, container *value.Value, acc ast.Accessor, val *value.Value) Signal {
	if container.Kind() == value.KindNull {
		return in.raise(n, diag.CodeNullAccess, "cannot assign a property or index on null")
	}
	if acc.IsIndex {
		idx, sig := in.evalAsSignal(acc.IndexExp)
		if sig.Kind != SigNormal {
			return sig
		}
		switch container.Kind() {
		case value.KindArray:
			i, ok := arrayIndex(idx, container.Len())
			if !ok {
				return in.raise(n, diag.CodeIndexOutOfRange, "array index %s out of range during assignment", value.Stringify(idx))
			}
			container.Set(i, val)
			return normal
		case value.KindObject:
			container.SetProperty(value.Stringify(idx), val)
			return normal
		default:
			return in.raise(n, diag.CodeTypeMismatch, "cannot assign index on a %s", container.Kind())
		}
	}
	if container.Kind() != value.KindObject {
		return in.raise(n, diag.CodeTypeMismatch, "cannot assign property %q on a %s", acc.Name, container.Kind())
	}
	container.SetProperty(acc.Name, val)
	return normal
}

func arrayIndex(idx *value.Value, length int) (int, bool) {
	if idx.Kind() != value.KindNumber {
		return 0, false
	}
	i := int(idx.AsNumber())
	if float64(i) != idx.AsNumber() || i < 0 || i >= length {
		return 0, false
	}
	return i, true
}

func (in *Interpreter) execIf(st *ast.IfStatement) Signal {
	for _, br := range st.Branches {
		cond, sig := in.evalAsSignal(br.Condition)
		if sig.Kind != SigNormal {
			return sig
		}
		if cond.Truthy() {
			return in.execBlock(br.Body)
		}
	}
	if st.Else != nil {
		return in.execBlock(st.Else)
	}
	return normal
}

func (in *Interpreter) execSwitch(st *ast.SwitchStatement) Signal {
	scrut, sig := in.evalAsSignal(st.Value)
	if sig.Kind != SigNormal {
		return sig
	}
	for _, c := range st.Cases {
		for _, caseExpr := range c.Values {
			cv, sig2 := in.evalAsSignal(caseExpr)
			if sig2.Kind != SigNormal {
				return sig2
			}
			if value.Equal(scrut, cv) {
				return in.execBlock(c.Body)
			}
		}
	}
	if st.Default != nil {
		return in.execBlock(st.Default)
	}
	return normal
}

func (in *Interpreter) execWhile(st *ast.WhileStatement) Signal {
	for {
		cond, sig := in.evalAsSignal(st.Condition)
		if sig.Kind != SigNormal {
			return sig
		}
		if !cond.Truthy() {
			return normal
		}
		if in.cancelled() {
			return in.raiseCancelled(st)
		}
		if exceeded := in.limiter.EnterLoop(); exceeded != nil {
			return in.raiseLimiter(st, exceeded)
		}
		bodySig := in.execBlock(st.Body)
		in.limiter.ExitLoop()
		switch bodySig.Kind {
		case SigBreak:
			return normal
		case SigContinue:
			continue
		case SigNormal:
			continue
		default:
			return bodySig
		}
	}
}

func (in *Interpreter) execForeach(st *ast.ForeachStatement) Signal {
	coll, sig := in.evalAsSignal(st.Collection)
	if sig.Kind != SigNormal {
		return sig
	}
	elems, ok := value.Iterate(coll)
	if !ok {
		return in.raise(st, diag.CodeNotIterable, "cannot iterate over a %s", coll.Kind())
	}
	for _, elem := range elems {
		if in.cancelled() {
			return in.raiseCancelled(st)
		}
		if exceeded := in.limiter.EnterLoop(); exceeded != nil {
			return in.raiseLimiter(st, exceeded)
		}
		in.pushScope()
		if coll.Kind() == value.KindObject {
			in.scope.declare(st.Name, value.String(elem.Key))
		} else {
			in.scope.declare(st.Name, elem.Value)
		}
		bodySig := in.execStatementsInOpenScope(st.Body)
		in.popScope()
		in.limiter.ExitLoop()
		switch bodySig.Kind {
		case SigBreak:
			return normal
		case SigContinue:
			continue
		case SigNormal:
			continue
		default:
			return bodySig
		}
	}
	return normal
}

// execStatementsInOpenScope runs a block's statements in the caller's
// already-pushed scope (used by foreach, which must push the iterator
// binding before the body's own statements run in *that same* scope, per
// spec §4.7 "Each iteration opens a fresh scope, binds the iterator name...").
func (in *Interpreter) execStatementsInOpenScope(b *ast.BlockStatement) Signal {
	for _, stmt := range b.Statements {
		sig := in.execStatement(stmt)
		if sig.Kind != SigNormal {
			return sig
		}
	}
	return normal
}

func (in *Interpreter) execReturn(st *ast.ReturnStatement) Signal {
	if st.Value == nil {
		return Signal{Kind: SigReturn}
	}
	val, sig := in.evalAsSignal(st.Value)
	if sig.Kind != SigNormal {
		return sig
	}
	return Signal{Kind: SigReturn, Return: val}
}
