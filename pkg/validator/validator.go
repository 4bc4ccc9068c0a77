// Package validator implements spec §4.3: a single scope-aware pass over the
// AST that flags undeclared variables, break/continue outside a loop,
// duplicate declarations within a scope, and invalid assignment targets.
//
// Grounded on the teacher's Environment outer-chain (pkg/eval/eval.go
// type Environment struct{ store, outer ... }), reused here at compile time
// as a pure name-shadowing check instead of a runtime value store.
package validator

import (
	"jyro/pkg/ast"
	"jyro/pkg/catalog"
	"jyro/pkg/diag"
)

type scope struct {
	declared map[string]bool
	outer    *scope
}

func newScope(outer *scope) *scope {
	return &scope{declared: make(map[string]bool), outer: outer}
}

func (s *scope) declaredHere(name string) bool { return s.declared[name] }

func (s *scope) resolves(name string) bool {
	for cur := s; cur != nil; cur = cur.outer {
		if cur.declared[name] {
			return true
		}
	}
	return false
}

// Validator walks a Program, accumulating diagnostics.
type Validator struct {
	report   *diag.Report
	current  *scope
	loopDepth int
	catalog  *catalog.Registry
}

// New creates a Validator. catalogReg may be nil when the ambiguous
// call-target check (SPEC_FULL.md §C.3) should be skipped, e.g. when
// validating before a catalog is known.
func New(catalogReg *catalog.Registry) *Validator {
	return &Validator{report: &diag.Report{}, catalog: catalogReg}
}

// Validate runs the pass and returns the accumulated diagnostics. Per spec
// §4.3, "Validator errors are fatal" — callers should check
// report.HasErrors() before proceeding to linking.
func Validate(program *ast.Program, catalogReg *catalog.Registry) *diag.Report {
	v := New(catalogReg)
	v.current = newScope(nil)
	v.current.declared["Data"] = true // reserved root identifier (spec §3)
	for _, stmt := range program.Statements {
		v.validateStatement(stmt)
	}
	return v.report
}

func (v *Validator) pushScope() { v.current = newScope(v.current) }
func (v *Validator) popScope()  { v.current = v.current.outer }

func (v *Validator) declare(name string, tok ast.Node) {
	if v.current.declaredHere(name) {
		v.errAt(tok, diag.CodeDuplicateDeclaration, "variable %q is already declared in this scope", name)
		return
	}
	v.current.declared[name] = true
}

func (v *Validator) errAt(n ast.Node, code diag.Code, format string, args ...any) {
	pos := n.Pos()
	v.report.Add(code, diag.Error, diag.Validation, pos.Line, pos.Column, format, args...)
}

func (v *Validator) validateBlock(b *ast.BlockStatement) {
	v.pushScope()
	for _, s := range b.Statements {
		v.validateStatement(s)
	}
	v.popScope()
}

func (v *Validator) validateStatement(s ast.Statement) {
	switch st := s.(type) {
	case *ast.VarDecl:
		if st.Initializer != nil {
			v.validateExpr(st.Initializer)
		}
		v.declare(st.Name, st)
	case *ast.Assignment:
		v.validateAssignTarget(st)
		v.validateExpr(st.Value)
		if !st.Target.IsData && len(st.Target.Accessors) == 0 && !v.current.resolves(st.Target.Root) {
			// The interpreter declares an unresolved bare target in the
			// innermost scope (spec §4.7); track it so later reads resolve.
			v.current.declared[st.Target.Root] = true
		}
	case *ast.ExpressionStatement:
		if st.Expr != nil {
			v.validateExpr(st.Expr)
		}
	case *ast.IfStatement:
		for _, br := range st.Branches {
			v.validateExpr(br.Condition)
			v.validateBlock(br.Body)
		}
		if st.Else != nil {
			v.validateBlock(st.Else)
		}
	case *ast.SwitchStatement:
		v.validateExpr(st.Value)
		for _, c := range st.Cases {
			for _, val := range c.Values {
				v.validateExpr(val)
			}
			v.validateBlock(c.Body)
		}
		if st.Default != nil {
			v.validateBlock(st.Default)
		}
	case *ast.WhileStatement:
		v.validateExpr(st.Condition)
		v.loopDepth++
		v.validateBlock(st.Body)
		v.loopDepth--
	case *ast.ForeachStatement:
		v.validateExpr(st.Collection)
		v.loopDepth++
		v.pushScope()
		v.declare(st.Name, st)
		for _, inner := range st.Body.Statements {
			v.validateStatement(inner)
		}
		v.popScope()
		v.loopDepth--
	case *ast.ReturnStatement:
		if st.Value != nil {
			v.validateExpr(st.Value)
		}
	case *ast.BreakStatement:
		if v.loopDepth == 0 {
			v.errAt(st, diag.CodeBreakOutsideLoop, "break used outside of any loop")
		}
	case *ast.ContinueStatement:
		if v.loopDepth == 0 {
			v.errAt(st, diag.CodeContinueOutsideLoop, "continue used outside of any loop")
		}
	}
}

// validateAssignTarget checks spec §4.3's "invalid assignment target" rule:
// target must be identifier-or-Data followed by zero or more member/index
// accessors. The AST already constrains the shape (pkg/parser only builds
// AssignTarget values of this form), so this mainly validates that a bare
// identifier target resolves or can be freshly declared, and that any index
// accessor expressions are themselves valid.
func (v *Validator) validateAssignTarget(a *ast.Assignment) {
	t := a.Target
	if !t.IsData && !v.current.resolves(t.Root) && len(t.Accessors) > 0 {
		// Assigning through a chain onto an undeclared local: the root must
		// already exist (spec §4.7 only auto-declares bare identifier targets).
		v.errAt(a, diag.CodeUndeclaredVariable, "identifier %q is not declared", t.Root)
	}
	for _, acc := range t.Accessors {
		if acc.IsIndex {
			v.validateExpr(acc.IndexExp)
		}
	}
}

func (v *Validator) validateExpr(e ast.Expression) {
	switch ex := e.(type) {
	case *ast.Identifier:
		if !v.current.resolves(ex.Name) {
			v.errAt(ex, diag.CodeUndeclaredVariable, "identifier %q is not declared", ex.Name)
		}
	case *ast.DataRoot, *ast.NumberLiteral, *ast.StringLiteral, *ast.BooleanLiteral, *ast.NullLiteral:
		// no sub-expressions
	case *ast.UnaryExpression:
		v.validateExpr(ex.Right)
	case *ast.BinaryExpression:
		v.validateExpr(ex.Left)
		v.validateExpr(ex.Right)
	case *ast.TernaryExpression:
		v.validateExpr(ex.Condition)
		v.validateExpr(ex.Then)
		v.validateExpr(ex.Else)
	case *ast.MemberExpression:
		v.validateExpr(ex.Object)
	case *ast.IndexExpression:
		v.validateExpr(ex.Object)
		v.validateExpr(ex.Index)
	case *ast.CallExpression:
		v.validateCall(ex)
		for _, arg := range ex.Arguments {
			v.validateExpr(arg)
		}
	case *ast.ArrayLiteral:
		for _, el := range ex.Elements {
			v.validateExpr(el)
		}
	case *ast.ObjectLiteral:
		for _, entry := range ex.Entries {
			if _, isIdent := entry.Key.(*ast.Identifier); !isIdent {
				if _, isStr := entry.Key.(*ast.StringLiteral); !isStr {
					v.validateExpr(entry.Key)
				}
			}
			v.validateExpr(entry.Value)
		}
	case *ast.LambdaExpression:
		v.pushScope()
		for _, p := range ex.Parameters {
			v.current.declared[p] = true
		}
		v.validateExpr(ex.Body)
		v.popScope()
	case *ast.TypeCheckExpression:
		v.validateExpr(ex.Value)
	}
}

// validateCall implements SPEC_FULL.md §C.3: reject the identifier-as-
// function-name ambiguity at validation time rather than silently picking a
// precedence (spec §9).
func (v *Validator) validateCall(c *ast.CallExpression) {
	localDeclared := v.current.resolves(c.Callee)
	inCatalog := false
	if v.catalog != nil {
		_, inCatalog = v.catalog.Lookup(c.Callee)
	}
	if localDeclared && inCatalog {
		v.errAt(c, diag.CodeAmbiguousCallTarget,
			"%q is both a local variable and a registered function; calling it is ambiguous", c.Callee)
	}
}
