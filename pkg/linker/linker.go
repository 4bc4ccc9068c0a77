// Package linker implements spec §4.4: it walks every call site in the AST,
// resolves each referenced name against a catalog.Registry, emits
// UndefinedFunction diagnostics for anything unresolved, and produces a
// LinkedProgram — the frozen (AST, name->function table) pair the
// interpreter executes against.
//
// The teacher has no separate link stage (pkg/eval resolves call targets at
// Eval time via Environment.Get); this package is new, moving that
// resolution to a pre-execution pass per spec §4.4.
package linker

import (
	"jyro/pkg/ast"
	"jyro/pkg/catalog"
	"jyro/pkg/diag"
)

// CallRef records one collected call-site reference (spec §4.4: "the set
// {(name, arity, location)}").
type CallRef struct {
	Name  string
	Arity int
	Line  int
	Col   int
}

// LinkedProgram is the immutable input to execution: an AST plus a frozen
// name->function table (spec GLOSSARY).
type LinkedProgram struct {
	Program   *ast.Program
	Functions map[string]catalog.Function
}

// Link walks program's call sites, resolves them against registry, and
// returns a LinkedProgram plus a diagnostics report. Per-call arity/type
// checks are deferred to execution time — the linker's guarantee is only
// name resolution (spec §4.4).
func Link(program *ast.Program, registry *catalog.Registry) (*LinkedProgram, *diag.Report) {
	report := &diag.Report{}

	for _, name := range registry.Conflicts {
		report.Add(diag.CodeDuplicateFunction, diag.Warning, diag.Linking, 0, 0,
			"function %q registered more than once; last registration wins", name)
	}

	refs := collectCallRefs(program)
	for _, ref := range refs {
		if _, ok := registry.Lookup(ref.Name); !ok {
			report.Add(diag.CodeUndefinedFunction, diag.Error, diag.Linking, ref.Line, ref.Col,
				"call to undefined function %q", ref.Name)
		}
	}

	linked := &LinkedProgram{Program: program, Functions: registry.Snapshot()}
	return linked, report
}

func collectCallRefs(program *ast.Program) []CallRef {
	var refs []CallRef
	var walkStmt func(ast.Statement)
	var walkExpr func(ast.Expression)

	walkBlock := func(b *ast.BlockStatement) {
		if b == nil {
			return
		}
		for _, s := range b.Statements {
			walkStmt(s)
		}
	}

	walkExpr = func(e ast.Expression) {
		if e == nil {
			return
		}
		switch ex := e.(type) {
		case *ast.CallExpression:
			refs = append(refs, CallRef{Name: ex.Callee, Arity: len(ex.Arguments), Line: ex.Pos().Line, Col: ex.Pos().Column})
			for _, a := range ex.Arguments {
				walkExpr(a)
			}
		case *ast.UnaryExpression:
			walkExpr(ex.Right)
		case *ast.BinaryExpression:
			walkExpr(ex.Left)
			walkExpr(ex.Right)
		case *ast.TernaryExpression:
			walkExpr(ex.Condition)
			walkExpr(ex.Then)
			walkExpr(ex.Else)
		case *ast.MemberExpression:
			walkExpr(ex.Object)
		case *ast.IndexExpression:
			walkExpr(ex.Object)
			walkExpr(ex.Index)
		case *ast.ArrayLiteral:
			for _, el := range ex.Elements {
				walkExpr(el)
			}
		case *ast.ObjectLiteral:
			for _, entry := range ex.Entries {
				walkExpr(entry.Key)
				walkExpr(entry.Value)
			}
		case *ast.LambdaExpression:
			walkExpr(ex.Body)
		case *ast.TypeCheckExpression:
			walkExpr(ex.Value)
		}
	}

	walkStmt = func(s ast.Statement) {
		switch st := s.(type) {
		case *ast.VarDecl:
			walkExpr(st.Initializer)
		case *ast.Assignment:
			for _, acc := range st.Target.Accessors {
				if acc.IsIndex {
					walkExpr(acc.IndexExp)
				}
			}
			walkExpr(st.Value)
		case *ast.ExpressionStatement:
			walkExpr(st.Expr)
		case *ast.IfStatement:
			for _, br := range st.Branches {
				walkExpr(br.Condition)
				walkBlock(br.Body)
			}
			walkBlock(st.Else)
		case *ast.SwitchStatement:
			walkExpr(st.Value)
			for _, c := range st.Cases {
				for _, v := range c.Values {
					walkExpr(v)
				}
				walkBlock(c.Body)
			}
			walkBlock(st.Default)
		case *ast.WhileStatement:
			walkExpr(st.Condition)
			walkBlock(st.Body)
		case *ast.ForeachStatement:
			walkExpr(st.Collection)
			walkBlock(st.Body)
		case *ast.ReturnStatement:
			walkExpr(st.Value)
		}
	}

	for _, s := range program.Statements {
		walkStmt(s)
	}
	return refs
}
