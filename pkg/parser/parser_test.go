package parser

import (
	"testing"

	"jyro/pkg/ast"
	"jyro/pkg/lexer"
)

func parseProgram(t *testing.T, input string) *ast.Program {
	t.Helper()
	l := lexer.New(input)
	p := New(l)
	program := p.ParseProgram()
	checkParserErrors(t, p)
	return program
}

func checkParserErrors(t *testing.T, p *Parser) {
	t.Helper()
	errs := p.Errors()
	if len(errs) == 0 {
		return
	}
	t.Errorf("parser had %d errors", len(errs))
	for _, msg := range errs {
		t.Errorf("parser error: %s", msg)
	}
	t.FailNow()
}

func TestVarDeclAndAssignment(t *testing.T) {
	program := parseProgram(t, `var x = 5
Data.result = x + 1`)

	if len(program.Statements) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(program.Statements))
	}

	decl, ok := program.Statements[0].(*ast.VarDecl)
	if !ok {
		t.Fatalf("statement 0 not *ast.VarDecl, got %T", program.Statements[0])
	}
	if decl.Name != "x" {
		t.Errorf("decl.Name = %q, want x", decl.Name)
	}

	assign, ok := program.Statements[1].(*ast.Assignment)
	if !ok {
		t.Fatalf("statement 1 not *ast.Assignment, got %T", program.Statements[1])
	}
	if !assign.Target.IsData || len(assign.Target.Accessors) != 1 || assign.Target.Accessors[0].Name != "result" {
		t.Errorf("assignment target wrong: %+v", assign.Target)
	}
}

func TestOperatorPrecedence(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1 + 2 * 3", "(1 + (2 * 3))"},
		{"(1 + 2) * 3", "((1 + 2) * 3)"},
		{"a and b or c", "((a and b) or c)"},
		{"not a == b", "(not (a == b))"},
		{"1 < 2 and 2 < 3", "((1 < 2) and (2 < 3))"},
		{"a.b[0]", "a.b[0]"},
	}

	for _, tt := range tests {
		l := lexer.New(tt.input)
		p := New(l)
		expr := p.parseExpression(LOWEST)
		checkParserErrors(t, p)
		if expr.String() != tt.want {
			t.Errorf("input %q: got %q, want %q", tt.input, expr.String(), tt.want)
		}
	}
}

func TestIfElseifElse(t *testing.T) {
	program := parseProgram(t, `if x > 10 then
	Data.t = "big"
elseif x > 0 then
	Data.t = "small"
else
	Data.t = "none"
end`)

	stmt, ok := program.Statements[0].(*ast.IfStatement)
	if !ok {
		t.Fatalf("not *ast.IfStatement, got %T", program.Statements[0])
	}
	if len(stmt.Branches) != 2 {
		t.Fatalf("expected 2 branches, got %d", len(stmt.Branches))
	}
	if stmt.Else == nil {
		t.Fatalf("expected an else block")
	}
}

func TestSwitchStatement(t *testing.T) {
	program := parseProgram(t, `switch true do
case 75 >= 100 then
	Data.t = "G"
case 75 >= 50 then
	Data.t = "S"
default then
	Data.t = "B"
end`)

	stmt, ok := program.Statements[0].(*ast.SwitchStatement)
	if !ok {
		t.Fatalf("not *ast.SwitchStatement, got %T", program.Statements[0])
	}
	if len(stmt.Cases) != 2 {
		t.Fatalf("expected 2 cases, got %d", len(stmt.Cases))
	}
	if stmt.Default == nil {
		t.Fatalf("expected a default block")
	}
}

func TestWhileAndForeach(t *testing.T) {
	program := parseProgram(t, `while i < 5 do
	i = i + 1
end
foreach item in arr do
	Data.sum = Data.sum + item
end`)

	if _, ok := program.Statements[0].(*ast.WhileStatement); !ok {
		t.Fatalf("statement 0 not *ast.WhileStatement, got %T", program.Statements[0])
	}
	fe, ok := program.Statements[1].(*ast.ForeachStatement)
	if !ok {
		t.Fatalf("statement 1 not *ast.ForeachStatement, got %T", program.Statements[1])
	}
	if fe.Name != "item" {
		t.Errorf("foreach binding name = %q, want item", fe.Name)
	}
}

func TestCallExpressionRequiresPlainIdentifier(t *testing.T) {
	l := lexer.New(`(1 + 2)(3)`)
	p := New(l)
	p.parseExpression(LOWEST)
	if len(p.Errors()) == 0 {
		t.Fatalf("expected a parse error for calling a non-identifier expression")
	}
}

func TestLambdaExpression(t *testing.T) {
	l := lexer.New(`lambda(x, y) => x + y`)
	p := New(l)
	expr := p.parseExpression(LOWEST)
	checkParserErrors(t, p)

	lambda, ok := expr.(*ast.LambdaExpression)
	if !ok {
		t.Fatalf("not *ast.LambdaExpression, got %T", expr)
	}
	if len(lambda.Parameters) != 2 || lambda.Parameters[0] != "x" || lambda.Parameters[1] != "y" {
		t.Errorf("lambda parameters wrong: %v", lambda.Parameters)
	}
}

func TestTypeCheckExpression(t *testing.T) {
	l := lexer.New(`x is number`)
	p := New(l)
	expr := p.parseExpression(LOWEST)
	checkParserErrors(t, p)

	tc, ok := expr.(*ast.TypeCheckExpression)
	if !ok {
		t.Fatalf("not *ast.TypeCheckExpression, got %T", expr)
	}
	if tc.Tag != ast.TagNumber {
		t.Errorf("tag = %v, want TagNumber", tc.Tag)
	}
}

func TestObjectLiteral(t *testing.T) {
	l := lexer.New(`{name: "Alice", "age": 30, [key]: val}`)
	p := New(l)
	expr := p.parseExpression(LOWEST)
	checkParserErrors(t, p)

	obj, ok := expr.(*ast.ObjectLiteral)
	if !ok {
		t.Fatalf("not *ast.ObjectLiteral, got %T", expr)
	}
	if len(obj.Entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(obj.Entries))
	}
}

func TestReturnStatementOptionalValue(t *testing.T) {
	program := parseProgram(t, `if true then
	return
end
return 5`)

	ifStmt := program.Statements[0].(*ast.IfStatement)
	ret := ifStmt.Branches[0].Body.Statements[0].(*ast.ReturnStatement)
	if ret.Value != nil {
		t.Errorf("expected a bare return, got a value")
	}

	ret2 := program.Statements[1].(*ast.ReturnStatement)
	if ret2.Value == nil {
		t.Errorf("expected return 5 to carry a value")
	}
}
