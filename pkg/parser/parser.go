// Package parser implements a Pratt parser producing the spec §3 AST from
// a pkg/lexer token stream. Jyro's block grammar is keyword-delimited
// (if/then...end, while...do...end, etc.) rather than brace- or indentation-
// delimited, so blocks are parsed by scanning until a terminator keyword
// instead of the teacher's NEWLINE/INDENT tracking — but the expression
// grammar below (precedence table, registerPrefix/registerInfix,
// curToken/peekToken lookahead, parseExpression's precedence-climbing loop)
// follows the teacher's parser shape directly (pkg/parser/parser.go).
package parser

import (
	"fmt"
	"strconv"

	"jyro/pkg/ast"
	"jyro/pkg/lexer"
	"jyro/pkg/token"
)

const (
	_ int = iota
	LOWEST
	TERNARY    // cond ? then : else
	OR         // or
	AND        // and
	NOT        // not x
	EQUALITY   // == !=
	COMPARISON // < <= > >= is
	SUM        // + -
	PRODUCT    // * / %
	PREFIX     // -x
	CALL       // f(...)
	MEMBER     // . [
)

var precedences = map[token.Type]int{
	token.QUESTION: TERNARY,
	token.OR:       OR,
	token.AND:      AND,
	token.EQ:       EQUALITY,
	token.NOT_EQ:   EQUALITY,
	token.LT:       COMPARISON,
	token.LTE:      COMPARISON,
	token.GT:       COMPARISON,
	token.GTE:      COMPARISON,
	token.IS:       COMPARISON,
	token.PLUS:     SUM,
	token.MINUS:    SUM,
	token.ASTERISK: PRODUCT,
	token.SLASH:    PRODUCT,
	token.PERCENT:  PRODUCT,
	token.LPAREN:   CALL,
	token.DOT:      MEMBER,
	token.LBRACKET: MEMBER,
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

// Parser turns a token stream into a *ast.Program. It is not safe for
// concurrent or repeated use; construct one Parser per source string.
type Parser struct {
	l      *lexer.Lexer
	errors []string

	curToken  token.Token
	peekToken token.Token

	prefixParseFns map[token.Type]prefixParseFn
	infixParseFns  map[token.Type]infixParseFn
}

// New constructs a Parser reading from l and primes the two-token lookahead.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l, errors: []string{}}

	p.prefixParseFns = make(map[token.Type]prefixParseFn)
	p.registerPrefix(token.IDENT, p.parseIdentifier)
	p.registerPrefix(token.DATA, p.parseDataRoot)
	p.registerPrefix(token.NUMBER, p.parseNumberLiteral)
	p.registerPrefix(token.STRING, p.parseStringLiteral)
	p.registerPrefix(token.TRUE, p.parseBoolean)
	p.registerPrefix(token.FALSE, p.parseBoolean)
	p.registerPrefix(token.NULL, p.parseNull)
	p.registerPrefix(token.MINUS, p.parseNegExpression)
	p.registerPrefix(token.NOT, p.parseNotExpression)
	p.registerPrefix(token.LPAREN, p.parseGroupedExpression)
	p.registerPrefix(token.LBRACKET, p.parseArrayLiteral)
	p.registerPrefix(token.LBRACE, p.parseObjectLiteral)
	p.registerPrefix(token.LAMBDA, p.parseLambdaExpression)

	p.infixParseFns = make(map[token.Type]infixParseFn)
	p.registerInfix(token.PLUS, p.parseInfixExpression)
	p.registerInfix(token.MINUS, p.parseInfixExpression)
	p.registerInfix(token.ASTERISK, p.parseInfixExpression)
	p.registerInfix(token.SLASH, p.parseInfixExpression)
	p.registerInfix(token.PERCENT, p.parseInfixExpression)
	p.registerInfix(token.EQ, p.parseInfixExpression)
	p.registerInfix(token.NOT_EQ, p.parseInfixExpression)
	p.registerInfix(token.LT, p.parseInfixExpression)
	p.registerInfix(token.LTE, p.parseInfixExpression)
	p.registerInfix(token.GT, p.parseInfixExpression)
	p.registerInfix(token.GTE, p.parseInfixExpression)
	p.registerInfix(token.AND, p.parseInfixExpression)
	p.registerInfix(token.OR, p.parseInfixExpression)
	p.registerInfix(token.IS, p.parseTypeCheckExpression)
	p.registerInfix(token.QUESTION, p.parseTernaryExpression)
	p.registerInfix(token.DOT, p.parseMemberExpression)
	p.registerInfix(token.LBRACKET, p.parseIndexExpression)
	p.registerInfix(token.LPAREN, p.parseCallExpression)

	p.nextToken()
	p.nextToken()
	return p
}

// Errors returns syntax errors collected while parsing; a non-empty result
// means ParseProgram's output must not be trusted (spec §4.1 "Parsing"
// stage failure short-circuits validation/linking/execution).
func (p *Parser) Errors() []string { return p.errors }

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) curTokenIs(t token.Type) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t token.Type) bool { return p.peekToken.Type == t }

func (p *Parser) expectPeek(t token.Type) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.peekError(t)
	return false
}

func (p *Parser) peekError(t token.Type) {
	p.errors = append(p.errors, fmt.Sprintf("line %d:%d: expected next token to be %s, got %s (%q) instead",
		p.peekToken.Line, p.peekToken.Column, t, p.peekToken.Type, p.peekToken.Literal))
}

func (p *Parser) errorf(tok token.Token, format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf("line %d:%d: %s", tok.Line, tok.Column, fmt.Sprintf(format, args...)))
}

func (p *Parser) registerPrefix(t token.Type, fn prefixParseFn) { p.prefixParseFns[t] = fn }
func (p *Parser) registerInfix(t token.Type, fn infixParseFn)   { p.infixParseFns[t] = fn }

func (p *Parser) peekPrecedence() int {
	if pr, ok := precedences[p.peekToken.Type]; ok {
		return pr
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if pr, ok := precedences[p.curToken.Type]; ok {
		return pr
	}
	return LOWEST
}

// ParseProgram consumes the full token stream and returns the root AST node.
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{}
	for !p.curTokenIs(token.EOF) {
		if p.curTokenIs(token.SEMI) {
			p.nextToken()
			continue
		}
		stmt := p.parseStatement()
		if stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
		p.nextToken()
	}
	return program
}

// parseBlockUntil parses statements until curToken matches one of
// terminators (left unconsumed, so the caller can tell which was reached).
func (p *Parser) parseBlockUntil(terminators ...token.Type) *ast.BlockStatement {
	block := &ast.BlockStatement{}
	block.Token = p.curToken
	for !p.curTokenIs(token.EOF) && !p.curTokenInSet(terminators) {
		if p.curTokenIs(token.SEMI) {
			p.nextToken()
			continue
		}
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		p.nextToken()
	}
	return block
}

func (p *Parser) curTokenInSet(set []token.Type) bool {
	for _, t := range set {
		if p.curToken.Type == t {
			return true
		}
	}
	return false
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case token.VAR:
		return p.parseVarDecl()
	case token.IF:
		return p.parseIfStatement()
	case token.SWITCH:
		return p.parseSwitchStatement()
	case token.WHILE:
		return p.parseWhileStatement()
	case token.FOREACH:
		return p.parseForeachStatement()
	case token.RETURN:
		return p.parseReturnStatement()
	case token.BREAK:
		stmt := &ast.BreakStatement{}
		stmt.Token = p.curToken
		return stmt
	case token.CONTINUE:
		stmt := &ast.ContinueStatement{}
		stmt.Token = p.curToken
		return stmt
	default:
		return p.parseExpressionOrAssignmentStatement()
	}
}

func (p *Parser) parseVarDecl() ast.Statement {
	decl := &ast.VarDecl{}
	decl.Token = p.curToken
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	decl.Name = p.curToken.Literal

	if tag, ok := typeTagFor(p.peekToken.Type); ok {
		p.nextToken()
		decl.Tag = tag
	}

	if p.peekTokenIs(token.ASSIGN) {
		p.nextToken()
		p.nextToken()
		decl.Initializer = p.parseExpression(LOWEST)
	}
	return decl
}

func typeTagFor(t token.Type) (ast.TypeTag, bool) {
	switch t {
	case token.NUMBER_TYPE:
		return ast.TagNumber, true
	case token.STRING_TYPE:
		return ast.TagString, true
	case token.BOOLEAN_TYPE:
		return ast.TagBoolean, true
	case token.OBJECT_TYPE:
		return ast.TagObject, true
	case token.ARRAY_TYPE:
		return ast.TagArray, true
	default:
		return ast.TagNone, false
	}
}

// parseExpressionOrAssignmentStatement parses a full expression, then looks
// at the following token to decide whether it is actually an assignment
// target (spec §3: "target is identifier or data-root followed by chain of
// .name / [expr] accessors").
func (p *Parser) parseExpressionOrAssignmentStatement() ast.Statement {
	startTok := p.curToken
	expr := p.parseExpression(LOWEST)
	if expr == nil {
		return nil
	}
	if p.peekTokenIs(token.ASSIGN) {
		target, ok := exprToAssignTarget(expr)
		if !ok {
			p.errorf(startTok, "invalid assignment target")
			return nil
		}
		p.nextToken() // cur = ASSIGN
		p.nextToken() // cur = first token of value
		val := p.parseExpression(LOWEST)
		stmt := &ast.Assignment{Target: target, Operator: "=", Value: val}
		stmt.Token = startTok
		return stmt
	}
	stmt := &ast.ExpressionStatement{Expr: expr}
	stmt.Token = startTok
	return stmt
}

// exprToAssignTarget unwraps a MemberExpression/IndexExpression chain down
// to its Identifier or DataRoot root, producing the flat AssignTarget shape
// the interpreter's chain-walking assignment logic expects.
func exprToAssignTarget(e ast.Expression) (ast.AssignTarget, bool) {
	var accessors []ast.Accessor
	cur := e
	for {
		switch n := cur.(type) {
		case *ast.MemberExpression:
			accessors = append([]ast.Accessor{{IsIndex: false, Name: n.Name}}, accessors...)
			cur = n.Object
		case *ast.IndexExpression:
			accessors = append([]ast.Accessor{{IsIndex: true, IndexExp: n.Index}}, accessors...)
			cur = n.Object
		case *ast.Identifier:
			return ast.AssignTarget{Root: n.Name, IsData: false, Accessors: accessors, RootTok: n.Pos()}, true
		case *ast.DataRoot:
			return ast.AssignTarget{Root: "Data", IsData: true, Accessors: accessors, RootTok: n.Pos()}, true
		default:
			return ast.AssignTarget{}, false
		}
	}
}

func (p *Parser) parseIfStatement() ast.Statement {
	stmt := &ast.IfStatement{}
	stmt.Token = p.curToken

	branch, ok := p.parseIfBranch()
	if !ok {
		return nil
	}
	stmt.Branches = append(stmt.Branches, branch)

	for p.curTokenIs(token.ELSEIF) {
		branch, ok := p.parseIfBranch()
		if !ok {
			return nil
		}
		stmt.Branches = append(stmt.Branches, branch)
	}

	if p.curTokenIs(token.ELSE) {
		p.nextToken()
		stmt.Else = p.parseBlockUntil(token.END)
	}

	if !p.curTokenIs(token.END) {
		p.errorf(p.curToken, "expected 'end' to close if statement, got %s", p.curToken.Type)
		return nil
	}
	return stmt
}

// parseIfBranch parses one `if cond then ...` or `elseif cond then ...` arm,
// leaving curToken positioned at the ELSEIF/ELSE/END that follows the body.
func (p *Parser) parseIfBranch() (ast.IfBranch, bool) {
	p.nextToken() // past IF/ELSEIF
	cond := p.parseExpression(LOWEST)
	if !p.expectPeek(token.THEN) {
		return ast.IfBranch{}, false
	}
	p.nextToken() // past THEN
	body := p.parseBlockUntil(token.ELSEIF, token.ELSE, token.END)
	return ast.IfBranch{Condition: cond, Body: body}, true
}

func (p *Parser) parseSwitchStatement() ast.Statement {
	stmt := &ast.SwitchStatement{}
	stmt.Token = p.curToken
	p.nextToken()
	stmt.Value = p.parseExpression(LOWEST)
	if !p.expectPeek(token.DO) {
		return nil
	}
	p.nextToken()

	for p.curTokenIs(token.CASE) {
		p.nextToken()
		var values []ast.Expression
		values = append(values, p.parseExpression(LOWEST))
		for p.peekTokenIs(token.COMMA) {
			p.nextToken()
			p.nextToken()
			values = append(values, p.parseExpression(LOWEST))
		}
		if !p.expectPeek(token.THEN) {
			return nil
		}
		p.nextToken()
		body := p.parseBlockUntil(token.CASE, token.DEFAULT, token.END)
		stmt.Cases = append(stmt.Cases, ast.SwitchCase{Values: values, Body: body})
	}

	if p.curTokenIs(token.DEFAULT) {
		if !p.expectPeek(token.THEN) {
			return nil
		}
		p.nextToken()
		stmt.Default = p.parseBlockUntil(token.END)
	}

	if !p.curTokenIs(token.END) {
		p.errorf(p.curToken, "expected 'end' to close switch statement, got %s", p.curToken.Type)
		return nil
	}
	return stmt
}

func (p *Parser) parseWhileStatement() ast.Statement {
	stmt := &ast.WhileStatement{}
	stmt.Token = p.curToken
	p.nextToken()
	stmt.Condition = p.parseExpression(LOWEST)
	if !p.expectPeek(token.DO) {
		return nil
	}
	p.nextToken()
	stmt.Body = p.parseBlockUntil(token.END)
	if !p.curTokenIs(token.END) {
		p.errorf(p.curToken, "expected 'end' to close while loop, got %s", p.curToken.Type)
		return nil
	}
	return stmt
}

func (p *Parser) parseForeachStatement() ast.Statement {
	stmt := &ast.ForeachStatement{}
	stmt.Token = p.curToken
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.Name = p.curToken.Literal
	if !p.expectPeek(token.IN) {
		return nil
	}
	p.nextToken()
	stmt.Collection = p.parseExpression(LOWEST)
	if !p.expectPeek(token.DO) {
		return nil
	}
	p.nextToken()
	stmt.Body = p.parseBlockUntil(token.END)
	if !p.curTokenIs(token.END) {
		p.errorf(p.curToken, "expected 'end' to close foreach loop, got %s", p.curToken.Type)
		return nil
	}
	return stmt
}

func (p *Parser) parseReturnStatement() ast.Statement {
	stmt := &ast.ReturnStatement{}
	stmt.Token = p.curToken
	if p.peekTokenIs(token.SEMI) || p.peekTokenIs(token.EOF) || statementTerminator(p.peekToken.Type) {
		return stmt
	}
	p.nextToken()
	stmt.Value = p.parseExpression(LOWEST)
	return stmt
}

// statementTerminator reports whether t is one of the block-closing keywords
// that may legally follow a bare `return` with no value.
func statementTerminator(t token.Type) bool {
	switch t {
	case token.END, token.ELSE, token.ELSEIF, token.CASE, token.DEFAULT:
		return true
	default:
		return false
	}
}

// ---- expressions ----

func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.errorf(p.curToken, "no prefix parse function for %s (%q)", p.curToken.Type, p.curToken.Literal)
		return nil
	}
	left := prefix()

	for !p.peekTokenIs(token.SEMI) && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return left
		}
		p.nextToken()
		left = infix(left)
	}
	return left
}

func (p *Parser) parseIdentifier() ast.Expression {
	id := &ast.Identifier{Name: p.curToken.Literal}
	id.Token = p.curToken
	return id
}

func (p *Parser) parseDataRoot() ast.Expression {
	n := &ast.DataRoot{}
	n.Token = p.curToken
	return n
}

func (p *Parser) parseNumberLiteral() ast.Expression {
	n := &ast.NumberLiteral{}
	n.Token = p.curToken
	val, ok := parseNumberLiteralValue(p.curToken.Literal)
	if !ok {
		p.errorf(p.curToken, "could not parse %q as a number", p.curToken.Literal)
		return nil
	}
	n.Value = val
	return n
}

func (p *Parser) parseStringLiteral() ast.Expression {
	n := &ast.StringLiteral{Value: p.curToken.Literal}
	n.Token = p.curToken
	return n
}

func (p *Parser) parseBoolean() ast.Expression {
	n := &ast.BooleanLiteral{Value: p.curTokenIs(token.TRUE)}
	n.Token = p.curToken
	return n
}

func (p *Parser) parseNull() ast.Expression {
	n := &ast.NullLiteral{}
	n.Token = p.curToken
	return n
}

// parseNegExpression parses unary minus, which binds tighter than every
// binary operator (spec §3: "... multiplicative * / % -> unary - ->
// postfix"), so its operand is parsed at PREFIX precedence.
func (p *Parser) parseNegExpression() ast.Expression {
	tok := p.curToken
	p.nextToken()
	right := p.parseExpression(PREFIX)
	n := &ast.UnaryExpression{Operator: "-", Right: right}
	n.Token = tok
	return n
}

// parseNotExpression parses unary `not`, which binds looser than equality,
// relational, additive and multiplicative operators (spec §3: "unary not ->
// equality == != -> relational ... -> additive + - -> multiplicative * / %
// -> unary - -> postfix"), so its operand absorbs all of those: `not a == b`
// parses as `not (a == b)`, not `(not a) == b`.
func (p *Parser) parseNotExpression() ast.Expression {
	tok := p.curToken
	p.nextToken()
	right := p.parseExpression(NOT)
	n := &ast.UnaryExpression{Operator: "not", Right: right}
	n.Token = tok
	return n
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	p.nextToken()
	exp := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return exp
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	n := &ast.ArrayLiteral{}
	n.Token = p.curToken
	n.Elements = p.parseExpressionList(token.RBRACKET)
	return n
}

// parseExpressionList parses a comma-separated list of expressions starting
// just after the opening delimiter (curToken is that delimiter on entry),
// consuming through end.
func (p *Parser) parseExpressionList(end token.Type) []ast.Expression {
	var list []ast.Expression
	if p.peekTokenIs(end) {
		p.nextToken()
		return list
	}
	p.nextToken()
	list = append(list, p.parseExpression(LOWEST))
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		list = append(list, p.parseExpression(LOWEST))
	}
	if !p.expectPeek(end) {
		return nil
	}
	return list
}

func (p *Parser) parseObjectLiteral() ast.Expression {
	n := &ast.ObjectLiteral{}
	n.Token = p.curToken

	for !p.peekTokenIs(token.RBRACE) {
		p.nextToken()
		key := p.parseObjectKey()
		if key == nil {
			return nil
		}
		if !p.expectPeek(token.COLON) {
			return nil
		}
		p.nextToken()
		val := p.parseExpression(LOWEST)
		n.Entries = append(n.Entries, ast.ObjectEntry{Key: key, Value: val})

		if !p.peekTokenIs(token.RBRACE) && !p.expectPeek(token.COMMA) {
			return nil
		}
	}
	if !p.expectPeek(token.RBRACE) {
		return nil
	}
	return n
}

// parseObjectKey accepts a string literal, a bare identifier (interpreted as
// a string, spec §4.6), or a bracketed computed expression `[expr]: value`.
func (p *Parser) parseObjectKey() ast.Expression {
	switch p.curToken.Type {
	case token.STRING:
		return p.parseStringLiteral()
	case token.LBRACKET:
		p.nextToken()
		key := p.parseExpression(LOWEST)
		if !p.expectPeek(token.RBRACKET) {
			return nil
		}
		return key
	default:
		id := &ast.Identifier{Name: p.curToken.Literal}
		id.Token = p.curToken
		return id
	}
}

func (p *Parser) parseLambdaExpression() ast.Expression {
	tok := p.curToken
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	var params []string
	if !p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		params = append(params, p.curToken.Literal)
		for p.peekTokenIs(token.COMMA) {
			p.nextToken()
			p.nextToken()
			params = append(params, p.curToken.Literal)
		}
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	if !p.expectPeek(token.FAT_ARROW) {
		return nil
	}
	p.nextToken()
	body := p.parseExpression(LOWEST)
	n := &ast.LambdaExpression{Parameters: params, Body: body}
	n.Token = tok
	return n
}

func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	tok := p.curToken
	op := tok.Literal
	switch tok.Type {
	case token.AND:
		op = "and"
	case token.OR:
		op = "or"
	}
	precedence := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(precedence)
	n := &ast.BinaryExpression{Left: left, Operator: op, Right: right}
	n.Token = tok
	return n
}

func (p *Parser) parseTypeCheckExpression(left ast.Expression) ast.Expression {
	tok := p.curToken // IS
	p.nextToken()
	tag, ok := typeTagFor(p.curToken.Type)
	if !ok {
		p.errorf(p.curToken, "expected a type name after 'is', got %s", p.curToken.Type)
		return nil
	}
	n := &ast.TypeCheckExpression{Value: left, Tag: tag}
	n.Token = tok
	return n
}

func (p *Parser) parseTernaryExpression(cond ast.Expression) ast.Expression {
	tok := p.curToken // QUESTION
	p.nextToken()
	then := p.parseExpression(LOWEST)
	if !p.expectPeek(token.COLON) {
		return nil
	}
	p.nextToken()
	els := p.parseExpression(TERNARY)
	n := &ast.TernaryExpression{Condition: cond, Then: then, Else: els}
	n.Token = tok
	return n
}

func (p *Parser) parseMemberExpression(object ast.Expression) ast.Expression {
	tok := p.curToken // DOT
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	n := &ast.MemberExpression{Object: object, Name: p.curToken.Literal}
	n.Token = tok
	return n
}

func (p *Parser) parseIndexExpression(object ast.Expression) ast.Expression {
	tok := p.curToken // LBRACKET
	p.nextToken()
	idx := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RBRACKET) {
		return nil
	}
	n := &ast.IndexExpression{Object: object, Index: idx}
	n.Token = tok
	return n
}

// parseCallExpression requires left to be a bare identifier (spec §9:
// "identifier-in-call-position is always treated as a function name" —
// Jyro has no first-class function values to call through an arbitrary
// expression; lambda values are invoked only through
// Interpreter.CallLambda, never by `expr(...)` syntax).
func (p *Parser) parseCallExpression(left ast.Expression) ast.Expression {
	tok := p.curToken // LPAREN
	ident, ok := left.(*ast.Identifier)
	if !ok {
		p.errorf(tok, "call target must be a plain function name")
		return nil
	}
	n := &ast.CallExpression{Callee: ident.Name}
	n.Token = tok
	n.Arguments = p.parseExpressionList(token.RPAREN)
	return n
}

// parseNumberLiteralValue converts a NUMBER token's literal text to a
// float64. The lexer already normalizes 0x/0b literals to plain decimal
// digit text (pkg/lexer.readNumber), so strconv.ParseFloat handles every
// literal shape the lexer can produce, including scientific notation.
func parseNumberLiteralValue(lit string) (float64, bool) {
	n, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
