package lexer

import (
	"testing"

	"jyro/pkg/token"
)

func TestNextToken(t *testing.T) {
	input := `var x = 10
if x > 5 then
	Data.result = x + 1
end
`

	tests := []struct {
		expectedType    token.Type
		expectedLiteral string
	}{
		{token.VAR, "var"},
		{token.IDENT, "x"},
		{token.ASSIGN, "="},
		{token.NUMBER, "10"},
		{token.IF, "if"},
		{token.IDENT, "x"},
		{token.GT, ">"},
		{token.NUMBER, "5"},
		{token.THEN, "then"},
		{token.DATA, "Data"},
		{token.DOT, "."},
		{token.IDENT, "result"},
		{token.ASSIGN, "="},
		{token.IDENT, "x"},
		{token.PLUS, "+"},
		{token.NUMBER, "1"},
		{token.END, "end"},
		{token.EOF, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q, literal=%q",
				i, tt.expectedType, tok.Type, tok.Literal)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q", i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestOperatorsAndDelimiters(t *testing.T) {
	input := `== != <= >= ? : => and or not is`
	tests := []token.Type{
		token.EQ, token.NOT_EQ, token.LTE, token.GTE, token.QUESTION, token.COLON,
		token.FAT_ARROW, token.AND, token.OR, token.NOT, token.IS,
	}

	l := New(input)
	for i, want := range tests {
		tok := l.NextToken()
		if tok.Type != want {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q", i, want, tok.Type)
		}
	}
}

func TestStringEscapes(t *testing.T) {
	input := `"line1\nline2\ttab" 'single\'quoted'`
	l := New(input)

	tok := l.NextToken()
	if tok.Type != token.STRING || tok.Literal != "line1\nline2\ttab" {
		t.Fatalf("double-quoted escape wrong: %q", tok.Literal)
	}

	tok = l.NextToken()
	if tok.Type != token.STRING || tok.Literal != "single'quoted" {
		t.Fatalf("single-quoted escape wrong: %q", tok.Literal)
	}
}

func TestHexAndBinaryLiterals(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"0x1A", "26"},
		{"0b101", "5"},
		{"3.14", "3.14"},
		{"1e3", "1e3"},
	}
	for _, tt := range tests {
		l := New(tt.input)
		tok := l.NextToken()
		if tok.Type != token.NUMBER || tok.Literal != tt.want {
			t.Fatalf("input %q: got %q, want %q", tt.input, tok.Literal, tt.want)
		}
	}
}

func TestComments(t *testing.T) {
	input := "var x = 1 # trailing comment\nvar y = 2"
	l := New(input)
	var types []token.Type
	for {
		tok := l.NextToken()
		if tok.Type == token.EOF {
			break
		}
		types = append(types, tok.Type)
	}
	want := []token.Type{token.VAR, token.IDENT, token.ASSIGN, token.NUMBER, token.VAR, token.IDENT, token.ASSIGN, token.NUMBER}
	if len(types) != len(want) {
		t.Fatalf("comment skipping wrong: got %v", types)
	}
}
