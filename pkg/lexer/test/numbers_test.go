package lexer_test

import (
	"murmur/pkg/lexer"
	"testing"
)

func TestNumbers(t *testing.T) {
	tests := []struct {
		input       string
		expected    lexer.TokenType
		description string
	}{
		{"42", lexer.NUM, "integer"},
		{"0", lexer.NUM, "zero"},
		{"007", lexer.NUM, "leading zeros"},
		{"1000000", lexer.NUM, "large integer"},
		{"9223372036854775807", lexer.NUM, "max int64"},
	}

	for _, test := range tests {
		tokenType, lexeme, matched := lexer.MatchToken(test.input)
		if !matched {
			t.Errorf("Failed to match %s (%s)", test.input, test.description)
		}
		if tokenType != test.expected {
			t.Errorf("Input %s (%s): expected %s, got %s", test.input, test.description, test.expected, tokenType)
		}
		if lexeme != test.input {
			t.Errorf("Input %s (%s): expected lexeme %s, got %s", test.input, test.description, test.input, lexeme)
		}
	}
}

func TestNoFloatLiterals(t *testing.T) {
	// There is no float syntax; a dot after digits is the member operator.
	mylexer := lexer.NewLexer("3.14")

	expectedTokens := []lexer.TokenType{
		lexer.NUM, lexer.DOT, lexer.NUM, lexer.EOF,
	}

	for i, expected := range expectedTokens {
		token := mylexer.NextToken()
		if token.Type != expected {
			t.Errorf("Token %d: expected %s, got %s", i, expected, token.Type)
		}
	}
}

func TestNegativeNumberIsTwoTokens(t *testing.T) {
	// Unary minus is an expression node, never folded into the literal.
	mylexer := lexer.NewLexer("-5")

	if token := mylexer.NextToken(); token.Type != lexer.MINUS {
		t.Errorf("expected %s, got %s", lexer.MINUS, token.Type)
	}
	if token := mylexer.NextToken(); token.Type != lexer.NUM || token.Lexeme != "5" {
		t.Errorf("expected %s %q, got %s %q", lexer.NUM, "5", token.Type, token.Lexeme)
	}
}
