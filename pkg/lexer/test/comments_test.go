package lexer_test

import (
	"murmur/pkg/lexer"
	"testing"
)

func TestComments(t *testing.T) {
	input := `// test comment
var x := 10; // another test comment
// another another test comment
const y := 20;`

	mylexer := lexer.NewLexer(input)
	expectedTokens := []lexer.TokenType{
		lexer.VAR, lexer.ID, lexer.DEFINE, lexer.NUM, lexer.SEMICOLON,
		lexer.CONST, lexer.ID, lexer.DEFINE, lexer.NUM, lexer.SEMICOLON,
		lexer.EOF,
	}

	for i, expected := range expectedTokens {
		token := mylexer.NextToken()
		if token.Type != expected {
			t.Errorf("Token %d: expected %s, got %s", i, expected, token.Type)
		}
	}
}

func TestBlockComments(t *testing.T) {
	input := `var /* inline */ x := /* multi
line
comment */ 1;`

	mylexer := lexer.NewLexer(input)
	expectedTokens := []lexer.TokenType{
		lexer.VAR, lexer.ID, lexer.DEFINE, lexer.NUM, lexer.SEMICOLON,
		lexer.EOF,
	}

	for i, expected := range expectedTokens {
		token := mylexer.NextToken()
		if token.Type != expected {
			t.Errorf("Token %d: expected %s, got %s", i, expected, token.Type)
		}
	}
}

func TestUnterminatedBlockComment(t *testing.T) {
	mylexer := lexer.NewLexer("var x; /* never closed")

	expectedTokens := []lexer.TokenType{
		lexer.VAR, lexer.ID, lexer.SEMICOLON, lexer.EOF,
	}

	for i, expected := range expectedTokens {
		token := mylexer.NextToken()
		if token.Type != expected {
			t.Errorf("Token %d: expected %s, got %s", i, expected, token.Type)
		}
	}
}
