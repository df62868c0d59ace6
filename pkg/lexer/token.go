package lexer

import (
	"fmt"
)

type TokenType int
type TokenCategory int

type Token struct {
	Type   TokenType // Type of the token
	Lexeme string    // Actual string from source code
	Pos    Position  // Position in source code
}

// NewToken creates a new Token instance
func NewToken(tokenType TokenType, lexeme string, pos Position) Token {
	return Token{
		Type:   tokenType,
		Lexeme: lexeme,
		Pos:    pos,
	}
}

const (
	NONE TokenCategory = iota
	KEYWORD
	IDENTIFIER
	LITERAL
	OPERATOR
	DELIMITER
)

const (
	EOF TokenType = iota // End of file

	DEF    // def
	CONST  // const
	VAR    // var
	RETURN // return
	IF     // if
	ELSIF  // elsif
	ELSE   // else
	LOOP   // loop

	ID  // id (identifier)
	NUM // num (integer literal)

	DEFINE // :=
	ARROW  // ->
	PLUS   // +
	MINUS  // -
	MULT   // *
	DIV    // /
	DOT    // .

	SEMICOLON // ;
	COMMA     // ,
	LPAREN    // (
	RPAREN    // )
	LBRACE    // {
	RBRACE    // }

	ILLEGAL // illegal token
)

var Keywords = map[string]TokenType{
	"def":    DEF,
	"const":  CONST,
	"var":    VAR,
	"return": RETURN,
	"if":     IF,
	"elsif":  ELSIF,
	"else":   ELSE,
	"loop":   LOOP,
}

// TokenToString converts a TokenType to its string representation
func (t Token) TokenToString() (string, bool) {
	mapping := map[TokenType]string{
		DEF:       "def",
		CONST:     "const",
		VAR:       "var",
		RETURN:    "return",
		IF:        "if",
		ELSIF:     "elsif",
		ELSE:      "else",
		LOOP:      "loop",
		DEFINE:    ":=",
		ARROW:     "->",
		PLUS:      "+",
		MINUS:     "-",
		MULT:      "*",
		DIV:       "/",
		DOT:       ".",
		SEMICOLON: ";",
		COMMA:     ",",
		LPAREN:    "(",
		RPAREN:    ")",
		LBRACE:    "{",
		RBRACE:    "}",
		ID:        "id",
		NUM:       "num",
		EOF:       "$",
	}

	str, ok := mapping[t.Type]
	return str, ok
}

// String returns a string representation of the Token
func (t Token) String() string {
	return fmt.Sprintf("T_{%s, %q, %s}",
		t.Type, t.Lexeme, t.Pos.String())
}

// String returns a string representation of the TokenType
func (t TokenType) String() string {
	if str, ok := (Token{Type: t}).TokenToString(); ok {
		return str
	}

	return fmt.Sprintf("UNKNOWN(%d)", int(t))
}

// GetCategory returns the category of the token
func (t TokenType) GetCategory() TokenCategory {
	switch t {
	case DEF, CONST, VAR, RETURN, IF, ELSIF, ELSE, LOOP:
		return KEYWORD
	case ID:
		return IDENTIFIER
	case NUM:
		return LITERAL
	case DEFINE, ARROW, PLUS, MINUS, MULT, DIV, DOT:
		return OPERATOR
	case SEMICOLON, COMMA, LPAREN, RPAREN, LBRACE, RBRACE:
		return DELIMITER
	default:
		return NONE
	}
}

// IsKeyword checks if the given identifier is a keyword and returns its TokenType if it is
func IsKeyword(identifier string) (TokenType, bool) {
	tokenType, ok := Keywords[identifier]
	return tokenType, ok
}
