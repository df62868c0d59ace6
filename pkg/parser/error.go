package parser

import (
	"fmt"

	"murmur/pkg/color"
	"murmur/pkg/lexer"
)

// expectError is called when the current token doesn't match the wanted type.
// It only reports an error. It does NOT advance tokens.
func (p *Parser) expectError(expected lexer.TokenType) {
	// Heuristic: if we expected ';' but current token clearly starts a new
	// statement, closes a block, or ends input, report "Missing semicolon".
	if expected == lexer.SEMICOLON && p.isStatementBoundary(p.currentToken.Type) {
		p.addError("Missing semicolon")
		return
	}

	// Specific: binding without identifier like `var := 42;`
	if expected == lexer.ID && p.currentToken.Type == lexer.DEFINE {
		p.addError("Missing identifier")
		return
	}

	p.addError(p.categorizeError(expected, p.currentToken))
}

// primaryError is called when no expression can start at the current token.
func (p *Parser) primaryError() {
	current := p.currentToken

	if current.Type == lexer.SEMICOLON || current.Type == lexer.RPAREN ||
		current.Type == lexer.COMMA || current.Type == lexer.RBRACE ||
		current.Type == lexer.EOF {
		p.addError("Missing expression")
		return
	}

	if current.Type.GetCategory() == lexer.KEYWORD {
		p.addError(fmt.Sprintf("Unexpected keyword '%s' in expression", current.Type))
		return
	}

	p.addError(fmt.Sprintf("Unexpected token '%s'", current.Lexeme))
}

// addError records a parsing error at the current token with location
func (p *Parser) addError(msg string) {
	p.addErrorAt(msg, p.currentToken)
}

// addErrorAt records a parsing error at the given token with location
func (p *Parser) addErrorAt(msg string, tok lexer.Token) {
	pos := tok.Pos
	formatted := color.RedText(msg) + " at " + color.YellowText(fmt.Sprintf("Line: %d, Column %d", pos.Line, pos.Column))
	p.errors = append(p.errors, formatted)
}

// Errors returns the list of parsing errors
func (p *Parser) Errors() []string {
	return p.errors
}

// isStatementBoundary checks if a token type indicates the start of a new statement or block boundary
func (p *Parser) isStatementBoundary(t lexer.TokenType) bool {
	switch t {
	case lexer.DEF, lexer.CONST, lexer.VAR, lexer.RETURN, lexer.IF, lexer.LOOP,
		lexer.ID, lexer.RBRACE, lexer.EOF:
		return true
	default:
		return false
	}
}

// categorizeError provides a specific error message based on expected token and current token
func (p *Parser) categorizeError(expected lexer.TokenType, current lexer.Token) string {
	// Delimiters
	switch expected {
	case lexer.RPAREN:
		return "Missing closing parenthesis"
	case lexer.RBRACE:
		return "Missing closing brace"
	case lexer.LBRACE:
		if current.Type == lexer.LPAREN {
			return "Wrong bracket type - expected brace"
		}
		return "Missing opening brace"
	case lexer.SEMICOLON:
		return "Missing semicolon"
	case lexer.LPAREN:
		if current.Type == lexer.LBRACE {
			return "Wrong bracket type - expected parenthesis"
		}
		return "Missing opening parenthesis"
	}

	// Identifiers
	if expected == lexer.ID {
		if current.Type == lexer.DEFINE || current.Type == lexer.SEMICOLON {
			return "Missing identifier"
		}
		if current.Type.GetCategory() == lexer.KEYWORD {
			return "Cannot use reserved keyword as identifier"
		}
		return "Expected identifier"
	}

	return "Syntax error"
}
