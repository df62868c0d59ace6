package lexer

type Lexer struct {
	input    string // input string to be tokenized
	length   int    // length of the input string
	position int    // current position in the input string
	line     int    // current line number for error reporting
	column   int    // current column number for error reporting
}

// Create a new lexer instance
func NewLexer(s string) *Lexer {
	return &Lexer{
		input:    s,
		length:   len(s),
		position: 0,
		line:     1,
		column:   1,
	}
}

// Get the next token from the input
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	// End of input
	if l.position >= l.length {
		return NewToken(EOF, "", l.currentPosition())
	}

	// Regex match the first token it sees from the remaining input from current position to the end
	remaining := l.input[l.position:]
	tokenType, lexeme, matched := MatchToken(remaining)

	if !matched || tokenType == EOF {
		if tokenType == EOF && lexeme != "" {
			l.advance(len(lexeme))
			return l.NextToken()
		}

		tok := NewToken(ILLEGAL, string(l.input[l.position]), l.currentPosition())
		l.advance(1)
		return tok
	}

	tok := NewToken(tokenType, lexeme, l.currentPosition())
	l.advance(len(lexeme))

	return tok
}

// View next token without advancing the position
func (l *Lexer) Peek() Token {
	// save state
	cpos := l.position
	cline := l.line
	ccol := l.column

	token := l.NextToken()

	// restore state
	l.position = cpos
	l.line = cline
	l.column = ccol

	return token
}

// Check if there are more characters to read
func (l *Lexer) HasMore() bool {
	return l.position < l.length
}

// Skip whitespace and comments
func (l *Lexer) skipWhitespace() {
	for l.position < l.length {
		ch := l.input[l.position]

		if ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' {
			// handle whitespace and new lines
			if ch == '\n' {
				l.line++
				l.column = 1
			} else {
				l.column++
			}
			l.position++

		} else if l.position+1 < l.length && ch == '/' && l.input[l.position+1] == '/' {
			// handle line comments
			for l.position < l.length {
				ch := l.input[l.position]
				l.position++
				if ch == '\n' {
					l.line++
					l.column = 1
					break
				} else {
					l.column++
				}
			}
		} else if l.position+1 < l.length && ch == '/' && l.input[l.position+1] == '*' {
			// handle block comments; an unterminated one swallows the rest
			l.advance(2)
			for l.position < l.length {
				if l.input[l.position] == '*' && l.position+1 < l.length && l.input[l.position+1] == '/' {
					l.advance(2)
					break
				}
				l.advance(1)
			}
		} else {
			break
		}
	}
}

// Advance the lexer position by n characters
func (l *Lexer) advance(n int) {
	for i := 0; i < n; i++ {
		if l.position >= l.length {
			break
		}

		if l.input[l.position] == '\n' {
			l.line++
			l.column = 1
		} else {
			l.column++
		}

		l.position++
	}
}

// Get the current position of the lexer
func (l *Lexer) currentPosition() Position {
	return Position{
		Line:   l.line,
		Column: l.column,
		Offset: l.position,
	}
}
