package lexer

import (
	"regexp"
)

type tokenRegex struct {
	Pattern *regexp.Regexp
	Raw     string
}

// Token regex patterns
var tokenRegexes = map[TokenType]tokenRegex{
	DEFINE: {regexp.MustCompile(`^:=`), `^:=`},
	ARROW:  {regexp.MustCompile(`^->`), `^->`},

	DEF:    {regexp.MustCompile(`^def\b`), `^def\b`},
	CONST:  {regexp.MustCompile(`^const\b`), `^const\b`},
	VAR:    {regexp.MustCompile(`^var\b`), `^var\b`},
	RETURN: {regexp.MustCompile(`^return\b`), `^return\b`},
	IF:     {regexp.MustCompile(`^if\b`), `^if\b`},
	ELSIF:  {regexp.MustCompile(`^elsif\b`), `^elsif\b`},
	ELSE:   {regexp.MustCompile(`^else\b`), `^else\b`},
	LOOP:   {regexp.MustCompile(`^loop\b`), `^loop\b`},

	PLUS:  {regexp.MustCompile(`^\+`), `^\+`},
	MINUS: {regexp.MustCompile(`^-`), `^-`},
	MULT:  {regexp.MustCompile(`^\*`), `^\*`},
	DIV:   {regexp.MustCompile(`^/`), `^/`},
	DOT:   {regexp.MustCompile(`^\.`), `^\.`},

	SEMICOLON: {regexp.MustCompile(`^;`), `^;`},
	COMMA:     {regexp.MustCompile(`^,`), `^,`},
	LPAREN:    {regexp.MustCompile(`^\(`), `^\(`},
	RPAREN:    {regexp.MustCompile(`^\)`), `^\)`},
	LBRACE:    {regexp.MustCompile(`^\{`), `^\{`},
	RBRACE:    {regexp.MustCompile(`^\}`), `^\}`},

	NUM: {regexp.MustCompile(`^\d+`), `^\d+`},
	ID:  {regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*`), `^[a-zA-Z_][a-zA-Z0-9_]*`},
}

var (
	whitespaceRegex   = regexp.MustCompile(`^\s+`)
	lineCommentRegex  = regexp.MustCompile(`^//.*`)
	blockCommentRegex = regexp.MustCompile(`(?s)^/\*.*?\*/`)
)

// Token precedence order for matching (longer patterns first)
var tokenPrecedenceOrder = []TokenType{
	RETURN, CONST, ELSIF, ELSE, LOOP, DEF, VAR, IF,
	DEFINE, ARROW, PLUS, MINUS, MULT, DIV, DOT,
	SEMICOLON, COMMA, LPAREN, RPAREN, LBRACE, RBRACE,
	NUM, ID,
}

// Get the regex pattern for a token type
func (t TokenType) Regex() *regexp.Regexp {
	if regex, ok := tokenRegexes[t]; ok {
		return regex.Pattern
	}

	return nil
}

// Get the raw regex string for a token type
func (t TokenType) RawRegex() string {
	if regex, ok := tokenRegexes[t]; ok {
		return regex.Raw
	}

	return ""
}

// Match the longest token at the start of the string
func MatchToken(s string) (TokenType, string, bool) {
	if s == "" {
		return EOF, "", false
	} else if match := whitespaceRegex.FindString(s); match != "" {
		return EOF, match, true
	} else if match := blockCommentRegex.FindString(s); match != "" {
		return EOF, match, true
	} else if match := lineCommentRegex.FindString(s); match != "" {
		return EOF, match, true
	}

	for _, tokenType := range tokenPrecedenceOrder {
		if regex, ok := tokenRegexes[tokenType]; ok {
			if match := regex.Pattern.FindString(s); match != "" {
				return tokenType, match, true
			}
		}
	}

	return ILLEGAL, string(s[0]), false
}
