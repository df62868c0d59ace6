package parser

import (
	"strconv"

	"murmur/pkg/lexer"
	"murmur/pkg/syntax"
)

type Parser struct {
	lexer        *lexer.Lexer // lexer instance
	currentToken lexer.Token  // current token
	lastEnd      int          // byte offset just past the last consumed token
	errors       []string     // list of errors
}

// NewParser creates a new parser instance
func NewParser(l *lexer.Lexer) *Parser {
	p := &Parser{
		lexer:  l,
		errors: []string{},
	}

	// Initialize current token
	p.nextToken()

	return p
}

// ParseSource lexes, parses and packs a source string in one step. On any
// parse error the tree is nil and the error list is non-empty.
func ParseSource(src string) (*syntax.Tree, []string) {
	p := NewParser(lexer.NewLexer(src))
	file := p.ParseFile()

	if len(p.errors) > 0 {
		return nil, p.errors
	}

	return Pack(file, src), nil
}

// ParseFile parses the whole input as a File node
func (p *Parser) ParseFile() *FileNode {
	file := &FileNode{Stmts: []Stmt{}}

	for p.currentToken.Type != lexer.EOF {
		stmt := p.parseStatement()
		if stmt == nil {
			p.synchronize()
			continue
		}

		file.Stmts = append(file.Stmts, stmt)
	}

	file.Loc = syntax.Span{Start: 0, End: p.lastEnd}
	return file
}

// nextToken advances to the next token from the lexer
func (p *Parser) nextToken() {
	p.lastEnd = p.currentToken.Pos.Offset + len(p.currentToken.Lexeme)
	p.currentToken = p.lexer.NextToken()
}

// expect consumes the current token when it has the wanted type, otherwise
// records a contextual error and leaves the token in place.
func (p *Parser) expect(t lexer.TokenType) (lexer.Token, bool) {
	if p.currentToken.Type == t {
		tok := p.currentToken
		p.nextToken()
		return tok, true
	}

	p.expectError(t)
	return p.currentToken, false
}

// synchronize skips tokens after a failed statement until a point where a new
// statement can plausibly start.
func (p *Parser) synchronize() {
	for p.currentToken.Type != lexer.EOF {
		if p.currentToken.Type == lexer.SEMICOLON {
			p.nextToken()
			return
		}

		switch p.currentToken.Type {
		case lexer.DEF, lexer.CONST, lexer.VAR, lexer.RETURN, lexer.IF, lexer.LOOP:
			// These always consume at least one token when parsed, so
			// stopping here cannot loop.
			return
		}

		p.nextToken()
	}
}

func (p *Parser) tokenStart() int {
	return p.currentToken.Pos.Offset
}

func (p *Parser) spanFrom(start int) syntax.Span {
	return syntax.Span{Start: start, End: p.lastEnd}
}

func tokenSpan(tok lexer.Token) syntax.Span {
	return syntax.Span{Start: tok.Pos.Offset, End: tok.Pos.Offset + len(tok.Lexeme)}
}

func (p *Parser) parseStatement() Stmt {
	switch p.currentToken.Type {
	case lexer.SEMICOLON:
		start := p.tokenStart()
		p.nextToken()
		return &EmptyStmt{Loc: p.spanFrom(start)}
	case lexer.RETURN:
		return p.parseReturnStatement()
	case lexer.IF:
		return p.parseIfStatement()
	case lexer.DEF:
		return p.parseDefStatement()
	case lexer.CONST:
		return p.parseVarStatement(true)
	case lexer.VAR:
		return p.parseVarStatement(false)
	case lexer.LOOP:
		return p.parseLoopStatement()
	default:
		return p.parseExprStatement()
	}
}

func (p *Parser) parseReturnStatement() Stmt {
	start := p.tokenStart()
	p.nextToken() // return

	var expr Expr
	if p.currentToken.Type != lexer.SEMICOLON {
		expr = p.parseExpression()
		if expr == nil {
			return nil
		}
	}

	if _, ok := p.expect(lexer.SEMICOLON); !ok {
		return nil
	}

	return &ReturnStmt{Expr: expr, Loc: p.spanFrom(start)}
}

func (p *Parser) parseIfStatement() Stmt {
	start := p.tokenStart()
	p.nextToken() // if

	cond := p.parseCondition()
	if cond == nil {
		return nil
	}

	block := p.parseBlock()
	if block == nil {
		return nil
	}

	stmt := &IfStmt{Cond: cond, Block: block}

	for p.currentToken.Type == lexer.ELSIF {
		p.nextToken()

		elsifCond := p.parseCondition()
		if elsifCond == nil {
			return nil
		}

		elsifBlock := p.parseBlock()
		if elsifBlock == nil {
			return nil
		}

		stmt.Elsifs = append(stmt.Elsifs, ElsifClause{Cond: elsifCond, Block: elsifBlock})
	}

	if p.currentToken.Type == lexer.ELSE {
		p.nextToken()

		stmt.Else = p.parseBlock()
		if stmt.Else == nil {
			return nil
		}
	}

	stmt.Loc = p.spanFrom(start)
	return stmt
}

// parseCondition parses a parenthesized condition expression
func (p *Parser) parseCondition() Expr {
	if _, ok := p.expect(lexer.LPAREN); !ok {
		return nil
	}

	if p.currentToken.Type == lexer.RPAREN {
		p.addError("Empty condition")
		return nil
	}

	cond := p.parseExpression()
	if cond == nil {
		return nil
	}

	if _, ok := p.expect(lexer.RPAREN); !ok {
		return nil
	}

	return cond
}

func (p *Parser) parseDefStatement() Stmt {
	start := p.tokenStart()
	p.nextToken() // def

	name, ok := p.expect(lexer.ID)
	if !ok {
		return nil
	}

	if _, ok := p.expect(lexer.LPAREN); !ok {
		return nil
	}

	params := []string{}
	if p.currentToken.Type != lexer.RPAREN {
		for {
			param, ok := p.expect(lexer.ID)
			if !ok {
				return nil
			}
			params = append(params, param.Lexeme)

			if p.currentToken.Type != lexer.COMMA {
				break
			}
			p.nextToken()
		}
	}

	if _, ok := p.expect(lexer.RPAREN); !ok {
		return nil
	}

	body := p.parseBlock()
	if body == nil {
		return nil
	}

	return &DefStmt{Name: name.Lexeme, Params: params, Body: body, Loc: p.spanFrom(start)}
}

func (p *Parser) parseVarStatement(isConst bool) Stmt {
	start := p.tokenStart()
	p.nextToken() // const or var

	stmt := &VarStmt{IsConst: isConst}
	for {
		name, ok := p.expect(lexer.ID)
		if !ok {
			return nil
		}

		binding := Binding{Name: name.Lexeme}
		if p.currentToken.Type == lexer.DEFINE {
			p.nextToken()

			binding.Init = p.parseExpression()
			if binding.Init == nil {
				return nil
			}
		}
		stmt.Bindings = append(stmt.Bindings, binding)

		if p.currentToken.Type != lexer.COMMA {
			break
		}
		p.nextToken()
	}

	if _, ok := p.expect(lexer.SEMICOLON); !ok {
		return nil
	}

	stmt.Loc = p.spanFrom(start)
	return stmt
}

func (p *Parser) parseLoopStatement() Stmt {
	start := p.tokenStart()
	p.nextToken() // loop

	body := p.parseBlock()
	if body == nil {
		return nil
	}

	return &LoopStmt{Body: body, Loc: p.spanFrom(start)}
}

func (p *Parser) parseBlock() *BlockNode {
	start := p.tokenStart()
	if _, ok := p.expect(lexer.LBRACE); !ok {
		return nil
	}

	block := &BlockNode{Stmts: []Stmt{}}
	for p.currentToken.Type != lexer.RBRACE && p.currentToken.Type != lexer.EOF {
		stmt := p.parseStatement()
		if stmt == nil {
			return nil
		}

		block.Stmts = append(block.Stmts, stmt)
	}

	if _, ok := p.expect(lexer.RBRACE); !ok {
		return nil
	}

	block.Loc = p.spanFrom(start)
	return block
}

func (p *Parser) parseExprStatement() Stmt {
	start := p.tokenStart()

	expr := p.parseExpression()
	if expr == nil {
		return nil
	}

	if _, ok := p.expect(lexer.SEMICOLON); !ok {
		return nil
	}

	return &ExprStmt{Expr: expr, Loc: p.spanFrom(start)}
}

func (p *Parser) parseExpression() Expr {
	return p.parseAdditive()
}

func (p *Parser) parseAdditive() Expr {
	lhs := p.parseMultiplicative()
	if lhs == nil {
		return nil
	}

	for p.currentToken.Type == lexer.PLUS || p.currentToken.Type == lexer.MINUS {
		op := syntax.AddExpr
		if p.currentToken.Type == lexer.MINUS {
			op = syntax.SubExpr
		}
		p.nextToken()

		rhs := p.parseMultiplicative()
		if rhs == nil {
			return nil
		}

		lhs = &BinaryExpr{Op: op, Lhs: lhs, Rhs: rhs, Loc: syntax.Span{Start: lhs.Span().Start, End: p.lastEnd}}
	}

	return lhs
}

func (p *Parser) parseMultiplicative() Expr {
	lhs := p.parseUnary()
	if lhs == nil {
		return nil
	}

	for p.currentToken.Type == lexer.MULT || p.currentToken.Type == lexer.DIV {
		op := syntax.MulExpr
		if p.currentToken.Type == lexer.DIV {
			op = syntax.DivExpr
		}
		p.nextToken()

		rhs := p.parseUnary()
		if rhs == nil {
			return nil
		}

		lhs = &BinaryExpr{Op: op, Lhs: lhs, Rhs: rhs, Loc: syntax.Span{Start: lhs.Span().Start, End: p.lastEnd}}
	}

	return lhs
}

func (p *Parser) parseUnary() Expr {
	if p.currentToken.Type == lexer.PLUS || p.currentToken.Type == lexer.MINUS {
		start := p.tokenStart()
		negate := p.currentToken.Type == lexer.MINUS
		p.nextToken()

		operand := p.parseUnary()
		if operand == nil {
			return nil
		}

		return &UnaryExpr{Negate: negate, Operand: operand, Loc: p.spanFrom(start)}
	}

	return p.parsePostfix()
}

func (p *Parser) parsePostfix() Expr {
	expr := p.parsePrimary()
	if expr == nil {
		return nil
	}

	for {
		switch p.currentToken.Type {
		case lexer.LPAREN:
			p.nextToken()

			args := []Expr{}
			if p.currentToken.Type != lexer.RPAREN {
				for {
					arg := p.parseExpression()
					if arg == nil {
						return nil
					}
					args = append(args, arg)

					if p.currentToken.Type != lexer.COMMA {
						break
					}
					p.nextToken()
				}
			}

			if _, ok := p.expect(lexer.RPAREN); !ok {
				return nil
			}

			expr = &CallExpr{Callee: expr, Args: args, Loc: syntax.Span{Start: expr.Span().Start, End: p.lastEnd}}
		case lexer.DOT:
			p.nextToken()

			name, ok := p.expect(lexer.ID)
			if !ok {
				return nil
			}

			expr = &DotExpr{Target: expr, Name: name.Lexeme, Loc: syntax.Span{Start: expr.Span().Start, End: p.lastEnd}}
		case lexer.ARROW:
			p.nextToken()

			name, ok := p.expect(lexer.ID)
			if !ok {
				return nil
			}

			expr = &ArrowExpr{Target: expr, Name: name.Lexeme, Loc: syntax.Span{Start: expr.Span().Start, End: p.lastEnd}}
		default:
			return expr
		}
	}
}

func (p *Parser) parsePrimary() Expr {
	switch p.currentToken.Type {
	case lexer.LPAREN:
		start := p.tokenStart()
		p.nextToken()

		if p.currentToken.Type == lexer.RPAREN {
			p.addError("Missing expression")
			return nil
		}

		inner := p.parseExpression()
		if inner == nil {
			return nil
		}

		if _, ok := p.expect(lexer.RPAREN); !ok {
			return nil
		}

		return &ParenExpr{Inner: inner, Loc: p.spanFrom(start)}
	case lexer.ID:
		tok := p.currentToken
		p.nextToken()
		return &NameExpr{Name: tok.Lexeme, Loc: tokenSpan(tok)}
	case lexer.NUM:
		tok := p.currentToken
		p.nextToken()

		value, err := strconv.ParseInt(tok.Lexeme, 10, 64)
		if err != nil {
			p.addErrorAt("Integer literal out of range", tok)
			return nil
		}

		return &IntegerExpr{Value: value, Loc: tokenSpan(tok)}
	default:
		p.primaryError()
		return nil
	}
}
