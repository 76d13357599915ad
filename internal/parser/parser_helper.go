package parser

import "cairn/internal/ast"

func (p *Parser) advance() Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) check(tt TokenType) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Type == tt
}

func (p *Parser) match(types ...TokenType) bool {
	for _, tt := range types {
		if p.check(tt) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(tt TokenType, message string) Token {
	if p.check(tt) {
		return p.advance()
	}
	p.errorAtCurrent(message)
	illegal := Token{Type: ILLEGAL, Position: p.peek().Position}
	p.advance()
	return illegal
}

func (p *Parser) peek() Token {
	return p.tokens[p.current]
}

// peekNext looks one token past the current one. The scanner always
// appends an EOF sentinel, so the clamp only matters at stream end.
func (p *Parser) peekNext() Token {
	if p.current+1 >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.current+1]
}

func (p *Parser) previous() Token {
	return p.tokens[p.current-1]
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == EOF
}

func (p *Parser) errorAtCurrent(message string) {
	pos := p.peek().Position
	p.errors = append(p.errors, ParseError{
		Message:  message,
		Position: pos,
	})
}

func (p *Parser) makePos(tok Token) ast.Position {
	return ast.Position{
		Filename: p.filename,
		Offset:   tok.Position.Offset,
		Line:     tok.Position.Line,
		Column:   tok.Position.Column,
	}
}

func (p *Parser) makeEndPos(tok Token) ast.Position {
	return ast.Position{
		Filename: p.filename,
		Offset:   tok.Position.Offset + len(tok.Lexeme),
		Line:     tok.Position.Line,
		Column:   tok.Position.Column + len(tok.Lexeme),
	}
}

// badItem records a parse error at the current token and wraps it as a
// contract item so the AST keeps evidence of what failed where.
func (p *Parser) badItem(message string) *ast.BadContractItem {
	tok := p.peek()
	p.errorAtCurrent(message)
	return &ast.BadContractItem{
		Bad: ast.BadNode{
			Pos:     p.makePos(tok),
			EndPos:  p.makeEndPos(tok),
			Message: message,
		},
	}
}

// synchronize skips tokens until the next top-level starter so a single
// malformed declaration does not cascade. It never advances past a
// starter, so a failure right in front of the next declaration costs
// nothing; callers sitting on a token they know is garbage advance
// before calling.
func (p *Parser) synchronize() {
	for !p.isAtEnd() {
		switch p.peek().Type {
		case DIRECTIVE, DECORATOR, FUNC, STRUCT, NAMESPACE, FROM, CONST:
			return
		}

		p.advance()
	}
}

// Helper functions to reduce repetitive AST node creation

// makeIdent creates an ast.Ident from a token
func (p *Parser) makeIdent(tok Token) ast.Ident {
	return ast.Ident{
		Pos:    p.makePos(tok),
		EndPos: p.makeEndPos(tok),
		Value:  tok.Lexeme,
	}
}

// consumeIdent consumes an identifier token and returns an ast.Ident
func (p *Parser) consumeIdent(message string) (ast.Ident, bool) {
	tok := p.consume(IDENTIFIER, message)
	if tok.Type == ILLEGAL {
		return ast.Ident{Value: "error"}, false
	}
	return p.makeIdent(tok), true
}

// skipComments advances over any comments between declaration parts.
// Comments between decorators, arguments, or struct members are legal
// and carry no meaning for declaration checks.
func (p *Parser) skipComments() {
	for p.check(COMMENT) {
		p.advance()
	}
}
