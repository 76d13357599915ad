package parser

import "cairn/internal/ast"

// parseTypeExpr parses a type annotation: a named type or a tuple,
// followed by any number of postfix '*' pointer markers. Returns nil
// after recording an error when no type starts here.
func (p *Parser) parseTypeExpr() ast.TypeExpr {
	base := p.parseBaseType()
	if base == nil {
		return nil
	}

	// Postfix stars bind tightest: felt** is a pointer to felt*.
	for p.check(STAR) {
		star := p.advance()
		base = &ast.PointerType{
			Pos:    base.NodePos(),
			EndPos: p.makeEndPos(star),
			Elem:   base,
		}
	}

	return base
}

func (p *Parser) parseBaseType() ast.TypeExpr {
	switch p.peek().Type {
	case IDENTIFIER:
		tok := p.advance()
		name := p.makeIdent(tok)
		return &ast.NamedType{
			Pos:    name.Pos,
			EndPos: name.EndPos,
			Name:   name,
		}

	case LEFT_PAREN:
		return p.parseTupleType()

	default:
		p.errorAtCurrent("expected a type")
		return nil
	}
}

// parseTupleType parses '(felt, felt)' and the named form
// '(low: felt, high: felt)'. The unit tuple '()' is legal and marks
// a function that returns nothing.
func (p *Parser) parseTupleType() ast.TypeExpr {
	start := p.consume(LEFT_PAREN, "expected '(' to start tuple type")
	var members []ast.TupleMember

	for !p.check(RIGHT_PAREN) && !p.isAtEnd() {
		p.skipComments()
		if p.check(RIGHT_PAREN) {
			break // trailing comma before ')'
		}

		member, ok := p.parseTupleMember()
		if !ok {
			break
		}
		members = append(members, member)

		if !p.match(COMMA) {
			break
		}
	}

	end := p.consume(RIGHT_PAREN, "expected ')' to close tuple type")

	return &ast.TupleType{
		Pos:     p.makePos(start),
		EndPos:  p.makeEndPos(end),
		Members: members,
	}
}

// parseTupleMember disambiguates 'name: type' from a bare type by one
// token of lookahead: an identifier is a member name only when a colon
// follows, otherwise it is itself a named type.
func (p *Parser) parseTupleMember() (ast.TupleMember, bool) {
	if p.check(IDENTIFIER) && p.peekNext().Type == COLON {
		nameTok := p.advance()
		name := p.makeIdent(nameTok)
		p.consume(COLON, "expected ':' after tuple member name")

		typ := p.parseTypeExpr()
		if typ == nil {
			return ast.TupleMember{}, false
		}

		return ast.TupleMember{
			Pos:    name.Pos,
			EndPos: typ.NodeEndPos(),
			Name:   &name,
			Type:   typ,
		}, true
	}

	typ := p.parseTypeExpr()
	if typ == nil {
		return ast.TupleMember{}, false
	}

	return ast.TupleMember{
		Pos:    typ.NodePos(),
		EndPos: typ.NodeEndPos(),
		Type:   typ,
	}, true
}
