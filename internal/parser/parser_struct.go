package parser

import "cairn/internal/ast"

func (p *Parser) parseStruct() *ast.StructDecl {
	startToken := p.consume(STRUCT, "expected 'struct' keyword")

	// Parse struct name
	name, ok := p.consumeIdent("expected struct name")
	if !ok {
		p.synchronize()
		return nil
	}

	p.consume(LEFT_BRACE, "expected '{' to start struct body")
	members := p.parseStructMembers()
	end := p.consume(RIGHT_BRACE, "expected '}' to close struct body")

	return &ast.StructDecl{
		Pos:     p.makePos(startToken),
		EndPos:  p.makeEndPos(end),
		Name:    name,
		Members: members,
	}
}

// parseStructMembers parses 'name: type,' members until the closing
// brace. Each member ends with a comma, the trailing one included.
func (p *Parser) parseStructMembers() []ast.TypedIdent {
	var members []ast.TypedIdent

	for !p.check(RIGHT_BRACE) && !p.isAtEnd() {
		if p.check(COMMENT) {
			p.advance()
			continue
		}

		member, ok := p.parseTypedIdent(true)
		if !ok {
			p.skipToMemberBoundary()
			continue
		}

		member.EndPos = p.makeEndPos(p.consume(COMMA, "expected ',' after struct member"))
		members = append(members, member)
	}

	return members
}

// skipToMemberBoundary recovers inside a struct body by advancing to
// the next comma or the closing brace, so one bad member does not
// swallow the rest of the struct.
func (p *Parser) skipToMemberBoundary() {
	for !p.check(COMMA) && !p.check(RIGHT_BRACE) && !p.isAtEnd() {
		p.advance()
	}
	p.match(COMMA)
}

// skipNamespaceItem recovers inside a namespace body by advancing to
// the next token that can start a member, or to the closing brace.
func (p *Parser) skipNamespaceItem() {
	p.advance()

	for !p.isAtEnd() {
		switch p.peek().Type {
		case FUNC, DECORATOR, CONST, RIGHT_BRACE:
			return
		}
		p.advance()
	}
}

// parseNamespace parses 'namespace Name { ... }'. The body holds
// function declarations, optionally decorated, plus comments and
// constants. Constants are parsed for stream alignment but not kept;
// declaration checks never read them.
func (p *Parser) parseNamespace(decorators []ast.Decorator) *ast.NamespaceDecl {
	startToken := p.consume(NAMESPACE, "expected 'namespace' keyword")

	name, ok := p.consumeIdent("expected namespace name")
	if !ok {
		p.synchronize()
		return nil
	}

	p.consume(LEFT_BRACE, "expected '{' to start namespace body")

	var functions []*ast.FunctionDecl
	for !p.check(RIGHT_BRACE) && !p.isAtEnd() {
		switch p.peek().Type {
		case COMMENT:
			p.advance()

		case CONST:
			p.parseConst()

		case DECORATOR, FUNC:
			memberDecorators := p.parseDecorators()
			if !p.check(FUNC) {
				p.errorAtCurrent("expected 'func' after decorators in namespace")
				p.skipNamespaceItem()
				continue
			}
			if fn := p.parseFunction(memberDecorators); fn != nil {
				functions = append(functions, fn)
			}

		default:
			p.errorAtCurrent("expected a function declaration inside namespace")
			p.skipNamespaceItem()
		}
	}

	end := p.consume(RIGHT_BRACE, "expected '}' to close namespace body")

	return &ast.NamespaceDecl{
		Pos:        p.makePos(startToken),
		EndPos:     p.makeEndPos(end),
		Decorators: decorators,
		Name:       name,
		Functions:  functions,
	}
}
