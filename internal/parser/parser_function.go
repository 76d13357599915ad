package parser

import "cairn/internal/ast"

// parseDecorators collects the '@name' block in front of a function or
// namespace. Comments between decorators are legal and skipped.
func (p *Parser) parseDecorators() []ast.Decorator {
	var decorators []ast.Decorator

	for p.check(DECORATOR) || p.check(COMMENT) {
		if p.check(COMMENT) {
			p.advance()
			continue
		}

		tok := p.advance()
		namePos := p.makePos(tok)
		namePos.Offset++ // skip the leading '@'
		namePos.Column++

		decorators = append(decorators, ast.Decorator{
			Pos:    p.makePos(tok),
			EndPos: p.makeEndPos(tok),
			Name: ast.Ident{
				Pos:    namePos,
				EndPos: p.makeEndPos(tok),
				Value:  tok.Lexeme[1:],
			},
		})
	}

	return decorators
}

func (p *Parser) parseFunction(decorators []ast.Decorator) *ast.FunctionDecl {
	startToken := p.consume(FUNC, "expected 'func' keyword")

	// Parse function name
	name, ok := p.consumeIdent("expected function name")
	if !ok {
		p.synchronize()
		return nil
	}

	// Parse optional implicit argument list
	var implicitArgs *ast.IdentifierList
	if p.check(LEFT_BRACE) {
		implicitArgs = p.parseImplicitArgs()
	}

	// Parse explicit arguments
	args := p.parseFunctionArguments()

	// Parse optional return clause
	var returns ast.TypeExpr
	if p.match(ARROW) {
		returns = p.parseTypeExpr()
	}

	// Delimit the body without parsing statements
	body := p.parseBodySpan()
	if body.Pos == (ast.Position{}) { // recovery failed
		p.synchronize()
		return nil
	}

	return &ast.FunctionDecl{
		Pos:          p.makePos(startToken),
		EndPos:       body.EndPos,
		Decorators:   decorators,
		Name:         name,
		ImplicitArgs: implicitArgs,
		Args:         args,
		Returns:      returns,
		Body:         body,
	}
}

// parseImplicitArgs parses the '{syscall_ptr: felt*, range_check_ptr}'
// block between the function name and the argument list. Types are
// optional here, unlike in the explicit argument list.
func (p *Parser) parseImplicitArgs() *ast.IdentifierList {
	start := p.consume(LEFT_BRACE, "expected '{' to start implicit arguments")
	var args []ast.TypedIdent

	for !p.check(RIGHT_BRACE) && !p.isAtEnd() {
		p.skipComments()
		if p.check(RIGHT_BRACE) {
			break
		}

		arg, ok := p.parseTypedIdent(false)
		if !ok {
			break
		}
		args = append(args, arg)

		if !p.match(COMMA) {
			break
		}
	}

	end := p.consume(RIGHT_BRACE, "expected '}' to close implicit arguments")

	return &ast.IdentifierList{
		Pos:    p.makePos(start),
		EndPos: p.makeEndPos(end),
		Args:   args,
	}
}

// parseFunctionArguments parses the parenthesized argument list.
// Every argument must carry a type annotation.
func (p *Parser) parseFunctionArguments() []ast.TypedIdent {
	p.consume(LEFT_PAREN, "expected '(' after function name")
	var args []ast.TypedIdent

	for !p.check(RIGHT_PAREN) && !p.isAtEnd() {
		p.skipComments()
		if p.check(RIGHT_PAREN) {
			break // trailing comma before ')'
		}

		arg, ok := p.parseTypedIdent(true)
		if !ok {
			break
		}
		args = append(args, arg)

		if !p.match(COMMA) {
			break
		}
	}

	p.consume(RIGHT_PAREN, "expected ')' after argument list")
	return args
}

// parseTypedIdent parses 'name' or 'name: type'. requireType marks
// contexts where the annotation is mandatory, such as explicit
// argument lists and struct members.
func (p *Parser) parseTypedIdent(requireType bool) (ast.TypedIdent, bool) {
	name, ok := p.consumeIdent("expected argument name")
	if !ok {
		return ast.TypedIdent{}, false
	}

	arg := ast.TypedIdent{
		Pos:    name.Pos,
		EndPos: name.EndPos,
		Name:   name,
	}

	if p.match(COLON) {
		typ := p.parseTypeExpr()
		if typ == nil {
			return arg, false
		}
		arg.Type = typ
		arg.EndPos = typ.NodeEndPos()
	} else if requireType {
		p.errorAtCurrent("expected ':' and a type after argument name")
		return arg, false
	}

	return arg, true
}

// parseBodySpan consumes a balanced brace block and records only its
// extent and whether it holds anything besides comments. A zero Pos in
// the result means the opening brace was missing; the current token is
// left alone in that case so resynchronization can start from it.
func (p *Parser) parseBodySpan() ast.BodySpan {
	if !p.check(LEFT_BRACE) {
		p.errorAtCurrent("expected '{' to start function body")
		return ast.BodySpan{}
	}
	start := p.advance()

	depth := 1
	empty := true
	end := start

	for !p.isAtEnd() {
		tok := p.advance()

		switch tok.Type {
		case LEFT_BRACE:
			depth++
			empty = false
		case RIGHT_BRACE:
			depth--
			if depth == 0 {
				end = tok
			} else {
				empty = false
			}
		case COMMENT:
			// comments alone leave a body empty
		default:
			empty = false
		}

		if depth == 0 {
			break
		}
	}

	if depth != 0 {
		p.errorAtCurrent("expected '}' to close function body")
		end = p.previous()
	}

	return ast.BodySpan{
		Pos:    p.makePos(start),
		EndPos: p.makeEndPos(end),
		Empty:  empty,
	}
}
