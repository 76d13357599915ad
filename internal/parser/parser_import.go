package parser

import (
	"strings"

	"cairn/internal/ast"
)

// parseDirective parses '%name arg arg'. Arguments are the identifiers
// and numbers that follow on the same source line, matching how
// '%lang starknet' and '%builtins pedersen range_check' are written.
func (p *Parser) parseDirective() *ast.Directive {
	tok := p.advance()

	namePos := p.makePos(tok)
	namePos.Offset++ // skip the leading '%'
	namePos.Column++

	directive := &ast.Directive{
		Pos:    p.makePos(tok),
		EndPos: p.makeEndPos(tok),
		Name: ast.Ident{
			Pos:    namePos,
			EndPos: p.makeEndPos(tok),
			Value:  tok.Lexeme[1:],
		},
	}

	for (p.check(IDENTIFIER) || p.check(NUMBER)) && p.peek().Position.Line == tok.Position.Line {
		arg := p.makeIdent(p.advance())
		directive.Args = append(directive.Args, arg)
		directive.EndPos = arg.EndPos
	}

	return directive
}

// parseImport parses 'from a.b.c import x, y as z' and the
// parenthesized form 'from a.b.c import (x, y as z)'.
func (p *Parser) parseImport() *ast.ImportStmt {
	startToken := p.consume(FROM, "expected 'from' keyword")

	// Parse the dotted module path
	part, ok := p.consumeIdent("expected module path after 'from'")
	if !ok {
		p.synchronize()
		return nil
	}
	module := []ast.Ident{part}

	for p.match(DOT) {
		part, ok = p.consumeIdent("expected module path segment after '.'")
		if !ok {
			p.synchronize()
			return nil
		}
		module = append(module, part)
	}

	p.consume(IMPORT, "expected 'import' after module path")

	var items []*ast.ImportItem
	endPos := p.makeEndPos(p.previous())

	if p.match(LEFT_PAREN) {
		// Parenthesized lists may span lines and carry comments
		for !p.check(RIGHT_PAREN) && !p.isAtEnd() {
			p.skipComments()
			if p.check(RIGHT_PAREN) {
				break // trailing comma before ')'
			}

			item := p.parseImportItem()
			if item == nil {
				break
			}
			items = append(items, item)

			if !p.match(COMMA) {
				break
			}
		}

		end := p.consume(RIGHT_PAREN, "expected ')' to close import list")
		endPos = p.makeEndPos(end)
	} else {
		for {
			item := p.parseImportItem()
			if item == nil {
				break
			}
			items = append(items, item)
			endPos = item.EndPos

			if !p.match(COMMA) {
				break
			}
		}
	}

	return &ast.ImportStmt{
		Pos:    p.makePos(startToken),
		EndPos: endPos,
		Module: module,
		Items:  items,
	}
}

func (p *Parser) parseImportItem() *ast.ImportItem {
	name, ok := p.consumeIdent("expected imported name")
	if !ok {
		return nil
	}

	item := &ast.ImportItem{
		Pos:    name.Pos,
		EndPos: name.EndPos,
		Name:   name,
	}

	if p.match(AS) {
		alias, ok := p.consumeIdent("expected alias after 'as'")
		if !ok {
			return item
		}
		item.Alias = &alias
		item.EndPos = alias.EndPos
	}

	return item
}

// parseConst parses 'const NAME = value;'. The value is kept as raw
// source text up to the semicolon; declaration checks never fold it.
func (p *Parser) parseConst() *ast.ConstDecl {
	startToken := p.consume(CONST, "expected 'const' keyword")

	name, ok := p.consumeIdent("expected constant name")
	if !ok {
		p.synchronize()
		return nil
	}

	p.consume(EQUAL, "expected '=' after constant name")

	var parts []string
	for !p.check(SEMICOLON) && !p.isAtEnd() {
		if p.check(COMMENT) {
			p.advance()
			continue
		}
		parts = append(parts, p.advance().Lexeme)
	}

	if len(parts) == 0 {
		p.errorAtCurrent("expected a value after '=' in constant declaration")
	}

	end := p.consume(SEMICOLON, "expected ';' after constant declaration")

	return &ast.ConstDecl{
		Pos:    p.makePos(startToken),
		EndPos: p.makeEndPos(end),
		Name:   name,
		Value:  strings.Join(parts, " "),
	}
}
