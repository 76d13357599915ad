package parser

import "cairn/internal/ast"

// Parser consumes the scanner's token stream and produces the
// declaration AST. Function bodies are never parsed, only delimited;
// the front end checks declarations, it does not compile statements.
type Parser struct {
	filename string
	tokens   []Token
	current  int
	errors   []ParseError
}

type ParseError struct {
	Message  string
	Position Position
}

func NewParser(filename string, tokens []Token) *Parser {
	return &Parser{
		filename: filename,
		tokens:   tokens,
	}
}

// ParseContractFile parses every top-level item. Items that fail to
// parse are recorded as errors and the parser resynchronizes at the
// next top-level starter, so one bad declaration never hides the rest
// of the file.
func (p *Parser) ParseContractFile() *ast.ContractFile {
	first := p.peek()

	var items []ast.ContractItem
	for !p.isAtEnd() {
		item := p.parseContractItem()
		if item != nil {
			items = append(items, item)
		}
	}

	return &ast.ContractFile{
		Pos:    p.makePos(first),
		EndPos: p.makeEndPos(p.peek()),
		Path:   p.filename,
		Items:  items,
	}
}

func (p *Parser) parseContractItem() ast.ContractItem {
	switch p.peek().Type {
	case COMMENT:
		return p.parseComment()

	case DIRECTIVE:
		return p.parseDirective()

	case FROM:
		if imp := p.parseImport(); imp != nil {
			return imp
		}
		return nil

	case CONST:
		if decl := p.parseConst(); decl != nil {
			return decl
		}
		return nil

	case STRUCT:
		if decl := p.parseStruct(); decl != nil {
			return decl
		}
		return nil

	case NAMESPACE, DECORATOR, FUNC:
		return p.parseDecoratedItem()

	default:
		bad := p.badItem("expected a declaration, directive, or import")
		p.advance()
		p.synchronize()
		return bad
	}
}

// parseDecoratedItem handles the decorator block shared by functions
// and namespaces: decorators bind to whichever of the two follows.
func (p *Parser) parseDecoratedItem() ast.ContractItem {
	decorators := p.parseDecorators()

	switch p.peek().Type {
	case FUNC:
		if fn := p.parseFunction(decorators); fn != nil {
			return fn
		}
		return nil
	case NAMESPACE:
		if ns := p.parseNamespace(decorators); ns != nil {
			return ns
		}
		return nil
	default:
		bad := p.badItem("expected 'func' or 'namespace' after decorators")
		p.synchronize()
		return bad
	}
}

func (p *Parser) parseComment() *ast.Comment {
	token := p.advance()
	return &ast.Comment{
		Pos:    p.makePos(token),
		EndPos: p.makeEndPos(token),
		Text:   token.Lexeme,
	}
}
