package lsp

import (
	"cairn/internal/ast"
)

// SemanticToken represents a single LSP semantic token entry
// Line and StartChar are 0-based positions
// TokenType is an index into SemanticTokenTypes
// TokenModifiers is a bitmask based on SemanticTokenModifiers
type SemanticToken struct {
	Line           uint32
	StartChar      uint32
	Length         uint32
	TokenType      int // index into SemanticTokenTypes
	TokenModifiers int // bitmask
}

// collectSemanticTokens walks the declaration AST in source order. The
// item list is already position-sorted, so the tokens come out ready
// for delta encoding without a separate sorting pass.
func collectSemanticTokens(file *ast.ContractFile) []SemanticToken {
	var tokens []SemanticToken

	if file == nil {
		return tokens
	}

	for _, item := range file.Items {
		tokens = append(tokens, walkContractItem(item)...)
	}

	return tokens
}

func walkContractItem(item ast.ContractItem) []SemanticToken {
	var tokens []SemanticToken

	if item == nil {
		return tokens
	}

	switch v := item.(type) {
	case *ast.Comment:
		// Comments are already handled by the client's TextMate grammar
		return tokens
	case *ast.BadContractItem:
		// Bad items already carry a parse diagnostic
		return tokens
	case *ast.Directive:
		tokens = append(tokens, walkDirective(v)...)
	case *ast.ImportStmt:
		tokens = append(tokens, walkImport(v)...)
	case *ast.ConstDecl:
		tokens = append(tokens, makeToken(v.Name.Pos, v.Name.EndPos, v.Name.Value, "variable", 1)...)
	case *ast.StructDecl:
		tokens = append(tokens, walkStruct(v)...)
	case *ast.NamespaceDecl:
		tokens = append(tokens, walkNamespace(v)...)
	case *ast.FunctionDecl:
		tokens = append(tokens, walkFunction(v)...)
	}

	return tokens
}

func walkDirective(d *ast.Directive) []SemanticToken {
	var tokens []SemanticToken

	if d == nil {
		return tokens
	}

	// Directive name spans the leading '%' (like "%lang", "%builtins")
	tokens = append(tokens, makeToken(d.Pos, d.Name.EndPos, "%"+d.Name.Value, "keyword", 0)...)

	// Directive arguments (like "starknet", "pedersen", "range_check")
	for _, arg := range d.Args {
		tokens = append(tokens, makeToken(arg.Pos, arg.EndPos, arg.Value, "modifier", 0)...)
	}

	return tokens
}

func walkImport(imp *ast.ImportStmt) []SemanticToken {
	var tokens []SemanticToken

	if imp == nil {
		return tokens
	}

	// Module path parts (like "starkware", "cairo", "common", "math")
	for _, part := range imp.Module {
		tokens = append(tokens, makeToken(part.Pos, part.EndPos, part.Value, "namespace", 0)...)
	}

	// Imported items (like "assert_nn", "HashBuiltin")
	for _, item := range imp.Items {
		tokens = append(tokens, makeToken(item.Name.Pos, item.Name.EndPos, item.Name.Value, "type", 0)...)

		if item.Alias != nil {
			tokens = append(tokens, makeToken(item.Alias.Pos, item.Alias.EndPos, item.Alias.Value, "type", 1)...)
		}
	}

	return tokens
}

func walkStruct(s *ast.StructDecl) []SemanticToken {
	var tokens []SemanticToken

	if s == nil {
		return tokens
	}

	// Struct name
	if s.Name.Value != "" {
		tokens = append(tokens, makeToken(s.Name.Pos, s.Name.EndPos, s.Name.Value, "type", 1)...)
	}

	// Struct members
	for _, member := range s.Members {
		// Member name
		tokens = append(tokens, makeToken(member.Name.Pos, member.Name.EndPos, member.Name.Value, "property", 1)...)
		// Member type
		tokens = append(tokens, walkTypeExpr(member.Type)...)
	}

	return tokens
}

func walkNamespace(ns *ast.NamespaceDecl) []SemanticToken {
	var tokens []SemanticToken

	if ns == nil {
		return tokens
	}

	// Namespace decorators (like @contract_interface)
	for _, dec := range ns.Decorators {
		tokens = append(tokens, makeToken(dec.Pos, dec.EndPos, "@"+dec.Name.Value, "modifier", 0)...)
	}

	// Namespace name
	if ns.Name.Value != "" {
		tokens = append(tokens, makeToken(ns.Name.Pos, ns.Name.EndPos, ns.Name.Value, "namespace", 1)...)
	}

	// Member functions
	for _, fn := range ns.Functions {
		tokens = append(tokens, walkFunction(fn)...)
	}

	return tokens
}

func walkFunction(fn *ast.FunctionDecl) []SemanticToken {
	var tokens []SemanticToken

	if fn == nil {
		return tokens
	}

	// Function decorators (like @external, @view, @storage_var)
	for _, dec := range fn.Decorators {
		tokens = append(tokens, makeToken(dec.Pos, dec.EndPos, "@"+dec.Name.Value, "modifier", 0)...)
	}

	// Function name
	if fn.Name.Value != "" {
		tokens = append(tokens, makeToken(fn.Name.Pos, fn.Name.EndPos, fn.Name.Value, "function", 1)...)
	}

	// Implicit arguments
	if fn.ImplicitArgs != nil {
		for _, arg := range fn.ImplicitArgs.Args {
			tokens = append(tokens, walkTypedIdent(arg)...)
		}
	}

	// Explicit arguments
	for _, arg := range fn.Args {
		tokens = append(tokens, walkTypedIdent(arg)...)
	}

	// Return type
	if fn.Returns != nil {
		tokens = append(tokens, walkTypeExpr(fn.Returns)...)
	}

	return tokens
}

func walkTypedIdent(arg ast.TypedIdent) []SemanticToken {
	// Argument name
	tokens := makeToken(arg.Name.Pos, arg.Name.EndPos, arg.Name.Value, "parameter", 0)

	// Argument type; implicit arguments may omit it
	if arg.Type != nil {
		tokens = append(tokens, walkTypeExpr(arg.Type)...)
	}

	return tokens
}

func walkTypeExpr(expr ast.TypeExpr) []SemanticToken {
	var tokens []SemanticToken

	if expr == nil {
		return tokens
	}

	switch t := expr.(type) {
	case *ast.NamedType:
		tokens = append(tokens, makeToken(t.Name.Pos, t.Name.EndPos, t.Name.Value, "type", 0)...)
	case *ast.PointerType:
		tokens = append(tokens, walkTypeExpr(t.Elem)...)
	case *ast.TupleType:
		for _, member := range t.Members {
			if member.Name != nil {
				tokens = append(tokens, makeToken(member.Name.Pos, member.Name.EndPos, member.Name.Value, "property", 0)...)
			}
			tokens = append(tokens, walkTypeExpr(member.Type)...)
		}
	}

	return tokens
}

// makeToken creates a semantic token for a given position and text
func makeToken(pos, endPos ast.Position, value, tokenType string, declModifier int) []SemanticToken {
	if value == "" {
		return nil
	}

	length := endPos.Column - pos.Column
	if length <= 0 {
		length = len(value)
	}

	return []SemanticToken{{
		Line:           uint32(pos.Line - 1),   // LSP uses 0-based line numbers
		StartChar:      uint32(pos.Column - 1), // LSP uses 0-based column numbers
		Length:         uint32(length),
		TokenType:      indexOf(tokenType, SemanticTokenTypes),
		TokenModifiers: declModifier << indexOf("declaration", SemanticTokenModifiers),
	}}
}

// indexOf returns the index of a string in a slice, or 0 if not found
func indexOf(target string, list []string) int {
	for i, v := range list {
		if v == target {
			return i
		}
	}
	return 0 // Default to first token type if not found
}
