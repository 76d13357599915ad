package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

var CairoLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		// Comments
		{Name: "Comment", Pattern: `#[^\n]*`},

		// File-level directives (%lang, %builtins)
		{Name: "Directive", Pattern: `%[a-zA-Z_][a-zA-Z0-9_]*`},

		// Decorators (@external, @view, @storage_var, ...)
		{Name: "Decorator", Pattern: `@[a-zA-Z_][a-zA-Z0-9_]*`},

		// Keywords and Identifiers (order matters)
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},

		// Integer literals
		{Name: "Integer", Pattern: `0x[0-9a-fA-F]+|[0-9]+`},

		// Short string literals ('ERC20', at most 31 characters checked later)
		{Name: "ShortString", Pattern: `'[^'\n]*'`},

		// Return arrow (before Operator so '->' never splits)
		{Name: "Arrow", Pattern: `->`},

		// Operators
		{Name: "Operator", Pattern: `(==|!=|\*\*|&&|=|\+|-|\*|/|&|<|>)`},

		// Punctuation (must come after operators)
		{Name: "Punctuation", Pattern: `[{}[\](),.:;]`},

		// Whitespace
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
	},
})
