package parser

// regenerate tokentype_string.go with `go generate ./internal/parser`
//
//go:generate stringer -type=TokenType
type TokenType int

const (
	// Special tokens
	ILLEGAL TokenType = iota
	EOF

	// Identifiers + literals
	IDENTIFIER
	NUMBER
	HEX_NUMBER
	STRING

	// Keywords
	FUNC
	STRUCT
	NAMESPACE
	FROM
	IMPORT
	AS
	CONST

	// Directives and decorators
	DIRECTIVE
	DECORATOR

	// Operators
	PLUS
	MINUS
	STAR
	STAR_STAR
	SLASH
	EQUAL
	EQUAL_EQUAL
	BANG_EQUAL
	LESS
	GREATER
	AMPERSAND
	AND
	ARROW

	// Separators
	COMMA
	DOT
	SEMICOLON
	COLON

	// Brackets
	LEFT_PAREN
	RIGHT_PAREN
	LEFT_BRACE
	RIGHT_BRACE
	LEFT_BRACKET
	RIGHT_BRACKET

	// Comments
	COMMENT
)

type Position struct {
	Line   int // 1-based
	Column int // 1-based
	Offset int // 0-based absolute index in input
}
