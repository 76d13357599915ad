package ast

type NodeType int

// regenerate nodetype_string.go with `go generate ./internal/ast`
//
//go:generate stringer -type=NodeType
const (
	// Special / error
	ILLEGAL NodeType = iota
	BAD_CONTRACT_ITEM

	// Comments
	COMMENT

	// High-level constructs
	CONTRACT_FILE

	// Directives and imports
	DIRECTIVE
	IMPORT_STMT
	IMPORT_ITEM
	CONST_DECL

	// Decorators
	DECORATOR

	// Structs and namespaces
	STRUCT_DECL
	NAMESPACE_DECL

	// Types
	NAMED_TYPE
	POINTER_TYPE
	TUPLE_TYPE
	TUPLE_MEMBER
	IDENT

	// Functions
	FUNCTION_DECL
	TYPED_IDENT
	IDENTIFIER_LIST
	BODY_SPAN
)
