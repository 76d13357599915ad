package ast

// ContractFile represents a single Cairo contract source file.
// Example: "%lang starknet\n@external\nfunc transfer(to: felt, amount: felt) {\n}"
type ContractFile struct {
	Pos    Position
	EndPos Position
	Path   string
	Items  []ContractItem // Top-level items in source order
}

// Position tracks location information for error reporting and tooling
type Position struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

// Ident represents any identifier like function names, type names, etc.
// Example: "transfer", "felt", "syscall_ptr", "__execute__"
type Ident struct {
	Pos    Position
	EndPos Position
	Value  string
}

// BadContractItem represents parse errors in top-level items
type BadContractItem struct {
	Bad BadNode
}

// BadNode contains error information for failed parsing
type BadNode struct {
	Pos     Position
	EndPos  Position
	Message string
	Details []string
}

// Comment represents regular comments
// Example: "# Increase the balance by the given amount."
type Comment struct {
	Pos    Position
	EndPos Position
	Text   string
}

// Directive represents file-level directives
// Example: "%lang starknet", "%builtins pedersen range_check"
type Directive struct {
	Pos    Position
	EndPos Position
	Name   Ident
	Args   []Ident
}

// ImportStmt represents import statements
// Example: "from starkware.cairo.common.math import assert_nn, assert_le"
type ImportStmt struct {
	Pos    Position
	EndPos Position
	Module []Ident // Dotted module path parts
	Items  []*ImportItem
}

// ImportItem represents individual imported names
// Example: "assert_nn", "HashBuiltin as Hash"
type ImportItem struct {
	Pos    Position
	EndPos Position
	Name   Ident
	Alias  *Ident // nil unless "as" was used
}

// ConstDecl represents top-level constant declarations. The value is
// kept as raw source text since declaration checks never evaluate it.
// Example: "const DECIMALS = 18;"
type ConstDecl struct {
	Pos    Position
	EndPos Position
	Name   Ident
	Value  string
}

// Decorator represents function and namespace decorators
// Example: "@external", "@view", "@storage_var", "@contract_interface"
type Decorator struct {
	Pos    Position
	EndPos Position
	Name   Ident // Without the leading '@'
}

// TypedIdent represents a name with an optional type annotation.
// The type may be omitted only inside implicit-argument lists, where
// the OS supplies it.
// Example: "amount: felt", "to: felt*", "range_check_ptr"
type TypedIdent struct {
	Pos    Position
	EndPos Position
	Name   Ident
	Type   TypeExpr // nil when omitted
}

// IdentifierList represents the brace-delimited implicit-argument block.
// The list node carries its own span so diagnostics can point at the
// whole block rather than the first entry.
// Example: "{syscall_ptr: felt*, pedersen_ptr: HashBuiltin*, range_check_ptr}"
type IdentifierList struct {
	Pos    Position
	EndPos Position
	Args   []TypedIdent
}

// BodySpan records where a function body sits in the source without
// keeping its statements. Declaration checks never look inside bodies;
// they only need to know whether one is empty.
type BodySpan struct {
	Pos    Position
	EndPos Position
	Empty  bool
}

// FunctionDecl represents function declarations
// Example: "@external\nfunc transfer{syscall_ptr: felt*}(to: felt, amount: felt) {\n    ...\n}"
type FunctionDecl struct {
	Pos          Position
	EndPos       Position
	Decorators   []Decorator
	Name         Ident
	ImplicitArgs *IdentifierList // nil when no '{...}' block is present
	Args         []TypedIdent
	Returns      TypeExpr // nil when no '->' clause
	Body         BodySpan
	Attrs        FunctionAttrs
}

// FunctionAttrs carries values that later pipeline stages attach to a
// declaration. Each field is written by exactly one stage.
type FunctionAttrs struct {
	EntryPoint *EntryPointAttr // set once the declaration passes entry-point checks
}

// EntryPointAttr records which decorator elaborated a function into an
// entry point.
type EntryPointAttr struct {
	Kind      string // "external", "view", "constructor" or "l1_handler"
	Decorator Position
}

// StructDecl represents struct declarations
// Example: "struct Point {\n    x: felt,\n    y: felt,\n}"
type StructDecl struct {
	Pos     Position
	EndPos  Position
	Name    Ident
	Members []TypedIdent
}

// NamespaceDecl represents namespace declarations
// Example: "@contract_interface\nnamespace IBalance {\n    func get_balance() -> (res: felt) {\n    }\n}"
type NamespaceDecl struct {
	Pos        Position
	EndPos     Position
	Decorators []Decorator
	Name       Ident
	Functions  []*FunctionDecl
}
