package ast

// TypeExpr is the closed set of type expressions the declaration
// grammar admits: named types, pointer types and tuples.
type TypeExpr interface {
	Node
	isTypeExpr()
}

// NamedType represents a plain type name
// Example: "felt", "Point", "HashBuiltin"
type NamedType struct {
	Pos    Position
	EndPos Position
	Name   Ident
}

// PointerType represents a pointer to another type
// Example: "felt*", "Point*", "felt**"
type PointerType struct {
	Pos    Position
	EndPos Position
	Elem   TypeExpr
}

// TupleType represents tuple types with optionally named members
// Example: "(felt, felt)", "(x: felt, y: felt)", "()"
type TupleType struct {
	Pos     Position
	EndPos  Position
	Members []TupleMember
}

// TupleMember is a single tuple slot; Name is nil for positional slots
// Example: "x: felt" in "(x: felt, y: felt)", "felt" in "(felt, felt)"
type TupleMember struct {
	Pos    Position
	EndPos Position
	Name   *Ident
	Type   TypeExpr
}

func (*NamedType) isTypeExpr() {}

func (*PointerType) isTypeExpr() {}

func (*TupleType) isTypeExpr() {}
