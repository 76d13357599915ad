package types

import "strings"

// CairoType is the resolved form of a type expression. The set is
// closed: felt, pointers, tuples and structs cover everything the
// declaration grammar admits.
type CairoType interface {
	// SizeInFelts is the number of field elements a value of this type
	// occupies when flattened.
	SizeInFelts() int
	String() string
	isCairoType()
}

// FeltType is the single scalar primitive. Every value is ultimately
// made of felts.
type FeltType struct{}

// PointerType points at a value of Elem type. Pointer values occupy one
// felt; the encoder treats pointer arguments as arrays.
type PointerType struct {
	Elem CairoType
}

// Member is one slot of a tuple or struct. Name is empty for positional
// tuple slots.
type Member struct {
	Name string
	Type CairoType
}

// TupleType is an ordered collection of members, optionally named.
type TupleType struct {
	Members []Member
}

// StructType is a named, fully resolved struct layout.
type StructType struct {
	Name    string
	Members []Member
}

func (FeltType) isCairoType()    {}
func (PointerType) isCairoType() {}
func (TupleType) isCairoType()   {}
func (StructType) isCairoType()  {}

func (FeltType) SizeInFelts() int { return 1 }

func (PointerType) SizeInFelts() int { return 1 }

func (t TupleType) SizeInFelts() int {
	size := 0
	for _, m := range t.Members {
		size += m.Type.SizeInFelts()
	}
	return size
}

func (s StructType) SizeInFelts() int {
	size := 0
	for _, m := range s.Members {
		size += m.Type.SizeInFelts()
	}
	return size
}

func (FeltType) String() string { return "felt" }

func (p PointerType) String() string { return p.Elem.String() + "*" }

func (t TupleType) String() string {
	var b strings.Builder
	b.WriteString("(")
	for i, m := range t.Members {
		if i > 0 {
			b.WriteString(", ")
		}
		if m.Name != "" {
			b.WriteString(m.Name)
			b.WriteString(": ")
		}
		b.WriteString(m.Type.String())
	}
	b.WriteString(")")
	return b.String()
}

func (s StructType) String() string { return s.Name }

// Equal reports deep structural equality. Member order and member names
// both participate: (a: felt, b: felt) and (b: felt, a: felt) are
// different types.
func Equal(a, b CairoType) bool {
	switch at := a.(type) {
	case FeltType:
		_, ok := b.(FeltType)
		return ok
	case PointerType:
		bt, ok := b.(PointerType)
		return ok && Equal(at.Elem, bt.Elem)
	case TupleType:
		bt, ok := b.(TupleType)
		return ok && membersEqual(at.Members, bt.Members)
	case StructType:
		bt, ok := b.(StructType)
		return ok && at.Name == bt.Name && membersEqual(at.Members, bt.Members)
	default:
		return false
	}
}

func membersEqual(a, b []Member) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Name != b[i].Name || !Equal(a[i].Type, b[i].Type) {
			return false
		}
	}
	return true
}
