package builtins

// Builtin represents a Cairo VM builtin runner that a program can request
// through the %builtins directive.
type Builtin string

const (
	Output     Builtin = "output"
	Pedersen   Builtin = "pedersen"
	RangeCheck Builtin = "range_check"
	ECDSA      Builtin = "ecdsa"
	Bitwise    Builtin = "bitwise"
	EcOp       Builtin = "ec_op"
	Keccak     Builtin = "keccak"
	Poseidon   Builtin = "poseidon"
)

// canonicalOrder is the order the VM expects builtins to be declared in.
// A %builtins directive listing them out of order is rejected at run time,
// so we surface it at compile time instead.
var canonicalOrder = map[Builtin]int{
	Output:     0,
	Pedersen:   1,
	RangeCheck: 2,
	ECDSA:      3,
	Bitwise:    4,
	EcOp:       5,
	Keccak:     6,
	Poseidon:   7,
}

// IsKnownBuiltin checks if a name refers to a supported VM builtin.
func IsKnownBuiltin(name string) bool {
	_, ok := canonicalOrder[Builtin(name)]
	return ok
}

// InCanonicalOrder reports whether the given builtin names appear in the
// order the VM expects. Unknown names are ignored; they are reported
// separately.
func InCanonicalOrder(names []string) bool {
	prev := -1
	for _, name := range names {
		idx, ok := canonicalOrder[Builtin(name)]
		if !ok {
			continue
		}
		if idx < prev {
			return false
		}
		prev = idx
	}
	return true
}

// KnownBuiltins returns all supported builtin names in canonical order.
func KnownBuiltins() []Builtin {
	return []Builtin{Output, Pedersen, RangeCheck, ECDSA, Bitwise, EcOp, Keccak, Poseidon}
}
