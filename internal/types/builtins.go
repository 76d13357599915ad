package types

// BuiltinTypeNames lists the primitive type names every source file can
// use without importing anything. Cairo has exactly one: felt.
var BuiltinTypeNames = map[string]bool{
	"felt": true,
}

// FeltTypeName is the name of the single scalar primitive.
const FeltTypeName = "felt"

// IsBuiltinTypeName checks if a type name is a language primitive.
func IsBuiltinTypeName(typeName string) bool {
	return BuiltinTypeNames[typeName]
}
