package abi

// Entry point names the account transaction flow dispatches to. The
// sequencer calls __validate__ before __execute__ with identical
// calldata, and __validate_declare__ before accepting a class
// declaration, so their signatures are fixed by protocol.
const (
	ValidateEntryPointName        = "__validate__"
	ExecuteEntryPointName         = "__execute__"
	ValidateDeclareEntryPointName = "__validate_declare__"
)

// AccountEntryPointNames lists the reserved names in reporting order.
var AccountEntryPointNames = []string{
	ValidateEntryPointName,
	ExecuteEntryPointName,
	ValidateDeclareEntryPointName,
}

// IsAccountEntryPointName reports whether the name is reserved for
// account contracts.
func IsAccountEntryPointName(name string) bool {
	for _, reserved := range AccountEntryPointNames {
		if name == reserved {
			return true
		}
	}
	return false
}
