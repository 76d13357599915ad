package stdlib

// ModuleDefinition describes a module from the Cairo common library that
// contracts import types and functions from.
type ModuleDefinition struct {
	Name      string                        // Short module name (e.g., "uint256", "syscalls")
	Path      string                        // Full dotted path (e.g., "starkware.cairo.common.uint256")
	Types     map[string]TypeDefinition     // Types exported by this module
	Functions map[string]FunctionDefinition // Functions exported by this module
	Constants []string                      // Named constants exported by this module
}

// TypeDefinition describes a struct type exported by a common library module.
// Members carry source-level type strings so the layout can be reconstructed
// without pulling the library sources in.
type TypeDefinition struct {
	Name    string
	Members []MemberDefinition
}

// MemberDefinition is a single member of a library struct.
type MemberDefinition struct {
	Name string
	Type string // e.g. "felt", "felt*"
}

// FunctionDefinition describes a function exported by a common library module.
// Only the name matters for import checking; bodies are never inspected.
type FunctionDefinition struct {
	Name string
}

func NewType(name string, members ...MemberDefinition) TypeDefinition {
	return TypeDefinition{Name: name, Members: members}
}

func NewMember(name, typ string) MemberDefinition {
	return MemberDefinition{Name: name, Type: typ}
}

func NewFunction(name string) FunctionDefinition {
	return FunctionDefinition{Name: name}
}

// GetStandardModules returns the bundled Cairo common library catalog.
func GetStandardModules() map[string]*ModuleDefinition {
	return map[string]*ModuleDefinition{
		"starkware.cairo.common.cairo_builtins": {
			Name: "cairo_builtins",
			Path: "starkware.cairo.common.cairo_builtins",
			Types: map[string]TypeDefinition{
				"HashBuiltin": NewType("HashBuiltin",
					NewMember("x", "felt"),
					NewMember("y", "felt"),
					NewMember("result", "felt")),
				"SignatureBuiltin": NewType("SignatureBuiltin",
					NewMember("pub_key", "felt"),
					NewMember("message", "felt")),
				"BitwiseBuiltin": NewType("BitwiseBuiltin",
					NewMember("x", "felt"),
					NewMember("y", "felt"),
					NewMember("x_and_y", "felt"),
					NewMember("x_xor_y", "felt"),
					NewMember("x_or_y", "felt")),
			},
			Functions: map[string]FunctionDefinition{},
		},
		"starkware.cairo.common.uint256": {
			Name: "uint256",
			Path: "starkware.cairo.common.uint256",
			Types: map[string]TypeDefinition{
				"Uint256": NewType("Uint256",
					NewMember("low", "felt"),
					NewMember("high", "felt")),
			},
			Functions: map[string]FunctionDefinition{
				"uint256_add":   NewFunction("uint256_add"),
				"uint256_sub":   NewFunction("uint256_sub"),
				"uint256_le":    NewFunction("uint256_le"),
				"uint256_lt":    NewFunction("uint256_lt"),
				"uint256_eq":    NewFunction("uint256_eq"),
				"uint256_check": NewFunction("uint256_check"),
			},
		},
		"starkware.cairo.common.math": {
			Name:  "math",
			Path:  "starkware.cairo.common.math",
			Types: map[string]TypeDefinition{},
			Functions: map[string]FunctionDefinition{
				"assert_nn":        NewFunction("assert_nn"),
				"assert_le":        NewFunction("assert_le"),
				"assert_lt":        NewFunction("assert_lt"),
				"assert_nn_le":     NewFunction("assert_nn_le"),
				"assert_not_zero":  NewFunction("assert_not_zero"),
				"assert_not_equal": NewFunction("assert_not_equal"),
				"unsigned_div_rem": NewFunction("unsigned_div_rem"),
				"split_felt":       NewFunction("split_felt"),
			},
		},
		"starkware.cairo.common.math_cmp": {
			Name:  "math_cmp",
			Path:  "starkware.cairo.common.math_cmp",
			Types: map[string]TypeDefinition{},
			Functions: map[string]FunctionDefinition{
				"is_le":       NewFunction("is_le"),
				"is_nn":       NewFunction("is_nn"),
				"is_not_zero": NewFunction("is_not_zero"),
			},
		},
		"starkware.cairo.common.memcpy": {
			Name:  "memcpy",
			Path:  "starkware.cairo.common.memcpy",
			Types: map[string]TypeDefinition{},
			Functions: map[string]FunctionDefinition{
				"memcpy": NewFunction("memcpy"),
			},
		},
		"starkware.cairo.common.alloc": {
			Name:  "alloc",
			Path:  "starkware.cairo.common.alloc",
			Types: map[string]TypeDefinition{},
			Functions: map[string]FunctionDefinition{
				"alloc": NewFunction("alloc"),
			},
		},
		"starkware.cairo.common.hash": {
			Name:  "hash",
			Path:  "starkware.cairo.common.hash",
			Types: map[string]TypeDefinition{},
			Functions: map[string]FunctionDefinition{
				"hash2": NewFunction("hash2"),
			},
		},
		"starkware.cairo.common.bool": {
			Name:      "bool",
			Path:      "starkware.cairo.common.bool",
			Types:     map[string]TypeDefinition{},
			Functions: map[string]FunctionDefinition{},
			Constants: []string{"TRUE", "FALSE"},
		},
		"starkware.starknet.common.syscalls": {
			Name: "syscalls",
			Path: "starkware.starknet.common.syscalls",
			Types: map[string]TypeDefinition{
				"TxInfo": NewType("TxInfo",
					NewMember("version", "felt"),
					NewMember("account_contract_address", "felt"),
					NewMember("max_fee", "felt"),
					NewMember("signature_len", "felt"),
					NewMember("signature", "felt*"),
					NewMember("transaction_hash", "felt"),
					NewMember("chain_id", "felt"),
					NewMember("nonce", "felt")),
			},
			Functions: map[string]FunctionDefinition{
				"get_caller_address":   NewFunction("get_caller_address"),
				"get_contract_address": NewFunction("get_contract_address"),
				"get_block_number":     NewFunction("get_block_number"),
				"get_block_timestamp":  NewFunction("get_block_timestamp"),
				"get_tx_info":          NewFunction("get_tx_info"),
				"call_contract":        NewFunction("call_contract"),
				"emit_event":           NewFunction("emit_event"),
				"storage_read":         NewFunction("storage_read"),
				"storage_write":        NewFunction("storage_write"),
			},
		},
	}
}

// IsKnownModule checks if a dotted path refers to a bundled common library module.
func IsKnownModule(modulePath string) bool {
	modules := GetStandardModules()
	_, exists := modules[modulePath]
	return exists
}

// GetModuleDefinition returns the definition for a common library module,
// or nil when the path is not part of the bundled catalog.
func GetModuleDefinition(modulePath string) *ModuleDefinition {
	modules := GetStandardModules()
	return modules[modulePath]
}

// Exports reports whether the module exports the given name as a type,
// function, or constant.
func (m *ModuleDefinition) Exports(name string) bool {
	if _, ok := m.Types[name]; ok {
		return true
	}
	if _, ok := m.Functions[name]; ok {
		return true
	}
	for _, c := range m.Constants {
		if c == name {
			return true
		}
	}
	return false
}
