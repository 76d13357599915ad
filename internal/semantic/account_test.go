package semantic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cairn/internal/abi"
	"cairn/internal/errors"
)

func functionEntry(name string, inputs ...abi.Variable) *abi.FunctionEntry {
	return &abi.FunctionEntry{
		EntryCommon: abi.EntryCommon{Type: abi.EntryTypeFunction, Name: name},
		Inputs:      inputs,
		Outputs:     []abi.Variable{},
	}
}

// accountABI is the OpenZeppelin account surface: the three reserved
// entry points with matching multicall calldata.
func accountABI() abi.Contract {
	callArgs := []abi.Variable{
		{Name: "call_array_len", Type: "felt"},
		{Name: "call_array", Type: "AccountCallArray*"},
		{Name: "calldata_len", Type: "felt"},
		{Name: "calldata", Type: "felt*"},
	}

	return abi.Contract{
		functionEntry(abi.ValidateEntryPointName, callArgs...),
		functionEntry(abi.ExecuteEntryPointName, callArgs...),
		functionEntry(abi.ValidateDeclareEntryPointName, abi.Variable{Name: "class_hash", Type: "felt"}),
	}
}

func TestAccountContractConforms(t *testing.T) {
	assert.Nil(t, VerifyAccountContract(accountABI(), true))
}

func TestAccountContractMissingEntryPoint(t *testing.T) {
	contract := accountABI()[:2] // drop __validate_declare__

	err := VerifyAccountContract(contract, true)
	require.NotNil(t, err)
	assert.Equal(t, errors.ErrorMissingAccountEntryPoints, err.Code)
	assert.Equal(t,
		"Account contracts must have external functions named ['__validate__', '__execute__', '__validate_declare__'], "+
			"found: ['__validate__', '__execute__'].",
		err.Message)
}

func TestAccountContractIgnoresNonFunctionEntries(t *testing.T) {
	contract := accountABI()
	contract = append(contract, &abi.EventEntry{
		EntryCommon: abi.EntryCommon{Type: abi.EntryTypeEvent, Name: abi.ExecuteEntryPointName},
		Keys:        []string{},
		Data:        []abi.Variable{},
	})

	assert.Nil(t, VerifyAccountContract(contract, true),
		"only type==function entries count as entry points")
}

func TestAccountContractCalldataMismatch(t *testing.T) {
	mutations := []struct {
		name   string
		mutate func(execute *abi.FunctionEntry)
	}{
		{"renamed input", func(e *abi.FunctionEntry) { e.Inputs[0].Name = "calls_len" }},
		{"retyped input", func(e *abi.FunctionEntry) { e.Inputs[1].Type = "CallArray*" }},
		{"extra input", func(e *abi.FunctionEntry) {
			e.Inputs = append(e.Inputs, abi.Variable{Name: "nonce", Type: "felt"})
		}},
		{"reordered inputs", func(e *abi.FunctionEntry) {
			e.Inputs[0], e.Inputs[2] = e.Inputs[2], e.Inputs[0]
		}},
	}

	for _, tc := range mutations {
		t.Run(tc.name, func(t *testing.T) {
			contract := accountABI()
			tc.mutate(contract[1].(*abi.FunctionEntry))

			err := VerifyAccountContract(contract, true)
			require.NotNil(t, err)
			assert.Equal(t, errors.ErrorSignatureMismatch, err.Code)
			assert.Equal(t,
				"Account contracts must have the exact same calldata for '__validate__' and '__execute__' functions.",
				err.Message)
		})
	}
}

func TestAccountContractDeclareSignature(t *testing.T) {
	for _, inputs := range [][]abi.Variable{
		{},
		{{Name: "hash", Type: "felt"}},
		{{Name: "class_hash", Type: "felt*"}},
		{{Name: "class_hash", Type: "felt"}, {Name: "nonce", Type: "felt"}},
	} {
		contract := accountABI()
		contract[2].(*abi.FunctionEntry).Inputs = inputs

		err := VerifyAccountContract(contract, true)
		require.NotNil(t, err)
		assert.Equal(t, errors.ErrorInvalidDeclareSignature, err.Code)
		assert.Equal(t, "'__validate_declare__' function must have one argument `class_hash: felt`.", err.Message)
	}
}

func TestNonAccountContractWithoutReservedNames(t *testing.T) {
	contract := abi.Contract{
		functionEntry("transfer", abi.Variable{Name: "to", Type: "felt"}),
		functionEntry("balance_of", abi.Variable{Name: "account", Type: "felt"}),
	}

	assert.Nil(t, VerifyAccountContract(contract, false))
}

func TestNonAccountContractWithReservedName(t *testing.T) {
	contract := abi.Contract{
		functionEntry("transfer", abi.Variable{Name: "to", Type: "felt"}),
		functionEntry(abi.ExecuteEntryPointName),
	}

	err := VerifyAccountContract(contract, false)
	require.NotNil(t, err)
	assert.Equal(t, errors.ErrorUnexpectedAccountEntryPoints, err.Code)
	assert.Equal(t,
		"Only account contracts may have functions named ['__execute__']. "+
			"Use the --account-contract flag to compile an account contract.",
		err.Message)
}

func TestDuplicateReservedEntryPointFailsFast(t *testing.T) {
	// The duplicate must be rejected before any signature comparison:
	// both copies conform pairwise, so letting one win would pass.
	contract := accountABI()
	contract = append(contract, functionEntry(abi.ExecuteEntryPointName,
		abi.Variable{Name: "call_array_len", Type: "felt"},
		abi.Variable{Name: "call_array", Type: "AccountCallArray*"},
		abi.Variable{Name: "calldata_len", Type: "felt"},
		abi.Variable{Name: "calldata", Type: "felt*"}))

	for _, isAccount := range []bool{true, false} {
		err := VerifyAccountContract(contract, isAccount)
		require.NotNil(t, err)
		assert.Equal(t, errors.ErrorDuplicateEntryPoint, err.Code)
		assert.Equal(t, "Entry point '__execute__' is declared more than once.", err.Message)
	}
}
