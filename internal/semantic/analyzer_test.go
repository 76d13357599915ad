package semantic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cairn/internal/ast"
	"cairn/internal/encoder"
	"cairn/internal/errors"
	"cairn/internal/parser"
)

func analyzeSource(t *testing.T, source string, options Options) (*ast.ContractFile, *Analysis, []errors.CompilerError) {
	t.Helper()

	file, parseErrors, scanErrors := parser.ParseSource("test.cairo", source)
	require.Empty(t, parseErrors, "Fixture should parse cleanly")
	require.Empty(t, scanErrors, "Fixture should scan cleanly")

	analyzer := NewAnalyzer(options)
	analysis := analyzer.Analyze(file)
	return file, analysis, analyzer.GetErrors()
}

func requireSingleError(t *testing.T, errs []errors.CompilerError, code string) errors.CompilerError {
	t.Helper()

	require.Len(t, errs, 1)
	assert.Equal(t, code, errs[0].Code)
	return errs[0]
}

const accountSource = `%lang starknet
%builtins pedersen range_check ecdsa

from starkware.cairo.common.cairo_builtins import HashBuiltin, SignatureBuiltin

struct AccountCallArray {
    to: felt,
    selector: felt,
    data_offset: felt,
    data_len: felt,
}

@external
func __validate__{syscall_ptr: felt*, range_check_ptr}(call_array_len: felt, call_array: AccountCallArray*, calldata_len: felt, calldata: felt*) {
}

@external
func __validate_declare__{syscall_ptr: felt*}(class_hash: felt) {
}

@external
func __execute__{syscall_ptr: felt*, range_check_ptr}(call_array_len: felt, call_array: AccountCallArray*, calldata_len: felt, calldata: felt*) {
}`

func TestAnalyzeTokenContract(t *testing.T) {
	file, analysis, errs := analyzeSource(t, `%lang starknet
%builtins pedersen range_check

from starkware.cairo.common.uint256 import Uint256
from starkware.starknet.common.syscalls import get_caller_address

@event
func Transfer(from_: felt, to: felt, value: Uint256) {
}

@storage_var
func balances(account: felt) -> (balance: Uint256) {
}

@constructor
func constructor{syscall_ptr: felt*, range_check_ptr}(owner: felt, initial_supply: Uint256) {
}

@external
func transfer{syscall_ptr: felt*, range_check_ptr}(recipient: felt, amount: Uint256) -> (success: felt) {
    # body is the full compiler's business
    let success = 1;
}

@view
func balance_of{syscall_ptr: felt*}(account: felt) -> (balance: Uint256) {
}

func assert_owner(caller: felt) {
    # helper, never surfaced in the ABI
}`, Options{})

	assert.Empty(t, errs)
	require.NotNil(t, analysis.ABI)
	assert.Empty(t, analysis.InterfaceStubs)

	assert.NotNil(t, analysis.ABI.GetFunction("transfer"))
	assert.NotNil(t, analysis.ABI.GetFunction("balance_of"))
	assert.Nil(t, analysis.ABI.GetFunction("assert_owner"))

	// Entry point attributes land on exactly the elaborated functions.
	kinds := make(map[string]string)
	for _, fn := range file.Functions() {
		if fn.Attrs.EntryPoint != nil {
			kinds[fn.Name.Value] = fn.Attrs.EntryPoint.Kind
		}
	}
	assert.Equal(t, map[string]string{
		"constructor": "constructor",
		"transfer":    "external",
		"balance_of":  "view",
	}, kinds)
}

func TestAnalyzeAccountContract(t *testing.T) {
	_, analysis, errs := analyzeSource(t, accountSource, Options{IsAccountContract: true})

	assert.Empty(t, errs)
	require.NotNil(t, analysis.ABI)

	execute := analysis.ABI.GetFunction("__execute__")
	require.NotNil(t, execute)
	assert.Equal(t, "AccountCallArray*", execute.Inputs[1].Type)
}

func TestAnalyzeAccountContractRejectedWithoutFlag(t *testing.T) {
	_, _, errs := analyzeSource(t, accountSource, Options{})

	err := requireSingleError(t, errs, errors.ErrorUnexpectedAccountEntryPoints)
	assert.Contains(t, err.Message, "--account-contract")
	assert.Equal(t, 14, err.Position.Line, "points at the first reserved declaration")
}

func TestAnalyzeAccountCalldataDriftPointsAtExecute(t *testing.T) {
	source := `%lang starknet

@external
func __validate__{syscall_ptr: felt*, range_check_ptr}(calls_len: felt, calls: felt*) {
}

@external
func __validate_declare__{syscall_ptr: felt*}(class_hash: felt) {
}

@external
func __execute__{syscall_ptr: felt*, range_check_ptr}(calls_len: felt, calls: felt*, nonce: felt) {
}`

	_, analysis, errs := analyzeSource(t, source, Options{IsAccountContract: true})

	require.NotNil(t, analysis.ABI, "the ABI is still built; conformance failed on top of it")
	err := requireSingleError(t, errs, errors.ErrorSignatureMismatch)
	assert.Equal(t,
		"Account contracts must have the exact same calldata for '__validate__' and '__execute__' functions.",
		err.Message)
	assert.Equal(t, 12, err.Position.Line)
}

func TestAnalyzeAccountMissingEntryPoints(t *testing.T) {
	_, _, errs := analyzeSource(t, `%lang starknet

@external
func transfer{syscall_ptr: felt*}(to: felt) {
}`, Options{IsAccountContract: true})

	err := requireSingleError(t, errs, errors.ErrorMissingAccountEntryPoints)
	assert.Contains(t, err.Message, "found: [].")
	assert.Equal(t, 1, err.Position.Line, "nothing to point at, so the top of the file")
}

func TestAnalyzeDialectRequired(t *testing.T) {
	_, _, errs := analyzeSource(t, `@external
func transfer(to: felt) {
}`, Options{})

	err := requireSingleError(t, errs, errors.ErrorDialectMismatch)
	assert.Equal(t,
		`@external can only be used in source files that contain the "%lang starknet" directive.`,
		err.Message)
}

func TestAnalyzeWrongDialect(t *testing.T) {
	_, _, errs := analyzeSource(t, `%lang cairo

@storage_var
func counter() -> (value: felt) {
}`, Options{})

	requireSingleError(t, errs, errors.ErrorDialectMismatch)
}

func TestAnalyzeUnexpectedDecoratorOnEntryPoint(t *testing.T) {
	_, _, errs := analyzeSource(t, `%lang starknet

@external
@event
func transfer(to: felt) {
}`, Options{})

	err := requireSingleError(t, errs, errors.ErrorUnexpectedDecorator)
	assert.Equal(t, "Unexpected decorator for external functions.", err.Message)
}

func TestAnalyzeMisspelledDecoratorSuggestsFix(t *testing.T) {
	_, _, errs := analyzeSource(t, `%lang starknet

@externall
func transfer(to: felt) {
}`, Options{})

	err := requireSingleError(t, errs, errors.ErrorUnexpectedDecorator)
	require.NotEmpty(t, err.Suggestions)
	assert.Equal(t, "did you mean '@external'?", err.Suggestions[0].Message)
}

func TestAnalyzeMultipleEntryPointDecorators(t *testing.T) {
	_, _, errs := analyzeSource(t, `%lang starknet

@external
@view
func get_balance(account: felt) -> (balance: felt) {
}`, Options{})

	err := requireSingleError(t, errs, errors.ErrorGenericSemantic)
	assert.Equal(t, "Function 'get_balance' has more than one entry point decorator.", err.Message)
	assert.Equal(t, 4, err.Position.Line, "the second decorator is the offender")
}

func TestAnalyzeEventShape(t *testing.T) {
	t.Run("implicit arguments", func(t *testing.T) {
		_, _, errs := analyzeSource(t, `%lang starknet

@event
func Transfer{syscall_ptr: felt*}(value: felt) {
}`, Options{})

		err := requireSingleError(t, errs, errors.ErrorInvalidSignature)
		assert.Equal(t, "Events must have no implicit arguments.", err.Message)
	})

	t.Run("return values", func(t *testing.T) {
		_, _, errs := analyzeSource(t, `%lang starknet

@event
func Transfer(value: felt) -> (res: felt) {
}`, Options{})

		err := requireSingleError(t, errs, errors.ErrorInvalidSignature)
		assert.Equal(t, "Events must have no return values.", err.Message)
	})

	t.Run("non-empty body", func(t *testing.T) {
		_, _, errs := analyzeSource(t, `%lang starknet

@event
func Transfer(value: felt) {
    let x = 1;
}`, Options{})

		err := requireSingleError(t, errs, errors.ErrorNonEmptyBody)
		assert.Equal(t, "Events must have an empty body.", err.Message)
	})

	t.Run("comment-only body stays empty", func(t *testing.T) {
		_, _, errs := analyzeSource(t, `%lang starknet

@event
func Transfer(value: felt) {
    # emitted on every transfer
}`, Options{})

		assert.Empty(t, errs)
	})
}

func TestAnalyzeStorageVarShape(t *testing.T) {
	t.Run("returns are allowed", func(t *testing.T) {
		_, _, errs := analyzeSource(t, `%lang starknet

@storage_var
func balances(account: felt) -> (balance: felt) {
}`, Options{})

		assert.Empty(t, errs)
	})

	t.Run("implicit arguments", func(t *testing.T) {
		_, _, errs := analyzeSource(t, `%lang starknet

@storage_var
func balances{syscall_ptr: felt*}(account: felt) -> (balance: felt) {
}`, Options{})

		err := requireSingleError(t, errs, errors.ErrorInvalidSignature)
		assert.Equal(t, "Storage variables must have no implicit arguments.", err.Message)
	})

	t.Run("non-empty body", func(t *testing.T) {
		_, _, errs := analyzeSource(t, `%lang starknet

@storage_var
func balances(account: felt) -> (balance: felt) {
    let x = 1;
}`, Options{})

		requireSingleError(t, errs, errors.ErrorNonEmptyBody)
	})
}

func TestAnalyzeConstructorReturnValues(t *testing.T) {
	_, _, errs := analyzeSource(t, `%lang starknet

@constructor
func constructor{syscall_ptr: felt*}(owner: felt) -> (res: felt) {
}`, Options{})

	err := requireSingleError(t, errs, errors.ErrorInvalidSignature)
	assert.Equal(t, "Constructors must have no return values.", err.Message)
}

func TestAnalyzeDuplicateDeclarations(t *testing.T) {
	t.Run("two functions", func(t *testing.T) {
		_, _, errs := analyzeSource(t, `%lang starknet

@external
func transfer{syscall_ptr: felt*}(to: felt) {
}

@external
func transfer{syscall_ptr: felt*}(to: felt, amount: felt) {
}`, Options{})

		err := requireSingleError(t, errs, errors.ErrorDuplicateDeclaration)
		assert.Equal(t, "duplicate declaration: transfer", err.Message)
		assert.Equal(t, 8, err.Position.Line, "the second declaration is cited")
	})

	t.Run("struct then function", func(t *testing.T) {
		_, _, errs := analyzeSource(t, `%lang starknet

struct Balance {
    amount: felt,
}

func Balance() {
}`, Options{})

		requireSingleError(t, errs, errors.ErrorDuplicateDeclaration)
	})

	t.Run("struct shadows builtin type", func(t *testing.T) {
		_, _, errs := analyzeSource(t, `%lang starknet

struct felt {
    value: felt,
}`, Options{})

		err := requireSingleError(t, errs, errors.ErrorGenericSemantic)
		assert.Equal(t, "Type name 'felt' is already defined.", err.Message)
	})
}

func TestAnalyzeDuplicateReservedEntryPoint(t *testing.T) {
	// The duplicate is already a duplicate declaration, which precludes
	// building the ABI; conformance never gets to vote.
	source := `%lang starknet

@external
func __validate__{syscall_ptr: felt*}(calls_len: felt, calls: felt*) {
}

@external
func __validate_declare__{syscall_ptr: felt*}(class_hash: felt) {
}

@external
func __execute__{syscall_ptr: felt*}(calls_len: felt, calls: felt*) {
}

@external
func __execute__{syscall_ptr: felt*}(calls_len: felt, calls: felt*) {
}`

	_, analysis, errs := analyzeSource(t, source, Options{IsAccountContract: true})

	requireSingleError(t, errs, errors.ErrorDuplicateDeclaration)
	assert.Nil(t, analysis.ABI)
}

func TestAnalyzeBuiltinsDirective(t *testing.T) {
	t.Run("unknown builtin", func(t *testing.T) {
		_, _, errs := analyzeSource(t, `%lang starknet
%builtins pedersen range_chek

@storage_var
func counter() -> (value: felt) {
}`, Options{})

		err := requireSingleError(t, errs, errors.ErrorGenericSemantic)
		assert.Equal(t, "Unknown builtin 'range_chek'.", err.Message)
		require.NotEmpty(t, err.Suggestions)
		assert.Equal(t, "did you mean 'range_check'?", err.Suggestions[0].Message)
	})

	t.Run("out of canonical order", func(t *testing.T) {
		_, _, errs := analyzeSource(t, `%lang starknet
%builtins range_check pedersen

@storage_var
func counter() -> (value: felt) {
}`, Options{})

		err := requireSingleError(t, errs, errors.ErrorGenericSemantic)
		assert.Equal(t, "%builtins are not declared in canonical order.", err.Message)
	})

	t.Run("canonical order passes", func(t *testing.T) {
		_, _, errs := analyzeSource(t, `%lang starknet
%builtins output pedersen range_check bitwise

@storage_var
func counter() -> (value: felt) {
}`, Options{})

		assert.Empty(t, errs)
	})
}

func TestAnalyzeUnknownDirective(t *testing.T) {
	_, _, errs := analyzeSource(t, `%lang starknet
%bultins pedersen`, Options{})

	err := requireSingleError(t, errs, errors.ErrorGenericSemantic)
	assert.Equal(t, "Unknown directive '%bultins'.", err.Message)
}

func TestAnalyzeUnknownArgumentType(t *testing.T) {
	_, _, errs := analyzeSource(t, `%lang starknet

@external
func transfer{syscall_ptr: felt*}(to: felt, amount: Uint256) {
}`, Options{})

	err := requireSingleError(t, errs, errors.ErrorUnknownType)
	assert.Equal(t, "Unknown type 'Uint256'.", err.Message)
}

func TestAnalyzeRecursiveStructInSignature(t *testing.T) {
	_, _, errs := analyzeSource(t, `%lang starknet

struct Node {
    value: felt,
    next: Node,
}

@external
func insert{syscall_ptr: felt*}(node: Node) {
}`, Options{})

	requireSingleError(t, errs, errors.ErrorRecursiveStruct)
}

func TestAnalyzeOpaqueImportInEntryPointSignature(t *testing.T) {
	// Imports outside the bundled catalog have no known layout. The ABI
	// carries the bare type string, so the declaration still checks out.
	_, analysis, errs := analyzeSource(t, `%lang starknet

from openzeppelin.token.erc20.library import TokenApproval

@external
func approve{syscall_ptr: felt*}(approval: TokenApproval) {
}`, Options{})

	assert.Empty(t, errs)
	require.NotNil(t, analysis.ABI)

	approve := analysis.ABI.GetFunction("approve")
	require.NotNil(t, approve)
	assert.Equal(t, "TokenApproval", approve.Inputs[0].Type)
}

func TestAnalyzeContractInterface(t *testing.T) {
	_, analysis, errs := analyzeSource(t, `%lang starknet
from starkware.cairo.common.uint256 import Uint256

@contract_interface
namespace IToken {
    func transfer(to: felt, amounts_len: felt, amounts: felt*) {
    }

    func balance_of(account: felt) -> (balance: Uint256) {
    }
}`, Options{})

	assert.Empty(t, errs)
	require.Contains(t, analysis.InterfaceStubs, "IToken.transfer")
	require.Contains(t, analysis.InterfaceStubs, "IToken.balance_of")

	assert.Equal(t, `assert [__calldata_ptr] = to;
let __calldata_ptr = __calldata_ptr + 1;
assert [__calldata_ptr] = amounts_len;
let __calldata_ptr = __calldata_ptr + 1;
assert_nn(amounts_len);
memcpy(__calldata_ptr, amounts, amounts_len);
let __calldata_ptr = __calldata_ptr + amounts_len;
`, encoder.Render(analysis.InterfaceStubs["IToken.transfer"]))

	assert.Equal(t, `assert [__calldata_ptr] = account;
let __calldata_ptr = __calldata_ptr + 1;
`, encoder.Render(analysis.InterfaceStubs["IToken.balance_of"]))
}

func TestAnalyzeContractInterfaceShape(t *testing.T) {
	t.Run("needs the dialect", func(t *testing.T) {
		_, _, errs := analyzeSource(t, `@contract_interface
namespace IToken {
    func transfer(to: felt) {
    }
}`, Options{})

		requireSingleError(t, errs, errors.ErrorDialectMismatch)
	})

	t.Run("members carry no decorators", func(t *testing.T) {
		_, _, errs := analyzeSource(t, `%lang starknet

@contract_interface
namespace IToken {
    @view
    func balance_of(account: felt) -> (balance: felt) {
    }
}`, Options{})

		err := requireSingleError(t, errs, errors.ErrorUnexpectedDecorator)
		assert.Equal(t, "Unexpected decorator for contract interface members.", err.Message)
	})

	t.Run("members have empty bodies", func(t *testing.T) {
		_, _, errs := analyzeSource(t, `%lang starknet

@contract_interface
namespace IToken {
    func transfer(to: felt) {
        let x = 1;
    }
}`, Options{})

		err := requireSingleError(t, errs, errors.ErrorNonEmptyBody)
		assert.Equal(t, "Contract interface members must have an empty body.", err.Message)
	})

	t.Run("duplicate members", func(t *testing.T) {
		_, _, errs := analyzeSource(t, `%lang starknet

@contract_interface
namespace IToken {
    func transfer(to: felt) {
    }

    func transfer(to: felt, amount: felt) {
    }
}`, Options{})

		requireSingleError(t, errs, errors.ErrorDuplicateDeclaration)
	})

	t.Run("unexpected namespace decorator", func(t *testing.T) {
		_, _, errs := analyzeSource(t, `%lang starknet

@external
namespace Helpers {
    func double(x: felt) -> (res: felt) {
    }
}`, Options{})

		err := requireSingleError(t, errs, errors.ErrorUnexpectedDecorator)
		assert.Equal(t, "Unexpected decorator for namespaces.", err.Message)
	})

	t.Run("plain namespaces are left alone", func(t *testing.T) {
		_, _, errs := analyzeSource(t, `%lang starknet

namespace SafeMath {
    func add{range_check_ptr}(a: felt, b: felt) -> (res: felt) {
        let res = a + b;
    }
}`, Options{})

		assert.Empty(t, errs)
	})
}

func TestAnalyzeInterfaceStubNeedsArrayLength(t *testing.T) {
	_, analysis, errs := analyzeSource(t, `%lang starknet

@contract_interface
namespace IToken {
    func batch_transfer(recipients: felt*) {
    }
}`, Options{})

	err := requireSingleError(t, errs, errors.ErrorInvalidCalldataArgument)
	assert.Equal(t,
		"Array argument 'recipients' must be preceded by a length argument named 'recipients_len' of type felt.",
		err.Message)
	assert.Empty(t, analysis.InterfaceStubs)
}

func TestAnalyzeInterfaceStubNeedsLayouts(t *testing.T) {
	// Call stubs flatten arguments into calldata, so unlike entry point
	// signatures an opaque import is not good enough here.
	_, _, errs := analyzeSource(t, `%lang starknet

from openzeppelin.token.erc20.library import TokenApproval

@contract_interface
namespace IToken {
    func approve(approval: TokenApproval) {
    }
}`, Options{})

	err := requireSingleError(t, errs, errors.ErrorUnknownType)
	assert.Contains(t, err.Notes,
		"'TokenApproval' is imported from 'openzeppelin.token.erc20.library', whose layout is not known to this front end")
}

func TestAnalyzeUnknownImportName(t *testing.T) {
	_, _, errs := analyzeSource(t, `%lang starknet
from starkware.cairo.common.math import assert_nnn`, Options{})

	err := requireSingleError(t, errs, errors.ErrorUnknownImport)
	assert.Equal(t, "Module 'starkware.cairo.common.math' has no member 'assert_nnn'.", err.Message)
	require.NotEmpty(t, err.Suggestions)
	assert.Equal(t, "did you mean 'assert_nn'?", err.Suggestions[0].Message)
}

func TestAnalyzeEntryPointAttrsSkippedOnError(t *testing.T) {
	file, _, errs := analyzeSource(t, `%lang starknet

@external
@event
func transfer(to: felt) {
}`, Options{})

	require.NotEmpty(t, errs)
	assert.Nil(t, file.Functions()[0].Attrs.EntryPoint)
}
