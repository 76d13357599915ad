package semantic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cairn/internal/ast"
	"cairn/internal/errors"
	"cairn/internal/parser"
)

func parseFunctions(t *testing.T, source string) []*ast.FunctionDecl {
	t.Helper()

	file, parseErrors, scanErrors := parser.ParseSource("test.cairo", source)
	require.Empty(t, parseErrors, "Fixture should parse cleanly")
	require.Empty(t, scanErrors, "Fixture should scan cleanly")
	return file.Functions()
}

func parseFunction(t *testing.T, source string) *ast.FunctionDecl {
	t.Helper()

	fns := parseFunctions(t, source)
	require.Len(t, fns, 1)
	return fns[0]
}

func TestVerifyNoImplicitArgumentsAcceptsPlainFunction(t *testing.T) {
	fn := parseFunction(t, `func transfer(to: felt, amount: felt) {
}`)

	assert.Nil(t, VerifyNoImplicitArguments(fn, "Events"))
}

func TestVerifyNoImplicitArgumentsAcceptsEmptyBlock(t *testing.T) {
	fn := parseFunction(t, `func transfer{}(to: felt) {
}`)

	assert.Nil(t, VerifyNoImplicitArguments(fn, "Events"))
}

func TestVerifyNoImplicitArgumentsRejectsBlock(t *testing.T) {
	fn := parseFunction(t, `@event
func Transfer{syscall_ptr: felt*, range_check_ptr}(from_: felt) {
}`)

	err := VerifyNoImplicitArguments(fn, "Events")
	require.NotNil(t, err)
	assert.Equal(t, errors.ErrorInvalidSignature, err.Code)
	assert.Equal(t, "Events must have no implicit arguments.", err.Message)

	// The error underlines the whole brace block.
	assert.Equal(t, fn.ImplicitArgs.Pos, err.Position)
	assert.Equal(t, fn.ImplicitArgs.EndPos.Offset-fn.ImplicitArgs.Pos.Offset, err.Length)
}

func TestVerifyDecoratorsAcceptsAllowedSubset(t *testing.T) {
	fn := parseFunction(t, `@external
@raw_output
func dispatch(selector: felt) {
}`)

	assert.Nil(t, VerifyDecorators(fn, entryPointDecorators, "external functions"))
}

func TestVerifyDecoratorsRejectsFirstOffender(t *testing.T) {
	fn := parseFunction(t, `@storage_var
@constructor
@event
func Transfer(value: felt) {
}`)

	err := VerifyDecorators(fn, eventDecorators, "events")
	require.NotNil(t, err)
	assert.Equal(t, errors.ErrorUnexpectedDecorator, err.Code)
	assert.Equal(t, "Unexpected decorator for events.", err.Message)
	assert.Equal(t, fn.Decorators[0].Pos, err.Position, "the first offender in declaration order is cited")
}

func TestVerifyDecoratorsEmptyAllowedSetRejectsEverything(t *testing.T) {
	fn := parseFunction(t, `@view
func get_balance(account: felt) -> (balance: felt) {
}`)

	err := VerifyDecorators(fn, interfaceMemberDecorators, "contract interface members")
	require.NotNil(t, err)
	assert.Equal(t, "Unexpected decorator for contract interface members.", err.Message)
	assert.Contains(t, err.Notes, "no decorators are allowed here")
}

func TestVerifyDialect(t *testing.T) {
	assert.Nil(t, VerifyDialect("starknet", ast.Position{Line: 3}, "@external"))

	err := VerifyDialect("", ast.Position{Line: 3, Column: 1}, "@external")
	require.NotNil(t, err)
	assert.Equal(t, errors.ErrorDialectMismatch, err.Code)
	assert.Equal(t, `@external can only be used in source files that contain the "%lang starknet" directive.`, err.Message)
	assert.Equal(t, 3, err.Position.Line)

	assert.NotNil(t, VerifyDialect("cairo", ast.Position{}, "@storage_var"),
		"a different dialect is as wrong as no dialect")
}

func TestVerifyNoReturnValuesAcceptsAbsentClause(t *testing.T) {
	fn := parseFunction(t, `func ping() {
}`)

	assert.Nil(t, VerifyNoReturnValues(fn, "Events"))
}

func TestVerifyNoReturnValuesAcceptsUnitTuple(t *testing.T) {
	fn := parseFunction(t, `func ping() -> () {
}`)

	assert.Nil(t, VerifyNoReturnValues(fn, "Events"))
}

func TestVerifyNoReturnValuesRejectsReturnClause(t *testing.T) {
	fn := parseFunction(t, `@event
func Transfer(value: felt) -> (res: felt) {
}`)

	err := VerifyNoReturnValues(fn, "Events")
	require.NotNil(t, err)
	assert.Equal(t, errors.ErrorInvalidSignature, err.Code)
	assert.Equal(t, "Events must have no return values.", err.Message)
	assert.Equal(t, fn.Returns.NodePos(), err.Position)
}
