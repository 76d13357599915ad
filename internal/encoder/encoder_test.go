package encoder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cairn/internal/ast"
	"cairn/internal/errors"
	"cairn/internal/types"
)

func felt() types.CairoType { return types.FeltType{} }

func feltPtr() types.CairoType { return types.PointerType{Elem: types.FeltType{}} }

func uint256() types.CairoType {
	return types.StructType{Name: "Uint256", Members: []types.Member{
		{Name: "low", Type: types.FeltType{}},
		{Name: "high", Type: types.FeltType{}},
	}}
}

func arg(name string, t types.CairoType) ArgumentInfo {
	return ArgumentInfo{Name: name, CairoType: t, Location: ast.Position{Line: 1, Column: 1}}
}

func TestEncodeSingleFelt(t *testing.T) {
	elements, err := EncodeData([]ArgumentInfo{arg("x", felt())}, EncodingCalldata, true)
	require.Nil(t, err)

	assert.Equal(t, []CodeElement{
		WriteWord{Pointer: "__calldata_ptr", Expr: "x"},
		AdvancePtr{Pointer: "__calldata_ptr", Amount: "1"},
	}, elements)
}

func TestEncodeFeltsInDeclarationOrder(t *testing.T) {
	elements, err := EncodeData([]ArgumentInfo{
		arg("zebra", felt()),
		arg("apple", felt()),
	}, EncodingCalldata, true)
	require.Nil(t, err)

	assert.Equal(t, []CodeElement{
		WriteWord{Pointer: "__calldata_ptr", Expr: "zebra"},
		AdvancePtr{Pointer: "__calldata_ptr", Amount: "1"},
		WriteWord{Pointer: "__calldata_ptr", Expr: "apple"},
		AdvancePtr{Pointer: "__calldata_ptr", Amount: "1"},
	}, elements, "Arguments keep declaration order, never sorted")
}

func TestEncodeStructArgument(t *testing.T) {
	elements, err := EncodeData([]ArgumentInfo{arg("amount", uint256())}, EncodingCalldata, true)
	require.Nil(t, err)

	assert.Equal(t, []CodeElement{
		WriteWord{Pointer: "__calldata_ptr", Offset: 0, Expr: "amount.low"},
		WriteWord{Pointer: "__calldata_ptr", Offset: 1, Expr: "amount.high"},
		AdvancePtr{Pointer: "__calldata_ptr", Amount: "2"},
	}, elements, "One composite argument advances the pointer once")
}

func TestEncodeTupleArgument(t *testing.T) {
	pair := types.TupleType{Members: []types.Member{
		{Type: types.FeltType{}},
		{Type: types.FeltType{}},
	}}
	elements, err := EncodeData([]ArgumentInfo{arg("pair", pair)}, EncodingCalldata, true)
	require.Nil(t, err)

	assert.Equal(t, []CodeElement{
		WriteWord{Pointer: "__calldata_ptr", Offset: 0, Expr: "pair[0]"},
		WriteWord{Pointer: "__calldata_ptr", Offset: 1, Expr: "pair[1]"},
		AdvancePtr{Pointer: "__calldata_ptr", Amount: "2"},
	}, elements)
}

func TestEncodeNamedTupleArgument(t *testing.T) {
	point := types.TupleType{Members: []types.Member{
		{Name: "x", Type: types.FeltType{}},
		{Name: "y", Type: uint256()},
	}}
	elements, err := EncodeData([]ArgumentInfo{arg("p", point)}, EncodingCalldata, true)
	require.Nil(t, err)

	assert.Equal(t, []CodeElement{
		WriteWord{Pointer: "__calldata_ptr", Offset: 0, Expr: "p.x"},
		WriteWord{Pointer: "__calldata_ptr", Offset: 1, Expr: "p.y.low"},
		WriteWord{Pointer: "__calldata_ptr", Offset: 2, Expr: "p.y.high"},
		AdvancePtr{Pointer: "__calldata_ptr", Amount: "3"},
	}, elements, "Access paths nest through composite members")
}

func TestEncodeFeltArray(t *testing.T) {
	elements, err := EncodeData([]ArgumentInfo{
		arg("data_len", felt()),
		arg("data", feltPtr()),
	}, EncodingCalldata, true)
	require.Nil(t, err)

	assert.Equal(t, []CodeElement{
		WriteWord{Pointer: "__calldata_ptr", Expr: "data_len"},
		AdvancePtr{Pointer: "__calldata_ptr", Amount: "1"},
		AssertNonNegative{Expr: "data_len"},
		CopyWords{Pointer: "__calldata_ptr", Src: "data", Len: "data_len"},
		AdvancePtr{Pointer: "__calldata_ptr", Amount: "data_len"},
	}, elements)
}

func TestEncodeStructArrayScalesCopyLength(t *testing.T) {
	elements, err := EncodeData([]ArgumentInfo{
		arg("amounts_len", felt()),
		arg("amounts", types.PointerType{Elem: uint256()}),
	}, EncodingCalldata, true)
	require.Nil(t, err)

	assert.Contains(t, elements, CopyWords{
		Pointer: "__calldata_ptr", Src: "amounts", Len: "amounts_len * 2",
	})
	assert.Contains(t, elements, AdvancePtr{
		Pointer: "__calldata_ptr", Amount: "amounts_len * 2",
	})
}

func TestArrayWithoutLengthFails(t *testing.T) {
	_, err := EncodeData([]ArgumentInfo{arg("data", feltPtr())}, EncodingCalldata, true)
	require.NotNil(t, err)
	assert.Equal(t, errors.ErrorInvalidCalldataArgument, err.Code)
	assert.Contains(t, err.Message,
		"Array argument 'data' must be preceded by a length argument named 'data_len' of type felt.")
}

func TestArrayLengthNameMustMatch(t *testing.T) {
	_, err := EncodeData([]ArgumentInfo{
		arg("n", felt()),
		arg("data", feltPtr()),
	}, EncodingCalldata, true)
	require.NotNil(t, err)
	assert.Equal(t, errors.ErrorInvalidCalldataArgument, err.Code)
}

func TestLengthNamedFeltWithoutArrayIsScalar(t *testing.T) {
	elements, err := EncodeData([]ArgumentInfo{arg("data_len", felt())}, EncodingCalldata, true)
	require.Nil(t, err)
	assert.Equal(t, []CodeElement{
		WriteWord{Pointer: "__calldata_ptr", Expr: "data_len"},
		AdvancePtr{Pointer: "__calldata_ptr", Amount: "1"},
	}, elements, "The _len suffix alone does not make an array pair")
}

func TestArrayEncodingIgnoresNeighbors(t *testing.T) {
	array := []ArgumentInfo{arg("a_len", felt()), arg("a", feltPtr())}

	alone, err := EncodeData(array, EncodingCalldata, true)
	require.Nil(t, err)

	prefixed, err := EncodeData(append([]ArgumentInfo{arg("x", felt())}, array...), EncodingCalldata, true)
	require.Nil(t, err)

	assert.Equal(t, alone, prefixed[2:],
		"An array's emitted sequence depends only on its own shape")
}

func TestNestedPointerInStructRejected(t *testing.T) {
	withPtr := types.StructType{Name: "Span", Members: []types.Member{
		{Name: "len", Type: types.FeltType{}},
		{Name: "ptr", Type: types.PointerType{Elem: types.FeltType{}}},
	}}
	_, err := EncodeData([]ArgumentInfo{arg("span", withPtr)}, EncodingCalldata, true)
	require.NotNil(t, err)
	assert.Equal(t, errors.ErrorInvalidCalldataArgument, err.Code)
	assert.Contains(t, err.Message, "Type 'Span' of argument 'span' cannot be flattened into calldata.")
}

func TestArrayOfPointersRejected(t *testing.T) {
	_, err := EncodeData([]ArgumentInfo{
		arg("rows_len", felt()),
		arg("rows", types.PointerType{Elem: types.PointerType{Elem: types.FeltType{}}}),
	}, EncodingCalldata, true)
	require.NotNil(t, err)
	assert.Equal(t, errors.ErrorInvalidCalldataArgument, err.Code)
}

func TestReturnEncodingUsesReturnPointer(t *testing.T) {
	elements, err := EncodeData([]ArgumentInfo{arg("res", felt())}, EncodingReturn, true)
	require.Nil(t, err)

	assert.Equal(t, []CodeElement{
		WriteWord{Pointer: "__return_value_ptr", Expr: "res"},
		AdvancePtr{Pointer: "__return_value_ptr", Amount: "1"},
	}, elements)
}

func TestReturnEncodingWithoutRangeCheckSkipsLengthGuard(t *testing.T) {
	elements, err := EncodeData([]ArgumentInfo{
		arg("res_len", felt()),
		arg("res", feltPtr()),
	}, EncodingReturn, false)
	require.Nil(t, err)

	for _, element := range elements {
		_, isGuard := element.(AssertNonNegative)
		assert.False(t, isGuard, "No assert_nn without the range_check builtin")
	}
}

func TestCalldataEncodingRequiresRangeCheck(t *testing.T) {
	assert.PanicsWithError(t, "internal error: calldata encoding requires the range_check builtin", func() {
		EncodeData([]ArgumentInfo{arg("x", felt())}, EncodingCalldata, false)
	})
}

func TestNonOptionalLocation(t *testing.T) {
	pos := ast.Position{Line: 3, Column: 7}
	assert.Equal(t, pos, NonOptionalLocation(&pos))

	defer func() {
		recovered := recover()
		require.NotNil(t, recovered)
		_, ok := recovered.(*errors.InternalError)
		assert.True(t, ok, "A nil location is a caller bug, not a diagnostic")
	}()
	NonOptionalLocation(nil)
}
