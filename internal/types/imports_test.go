package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cairn/internal/ast"
	"cairn/internal/errors"
	"cairn/internal/parser"
)

// processImports runs every import statement of the fixture through a
// fresh registry and returns the registry plus the collected errors.
func processImports(t *testing.T, source string) (*TypeRegistry, []errors.CompilerError) {
	t.Helper()

	file, parseErrors, scanErrors := parser.ParseSource("test.cairo", source)
	require.Empty(t, parseErrors, "fixture should parse cleanly")
	require.Empty(t, scanErrors, "fixture should scan cleanly")

	registry := NewTypeRegistry()
	importParser := NewImportParser(registry)

	var errs []errors.CompilerError
	for _, item := range file.Items {
		if imp, ok := item.(*ast.ImportStmt); ok {
			errs = append(errs, importParser.ProcessImport(imp)...)
		}
	}
	return registry, errs
}

func TestProcessImportCatalogTypeCarriesLayout(t *testing.T) {
	registry, errs := processImports(t,
		`from starkware.cairo.common.uint256 import Uint256`)

	assert.Empty(t, errs)
	require.True(t, registry.IsImportedType("Uint256"))

	imported := registry.GetImportedType("Uint256")
	assert.Equal(t, "starkware.cairo.common.uint256", imported.ModulePath)
	assert.True(t, Equal(uint256Layout(), imported.Layout))
}

func TestProcessImportPointerMembersInCatalogLayout(t *testing.T) {
	registry, errs := processImports(t,
		`from starkware.starknet.common.syscalls import TxInfo`)

	assert.Empty(t, errs)
	layout, ok := registry.GetImportedType("TxInfo").Layout.(StructType)
	require.True(t, ok)
	require.Len(t, layout.Members, 8)

	assert.Equal(t, "signature", layout.Members[4].Name)
	assert.True(t, Equal(PointerType{Elem: FeltType{}}, layout.Members[4].Type))
	assert.Equal(t, 8, layout.SizeInFelts())
}

func TestProcessImportAliasRenamesVisibleName(t *testing.T) {
	registry, errs := processImports(t,
		`from starkware.cairo.common.cairo_builtins import HashBuiltin as Hash`)

	assert.Empty(t, errs)
	assert.True(t, registry.IsImportedType("Hash"))
	assert.False(t, registry.IsImportedType("HashBuiltin"),
		"the original name stays hidden behind the alias")

	layout, ok := registry.GetImportedType("Hash").Layout.(StructType)
	require.True(t, ok)
	assert.Equal(t, "HashBuiltin", layout.Name, "the layout keeps the library's own name")
}

func TestProcessImportFunctionsAndConstantsAreNotTypes(t *testing.T) {
	registry, errs := processImports(t, `from starkware.cairo.common.math import assert_nn
from starkware.cairo.common.bool import TRUE, FALSE`)

	assert.Empty(t, errs)
	assert.False(t, registry.IsImportedType("assert_nn"))
	assert.False(t, registry.IsImportedType("TRUE"))
	assert.False(t, registry.IsImportedType("FALSE"))
}

func TestProcessImportUnknownMemberSuggests(t *testing.T) {
	_, errs := processImports(t,
		`from starkware.cairo.common.math import assert_nnn`)

	require.Len(t, errs, 1)
	assert.Equal(t, errors.ErrorUnknownImport, errs[0].Code)
	assert.Equal(t, "Module 'starkware.cairo.common.math' has no member 'assert_nnn'.", errs[0].Message)
	assert.Equal(t, 1, errs[0].Position.Line)
	assert.Equal(t, len("assert_nnn"), errs[0].Length)

	require.Len(t, errs[0].Suggestions, 1)
	assert.Equal(t, "did you mean 'assert_nn'?", errs[0].Suggestions[0].Message)
}

func TestProcessImportReportsEachBadItem(t *testing.T) {
	registry, errs := processImports(t,
		`from starkware.cairo.common.uint256 import Uint256, uint256_mul`)

	// The good item still lands even when a sibling fails.
	assert.True(t, registry.IsImportedType("Uint256"))
	require.Len(t, errs, 1)
	assert.Equal(t, errors.ErrorUnknownImport, errs[0].Code)
	assert.Contains(t, errs[0].Message, "'uint256_mul'")
}

func TestProcessImportUnknownModuleAcceptedOpaquely(t *testing.T) {
	registry, errs := processImports(t,
		`from my.project.structs import Config, Limits as Caps`)

	assert.Empty(t, errs, "modules outside the bundled catalog are never checked")

	require.True(t, registry.IsImportedType("Config"))
	config := registry.GetImportedType("Config")
	assert.Equal(t, "my.project.structs", config.ModulePath)
	assert.Nil(t, config.Layout)

	assert.True(t, registry.IsImportedType("Caps"))
	assert.False(t, registry.IsImportedType("Limits"))
}
