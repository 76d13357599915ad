package semantic

import (
	"cairn/internal/abi"
	"cairn/internal/ast"
	"cairn/internal/errors"
)

// VerifyAccountContract cross-checks the reserved account entry points
// against the built ABI. Account contracts must declare all three with
// conforming signatures; other contracts must declare none of them.
// The returned error carries no position of its own: the ABI has none,
// and the analyzer re-positions it onto the offending declaration when
// it knows one.
func VerifyAccountContract(contractABI abi.Contract, isAccountContract bool) *errors.CompilerError {
	accountEntryPoints := make(map[string]*abi.FunctionEntry)

	for _, entry := range contractABI.Functions() {
		if entry.Type != abi.EntryTypeFunction || !abi.IsAccountEntryPointName(entry.Name) {
			continue
		}
		if accountEntryPoints[entry.Name] != nil {
			// Letting the second declaration win would slip past the
			// calldata-equality check below.
			err := errors.DuplicateEntryPoint(entry.Name, ast.Position{})
			return &err
		}
		accountEntryPoints[entry.Name] = entry
	}

	if !isAccountContract {
		if len(accountEntryPoints) > 0 {
			err := errors.UnexpectedAccountEntryPoints(foundNames(accountEntryPoints), ast.Position{})
			return &err
		}
		return nil
	}

	// Only reserved names are collected, so a size match means the sets
	// are equal.
	if len(accountEntryPoints) != len(abi.AccountEntryPointNames) {
		err := errors.MissingAccountEntryPoints(abi.AccountEntryPointNames, foundNames(accountEntryPoints), ast.Position{})
		return &err
	}

	validate := accountEntryPoints[abi.ValidateEntryPointName]
	execute := accountEntryPoints[abi.ExecuteEntryPointName]
	validateDeclare := accountEntryPoints[abi.ValidateDeclareEntryPointName]

	if !variablesEqual(execute.Inputs, validate.Inputs) {
		err := errors.ExecuteValidateMismatch(abi.ValidateEntryPointName, abi.ExecuteEntryPointName, ast.Position{})
		return &err
	}

	if !variablesEqual(validateDeclare.Inputs, []abi.Variable{{Name: "class_hash", Type: "felt"}}) {
		err := errors.InvalidDeclareSignature(abi.ValidateDeclareEntryPointName, ast.Position{})
		return &err
	}

	return nil
}

// foundNames lists the collected reserved names in canonical order so
// error messages stay deterministic.
func foundNames(entries map[string]*abi.FunctionEntry) []string {
	names := make([]string, 0, len(entries))
	for _, name := range abi.AccountEntryPointNames {
		if entries[name] != nil {
			names = append(names, name)
		}
	}
	return names
}

// variablesEqual is deep, order-sensitive equality over {name, type}
// lists. Arity alone is not enough: signatures must agree on names and
// types pairwise.
func variablesEqual(a, b []abi.Variable) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
