package semantic

import (
	"cairn/internal/ast"
	"cairn/internal/errors"
)

// Allowed-decorator sets per declaration site. Defined once here so
// call sites cannot drift apart.
var (
	entryPointDecorators = []string{"external", "view", "constructor", "l1_handler", "raw_input", "raw_output"}
	eventDecorators      = []string{"event"}
	storageVarDecorators = []string{"storage_var"}
	namespaceDecorators  = []string{"contract_interface"}

	// Interface members carry no decorators of their own; the namespace
	// holds @contract_interface.
	interfaceMemberDecorators = []string{}
)

// VerifyNoImplicitArguments fails when the declaration carries a
// non-empty implicit-argument block. The error spans the whole block.
func VerifyNoImplicitArguments(fn *ast.FunctionDecl, subject string) *errors.CompilerError {
	if fn.ImplicitArgs == nil || len(fn.ImplicitArgs.Args) == 0 {
		return nil
	}

	block := fn.ImplicitArgs
	err := errors.ImplicitArgumentsNotAllowed(subject, block.Pos, spanLength(block.Pos, block.EndPos))
	return &err
}

// VerifyDecorators fails on the first decorator, in declaration order,
// outside the allowed set.
func VerifyDecorators(fn *ast.FunctionDecl, allowed []string, subject string) *errors.CompilerError {
	return checkDecorators(fn.Decorators, allowed, subject)
}

func checkDecorators(decorators []ast.Decorator, allowed []string, subject string) *errors.CompilerError {
	for _, dec := range decorators {
		if !decoratorAllowed(dec.Name.Value, allowed) {
			err := errors.UnexpectedDecorator(subject, dec.Name.Value, dec.Pos, allowed)
			return &err
		}
	}
	return nil
}

// VerifyDialect fails unless the declared dialect is the StarkNet one.
// The position points at the construct that demands the dialect, not at
// the directive, which may be absent entirely.
func VerifyDialect(declaredLang string, pos ast.Position, subject string) *errors.CompilerError {
	if declaredLang == ast.LangStarknet {
		return nil
	}
	err := errors.DialectMismatch(subject, pos)
	return &err
}

// VerifyNoReturnValues fails when the declaration has a return clause
// that is anything other than the empty tuple. Wrapper generation adds
// "-> ()" freely, so the empty tuple reads as "no return values".
func VerifyNoReturnValues(fn *ast.FunctionDecl, subject string) *errors.CompilerError {
	if fn.Returns == nil || ast.IsUnitTuple(fn.Returns) {
		return nil
	}
	err := errors.ReturnValuesNotAllowed(subject, fn.Returns.NodePos())
	return &err
}

func decoratorAllowed(name string, allowed []string) bool {
	for _, candidate := range allowed {
		if name == candidate {
			return true
		}
	}
	return false
}

// spanLength converts a Pos/EndPos pair into the column span the error
// reporter underlines.
func spanLength(pos, end ast.Position) int {
	if end.Offset <= pos.Offset {
		return 1
	}
	return end.Offset - pos.Offset
}
