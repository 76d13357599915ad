package errors

import (
	"fmt"
	"strings"

	"cairn/internal/ast"
)

// SemanticErrorBuilder provides a fluent interface for creating semantic errors with suggestions
type SemanticErrorBuilder struct {
	err CompilerError
}

// NewSemanticError creates a new semantic error builder
func NewSemanticError(code, message string, pos ast.Position) *SemanticErrorBuilder {
	return &SemanticErrorBuilder{
		err: CompilerError{
			Level:    Error,
			Code:     code,
			Message:  message,
			Position: pos,
			Length:   1,
		},
	}
}

// WithLength sets the length of the error span
func (b *SemanticErrorBuilder) WithLength(length int) *SemanticErrorBuilder {
	b.err.Length = length
	return b
}

// WithSuggestion adds a suggestion to the error
func (b *SemanticErrorBuilder) WithSuggestion(message string) *SemanticErrorBuilder {
	b.err.Suggestions = append(b.err.Suggestions, Suggestion{Message: message})
	return b
}

// WithReplacement adds a suggestion with replacement text
func (b *SemanticErrorBuilder) WithReplacement(message, replacement string, pos ast.Position, length int) *SemanticErrorBuilder {
	b.err.Suggestions = append(b.err.Suggestions, Suggestion{
		Message:     message,
		Replacement: replacement,
		Position:    pos,
		Length:      length,
	})
	return b
}

// WithNote adds a note to the error
func (b *SemanticErrorBuilder) WithNote(note string) *SemanticErrorBuilder {
	b.err.Notes = append(b.err.Notes, note)
	return b
}

// WithHelp adds help text to the error
func (b *SemanticErrorBuilder) WithHelp(help string) *SemanticErrorBuilder {
	b.err.HelpText = help
	return b
}

// Build returns the completed compiler error
func (b *SemanticErrorBuilder) Build() CompilerError {
	return b.err
}

// Shape validation errors. The subject string names the construct being
// checked ("Events", "Storage variables", ...) so one constructor serves
// every call site.

// ImplicitArgumentsNotAllowed is raised when a declaration carries an
// implicit-argument block it must not have. The position covers the
// whole block.
func ImplicitArgumentsNotAllowed(subject string, pos ast.Position, length int) CompilerError {
	return NewSemanticError(ErrorInvalidSignature,
		fmt.Sprintf("%s must have no implicit arguments.", subject), pos).
		WithLength(length).
		WithSuggestion("remove the '{...}' implicit argument block").
		Build()
}

// UnexpectedDecorator is raised for a decorator outside the allowed set
// of its call site.
func UnexpectedDecorator(subject, decorator string, pos ast.Position, allowed []string) CompilerError {
	builder := NewSemanticError(ErrorUnexpectedDecorator,
		fmt.Sprintf("Unexpected decorator for %s.", subject), pos).
		WithLength(len(decorator) + 1)

	if similar := findSimilarNames(decorator, allowed); len(similar) > 0 {
		builder = builder.WithSuggestion(fmt.Sprintf("did you mean '@%s'?", similar[0]))
	}
	if len(allowed) > 0 {
		builder = builder.WithNote(fmt.Sprintf("allowed decorators: @%s", strings.Join(allowed, ", @")))
	} else {
		builder = builder.WithNote("no decorators are allowed here")
	}

	return builder.Build()
}

// DialectMismatch is raised when a StarkNet construct appears in a file
// without the "%lang starknet" directive.
func DialectMismatch(subject string, pos ast.Position) CompilerError {
	return NewSemanticError(ErrorDialectMismatch,
		fmt.Sprintf("%s can only be used in source files that contain the \"%%lang starknet\" directive.", subject), pos).
		WithSuggestion("add '%lang starknet' at the top of the file").
		Build()
}

// ReturnValuesNotAllowed is raised when a declaration carries a return
// clause it must not have. The position covers the return type.
func ReturnValuesNotAllowed(subject string, pos ast.Position) CompilerError {
	return NewSemanticError(ErrorInvalidSignature,
		fmt.Sprintf("%s must have no return values.", subject), pos).
		WithSuggestion("remove the '->' return clause").
		Build()
}

// Account conformance errors. These are ABI-level checks, so callers
// re-position them onto the relevant declaration when one is known.

// MissingAccountEntryPoints is raised when an account contract does not
// declare exactly the reserved entry point set.
func MissingAccountEntryPoints(expected, found []string, pos ast.Position) CompilerError {
	return NewSemanticError(ErrorMissingAccountEntryPoints,
		fmt.Sprintf("Account contracts must have external functions named %s, found: %s.",
			quoteNames(expected), quoteNames(found)), pos).
		WithHelp("account contracts declare all three reserved entry points, each exactly once").
		Build()
}

// ExecuteValidateMismatch is raised when __execute__ and __validate__
// declare different calldata.
func ExecuteValidateMismatch(validateName, executeName string, pos ast.Position) CompilerError {
	return NewSemanticError(ErrorSignatureMismatch,
		fmt.Sprintf("Account contracts must have the exact same calldata for '%s' and '%s' functions.",
			validateName, executeName), pos).
		WithNote("the two signatures are compared pairwise: same names, same types, same order").
		Build()
}

// InvalidDeclareSignature is raised when __validate_declare__ does not
// take exactly `class_hash: felt`.
func InvalidDeclareSignature(declareName string, pos ast.Position) CompilerError {
	return NewSemanticError(ErrorInvalidDeclareSignature,
		fmt.Sprintf("'%s' function must have one argument `class_hash: felt`.", declareName), pos).
		Build()
}

// UnexpectedAccountEntryPoints is raised when reserved entry point names
// appear in a contract compiled without the account flag.
func UnexpectedAccountEntryPoints(found []string, pos ast.Position) CompilerError {
	return NewSemanticError(ErrorUnexpectedAccountEntryPoints,
		fmt.Sprintf("Only account contracts may have functions named %s. "+
			"Use the --account-contract flag to compile an account contract.", quoteNames(found)), pos).
		Build()
}

// DuplicateEntryPoint is raised when a reserved entry point is declared
// more than once. Conformance never silently picks one of the two.
func DuplicateEntryPoint(name string, pos ast.Position) CompilerError {
	return NewSemanticError(ErrorDuplicateEntryPoint,
		fmt.Sprintf("Entry point '%s' is declared more than once.", name), pos).
		WithLength(len(name)).
		WithSuggestion("remove or rename the duplicate declaration").
		Build()
}

// Type system errors.

// UnknownType is raised when a type name cannot be resolved.
func UnknownType(name string, pos ast.Position, similarNames []string) CompilerError {
	builder := NewSemanticError(ErrorUnknownType,
		fmt.Sprintf("Unknown type '%s'.", name), pos).
		WithLength(len(name))

	if len(similarNames) > 0 {
		if len(similarNames) == 1 {
			builder = builder.WithSuggestion(fmt.Sprintf("did you mean '%s'?", similarNames[0]))
		} else {
			builder = builder.WithSuggestion(fmt.Sprintf("did you mean one of: '%s'?", strings.Join(similarNames, "', '")))
		}
	}

	return builder.Build()
}

// RecursiveStruct is raised when a struct contains itself and therefore
// has no finite size.
func RecursiveStruct(name string, pos ast.Position) CompilerError {
	return NewSemanticError(ErrorRecursiveStruct,
		fmt.Sprintf("Struct '%s' contains itself and has no finite size.", name), pos).
		WithLength(len(name)).
		WithSuggestion(fmt.Sprintf("use a pointer member ('%s*') to break the cycle", name)).
		Build()
}

// UnknownImport is raised when a from-import names something a bundled
// library module does not export. Imports from modules outside the
// bundled catalog are never checked.
func UnknownImport(name, modulePath string, pos ast.Position, similarNames []string) CompilerError {
	builder := NewSemanticError(ErrorUnknownImport,
		fmt.Sprintf("Module '%s' has no member '%s'.", modulePath, name), pos).
		WithLength(len(name))

	if len(similarNames) > 0 {
		builder = builder.WithSuggestion(fmt.Sprintf("did you mean '%s'?", similarNames[0]))
	}

	return builder.Build()
}

// Encoder errors.

// MissingLengthArgument is raised for an array argument that is not
// immediately preceded by its felt-typed length companion.
func MissingLengthArgument(arrayName, lenName string, pos ast.Position) CompilerError {
	return NewSemanticError(ErrorInvalidCalldataArgument,
		fmt.Sprintf("Array argument '%s' must be preceded by a length argument named '%s' of type felt.",
			arrayName, lenName), pos).
		WithLength(len(arrayName)).
		Build()
}

// UnsupportedCalldataType is raised when an argument nests a pointer
// inside a composite type. Pointer values are memory addresses with no
// meaning across the call boundary, so they cannot be flattened.
func UnsupportedCalldataType(argName, typeName string, pos ast.Position) CompilerError {
	return NewSemanticError(ErrorInvalidCalldataArgument,
		fmt.Sprintf("Type '%s' of argument '%s' cannot be flattened into calldata.", typeName, argName), pos).
		WithLength(len(argName)).
		WithNote("arrays are passed as a felt length followed by a pointer; nested pointers are not supported").
		Build()
}

// Declaration shape errors used by the preprocessor.

// NonEmptyBody is raised for declarations whose bodies must stay empty.
func NonEmptyBody(subject string, pos ast.Position) CompilerError {
	return NewSemanticError(ErrorNonEmptyBody,
		fmt.Sprintf("%s must have an empty body.", subject), pos).
		Build()
}

// DuplicateDeclaration creates an error for duplicate declarations
func DuplicateDeclaration(name string, pos ast.Position) CompilerError {
	return NewSemanticError(ErrorDuplicateDeclaration, fmt.Sprintf("duplicate declaration: %s", name), pos).
		WithLength(len(name)).
		WithSuggestion(fmt.Sprintf("rename the duplicate '%s' to a unique name", name)).
		WithNote("identifiers must be unique within their scope").
		Build()
}

// Helper functions

func quoteNames(names []string) string {
	if len(names) == 0 {
		return "[]"
	}
	return "['" + strings.Join(names, "', '") + "']"
}

func findSimilarNames(target string, candidates []string) []string {
	var similar []string

	for _, candidate := range candidates {
		if levenshteinDistance(target, candidate) <= 2 && len(candidate) > 2 {
			similar = append(similar, candidate)
		}
	}

	return similar
}

// FindSimilarNames exposes the typo heuristic to other packages that
// build suggestions, such as the type resolver.
func FindSimilarNames(target string, candidates []string) []string {
	return findSimilarNames(target, candidates)
}

// Simple Levenshtein distance implementation for finding similar names
func levenshteinDistance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	// Create matrix
	matrix := make([][]int, len(a)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(b)+1)
	}

	// Initialize first row and column
	for i := 0; i <= len(a); i++ {
		matrix[i][0] = i
	}
	for j := 0; j <= len(b); j++ {
		matrix[0][j] = j
	}

	// Fill the matrix
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			cost := 0
			if a[i-1] != b[j-1] {
				cost = 1
			}

			matrix[i][j] = min3(
				matrix[i-1][j]+1,      // deletion
				matrix[i][j-1]+1,      // insertion
				matrix[i-1][j-1]+cost, // substitution
			)
		}
	}

	return matrix[len(a)][len(b)]
}

func min3(a, b, c int) int {
	if a < b {
		if a < c {
			return a
		}
		return c
	}
	if b < c {
		return b
	}
	return c
}
