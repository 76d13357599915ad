package errors

import (
	"strings"
	"testing"

	"cairn/internal/ast"

	"github.com/stretchr/testify/assert"
)

func TestErrorReporter(t *testing.T) {
	source := `%lang starknet

@event
func Transfer{syscall_ptr: felt*}(from_: felt, to: felt, value: felt) {
}`

	reporter := NewErrorReporter("test.cairo", source)

	err := ImplicitArgumentsNotAllowed("Events", ast.Position{Line: 4, Column: 14}, 21)
	formatted := reporter.FormatError(err)

	// Should contain error level and code
	assert.Contains(t, formatted, "error["+ErrorInvalidSignature+"]")
	assert.Contains(t, formatted, "Events must have no implicit arguments.")

	// Should contain location
	assert.Contains(t, formatted, "test.cairo:4:14")

	// Should contain the suggestion
	assert.Contains(t, formatted, "implicit argument block")
}

func TestUnexpectedDecoratorSuggestions(t *testing.T) {
	pos := ast.Position{Line: 1, Column: 1}

	// A typo close to an allowed decorator should produce a suggestion
	err := UnexpectedDecorator("external functions", "externl", pos, []string{"external", "view", "raw_input", "raw_output"})
	assert.Equal(t, ErrorUnexpectedDecorator, err.Code)
	assert.Contains(t, err.Message, "Unexpected decorator for external functions.")
	assert.NotEmpty(t, err.Suggestions)
	assert.Contains(t, err.Suggestions[0].Message, "did you mean '@external'")

	// An empty allowed set still explains itself through the note
	err = UnexpectedDecorator("contract interface functions", "external", pos, nil)
	assert.Empty(t, err.Suggestions)
	assert.Contains(t, err.Notes[0], "no decorators are allowed here")
}

func TestDialectMismatchMessage(t *testing.T) {
	err := DialectMismatch("External decorators", ast.Position{Line: 2, Column: 1})
	assert.Equal(t, ErrorDialectMismatch, err.Code)
	assert.Equal(t, `External decorators can only be used in source files that contain the "%lang starknet" directive.`, err.Message)
}

func TestAccountErrorMessages(t *testing.T) {
	pos := ast.Position{}

	err := MissingAccountEntryPoints(
		[]string{"__validate__", "__execute__", "__validate_declare__"},
		[]string{"__validate__"}, pos)
	assert.Equal(t, ErrorMissingAccountEntryPoints, err.Code)
	assert.Contains(t, err.Message, "Account contracts must have external functions named")
	assert.Contains(t, err.Message, "'__validate_declare__'")
	assert.Contains(t, err.Message, "found: ['__validate__']")

	err = ExecuteValidateMismatch("__validate__", "__execute__", pos)
	assert.Equal(t, "Account contracts must have the exact same calldata for '__validate__' and '__execute__' functions.", err.Message)

	err = InvalidDeclareSignature("__validate_declare__", pos)
	assert.Equal(t, "'__validate_declare__' function must have one argument `class_hash: felt`.", err.Message)

	err = UnexpectedAccountEntryPoints([]string{"__execute__"}, pos)
	assert.Contains(t, err.Message, "Only account contracts may have functions named ['__execute__']")
	assert.Contains(t, err.Message, "--account-contract flag")
}

func TestErrorCodeMetadata(t *testing.T) {
	assert.Equal(t, "Contract", GetErrorCategory(ErrorDuplicateEntryPoint))
	assert.Equal(t, "Type System", GetErrorCategory(ErrorUnknownType))
	assert.False(t, IsWarning(ErrorInvalidSignature))

	desc := GetErrorDescription(ErrorInvalidDeclareSignature)
	assert.True(t, strings.Contains(desc, "class_hash"))
}

func TestInternalfPanicsWithInternalError(t *testing.T) {
	defer func() {
		r := recover()
		assert.NotNil(t, r, "Internalf should panic")
		ie, ok := r.(*InternalError)
		assert.True(t, ok, "panic value should be *InternalError")
		assert.Contains(t, ie.Error(), "missing location")
	}()

	Internalf("missing location for argument %q", "amount")
}
