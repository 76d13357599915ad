package errors

// Error codes for the Cairn compiler
// These codes are used in error messages and documentation
// to provide consistent error identification across the toolchain.
//
// Error code ranges:
// E0001-E0099: Semantic analysis errors
// E0100-E0199: Parser errors
// E0200-E0299: Type system errors
// E0300-E0399: Import/module errors
// E0400-E0499: Contract-specific errors
// E0500-E0599: Reserved for future use
// E0800-E0899: Warning codes

const (
	// Semantic analysis errors (E0001-E0099)

	// E0001: General semantic errors without a dedicated code
	ErrorGenericSemantic = "E0001"

	// Type system errors (E0200-E0299)

	// E0201: Type name resolution errors
	ErrorUnknownType = "E0201"

	// E0202: Struct definitions that contain themselves
	ErrorRecursiveStruct = "E0202"

	// Import/module errors (E0300-E0399)

	// E0301: Import of a name a bundled library module does not export
	ErrorUnknownImport = "E0301"

	// Contract-specific errors (E0400-E0499)

	// E0401: Entry point signature shape violations
	ErrorInvalidSignature = "E0401"

	// E0402: Decorator not allowed on this kind of function
	ErrorUnexpectedDecorator = "E0402"

	// E0403: Missing or wrong %lang directive
	ErrorDialectMismatch = "E0403"

	// E0404: Account contract missing reserved entry points
	ErrorMissingAccountEntryPoints = "E0404"

	// E0405: __validate__/__execute__ calldata disagreement
	ErrorSignatureMismatch = "E0405"

	// E0406: __validate_declare__ signature violations
	ErrorInvalidDeclareSignature = "E0406"

	// E0407: Reserved entry point names outside account contracts
	ErrorUnexpectedAccountEntryPoints = "E0407"

	// E0408: Reserved entry point declared more than once
	ErrorDuplicateEntryPoint = "E0408"

	// E0409: Array argument without its length companion
	ErrorInvalidCalldataArgument = "E0409"

	// E0410: Declaration whose body must stay empty has statements
	ErrorNonEmptyBody = "E0410"

	// E0411: Duplicate type declarations
	ErrorDuplicateDeclaration = "E0411"
)

// GetErrorDescription returns a human-readable description of the error code
func GetErrorDescription(code string) string {
	switch code {
	case ErrorGenericSemantic:
		return "Semantic analysis error without a dedicated code"
	case ErrorUnknownType:
		return "Type name cannot be resolved against the declared identifiers"
	case ErrorRecursiveStruct:
		return "Struct definition contains itself and has no finite size"
	case ErrorUnknownImport:
		return "Name is not exported by the library module"
	case ErrorInvalidSignature:
		return "Entry point signature violates the required shape"
	case ErrorUnexpectedDecorator:
		return "Decorator is not allowed on this kind of function"
	case ErrorDialectMismatch:
		return "Construct requires the %lang starknet directive"
	case ErrorMissingAccountEntryPoints:
		return "Account contract does not declare all reserved entry points"
	case ErrorSignatureMismatch:
		return "__validate__ and __execute__ declare different calldata"
	case ErrorInvalidDeclareSignature:
		return "__validate_declare__ must take exactly class_hash: felt"
	case ErrorUnexpectedAccountEntryPoints:
		return "Reserved entry point names are only allowed in account contracts"
	case ErrorDuplicateEntryPoint:
		return "Reserved entry point is declared more than once"
	case ErrorInvalidCalldataArgument:
		return "Array argument is missing its length companion"
	case ErrorNonEmptyBody:
		return "Declaration body must be empty"
	case ErrorDuplicateDeclaration:
		return "Duplicate declaration found"
	default:
		return "Unknown error code"
	}
}

// IsWarning returns true if the error code represents a warning rather than an error
func IsWarning(code string) bool {
	return code >= "E0800" && code < "E0900" || code[0] == 'W'
}

// GetErrorCategory returns the category of the error based on its code
func GetErrorCategory(code string) string {
	switch {
	case code >= "E0001" && code < "E0100":
		return "Semantic Analysis"
	case code >= "E0100" && code < "E0200":
		return "Parser"
	case code >= "E0200" && code < "E0300":
		return "Type System"
	case code >= "E0300" && code < "E0400":
		return "Import/Module"
	case code >= "E0400" && code < "E0500":
		return "Contract"
	case code >= "E0800" && code < "E0900":
		return "Warning"
	case code[0] == 'W':
		return "Warning"
	default:
		return "Unknown"
	}
}
