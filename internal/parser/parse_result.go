package parser

import "cairn/internal/ast"

// ParseResult bundles everything one parse produces so callers that
// cache parses, such as the language server's document store, can
// hand it around as a unit.
type ParseResult struct {
	File        *ast.ContractFile
	ParseErrors []ParseError
	ScanErrors  []ScanError
}

// Parse wraps ParseSource for callers that prefer a single value.
func Parse(path string, source string) *ParseResult {
	file, parseErrors, scanErrors := ParseSource(path, source)

	return &ParseResult{
		File:        file,
		ParseErrors: parseErrors,
		ScanErrors:  scanErrors,
	}
}

// Clean reports whether the source scanned and parsed without errors.
// Declaration checks only run on clean parses; a broken token stream
// would turn every downstream diagnostic into noise.
func (pr *ParseResult) Clean() bool {
	return len(pr.ParseErrors) == 0 && len(pr.ScanErrors) == 0
}
