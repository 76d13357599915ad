package parser

import (
	"fmt"
	"os"

	"cairn/internal/ast"
)

// ParseSource scans and parses one contract source file.
func ParseSource(path string, source string) (*ast.ContractFile, []ParseError, []ScanError) {
	scanner := NewScanner(source)
	tokens := scanner.ScanTokens()

	parser := NewParser(path, tokens)
	contract := parser.ParseContractFile()

	return contract, parser.errors, scanner.errors
}

// ParseFile reads a contract from disk and parses it.
func ParseFile(path string) (*ast.ContractFile, []ParseError, []ScanError, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to read file: %w", err)
	}

	contract, parseErrors, scanErrors := ParseSource(path, string(source))
	return contract, parseErrors, scanErrors, nil
}
