package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"cairn/internal/errors"
	"cairn/internal/parser"
)

// ConvertParseErrors transforms parser errors into LSP diagnostics for IDE display.
// These provide immediate feedback about syntax issues like missing braces,
// missing semicolons after constants, and other declaration parsing problems.
func ConvertParseErrors(parseErrors []parser.ParseError) []protocol.Diagnostic {
	var diagnostics []protocol.Diagnostic

	for _, parseErr := range parseErrors {
		diagnostic := protocol.Diagnostic{
			Range: protocol.Range{
				Start: protocol.Position{
					Line:      uint32(parseErr.Position.Line - 1),   // Convert to 0-based indexing
					Character: uint32(parseErr.Position.Column - 1), // Convert to 0-based indexing
				},
				End: protocol.Position{
					Line:      uint32(parseErr.Position.Line - 1),
					Character: uint32(parseErr.Position.Column + 5), // Rough span for visibility
				},
			},
			Severity: ptrSeverity(protocol.DiagnosticSeverityError),
			Source:   ptrString("cairn-parser"),
			Message:  parseErr.Message,
		}
		diagnostics = append(diagnostics, diagnostic)
	}

	return diagnostics
}

// ConvertScanErrors transforms scanner errors into LSP diagnostics for IDE display.
// These handle tokenization issues like invalid characters, unterminated strings, etc.
func ConvertScanErrors(scanErrors []parser.ScanError) []protocol.Diagnostic {
	var diagnostics []protocol.Diagnostic

	for _, scanErr := range scanErrors {
		// Use the Length field if available, otherwise default span
		endChar := uint32(scanErr.Position.Column - 1 + scanErr.Length)
		if scanErr.Length == 0 {
			endChar = uint32(scanErr.Position.Column + 3) // Default small span
		}

		diagnostic := protocol.Diagnostic{
			Range: protocol.Range{
				Start: protocol.Position{
					Line:      uint32(scanErr.Position.Line - 1),   // Convert to 0-based indexing
					Character: uint32(scanErr.Position.Column - 1), // Convert to 0-based indexing
				},
				End: protocol.Position{
					Line:      uint32(scanErr.Position.Line - 1),
					Character: endChar,
				},
			},
			Severity: ptrSeverity(protocol.DiagnosticSeverityError),
			Source:   ptrString("cairn-scanner"),
			Message:  scanErr.Message,
		}
		diagnostics = append(diagnostics, diagnostic)
	}

	return diagnostics
}

// ConvertSemanticErrors transforms declaration check errors into LSP
// diagnostics. The error code is folded into the message text since most
// clients render Diagnostic.Code far less prominently than the terminal
// reporter renders its header line.
func ConvertSemanticErrors(compilerErrors []errors.CompilerError) []protocol.Diagnostic {
	var diagnostics []protocol.Diagnostic

	for _, compErr := range compilerErrors {
		line := compErr.Position.Line - 1
		if line < 0 {
			line = 0
		}
		character := compErr.Position.Column - 1
		if character < 0 {
			character = 0
		}

		length := compErr.Length
		if length <= 0 {
			length = 1
		}

		message := compErr.Message
		if compErr.Code != "" {
			message = compErr.Code + ": " + message
		}

		diagnostic := protocol.Diagnostic{
			Range: protocol.Range{
				Start: protocol.Position{
					Line:      uint32(line),
					Character: uint32(character),
				},
				End: protocol.Position{
					Line:      uint32(line),
					Character: uint32(character + length),
				},
			},
			Severity: ptrSeverity(severityFor(compErr.Level)),
			Source:   ptrString("cairn-semantic"),
			Message:  message,
		}
		diagnostics = append(diagnostics, diagnostic)
	}

	return diagnostics
}

func severityFor(level errors.ErrorLevel) protocol.DiagnosticSeverity {
	switch level {
	case errors.Warning:
		return protocol.DiagnosticSeverityWarning
	case errors.Note, errors.Help:
		return protocol.DiagnosticSeverityInformation
	default:
		return protocol.DiagnosticSeverityError
	}
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}

func ptrString(s string) *string {
	return &s
}
