package lsp

import (
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"cairn/internal/abi"
	"cairn/internal/ast"
	"cairn/internal/parser"
	"cairn/internal/semantic"
)

// Define the set of supported semantic token types (as required by the LSP spec)
var SemanticTokenTypes = []string{
	"namespace",
	"type",
	"typeParameter",
	"function",
	"variable",
	"parameter",
	"property",
	"keyword",
	"number",
	"operator",
	"modifier",
}

// Define the set of supported semantic token modifiers (for extra tagging like declaration, readonly, etc.)
var SemanticTokenModifiers = []string{
	"declaration",
	"definition",
	"readonly",
	"static",
	"deprecated",
	"abstract",
}

// CairnHandler implements the LSP server handlers for Cairo contract
// sources. The editor pushes document snapshots on open and change;
// the latest parse of each one is cached so semantic token requests
// never reparse or touch the disk for an open file.
type CairnHandler struct {
	mu      sync.RWMutex
	content map[string]string
	parses  map[string]*parser.ParseResult
}

// NewCairnHandler creates and returns a new CairnHandler instance
func NewCairnHandler() *CairnHandler {
	return &CairnHandler{
		content: make(map[string]string),
		parses:  make(map[string]*parser.ParseResult),
	}
}

// Initialize responds to the LSP client's initialize request and advertises the server's capabilities
func (h *CairnHandler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Println("LSP Initialize called")

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true), // notify on open/close events
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
			CompletionProvider: &protocol.CompletionOptions{
				ResolveProvider: ptrBool(false), // no additional detail resolution yet
			},
			SemanticTokensProvider: &protocol.SemanticTokensOptions{
				Legend: protocol.SemanticTokensLegend{
					TokenTypes:     SemanticTokenTypes,
					TokenModifiers: SemanticTokenModifiers,
				},
				Full: ptrBool(true), // support full-document semantic token requests
			},
		},
	}, nil
}

// Initialized is called after the client receives the server's capabilities and completes initialization
func (h *CairnHandler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Println("Cairn LSP Initialized")
	return nil
}

// Shutdown handles the LSP shutdown request
func (h *CairnHandler) Shutdown(ctx *glsp.Context) error {
	log.Println("Cairn LSP Shutdown")
	return nil
}

// SetTrace handles $/setTrace notifications; trace output is not emitted
func (h *CairnHandler) SetTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	return nil
}

// TextDocumentDidOpen handles file open notifications from the editor
func (h *CairnHandler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	log.Printf("Opened file: %s\n", params.TextDocument.URI)

	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return fmt.Errorf("failed to convert URI %s: %w", params.TextDocument.URI, err)
	}

	diagnostics := h.updateDocument(path, params.TextDocument.Text)
	sendDiagnosticNotification(ctx, params.TextDocument.URI, diagnostics)

	return nil
}

// TextDocumentDidClose handles file close notifications from the editor
func (h *CairnHandler) TextDocumentDidClose(context *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	log.Printf("Closed file: %s\n", params.TextDocument.URI)

	rawURI := params.TextDocument.URI

	path, err := uriToPath(rawURI)
	if err != nil {
		return fmt.Errorf("failed to convert URI %s: %w", rawURI, err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.content, path)
	delete(h.parses, path)

	return nil
}

// TextDocumentDidChange handles file change notifications from the editor
func (h *CairnHandler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	log.Printf("Changed file: %s\n", params.TextDocument.URI)

	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return fmt.Errorf("failed to convert URI %s: %w", params.TextDocument.URI, err)
	}

	source, ok := fullTextFromChanges(params.ContentChanges)
	if !ok {
		// Only full sync is advertised, so a change set without a whole
		// document replacement means a misbehaving client. Fall back to
		// whatever is on disk instead of guessing at the edit.
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", path, err)
		}
		source = string(content)
	}

	diagnostics := h.updateDocument(path, source)
	sendDiagnosticNotification(ctx, params.TextDocument.URI, diagnostics)

	return nil
}

// TextDocumentCompletion handles completion requests (currently returns empty list)
func (h *CairnHandler) TextDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (interface{}, error) {
	// You could extend this to provide Cairo-specific completions
	return &protocol.CompletionList{
		IsIncomplete: false,
		Items:        []protocol.CompletionItem{},
	}, nil
}

// TextDocumentSemanticTokensFull handles semantic token requests for the entire document
func (h *CairnHandler) TextDocumentSemanticTokensFull(ctx *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	log.Println("TextDocumentSemanticTokensFull called for:", params.TextDocument.URI)

	rawURI := params.TextDocument.URI

	path, err := uriToPath(rawURI)
	if err != nil {
		return nil, fmt.Errorf("failed to convert URI %s: %w", rawURI, err)
	}

	result, err := h.getOrLoadParse(ctx, path, rawURI)
	if err != nil {
		return nil, err
	}

	// Walk the declaration AST and collect semantic tokens
	tokens := collectSemanticTokens(result.File)

	var data []uint32
	var prevLine, prevStart uint32

	// Encode tokens into LSP wire format (using delta-line, delta-start compression)
	for _, token := range tokens {
		deltaLine := token.Line - prevLine
		var deltaStart uint32
		if deltaLine == 0 {
			deltaStart = token.StartChar - prevStart
		} else {
			deltaStart = token.StartChar
		}

		// Append the encoded semantic token entry
		data = append(data, deltaLine, deltaStart, token.Length, uint32(token.TokenType), uint32(token.TokenModifiers))

		prevLine = token.Line
		prevStart = token.StartChar
	}

	return &protocol.SemanticTokens{
		Data: data,
	}, nil
}

func (h *CairnHandler) getOrLoadParse(ctx *glsp.Context, path string, rawURI protocol.DocumentUri) (*parser.ParseResult, error) {
	h.mu.RLock()
	result, ok := h.parses[path]
	h.mu.RUnlock()

	if !ok {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read file %s: %w", path, err)
		}

		diagnostics := h.updateDocument(path, string(content))

		h.mu.RLock()
		result = h.parses[path]
		h.mu.RUnlock()

		if len(diagnostics) > 0 {
			sendDiagnosticNotification(ctx, rawURI, diagnostics)
		}
	}

	return result, nil
}

// updateDocument reparses a document snapshot, caches the result and
// returns its diagnostics. The returned slice is non-nil even when
// empty so that publishing it clears stale diagnostics on the client.
func (h *CairnHandler) updateDocument(path, source string) []protocol.Diagnostic {
	result := parser.Parse(path, source)

	h.mu.Lock()
	h.content[path] = source
	h.parses[path] = result
	h.mu.Unlock()

	diagnostics := []protocol.Diagnostic{}
	diagnostics = append(diagnostics, ConvertScanErrors(result.ScanErrors)...)
	diagnostics = append(diagnostics, ConvertParseErrors(result.ParseErrors)...)

	// Declaration checks only run over a clean parse; stacking them on
	// top of syntax errors would drown the real problem in noise.
	if result.Clean() {
		analyzer := semantic.NewAnalyzer(semantic.Options{
			IsAccountContract: declaresAccountEntryPoints(result.File),
		})
		analyzer.Analyze(result.File)
		diagnostics = append(diagnostics, ConvertSemanticErrors(analyzer.GetErrors())...)
	}

	return diagnostics
}

// declaresAccountEntryPoints reports whether any top-level function uses
// a reserved account entry point name. The editor has no equivalent of
// the CLI's --account-contract flag, so intent is inferred: a file that
// declares any reserved name is held to the full account rules.
func declaresAccountEntryPoints(file *ast.ContractFile) bool {
	for _, fn := range file.Functions() {
		if abi.IsAccountEntryPointName(fn.Name.Value) {
			return true
		}
	}
	return false
}

// fullTextFromChanges returns the last whole-document replacement in a
// change set. A server that advertises full sync receives exactly one
// per notification from well-behaved clients.
func fullTextFromChanges(changes []any) (string, bool) {
	text, ok := "", false

	for _, change := range changes {
		switch c := change.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			text, ok = c.Text, true
		case protocol.TextDocumentContentChangeEvent:
			if c.Range == nil {
				text, ok = c.Text, true
			}
		}
	}

	return text, ok
}

// Convert URI to platform-local file path
func uriToPath(rawURI string) (string, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return "", fmt.Errorf("invalid URI %s: %w", rawURI, err)
	}

	path := u.Path

	// On Windows, remove leading slash (e.g., /C:/...) → C:/...
	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && len(path) > 3 && path[2] == ':' {
		path = path[1:]
	}

	// Normalize to platform-specific separators
	return filepath.FromSlash(path), nil
}

func sendDiagnosticNotification(ctx *glsp.Context, uri protocol.URI, diagnostics []protocol.Diagnostic) {
	diagnosticsJSON, err := json.MarshalIndent(diagnostics, "", "  ")
	if err != nil {
		fmt.Println("Failed to marshal diagnostics:", err)
		return
	}

	log.Println("Sending diagnostics:", string(diagnosticsJSON))

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func ptrBool(b bool) *bool {
	return &b
}

func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
