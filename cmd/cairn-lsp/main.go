// SPDX-License-Identifier: Apache-2.0
package main

import (
	"log"
	"os"

	"github.com/tliron/commonlog"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"cairn/internal/lsp"
)

const lsName = "cairn" // Name identifier for the language server

var handler protocol.Handler // Protocol handler instance (wired up below)

func main() {
	// Configure debug logging (1 = debug level, nil = default logger)
	commonlog.Configure(1, nil)

	// Create a new instance of the CairnHandler (the language-specific handler)
	cairnHandler := lsp.NewCairnHandler()

	// Wire up the handler with specific LSP method implementations
	handler = protocol.Handler{
		Initialize:                     cairnHandler.Initialize,
		Initialized:                    cairnHandler.Initialized,
		Shutdown:                       cairnHandler.Shutdown,
		SetTrace:                       cairnHandler.SetTrace,
		TextDocumentDidOpen:            cairnHandler.TextDocumentDidOpen,
		TextDocumentDidClose:           cairnHandler.TextDocumentDidClose,
		TextDocumentDidChange:          cairnHandler.TextDocumentDidChange,
		TextDocumentCompletion:         cairnHandler.TextDocumentCompletion,
		TextDocumentSemanticTokensFull: cairnHandler.TextDocumentSemanticTokensFull,
	}

	// Create a new GLSP (Go Language Server Protocol) server instance
	// Parameters:
	// - handler: the protocol handler struct
	// - name: the language server name (shown to clients)
	// - debug: whether to enable internal GLSP debug logs
	s := server.NewServer(&handler, lsName, false)

	log.Println("Starting Cairn LSP server...")

	// Start the server over standard input/output (used by most editors for LSP)
	// This lets the editor communicate with the language server process
	err := s.RunStdio()
	if err != nil {
		log.Println("Error starting Cairn LSP server:", err)
		os.Exit(1)
	}
}
