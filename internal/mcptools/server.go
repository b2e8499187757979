package mcptools

import (
	"context"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// version is set by the linker at build time.
var version = "dev"

// NewASTMCPServer creates an MCP server with both parser tools registered.
func NewASTMCPServer(svc *ASTService) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "astgen",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_ast",
		Description: "Parse source code with tree-sitter and return the full syntax tree as JSON. Every node carries its kind, byte offsets, row/column positions, and leaf text.",
	}, svc.GenerateAST)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_supported_languages",
		Description: "List the language identifiers the parser accepts.",
	}, svc.GetSupportedLanguages)

	return server
}

// RunMCPServer starts an HTTP server exposing the parser MCP tools.
func RunMCPServer(ctx context.Context, svc *ASTService, addr string) error {
	server := NewASTMCPServer(svc)

	handler := mcp.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcp.Server { return server },
		nil,
	)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	// Shutdown gracefully when context is cancelled.
	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background())
	}()

	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// RunMCPServerStdio runs the MCP server on stdio transport, blocking until
// stdin is closed or the context is cancelled.
func RunMCPServerStdio(ctx context.Context, svc *ASTService) error {
	return NewASTMCPServer(svc).Run(ctx, &mcp.StdioTransport{})
}
