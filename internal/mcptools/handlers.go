package mcptools

import (
	"context"
	"fmt"
	"io"

	"github.com/dusk-indust/astgen/internal/syntax"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"
)

// ASTService holds the shared state of the MCP tool handlers: a diagnostic
// logger and an optional cap on accepted source size.
type ASTService struct {
	log            logrus.FieldLogger
	maxSourceBytes int
}

// NewASTService creates an ASTService. A nil logger discards diagnostics.
func NewASTService(log logrus.FieldLogger) *ASTService {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &ASTService{log: log}
}

// SetMaxSourceBytes caps the source size accepted by generate_ast. Zero or
// negative means no cap.
func (s *ASTService) SetMaxSourceBytes(n int) {
	s.maxSourceBytes = n
}

// GenerateAST parses the submitted source and returns the serialized parse
// envelope. Parse failures, including unsupported languages, stay inside
// the envelope; only malformed requests surface as tool errors.
func (s *ASTService) GenerateAST(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input GenerateASTInput,
) (*mcp.CallToolResult, GenerateASTOutput, error) {
	if input.Language == "" {
		return nil, GenerateASTOutput{}, fmt.Errorf("language is required")
	}
	if s.maxSourceBytes > 0 && len(input.Code) > s.maxSourceBytes {
		return nil, GenerateASTOutput{}, fmt.Errorf("source exceeds the %d byte limit", s.maxSourceBytes)
	}

	s.log.WithFields(logrus.Fields{
		"language": input.Language,
		"bytes":    len(input.Code),
	}).Debug("generate_ast")

	return nil, GenerateASTOutput{Result: syntax.GenerateAST(input.Code, input.Language)}, nil
}

// GetSupportedLanguages returns the language identifiers the parser accepts,
// in registry order.
func (s *ASTService) GetSupportedLanguages(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ GetSupportedLanguagesInput,
) (*mcp.CallToolResult, GetSupportedLanguagesOutput, error) {
	langs := syntax.SupportedLanguages()
	names := make([]string, len(langs))
	for i, l := range langs {
		names[i] = string(l)
	}
	return nil, GetSupportedLanguagesOutput{Languages: names}, nil
}
