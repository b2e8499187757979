package mcptools

// --- MCP Tool Input Types ---
// These structs define the JSON schema for each MCP tool's input.
// The MCP Go SDK auto-generates JSON schemas from struct tags.

// GenerateASTInput is the input for the generate_ast MCP tool.
type GenerateASTInput struct {
	Code     string `json:"code" jsonschema:"the source text to parse"`
	Language string `json:"language" jsonschema:"language identifier (case-insensitive): json, rust, javascript, typescript, python, go, ocaml"`
}

// GenerateASTOutput is the result of the generate_ast MCP tool. Result is
// the serialized parse envelope: success flag, syntax tree or diagnostic,
// and the echoed language.
type GenerateASTOutput struct {
	Result string `json:"result"`
}

// GetSupportedLanguagesInput is the input for the get_supported_languages MCP tool.
type GetSupportedLanguagesInput struct{}

// GetSupportedLanguagesOutput is the result of the get_supported_languages MCP tool.
type GetSupportedLanguagesOutput struct {
	Languages []string `json:"languages"`
}
