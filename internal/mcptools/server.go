package mcptools

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewServer builds the MCP server with every engine tool registered.
func NewServer() *server.MCPServer {
	s := server.NewMCPServer(
		"questionnaire-engine",
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions("Evaluate questionnaire templates: conditional visibility, answer validation and scoring. "+
			"Pass the template and answers as JSON strings."),
	)

	visibility := NewVisibilityTool()
	s.AddTool(visibility.Definition(), visibility.Handle)

	validate := NewValidateTool()
	s.AddTool(validate.Definition(), validate.Handle)

	score := NewScoreTool()
	s.AddTool(score.Definition(), score.Handle)

	return s
}
