package mcptools

import (
	"context"
	"fmt"
	"questionnaire_backend/internal/engine"

	"github.com/mark3labs/mcp-go/mcp"
)

// VisibilityTool handles the evaluate_visibility MCP tool.
type VisibilityTool struct{}

func NewVisibilityTool() *VisibilityTool {
	return &VisibilityTool{}
}

// Definition returns the MCP tool definition for evaluate_visibility.
func (t *VisibilityTool) Definition() mcp.Tool {
	return mcp.NewTool("evaluate_visibility",
		mcp.WithDescription(
			"List the questions a respondent would see for the given answers, section by section. "+
				"Questions whose conditional logic is not satisfied are left out.",
		),
		templateArg(),
		answersArg(),
		mcp.WithString("section_id",
			mcp.Description("Only report this section (default: all sections)"),
		),
	)
}

// Handle processes the evaluate_visibility tool call.
func (t *VisibilityTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tpl, answers, err := decodeInput(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	all := engine.VisibleByTemplate(tpl, answers)
	sectionID := req.GetString("section_id", "")
	if sectionID == "" {
		return jsonResult(all)
	}
	for _, s := range all {
		if s.SectionID == sectionID {
			return jsonResult([]engine.SectionVisibility{s})
		}
	}
	return mcp.NewToolResultError(fmt.Sprintf("section %q not found", sectionID)), nil
}
