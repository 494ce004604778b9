package mcptools

import (
	"context"
	"fmt"
	"questionnaire_backend/internal/engine"

	"github.com/mark3labs/mcp-go/mcp"
)

// ValidateTool handles the validate_answers MCP tool.
type ValidateTool struct{}

func NewValidateTool() *ValidateTool {
	return &ValidateTool{}
}

type validateOutput struct {
	engine.FormResult
	Errors map[string]string `json:"errors"`
}

// Definition returns the MCP tool definition for validate_answers.
func (t *ValidateTool) Definition() mcp.Tool {
	return mcp.NewTool("validate_answers",
		mcp.WithDescription(
			"Run the validation rules of every visible question against the answers. "+
				"Hidden questions are never validated.",
		),
		templateArg(),
		answersArg(),
		mcp.WithString("section_id",
			mcp.Description("Validate only this section, as a wizard does before moving on (default: whole form)"),
		),
	)
}

// Handle processes the validate_answers tool call.
func (t *ValidateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tpl, answers, err := decodeInput(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	sectionID := req.GetString("section_id", "")
	result, ok := engine.ValidateVisible(tpl, answers, sectionID)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("section %q not found", sectionID)), nil
	}
	return jsonResult(validateOutput{FormResult: result, Errors: result.FirstErrors()})
}
