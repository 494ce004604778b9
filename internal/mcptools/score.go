package mcptools

import (
	"context"
	"questionnaire_backend/internal/engine"

	"github.com/mark3labs/mcp-go/mcp"
)

// ScoreTool handles the score_answers MCP tool.
type ScoreTool struct{}

func NewScoreTool() *ScoreTool {
	return &ScoreTool{}
}

// Definition returns the MCP tool definition for score_answers.
func (t *ScoreTool) Definition() mcp.Tool {
	return mcp.NewTool("score_answers",
		mcp.WithDescription(
			"Score the answers against the template's scoring rules and return score, maxScore, "+
				"percentage and the performance category.",
		),
		templateArg(),
		answersArg(),
	)
}

// Handle processes the score_answers tool call.
func (t *ScoreTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tpl, answers, err := decodeInput(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(engine.Report(tpl, answers))
}
