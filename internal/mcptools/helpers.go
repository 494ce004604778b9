// Package mcptools exposes the questionnaire engine as MCP tools.
//
// Each tool follows the same shape:
// - Definition() returns the mcp.Tool schema
// - Handle() decodes the template and answers, runs the engine and
//   returns the result as JSON text
//
// The tools are stateless; nothing is read from or written to storage.
package mcptools

import (
	"encoding/json"
	"fmt"
	"questionnaire_backend/internal/model"

	"github.com/mark3labs/mcp-go/mcp"
)

// Version is reported to MCP clients during initialization.
const Version = "1.0.0"

func templateArg() mcp.ToolOption {
	return mcp.WithString("template",
		mcp.Required(),
		mcp.Description("Questionnaire template as a JSON object with name and sections"),
	)
}

func answersArg() mcp.ToolOption {
	return mcp.WithString("answers",
		mcp.Description(`Answers keyed by question id as a JSON object, e.g. {"q1":"yes","q2":["a","b"]} (default: {})`),
	)
}

// decodeInput parses the template and answers arguments. The template is
// checked structurally before the engine sees it.
func decodeInput(req mcp.CallToolRequest) (*model.Template, model.Answers, error) {
	raw := req.GetString("template", "")
	if raw == "" {
		return nil, nil, fmt.Errorf("'template' is required")
	}

	var t model.Template
	if err := json.Unmarshal([]byte(raw), &t); err != nil {
		return nil, nil, fmt.Errorf("template is not valid JSON: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid template: %w", err)
	}

	answers := model.Answers{}
	if rawAnswers := req.GetString("answers", ""); rawAnswers != "" {
		if err := json.Unmarshal([]byte(rawAnswers), &answers); err != nil {
			return nil, nil, fmt.Errorf("answers are not valid JSON: %w", err)
		}
		if answers == nil {
			answers = model.Answers{}
		}
	}
	return &t, answers, nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
