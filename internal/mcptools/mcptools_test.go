package mcptools

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
)

// ─── Test helpers ────────────────────────────────────────────────────────────

const inspectionTemplate = `{
	"name": "Site inspection",
	"sections": [
		{"id": "s1", "title": "Exits", "questions": [
			{"id": "q1", "type": "yes_no", "label": "Exits clear?",
			 "validations": [{"rule": "required"}],
			 "scoring": {"enabled": true, "type": "binary", "points": 10, "correctAnswer": "yes"}},
			{"id": "q2", "type": "textarea", "label": "Describe the obstruction",
			 "validations": [{"rule": "required", "message": "Describe what blocks the exit"}],
			 "conditionalLogic": {"enabled": true, "logic": "AND",
			   "conditions": [{"questionId": "q1", "operator": "equals", "value": "no"}]}}
		]},
		{"id": "s2", "title": "Sign-off", "questions": [
			{"id": "q3", "type": "text", "label": "Inspector email",
			 "validations": [{"rule": "email"}]}
		]}
	]
}`

// makeReq builds a mcp.CallToolRequest with the given arguments.
func makeReq(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

// resultText extracts the text content from a tool result.
func resultText(r *mcp.CallToolResult) string {
	if r == nil || len(r.Content) == 0 {
		return ""
	}
	for _, c := range r.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

type handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)

func call(t *testing.T, h handler, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	result, err := h(context.Background(), makeReq(args))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return result
}

// ─── Definitions ─────────────────────────────────────────────────────────────

func TestDefinitions(t *testing.T) {
	defs := []struct {
		tool interface{ Definition() mcp.Tool }
		name string
	}{
		{NewVisibilityTool(), "evaluate_visibility"},
		{NewValidateTool(), "validate_answers"},
		{NewScoreTool(), "score_answers"},
	}
	for _, d := range defs {
		def := d.tool.Definition()
		if def.Name != d.name {
			t.Errorf("tool name = %q, want %q", def.Name, d.name)
		}
		if _, ok := def.InputSchema.Properties["template"]; !ok {
			t.Errorf("%s: missing 'template' parameter", d.name)
		}
		found := false
		for _, r := range def.InputSchema.Required {
			if r == "template" {
				found = true
			}
		}
		if !found {
			t.Errorf("%s: 'template' should be required", d.name)
		}
	}
}

// ─── evaluate_visibility ─────────────────────────────────────────────────────

func TestVisibilityTool_HidesConditionalQuestion(t *testing.T) {
	tool := NewVisibilityTool()
	result := call(t, tool.Handle, map[string]interface{}{
		"template": inspectionTemplate,
		"answers":  `{"q1": "yes"}`,
	})
	if result.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(result))
	}

	var out []struct {
		SectionID          string   `json:"sectionId"`
		VisibleQuestionIDs []string `json:"visibleQuestionIds"`
	}
	if err := json.Unmarshal([]byte(resultText(result)), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != 2 || strings.Join(out[0].VisibleQuestionIDs, ",") != "q1" {
		t.Fatalf("unexpected visibility %+v", out)
	}
}

func TestVisibilityTool_SectionFilter(t *testing.T) {
	tool := NewVisibilityTool()
	result := call(t, tool.Handle, map[string]interface{}{
		"template":   inspectionTemplate,
		"answers":    `{"q1": "no"}`,
		"section_id": "s1",
	})
	text := resultText(result)
	if result.IsError || !strings.Contains(text, `"q2"`) || strings.Contains(text, `"s2"`) {
		t.Fatalf("unexpected result: %s", text)
	}

	result = call(t, tool.Handle, map[string]interface{}{
		"template":   inspectionTemplate,
		"section_id": "nope",
	})
	if !result.IsError {
		t.Fatal("expected error for unknown section")
	}
}

func TestVisibilityTool_BadInput(t *testing.T) {
	tool := NewVisibilityTool()
	cases := []map[string]interface{}{
		{},
		{"template": "{not json"},
		{"template": `{"name": "x", "sections": []}`},
		{"template": inspectionTemplate, "answers": "[1, 2]"},
	}
	for i, args := range cases {
		if result := call(t, tool.Handle, args); !result.IsError {
			t.Errorf("case %d: expected tool error, got %s", i, resultText(result))
		}
	}
}

// ─── validate_answers ────────────────────────────────────────────────────────

func TestValidateTool_OnlyVisibleQuestions(t *testing.T) {
	tool := NewValidateTool()

	result := call(t, tool.Handle, map[string]interface{}{
		"template": inspectionTemplate,
		"answers":  `{"q1": "yes", "q3": "inspector@example.com"}`,
	})
	var ok validateOutput
	if err := json.Unmarshal([]byte(resultText(result)), &ok); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !ok.IsValid {
		t.Fatalf("hidden required question should not fail validation: %+v", ok)
	}
	if _, present := ok.Results["q2"]; present {
		t.Fatal("hidden question should not be validated")
	}

	result = call(t, tool.Handle, map[string]interface{}{
		"template": inspectionTemplate,
		"answers":  `{"q1": "no", "q3": "not-an-email"}`,
	})
	var bad validateOutput
	if err := json.Unmarshal([]byte(resultText(result)), &bad); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if bad.IsValid {
		t.Fatal("expected validation failure")
	}
	if bad.Errors["q2"] != "Describe what blocks the exit" {
		t.Errorf("q2 error = %q", bad.Errors["q2"])
	}
	if bad.Errors["q3"] == "" {
		t.Error("q3 should fail the email rule")
	}
}

func TestValidateTool_Section(t *testing.T) {
	tool := NewValidateTool()
	result := call(t, tool.Handle, map[string]interface{}{
		"template":   inspectionTemplate,
		"answers":    `{"q3": "bad"}`,
		"section_id": "s1",
	})
	var out validateOutput
	if err := json.Unmarshal([]byte(resultText(result)), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.IsValid || out.Errors["q1"] == "" {
		t.Fatalf("s1 should fail on the missing q1: %+v", out)
	}
	if _, present := out.Results["q3"]; present {
		t.Fatal("questions outside the section should not be validated")
	}
}

// ─── score_answers ───────────────────────────────────────────────────────────

func TestScoreTool(t *testing.T) {
	tool := NewScoreTool()
	cases := []struct {
		answers  string
		score    float64
		category string
	}{
		{`{"q1": "yes"}`, 10, "Excellent"},
		{`{"q1": "no"}`, 0, "Poor"},
		{"", 0, "Poor"},
	}
	for _, c := range cases {
		args := map[string]interface{}{"template": inspectionTemplate}
		if c.answers != "" {
			args["answers"] = c.answers
		}
		result := call(t, tool.Handle, args)
		var out struct {
			Score    float64 `json:"score"`
			MaxScore float64 `json:"maxScore"`
			Category string  `json:"category"`
		}
		if err := json.Unmarshal([]byte(resultText(result)), &out); err != nil {
			t.Fatalf("decode %q: %v", resultText(result), err)
		}
		if out.Score != c.score || out.MaxScore != 10 || out.Category != c.category {
			t.Errorf("answers %s: got %+v", c.answers, out)
		}
	}
}
