package tools

import (
	"encoding/json"
	"testing"
)

func TestValidateArguments(t *testing.T) {
	tests := []struct {
		name    string
		tool    string
		args    string
		wantErr bool
	}{
		{name: "analyze ok", tool: "analyze_document", args: `{"text":"x","language":"es"}`},
		{name: "analyze empty text ok", tool: "analyze_document", args: `{"text":""}`},
		{name: "analyze missing text", tool: "analyze_document", args: `{"language":"es"}`, wantErr: true},
		{name: "analyze wrong type", tool: "analyze_document", args: `{"text":5}`, wantErr: true},
		{name: "analyze unknown field", tool: "analyze_document", args: `{"text":"x","tone":"nice"}`, wantErr: true},
		{name: "translate needs language", tool: "translate_text", args: `{"text":"x"}`, wantErr: true},
		{name: "detect needs url", tool: "detect_legal_page", args: `{"url":""}`, wantErr: true},
		{name: "last selection no args", tool: "last_selection", args: ``},
		{name: "last selection empty object", tool: "last_selection", args: `{}`},
		{name: "invalid json", tool: "rewrite_text", args: `{`, wantErr: true},
		{name: "unknown tool", tool: "send_email", args: `{}`, wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateArguments(tc.tool, json.RawMessage(tc.args))
			if tc.wantErr && err == nil {
				t.Fatalf("expected error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestDefinitionsHaveUniqueNames(t *testing.T) {
	seen := map[string]bool{}
	for _, def := range Definitions {
		if seen[def.Name] {
			t.Fatalf("duplicate tool %s", def.Name)
		}
		seen[def.Name] = true
		if def.InputSchema["type"] != "object" {
			t.Fatalf("tool %s schema must be an object", def.Name)
		}
	}
	if len(seen) != 10 {
		t.Fatalf("expected 10 tools, got %d", len(seen))
	}
}
