package tools

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

type Definition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

var (
	textProp  = map[string]any{"type": "string"}
	langProp  = map[string]any{"type": "string", "maxLength": 16}
	panelProp = map[string]any{"type": "string", "minLength": 1, "maxLength": 128}
)

func object(required []string, props map[string]any) map[string]any {
	schema := map[string]any{
		"type":                 "object",
		"properties":           props,
		"additionalProperties": false,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

var Definitions = []Definition{
	{
		Name:        "analyze_document",
		Description: "Summarize, explain, classify and translate a legal document",
		InputSchema: object([]string{"text"}, map[string]any{"text": textProp, "language": langProp, "panel_id": panelProp}),
	},
	{
		Name:        "summarize_text",
		Description: "Pick the longest sentences of a document",
		InputSchema: object([]string{"text"}, map[string]any{"text": textProp}),
	},
	{
		Name:        "rewrite_text",
		Description: "Rewrite legal jargon in plain language",
		InputSchema: object([]string{"text"}, map[string]any{"text": textProp}),
	},
	{
		Name:        "classify_risk",
		Description: "Flag risky clause categories",
		InputSchema: object([]string{"text"}, map[string]any{"text": textProp}),
	},
	{
		Name:        "translate_text",
		Description: "Translate known phrases with the local dictionary",
		InputSchema: object([]string{"text", "language"}, map[string]any{"text": textProp, "language": langProp}),
	},
	{
		Name:        "detect_legal_page",
		Description: "Score whether a page looks like terms or a privacy policy",
		InputSchema: object([]string{"url"}, map[string]any{"url": map[string]any{"type": "string", "minLength": 1}, "title": textProp, "text": textProp}),
	},
	{
		Name:        "analyze_url",
		Description: "Fetch a page and analyze its text",
		InputSchema: object([]string{"url"}, map[string]any{"url": map[string]any{"type": "string", "minLength": 1}, "language": langProp, "panel_id": panelProp}),
	},
	{
		Name:        "close_panel",
		Description: "Close a panel opened by an earlier analysis",
		InputSchema: object([]string{"panel_id"}, map[string]any{"panel_id": panelProp}),
	},
	{
		Name:        "remember_selection",
		Description: "Store the most recent text selection",
		InputSchema: object([]string{"text"}, map[string]any{"text": textProp}),
	},
	{
		Name:        "last_selection",
		Description: "Return the most recent text selection",
		InputSchema: object(nil, map[string]any{}),
	},
}

var (
	compileOnce sync.Once
	compiled    map[string]*jsonschema.Schema
	compileErr  error
)

func compileSchemas() (map[string]*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiled = make(map[string]*jsonschema.Schema, len(Definitions))
		compiler := jsonschema.NewCompiler()
		for _, def := range Definitions {
			url := def.Name + ".json"
			data, err := json.Marshal(def.InputSchema)
			if err != nil {
				compileErr = err
				return
			}
			if err := compiler.AddResource(url, bytes.NewReader(data)); err != nil {
				compileErr = err
				return
			}
			schema, err := compiler.Compile(url)
			if err != nil {
				compileErr = fmt.Errorf("compile %s: %w", def.Name, err)
				return
			}
			compiled[def.Name] = schema
		}
	})
	return compiled, compileErr
}

// ValidateArguments checks raw tool arguments against the tool's input
// schema. Missing arguments are treated as an empty object.
func ValidateArguments(name string, raw json.RawMessage) error {
	schemas, err := compileSchemas()
	if err != nil {
		return err
	}
	schema, ok := schemas[name]
	if !ok {
		return fmt.Errorf("unknown tool: %s", name)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		raw = json.RawMessage("{}")
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("invalid arguments for %s: %w", name, err)
	}
	return nil
}
