package mcp

import (
	"encoding/json"

	"termslens/internal/tools"
)

type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      any             `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
}

type Response struct {
	JSONRPC string         `json:"jsonrpc"`
	ID      any            `json:"id"`
	Result  any            `json:"result,omitempty"`
	Error   *ResponseError `json:"error,omitempty"`
}

type ResponseError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

type ToolCallParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

type ResourceReadParams struct {
	URI string `json:"uri"`
}

const (
	codeServerError    = -32000
	codeNoSelection    = -32004
	codeUnsupported    = -32005
	codeMethodNotFound = -32601
	codeInvalidArgs    = -32602
)

const (
	resourcePanels        = "termslens://panels"
	resourcePanelPrefix   = "termslens://panels/"
	resourceLastSelection = "termslens://selection/last"
)

func ListTools() map[string]any {
	return map[string]any{"tools": tools.Definitions}
}

func ListResources() map[string]any {
	return map[string]any{
		"resources": []map[string]any{
			{"uri": resourcePanels, "description": "List open panel IDs"},
			{"uri": resourceLastSelection, "description": "Most recent text selection"},
		},
	}
}
