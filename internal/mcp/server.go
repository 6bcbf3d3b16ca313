package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"termslens/internal/config"
	"termslens/internal/extract"
	"termslens/internal/logging"
	"termslens/internal/selection"
	"termslens/internal/tools"
)

var (
	errMethodNotFound  = errors.New("method not found")
	errInvalidArgument = errors.New("invalid arguments")
)

type Server struct {
	Config   config.Config
	Tools    *tools.Service
	Logger   *zap.Logger
	mu       sync.Mutex
	sessions map[string]time.Time
}

func NewServer(cfg config.Config, toolsSvc *tools.Service, logger *zap.Logger) *Server {
	return &Server{Config: cfg, Tools: toolsSvc, Logger: logging.OrNop(logger), sessions: make(map[string]time.Time)}
}

func (s *Server) HandleHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := s.validateOrigin(r); err != nil {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	s.Logger.Debug("mcp request",
		zap.String("method", req.Method),
		zap.String("protocol_version", strings.TrimSpace(r.Header.Get("MCP-Protocol-Version"))),
	)
	sessionID := r.Header.Get("MCP-Session-Id")
	if req.Method != "initialize" {
		if !s.isSessionValid(sessionID) {
			writeError(w, req.ID, codeServerError, "missing or invalid MCP-Session-Id")
			return
		}
	}
	result, err := s.dispatch(r.Context(), req)
	if err != nil {
		s.writeDispatchError(w, req.ID, err)
		return
	}
	if req.Method == "initialize" {
		if sessionID == "" || !s.isSessionValid(sessionID) {
			sessionID = s.newSession()
		}
		w.Header().Set("MCP-Session-Id", sessionID)
	}
	w.Header().Set("MCP-Protocol-Version", s.Config.MCP.ProtocolVersion)
	w.Header().Set("Content-Type", "application/json")
	resp := Response{JSONRPC: "2.0", ID: req.ID, Result: result}
	_ = json.NewEncoder(w).Encode(resp)
}

func (s *Server) dispatch(ctx context.Context, req Request) (any, error) {
	switch req.Method {
	case "initialize":
		return map[string]any{
			"protocolVersion": s.Config.MCP.ProtocolVersion,
			"serverInfo": map[string]any{
				"name":    "termslensd",
				"version": "0.1.0",
			},
			"capabilities": map[string]any{
				"tools":     true,
				"resources": true,
			},
		}, nil
	case "tools/list":
		return ListTools(), nil
	case "tools/call":
		return s.callTool(ctx, req)
	case "resources/list":
		return ListResources(), nil
	case "resources/read":
		return s.readResource(ctx, req)
	default:
		return nil, fmt.Errorf("%w: %s", errMethodNotFound, req.Method)
	}
}

func (s *Server) callTool(ctx context.Context, req Request) (any, error) {
	var params ToolCallParams
	if err := decodeParams(req.Params, &params); err != nil {
		return nil, err
	}
	if err := tools.ValidateArguments(params.Name, params.Arguments); err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidArgument, err)
	}
	exec, err := s.toolExecutor(params)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	result, err := exec(ctx)
	s.Logger.Info("tool call",
		zap.String("tool", params.Name),
		zap.Duration("latency", time.Since(start)),
		zap.Bool("ok", err == nil),
	)
	return result, err
}

type textArgs struct {
	Text     string `json:"text"`
	Language string `json:"language"`
	PanelID  string `json:"panel_id"`
}

type pageArgs struct {
	URL      string `json:"url"`
	Title    string `json:"title"`
	Text     string `json:"text"`
	Language string `json:"language"`
	PanelID  string `json:"panel_id"`
}

func (s *Server) toolExecutor(params ToolCallParams) (func(context.Context) (any, error), error) {
	var text textArgs
	var page pageArgs
	switch params.Name {
	case "detect_legal_page", "analyze_url":
		if err := decodeArguments(params.Arguments, &page); err != nil {
			return nil, err
		}
	default:
		if err := decodeArguments(params.Arguments, &text); err != nil {
			return nil, err
		}
	}

	switch params.Name {
	case "analyze_document":
		return func(ctx context.Context) (any, error) {
			return s.Tools.Analyze(ctx, text.Text, text.Language, text.PanelID), nil
		}, nil
	case "summarize_text":
		return func(context.Context) (any, error) {
			return map[string]any{"summary": s.Tools.Summarize(text.Text)}, nil
		}, nil
	case "rewrite_text":
		return func(context.Context) (any, error) {
			return map[string]any{"explanation": s.Tools.Rewrite(text.Text)}, nil
		}, nil
	case "classify_risk":
		return func(context.Context) (any, error) {
			return s.Tools.Classify(text.Text), nil
		}, nil
	case "translate_text":
		return func(context.Context) (any, error) {
			return map[string]any{"text": s.Tools.Translate(text.Text, text.Language), "language": text.Language}, nil
		}, nil
	case "detect_legal_page":
		return func(context.Context) (any, error) {
			return s.Tools.DetectLegalPage(page.URL, page.Title, page.Text), nil
		}, nil
	case "analyze_url":
		return func(ctx context.Context) (any, error) {
			return s.Tools.AnalyzeURL(ctx, page.URL, page.Language, page.PanelID)
		}, nil
	case "close_panel":
		return func(context.Context) (any, error) {
			return map[string]any{"closed": s.Tools.ClosePanel(text.PanelID)}, nil
		}, nil
	case "remember_selection":
		return func(ctx context.Context) (any, error) {
			if err := s.Tools.RememberSelection(ctx, text.Text); err != nil {
				return nil, err
			}
			return map[string]any{"stored": true}, nil
		}, nil
	case "last_selection":
		return func(ctx context.Context) (any, error) {
			last, err := s.Tools.LastSelection(ctx)
			if err != nil {
				return nil, err
			}
			return map[string]any{"text": last}, nil
		}, nil
	default:
		return nil, fmt.Errorf("unknown tool: %s", params.Name)
	}
}

func (s *Server) readResource(ctx context.Context, req Request) (any, error) {
	var params ResourceReadParams
	if err := decodeParams(req.Params, &params); err != nil {
		return nil, err
	}
	switch {
	case params.URI == resourcePanels:
		return map[string]any{"panel_ids": s.Tools.Panels.IDs()}, nil
	case strings.HasPrefix(params.URI, resourcePanelPrefix):
		id := strings.TrimPrefix(params.URI, resourcePanelPrefix)
		p, ok := s.Tools.Panels.Get(id)
		if !ok {
			return nil, fmt.Errorf("panel not found: %s", id)
		}
		result, ok := p.Result()
		if !ok {
			return map[string]any{"panel_id": id}, nil
		}
		return map[string]any{"panel_id": id, "result": result}, nil
	case params.URI == resourceLastSelection:
		last, err := s.Tools.LastSelection(ctx)
		if err != nil {
			return nil, err
		}
		return map[string]any{"text": last}, nil
	default:
		return nil, fmt.Errorf("resource not found: %s", params.URI)
	}
}

func (s *Server) validateOrigin(r *http.Request) error {
	origin := r.Header.Get("Origin")
	if s.Config.Dev.Mode {
		return nil
	}
	if origin == "" {
		if s.Config.Security.APIKey == "" {
			return errors.New("missing origin")
		}
		if r.Header.Get("X-API-Key") != s.Config.Security.APIKey {
			return errors.New("invalid api key")
		}
		return nil
	}
	if len(s.Config.MCP.AllowOrigins) == 0 {
		return nil
	}
	for _, allowed := range s.Config.MCP.AllowOrigins {
		if origin == allowed {
			return nil
		}
	}
	return errors.New("origin not allowed")
}

// ValidateOrigin applies the MCP origin and API key rules to other routes.
func (s *Server) ValidateOrigin(r *http.Request) error {
	return s.validateOrigin(r)
}

func (s *Server) writeDispatchError(w http.ResponseWriter, id any, err error) {
	code, message, data := dispatchError(err)
	writeErrorWithData(w, id, code, message, data)
}

func dispatchError(err error) (int, string, any) {
	switch {
	case errors.Is(err, errMethodNotFound):
		return codeMethodNotFound, err.Error(), nil
	case errors.Is(err, errInvalidArgument):
		return codeInvalidArgs, err.Error(), nil
	case errors.Is(err, selection.ErrNoSelection):
		return codeNoSelection, "no_selection", map[string]any{"retryable": false}
	case errors.Is(err, extract.ErrUnsupportedContent):
		return codeUnsupported, "unsupported_content", map[string]any{"retryable": false, "detail": err.Error()}
	default:
		return codeServerError, err.Error(), nil
	}
}

func (s *Server) newSession() string {
	sessionID := uuid.NewString()
	s.mu.Lock()
	s.sessions[sessionID] = time.Now().Add(24 * time.Hour)
	s.mu.Unlock()
	return sessionID
}

func (s *Server) isSessionValid(id string) bool {
	if id == "" {
		return false
	}
	s.mu.Lock()
	expiry, ok := s.sessions[id]
	s.mu.Unlock()
	if !ok {
		return false
	}
	return time.Now().Before(expiry)
}

func decodeParams(raw json.RawMessage, out any) error {
	if len(raw) == 0 {
		return errors.New("missing params")
	}
	return json.Unmarshal(raw, out)
}

func decodeArguments(raw json.RawMessage, out any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, out)
}

func writeError(w http.ResponseWriter, id any, code int, message string) {
	writeErrorWithData(w, id, code, message, nil)
}

func writeErrorWithData(w http.ResponseWriter, id any, code int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	resp := Response{
		JSONRPC: "2.0",
		ID:      id,
		Error:   &ResponseError{Code: code, Message: message, Data: data},
	}
	_ = json.NewEncoder(w).Encode(resp)
}
