package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"termslens/internal/config"
	"termslens/internal/extract"
	"termslens/internal/llm"
	"termslens/internal/logging"
	"termslens/internal/mcp"
	"termslens/internal/observability"
	"termslens/internal/panel"
	"termslens/internal/pipeline"
	"termslens/internal/selection"
	"termslens/internal/tools"
)

const maxRequestBody = 4 << 20

type App struct {
	Config    config.Config
	Logger    *zap.Logger
	Observer  *observability.FallbackObserver
	Pipeline  *pipeline.Pipeline
	Selection selection.Store
	Tools     *tools.Service
	MCP       *mcp.Server
}

func New(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, error) {
	logger = logging.OrNop(logger)
	store, err := selection.Open(ctx, selection.Options{
		Backend:     cfg.Selection.Backend,
		RedisURL:    cfg.Selection.RedisURL,
		DatabaseDSN: cfg.Selection.DatabaseDSN,
		BadgerPath:  cfg.Selection.BadgerPath,
		Logger:      logger.Named("selection"),
	})
	if err != nil {
		return nil, err
	}

	observer := observability.NewFallbackObserver(logger.Named("fallback"))
	capability := selectLLM(ctx, cfg, logger)
	p := pipeline.New(capability, pipeline.Options{
		MaxSentences:    cfg.Pipeline.MaxSentences,
		DefaultLanguage: cfg.Pipeline.DefaultLanguage,
		Logger:          logger.Named("pipeline"),
		Observer:        observer,
	})

	detector, err := extract.NewDetector(append(append([]string{}, extract.LegalKeywords...), cfg.Detect.Keywords...))
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("build legal page detector: %w", err)
	}
	fetcher := extract.NewFetcher(cfg.Fetch.Timeout, cfg.Fetch.MaxBytes, cfg.Fetch.UserAgent)
	toolSvc := tools.NewService(p, fetcher, detector, store, panel.NewRegistry(), logger.Named("tools"))
	mcpServer := mcp.NewServer(cfg, toolSvc, logger.Named("mcp"))

	logger.Info("termslens ready",
		zap.String("provider", capability.Name()),
		zap.String("selection_backend", cfg.Selection.Backend),
	)
	return &App{
		Config:    cfg,
		Logger:    logger,
		Observer:  observer,
		Pipeline:  p,
		Selection: store,
		Tools:     toolSvc,
		MCP:       mcpServer,
	}, nil
}

func (a *App) Close() error {
	if a.Selection != nil {
		return a.Selection.Close()
	}
	return nil
}

func (a *App) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if err := a.Selection.Ping(r.Context()); err != nil {
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})
	mux.HandleFunc("/mcp", a.MCP.HandleHTTP)
	mux.HandleFunc("POST /v1/analyze", a.handleAnalyze)
	mux.HandleFunc("GET /panel/{id}", a.handlePanel)
	mux.HandleFunc("DELETE /panel/{id}", a.handleClosePanel)
	return mux
}

func (a *App) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.Config.HTTP.Addr,
		Handler:           a.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		_ = srv.Shutdown(context.Background())
	}()
	a.Logger.Info("http listening", zap.String("addr", a.Config.HTTP.Addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

type analyzeRequest struct {
	Text     string `json:"text"`
	Language string `json:"language" validate:"omitempty,max=16"`
	PanelID  string `json:"panel_id" validate:"omitempty,max=128"`
	URL      string `json:"url" validate:"omitempty,url"`
}

var validate = validator.New()

func (a *App) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if err := a.MCP.ValidateOrigin(r); err != nil {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}
	var req analyzeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var body any
	if req.URL != "" {
		out, err := a.Tools.AnalyzeURL(r.Context(), req.URL, req.Language, req.PanelID)
		if err != nil {
			status := http.StatusBadGateway
			if errors.Is(err, extract.ErrUnsupportedContent) {
				status = http.StatusUnprocessableEntity
			}
			http.Error(w, err.Error(), status)
			return
		}
		body = out
	} else {
		body = a.Tools.Analyze(r.Context(), req.Text, req.Language, req.PanelID)
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(body)
}

func (a *App) handlePanel(w http.ResponseWriter, r *http.Request) {
	p, ok := a.Tools.Panels.Get(r.PathValue("id"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := p.Render(w); err != nil {
		if errors.Is(err, panel.ErrEmptyPanel) {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		a.Logger.Error("render panel", zap.Error(err))
	}
}

func (a *App) handleClosePanel(w http.ResponseWriter, r *http.Request) {
	if err := a.MCP.ValidateOrigin(r); err != nil {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}
	if !a.Tools.ClosePanel(r.PathValue("id")) {
		http.NotFound(w, r)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// selectLLM returns an unavailable capability when the configured provider
// lacks credentials; the pipeline then runs fully local.
func selectLLM(ctx context.Context, cfg config.Config, logger *zap.Logger) llm.Capability {
	var provider llm.Provider
	switch cfg.LLM.Provider {
	case "openai":
		if cfg.LLM.OpenAIKey != "" {
			provider = llm.NewOpenAI(cfg.LLM.OpenAIKey, cfg.LLM.OpenAIURL, cfg.LLM.Model, cfg.LLM.Timeout)
		}
	case "ollama":
		if cfg.LLM.OllamaURL != "" {
			provider = llm.NewOllama(cfg.LLM.OllamaURL, cfg.LLM.Model, cfg.LLM.Timeout)
		}
	case "gemini":
		gemini, err := llm.NewGemini(ctx, cfg.LLM.GeminiKey, cfg.LLM.Model)
		if err != nil {
			logger.Warn("gemini unavailable", zap.Error(err))
		} else {
			provider = gemini
		}
	}
	if provider == nil {
		if cfg.LLM.Provider != "none" {
			logger.Warn("llm provider not configured, using local fallback", zap.String("provider", cfg.LLM.Provider))
		}
		return llm.Unavailable()
	}
	return llm.Available(llm.NewLimited(provider, cfg.LLM.RequestsPerMinute))
}
