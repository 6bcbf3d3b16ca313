package tools

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"termslens/internal/extract"
	"termslens/internal/logging"
	"termslens/internal/panel"
	"termslens/internal/pipeline"
	"termslens/internal/rewrite"
	"termslens/internal/risk"
	"termslens/internal/selection"
)

var ErrFetchDisabled = errors.New("page fetching not configured")

// Service is the typed surface shared by the MCP server, the HTTP API and the
// CLI.
type Service struct {
	Pipeline  *pipeline.Pipeline
	Fetcher   *extract.Fetcher
	Detector  *extract.Detector
	Selection selection.Store
	Panels    *panel.Registry
	Logger    *zap.Logger
}

func NewService(p *pipeline.Pipeline, fetcher *extract.Fetcher, detector *extract.Detector, store selection.Store, panels *panel.Registry, logger *zap.Logger) *Service {
	if store == nil {
		store = selection.NewMemory()
	}
	if panels == nil {
		panels = panel.NewRegistry()
	}
	return &Service{Pipeline: p, Fetcher: fetcher, Detector: detector, Selection: store, Panels: panels, Logger: logging.OrNop(logger)}
}

// Analyze runs the full pipeline. When panelID is set the result is also shown
// on that panel, creating it on first use.
func (s *Service) Analyze(ctx context.Context, text, lang, panelID string) pipeline.Result {
	result := s.Pipeline.Run(ctx, text, lang)
	if panelID != "" {
		p, created := s.Panels.Ensure(panelID)
		p.Show(result)
		if created {
			s.Logger.Info("panel opened", zap.String("panel_id", panelID))
		}
	}
	return result
}

// ClosePanel drops the panel for id. It reports false when no such panel was
// open.
func (s *Service) ClosePanel(id string) bool {
	if !s.Panels.Remove(id) {
		return false
	}
	s.Logger.Info("panel closed", zap.String("panel_id", id))
	return true
}

func (s *Service) Summarize(text string) string {
	return s.Pipeline.Summarize(text)
}

func (s *Service) Rewrite(text string) string {
	return rewrite.Rewrite(text)
}

func (s *Service) Classify(text string) risk.Result {
	return risk.Classify(text)
}

func (s *Service) Translate(text, lang string) string {
	return s.Pipeline.Translate(text, lang)
}

func (s *Service) DetectLegalPage(url, title, text string) extract.Detection {
	if s.Detector == nil {
		return extract.Detect(url, title, text)
	}
	return s.Detector.Detect(url, title, text)
}

type URLAnalysis struct {
	Page      extract.Page      `json:"page"`
	Detection extract.Detection `json:"detection"`
	Result    pipeline.Result   `json:"result"`
}

// AnalyzeURL fetches a page, scores it as a legal page and runs the pipeline
// over its text. Non-legal pages are still analyzed.
func (s *Service) AnalyzeURL(ctx context.Context, url, lang, panelID string) (URLAnalysis, error) {
	if s.Fetcher == nil {
		return URLAnalysis{}, ErrFetchDisabled
	}
	page, err := s.Fetcher.Fetch(ctx, url)
	if err != nil {
		return URLAnalysis{}, err
	}
	detection := s.DetectLegalPage(page.URL, page.Title, page.Text)
	if !detection.Legal {
		s.Logger.Info("page does not look like a legal document", zap.String("host", page.Host), zap.Int("score", detection.Score))
	}
	return URLAnalysis{
		Page:      page,
		Detection: detection,
		Result:    s.Analyze(ctx, page.Text, lang, panelID),
	}, nil
}

func (s *Service) RememberSelection(ctx context.Context, text string) error {
	if err := s.Selection.Save(ctx, text); err != nil {
		return fmt.Errorf("remember selection: %w", err)
	}
	return nil
}

// LastSelection returns selection.ErrNoSelection when nothing was saved yet.
func (s *Service) LastSelection(ctx context.Context) (string, error) {
	return s.Selection.Last(ctx)
}
