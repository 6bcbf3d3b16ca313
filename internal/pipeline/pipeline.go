package pipeline

import (
	"context"

	"github.com/abadojack/whatlanggo"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"termslens/internal/llm"
	"termslens/internal/logging"
	"termslens/internal/observability"
	"termslens/internal/rewrite"
	"termslens/internal/risk"
	"termslens/internal/summarize"
	"termslens/internal/translate"
)

const (
	SourceRemote = "remote"
	SourceLocal  = "local"
	SourceNone   = "none"
)

const (
	StepSummarize = "summarize"
	StepTranslate = "translate"
)

type Result struct {
	Original          string      `json:"original"`
	Summary           string      `json:"summary"`
	Explanation       string      `json:"explanation"`
	Classification    risk.Result `json:"classification"`
	Language          string      `json:"language"`
	DetectedLanguage  string      `json:"detected_language,omitempty"`
	SummarySource     string      `json:"summary_source"`
	TranslationSource string      `json:"translation_source"`
	Provider          string      `json:"provider"`
}

type Options struct {
	MaxSentences    int
	DefaultLanguage string
	Logger          *zap.Logger
	Observer        *observability.FallbackObserver
	Dictionary      translate.Dictionary
}

// Pipeline turns raw document text into a Result. It is safe for concurrent
// use; nothing is shared between runs except read-only tables.
type Pipeline struct {
	capability      llm.Capability
	maxSentences    int
	defaultLanguage string
	dictionary      translate.Dictionary
	logger          *zap.Logger
	observer        *observability.FallbackObserver
}

func New(capability llm.Capability, opts Options) *Pipeline {
	if opts.MaxSentences <= 0 {
		opts.MaxSentences = summarize.DefaultMaxSentences
	}
	if opts.DefaultLanguage == "" {
		opts.DefaultLanguage = translate.DefaultLanguage
	}
	if opts.Dictionary == nil {
		opts.Dictionary = translate.Phrases
	}
	logger := logging.OrNop(opts.Logger)
	observer := opts.Observer
	if observer == nil {
		observer = observability.NewFallbackObserver(logger)
	}
	return &Pipeline{
		capability:      capability,
		maxSentences:    opts.MaxSentences,
		defaultLanguage: opts.DefaultLanguage,
		dictionary:      opts.Dictionary,
		logger:          logger,
		observer:        observer,
	}
}

func (p *Pipeline) Capability() llm.Capability {
	return p.capability
}

// Run never fails: remote errors fall back to the local heuristics step by
// step. An empty lang means the configured default language.
func (p *Pipeline) Run(ctx context.Context, text string, lang string) Result {
	if lang == "" {
		lang = p.defaultLanguage
	}
	res := Result{
		Original: text,
		Language: lang,
		Provider: p.capability.Name(),
	}

	var g errgroup.Group
	g.Go(func() error {
		res.Classification = risk.Classify(text)
		res.DetectedLanguage = detectLanguage(text)
		return nil
	})

	summary, explanation, source := p.summarizeAndExplain(ctx, text)
	res.SummarySource = source
	res.Summary, res.Explanation, res.TranslationSource = p.translatePair(ctx, summary, explanation, lang)

	_ = g.Wait()
	p.logger.Debug("pipeline run complete",
		zap.String("provider", res.Provider),
		zap.String("summary_source", res.SummarySource),
		zap.String("translation_source", res.TranslationSource),
		zap.String("overall", string(res.Classification.Overall)),
	)
	return res
}

func (p *Pipeline) Summarize(text string) string {
	return summarize.Summarize(text, p.maxSentences)
}

func (p *Pipeline) Translate(text string, lang string) string {
	return p.dictionary.Translate(text, lang)
}

func (p *Pipeline) summarizeAndExplain(ctx context.Context, text string) (string, string, string) {
	if provider, ok := p.capability.Provider(); ok {
		summary, err := provider.Summarize(ctx, text)
		if err == nil {
			var explanation string
			explanation, err = provider.Generate(ctx, llm.ExplainPrompt(text))
			if err == nil {
				return summary, explanation, SourceRemote
			}
		}
		// a partial remote answer is dropped so both outputs come from one source
		p.observer.RecordFallback(StepSummarize, provider.Name(), err)
	}
	return summarize.Summarize(text, p.maxSentences), rewrite.Rewrite(text), SourceLocal
}

func (p *Pipeline) translatePair(ctx context.Context, summary, explanation, lang string) (string, string, string) {
	if translate.IsDefault(lang) {
		return summary, explanation, SourceNone
	}
	if provider, ok := p.capability.Provider(); ok {
		translatedSummary, err := provider.Translate(ctx, summary, lang)
		if err == nil {
			var translatedExplanation string
			translatedExplanation, err = provider.Translate(ctx, explanation, lang)
			if err == nil {
				return translatedSummary, translatedExplanation, SourceRemote
			}
		}
		p.observer.RecordFallback(StepTranslate, provider.Name(), err)
	}
	return p.dictionary.Translate(summary, lang), p.dictionary.Translate(explanation, lang), SourceLocal
}

func detectLanguage(text string) string {
	if text == "" {
		return ""
	}
	info := whatlanggo.Detect(text)
	if !info.IsReliable() {
		return ""
	}
	return info.Lang.Iso6391()
}
