package llm

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// Gemini talks to the Gemini API through the genai SDK.
type Gemini struct {
	client    *genai.Client
	modelName string
}

func NewGemini(ctx context.Context, apiKey string, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key not configured")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Gemini{client: client, modelName: model}, nil
}

func (g *Gemini) Name() string  { return "gemini" }
func (g *Gemini) Model() string { return g.modelName }

func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	return g.complete(ctx, prompt)
}

func (g *Gemini) Summarize(ctx context.Context, text string) (string, error) {
	return g.complete(ctx, SummarizePrompt(text))
}

func (g *Gemini) Translate(ctx context.Context, text string, lang string) (string, error) {
	return g.complete(ctx, TranslatePrompt(text, lang))
}

func (g *Gemini) complete(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini generate failed: %w", err)
	}
	return cleanCompletion(resp.Text())
}
