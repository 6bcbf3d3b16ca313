package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

type OpenAI struct {
	APIKey    string
	BaseURL   string
	ModelName string
	Client    *http.Client
}

func NewOpenAI(apiKey string, baseURL string, model string, timeout time.Duration) *OpenAI {
	if baseURL == "" {
		baseURL = "https://api.openai.com"
	}
	if model == "" {
		model = "gpt-4o-mini"
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &OpenAI{
		APIKey:    apiKey,
		BaseURL:   strings.TrimSuffix(baseURL, "/"),
		ModelName: model,
		Client:    &http.Client{Timeout: timeout},
	}
}

func (o *OpenAI) Name() string  { return "openai" }
func (o *OpenAI) Model() string { return o.ModelName }

func (o *OpenAI) Generate(ctx context.Context, prompt string) (string, error) {
	return o.complete(ctx, prompt)
}

func (o *OpenAI) Summarize(ctx context.Context, text string) (string, error) {
	return o.complete(ctx, SummarizePrompt(text))
}

func (o *OpenAI) Translate(ctx context.Context, text string, lang string) (string, error) {
	return o.complete(ctx, TranslatePrompt(text, lang))
}

func (o *OpenAI) complete(ctx context.Context, prompt string) (string, error) {
	if o.APIKey == "" {
		return "", errors.New("openai api key not configured")
	}
	payload := map[string]any{
		"model": o.ModelName,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
	}
	body, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.BaseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+o.APIKey)
	req.Header.Set("Content-Type", "application/json")
	resp, err := o.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("openai completion request failed: status %d", resp.StatusCode)
	}

	var decoded struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode openai response: %w", err)
	}
	if len(decoded.Choices) == 0 {
		return "", ErrEmptyCompletion
	}
	return cleanCompletion(decoded.Choices[0].Message.Content)
}
