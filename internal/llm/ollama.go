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

type Ollama struct {
	BaseURL   string
	ModelName string
	Client    *http.Client
}

func NewOllama(baseURL string, model string, timeout time.Duration) *Ollama {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if model == "" {
		model = "llama3"
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Ollama{BaseURL: strings.TrimSuffix(baseURL, "/"), ModelName: model, Client: &http.Client{Timeout: timeout}}
}

func (o *Ollama) Name() string  { return "ollama" }
func (o *Ollama) Model() string { return o.ModelName }

func (o *Ollama) Generate(ctx context.Context, prompt string) (string, error) {
	return o.complete(ctx, prompt)
}

func (o *Ollama) Summarize(ctx context.Context, text string) (string, error) {
	return o.complete(ctx, SummarizePrompt(text))
}

func (o *Ollama) Translate(ctx context.Context, text string, lang string) (string, error) {
	return o.complete(ctx, TranslatePrompt(text, lang))
}

func (o *Ollama) complete(ctx context.Context, prompt string) (string, error) {
	if o.BaseURL == "" {
		return "", errors.New("ollama url not configured")
	}
	payload := map[string]any{
		"model":  o.ModelName,
		"prompt": prompt,
		"stream": false,
	}
	body, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.BaseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := o.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("ollama generate request failed: status %d", resp.StatusCode)
	}
	var decoded struct {
		Response string `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode ollama response: %w", err)
	}
	return cleanCompletion(decoded.Response)
}
