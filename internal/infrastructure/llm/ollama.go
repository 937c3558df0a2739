package llm

import (
	"context"
	"strings"

	"github.com/shopmate/backend/internal/domain"
)

// OllamaClient calls a local Ollama server. The credential is the server base URL.
type OllamaClient struct {
	baseURL string
	model   string
	opts    Options
}

// NewOllamaClient creates an Ollama adapter for the server at baseURL
func NewOllamaClient(baseURL, model string, opts Options) *OllamaClient {
	opts = opts.withDefaults()
	return &OllamaClient{
		baseURL: opts.baseURL(strings.TrimRight(baseURL, "/")),
		model:   model,
		opts:    opts,
	}
}

// Complete runs a non-streaming generation
func (o *OllamaClient) Complete(ctx context.Context, prompt string) (string, error) {
	payload := map[string]any{
		"model":  o.model,
		"prompt": prompt,
		"stream": false,
		"options": map[string]any{
			"num_predict": o.opts.MaxTokens,
		},
	}

	var result struct {
		Response string `json:"response"`
	}
	if err := postJSON(ctx, o.opts.HTTPClient, domain.ProviderOllama, o.baseURL+"/api/generate", nil, payload, &result); err != nil {
		return "", err
	}

	if result.Response == "" {
		return "", emptyReply(domain.ProviderOllama)
	}
	return result.Response, nil
}
