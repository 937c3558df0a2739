package llm

import (
	"context"
	"fmt"
	"net/url"

	"github.com/shopmate/backend/internal/domain"
)

const geminiBaseURL = "https://generativelanguage.googleapis.com"

// GeminiClient calls the Gemini generateContent API
type GeminiClient struct {
	apiKey string
	model  string
	opts   Options
}

// NewGeminiClient creates a Gemini adapter
func NewGeminiClient(apiKey, model string, opts Options) *GeminiClient {
	return &GeminiClient{apiKey: apiKey, model: model, opts: opts.withDefaults()}
}

// Complete sends prompt as a single content part
func (g *GeminiClient) Complete(ctx context.Context, prompt string) (string, error) {
	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		g.opts.baseURL(geminiBaseURL),
		url.PathEscape(g.model),
		url.QueryEscape(g.apiKey),
	)

	payload := map[string]any{
		"contents": []map[string]any{
			{
				"parts": []map[string]string{
					{"text": prompt},
				},
			},
		},
		"generationConfig": map[string]any{
			"maxOutputTokens": g.opts.MaxTokens,
		},
	}

	var result struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := postJSON(ctx, g.opts.HTTPClient, domain.ProviderGemini, endpoint, nil, payload, &result); err != nil {
		return "", err
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", emptyReply(domain.ProviderGemini)
	}
	return result.Candidates[0].Content.Parts[0].Text, nil
}
