package llm

import (
	"context"

	"github.com/shopmate/backend/internal/domain"
)

const (
	anthropicBaseURL = "https://api.anthropic.com"
	anthropicVersion = "2023-06-01"
)

// AnthropicClient calls the Anthropic Messages API
type AnthropicClient struct {
	apiKey string
	model  string
	opts   Options
}

// NewAnthropicClient creates an Anthropic adapter
func NewAnthropicClient(apiKey, model string, opts Options) *AnthropicClient {
	return &AnthropicClient{apiKey: apiKey, model: model, opts: opts.withDefaults()}
}

// Complete sends prompt as a single user message
func (c *AnthropicClient) Complete(ctx context.Context, prompt string) (string, error) {
	payload := map[string]any{
		"model":      c.model,
		"max_tokens": c.opts.MaxTokens,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
	}
	headers := map[string]string{
		"x-api-key":         c.apiKey,
		"anthropic-version": anthropicVersion,
	}

	var result struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	url := c.opts.baseURL(anthropicBaseURL) + "/v1/messages"
	if err := postJSON(ctx, c.opts.HTTPClient, domain.ProviderAnthropic, url, headers, payload, &result); err != nil {
		return "", err
	}

	if len(result.Content) == 0 {
		return "", emptyReply(domain.ProviderAnthropic)
	}
	return result.Content[0].Text, nil
}
