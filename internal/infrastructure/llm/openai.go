package llm

import (
	"context"

	"github.com/shopmate/backend/internal/domain"
)

const (
	openAIBaseURL   = "https://api.openai.com"
	deepSeekBaseURL = "https://api.deepseek.com"
)

// ChatCompletionClient calls an OpenAI-compatible chat completions API.
// OpenAI and DeepSeek share the request and response shape.
type ChatCompletionClient struct {
	provider string
	apiKey   string
	model    string
	baseURL  string
	opts     Options
}

// NewOpenAIClient creates an OpenAI adapter
func NewOpenAIClient(apiKey, model string, opts Options) *ChatCompletionClient {
	opts = opts.withDefaults()
	return &ChatCompletionClient{
		provider: domain.ProviderOpenAI,
		apiKey:   apiKey,
		model:    model,
		baseURL:  opts.baseURL(openAIBaseURL),
		opts:     opts,
	}
}

// NewDeepSeekClient creates a DeepSeek adapter
func NewDeepSeekClient(apiKey, model string, opts Options) *ChatCompletionClient {
	opts = opts.withDefaults()
	return &ChatCompletionClient{
		provider: domain.ProviderDeepSeek,
		apiKey:   apiKey,
		model:    model,
		baseURL:  opts.baseURL(deepSeekBaseURL),
		opts:     opts,
	}
}

// Complete sends prompt as a single user message
func (c *ChatCompletionClient) Complete(ctx context.Context, prompt string) (string, error) {
	payload := map[string]any{
		"model": c.model,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
		"max_tokens": c.opts.MaxTokens,
	}
	headers := map[string]string{
		"Authorization": "Bearer " + c.apiKey,
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := postJSON(ctx, c.opts.HTTPClient, c.provider, c.baseURL+"/v1/chat/completions", headers, payload, &result); err != nil {
		return "", err
	}

	if len(result.Choices) == 0 {
		return "", emptyReply(c.provider)
	}
	return result.Choices[0].Message.Content, nil
}
