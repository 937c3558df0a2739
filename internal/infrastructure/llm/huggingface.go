package llm

import (
	"context"
	"encoding/json"

	"github.com/shopmate/backend/internal/domain"
)

const huggingFaceBaseURL = "https://api-inference.huggingface.co"

// HuggingFaceClient calls the Hugging Face inference API
type HuggingFaceClient struct {
	token string
	model string
	opts  Options
}

// NewHuggingFaceClient creates a Hugging Face adapter
func NewHuggingFaceClient(token, model string, opts Options) *HuggingFaceClient {
	return &HuggingFaceClient{token: token, model: model, opts: opts.withDefaults()}
}

type generatedText struct {
	GeneratedText string `json:"generated_text"`
}

// Complete sends prompt as the model input
func (h *HuggingFaceClient) Complete(ctx context.Context, prompt string) (string, error) {
	payload := map[string]any{
		"inputs": prompt,
		"parameters": map[string]any{
			"max_length":  h.opts.MaxTokens,
			"temperature": 0.7,
		},
	}
	headers := map[string]string{
		"Authorization": "Bearer " + h.token,
	}

	// The reply is either an object or a one-element array of objects
	var raw json.RawMessage
	url := h.opts.baseURL(huggingFaceBaseURL) + "/models/" + h.model
	if err := postJSON(ctx, h.opts.HTTPClient, domain.ProviderHuggingFace, url, headers, payload, &raw); err != nil {
		return "", err
	}

	var single generatedText
	if err := json.Unmarshal(raw, &single); err == nil && single.GeneratedText != "" {
		return single.GeneratedText, nil
	}

	var list []generatedText
	if err := json.Unmarshal(raw, &list); err == nil && len(list) > 0 && list[0].GeneratedText != "" {
		return list[0].GeneratedText, nil
	}

	return "", emptyReply(domain.ProviderHuggingFace)
}
