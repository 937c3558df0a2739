package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopmate/backend/internal/domain"
)

// DefaultMaxTokens is the reply budget when none is given
const DefaultMaxTokens = 400

// Options configures provider adapters
type Options struct {
	// BaseURL overrides the provider endpoint root. Used by tests.
	BaseURL    string
	MaxTokens  int
	HTTPClient *http.Client
}

func (o Options) withDefaults() Options {
	if o.MaxTokens <= 0 {
		o.MaxTokens = DefaultMaxTokens
	}
	if o.HTTPClient == nil {
		o.HTTPClient = &http.Client{Timeout: 60 * time.Second}
	}
	o.BaseURL = strings.TrimRight(o.BaseURL, "/")
	return o
}

func (o Options) baseURL(fallback string) string {
	if o.BaseURL != "" {
		return o.BaseURL
	}
	return fallback
}

// New returns the adapter for cfg.Provider
func New(cfg domain.AIConfig, opts Options) (domain.Completer, error) {
	if !domain.IsSupportedProvider(cfg.Provider) {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedProvider, cfg.Provider)
	}

	credential := cfg.Credential()
	if credential == "" {
		return nil, fmt.Errorf("%w: missing credential for %s", domain.ErrAINotConfigured, cfg.Provider)
	}

	opts = opts.withDefaults()

	switch cfg.Provider {
	case domain.ProviderAnthropic:
		return NewAnthropicClient(credential, cfg.Model, opts), nil
	case domain.ProviderOpenAI:
		return NewOpenAIClient(credential, cfg.Model, opts), nil
	case domain.ProviderDeepSeek:
		return NewDeepSeekClient(credential, cfg.Model, opts), nil
	case domain.ProviderGemini:
		return NewGeminiClient(credential, cfg.Model, opts), nil
	case domain.ProviderHuggingFace:
		return NewHuggingFaceClient(credential, cfg.Model, opts), nil
	case domain.ProviderOllama:
		return NewOllamaClient(credential, cfg.Model, opts), nil
	}
	return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedProvider, cfg.Provider)
}

// NewFactory returns a domain.CompleterFactory sharing one HTTP client
func NewFactory(timeout time.Duration) domain.CompleterFactory {
	httpClient := &http.Client{Timeout: timeout}
	return func(cfg domain.AIConfig, maxTokens int) (domain.Completer, error) {
		return New(cfg, Options{MaxTokens: maxTokens, HTTPClient: httpClient})
	}
}

// postJSON sends payload to url and decodes a 200 response into out
func postJSON(ctx context.Context, client *http.Client, provider, url string, headers map[string]string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode %s request: %w", provider, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", provider, err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrAIProviderFailure, provider, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %s: reading body: %v", domain.ErrAIProviderFailure, provider, err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s: status %d: %s", domain.ErrAIProviderFailure, provider, resp.StatusCode, errorMessage(raw))
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %s: decoding response: %v", domain.ErrAIProviderFailure, provider, err)
	}
	return nil
}

// errorMessage extracts a provider error message from an error body
func errorMessage(raw []byte) string {
	var body struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && len(body.Error) > 0 {
		var nested struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(body.Error, &nested); err == nil && nested.Message != "" {
			return nested.Message
		}
		var plain string
		if err := json.Unmarshal(body.Error, &plain); err == nil && plain != "" {
			return plain
		}
	}

	msg := strings.TrimSpace(string(raw))
	if len(msg) > 200 {
		msg = msg[:200]
	}
	return msg
}

func emptyReply(provider string) error {
	return fmt.Errorf("%w: empty %s response", domain.ErrAIProviderFailure, provider)
}
