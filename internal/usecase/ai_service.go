package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/shopmate/backend/internal/domain"
)

// Reply token budgets per use
const (
	productAdviceMaxTokens = 400
	flightAdviceMaxTokens  = 250
	providerTestMaxTokens  = 10

	providerTestTimeout = 10 * time.Second
	providerTestPrompt  = "Hello"

	// maskedKeyPrefix marks a key that was masked for display and must not overwrite the stored one
	maskedKeyPrefix = "***"
)

// AIStatus summarizes the current AI configuration
type AIStatus struct {
	Active     bool   `json:"active"`
	Provider   string `json:"provider"`
	Model      string `json:"model"`
	Configured bool   `json:"configured"`
}

// AIService owns the run-time AI configuration and produces assistant replies.
// Without a usable provider every reply falls back to canned demo text.
type AIService struct {
	mutex    sync.RWMutex
	config   domain.AIConfig
	defaults domain.AIConfig

	newCompleter domain.CompleterFactory
	logger       *zap.Logger
}

// NewAIService creates an AI service starting from initial.
// Reset returns to a disabled provider keeping initial's model and Ollama URL.
func NewAIService(initial domain.AIConfig, newCompleter domain.CompleterFactory, logger *zap.Logger) *AIService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if initial.Provider == "" {
		initial.Provider = domain.ProviderNone
	}

	return &AIService{
		config: initial,
		defaults: domain.AIConfig{
			Provider:  domain.ProviderNone,
			Model:     initial.Model,
			OllamaURL: initial.OllamaURL,
		},
		newCompleter: newCompleter,
		logger:       logger,
	}
}

// Config returns the current configuration including keys
func (s *AIService) Config() domain.AIConfig {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.config
}

// MaskedConfig returns the current configuration with keys masked for display
func (s *AIService) MaskedConfig() domain.AIConfig {
	cfg := s.Config()
	cfg.AnthropicKey = maskKey(cfg.AnthropicKey)
	cfg.OpenAIKey = maskKey(cfg.OpenAIKey)
	cfg.GeminiKey = maskKey(cfg.GeminiKey)
	cfg.HuggingFaceKey = maskKey(cfg.HuggingFaceKey)
	cfg.DeepSeekKey = maskKey(cfg.DeepSeekKey)
	return cfg
}

// UpdateConfig merges update into the configuration. Blank fields and masked keys keep their stored value.
func (s *AIService) UpdateConfig(update domain.AIConfig) (domain.AIConfig, error) {
	provider := strings.TrimSpace(update.Provider)
	if provider != "" && provider != domain.ProviderNone && !domain.IsSupportedProvider(provider) {
		return domain.AIConfig{}, fmt.Errorf("%w: %s", domain.ErrUnsupportedProvider, provider)
	}

	s.mutex.Lock()
	current := s.config
	next := domain.AIConfig{
		Provider:       keepIfBlank(provider, current.Provider),
		Model:          keepIfBlank(update.Model, current.Model),
		AnthropicKey:   mergeKey(update.AnthropicKey, current.AnthropicKey),
		OpenAIKey:      mergeKey(update.OpenAIKey, current.OpenAIKey),
		GeminiKey:      mergeKey(update.GeminiKey, current.GeminiKey),
		HuggingFaceKey: mergeKey(update.HuggingFaceKey, current.HuggingFaceKey),
		OllamaURL:      keepIfBlank(update.OllamaURL, current.OllamaURL),
		DeepSeekKey:    mergeKey(update.DeepSeekKey, current.DeepSeekKey),
	}
	s.config = next
	s.mutex.Unlock()

	s.logger.Info("ai configuration updated",
		zap.String("provider", next.Provider),
		zap.String("model", next.Model),
		zap.Bool("active", next.Active()),
	)
	return next, nil
}

// Status reports whether AI replies are active
func (s *AIService) Status() AIStatus {
	cfg := s.Config()
	configured := cfg.Provider == domain.ProviderNone || cfg.Credential() != ""
	return AIStatus{
		Active:     configured && cfg.Provider != domain.ProviderNone,
		Provider:   cfg.Provider,
		Model:      cfg.Model,
		Configured: configured,
	}
}

// Reset disables the AI provider and clears all keys
func (s *AIService) Reset() {
	s.mutex.Lock()
	s.config = s.defaults
	s.mutex.Unlock()
	s.logger.Info("ai configuration reset")
}

// TestProvider sends a short prompt to a provider with a candidate key and returns its reply.
// The stored configuration is not changed.
func (s *AIService) TestProvider(ctx context.Context, provider, model, apiKey string) (string, error) {
	switch {
	case strings.TrimSpace(apiKey) == "":
		return "", domain.NewValidationError("apiKey", "API key is required")
	case strings.TrimSpace(provider) == "":
		return "", domain.NewValidationError("provider", "provider is required")
	case strings.TrimSpace(model) == "":
		return "", domain.NewValidationError("model", "model is required")
	}
	if !domain.IsSupportedProvider(provider) {
		return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedProvider, provider)
	}

	cfg := withCredential(domain.AIConfig{Provider: provider, Model: model}, provider, apiKey)
	completer, err := s.newCompleter(cfg, providerTestMaxTokens)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, providerTestTimeout)
	defer cancel()

	reply, err := completer.Complete(ctx, providerTestPrompt)
	if err != nil {
		s.logger.Warn("ai provider test failed", zap.String("provider", provider), zap.Error(err))
		return "", err
	}
	if reply == "" {
		reply = provider + " connection successful"
	}
	return reply, nil
}

// ProductAdvice returns the assistant's reply for a product search
func (s *AIService) ProductAdvice(ctx context.Context, query string, results []domain.SearchResult, totalStores int) string {
	reply, ok := s.complete(ctx, BuildProductPrompt(query, results, totalStores), productAdviceMaxTokens)
	if !ok {
		return DemoProductResponse(query, results, totalStores)
	}
	return reply
}

// FlightAdvice returns the assistant's reply for a flight search
func (s *AIService) FlightAdvice(ctx context.Context, query string, flights []domain.FlightOffer, params domain.FlightSearchParams) string {
	reply, ok := s.complete(ctx, BuildFlightPrompt(query, flights, params), flightAdviceMaxTokens)
	if !ok {
		return DemoFlightResponse(flights, params)
	}
	return reply
}

// complete asks the configured provider for a reply. It reports false when no provider is
// active or the call fails, leaving the caller to use demo text.
func (s *AIService) complete(ctx context.Context, prompt string, maxTokens int) (string, bool) {
	cfg := s.Config()
	if !cfg.Active() || s.newCompleter == nil {
		return "", false
	}

	completer, err := s.newCompleter(cfg, maxTokens)
	if err != nil {
		s.logger.Warn("ai provider unavailable", zap.String("provider", cfg.Provider), zap.Error(err))
		return "", false
	}

	reply, err := completer.Complete(ctx, prompt)
	if err != nil {
		s.logger.Warn("ai completion failed, using demo reply", zap.String("provider", cfg.Provider), zap.Error(err))
		return "", false
	}
	if strings.TrimSpace(reply) == "" {
		return "", false
	}
	return reply, true
}

func withCredential(cfg domain.AIConfig, provider, key string) domain.AIConfig {
	switch provider {
	case domain.ProviderAnthropic:
		cfg.AnthropicKey = key
	case domain.ProviderOpenAI:
		cfg.OpenAIKey = key
	case domain.ProviderGemini:
		cfg.GeminiKey = key
	case domain.ProviderHuggingFace:
		cfg.HuggingFaceKey = key
	case domain.ProviderOllama:
		cfg.OllamaURL = key
	case domain.ProviderDeepSeek:
		cfg.DeepSeekKey = key
	}
	return cfg
}

func maskKey(key string) string {
	if key == "" {
		return ""
	}
	runes := []rune(key)
	if len(runes) <= 4 {
		return maskedKeyPrefix
	}
	return maskedKeyPrefix + string(runes[len(runes)-4:])
}

func mergeKey(update, current string) string {
	update = strings.TrimSpace(update)
	if update == "" || strings.HasPrefix(update, maskedKeyPrefix) {
		return current
	}
	return update
}

func keepIfBlank(update, current string) string {
	if strings.TrimSpace(update) == "" {
		return current
	}
	return strings.TrimSpace(update)
}
