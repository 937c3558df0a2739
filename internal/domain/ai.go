package domain

// AI provider names accepted in configuration
const (
	ProviderNone        = "none"
	ProviderAnthropic   = "anthropic"
	ProviderOpenAI      = "openai"
	ProviderGemini      = "gemini-free"
	ProviderHuggingFace = "huggingface"
	ProviderOllama      = "ollama"
	ProviderDeepSeek    = "deepseek"
)

// SupportedProviders lists the AI providers with an adapter, in display order
var SupportedProviders = []string{
	ProviderAnthropic,
	ProviderOpenAI,
	ProviderGemini,
	ProviderHuggingFace,
	ProviderOllama,
	ProviderDeepSeek,
}

// AIConfig is the run-time AI provider configuration
type AIConfig struct {
	Provider       string `json:"provider"`
	Model          string `json:"model"`
	AnthropicKey   string `json:"anthropicKey"`
	OpenAIKey      string `json:"openaiKey"`
	GeminiKey      string `json:"geminiFreeKey"`
	HuggingFaceKey string `json:"huggingfaceKey"`
	OllamaURL      string `json:"ollamaUrl"`
	DeepSeekKey    string `json:"deepseekKey"`
}

// Credential returns the key (or base URL for ollama) of the selected provider
func (c AIConfig) Credential() string {
	return c.CredentialFor(c.Provider)
}

// CredentialFor returns the key (or base URL for ollama) of the named provider
func (c AIConfig) CredentialFor(provider string) string {
	switch provider {
	case ProviderAnthropic:
		return c.AnthropicKey
	case ProviderOpenAI:
		return c.OpenAIKey
	case ProviderGemini:
		return c.GeminiKey
	case ProviderHuggingFace:
		return c.HuggingFaceKey
	case ProviderOllama:
		return c.OllamaURL
	case ProviderDeepSeek:
		return c.DeepSeekKey
	}
	return ""
}

// Active reports whether a provider is selected and has a credential
func (c AIConfig) Active() bool {
	return c.Provider != "" && c.Provider != ProviderNone && c.Credential() != ""
}

// IsSupportedProvider reports whether name has an adapter
func IsSupportedProvider(name string) bool {
	for _, p := range SupportedProviders {
		if p == name {
			return true
		}
	}
	return false
}
