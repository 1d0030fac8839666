package llm

import (
	"context"

	"leaselens/internal/model"
)

// Provider defines the interface for LLM fallback providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// ExtractFacts asks the model for the missing lease fields only,
	// constrained to a strictly parseable JSON response
	ExtractFacts(ctx context.Context, req ExtractRequest) (*ExtractResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// ExtractRequest contains the input for LLM fact extraction
type ExtractRequest struct {
	// Text is the normalized lease text (already capped by the caller)
	Text string

	// Missing is the closed set of fields the model may answer for.
	// Anything else in the response is discarded during parsing.
	Missing []model.FieldKind

	// Prompt is an optional custom prompt (if empty, use default)
	Prompt string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// ExtractResponse contains the model's answers for the requested fields.
// A field absent from Values means "not found".
type ExtractResponse struct {
	Values map[model.FieldKind]string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// MaxTokens for response generation
	MaxTokens int

	// MaxPromptChars caps how much lease text goes into the prompt
	MaxPromptChars int

	// Rate limit applied before every fallback call
	RequestsPerSecond float64
	Burst             int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:          "", // Disabled by default
		Model:             "",
		Timeout:           30,
		MaxTokens:         400,
		MaxPromptChars:    12000,
		RequestsPerSecond: 1,
		Burst:             2,
	}
}

// ConfigFromModel converts the application config to llm.Config
func ConfigFromModel(cfg *model.Config) Config {
	return Config{
		Provider:          cfg.LLM.Provider,
		Model:             cfg.LLM.Model,
		APIKey:            cfg.LLM.APIKey,
		BaseURL:           cfg.LLM.BaseURL,
		Timeout:           cfg.LLM.Timeout,
		MaxTokens:         cfg.LLM.MaxTokens,
		MaxPromptChars:    cfg.Extract.MaxPromptChars,
		RequestsPerSecond: cfg.LLM.RequestsPerSecond,
		Burst:             cfg.LLM.Burst,
		HTTPProxy:         cfg.LLM.HTTPProxy,
		HTTPSProxy:        cfg.LLM.HTTPSProxy,
		NoProxy:           cfg.LLM.NoProxy,
	}
}
