package model

import "time"

// Config holds the complete LeaseLens configuration
type Config struct {
	Extract     ExtractConfig     `yaml:"extract"`
	LLM         LLMConfig         `yaml:"llm"`
	Cache       CacheConfig       `yaml:"cache"`
	Server      ServerConfig      `yaml:"server"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Output      OutputConfig      `yaml:"output"`
}

// ExtractConfig controls the extraction engine
type ExtractConfig struct {
	// MaxPromptChars caps how much document text is sent to the LLM fallback
	MaxPromptChars int `yaml:"max_prompt_chars"`

	// PositionalWindow bounds the tier-3 "first date in document" fallback
	PositionalWindow int `yaml:"positional_window"`
}

// LLMConfig holds LLM fallback provider configuration
type LLMConfig struct {
	// Provider name: "openai", "anthropic", "ollama", "" (disabled)
	Provider string `yaml:"provider"`

	// Model name (provider-specific)
	Model string `yaml:"model"`

	// APIKey for OpenAI/Anthropic (prefer env vars)
	APIKey string `yaml:"api_key,omitempty"`

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string `yaml:"base_url,omitempty"`

	// Timeout for API requests, seconds
	Timeout int `yaml:"timeout"`

	// MaxTokens for response generation
	MaxTokens int `yaml:"max_tokens"`

	// RequestsPerSecond rate-limits fallback calls to the provider
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`

	// Proxy settings
	HTTPProxy  string `yaml:"http_proxy,omitempty"`
	HTTPSProxy string `yaml:"https_proxy,omitempty"`
	NoProxy    string `yaml:"no_proxy,omitempty"`
}

// CacheConfig controls extraction result caching
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Dir       string        `yaml:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl"`
}

// ServerConfig controls the HTTP upload server
type ServerConfig struct {
	Addr           string `yaml:"addr"`
	MaxUploadBytes int64  `yaml:"max_upload_bytes"`
	UploadDir      string `yaml:"upload_dir"`
}

// ConcurrencyConfig controls worker pools
type ConcurrencyConfig struct {
	BatchWorkers int `yaml:"batch_workers"`
}

// OutputConfig controls CLI output
type OutputConfig struct {
	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Extract: ExtractConfig{
			MaxPromptChars:   12000,
			PositionalWindow: 2000,
		},
		LLM: LLMConfig{
			Provider:          "", // Disabled by default
			Timeout:           30,
			MaxTokens:         400,
			RequestsPerSecond: 1,
			Burst:             2,
		},
		Cache: CacheConfig{
			Enabled:   true,
			MemoryTTL: 15 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Server: ServerConfig{
			Addr:           ":8080",
			MaxUploadBytes: 25 << 20,
		},
		Concurrency: ConcurrencyConfig{
			BatchWorkers: 4,
		},
		Output: OutputConfig{},
	}
}
