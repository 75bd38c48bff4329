package llm

import (
	"os"
	"strconv"
	"strings"
)

const (
	ProviderOllama = "ollama"
	ProviderGroq   = "groq"
	ProviderGemini = "gemini"
)

// LLMConfig holds all configuration for the text-completion client.
type LLMConfig struct {
	Provider    string
	LogCalls    bool
	Endpoint    string
	Model       string
	APIKey      string
	TimeoutMs   int
	MaxRetries  int
	Temperature float64
	MaxTokens   int
}

// DefaultConfig returns the Groq defaults. Temperature is 0 so repeated
// requests for the same department stay as stable as the model allows.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Provider:    ProviderGroq,
		Endpoint:    defaultEndpoint(ProviderGroq),
		Model:       defaultModel(ProviderGroq),
		TimeoutMs:   60000,
		MaxRetries:  1,
		Temperature: 0,
		MaxTokens:   2048,
	}
}

// LoadConfig reads configuration from environment variables, falling back
// to provider defaults for any unset or invalid values.
func LoadConfig() LLMConfig {
	cfg := DefaultConfig()

	if v := os.Getenv("TIMETABLER_LLM_PROVIDER"); v != "" {
		cfg.Provider = strings.ToLower(strings.TrimSpace(v))
		cfg.Endpoint = defaultEndpoint(cfg.Provider)
		cfg.Model = defaultModel(cfg.Provider)
	}
	if v := os.Getenv("TIMETABLER_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("TIMETABLER_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = strings.TrimRight(v, "/")
	}
	if v := os.Getenv("TIMETABLER_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("TIMETABLER_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("TIMETABLER_LLM_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}
	if v := os.Getenv("TIMETABLER_LLM_TEMPERATURE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 && f <= 2 {
			cfg.Temperature = f
		}
	}
	if v := os.Getenv("TIMETABLER_LLM_MAX_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxTokens = n
		}
	}

	switch cfg.Provider {
	case ProviderGroq:
		cfg.APIKey = os.Getenv("GROQ_API_KEY")
	case ProviderGemini:
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
		if cfg.APIKey == "" {
			cfg.APIKey = os.Getenv("GOOGLE_API_KEY")
		}
	}

	return cfg
}

func defaultEndpoint(provider string) string {
	switch provider {
	case ProviderOllama:
		return "http://localhost:11434"
	case ProviderGroq:
		return "https://api.groq.com/openai/v1"
	default:
		return ""
	}
}

func defaultModel(provider string) string {
	switch provider {
	case ProviderOllama:
		return "llama3.2"
	case ProviderGroq:
		return "deepseek-r1-distill-llama-70b"
	case ProviderGemini:
		return "gemini-2.0-flash"
	default:
		return ""
	}
}
