package ai

import (
	"fmt"
)

// Config holds AI provider configuration
type Config struct {
	Provider ProviderType // "gemini", "ollama" or "auto"

	GeminiAPIKey string

	OllamaBaseURL string // e.g., "http://localhost:11434"
	OllamaModel   string // e.g., "llama3", "mistral"
}

// NewExtractorService creates an ExtractorService based on the config.
// This is the factory function - switch AI provider by changing cfg.Provider.
func NewExtractorService(cfg Config) (ExtractorService, error) {
	switch cfg.Provider {
	case ProviderGemini:
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is required for Gemini provider")
		}
		return NewGeminiExtractor(cfg.GeminiAPIKey), nil

	case ProviderOllama:
		return NewOllamaExtractor(cfg.OllamaBaseURL, cfg.OllamaModel), nil

	default:
		// Auto: Gemini with Ollama fallback when both are configured,
		// otherwise whichever is available
		if cfg.GeminiAPIKey != "" {
			return NewFallbackExtractor(
				NewGeminiExtractor(cfg.GeminiAPIKey),
				NewOllamaExtractor(cfg.OllamaBaseURL, cfg.OllamaModel),
			), nil
		}
		return NewOllamaExtractor(cfg.OllamaBaseURL, cfg.OllamaModel), nil
	}
}
