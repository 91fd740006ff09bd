package ai

import (
	"context"
	"log"
	"net"
	"strings"
)

// FallbackExtractor tries Gemini first (better structured output) and falls
// back to the local Ollama model on connectivity or quota failures. Parse
// failures do not trigger the fallback; a second model is no more likely to
// produce valid JSON for the same email.
type FallbackExtractor struct {
	gemini ExtractorService
	ollama ExtractorService
}

// NewFallbackExtractor creates a fallback chain over both providers
func NewFallbackExtractor(gemini, ollama ExtractorService) *FallbackExtractor {
	return &FallbackExtractor{
		gemini: gemini,
		ollama: ollama,
	}
}

func (f *FallbackExtractor) ExtractApplication(ctx context.Context, subject, body string) (*ApplicationExtraction, error) {
	extraction, err := f.gemini.ExtractApplication(ctx, subject, body)
	if err == nil {
		return extraction, nil
	}

	if isConnectionError(err) || isQuotaError(err) {
		log.Printf("[AI] Gemini unavailable (%v), falling back to Ollama", err)
		return f.ollama.ExtractApplication(ctx, subject, body)
	}

	return nil, err
}

// isConnectionError checks if the error is a network/connection error
func isConnectionError(err error) bool {
	if err == nil {
		return false
	}

	if _, ok := err.(net.Error); ok {
		return true
	}

	errStr := strings.ToLower(err.Error())
	connectionIndicators := []string{
		"connection refused",
		"no such host",
		"network is unreachable",
		"connection reset",
		"timeout",
		"dial tcp",
	}

	for _, indicator := range connectionIndicators {
		if strings.Contains(errStr, indicator) {
			return true
		}
	}

	return false
}

// isQuotaError checks if the error indicates API quota exhaustion (429)
func isQuotaError(err error) bool {
	if err == nil {
		return false
	}

	errStr := strings.ToLower(err.Error())
	quotaIndicators := []string{
		"429",
		"quota",
		"rate limit",
		"too many requests",
		"resource exhausted",
	}

	for _, indicator := range quotaIndicators {
		if strings.Contains(errStr, indicator) {
			return true
		}
	}

	return false
}
