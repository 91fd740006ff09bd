package ai

import (
	"context"

	"jobdeck-backend/pkg/gemini"
)

// GeminiExtractor implements ExtractorService using the Gemini API
type GeminiExtractor struct {
	service *gemini.Service
}

// NewGeminiExtractor creates a Gemini-backed extractor
func NewGeminiExtractor(apiKey string) *GeminiExtractor {
	return &GeminiExtractor{
		service: gemini.NewService(apiKey),
	}
}

func (g *GeminiExtractor) ExtractApplication(ctx context.Context, subject, body string) (*ApplicationExtraction, error) {
	prompt := buildExtractionPrompt(subject, body)

	text, err := g.service.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	return ParseApplicationExtraction(text)
}
