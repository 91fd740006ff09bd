package ai

import (
	"context"
)

// ApplicationExtraction holds the structured fields pulled out of one
// job-related email
type ApplicationExtraction struct {
	CompanyName string `json:"companyName"`
	Role        string `json:"role"`
	Status      string `json:"status"` // ACTIVE, OFFER or REJECTED
	NextStep    string `json:"nextStep"`
	Summary     string `json:"summary"`
}

// ExtractorService turns unstructured email content into an
// ApplicationExtraction. Implement this interface to add new AI providers.
type ExtractorService interface {
	ExtractApplication(ctx context.Context, subject, body string) (*ApplicationExtraction, error)
}

// ProviderType represents the AI provider type
type ProviderType string

const (
	ProviderGemini ProviderType = "gemini"
	ProviderOllama ProviderType = "ollama"
	ProviderAuto   ProviderType = "auto"
)
