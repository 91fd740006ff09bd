package dto

import (
	appdomain "jobdeck-backend/internal/application/domain"
)

type CreateApplicationRequest struct {
	Company string `json:"company" binding:"required"`
	Role    string `json:"role" binding:"required"`
}

// UpdateApplicationRequest carries a partial update. Nil means unchanged;
// an empty date string clears the field.
type UpdateApplicationRequest struct {
	Company         *string `json:"company,omitempty"`
	Role            *string `json:"role,omitempty"`
	Status          *string `json:"status,omitempty"`
	NextStep        *string `json:"next_step,omitempty"`
	AppliedAt       *string `json:"applied_at,omitempty"`
	LastContactedAt *string `json:"last_contacted_at,omitempty"`
}

type ApplicationsResponse struct {
	Applications []*appdomain.Application `json:"applications"`
}

type SyncResponse struct {
	Message   string `json:"message"`
	Processed int    `json:"processed"`
}

type SemanticSearchRequest struct {
	Query string `json:"query" binding:"required"`
	Limit int    `json:"limit"`
}

type SemanticSearchMatch struct {
	Interaction *appdomain.Interaction `json:"interaction"`
	Distance    float64                `json:"distance"`
}

type SemanticSearchResponse struct {
	Results []SemanticSearchMatch `json:"results"`
}
