package repository

import (
	appdomain "jobdeck-backend/internal/application/domain"
)

// ApplicationRepository defines data access for applications and interactions
type ApplicationRepository interface {
	Create(app *appdomain.Application) error
	FindByID(id string) (*appdomain.Application, error)

	// FindByUserID returns the user's applications ordered by applied_at
	// descending, interactions included
	FindByUserID(userID string) ([]*appdomain.Application, error)

	Update(app *appdomain.Application) error

	// Delete removes the application; interactions go with it via cascade
	Delete(id string) error

	CreateInteraction(interaction *appdomain.Interaction) error

	// FindInteractionsByUserID returns every interaction across all of the
	// user's applications, the input of the sync duplicate filter
	FindInteractionsByUserID(userID string) ([]*appdomain.Interaction, error)
}

// SyncRunRepository records sync run summaries
type SyncRunRepository interface {
	Create(run *appdomain.SyncRun) error
	FindByUserID(userID string, limit int) ([]*appdomain.SyncRun, error)
}
