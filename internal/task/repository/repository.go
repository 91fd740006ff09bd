package repository

import (
	"jobdeck-backend/internal/task/domain"
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	Create(task *domain.Task) error
	FindByID(id string) (*domain.Task, error)
	FindByUserID(userID string) ([]*domain.Task, error)
	Update(task *domain.Task) error
	Delete(id string) error
}
