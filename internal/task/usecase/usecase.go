package usecase

import (
	"jobdeck-backend/internal/task/domain"
)

// TaskUsecase defines the interface for task business logic
type TaskUsecase interface {
	CreateTask(userID, title string) (*domain.Task, error)
	GetUserTasks(userID string) ([]*domain.Task, error)

	// ToggleTask flips the completion status of a task
	ToggleTask(userID, taskID string) (*domain.Task, error)

	DeleteTask(userID, taskID string) error
}
