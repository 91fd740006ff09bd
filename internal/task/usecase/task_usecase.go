package usecase

import (
	"errors"

	"jobdeck-backend/internal/task/domain"
	"jobdeck-backend/internal/task/repository"
)

var ErrTaskNotFound = errors.New("task not found")

// taskUsecase implements TaskUsecase interface
type taskUsecase struct {
	taskRepo repository.TaskRepository
}

// NewTaskUsecase creates a new instance of taskUsecase
func NewTaskUsecase(taskRepo repository.TaskRepository) TaskUsecase {
	return &taskUsecase{
		taskRepo: taskRepo,
	}
}

func (u *taskUsecase) CreateTask(userID, title string) (*domain.Task, error) {
	task := &domain.Task{
		UserID: userID,
		Title:  title,
	}

	if err := u.taskRepo.Create(task); err != nil {
		return nil, err
	}

	return task, nil
}

func (u *taskUsecase) GetUserTasks(userID string) ([]*domain.Task, error) {
	return u.taskRepo.FindByUserID(userID)
}

func (u *taskUsecase) ToggleTask(userID, taskID string) (*domain.Task, error) {
	task, err := u.findOwned(userID, taskID)
	if err != nil {
		return nil, err
	}

	task.IsCompleted = !task.IsCompleted
	if err := u.taskRepo.Update(task); err != nil {
		return nil, err
	}

	return task, nil
}

func (u *taskUsecase) DeleteTask(userID, taskID string) error {
	task, err := u.findOwned(userID, taskID)
	if err != nil {
		return err
	}
	return u.taskRepo.Delete(task.ID)
}

// findOwned returns the task only when it exists and belongs to the user.
// Ownership failures are reported as not-found so task IDs don't leak.
func (u *taskUsecase) findOwned(userID, taskID string) (*domain.Task, error) {
	task, err := u.taskRepo.FindByID(taskID)
	if err != nil {
		return nil, err
	}
	if task == nil || task.UserID != userID {
		return nil, ErrTaskNotFound
	}
	return task, nil
}
