package repository

import (
	"errors"
	"time"

	appdomain "jobdeck-backend/internal/application/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// gormApplicationRepository implements ApplicationRepository using GORM
type gormApplicationRepository struct {
	db *gorm.DB
}

// NewGormApplicationRepository creates a new GORM-based ApplicationRepository
func NewGormApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &gormApplicationRepository{db: db}
}

func (r *gormApplicationRepository) Create(app *appdomain.Application) error {
	if app.ID == "" {
		app.ID = uuid.New().String()
	}
	app.CreatedAt = time.Now()
	app.UpdatedAt = time.Now()
	return r.db.Create(app).Error
}

func (r *gormApplicationRepository) FindByID(id string) (*appdomain.Application, error) {
	var app appdomain.Application
	err := r.db.Preload("Interactions").Where("id = ?", id).First(&app).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &app, nil
}

func (r *gormApplicationRepository) FindByUserID(userID string) ([]*appdomain.Application, error) {
	var apps []*appdomain.Application
	err := r.db.Preload("Interactions").
		Where("user_id = ?", userID).
		Order("applied_at DESC NULLS LAST").
		Find(&apps).Error
	return apps, err
}

func (r *gormApplicationRepository) Update(app *appdomain.Application) error {
	app.UpdatedAt = time.Now()
	return r.db.Save(app).Error
}

func (r *gormApplicationRepository) Delete(id string) error {
	// Interactions are removed by the ON DELETE CASCADE constraint
	return r.db.Delete(&appdomain.Application{}, "id = ?", id).Error
}

func (r *gormApplicationRepository) CreateInteraction(interaction *appdomain.Interaction) error {
	if interaction.ID == "" {
		interaction.ID = uuid.New().String()
	}
	interaction.CreatedAt = time.Now()
	return r.db.Create(interaction).Error
}

func (r *gormApplicationRepository) FindInteractionsByUserID(userID string) ([]*appdomain.Interaction, error) {
	var interactions []*appdomain.Interaction
	err := r.db.
		Joins("JOIN applications ON applications.id = interactions.application_id").
		Where("applications.user_id = ?", userID).
		Find(&interactions).Error
	return interactions, err
}
