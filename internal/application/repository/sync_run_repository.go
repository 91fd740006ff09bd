package repository

import (
	"time"

	appdomain "jobdeck-backend/internal/application/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// gormSyncRunRepository implements SyncRunRepository using GORM
type gormSyncRunRepository struct {
	db *gorm.DB
}

// NewGormSyncRunRepository creates a new GORM-based SyncRunRepository
func NewGormSyncRunRepository(db *gorm.DB) SyncRunRepository {
	return &gormSyncRunRepository{db: db}
}

func (r *gormSyncRunRepository) Create(run *appdomain.SyncRun) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	run.CreatedAt = time.Now()
	return r.db.Create(run).Error
}

func (r *gormSyncRunRepository) FindByUserID(userID string, limit int) ([]*appdomain.SyncRun, error) {
	if limit <= 0 {
		limit = 20
	}
	var runs []*appdomain.SyncRun
	err := r.db.Where("user_id = ?", userID).
		Order("started_at DESC").
		Limit(limit).
		Find(&runs).Error
	return runs, err
}
