package usecase

import (
	"context"
	"log"
	"strings"
	"time"

	appdomain "jobdeck-backend/internal/application/domain"
	"jobdeck-backend/internal/application/dto"
	"jobdeck-backend/internal/application/repository"

	"github.com/google/uuid"
)

type applicationUsecase struct {
	appRepo     repository.ApplicationRepository
	syncRunRepo repository.SyncRunRepository
	searcher    InteractionSearcher // nil when semantic search is not configured
}

// NewApplicationUsecase creates the application tracking usecase. searcher
// may be nil.
func NewApplicationUsecase(
	appRepo repository.ApplicationRepository,
	syncRunRepo repository.SyncRunRepository,
	searcher InteractionSearcher,
) ApplicationUsecase {
	return &applicationUsecase{
		appRepo:     appRepo,
		syncRunRepo: syncRunRepo,
		searcher:    searcher,
	}
}

func (u *applicationUsecase) GetApplications(userID string) ([]*appdomain.Application, error) {
	return u.appRepo.FindByUserID(userID)
}

func (u *applicationUsecase) CreateApplication(userID string, req *dto.CreateApplicationRequest) (*appdomain.Application, error) {
	now := time.Now()
	app := &appdomain.Application{
		ID:        uuid.NewString(),
		UserID:    userID,
		Company:   req.Company,
		Role:      req.Role,
		Status:    appdomain.StatusActive,
		AppliedAt: &now,
	}

	if err := u.appRepo.Create(app); err != nil {
		return nil, err
	}
	return app, nil
}

func (u *applicationUsecase) UpdateApplication(userID, id string, req *dto.UpdateApplicationRequest) (*appdomain.Application, error) {
	app, err := u.findOwned(userID, id)
	if err != nil {
		return nil, err
	}

	if req.Company != nil {
		app.Company = *req.Company
	}
	if req.Role != nil {
		app.Role = *req.Role
	}
	if req.Status != nil {
		status := appdomain.Status(strings.ToUpper(*req.Status))
		if !appdomain.ValidStatus(status) {
			return nil, ErrInvalidStatus
		}
		app.Status = status
	}
	if req.NextStep != nil {
		app.NextStep = *req.NextStep
	}
	if req.AppliedAt != nil {
		t, err := parseDate(*req.AppliedAt)
		if err != nil {
			return nil, err
		}
		app.AppliedAt = t
	}
	if req.LastContactedAt != nil {
		t, err := parseDate(*req.LastContactedAt)
		if err != nil {
			return nil, err
		}
		app.LastContactedAt = t
	}

	if err := u.appRepo.Update(app); err != nil {
		return nil, err
	}
	return app, nil
}

func (u *applicationUsecase) DeleteApplication(ctx context.Context, userID, id string) error {
	app, err := u.findOwned(userID, id)
	if err != nil {
		return err
	}

	if err := u.appRepo.Delete(app.ID); err != nil {
		return err
	}

	// Embeddings are cleaned up best effort; the rows are already gone
	if u.searcher != nil {
		for _, interaction := range app.Interactions {
			if err := u.searcher.DeleteInteraction(ctx, interaction.ID); err != nil {
				log.Printf("[Application] Failed to delete embedding for interaction %s: %v", interaction.ID, err)
			}
		}
	}

	return nil
}

func (u *applicationUsecase) GetSyncHistory(userID string, limit int) ([]*appdomain.SyncRun, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return u.syncRunRepo.FindByUserID(userID, limit)
}

func (u *applicationUsecase) SemanticSearch(ctx context.Context, userID, query string, limit int) (*dto.SemanticSearchResponse, error) {
	if u.searcher == nil {
		return nil, ErrSearchUnavailable
	}
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	ids, distances, err := u.searcher.SemanticSearch(ctx, userID, query, limit)
	if err != nil {
		return nil, err
	}

	interactions, err := u.appRepo.FindInteractionsByUserID(userID)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*appdomain.Interaction, len(interactions))
	for _, interaction := range interactions {
		byID[interaction.ID] = interaction
	}

	resp := &dto.SemanticSearchResponse{Results: []dto.SemanticSearchMatch{}}
	for i, id := range ids {
		interaction, ok := byID[id]
		if !ok {
			// stale index entry, the row was deleted
			continue
		}
		match := dto.SemanticSearchMatch{Interaction: interaction}
		if i < len(distances) {
			match.Distance = distances[i]
		}
		resp.Results = append(resp.Results, match)
	}
	return resp, nil
}

// findOwned loads the application and verifies ownership. A foreign
// application is reported as not found rather than forbidden.
func (u *applicationUsecase) findOwned(userID, id string) (*appdomain.Application, error) {
	app, err := u.appRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if app == nil || app.UserID != userID {
		return nil, ErrApplicationNotFound
	}
	return app, nil
}

// parseDate accepts RFC 3339 or bare dates. An empty string clears the field.
func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, ErrInvalidDate
}
