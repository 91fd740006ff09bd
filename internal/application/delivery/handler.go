package delivery

import (
	"context"
	"errors"
	"net/http"

	"jobdeck-backend/internal/application/dto"
	"jobdeck-backend/internal/application/usecase"

	"github.com/gin-gonic/gin"
)

// ApplicationHandler exposes application tracking and mailbox sync endpoints
type ApplicationHandler struct {
	appUsecase  usecase.ApplicationUsecase
	syncUsecase usecase.SyncUsecase
}

func NewApplicationHandler(appUsecase usecase.ApplicationUsecase, syncUsecase usecase.SyncUsecase) *ApplicationHandler {
	return &ApplicationHandler{
		appUsecase:  appUsecase,
		syncUsecase: syncUsecase,
	}
}

// GetApplications handles GET /api/applications
func (h *ApplicationHandler) GetApplications(c *gin.Context) {
	userID := c.GetString("userID")

	apps, err := h.appUsecase.GetApplications(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch applications"})
		return
	}

	c.JSON(http.StatusOK, dto.ApplicationsResponse{Applications: apps})
}

// CreateApplication handles POST /api/applications
func (h *ApplicationHandler) CreateApplication(c *gin.Context) {
	userID := c.GetString("userID")

	var req dto.CreateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	app, err := h.appUsecase.CreateApplication(userID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create application"})
		return
	}

	c.JSON(http.StatusCreated, app)
}

// UpdateApplication handles PUT /api/applications/:id
func (h *ApplicationHandler) UpdateApplication(c *gin.Context) {
	userID := c.GetString("userID")
	id := c.Param("id")

	var req dto.UpdateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	app, err := h.appUsecase.UpdateApplication(userID, id, &req)
	if err != nil {
		h.writeUsecaseError(c, err, "Failed to update application")
		return
	}

	c.JSON(http.StatusOK, app)
}

// DeleteApplication handles DELETE /api/applications/:id
func (h *ApplicationHandler) DeleteApplication(c *gin.Context) {
	userID := c.GetString("userID")
	id := c.Param("id")

	if err := h.appUsecase.DeleteApplication(c.Request.Context(), userID, id); err != nil {
		h.writeUsecaseError(c, err, "Failed to delete application")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Application deleted"})
}

// SyncMailbox handles POST /api/applications/sync
func (h *ApplicationHandler) SyncMailbox(c *gin.Context) {
	userID := c.GetString("userID")

	result, err := h.syncUsecase.SyncMailbox(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrNoMailboxGrant):
			c.JSON(http.StatusBadRequest, gin.H{"error": "No mailbox connected. Connect Gmail or IMAP first."})
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			c.JSON(http.StatusRequestTimeout, gin.H{"error": "Sync was interrupted"})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"error": "Mailbox sync failed"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.SyncResponse{
		Message:   "Sync completed",
		Processed: result.Processed,
	})
}

// GetSyncHistory handles GET /api/applications/sync/history
func (h *ApplicationHandler) GetSyncHistory(c *gin.Context) {
	userID := c.GetString("userID")

	runs, err := h.appUsecase.GetSyncHistory(userID, 20)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sync history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"runs": runs})
}

// WatchMailbox handles POST /api/applications/watch
func (h *ApplicationHandler) WatchMailbox(c *gin.Context) {
	userID := c.GetString("userID")

	if err := h.syncUsecase.WatchMailbox(c.Request.Context(), userID); err != nil {
		switch {
		case errors.Is(err, usecase.ErrNoMailboxGrant):
			c.JSON(http.StatusBadRequest, gin.H{"error": "No mailbox connected"})
		case errors.Is(err, usecase.ErrWatchUnsupported):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start mailbox watch"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Mailbox watch started"})
}

// StopWatch handles POST /api/applications/watch/stop
func (h *ApplicationHandler) StopWatch(c *gin.Context) {
	userID := c.GetString("userID")

	if err := h.syncUsecase.StopWatch(c.Request.Context(), userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to stop mailbox watch"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Mailbox watch stopped"})
}

// SemanticSearch handles POST /api/applications/search/semantic
func (h *ApplicationHandler) SemanticSearch(c *gin.Context) {
	userID := c.GetString("userID")

	var req dto.SemanticSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.appUsecase.SemanticSearch(c.Request.Context(), userID, req.Query, req.Limit)
	if err != nil {
		if errors.Is(err, usecase.ErrSearchUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Semantic search failed"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ApplicationHandler) writeUsecaseError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, usecase.ErrApplicationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
	case errors.Is(err, usecase.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status must be one of ACTIVE, OFFER, REJECTED"})
	case errors.Is(err, usecase.ErrInvalidDate):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dates must be YYYY-MM-DD or RFC 3339"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
