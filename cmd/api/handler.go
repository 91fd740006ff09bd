package api

import (
	appDelivery "jobdeck-backend/internal/application/delivery"
	appUsecasePkg "jobdeck-backend/internal/application/usecase"
	"jobdeck-backend/internal/auth/delivery"
	authUsecasePkg "jobdeck-backend/internal/auth/usecase"
	taskDelivery "jobdeck-backend/internal/task/delivery"
	taskUsecasePkg "jobdeck-backend/internal/task/usecase"
	"jobdeck-backend/pkg/config"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	authUsecase authUsecasePkg.AuthUsecase
	authHandler *delivery.AuthHandler
	taskHandler *taskDelivery.TaskHandler
	appHandler  *appDelivery.ApplicationHandler
	config      *config.Config
}

func NewHandler(
	authUc authUsecasePkg.AuthUsecase,
	taskUc taskUsecasePkg.TaskUsecase,
	appUc appUsecasePkg.ApplicationUsecase,
	syncUc appUsecasePkg.SyncUsecase,
	cfg *config.Config,
) *Handler {
	return &Handler{
		authUsecase: authUc,
		authHandler: delivery.NewAuthHandler(authUc),
		taskHandler: taskDelivery.NewTaskHandler(taskUc),
		appHandler:  appDelivery.NewApplicationHandler(appUc, syncUc),
		config:      cfg,
	}
}

func (h *Handler) Start(addr string) error {
	r := gin.Default()
	gin.SetMode(gin.ReleaseMode)

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	SetupRoutes(r, h.authUsecase, h.authHandler, h.taskHandler, h.appHandler)

	return r.Run(addr)
}
