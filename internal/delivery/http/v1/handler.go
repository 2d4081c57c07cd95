package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-task-tracker/internal/repository"
	"github.com/adanyl0v/go-task-tracker/internal/services"
)

type Handler interface {
	HandleRequestID(c *gin.Context)
	HandleRequestLogger(c *gin.Context)
	HandleMetrics(c *gin.Context)
	HandleAuthMiddleware(c *gin.Context)

	HandleHealth(c *gin.Context)

	HandleCreateTask(c *gin.Context)
	HandleGetTasks(c *gin.Context)
	HandleSearchTasks(c *gin.Context)
	HandleUpdateTask(c *gin.Context)
	HandleDeleteTask(c *gin.Context)
}

type handlerImpl struct {
	logger  zerolog.Logger
	auth    services.AuthService
	users   services.UserService
	tasks   services.TaskService
	store   repository.Pinger
	metrics *Metrics
}

func New(
	logger zerolog.Logger,
	authService services.AuthService,
	userService services.UserService,
	taskService services.TaskService,
	store repository.Pinger,
	metrics *Metrics,
) Handler {
	if metrics == nil {
		metrics = NewMetrics()
	}
	return &handlerImpl{
		logger:  logger,
		auth:    authService,
		users:   userService,
		tasks:   taskService,
		store:   store,
		metrics: metrics,
	}
}

// RegisterTaskRoutes mounts the task endpoints behind the auth middleware.
func RegisterTaskRoutes(router gin.IRouter, h Handler) {
	tasks := router.Group("/tasks", h.HandleAuthMiddleware)
	tasks.POST("", h.HandleCreateTask)
	tasks.GET("", h.HandleGetTasks)
	tasks.GET("/search", h.HandleSearchTasks)
	tasks.PUT("", h.HandleUpdateTask)
	tasks.PUT("/:id", h.HandleUpdateTask)
	tasks.DELETE("", h.HandleDeleteTask)
	tasks.DELETE("/:id", h.HandleDeleteTask)
}
