package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/projectpulse/project-system/docs"
	"github.com/projectpulse/project-system/internal/api/handler"
	"github.com/projectpulse/project-system/internal/api/middleware"
	"github.com/projectpulse/project-system/internal/core/domain"
	"github.com/projectpulse/project-system/internal/core/ports"
	"github.com/projectpulse/project-system/internal/core/service"
	mongodb "github.com/projectpulse/project-system/internal/infrastructure/db/mongo"
	"github.com/projectpulse/project-system/internal/infrastructure/identity"
	"github.com/projectpulse/project-system/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The live publisher is constructed and started by the caller so its worker
// pool stops with the process context.
func NewRouter(db *mongo.Database, rdb *redis.Client, publisher service.LivePublisher, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("project"))

	// --- Repositories ---
	taskRepo := mongodb.NewTaskRepository(db)
	userRepo := mongodb.NewUserRepository(db)
	notificationRepo := mongodb.NewNotificationRepository(db)
	meetingRepo := mongodb.NewMeetingRepository(db)

	// --- Infrastructure ---
	var provider ports.IdentityProvider = identity.NoopProvider{}
	if cfg.Identity.BaseURL != "" {
		provider = identity.NewHTTPProvider(cfg.Identity.BaseURL, cfg.Identity.APIKey, log)
	}

	// --- Services ---
	notificationService := service.NewNotificationService(notificationRepo, publisher, log)
	taskService := service.NewTaskService(taskRepo, userRepo, notificationService, log)
	roleService := service.NewRoleService(userRepo, taskRepo, provider, notificationService, log)
	meetingService := service.NewMeetingService(meetingRepo, notificationService, log)
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, 24*time.Hour)

	// --- Handlers ---
	taskHandler := handler.NewTaskHandler(taskService)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	roleHandler := handler.NewRoleHandler(roleService)
	meetingHandler := handler.NewMeetingHandler(meetingService)
	authHandler := handler.NewAuthHandler(authService)

	authMW := middleware.Auth(cfg.JWTSecret)
	identityMW := middleware.Identity(roleService)
	managerOnly := middleware.RBAC(domain.RoleManager)
	leaderOnly := middleware.RBAC(domain.RoleTeamLeader)

	// --- Public routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Authenticated routes ---
	v1 := e.Group("/v1", authMW, identityMW)

	v1.GET("/me/role", roleHandler.CurrentRole)
	v1.GET("/dashboard/:namespace", roleHandler.Dashboard)

	v1.GET("/tasks", taskHandler.List)
	v1.GET("/tasks/:id", taskHandler.Get)
	v1.POST("/tasks", taskHandler.Create, leaderOnly)
	v1.PATCH("/tasks/:id/assignment", taskHandler.Assign, leaderOnly)
	v1.POST("/tasks/:id/accept", taskHandler.Accept)
	v1.PATCH("/tasks/:id/progress", taskHandler.SetProgress)
	v1.PUT("/tasks/:id/status", taskHandler.SetStatus)
	v1.POST("/tasks/cleanup", taskHandler.Cleanup, managerOnly)

	v1.GET("/notifications", notificationHandler.List)
	v1.POST("/notifications/:id/read", notificationHandler.MarkRead)

	v1.PUT("/meetings/:id/response", meetingHandler.Respond)

	v1.PUT("/users/:id/role", roleHandler.SetRole, managerOnly)
	v1.POST("/users/role-sync", roleHandler.SyncRoles, managerOnly)

	return e
}
