// Package handler wires the HTTP transport: routing, middleware, and the
// mapping from service errors to the outward error surface.
package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/taskhive/backend/internal/config"
	"github.com/taskhive/backend/internal/service"
)

type Services struct {
	Accounts *service.AccountService
	Tasks    *service.TaskService
	Tokens   *service.TokenService
}

// NewRouter builds the full route tree. rdb may be nil, in which case the
// auth rate limiter is not installed.
func NewRouter(cfg config.Config, log *logrus.Logger, svcs Services, rdb *redis.Client) *gin.Engine {
	InitValidator()

	r := gin.New()
	r.Use(Recovery(log))
	r.Use(RequestLogger(log))
	r.Use(CORSMiddleware(cfg.CORSOriginList()))

	r.GET("/", Root)
	r.GET("/health", Health(cfg.AppEnv))
	r.GET("/openapi.json", OpenAPIDoc)

	authHandler := NewAuthHandler(svcs.Accounts, log)
	taskHandler := NewTaskHandler(svcs.Tasks, log)

	auth := r.Group("/api/auth")
	if rdb != nil {
		limited := auth.Group("", RateLimit(rdb, cfg.Redis.AuthLimit, cfg.Redis.AuthWindow, log))
		limited.POST("/signup", authHandler.Signup)
		limited.POST("/signin", authHandler.Signin)
	} else {
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/signin", authHandler.Signin)
	}
	auth.GET("/me", AuthMiddleware(svcs.Tokens, log), authHandler.Me)

	tasks := r.Group("/api/:user_id/tasks",
		AuthMiddleware(svcs.Tokens, log),
		RequireOwner(log),
	)
	tasks.GET("", taskHandler.List)
	tasks.POST("", taskHandler.Create)
	tasks.GET("/:task_id", taskHandler.Get)
	tasks.PUT("/:task_id", taskHandler.Update)
	tasks.DELETE("/:task_id", taskHandler.Delete)
	tasks.PATCH("/:task_id/complete", taskHandler.SetCompletion)

	return r
}
