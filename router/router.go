package router

import (
	"fmt"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/nkust-web/campus/config"
	"github.com/nkust-web/campus/controllers"
	"github.com/nkust-web/campus/middlewares"
	"github.com/nkust-web/campus/repository"
	"github.com/nkust-web/campus/views"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

type Deps struct {
	Config *config.Config
	Repo   repository.NewsRepository
	Log    *logrus.Logger
	// Limiter throttles /api per client IP; nil disables throttling.
	Limiter *middlewares.RateLimiter
}

func InitRouter(deps Deps) (*gin.Engine, error) {
	cfg := deps.Config
	if cfg.App.Mode != "" {
		gin.SetMode(cfg.App.Mode)
	}

	r := gin.New()
	r.Use(gin.Recovery(), middlewares.RequestID(), middlewares.Logger(deps.Log), middlewares.Metrics())

	allowedOrigins := cfg.CORS.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	allowCreds := !(len(allowedOrigins) == 1 && allowedOrigins[0] == "*")
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middlewares.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middlewares.RequestIDHeader},
		AllowCredentials: allowCreds,
		MaxAge:           12 * time.Hour,
	}))

	tmpl, err := views.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	r.SetHTMLTemplate(tmpl)

	pages := controllers.NewPageController(deps.Repo, deps.Log, cfg.App.Name)
	news := controllers.NewNewsController(deps.Repo, deps.Log)

	r.GET("/", pages.Home)
	r.GET("/news", pages.NewsList)
	r.GET("/news/:id", pages.NewsDetail)
	r.NoRoute(pages.NotFound)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public health endpoints for liveness/readiness checks
	r.GET("/api/health", controllers.Health)
	r.GET("/api/ready", controllers.Ready(deps.Repo, deps.Log))

	api := r.Group("/api")
	if deps.Limiter != nil {
		api.Use(deps.Limiter.Middleware())
	}
	{
		api.GET("/news", news.GetLatestNews)
		api.GET("/news/:id", news.GetNewsByID)
	}

	if cfg.AdminEnabled() {
		secret := []byte(cfg.Auth.JWTSecret)
		api.POST("/auth/login", controllers.Login(controllers.AdminAccount{
			Username:     cfg.Auth.AdminUsername,
			PasswordHash: cfg.Auth.AdminPasswordHash,
			Secret:       secret,
			TokenTTL:     cfg.Auth.TokenTTL,
		}, deps.Log))

		admin := api.Group("/admin")
		admin.Use(middlewares.AuthMiddleware(secret))
		{
			admin.POST("/news", news.CreateNews)
		}
	}

	return r, nil
}
