package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/geocoder89/toolhub/internal/auth"
	"github.com/geocoder89/toolhub/internal/config"
	"github.com/geocoder89/toolhub/internal/http/handlers"
	"github.com/geocoder89/toolhub/internal/http/middlewares"
	"github.com/geocoder89/toolhub/internal/observability"
)

// Deps are the collaborators the router mounts. Stores and services are
// built by the caller so the same router serves postgres, memory and tests.
type Deps struct {
	Users       handlers.UserStore
	JWT         *auth.Manager
	Catalog     handlers.ToolsService
	Submissions handlers.SubmissionsService
	Favorites   handlers.FavoritesService

	// Prom is optional; /metrics and request metrics are skipped without it.
	Prom        *observability.Prom
	ReadyChecks map[string]handlers.PingFunc
}

func NewRouter(log *slog.Logger, cfg config.Config, d Deps) *gin.Engine {
	if cfg.Env != "dev" && cfg.Env != "test" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// middleware

	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	if cfg.OtelEnabled {
		r.Use(otelgin.Middleware("toolhub-api"))
	}
	if d.Prom != nil {
		r.Use(d.Prom.GinHandleMiddleware())
	}
	r.Use(middlewares.RequestLogger(log))
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(cfg.CORSAllowedOrigins))
	r.Use(middlewares.MaxBodyBytes(cfg.MaxBodyBytes))
	r.Use(middlewares.RequireJSON())

	// health
	health := handlers.NewHealthHandler(d.ReadyChecks)
	r.GET("/healthz", health.Healthz)
	r.GET("/readyz", health.Readyz)

	if d.Prom != nil {
		r.GET("/metrics", gin.WrapH(d.Prom.Handler()))
	}

	authMw := middlewares.NewAuthMiddleware(d.JWT, d.Users)

	authHandler := handlers.NewAuthHandler(d.Users, d.JWT)
	toolsHandler := handlers.NewToolsHandler(d.Catalog)
	submissionsHandler := handlers.NewSubmissionsHandler(d.Submissions)
	favoritesHandler := handlers.NewFavoritesHandler(d.Favorites)

	api := r.Group("/api")

	// auth
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/auth/me", authMw.RequireAuth(), authHandler.Me)

	// catalog (public reads)
	api.GET("/tools", toolsHandler.ListTools)
	api.GET("/tools/:id", toolsHandler.GetTool)
	api.GET("/categories", handlers.ListCategories)

	// public submission form
	api.POST("/submissions", submissionsHandler.CreateSubmission)

	// admin
	admin := api.Group("")
	admin.Use(authMw.RequireAdmin())
	{
		admin.POST("/tools", toolsHandler.CreateTool)
		admin.PUT("/tools/:id", toolsHandler.UpdateTool)
		admin.DELETE("/tools/:id", toolsHandler.DeleteTool)

		admin.GET("/submissions", submissionsHandler.ListSubmissions)
		admin.PUT("/submissions/:id/approve", submissionsHandler.ApproveSubmission)
	}

	// favorites
	favorites := api.Group("/favorites")
	favorites.Use(authMw.RequireAuth())
	{
		favorites.GET("", favoritesHandler.ListFavorites)
		favorites.POST("/:toolId", favoritesHandler.AddFavorite)
		favorites.DELETE("/:toolId", favoritesHandler.RemoveFavorite)
	}

	return r
}
