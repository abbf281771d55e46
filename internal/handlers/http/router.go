package http

import (
	"net/http"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/rafabene/mediaranker/docs"
	"github.com/rafabene/mediaranker/internal/domain/ports"
	"github.com/rafabene/mediaranker/internal/handlers/middleware"
	"github.com/rafabene/mediaranker/internal/infrastructure/config"
	"github.com/rafabene/mediaranker/internal/infrastructure/i18n"
	"github.com/rafabene/mediaranker/internal/infrastructure/oauth"
	"github.com/rafabene/mediaranker/internal/infrastructure/session"
	"github.com/rafabene/mediaranker/internal/services"
	"github.com/rafabene/mediaranker/internal/views"
)

// RouterDeps reúne o que o roteador precisa para montar os handlers
type RouterDeps struct {
	Config          *config.Config
	Logger          ports.Logger
	I18n            *i18n.Service
	Sessions        *session.Manager
	Providers       *oauth.Registry
	IdentityService *services.IdentityService
	WorkService     *services.WorkService
	VoteService     *services.VoteService
}

// NewRouter monta o engine Gin com middlewares e rotas.
// O handler retornado aceita _method em formulários HTML.
func NewRouter(deps RouterDeps) (http.Handler, error) {
	if deps.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	templates, err := views.Parse()
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.SetHTMLTemplate(templates)
	router.Use(gin.Recovery())

	// Middleware global para adicionar base URL ao contexto
	router.Use(func(c *gin.Context) {
		c.Set("base_url", deps.Config.Server.BaseURL)
		c.Next()
	})

	router.Use(middleware.CORS(deps.Config.CORS.AllowedOrigins))

	i18nMiddleware := middleware.NewI18nMiddleware(deps.I18n)
	router.Use(i18nMiddleware.DetectLanguage())

	sessionMiddleware := middleware.NewSessionMiddleware(deps.Sessions, deps.IdentityService, deps.Logger)
	router.Use(sessionMiddleware.LoadUser())
	router.Use(middleware.RequestLogger(deps.Logger))

	pages := NewPages(deps.Sessions, deps.Providers.Names(), deps.Logger)
	homeHandler := NewHomeHandler(deps.WorkService, pages)
	workHandler := NewWorkHandler(deps.WorkService, deps.VoteService, pages)
	sessionHandler := NewSessionHandler(deps.Providers, deps.IdentityService, deps.Sessions, pages, deps.Logger)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"env":    deps.Config.Env,
		})
	})

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	if !deps.Config.IsProduction() {
		pprof.Register(router)
	}

	router.GET("/", homeHandler.Spotlight)

	auth := router.Group("/auth")
	{
		auth.GET("/:provider", sessionHandler.Login)
		auth.GET("/:provider/callback", sessionHandler.Callback)
	}
	router.POST("/logout", sessionHandler.Logout)

	works := router.Group("/works", sessionMiddleware.RequireLogin())
	{
		works.GET("", workHandler.ListWorks)
		works.GET("/new", workHandler.NewWork)
		works.POST("", workHandler.CreateWork)
		works.GET("/:id", workHandler.GetWork)
		works.GET("/:id/edit", workHandler.EditWork)
		works.PATCH("/:id", workHandler.UpdateWork)
		works.PUT("/:id", workHandler.UpdateWork)
		works.DELETE("/:id", workHandler.DeleteWork)
		works.POST("/:id/upvote", workHandler.Upvote)
	}

	return middleware.MethodOverride(router), nil
}
