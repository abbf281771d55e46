package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rafabene/mediaranker/internal/domain/ports"
	httphandlers "github.com/rafabene/mediaranker/internal/handlers/http"
	"github.com/rafabene/mediaranker/internal/infrastructure/config"
	"github.com/rafabene/mediaranker/internal/infrastructure/i18n"
	"github.com/rafabene/mediaranker/internal/infrastructure/logging"
	"github.com/rafabene/mediaranker/internal/infrastructure/oauth"
	"github.com/rafabene/mediaranker/internal/infrastructure/persistence/postgres"
	"github.com/rafabene/mediaranker/internal/infrastructure/session"
	"github.com/rafabene/mediaranker/internal/services"
)

func main() {
	// Carregar configurações
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// Inicializar logger
	logger := logging.NewSlogLogger(cfg.Logging.Level)
	logger.Info("starting media ranker",
		"env", cfg.Env,
		"version", "dev",
	)

	// Conectar ao banco de dados
	db, err := postgres.NewDatabaseConnection(&cfg.Database, !cfg.IsProduction(), logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		log.Fatal(err)
	}
	if err := postgres.Migrate(db); err != nil {
		logger.Error("failed to migrate database", "error", err)
		log.Fatal(err)
	}

	// Inicializar i18n
	i18nService, err := i18n.NewService(i18n.Locales(), "en")
	if err != nil {
		logger.Error("failed to initialize i18n", "error", err)
		log.Fatal(err)
	}
	logger.Info("i18n initialized",
		"default_language", i18nService.GetDefaultLanguage(),
		"supported_languages", i18nService.GetSupportedLanguages(),
	)

	// Inicializar repositories
	userRepo := postgres.NewUserRepository(db)
	workRepo := postgres.NewWorkRepository(db)
	voteRepo := postgres.NewVoteRepository(db)
	uow := postgres.NewUnitOfWork(db)

	// Inicializar services
	identityService := services.NewIdentityService(userRepo, logger)
	workService := services.NewWorkService(workRepo, voteRepo, uow, logger)
	voteService := services.NewVoteService(voteRepo, workRepo, userRepo, logger)

	sessions, err := session.NewManager(cfg.Session)
	if err != nil {
		logger.Error("failed to initialize sessions", "error", err)
		log.Fatal(err)
	}

	providers := buildProviders(cfg, logger)
	logger.Info("oauth providers enabled", "providers", providers.Names())

	handler, err := httphandlers.NewRouter(httphandlers.RouterDeps{
		Config:          cfg,
		Logger:          logger,
		I18n:            i18nService,
		Sessions:        sessions,
		Providers:       providers,
		IdentityService: identityService,
		WorkService:     workService,
		VoteService:     voteService,
	})
	if err != nil {
		logger.Error("failed to build router", "error", err)
		log.Fatal(err)
	}

	// HTTP Server
	srv := &http.Server{
		Addr:              cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		logger.Info("server starting",
			"host", cfg.Server.Host,
			"port", cfg.Server.Port,
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			log.Fatal(err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	logger.Info("server exited")
}

// buildProviders habilita cada provedor que tiver credenciais configuradas
func buildProviders(cfg *config.Config, logger ports.Logger) *oauth.Registry {
	base := strings.TrimRight(cfg.OAuth.RedirectURL, "/")
	var providers []oauth.Provider

	if cfg.OAuth.GitHubClientID != "" {
		providers = append(providers, oauth.NewGitHubProvider(
			cfg.OAuth.GitHubClientID,
			cfg.OAuth.GitHubClientSecret,
			base+"/auth/github/callback",
		))
	}

	if cfg.OAuth.GoogleClientID != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		google, err := oauth.NewOIDCProvider(ctx, "google",
			cfg.OAuth.GoogleIssuer,
			cfg.OAuth.GoogleClientID,
			cfg.OAuth.GoogleClientSecret,
			base+"/auth/google/callback",
		)
		cancel()
		if err != nil {
			logger.Warn("google login disabled", "error", err)
		} else {
			providers = append(providers, google)
		}
	}

	if len(providers) == 0 {
		logger.Warn("no oauth provider configured; login is unavailable")
	}
	return oauth.NewRegistry(providers...)
}
