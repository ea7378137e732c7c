package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/2dawng/CorsairStream-BE/internal/config"
	"github.com/2dawng/CorsairStream-BE/internal/handler"
	"github.com/2dawng/CorsairStream-BE/internal/repository"
	"github.com/2dawng/CorsairStream-BE/internal/service"
	"github.com/2dawng/CorsairStream-BE/internal/utils"
	"github.com/2dawng/CorsairStream-BE/pkg/observability"
	"github.com/2dawng/CorsairStream-BE/pkg/tmdb"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	infra  Infrastructure
	config *config.Config
	router *gin.Engine
	server *http.Server
}

func NewApp(infra Infrastructure, cfg *config.Config) *App {
	repos := repository.NewRepositories(infra.Postgres())

	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry.Duration,
		cfg.JWT.RefreshTokenExpiry.Duration,
	)

	healthChecker := NewHealthChecker(infra)

	authService := service.NewAuthService(repos.User, jwtManager, cfg.Security.BCryptCost)
	oauthService := service.NewGoogleOAuthService(
		cfg.Google,
		repos.User,
		authService,
		cfg.Security.BCryptCost,
		infra.Logger(),
	)
	watchlistService := service.NewWatchlistService(repos.Watchlist)
	historyService := service.NewWatchHistoryService(repos.History)

	tmdbClient := tmdb.NewClient(cfg.TMDB.BaseURL, cfg.TMDB.AccessToken, cfg.TMDB.Timeout.Duration)

	authHandler := handler.NewAuthHandler(authService)
	oauthHandler := handler.NewOAuthHandler(oauthService, cfg.Frontend.OAuthCallbackURL)
	movieHandler := handler.NewMovieHandler(tmdbClient)
	watchlistHandler := handler.NewWatchlistHandler(watchlistService)
	historyHandler := handler.NewHistoryHandler(historyService)

	router := gin.Default()
	router.Use(otelgin.Middleware("corsairstream"))
	router.Use(handler.LoggerMiddleware(infra.Logger()))
	router.Use(handler.CORSMiddleware(cfg.CORS.AllowedOrigins, cfg.CORS.AllowedMethods, cfg.CORS.AllowedHeaders))

	setupRoutes(router, authHandler, oauthHandler, movieHandler, watchlistHandler, historyHandler,
		authService, healthChecker, infra.MetricsHandler())

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout.Duration,
		WriteTimeout: cfg.Server.WriteTimeout.Duration,
	}

	return &App{
		infra:  infra,
		config: cfg,
		router: router,
		server: srv,
	}
}

func (a *App) Router() *gin.Engine {
	return a.router
}

func setupRoutes(
	router *gin.Engine,
	authHandler *handler.AuthHandler,
	oauthHandler *handler.OAuthHandler,
	movieHandler *handler.MovieHandler,
	watchlistHandler *handler.WatchlistHandler,
	historyHandler *handler.HistoryHandler,
	authService service.AuthService,
	healthChecker *HealthChecker,
	metricsHandler http.Handler,
) {
	router.GET("/metrics", observability.PrometheusHandler(metricsHandler))
	router.GET("/health", healthChecker.Handler)

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", handler.AuthMiddleware(authService), authHandler.Refresh)
			auth.GET("/google/login", oauthHandler.GoogleLogin)
			auth.GET("/oauth2/callback", oauthHandler.Callback)
		}

		movies := api.Group("/movies")
		{
			movies.GET("/search", movieHandler.Search)
			movies.GET("/now_playing", movieHandler.NowPlaying)
			movies.GET("/movie/:id", movieHandler.Details)
			movies.GET("/movie/:id/images", movieHandler.Images)
			movies.GET("/movie/:id/credits", movieHandler.Credits)
			movies.GET("/movie/:id/videos", movieHandler.Videos)
			movies.GET("/movie/:id/similar", movieHandler.Similar)
			movies.GET("/movie/:id/watch/providers", movieHandler.MovieWatchProviders)
			movies.GET("/watch/providers", movieHandler.WatchProviders)
			movies.GET("/discover/streaming/:provider_id", movieHandler.ByProvider)
			movies.GET("/discover/genre/:genre_id", movieHandler.ByGenre)
			movies.GET("/genres/movie", movieHandler.Genres)
			movies.GET("/genres/mapping", movieHandler.GenreMapping)
			movies.GET("/:category", movieHandler.ByCategory)
		}

		watchlist := api.Group("/watchlist", handler.AuthMiddleware(authService))
		{
			watchlist.POST("", watchlistHandler.Create)
			watchlist.GET("", watchlistHandler.List)
			watchlist.GET("/:id", watchlistHandler.Get)
			watchlist.DELETE("/:content_id", watchlistHandler.Delete)
		}

		history := api.Group("/history", handler.AuthMiddleware(authService))
		{
			history.POST("", historyHandler.Record)
			history.GET("", historyHandler.List)
			history.GET("/:content_id", historyHandler.Get)
			history.PUT("/:content_id", historyHandler.Update)
			history.DELETE("/:content_id", historyHandler.Delete)
		}
	}
}

func (a *App) Run(ctx context.Context) error {
	errChan := make(chan error, 1)

	go func() {
		a.infra.Logger().Info("Application starting",
			zap.String("host", a.config.Server.Host),
			zap.String("port", a.config.Server.Port),
		)

		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.infra.Logger().Error("Server error", zap.Error(err))
			errChan <- err
		}
	}()

	var serverErr error
	select {
	case err := <-errChan:
		a.infra.Logger().Error("Application failed to start", zap.Error(err))
		serverErr = err
	case <-ctx.Done():
		a.infra.Logger().Info("Application stopped by context")
	}

	if err := a.Shutdown(); err != nil {
		a.infra.Logger().Error("Shutdown error", zap.Error(err))
		if serverErr != nil {
			return errors.Join(serverErr, err)
		}
		return err
	}

	return serverErr
}

func (a *App) Shutdown() error {
	a.infra.Logger().Info("Application shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	errs := make(chan error, 2)

	go func() {
		errs <- a.server.Shutdown(ctx)
	}()

	go func() {
		errs <- a.infra.Shutdown(ctx)
	}()

	err := errors.Join(<-errs, <-errs)
	if err != nil {
		a.infra.Logger().Error("Shutdown failed", zap.Error(err))
		return err
	}

	a.infra.Logger().Info("Application exited successfully")
	return nil
}
