package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-storefront/internal/auth"
	"go-storefront/internal/config"
	"go-storefront/internal/database"
	"go-storefront/internal/event"
	"go-storefront/internal/handler"
	"go-storefront/internal/middleware"
	"go-storefront/internal/repository"
	"go-storefront/internal/router"
	"go-storefront/internal/service"
)

type App struct {
	server       *http.Server
	db           *database.DB
	cleanupFuncs []func()
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	creds, err := auth.NewCredentials(cfg.JWTSecret, cfg.TokenTTL, cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize credential manager: %w", err)
	}

	slog.Info("connecting to PostgreSQL")
	db, err := database.New(context.Background(), cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.EnsureSchema(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure database schema: %w", err)
	}

	pool := db.Pool
	userRepo := repository.NewUserRepository(pool)
	productRepo := repository.NewProductRepository(pool)
	merchRepo := repository.NewMerchRepository(pool)
	newsRepo := repository.NewNewsRepository(pool)
	slog.Info("database ready")

	bus := event.NewBus()
	activityCtx, activityCancel := context.WithCancel(context.Background())
	go event.LogActivity(activityCtx, bus)

	authService := service.NewAuthService(userRepo, creds, bus)
	productService := service.NewProductService(productRepo, bus)
	merchService := service.NewMerchService(merchRepo, bus)
	newsService := service.NewNewsService(newsRepo, bus)

	authMiddleware := middleware.NewAuthMiddleware(creds)

	appRouter := router.New(cfg, authMiddleware, router.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		Product: handler.NewProductHandler(productService),
		Merch:   handler.NewMerchHandler(merchService),
		News:    handler.NewNewsHandler(newsService),
		Health: func(w http.ResponseWriter, r *http.Request) {
			if err := db.Health(r.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("db unreachable"))
				return
			}
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
		},
	})

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           appRouter,
		ReadHeaderTimeout: cfg.ServerReadHeaderTimeout,
		WriteTimeout:      cfg.ServerWriteTimeout,
		IdleTimeout:       cfg.ServerIdleTimeout,
	}

	return &App{
		server: server,
		db:     db,
		cleanupFuncs: []func(){
			func() {
				activityCancel()
			},
			func() {
				db.Close()
			},
		},
	}, nil
}

func (a *App) Run() error {
	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if serveErr := a.server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			slog.Error("server failed", "error", serveErr)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	for _, cleanup := range a.cleanupFuncs {
		cleanup()
	}

	slog.Info("server stopped")
	return nil
}
