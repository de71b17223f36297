package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-portfolio-backend/config"
	_ "go-portfolio-backend/docs" // Important for Swagger
	"go-portfolio-backend/internal/bootstrap"
	v1 "go-portfolio-backend/internal/delivery/http/v1"
	"go-portfolio-backend/internal/usecase"
	"go-portfolio-backend/pkg/accesskey"
	"go-portfolio-backend/pkg/email"
	"go-portfolio-backend/pkg/logger"
	"go-portfolio-backend/pkg/security"
	"go-portfolio-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

// @title           Portfolio API
// @version         1.0
// @description     Public content API and admin editors for the portfolio site.
// @host            localhost:8080
// @BasePath        /
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.LogLevel)
	gin.SetMode(cfg.GinMode)
	logger.Log.Info("Starting portfolio backend", "port", cfg.Port)

	// 3. Setup Document Store
	ctx := context.Background()
	driver := cfg.ResolveStoreDriver()
	store, closeStore, err := bootstrap.OpenStore(ctx, cfg, driver)
	if err != nil {
		logger.Log.Error("Failed to open document store, serving placeholder content", "driver", driver, "error", err)
		store, closeStore, _ = bootstrap.OpenStore(ctx, cfg, config.StoreDriverAuto)
	}
	defer closeStore()

	// 4. Setup Email Service
	emailService := email.NewEmailService(cfg)
	if !emailService.IsConfigured() {
		logger.Log.Warn("Email service not fully configured - contact form will be unavailable")
	}

	// 5. Setup UseCases
	validate := validation.New()
	contentUC := usecase.NewContentUsecase(store, validate)
	portfolioUC := usecase.NewPortfolioUsecase(store)
	contactUC := usecase.NewContactUsecase(emailService)
	healthUC := usecase.NewHealthUsecase(store, driver)

	// 6. Setup Admin Gate
	verifier, mint := adminKeys(cfg)
	gate := accesskey.NewGate(cfg.AdminPathPrefix, cfg.AdminIPAllowlist, verifier)
	accessLog := security.NewAccessLogger("portfolio-backend")
	defer func() { _ = accessLog.Sync() }()

	// 7. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		ContentUC:   contentUC,
		PortfolioUC: portfolioUC,
		ContactUC:   contactUC,
		HealthUC:    healthUC,
		Gate:        gate,
		MintKey:     mint,
		AccessLog:   accessLog,
		Config:      cfg,
	})

	// 8. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	// Open event streams only end when the store closes their watchers
	_ = store.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}

// adminKeys picks the key scheme. Signed keys are opt-in.
func adminKeys(cfg *config.Config) (accesskey.Verifier, v1.KeyMinter) {
	if cfg.AdminKeyMode == "signed" {
		keys := accesskey.SignedKeys{
			Secret: []byte(cfg.AdminSigningSecret),
			TTL:    time.Duration(cfg.AdminSignedKeyTTLSecs) * time.Second,
		}
		return keys, keys.Mint
	}
	keys := accesskey.MinuteKeys{Code: cfg.AdminAccessCode}
	return keys, func(now time.Time) (string, error) { return keys.Mint(now), nil }
}
