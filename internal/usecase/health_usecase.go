package usecase

import (
	"context"
	"time"

	"go-portfolio-backend/internal/repository"
	"go-portfolio-backend/pkg/logger"
)

type HealthUsecase interface {
	Check(ctx context.Context) (map[string]string, bool)
}

type healthUsecase struct {
	store  repository.Store
	driver string
}

func NewHealthUsecase(store repository.Store, driver string) HealthUsecase {
	return &healthUsecase{store: store, driver: driver}
}

// Check pings the document store. The bool is false when the store is down
// or not configured.
func (u *healthUsecase) Check(ctx context.Context) (map[string]string, bool) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	status := map[string]string{
		"status": "ok",
		"store":  u.driver,
	}
	if err := u.store.Ping(ctx); err != nil {
		// The error can carry connection details, so it stays in the logs.
		logger.Log.Warn("Health check: document store unreachable", "store", u.driver, "error", err)
		status["status"] = "degraded"
		return status, false
	}
	return status, true
}
