// Package bootstrap wires the document store chosen by configuration.
package bootstrap

import (
	"context"
	"fmt"

	"go-portfolio-backend/config"
	"go-portfolio-backend/internal/repository"
	firestorerepo "go-portfolio-backend/internal/repository/firestore"
	"go-portfolio-backend/internal/repository/memory"
	"go-portfolio-backend/internal/repository/noop"
	"go-portfolio-backend/internal/repository/postgres"
	redisrepo "go-portfolio-backend/internal/repository/redis"
	"go-portfolio-backend/pkg/database"
	firestoreclient "go-portfolio-backend/pkg/firestore"
	"go-portfolio-backend/pkg/logger"
	redisclient "go-portfolio-backend/pkg/redis"
)

// OpenStore builds the document store for driver. The returned func releases
// the store and the client it was built on.
func OpenStore(ctx context.Context, cfg *config.Config, driver string) (repository.Store, func(), error) {
	switch driver {
	case config.StoreDriverPostgres:
		pool, err := database.NewPostgresConnection(ctx, cfg.DBUrl)
		if err != nil {
			return nil, nil, err
		}
		if err := database.RunMigrations(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		store := postgres.NewDocumentStore(pool, cfg.DBUrl)
		return store, func() { _ = store.Close(); pool.Close() }, nil

	case config.StoreDriverRedis:
		client, err := redisclient.NewClient(ctx, redisclient.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword})
		if err != nil {
			return nil, nil, err
		}
		store, err := redisrepo.NewDocumentStore(ctx, client, cfg.RedisKeyPrefix)
		if err != nil {
			_ = client.Close()
			return nil, nil, err
		}
		return store, func() { _ = store.Close(); _ = client.Close() }, nil

	case config.StoreDriverFirestore:
		client, err := firestoreclient.NewClient(ctx, firestoreclient.Config{
			ProjectID:       cfg.FirebaseProjectID,
			ClientEmail:     cfg.FirebaseClientEmail,
			PrivateKey:      cfg.FirebasePrivateKey,
			CredentialsFile: cfg.FirebaseCredentialsFile,
		})
		if err != nil {
			return nil, nil, err
		}
		store := firestorerepo.NewDocumentStore(client)
		return store, func() { _ = store.Close(); _ = client.Close() }, nil

	case config.StoreDriverMemory:
		logger.Log.Warn("Using in-memory document store - content is lost on restart")
		store := memory.NewStore()
		return store, func() { _ = store.Close() }, nil

	case config.StoreDriverAuto:
		logger.Log.Warn("No document store configured - serving placeholder content, saves are rejected")
		return noop.Store{}, func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown STORE_DRIVER %q", driver)
}
