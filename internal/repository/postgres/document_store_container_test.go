//go:build container
// +build container

package postgres_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"go-portfolio-backend/internal/repository/postgres"
	"go-portfolio-backend/internal/repository/storetest"
	"go-portfolio-backend/pkg/database"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startPostgres(t *testing.T, ctx context.Context) string {
	t.Helper()

	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "portfolio",
				"POSTGRES_PASSWORD": "portfolio",
				"POSTGRES_DB":       "portfolio",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("start postgres: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatal(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatal(err)
	}
	return fmt.Sprintf("postgres://portfolio:portfolio@%s:%s/portfolio?sslmode=disable", host, port.Port())
}

func TestDocumentStoreContainer(t *testing.T) {
	ctx := context.Background()
	connString := startPostgres(t, ctx)

	pool, err := database.NewPostgresConnection(ctx, connString)
	if err != nil {
		t.Fatal(err)
	}
	defer pool.Close()

	if err := database.RunMigrations(ctx, pool); err != nil {
		t.Fatal(err)
	}
	// migrations are idempotent
	if err := database.RunMigrations(ctx, pool); err != nil {
		t.Fatal(err)
	}

	store := postgres.NewDocumentStore(pool, connString)
	defer store.Close()

	storetest.Run(t, store)
}
