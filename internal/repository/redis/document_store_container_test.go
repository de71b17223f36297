//go:build container
// +build container

package redis_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	redisrepo "go-portfolio-backend/internal/repository/redis"
	"go-portfolio-backend/internal/repository/storetest"
	redisclient "go-portfolio-backend/pkg/redis"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestDocumentStoreContainer(t *testing.T) {
	ctx := context.Background()

	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("start redis: %v", err)
	}
	defer func() { _ = container.Terminate(context.Background()) }()

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatal(err)
	}
	port, err := container.MappedPort(ctx, "6379")
	if err != nil {
		t.Fatal(err)
	}

	client, err := redisclient.NewClient(ctx, redisclient.Config{URL: fmt.Sprintf("redis://%s:%s", host, port.Port())})
	if err != nil {
		t.Fatal(err)
	}
	defer client.Close()

	store, err := redisrepo.NewDocumentStore(ctx, client, "test:")
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	storetest.Run(t, store)
}
