// Command seed loads a content bundle into the configured document store.
//
//	go run ./cmd/seed -file content.json
//	go run ./cmd/seed -defaults
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"go-portfolio-backend/config"
	"go-portfolio-backend/internal/bootstrap"
	"go-portfolio-backend/internal/usecase"
	"go-portfolio-backend/pkg/apperror"
	"go-portfolio-backend/pkg/logger"
	"go-portfolio-backend/pkg/validation"
)

func main() {
	file := flag.String("file", "", "path to a JSON content bundle")
	defaults := flag.Bool("defaults", false, "write the placeholder content of every section")
	flag.Parse()

	if (*file == "") == !*defaults {
		fmt.Fprintln(os.Stderr, "exactly one of -file or -defaults is required")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger.Init(cfg.LogLevel)

	var bundle Bundle
	if *defaults {
		bundle, err = DefaultBundle()
	} else {
		var data []byte
		if data, err = os.ReadFile(*file); err == nil {
			bundle, err = ParseBundle(data)
		}
	}
	if err != nil {
		logger.Log.Error("Invalid bundle", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	driver := cfg.ResolveStoreDriver()
	store, release, err := bootstrap.OpenStore(ctx, cfg, driver)
	if err != nil {
		logger.Log.Error("Failed to open document store", "driver", driver, "error", err)
		os.Exit(1)
	}
	defer release()

	saved, err := Apply(ctx, usecase.NewContentUsecase(store, validation.New()), bundle)
	logger.Log.Info("Seed finished", "driver", driver, "saved", saved)
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && len(appErr.Fields) > 0 {
			logger.Log.Error("Section rejected", "fields", appErr.Fields)
		}
		logger.Log.Error("Seed incomplete", "error", err)
		release()
		os.Exit(1)
	}
}
