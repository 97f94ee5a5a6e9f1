// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/food-rescue/internal/config"
	"github.com/MKhiriev/food-rescue/internal/handler"
	"github.com/MKhiriev/food-rescue/internal/logger"
	"github.com/MKhiriev/food-rescue/internal/notifier"
	"github.com/MKhiriev/food-rescue/internal/server"
	"github.com/MKhiriev/food-rescue/internal/service"
	"github.com/MKhiriev/food-rescue/internal/store"
	"github.com/MKhiriev/food-rescue/internal/workers"
	"github.com/MKhiriev/food-rescue/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	printBuildInfo(buildInfo)

	cfg, err := config.GetStructuredConfig(os.Args[1:])
	if err != nil {
		return fmt.Errorf("error getting configs: %w", err)
	}

	log := logger.NewLogger("food-rescue-server", logger.WithLevel(cfg.App.LogLevel))
	log.Debug().
		Str("http_address", cfg.Server.HTTPAddress).
		Str("grpc_address", cfg.Server.GRPCAddress).
		Str("db_driver", cfg.Storage.DB.Driver).
		Str("notifier", cfg.Notifier.Provider).
		Msg("received configs")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("error creating storages: %w", err)
	}
	defer storages.Close()

	dispatcher, err := notifier.New(cfg.Notifier, log)
	if err != nil {
		return fmt.Errorf("error creating notifier: %w", err)
	}

	services, err := service.NewServices(storages, dispatcher, cfg.App, buildInfo, log)
	if err != nil {
		return fmt.Errorf("error creating services: %w", err)
	}

	handlers, err := handler.NewHandlers(services, storages, cfg.Server, log)
	if err != nil {
		return fmt.Errorf("error creating handlers: %w", err)
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		return fmt.Errorf("error creating server: %w", err)
	}

	background := []workers.Worker{dispatcher}
	if handlers.GRPC != nil {
		background = append(background, handlers.GRPC)
	}
	bg := workers.NewWorkers(background...)
	bg.Run(ctx)

	err = srv.RunServer(ctx)
	stop()
	bg.Wait()

	if dropped := dispatcher.Dropped(); dropped > 0 {
		log.Warn().Int64("dropped", dropped).Msg("claim notifications dropped during run")
	}
	return err
}

func printBuildInfo(info models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", info.BuildVersion())
	fmt.Printf("Build date: %s\n", info.BuildDate())
	fmt.Printf("Build commit: %s\n", info.BuildCommit())
}
