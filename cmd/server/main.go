package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/MKhiriev/go-files-manager/internal/blob"
	"github.com/MKhiriev/go-files-manager/internal/cache"
	"github.com/MKhiriev/go-files-manager/internal/config"
	"github.com/MKhiriev/go-files-manager/internal/handler"
	"github.com/MKhiriev/go-files-manager/internal/logger"
	"github.com/MKhiriev/go-files-manager/internal/queue"
	"github.com/MKhiriev/go-files-manager/internal/server"
	"github.com/MKhiriev/go-files-manager/internal/service"
	"github.com/MKhiriev/go-files-manager/internal/store"
	"github.com/MKhiriev/go-files-manager/models"
	"github.com/hibiken/asynq"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

const startupTimeout = 15 * time.Second

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Print(buildInfo)

	log := logger.NewLogger("files-manager-server")
	if err := run(buildInfo, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
}

func run(buildInfo models.AppBuildInfo, log *logger.Logger) error {
	cfg, err := config.GetStructuredConfig(os.Args[1:])
	if err != nil {
		return fmt.Errorf("error getting configs: %w", err)
	}
	if buildVersion != "" {
		cfg.App.Version = buildInfo.BuildVersion()
	}

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	db, err := store.NewConnectPostgres(ctx, cfg.Storage.DB, log)
	if err != nil {
		return err
	}
	defer db.Close()

	if err = db.Migrate(); err != nil {
		return fmt.Errorf("error migrating database: %w", err)
	}

	sessions, err := cache.New(cfg.Storage.Cache, log)
	if err != nil {
		return err
	}
	defer sessions.Close()

	payloads, err := blob.New(cfg.Storage.Files, log)
	if err != nil {
		return fmt.Errorf("error creating payload storage: %w", err)
	}

	queueClient := asynq.NewClient(queue.NewRedisConnOpt(cfg.Storage.Queue))
	defer queueClient.Close()

	services, err := service.NewServices(service.Dependencies{
		Repositories: store.NewRepositories(db, log),
		Sessions:     sessions,
		Payloads:     payloads,
		Producer:     queue.NewRedisProducer(queueClient, cfg.Workers),
	}, *cfg, log)
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	handlers, err := handler.NewHandlers(services, registry, cfg.Server, log)
	if err != nil {
		return err
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		return err
	}

	return srv.RunServer()
}
