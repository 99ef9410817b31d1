package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MKhiriev/go-files-manager/internal/blob"
	"github.com/MKhiriev/go-files-manager/internal/config"
	"github.com/MKhiriev/go-files-manager/internal/logger"
	"github.com/MKhiriev/go-files-manager/internal/queue"
	"github.com/MKhiriev/go-files-manager/internal/store"
	"github.com/MKhiriev/go-files-manager/internal/worker"
	"github.com/MKhiriev/go-files-manager/internal/workers"
	"github.com/MKhiriev/go-files-manager/models"
	_ "github.com/joho/godotenv/autoload"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

const startupTimeout = 15 * time.Second

func main() {
	fmt.Print(models.NewAppBuildInfo(buildVersion, buildDate, buildCommit))

	log := logger.NewLogger("files-manager-worker")
	if err := run(log); err != nil {
		log.Fatal().Err(err).Msg("worker stopped with error")
	}
}

func run(log *logger.Logger) error {
	cfg, err := config.GetStructuredConfig(os.Args[1:])
	if err != nil {
		return fmt.Errorf("error getting configs: %w", err)
	}

	startCtx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	db, err := store.NewConnectPostgres(startCtx, cfg.Storage.DB, log)
	if err != nil {
		return err
	}
	defer db.Close()

	// the API server may not have started yet
	if err = db.Migrate(); err != nil {
		return fmt.Errorf("error migrating database: %w", err)
	}

	payloads, err := blob.New(cfg.Storage.Files, log)
	if err != nil {
		return fmt.Errorf("error creating payload storage: %w", err)
	}

	repos := store.NewRepositories(db, log)
	jobs := queue.NewRedisConnOpt(cfg.Storage.Queue)

	thumbnails := worker.NewThumbnailWorker(repos.FileRepository, payloads, worker.NewImagingResizer(), log)
	onboarding := worker.NewOnboardingWorker(repos.UserRepository, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	err = workers.NewWorkers(
		queue.NewConsumer(jobs, models.FileQueue, thumbnails, cfg.Workers, log),
		queue.NewConsumer(jobs, models.UserQueue, onboarding, cfg.Workers, log),
	).Run(ctx)

	log.Info().Msg("worker shutdown gracefully")
	return err
}
