package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-files-manager/internal/adapter"
	"github.com/MKhiriev/go-files-manager/internal/client"
	"github.com/MKhiriev/go-files-manager/internal/config"
	"github.com/MKhiriev/go-files-manager/internal/logger"
	"github.com/MKhiriev/go-files-manager/models"
	_ "github.com/joho/godotenv/autoload"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	// stdout carries command output, so the banner is printed on request only
	if len(os.Args) == 2 && os.Args[1] == "version" {
		fmt.Print(models.NewAppBuildInfo(buildVersion, buildDate, buildCommit))
		return
	}

	log := logger.NewConsoleLogger("files-manager-client")
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create server adapter")
	}

	tokenDir, err := client.DefaultTokenDir()
	if err != nil {
		log.Fatal().Err(err).Msg("locate token dir")
	}

	app := client.NewApp(serverAdapter, client.NewFileTokenStore(tokenDir), client.NewSystemClipboard(), os.Stdout, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = app.Run(ctx, os.Args[1:]); err != nil {
		if !errors.Is(err, client.ErrUsage) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		stop()
		os.Exit(1)
	}
}
