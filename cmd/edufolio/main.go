package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/Rachitneema03/edufolio/internal/buildinfo"
	"github.com/Rachitneema03/edufolio/internal/cli"
	"github.com/Rachitneema03/edufolio/internal/config"
	"github.com/Rachitneema03/edufolio/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
