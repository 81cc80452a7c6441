// Command web serves the trade dashboard API and WebSocket channel.
package main

import (
	"context"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"traderoutes/internal/app"
	"traderoutes/internal/infrastructure"
	"traderoutes/pkg/contracts"
)

func main() {
	staticDir := flag.String("static", "", "directory of a static frontend to serve at / (optional)")
	showVersion := flag.Bool("version", false, "print version information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(contracts.GetVersionInfo())
		return
	}

	var frontendFS fs.FS
	if *staticDir != "" {
		frontendFS = os.DirFS(*staticDir)
		slog.Info("Serving static frontend", slog.String("dir", *staticDir))
	}

	ctx := context.Background()
	application, err := app.NewApplication(ctx, frontendFS)
	if err != nil {
		slog.Error("Failed to initialize application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer infrastructure.CloseLogFile()

	if err := application.Run(ctx); err != nil {
		application.Logger.Error("Application error", slog.String("error", err.Error()))
		infrastructure.CloseLogFile()
		os.Exit(1)
	}
}
