package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"go.opentelemetry.io/contrib/bridges/otelslog"

	"github.com/quillmail/ewsbox/internal/cli"
	"github.com/quillmail/ewsbox/pkg/base"
	"github.com/quillmail/ewsbox/pkg/utils"
)

func main() {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			log.Fatalf("Error loading .env file: %s", err)
		}
	}

	// Telemetry is opt-in via the DSN env var.
	if os.Getenv(base.UPTRACE_DSN_ENV_VAR) != "" {
		ctx := context.Background()
		shutdown, err := utils.SetupOTelSDK(ctx)
		if err != nil {
			log.Fatalf("Error setting up telemetry: %s", err)
		}
		defer func() {
			if err := shutdown(ctx); err != nil {
				log.Printf("Failed to shut down telemetry: %v", err)
			}
		}()
		slog.SetDefault(otelslog.NewLogger(base.UPTRACE_SERVICE))
	}

	cli.Execute()
}
