package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"

	"sectorwatch/cmd/sectorwatch/commands"
	"sectorwatch/internal/config"
	"sectorwatch/internal/serviceutil"
	"sectorwatch/internal/telemetry"
)

func main() {
	err := config.LoadDotEnv()
	if err != nil {
		serviceutil.Fatal("failed to load .env", err)
	}
	telemetry.InitSlog(config.LoadRuntime().Verbose)

	err = run()
	if err != nil {
		serviceutil.Fatal("sectorwatch failed", err)
	}
}

// run returns instead of exiting so deferred telemetry is flushed for failed
// runs too.
func run() error {
	ctx, cancel := serviceutil.SignalContext()
	defer cancel()

	tel, err := telemetry.SetupFromEnv(ctx, "sectorwatch")
	if errors.Is(err, fs.ErrNotExist) {
		slog.Debug("telemetry.json5 not found, traces and metrics are disabled")
	} else if err != nil {
		slog.Warn("failed to setup telemetry", "err", err)
	} else {
		defer func() {
			err := tel.Shutdown(context.Background())
			if err != nil {
				slog.Warn("failed to flush telemetry", "err", err)
			}
		}()
	}

	return commands.ExecuteContext(ctx)
}
