package commands

import (
	"context"
	"log/slog"

	"sectorwatch/internal/chrono"
	"sectorwatch/internal/config"
	"sectorwatch/internal/pipeline"
	"sectorwatch/internal/telemetry"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sectorwatch",
	Short: "Scrapes sector heatmaps into a spreadsheet and emails it.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := config.LoadOptions()
		if err != nil {
			return err
		}
		_, err = runOnce(cmd.Context(), opts, tel())
		return err
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func tel() telemetry.API {
	return telemetry.NewMeteredAPI("sectorwatch", telemetry.SlogAPI{})
}

func runOnce(ctx context.Context, opts config.Options, tel telemetry.API) (pipeline.Result, error) {
	p, err := pipeline.FromOptions(opts, chrono.NewStandardTime(), tel)
	if err != nil {
		return pipeline.Result{}, err
	}

	result, err := p.Run(ctx)
	if err != nil {
		if result.Path != "" {
			slog.Error("export was written but not sent", "path", result.Path)
		}
		return result, err
	}
	if result.Path == "" {
		slog.Info("no data was found, nothing exported")
		return result, nil
	}

	slog.Info("data has been saved to an excel file", "path", result.Path, "entries", result.Entries)
	slog.Info("email has been sent successfully")
	return result, nil
}

// ExecuteContext runs the command line, the caller decides how to exit on error.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
