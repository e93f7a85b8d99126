package commands

import (
	"log/slog"

	"sectorwatch/internal/chrono"
	"sectorwatch/internal/config"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(scheduleCmd)
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule <cron spec>",
	Short: "Stays running and performs a full run every time the cron spec fires (ex. \"30 16 * * 1-5\").",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		spec := args[0]
		err := chrono.ValidateSpec(spec)
		if err != nil {
			return err
		}
		opts, err := config.LoadOptions()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		api := tel()
		cron := chrono.NewStandardCron(api)
		err = cron.Cron(spec, func() {
			_, err := runOnce(ctx, opts, api)
			if err != nil {
				slog.Error("scheduled run failed", "err", err)
			}
		})
		if err != nil {
			return err
		}

		cron.Start()
		slog.Info("waiting for scheduled runs", "spec", spec)
		<-ctx.Done()
		cron.Stop()
		return nil
	},
}
