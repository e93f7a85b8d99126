package commands

import (
	"io"
	"os"

	"sectorwatch/internal/config"
	"sectorwatch/internal/pipeline"
	"sectorwatch/internal/scrapers/sectors"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(previewCmd)
}

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Scrapes every sector and prints the result without exporting or emailing it.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := config.LoadOptions()
		if err != nil {
			return err
		}
		scraper, err := pipeline.NewScraper(opts, tel())
		if err != nil {
			return err
		}
		rs, err := scraper.Scrape(cmd.Context(), sectors.FromStrings(opts.Sectors))
		if err != nil {
			return err
		}
		renderResultSet(os.Stdout, rs)
		return nil
	},
}

func renderResultSet(out io.Writer, rs sectors.ResultSet) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.AppendHeader(table.Row{"Sector", "Label", "Change"})

	for _, sector := range rs.Sectors() {
		entries := rs.Entries(sector)
		if len(entries) == 0 {
			t.AppendRow(table.Row{sector, "-", "-"})
			continue
		}
		for _, e := range entries {
			t.AppendRow(table.Row{sector, e.Label, e.Change})
		}
		t.AppendSeparator()
	}

	t.AppendFooter(table.Row{"", "Total", rs.Total()})
	t.SetStyle(table.StyleRounded)
	t.Render()
}
