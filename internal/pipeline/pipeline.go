package pipeline

import (
	"context"
	"fmt"

	"sectorwatch/internal/assert"
	"sectorwatch/internal/chrono"
	"sectorwatch/internal/config"
	"sectorwatch/internal/export"
	"sectorwatch/internal/mailer"
	"sectorwatch/internal/scrapers/sectors"
	"sectorwatch/internal/telemetry"
)

const (
	report_pipeline_run = "pipeline.run"
)

type Scraper interface {
	Scrape(ctx context.Context, list []sectors.Sector) (sectors.ResultSet, error)
}

type Exporter interface {
	Export(ctx context.Context, rs sectors.ResultSet) (string, error)
}

type Sender interface {
	Send(ctx context.Context, path string) error
}

// SenderFactory creates the Sender right before it is needed, so missing
// credentials only fail a run that has something to send.
type SenderFactory func() (Sender, error)

// MailSenderFactory loads the credentials from the environment and creates a mailer.
func MailSenderFactory(options mailer.Options, tel telemetry.API) SenderFactory {
	return func() (Sender, error) {
		creds, err := config.LoadCredentials()
		if err != nil {
			return nil, err
		}
		return mailer.NewMailer(options, creds, tel), nil
	}
}

type Pipeline struct {
	sectors   []sectors.Sector
	scraper   Scraper
	exporter  Exporter
	newSender SenderFactory
	tel       telemetry.API
}

func New(list []sectors.Sector, scraper Scraper, exporter Exporter, newSender SenderFactory, tel telemetry.API) Pipeline {
	assert.NotEmpty(list)
	assert.NotNil(scraper)
	assert.NotNil(exporter)
	assert.NotNil(newSender)
	assert.NotNil(tel)

	return Pipeline{
		sectors:   list,
		scraper:   scraper,
		exporter:  exporter,
		newSender: newSender,
		tel:       telemetry.NewScopedAPI("pipeline", tel),
	}
}

// FromOptions wires the production scraper, exporter and mailer.
func FromOptions(opts config.Options, time chrono.TimeAPI, tel telemetry.API) (Pipeline, error) {
	scraper, err := NewScraper(opts, tel)
	if err != nil {
		return Pipeline{}, err
	}
	exporter := export.NewExporter(opts.OutputDir, time, tel)
	newSender := MailSenderFactory(mailer.Options{
		Host:    opts.Smtp.Host,
		Port:    opts.Smtp.Port,
		Subject: opts.Smtp.Subject,

		AllowUnauthenticated: opts.Smtp.AllowUnauthenticated,
	}, tel)

	return New(sectors.FromStrings(opts.Sectors), scraper, exporter, newSender, tel), nil
}

func NewScraper(opts config.Options, tel telemetry.API) (sectors.Client, error) {
	return sectors.NewClient(sectors.ClientOptions{
		BaseUrl:          opts.BaseUrl,
		Timeout:          opts.Timeout(),
		CloudflareBypass: !opts.DisableCloudflareBypass,
		DumpDir:          opts.DumpDir,
	}, tel)
}

type Result struct {
	// Path of the exported file, empty when nothing was scraped.
	Path    string
	Entries int
}

// Run scrapes every sector, exports the result and emails it.
//
// A failed request aborts the run before anything is written. When no sector
// yields an entry nothing is written or sent and the run succeeds. Once the
// file is written it stays on disk even if sending fails.
func (p Pipeline) Run(ctx context.Context) (Result, error) {
	rs, err := p.scraper.Scrape(ctx, p.sectors)
	if err != nil {
		return Result{}, fmt.Errorf("scrape: %w", err)
	}
	if rs.Empty() {
		p.tel.ReportWarning(report_pipeline_run, "no data was found")
		return Result{}, nil
	}
	p.tel.ReportCount("entries", int64(rs.Total()))

	path, err := p.exporter.Export(ctx, rs)
	if err != nil {
		return Result{}, fmt.Errorf("export: %w", err)
	}
	result := Result{Path: path, Entries: rs.Total()}
	p.tel.ReportDebug("exported", path)

	sender, err := p.newSender()
	if err != nil {
		return result, err
	}
	err = sender.Send(ctx, path)
	if err != nil {
		return result, err
	}

	p.tel.ReportDebug("sent", path)
	return result, nil
}
