package sectors

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"sectorwatch/internal/assert"
	"sectorwatch/internal/restyutil"
	"sectorwatch/internal/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	report_client_fetch_sector  = "client.fetch-sector"
	report_client_parse_sector  = "client.parse-sector"
	report_client_scrape_sector = "client.scrape-sector"
)

const (
	acceptLanguage = "en-US,en;q=0.9"
	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/110.0.0.0 Safari/537.36"
)

// ErrTransport is wrapped by every error that aborts a scrape: failed
// requests and non-2xx responses.
var ErrTransport = errors.New("sector page request failed")

var tracer = telemetry.Tracer("sectorwatch.scrapers.sectors")

// ClientOptions configures a Client. A zero Timeout means requests never
// time out, a non-empty DumpDir receives a copy of every request/response
// exchange.
type ClientOptions struct {
	BaseUrl          string
	Timeout          time.Duration
	CloudflareBypass bool
	DumpDir          string
}

type Client struct {
	http *resty.Client
	tel  telemetry.API
}

func NewClient(opts ClientOptions, tel telemetry.API) (Client, error) {
	assert.NotNil(tel)
	assert.NotEmptyStr(opts.BaseUrl)

	tel = telemetry.NewScopedAPI("sector_scraper", tel)

	_, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return Client{}, err
	}

	httpClient := resty.New()
	httpClient.SetBaseURL(opts.BaseUrl)
	httpClient.SetHeader("Accept-Language", acceptLanguage)
	httpClient.SetHeader("User-Agent", userAgent)
	httpClient.SetTimeout(opts.Timeout)
	if opts.CloudflareBypass {
		httpClient.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(httpClient.GetClient().Transport)
	}

	telemetry.InstrumentResty(httpClient, tel)

	if opts.DumpDir != "" {
		output, err := restyutil.NewFilesystemOutput(opts.DumpDir, tel)
		if err != nil {
			return Client{}, fmt.Errorf("create dump dir: %w", err)
		}
		restyutil.DumpResponses(httpClient, "sector", output)
	}

	return Client{http: httpClient, tel: tel}, nil
}

// Fetch requests the page of a single sector and parses it.
func (c Client) Fetch(ctx context.Context, sector Sector) (*goquery.Document, error) {
	endpoint := fmt.Sprintf("/sectors/%s", url.PathEscape(string(sector)))

	res, err := c.http.R().
		SetContext(ctx).
		Get(endpoint)
	if err != nil {
		c.tel.ReportBroken(report_client_fetch_sector, err, sector)
		return nil, fmt.Errorf("%w: %s: %w", ErrTransport, sector, err)
	}
	if !res.IsSuccess() {
		err = fmt.Errorf("%w: %s: unexpected status %s", ErrTransport, sector, res.Status())
		c.tel.ReportBroken(report_client_fetch_sector, err, sector)
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		c.tel.ReportBroken(report_client_parse_sector, err, sector)
		return nil, fmt.Errorf("parse %s: %w", sector, err)
	}
	return doc, nil
}

// ScrapeSector fetches and extracts a single sector. A page without the
// expected structure yields no entries and no error.
func (c Client) ScrapeSector(ctx context.Context, sector Sector) ([]Entry, error) {
	ctx, span := tracer.Start(ctx, "ScrapeSector")
	defer span.End()
	span.SetAttributes(attribute.String("sector", string(sector)))

	doc, err := c.Fetch(ctx, sector)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch sector page")
		return nil, err
	}

	entries, skipped, err := Extract(doc)
	if errors.Is(err, ErrContainerMissing) || errors.Is(err, ErrNoMatches) {
		c.tel.ReportWarning(report_client_scrape_sector, err, sector)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if skipped > 0 {
		c.tel.ReportWarning(
			report_client_scrape_sector,
			fmt.Errorf("skipped %d tiles without label or change", skipped),
			sector,
		)
	}

	c.tel.ReportCount(fmt.Sprintf("entries.%s", sector), int64(len(entries)))
	span.SetAttributes(attribute.Int("entries", len(entries)))
	return entries, nil
}

// Scrape scrapes every sector in order. The first transport failure aborts
// the whole scrape and no result is returned.
func (c Client) Scrape(ctx context.Context, sectors []Sector) (ResultSet, error) {
	assert.NotEmpty(sectors)

	ctx, span := tracer.Start(ctx, "Scrape")
	defer span.End()

	entries := make(map[Sector][]Entry, len(sectors))
	for _, sector := range sectors {
		list, err := c.ScrapeSector(ctx, sector)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "scrape aborted")
			return ResultSet{}, err
		}
		entries[sector] = list
	}

	return NewResultSet(sectors, entries), nil
}
