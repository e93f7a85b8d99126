package telemetry

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"
)

func TestScopedAPI(t *testing.T) {
	inner := NewTestAPI()
	scoped := NewScopedAPI("sector_scraper", inner)

	scoped.ReportBroken("client.fetch-sector", errors.New("boom"))
	scoped.ReportWarning("client.scrape-sector", "energy")
	scoped.ReportDebug("start")
	scoped.ReportCount("entries.energy", 4)

	broken := inner.Reports("broken", "")
	require.Len(t, broken, 1)
	require.Equal(t, "sector_scraper: client.fetch-sector", broken[0].ID)

	warnings := inner.Reports("warning", "")
	require.Len(t, warnings, 1)
	require.Equal(t, []any{"energy"}, warnings[0].Params)

	require.Len(t, inner.Reports("debug", "sector_scraper: start"), 1)

	count, ok := inner.Count("sector_scraper: entries.energy")
	require.True(t, ok)
	require.Equal(t, int64(4), count)
}

func TestMeteredAPIForwards(t *testing.T) {
	inner := NewTestAPI()
	metered := NewMeteredAPI("test", inner)

	metered.ReportCount("entries", 12)
	metered.ReportWarning("warn")

	count, ok := inner.Count("entries")
	require.True(t, ok)
	require.Equal(t, int64(12), count)
	require.Len(t, inner.Reports("warning", "warn"), 1)
}

func TestInstrumentResty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	tel := NewTestAPI()
	client := resty.New()
	InstrumentResty(client, tel)

	_, err := client.R().SetContext(context.Background()).Get(server.URL)
	require.NoError(t, err)
	require.Len(t, tel.Reports("debug", report_resty_request), 1)
	require.Len(t, tel.Reports("debug", report_resty_response), 1)

	server.Close()
	_, err = client.R().SetContext(context.Background()).Get(server.URL)
	require.Error(t, err)
	require.Len(t, tel.Reports("broken", report_resty_response), 1)
}
