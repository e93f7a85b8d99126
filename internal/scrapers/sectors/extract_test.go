package sectors

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func loadFixture(t testing.TB, name string) []byte {
	t.Helper()
	contents, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatal(err)
	}
	return contents
}

func parseFixture(t testing.TB, contents []byte) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(contents))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestMarkerPair(t *testing.T) {
	re := TileMarkers.Regexp()

	table := []struct {
		class    string
		expected bool
	}{
		{class: "none-link fin-size-medium", expected: true},
		{class: "fin-size-medium none-link", expected: true},
		{class: "svelte-x none-link tile fin-size-medium svelte-y", expected: true},
		{class: "none-link", expected: false},
		{class: "fin-size-medium", expected: false},
		{class: "none-link fin-size-small", expected: false},
		{class: "", expected: false},
	}

	for _, row := range table {
		require.Equal(t, row.expected, re.MatchString(row.class), row.class)
	}
}

func TestMarkerPairQuotesMarkers(t *testing.T) {
	re := MarkerPair{First: "a.b", Second: "c"}.Regexp()
	require.True(t, re.MatchString("a.b c"))
	require.False(t, re.MatchString("axb c"))
}

func TestExtract(t *testing.T) {
	doc := parseFixture(t, loadFixture(t, "technology.html"))

	entries, skipped, err := Extract(doc)
	require.NoError(t, err)
	require.Equal(t, 1, skipped)
	require.Equal(t, []Entry{
		{Label: "NVDA", Change: "+2.31%"},
		{Label: "AAPL", Change: "-0.42%"},
		{Label: "MSFT", Change: "+0.87%"},
	}, entries)
}

func TestExtractIsIdempotent(t *testing.T) {
	contents := loadFixture(t, "technology.html")

	first, _, err := Extract(parseFixture(t, contents))
	require.NoError(t, err)
	second, _, err := Extract(parseFixture(t, contents))
	require.NoError(t, err)
	require.Equal(t, first, second)

	SortEntries(first)
	SortEntries(second)
	require.Equal(t, first, second)
}

func TestExtractStructuralMisses(t *testing.T) {
	_, _, err := Extract(parseFixture(t, loadFixture(t, "no_container.html")))
	require.ErrorIs(t, err, ErrContainerMissing)

	_, _, err = Extract(parseFixture(t, loadFixture(t, "no_tiles.html")))
	require.ErrorIs(t, err, ErrNoMatches)
}

func TestExtractUsesFirstContainer(t *testing.T) {
	markup := `
	<div class="heatMap-container">
		<a class="none-link fin-size-medium"><div class="ticker-div">ONE</div><div class="percent-div">+1%</div></a>
	</div>
	<div class="heatMap-container">
		<a class="none-link fin-size-medium"><div class="ticker-div">TWO</div><div class="percent-div">+2%</div></a>
	</div>`
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	require.NoError(t, err)

	entries, _, err := Extract(doc)
	require.NoError(t, err)
	require.Equal(t, []Entry{{Label: "ONE", Change: "+1%"}}, entries)
}
