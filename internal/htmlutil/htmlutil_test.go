package htmlutil

import (
	"regexp"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func parse(t testing.TB, markup string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestTrimmedText(t *testing.T) {
	doc := parse(t, `<div class="a">
		<span>  NVDA </span>
	</div><div class="a">second</div>`)

	require.Equal(t, "NVDA", TrimmedText(doc.Find("div.a")))
	require.Equal(t, "", TrimmedText(doc.Find("div.missing")))
}

func TestClassMatches(t *testing.T) {
	doc := parse(t, `
		<a id="1" class="none-link fin-size-medium"></a>
		<a id="2" class="fin-size-medium tile none-link"></a>
		<a id="3" class="none-link"></a>
		<a id="4"></a>
		<a id="5" class="none-link
			fin-size-medium"></a>
		<a id="6" class="	fin-size-medium		none-link "></a>
	`)

	matcher := ClassMatches(regexp.MustCompile(`none-link.*fin-size-medium|fin-size-medium.*none-link`))
	var ids []string
	Filter(doc.Find("a"), matcher).Each(func(_ int, s *goquery.Selection) {
		ids = append(ids, s.AttrOr("id", ""))
	})
	require.Equal(t, []string{"1", "2", "5", "6"}, ids)
}
