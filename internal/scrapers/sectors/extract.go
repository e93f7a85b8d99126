package sectors

import (
	"errors"
	"fmt"
	"regexp"

	"sectorwatch/internal/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

var (
	// ErrContainerMissing means the page has no heatmap container, the sector is skipped.
	ErrContainerMissing = errors.New("heatmap container not found")
	// ErrNoMatches means the heatmap container has no sector tiles, the sector is skipped.
	ErrNoMatches = errors.New("no heatmap tiles found")
)

const (
	containerSelector = "div.heatMap-container"
	labelSelector     = "div.ticker-div"
	changeSelector    = "div.percent-div"
)

// MarkerPair matches elements whose class attribute contains both markers, in either order.
type MarkerPair struct {
	First  string
	Second string
}

// TileMarkers identifies the anchors of the heatmap that hold one entry each.
var TileMarkers = MarkerPair{First: "none-link", Second: "fin-size-medium"}

func (m MarkerPair) Regexp() *regexp.Regexp {
	a := regexp.QuoteMeta(m.First)
	b := regexp.QuoteMeta(m.Second)
	return regexp.MustCompile(fmt.Sprintf("%s.*%s|%s.*%s", a, b, b, a))
}

func (m MarkerPair) Matcher() htmlutil.NodeMatcher {
	return htmlutil.ClassMatches(m.Regexp())
}

var tileMatcher = TileMarkers.Matcher()

// Extract pulls the heatmap entries out of a sector page in document order.
//
// It returns ErrContainerMissing or ErrNoMatches when the page does not have
// the expected structure, tiles missing a label are skipped and returned in
// `skipped`.
func Extract(doc *goquery.Document) (entries []Entry, skipped int, err error) {
	container := doc.Find(containerSelector).First()
	if container.Length() == 0 {
		return nil, 0, ErrContainerMissing
	}

	tiles := htmlutil.Filter(container.Find("a"), tileMatcher)
	if tiles.Length() == 0 {
		return nil, 0, ErrNoMatches
	}

	tiles.Each(func(_ int, tile *goquery.Selection) {
		label := tile.Find(labelSelector).First()
		change := tile.Find(changeSelector).First()
		if label.Length() == 0 || change.Length() == 0 {
			skipped++
			return
		}
		entries = append(entries, Entry{
			Label:  htmlutil.TrimmedText(label),
			Change: htmlutil.TrimmedText(change),
		})
	})

	return entries, skipped, nil
}
