package commands

import (
	"bytes"
	"testing"

	"sectorwatch/internal/scrapers/sectors"

	"github.com/stretchr/testify/require"
)

func TestRenderResultSet(t *testing.T) {
	rs := sectors.NewResultSet(
		[]sectors.Sector{sectors.Technology, sectors.Energy},
		map[sectors.Sector][]sectors.Entry{
			sectors.Technology: {
				{Label: "NVDA", Change: "+2.31%"},
				{Label: "AAPL", Change: "-0.42%"},
			},
		},
	)

	var out bytes.Buffer
	renderResultSet(&out, rs)
	rendered := out.String()

	require.Contains(t, rendered, "technology")
	require.Contains(t, rendered, "energy")
	require.Contains(t, rendered, "+2.31%")
	require.Less(t, bytes.Index(out.Bytes(), []byte("AAPL")), bytes.Index(out.Bytes(), []byte("NVDA")))
}
