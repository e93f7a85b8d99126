package sectors

import (
	"slices"
	"strings"
)

type Sector string

const (
	Technology            Sector = "technology"
	FinancialServices     Sector = "financial-services"
	Healthcare            Sector = "healthcare"
	ConsumerCyclical      Sector = "consumer-cyclical"
	CommunicationServices Sector = "communication-services"
	Industrials           Sector = "industrials"
	ConsumerDefensive     Sector = "consumer-defensive"
	Energy                Sector = "energy"
	BasicMaterials        Sector = "basic-materials"
	RealEstate            Sector = "real-estate"
	Utilities             Sector = "utilities"
)

// All is every known sector in the order they are scraped and exported.
var All = []Sector{
	Technology,
	FinancialServices,
	Healthcare,
	ConsumerCyclical,
	CommunicationServices,
	Industrials,
	ConsumerDefensive,
	Energy,
	BasicMaterials,
	RealEstate,
	Utilities,
}

func FromStrings(values []string) []Sector {
	out := make([]Sector, len(values))
	for i, v := range values {
		out[i] = Sector(v)
	}
	return out
}

// Entry is one tile of a sector heatmap, Change is kept exactly as rendered (ex. "+1.25%").
type Entry struct {
	Label  string
	Change string
}

// SortEntries sorts entries by label ascending, entries with equal labels keep their order.
func SortEntries(entries []Entry) {
	slices.SortStableFunc(entries, func(a, b Entry) int {
		return strings.Compare(a.Label, b.Label)
	})
}

// ResultSet is the result of a scrape, it cannot be modified after it is built.
type ResultSet struct {
	order   []Sector
	entries map[Sector][]Entry
}

// NewResultSet creates a ResultSet from entries, the per-sector lists are
// copied and sorted by label. Sectors in `order` missing from `entries` have
// no entries, sectors in `entries` missing from `order` are dropped.
func NewResultSet(order []Sector, entries map[Sector][]Entry) ResultSet {
	rs := ResultSet{
		order:   slices.Clone(order),
		entries: make(map[Sector][]Entry, len(order)),
	}
	for _, s := range order {
		list := slices.Clone(entries[s])
		SortEntries(list)
		rs.entries[s] = list
	}
	return rs
}

// Sectors returns the sectors in their configured order.
func (r ResultSet) Sectors() []Sector {
	return slices.Clone(r.order)
}

// Entries returns a copy of the sorted entries of a sector.
func (r ResultSet) Entries(s Sector) []Entry {
	return slices.Clone(r.entries[s])
}

func (r ResultSet) Total() int {
	total := 0
	for _, s := range r.order {
		total += len(r.entries[s])
	}
	return total
}

// Empty is true when no sector yielded any entry.
func (r ResultSet) Empty() bool {
	return r.Total() == 0
}
