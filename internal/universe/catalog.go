package universe

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"github.com/gocarina/gocsv"
)

//go:embed catalog.csv
var catalogCsv []byte

// CatalogEntry is one NSE listing we know about without hitting any
// external API.
type CatalogEntry struct {
	Symbol   string `csv:"symbol"`
	Name     string `csv:"name"`
	Sector   string `csv:"sector"`
	Keywords string `csv:"keywords"`
}

func (e CatalogEntry) KeywordList() []string {
	if e.Keywords == "" {
		return nil
	}
	return strings.Split(e.Keywords, "|")
}

// Match scores how relevant a catalog entry is to a free-text query.
type Match struct {
	Entry CatalogEntry
	Score int
}

// Search relevance tiers. An exact symbol hit beats a name hit beats a
// keyword hit beats a sector hit.
const (
	ScoreExactSymbol = 100
	ScoreName        = 80
	ScoreKeyword     = 70
	ScoreSector      = 60
)

type Catalog struct {
	entries  []CatalogEntry
	bySymbol map[string]CatalogEntry
}

// NewCatalog parses the embedded NSE listing table.
func NewCatalog() (*Catalog, error) {
	entries := []CatalogEntry{}
	if err := gocsv.UnmarshalBytes(catalogCsv, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse universe catalog: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("universe catalog is empty")
	}

	bySymbol := make(map[string]CatalogEntry, len(entries))
	for _, entry := range entries {
		bySymbol[strings.ToUpper(entry.Symbol)] = entry
	}

	return &Catalog{
		entries:  entries,
		bySymbol: bySymbol,
	}, nil
}

func (c *Catalog) Entries() []CatalogEntry {
	out := make([]CatalogEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

func (c *Catalog) Get(symbol string) (CatalogEntry, bool) {
	entry, ok := c.bySymbol[strings.ToUpper(symbol)]
	return entry, ok
}

// SectorOf resolves a ticker's sector from the catalog, falling back to
// name-pattern inference for symbols we don't list. Unknown tickers get
// an empty sector.
func (c *Catalog) SectorOf(ticker string) string {
	if entry, ok := c.Get(ticker); ok {
		return entry.Sector
	}
	return inferSectorFromSymbol(ticker)
}

// SectorPeers returns catalog entries in the given sector, excluding the
// subject symbol.
func (c *Catalog) SectorPeers(sector, excludeSymbol string) []CatalogEntry {
	peers := []CatalogEntry{}
	for _, entry := range c.entries {
		if strings.EqualFold(entry.Sector, sector) && !strings.EqualFold(entry.Symbol, excludeSymbol) {
			peers = append(peers, entry)
		}
	}
	return peers
}

// Search scores every catalog entry against the query and returns hits
// sorted by score, catalog order preserved within a tier.
func (c *Catalog) Search(query string) []Match {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	matches := []Match{}
	for _, entry := range c.entries {
		score := scoreEntry(entry, query)
		if score > 0 {
			matches = append(matches, Match{Entry: entry, Score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	return matches
}

func scoreEntry(entry CatalogEntry, query string) int {
	symbol := strings.ToLower(entry.Symbol)
	if symbol == query || strings.TrimSuffix(symbol, ".ns") == query {
		return ScoreExactSymbol
	}
	if strings.Contains(strings.ToLower(entry.Name), query) {
		return ScoreName
	}
	for _, keyword := range entry.KeywordList() {
		if strings.Contains(strings.ToLower(keyword), query) {
			return ScoreKeyword
		}
	}
	if strings.Contains(strings.ToLower(entry.Sector), query) {
		return ScoreSector
	}
	return 0
}

// inferSectorFromSymbol guesses a sector for tickers outside the catalog
// from common NSE naming patterns.
func inferSectorFromSymbol(ticker string) string {
	symbol := strings.ToUpper(ticker)
	switch {
	case strings.Contains(symbol, "BANK") || strings.Contains(symbol, "FIN"):
		return "Banking"
	case strings.Contains(symbol, "TECH") || strings.Contains(symbol, "INFO") || strings.Contains(symbol, "SOFT"):
		return "IT"
	case strings.Contains(symbol, "PHARMA") || strings.Contains(symbol, "LAB") || strings.Contains(symbol, "HEALTH"):
		return "Pharma"
	case strings.Contains(symbol, "AUTO") || strings.Contains(symbol, "MOTOR"):
		return "Auto"
	case strings.Contains(symbol, "POWER") || strings.Contains(symbol, "ENERGY") || strings.Contains(symbol, "OIL") || strings.Contains(symbol, "GAS"):
		return "Energy"
	case strings.Contains(symbol, "STEEL") || strings.Contains(symbol, "METAL"):
		return "Metals"
	case strings.Contains(symbol, "CEMENT") || strings.Contains(symbol, "CEM"):
		return "Cement"
	}
	return ""
}
