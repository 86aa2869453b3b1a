package service

import (
	"context"
	"errors"
	"strings"

	"esgrank/internal/domain"
	"esgrank/internal/logger"
	"esgrank/internal/repository"
	"esgrank/internal/universe"
	"esgrank/internal/util"
	"esgrank/pkg/alphavantage"
)

const (
	// minLocalHits is how many catalog matches we want before skipping
	// the remote symbol search.
	minLocalHits = 5

	remoteMatchScore = 50
)

// SearchService resolves free-text queries to known companies: the
// embedded NSE catalog first, enriched with any stored ESG data, with a
// remote symbol search topping up thin result sets when a key is
// configured.
type SearchService interface {
	Search(ctx context.Context, query string) ([]domain.SearchResult, error)
}

func NewSearchService(
	catalog *universe.Catalog,
	esgRepository repository.ESGRecordRepository,
	alphaVantageClient *alphavantage.Client,
) SearchService {
	return searchServiceHandler{
		catalog:            catalog,
		esgRepository:      esgRepository,
		alphaVantageClient: alphaVantageClient,
	}
}

type searchServiceHandler struct {
	catalog            *universe.Catalog
	esgRepository      repository.ESGRecordRepository
	alphaVantageClient *alphavantage.Client
}

func (h searchServiceHandler) Search(ctx context.Context, query string) ([]domain.SearchResult, error) {
	matches := h.catalog.Search(query)

	results := make([]domain.SearchResult, 0, len(matches))
	seen := map[string]bool{}
	for _, match := range matches {
		results = append(results, h.enrich(match))
		seen[strings.ToUpper(match.Entry.Symbol)] = true
	}

	if len(results) < minLocalHits && h.alphaVantageClient != nil && h.alphaVantageClient.ApiKey != "" {
		// best effort: a broken remote search shouldn't empty the page
		remote, err := h.alphaVantageClient.SearchSymbols(ctx, query)
		if err != nil {
			logger.FromContext(ctx).Warnf("symbol search fallback failed for %q: %v", query, err)
		}
		for _, match := range remote {
			symbol := strings.ToUpper(match.Symbol)
			if seen[symbol] {
				continue
			}
			seen[symbol] = true
			results = append(results, domain.SearchResult{
				Symbol:             symbol,
				Name:               match.Name,
				Sector:             "",
				MarketCapFormatted: "N/A",
				Score:              remoteMatchScore,
				DataSource:         "alphavantage",
			})
		}
	}

	return results, nil
}

func (h searchServiceHandler) enrich(match universe.Match) domain.SearchResult {
	result := domain.SearchResult{
		Symbol:             match.Entry.Symbol,
		Name:               match.Entry.Name,
		Sector:             match.Entry.Sector,
		MarketCapFormatted: "N/A",
		Score:              match.Score,
		DataSource:         "catalog",
	}

	record, err := h.esgRepository.Get(match.Entry.Symbol)
	if err != nil {
		if !errors.Is(err, domain.ErrRecordNotFound) {
			logger.Warn("failed to enrich search result for ", match.Entry.Symbol, ": ", err)
		}
		return result
	}

	result.ESGScore = record.ESGScore
	result.ROIC = record.ROIC
	result.MarketCapFormatted = util.FormatMarketCapINR(record.MarketCap)
	if record.DataSource != "" {
		result.DataSource = record.DataSource
	}

	return result
}
