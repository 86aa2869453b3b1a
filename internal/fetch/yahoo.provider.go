package fetch

import (
	"context"
	"fmt"

	"esgrank/internal/domain"
	"esgrank/internal/universe"

	"github.com/piquette/finance-go/equity"
)

const (
	// sub-score boosts for very large companies, which tend to have
	// formal ESG programs and disclosures
	megaCapMultiplier  = 1.2
	largeCapMultiplier = 1.1
	megaCapThreshold   = 1e11
	largeCapThreshold  = 1e10

	maxSubScore = 95.0
)

// YahooProvider builds company data from a live Yahoo Finance quote.
// Yahoo has no ESG endpoint, so sub-scores are the sector profile scaled
// by company size; the quote contributes price, market cap, name and a
// profitability proxy.
type YahooProvider struct {
	Catalog *universe.Catalog
}

func (p YahooProvider) Name() string {
	return "yahoo"
}

func (p YahooProvider) Fetch(_ context.Context, ticker string) (*domain.CompanyData, error) {
	q, err := equity.Get(ticker)
	if err != nil {
		return nil, fmt.Errorf("failed to get yahoo quote for %s: %w", ticker, err)
	}
	if q == nil || q.RegularMarketPrice == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrTickerNotCovered, ticker)
	}

	sector := p.Catalog.SectorOf(ticker)
	profile := profileForSector(sector)
	marketCap := float64(q.MarketCap)

	multiplier := 1.0
	if marketCap > megaCapThreshold {
		multiplier = megaCapMultiplier
	} else if marketCap > largeCapThreshold {
		multiplier = largeCapMultiplier
	}

	environmental := boundedScore(profile.Environmental * multiplier)
	social := boundedScore(profile.Social * multiplier)
	governance := boundedScore(profile.Governance * multiplier)

	// trailing EPS over book value approximates return on equity, the
	// closest profitability ratio the quote API exposes
	roic := profile.ROIC
	if q.BookValue > 0 && q.EpsTrailingTwelveMonths != 0 {
		roic = clamp(q.EpsTrailingTwelveMonths/q.BookValue, -1, 1)
	}

	name := q.ShortName
	if entry, ok := p.Catalog.Get(ticker); ok && name == "" {
		name = entry.Name
	}

	return &domain.CompanyData{
		Ticker:        ticker,
		Name:          name,
		Sector:        sector,
		Environmental: environmental,
		Social:        social,
		Governance:    governance,
		ESGScore:      (environmental + social + governance) / 3,
		ROIC:          roic,
		MarketCap:     marketCap,
		CurrentPrice:  q.RegularMarketPrice,
		DataSource:    "yahoo",
		DataQuality:   domain.DataQuality_Verified,
	}, nil
}

func boundedScore(score float64) float64 {
	if score > maxSubScore {
		return maxSubScore
	}
	return score
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
