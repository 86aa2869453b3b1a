package domain

import (
	"time"
)

// PortfolioTotalTicker labels the synthetic summary row so callers can
// tell it apart from real holdings without relying on position.
const PortfolioTotalTicker = "PORTFOLIO_TOTAL"

// PortfolioLine is one requested holding. Tickers are upper-cased by the
// caller before ranking.
type PortfolioLine struct {
	Ticker string  `json:"ticker"`
	Weight float64 `json:"weight"`
}

// ESGRecord is the stored reference document for one ticker. One JSON
// document per ticker, overwritten on re-ingestion.
type ESGRecord struct {
	Ticker        string      `json:"ticker"`
	Environmental float64     `json:"environmental"`
	Social        float64     `json:"social"`
	Governance    float64     `json:"governance"`
	ESGScore      float64     `json:"esg_score"`
	ROIC          float64     `json:"roic"`
	MarketCap     float64     `json:"market_cap"`
	LastUpdated   time.Time   `json:"last_updated"`
	DataSource    string      `json:"data_source,omitempty"`
	DataQuality   DataQuality `json:"data_quality,omitempty"`
}

// RankedHolding is a PortfolioLine joined onto its ESGRecord with the
// derived per-holding metrics. Lines without reference data keep zeros
// in every numeric field.
type RankedHolding struct {
	Ticker        string  `json:"ticker"`
	Weight        float64 `json:"weight"`
	Environmental float64 `json:"environmental"`
	Social        float64 `json:"social"`
	Governance    float64 `json:"governance"`
	ESGScore      float64 `json:"esg_score"`
	ROIC          float64 `json:"roic"`
	MarketCap     float64 `json:"market_cap"`
	WeightedESG   float64 `json:"weighted_esg"`
	WeightedROIC  float64 `json:"weighted_roic"`
	ESGZScore     float64 `json:"esg_zscore"`
	ROICZScore    float64 `json:"roic_zscore"`
}

// IsPortfolioTotal reports whether the row is the synthetic summary row.
func (h RankedHolding) IsPortfolioTotal() bool {
	return h.Ticker == PortfolioTotalTicker
}
