package domain

import (
	"fmt"
	"strings"
	"time"
)

// DataQuality records which tier of the fetch chain produced a company's
// numbers, from live provider data down to sector-average defaults.
type DataQuality string

const (
	DataQuality_Verified        DataQuality = "verified"
	DataQuality_Replacement     DataQuality = "replacement"
	DataQuality_AlternateSymbol DataQuality = "alternate_symbol"
	DataQuality_SectorDefault   DataQuality = "sector_default"
)

func NewDataQuality(s string) (*DataQuality, error) {
	out := DataQuality("")
	switch {
	case strings.EqualFold(s, string(DataQuality_Verified)):
		out = DataQuality_Verified
	case strings.EqualFold(s, string(DataQuality_Replacement)):
		out = DataQuality_Replacement
	case strings.EqualFold(s, string(DataQuality_AlternateSymbol)):
		out = DataQuality_AlternateSymbol
	case strings.EqualFold(s, string(DataQuality_SectorDefault)):
		out = DataQuality_SectorDefault
	default:
		return nil, fmt.Errorf("invalid data quality %s", s)
	}

	return &out, nil
}

// CompanyData is the raw per-ticker result of a fetch strategy, before
// it is merged into an ESGRecord.
type CompanyData struct {
	Ticker        string  `json:"ticker"`
	Name          string  `json:"name,omitempty"`
	Sector        string  `json:"sector,omitempty"`
	Industry      string  `json:"industry,omitempty"`
	Environmental float64 `json:"environmental"`
	Social        float64 `json:"social"`
	Governance    float64 `json:"governance"`
	ESGScore      float64 `json:"esg_score"`
	ROIC          float64 `json:"roic"`
	MarketCap     float64 `json:"market_cap"`
	CurrentPrice  float64 `json:"current_price,omitempty"`

	DataSource  string      `json:"data_source"`
	DataQuality DataQuality `json:"data_quality"`
}

// StrategyAttempt records one provider's try at a ticker. Err is nil on
// the attempt that served the request.
type StrategyAttempt struct {
	Strategy string
	Err      error
}

// FetchOutcome is the result of running a ticker through the fetch
// chain: the data, the strategy that produced it, and every attempt made
// along the way so failures stay observable instead of being swallowed.
type FetchOutcome struct {
	Data     *CompanyData
	Strategy string
	Attempts []StrategyAttempt
}

// RawPayload archives a provider response body verbatim for debugging
// and replay.
type RawPayload struct {
	Key       string    `json:"key"`
	Ticker    string    `json:"ticker"`
	Source    string    `json:"source"`
	FetchedAt time.Time `json:"fetched_at"`
	Body      []byte    `json:"body"`
}
