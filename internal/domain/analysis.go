package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ControversyFlag is one matched regulatory filing: ISO-8601 date, the
// filing title annotated with the matched keywords, and a link.
type ControversyFlag struct {
	Date  string `json:"date"`
	Title string `json:"title"`
	Link  string `json:"link"`
}

// PriceBar is one daily bar from the market data provider.
type PriceBar struct {
	Date   time.Time
	Open   decimal.Decimal
	High   decimal.Decimal
	Low    decimal.Decimal
	Close  decimal.Decimal
	Volume int64
}

type SearchResult struct {
	Symbol             string  `json:"symbol"`
	Name               string  `json:"name"`
	Sector             string  `json:"sector"`
	MarketCapFormatted string  `json:"market_cap"`
	ESGScore           float64 `json:"esg_score"`
	ROIC               float64 `json:"roic"`
	Score              int     `json:"score"`
	DataSource         string  `json:"data_source"`
}

type AlternativeSuggestion struct {
	Ticker             string  `json:"ticker"`
	Name               string  `json:"name"`
	Sector             string  `json:"sector"`
	MarketCapFormatted string  `json:"market_cap_formatted"`
	ESGScore           float64 `json:"esg_score"`
	ROIC               float64 `json:"roic"`
	ESGDelta           float64 `json:"esg_delta"`
	DataSource         string  `json:"data_source"`
	Reason             string  `json:"reason"`
}

// PricePrediction is a linear-trend forecast over roughly a year of
// daily bars. Accuracy is measured on a chronological 80/20 holdout.
type PricePrediction struct {
	Ticker         string                `json:"ticker"`
	Direction      string                `json:"prediction"`
	CurrentPrice   float64               `json:"current_price"`
	PredictedPrice float64               `json:"predicted_price"`
	ChangePercent  float64               `json:"change_percent"`
	HorizonDays    int                   `json:"horizon_days"`
	Accuracy       float64               `json:"accuracy"`
	Confidence     float64               `json:"confidence"`
	Volatility     float64               `json:"volatility"`
	DataPoints     int                   `json:"data_points"`
	Model          string                `json:"model"`
	Validation     *PredictionValidation `json:"validation,omitempty"`
	GeneratedAt    time.Time             `json:"generated_at"`
}

type RiskLevel string

const (
	RiskLevel_High    RiskLevel = "High Risk"
	RiskLevel_Medium  RiskLevel = "Medium Risk"
	RiskLevel_Low     RiskLevel = "Low Risk"
	RiskLevel_Minimal RiskLevel = "Minimal Risk"
)

// ManipulationSignal is one triggered heuristic with the observed value,
// the threshold it crossed, and the points it contributed.
type ManipulationSignal struct {
	Name      string  `json:"name"`
	Observed  float64 `json:"observed"`
	Threshold float64 `json:"threshold"`
	Points    int     `json:"points"`
}

type ManipulationAssessment struct {
	Ticker     string               `json:"ticker"`
	Score      int                  `json:"risk_score"`
	Level      RiskLevel            `json:"risk_level"`
	Signals    []ManipulationSignal `json:"signals"`
	AnalyzedAt time.Time            `json:"analysis_date"`
}

type ConfidenceLevel string

const (
	ConfidenceLevel_High   ConfidenceLevel = "high"
	ConfidenceLevel_Medium ConfidenceLevel = "medium"
	ConfidenceLevel_Low    ConfidenceLevel = "low"
)

// BenchmarkComparison positions one sub-score against its sector's
// published range.
type BenchmarkComparison struct {
	Component     string  `json:"component"`
	Score         float64 `json:"score"`
	SectorAverage float64 `json:"sector_average"`
	SectorRange   string  `json:"sector_range"`
	Percentile    int     `json:"percentile"`
}

// ValidationReport is the data-quality verdict on a record's scores:
// benchmark range checks plus suspicious-pattern heuristics. More than
// three warnings invalidates the record.
type ValidationReport struct {
	Ticker           string                `json:"ticker"`
	Valid            bool                  `json:"is_valid"`
	ConfidenceLevel  ConfidenceLevel       `json:"confidence_level"`
	DataQuality      string                `json:"data_quality"`
	Warnings         []string              `json:"warnings"`
	Benchmarks       []BenchmarkComparison `json:"benchmark_comparison,omitempty"`
	AdjustedESGScore *float64              `json:"adjusted_esg_score,omitempty"`
}

type PredictionValidation struct {
	Reliable             bool     `json:"is_reliable"`
	ConfidenceAdjustment float64  `json:"confidence_adjustment"`
	RiskLevel            string   `json:"risk_level"`
	Warnings             []string `json:"warnings"`
}

// CompanyAnalysis is the full analyze-page payload for one ticker: the
// stored record, how it sits in the reference universe, recent
// controversy flags, a data-quality verdict and an optional AI note.
type CompanyAnalysis struct {
	Ticker             string            `json:"ticker"`
	Name               string            `json:"name,omitempty"`
	Sector             string            `json:"sector,omitempty"`
	Record             ESGRecord         `json:"record"`
	MarketCapFormatted string            `json:"market_cap_formatted"`
	ESGZScore          float64           `json:"esg_zscore"`
	ROICZScore         float64           `json:"roic_zscore"`
	Controversies      []ControversyFlag `json:"controversies"`
	Validation         *ValidationReport `json:"validation,omitempty"`
	AISummary          string            `json:"ai_summary,omitempty"`
	GeneratedAt        time.Time         `json:"generated_at"`
}

// IngestResult is the per-ticker outcome of one ingestion run.
type IngestResult struct {
	Ticker   string `json:"ticker"`
	Source   string `json:"source"`
	Strategy string `json:"strategy,omitempty"`
	Err      string `json:"error,omitempty"`
}

type IngestReport struct {
	RunID      string         `json:"run_id"`
	Requested  int            `json:"requested"`
	Succeeded  int            `json:"succeeded"`
	Failed     int            `json:"failed"`
	PerTicker  []IngestResult `json:"per_ticker"`
	StartedAt  time.Time      `json:"started_at"`
	DurationMs int64          `json:"duration_ms"`
}
