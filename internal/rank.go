package internal

import (
	"fmt"
	"math"
	"sort"

	"esgrank/internal/domain"

	"github.com/montanaflynn/stats"
)

// Weight sums are validated against a single configurable tolerance.
// DefaultWeightSumTolerance is the documented default, matching the
// strict /rank path. The relaxed constant exists because the historical
// enhanced path accepted anything in 0.99..1.01 - the two paths never
// agreed and product hasn't picked one, so both tolerances stay visible
// here and callers choose explicitly.
const (
	DefaultWeightSumTolerance = 1e-6
	RelaxedWeightSumTolerance = 0.01
)

type RankOptions struct {
	// WeightSumTolerance bounds |sum(weights) - 1.0|. Zero means
	// DefaultWeightSumTolerance.
	WeightSumTolerance float64
}

// RankResult holds the sorted portfolio rows and the synthetic summary
// row as two separate results. Callers that want the reference table
// shape append Summary after Holdings.
type RankResult struct {
	Holdings []domain.RankedHolding
	Summary  domain.RankedHolding

	// UnmatchedTickers lists requested tickers with no reference record.
	// Degraded data, not an error: those rows carry zeros.
	UnmatchedTickers []string
}

// RankPortfolio joins portfolio lines onto the reference universe,
// derives weighted ESG/ROIC and universe-relative z-scores per holding,
// and sorts descending by ESG score. Pure with respect to its inputs.
func RankPortfolio(lines []domain.PortfolioLine, universe []domain.ESGRecord, opts RankOptions) (*RankResult, error) {
	tolerance := opts.WeightSumTolerance
	if tolerance == 0 {
		tolerance = DefaultWeightSumTolerance
	}

	if err := validateLines(lines, tolerance); err != nil {
		return nil, err
	}
	if len(universe) == 0 {
		return nil, &domain.NoReferenceDataError{}
	}

	recordsByTicker := make(map[string]domain.ESGRecord, len(universe))
	for _, record := range universe {
		recordsByTicker[record.Ticker] = record
	}

	universeStats, err := newUniverseStats(universe)
	if err != nil {
		return nil, fmt.Errorf("failed to compute universe statistics: %w", err)
	}

	holdings := make([]domain.RankedHolding, 0, len(lines))
	var unmatched []string
	for _, line := range lines {
		record, ok := recordsByTicker[line.Ticker]
		if !ok {
			// left join: keep the line, zero every numeric field
			unmatched = append(unmatched, line.Ticker)
			record = domain.ESGRecord{Ticker: line.Ticker}
		}
		holdings = append(holdings, domain.RankedHolding{
			Ticker:        line.Ticker,
			Weight:        line.Weight,
			Environmental: record.Environmental,
			Social:        record.Social,
			Governance:    record.Governance,
			ESGScore:      record.ESGScore,
			ROIC:          record.ROIC,
			MarketCap:     record.MarketCap,
			WeightedESG:   line.Weight * record.ESGScore,
			WeightedROIC:  line.Weight * record.ROIC,
			ESGZScore:     zScore(record.ESGScore, universeStats.esgMean, universeStats.esgStdev),
			ROICZScore:    zScore(record.ROIC, universeStats.roicMean, universeStats.roicStdev),
		})
	}

	// stable so equal scores keep their input order
	sort.SliceStable(holdings, func(i, j int) bool {
		return holdings[i].ESGScore > holdings[j].ESGScore
	})

	summary := domain.RankedHolding{
		Ticker: domain.PortfolioTotalTicker,
		Weight: 1.0,
	}
	for _, holding := range holdings {
		summary.ESGScore += holding.WeightedESG
		summary.ROIC += holding.WeightedROIC
	}

	return &RankResult{
		Holdings:         holdings,
		Summary:          summary,
		UnmatchedTickers: unmatched,
	}, nil
}

func validateLines(lines []domain.PortfolioLine, tolerance float64) error {
	if len(lines) == 0 {
		return &domain.MissingFieldError{Field: "ticker"}
	}

	sum := 0.0
	for _, line := range lines {
		if line.Ticker == "" {
			return &domain.MissingFieldError{Field: "ticker"}
		}
		if math.IsNaN(line.Weight) {
			return &domain.MissingFieldError{Field: "weight"}
		}
		sum += line.Weight
	}
	if math.Abs(sum-1) > tolerance {
		return &domain.WeightSumError{Sum: sum, Tolerance: tolerance}
	}

	return nil
}

// z-scores are normalized against the whole reference universe, not the
// requested subset, using population statistics.
type universeStatistics struct {
	esgMean   float64
	esgStdev  float64
	roicMean  float64
	roicStdev float64
}

func newUniverseStats(universe []domain.ESGRecord) (*universeStatistics, error) {
	esgScores := make([]float64, 0, len(universe))
	roics := make([]float64, 0, len(universe))
	for _, record := range universe {
		esgScores = append(esgScores, record.ESGScore)
		roics = append(roics, record.ROIC)
	}

	esgMean, err := stats.Mean(esgScores)
	if err != nil {
		return nil, err
	}
	esgStdev, err := stats.StandardDeviationPopulation(esgScores)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate esg stdev: %w", err)
	}
	roicMean, err := stats.Mean(roics)
	if err != nil {
		return nil, err
	}
	roicStdev, err := stats.StandardDeviationPopulation(roics)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate roic stdev: %w", err)
	}

	return &universeStatistics{
		esgMean:   esgMean,
		esgStdev:  esgStdev,
		roicMean:  roicMean,
		roicStdev: roicStdev,
	}, nil
}

// a degenerate all-identical universe yields 0, never a divide by zero
func zScore(value, mean, stdev float64) float64 {
	if stdev == 0 {
		return 0
	}
	return (value - mean) / stdev
}
