package service

import (
	"fmt"
	"math"
	"strings"

	"esgrank/internal/domain"
)

// scoreRange is the span of sub-scores published Indian sector peers
// actually land in. Scores outside it aren't wrong per se, just suspect.
type scoreRange struct {
	Min float64
	Max float64
}

func (r scoreRange) contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

func (r scoreRange) percentile(v float64) int {
	if r.Max == r.Min {
		return 50
	}
	p := (v - r.Min) / (r.Max - r.Min) * 100
	return int(math.Round(math.Max(0, math.Min(100, p))))
}

type sectorBenchmark struct {
	Environmental scoreRange
	Social        scoreRange
	Governance    scoreRange
}

var sectorBenchmarks = map[string]sectorBenchmark{
	"banking": {Environmental: scoreRange{35, 75}, Social: scoreRange{45, 85}, Governance: scoreRange{50, 90}},
	"it":      {Environmental: scoreRange{50, 90}, Social: scoreRange{50, 88}, Governance: scoreRange{55, 92}},
	"energy":  {Environmental: scoreRange{25, 65}, Social: scoreRange{40, 75}, Governance: scoreRange{45, 80}},
	"fmcg":    {Environmental: scoreRange{45, 85}, Social: scoreRange{50, 90}, Governance: scoreRange{50, 88}},
	"auto":    {Environmental: scoreRange{38, 78}, Social: scoreRange{42, 80}, Governance: scoreRange{48, 84}},
	"pharma":  {Environmental: scoreRange{42, 82}, Social: scoreRange{55, 92}, Governance: scoreRange{48, 86}},
	"telecom": {Environmental: scoreRange{40, 78}, Social: scoreRange{45, 82}, Governance: scoreRange{45, 83}},
}

var defaultBenchmark = sectorBenchmark{
	Environmental: scoreRange{30, 85},
	Social:        scoreRange{35, 88},
	Governance:    scoreRange{40, 90},
}

// maxWarningsBeforeInvalid is how many data-quality warnings a record
// can carry before we stop trusting its scores outright.
const maxWarningsBeforeInvalid = 3

// ValidatorService sanity-checks ESG scores against sector benchmarks
// and known too-good-to-be-true patterns, and vets price predictions
// before they reach a user.
type ValidatorService interface {
	ValidateRecord(record domain.ESGRecord, sector string) domain.ValidationReport
	ValidatePrediction(prediction domain.PricePrediction) domain.PredictionValidation
}

func NewValidatorService() ValidatorService {
	return validatorServiceHandler{}
}

type validatorServiceHandler struct{}

func (h validatorServiceHandler) ValidateRecord(record domain.ESGRecord, sector string) domain.ValidationReport {
	benchmark, ok := sectorBenchmarks[strings.ToLower(sector)]
	if !ok {
		benchmark = defaultBenchmark
	}

	warnings := []string{}
	benchmarks := []domain.BenchmarkComparison{}

	components := []struct {
		name  string
		score float64
		r     scoreRange
	}{
		{"environmental", record.Environmental, benchmark.Environmental},
		{"social", record.Social, benchmark.Social},
		{"governance", record.Governance, benchmark.Governance},
	}
	for _, component := range components {
		benchmarks = append(benchmarks, domain.BenchmarkComparison{
			Component:     component.name,
			Score:         component.score,
			SectorAverage: (component.r.Min + component.r.Max) / 2,
			SectorRange:   fmt.Sprintf("%.0f-%.0f", component.r.Min, component.r.Max),
			Percentile:    component.r.percentile(component.score),
		})
		if component.score != 0 && !component.r.contains(component.score) {
			warnings = append(warnings, fmt.Sprintf("%s score %.1f is outside the %s sector range %.0f-%.0f",
				component.name, component.score, sectorLabel(sector), component.r.Min, component.r.Max))
		}
	}

	if record.Environmental != 0 && record.Environmental == record.Social && record.Social == record.Governance {
		warnings = append(warnings, "environmental, social and governance scores are identical, which suggests placeholder data")
	}
	if record.Environmental > 0 && isRound(record.Environmental) && isRound(record.Social) && isRound(record.Governance) {
		warnings = append(warnings, "all sub-scores are round numbers, which suggests estimated rather than measured data")
	}
	if record.Environmental > 90 && record.Social > 90 && record.Governance > 90 {
		warnings = append(warnings, "all sub-scores above 90 is rare even for ESG leaders")
	}

	report := domain.ValidationReport{
		Ticker:          record.Ticker,
		Valid:           len(warnings) <= maxWarningsBeforeInvalid,
		ConfidenceLevel: confidenceForWarnings(warnings),
		DataQuality:     string(record.DataQuality),
		Warnings:        warnings,
		Benchmarks:      benchmarks,
	}

	if !report.Valid {
		adjusted := record.ESGScore * 0.9
		report.AdjustedESGScore = &adjusted
	}

	return report
}

func (h validatorServiceHandler) ValidatePrediction(prediction domain.PricePrediction) domain.PredictionValidation {
	warnings := []string{}
	adjustment := 1.0

	if prediction.Confidence > 0.8 {
		warnings = append(warnings, "confidence above 0.8 is optimistic for a linear model")
		adjustment = 0.7
	}
	if math.Abs(prediction.ChangePercent) > 20 {
		warnings = append(warnings, fmt.Sprintf("predicted move of %.1f%% over %d days is extreme", prediction.ChangePercent, prediction.HorizonDays))
	}
	if prediction.DataPoints < 100 {
		warnings = append(warnings, fmt.Sprintf("model trained on only %d data points", prediction.DataPoints))
	}

	riskLevel := "low"
	if len(warnings) == 1 {
		riskLevel = "medium"
	} else if len(warnings) > 1 {
		riskLevel = "high"
	}

	return domain.PredictionValidation{
		Reliable:             len(warnings) == 0,
		ConfidenceAdjustment: adjustment,
		RiskLevel:            riskLevel,
		Warnings:             warnings,
	}
}

func confidenceForWarnings(warnings []string) domain.ConfidenceLevel {
	switch {
	case len(warnings) == 0:
		return domain.ConfidenceLevel_High
	case len(warnings) <= 2:
		return domain.ConfidenceLevel_Medium
	default:
		return domain.ConfidenceLevel_Low
	}
}

func isRound(v float64) bool {
	return v == math.Trunc(v) && math.Mod(v, 5) == 0
}

func sectorLabel(sector string) string {
	if sector == "" {
		return "general"
	}
	return sector
}
