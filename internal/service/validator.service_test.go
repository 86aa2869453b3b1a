package service

import (
	"strings"
	"testing"

	"esgrank/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestValidateRecord(t *testing.T) {
	validator := NewValidatorService()

	t.Run("clean record passes with high confidence", func(t *testing.T) {
		report := validator.ValidateRecord(domain.ESGRecord{
			Ticker:        "TCS.NS",
			Environmental: 72.3,
			Social:        68.1,
			Governance:    74.6,
			ESGScore:      71.7,
			DataQuality:   domain.DataQuality_Verified,
		}, "IT")

		require.True(t, report.Valid)
		require.Equal(t, domain.ConfidenceLevel_High, report.ConfidenceLevel)
		require.Empty(t, report.Warnings)
		require.Len(t, report.Benchmarks, 3)
		require.Nil(t, report.AdjustedESGScore)
	})

	t.Run("identical sub-scores are flagged", func(t *testing.T) {
		report := validator.ValidateRecord(domain.ESGRecord{
			Ticker:        "XYZ.NS",
			Environmental: 66.6,
			Social:        66.6,
			Governance:    66.6,
		}, "IT")

		require.NotEmpty(t, report.Warnings)
		require.Contains(t, report.Warnings[0], "identical")
	})

	t.Run("round numbers are flagged", func(t *testing.T) {
		report := validator.ValidateRecord(domain.ESGRecord{
			Ticker:        "XYZ.NS",
			Environmental: 70,
			Social:        65,
			Governance:    75,
		}, "IT")

		requireWarningContaining(t, report.Warnings, "round numbers")
	})

	t.Run("everything above 90 is flagged", func(t *testing.T) {
		report := validator.ValidateRecord(domain.ESGRecord{
			Ticker:        "XYZ.NS",
			Environmental: 94.2,
			Social:        92.1,
			Governance:    95.3,
		}, "IT")

		requireWarningContaining(t, report.Warnings, "above 90")
	})

	t.Run("enough warnings invalidate and adjust the score", func(t *testing.T) {
		// identical + round + above-90 + out of range for every component
		report := validator.ValidateRecord(domain.ESGRecord{
			Ticker:        "XYZ.NS",
			Environmental: 95,
			Social:        95,
			Governance:    95,
			ESGScore:      95,
		}, "energy")

		require.False(t, report.Valid)
		require.Equal(t, domain.ConfidenceLevel_Low, report.ConfidenceLevel)
		require.NotNil(t, report.AdjustedESGScore)
		require.InDelta(t, 85.5, *report.AdjustedESGScore, 1e-9)
	})

	t.Run("unknown sector uses the default benchmark", func(t *testing.T) {
		report := validator.ValidateRecord(domain.ESGRecord{
			Ticker:        "XYZ.NS",
			Environmental: 60.5,
			Social:        61.5,
			Governance:    62.5,
		}, "")

		require.True(t, report.Valid)
		require.Empty(t, report.Warnings)
	})
}

func TestValidatePrediction(t *testing.T) {
	validator := NewValidatorService()

	t.Run("modest prediction is reliable", func(t *testing.T) {
		result := validator.ValidatePrediction(domain.PricePrediction{
			Confidence:    0.55,
			ChangePercent: 4.2,
			DataPoints:    250,
		})

		require.True(t, result.Reliable)
		require.Equal(t, 1.0, result.ConfidenceAdjustment)
		require.Equal(t, "low", result.RiskLevel)
	})

	t.Run("optimistic confidence is scaled down", func(t *testing.T) {
		result := validator.ValidatePrediction(domain.PricePrediction{
			Confidence:    0.88,
			ChangePercent: 3.1,
			DataPoints:    250,
		})

		require.False(t, result.Reliable)
		require.Equal(t, 0.7, result.ConfidenceAdjustment)
		require.Equal(t, "medium", result.RiskLevel)
	})

	t.Run("extreme move on thin data is high risk", func(t *testing.T) {
		result := validator.ValidatePrediction(domain.PricePrediction{
			Confidence:    0.4,
			ChangePercent: -27.5,
			DataPoints:    60,
		})

		require.False(t, result.Reliable)
		require.Equal(t, "high", result.RiskLevel)
		require.Len(t, result.Warnings, 2)
	})
}

func requireWarningContaining(t *testing.T, warnings []string, substring string) {
	t.Helper()
	for _, warning := range warnings {
		if strings.Contains(warning, substring) {
			return
		}
	}
	t.Fatalf("no warning containing %q in %v", substring, warnings)
}
