package calculator

import (
	"testing"
	"time"

	"esgrank/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func bar(day int, close float64, volume int64) domain.PriceBar {
	price := decimal.NewFromFloat(close)
	return domain.PriceBar{
		Date:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, day),
		Open:   price,
		High:   price.Mul(decimal.NewFromFloat(1.01)),
		Low:    price.Mul(decimal.NewFromFloat(0.99)),
		Close:  price,
		Volume: volume,
	}
}

func TestDailyReturns(t *testing.T) {
	bars := []domain.PriceBar{
		bar(0, 100, 1000),
		bar(1, 110, 1000),
		bar(2, 99, 1000),
	}

	returns := DailyReturns(bars)
	require.Len(t, returns, 2)
	require.InDelta(t, 0.10, returns[0], 1e-9)
	require.InDelta(t, -0.10, returns[1], 1e-9)

	require.Nil(t, DailyReturns(bars[:1]))
}

func TestVolatility(t *testing.T) {
	t.Run("flat series has zero volatility", func(t *testing.T) {
		bars := []domain.PriceBar{bar(0, 100, 1), bar(1, 100, 1), bar(2, 100, 1)}

		vol, err := Volatility(bars)
		require.NoError(t, err)
		require.Zero(t, vol)
	})

	t.Run("too few bars", func(t *testing.T) {
		_, err := Volatility([]domain.PriceBar{bar(0, 100, 1), bar(1, 101, 1)})
		require.Error(t, err)
	})
}

func TestVolumeRatio(t *testing.T) {
	bars := []domain.PriceBar{
		bar(0, 100, 1000),
		bar(1, 100, 1000),
		bar(2, 100, 4000),
	}

	// average volume is 2000, last day traded 4000
	ratio, err := VolumeRatio(bars)
	require.NoError(t, err)
	require.InDelta(t, 2.0, ratio, 1e-9)

	_, err = VolumeRatio(nil)
	require.Error(t, err)
}

func TestLargeMoveCount(t *testing.T) {
	bars := []domain.PriceBar{
		bar(0, 100, 1),
		bar(1, 106, 1), // +6%
		bar(2, 105, 1), // small
		bar(3, 98, 1),  // -6.7%
	}

	require.Equal(t, 2, LargeMoveCount(bars, 0.05))
	require.Equal(t, 0, LargeMoveCount(bars, 0.10))
}

func TestFitOLS(t *testing.T) {
	t.Run("recovers a linear relationship", func(t *testing.T) {
		// y = 3 + 2x
		features := [][]float64{{1}, {2}, {3}, {4}, {5}}
		target := []float64{5, 7, 9, 11, 13}

		coefficients, err := FitOLS(features, target)
		require.NoError(t, err)
		require.Len(t, coefficients, 2)
		require.InDelta(t, 3.0, coefficients[0], 1e-6)
		require.InDelta(t, 2.0, coefficients[1], 1e-6)

		predicted, err := PredictOLS(coefficients, []float64{10})
		require.NoError(t, err)
		require.InDelta(t, 23.0, predicted, 1e-6)
	})

	t.Run("two features", func(t *testing.T) {
		// y = 1 + 2a - b
		features := [][]float64{{1, 1}, {2, 1}, {3, 2}, {4, 3}, {5, 5}, {6, 8}}
		target := make([]float64, len(features))
		for i, row := range features {
			target[i] = 1 + 2*row[0] - row[1]
		}

		coefficients, err := FitOLS(features, target)
		require.NoError(t, err)
		require.InDelta(t, 1.0, coefficients[0], 1e-6)
		require.InDelta(t, 2.0, coefficients[1], 1e-6)
		require.InDelta(t, -1.0, coefficients[2], 1e-6)
	})

	t.Run("rejects underdetermined systems", func(t *testing.T) {
		_, err := FitOLS([][]float64{{1, 2}}, []float64{1})
		require.Error(t, err)
	})

	t.Run("prediction rejects feature mismatch", func(t *testing.T) {
		_, err := PredictOLS([]float64{1, 2}, []float64{1, 2})
		require.Error(t, err)
	})
}

func TestMeanAbsoluteError(t *testing.T) {
	mae, err := MeanAbsoluteError([]float64{10, 20, 30}, []float64{12, 18, 30})
	require.NoError(t, err)
	require.InDelta(t, 4.0/3.0, mae, 1e-9)

	_, err = MeanAbsoluteError([]float64{1}, []float64{1, 2})
	require.Error(t, err)
}
