package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"esgrank/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type stubMarketDataService struct {
	bars []domain.PriceBar
	err  error
}

func (s stubMarketDataService) DailyBars(_ string, _, _ time.Time) ([]domain.PriceBar, error) {
	return s.bars, s.err
}

// trendingBars builds n days of a steady uptrend with enough variation
// in volume and intraday range to keep the regression well conditioned.
func trendingBars(n int, startPrice, dailyGain float64) []domain.PriceBar {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]domain.PriceBar, 0, n)
	for i := 0; i < n; i++ {
		close := startPrice + dailyGain*float64(i)
		spread := 1.005 + 0.002*float64(i%7)
		bars = append(bars, domain.PriceBar{
			Date:   start.AddDate(0, 0, i),
			Open:   decimal.NewFromFloat(close),
			High:   decimal.NewFromFloat(close * spread),
			Low:    decimal.NewFromFloat(close / spread),
			Close:  decimal.NewFromFloat(close),
			Volume: int64(100000 + 1500*(i%11)),
		})
	}
	return bars
}

func TestPredictionService(t *testing.T) {
	ctx := context.Background()
	validator := NewValidatorService()

	t.Run("steady uptrend predicts up", func(t *testing.T) {
		marketData := stubMarketDataService{bars: trendingBars(200, 100, 0.5)}
		svc := NewPredictionService(marketData, validator)

		prediction, err := svc.Predict(ctx, "TCS.NS", 30)
		require.NoError(t, err)

		require.Equal(t, "TCS.NS", prediction.Ticker)
		require.Equal(t, "up", prediction.Direction)
		require.Equal(t, 30, prediction.HorizonDays)
		require.Equal(t, 200, prediction.DataPoints)
		require.Greater(t, prediction.PredictedPrice, prediction.CurrentPrice)
		require.Greater(t, prediction.Accuracy, 0.9)
		require.LessOrEqual(t, prediction.Confidence, 0.9)
		require.GreaterOrEqual(t, prediction.Confidence, 0.0)
		require.NotNil(t, prediction.Validation)
	})

	t.Run("zero horizon falls back to the default", func(t *testing.T) {
		marketData := stubMarketDataService{bars: trendingBars(120, 100, 0.2)}
		svc := NewPredictionService(marketData, validator)

		prediction, err := svc.Predict(ctx, "TCS.NS", 0)
		require.NoError(t, err)
		require.Equal(t, DefaultPredictionHorizonDays, prediction.HorizonDays)
	})

	t.Run("too little history is a typed error", func(t *testing.T) {
		marketData := stubMarketDataService{bars: trendingBars(20, 100, 0.5)}
		svc := NewPredictionService(marketData, validator)

		_, err := svc.Predict(ctx, "TCS.NS", 30)
		require.ErrorIs(t, err, domain.ErrInsufficientHistory)
	})

	t.Run("market data failures propagate", func(t *testing.T) {
		marketData := stubMarketDataService{err: fmt.Errorf("quote service down")}
		svc := NewPredictionService(marketData, validator)

		_, err := svc.Predict(ctx, "TCS.NS", 30)
		require.Error(t, err)
		require.NotErrorIs(t, err, domain.ErrInsufficientHistory)
	})
}
