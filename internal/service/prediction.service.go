package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"esgrank/internal/calculator"
	"esgrank/internal/domain"
)

const (
	// minPredictionBars guards against fitting a trend on a handful of
	// observations.
	minPredictionBars = 50

	trainFraction = 0.8
	lookbackDays  = 365

	DefaultPredictionHorizonDays = 30
)

// PredictionService fits a linear trend on a year of daily bars and
// extrapolates it. This is a toy model and is labelled as such; the
// validator report attached to every prediction says how much to trust
// it.
type PredictionService interface {
	Predict(ctx context.Context, ticker string, horizonDays int) (*domain.PricePrediction, error)
}

func NewPredictionService(marketData MarketDataService, validator ValidatorService) PredictionService {
	return predictionServiceHandler{
		marketData: marketData,
		validator:  validator,
	}
}

type predictionServiceHandler struct {
	marketData MarketDataService
	validator  ValidatorService
}

func (h predictionServiceHandler) Predict(ctx context.Context, ticker string, horizonDays int) (*domain.PricePrediction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if horizonDays <= 0 {
		horizonDays = DefaultPredictionHorizonDays
	}

	now := time.Now().UTC()
	bars, err := h.marketData.DailyBars(ticker, now.AddDate(0, 0, -lookbackDays), now)
	if err != nil {
		return nil, fmt.Errorf("failed to load price history for %s: %w", ticker, err)
	}
	if len(bars) < minPredictionBars {
		return nil, fmt.Errorf("%w: %s has %d bars, need %d", domain.ErrInsufficientHistory, ticker, len(bars), minPredictionBars)
	}

	features := make([][]float64, len(bars))
	target := make([]float64, len(bars))
	start := bars[0].Date
	for i, bar := range bars {
		features[i] = []float64{
			bar.Date.Sub(start).Hours() / 24,
			float64(bar.Volume),
			calculator.HighLowRatio(bar),
		}
		target[i] = bar.Close.InexactFloat64()
	}

	// chronological split: fit on the older 80%, measure on the rest
	split := int(float64(len(bars)) * trainFraction)
	coefficients, err := calculator.FitOLS(features[:split], target[:split])
	if err != nil {
		return nil, fmt.Errorf("failed to fit price model for %s: %w", ticker, err)
	}

	holdoutPredictions := make([]float64, 0, len(bars)-split)
	for _, row := range features[split:] {
		predicted, err := calculator.PredictOLS(coefficients, row)
		if err != nil {
			return nil, err
		}
		holdoutPredictions = append(holdoutPredictions, predicted)
	}

	mae, err := calculator.MeanAbsoluteError(holdoutPredictions, target[split:])
	if err != nil {
		return nil, err
	}
	meanActual := 0.0
	for _, actual := range target[split:] {
		meanActual += actual
	}
	meanActual /= float64(len(target) - split)

	accuracy := 0.0
	if meanActual != 0 {
		accuracy = math.Max(0, 1-mae/meanActual)
	}

	volatility, err := calculator.Volatility(bars)
	if err != nil {
		return nil, err
	}

	lastBar := bars[len(bars)-1]
	forecastFeatures := []float64{
		lastBar.Date.Sub(start).Hours()/24 + float64(horizonDays),
		float64(lastBar.Volume),
		calculator.HighLowRatio(lastBar),
	}
	predictedPrice, err := calculator.PredictOLS(coefficients, forecastFeatures)
	if err != nil {
		return nil, err
	}

	currentPrice := lastBar.Close.InexactFloat64()
	changePercent := 0.0
	if currentPrice != 0 {
		changePercent = (predictedPrice - currentPrice) / currentPrice * 100
	}

	direction := "neutral"
	if changePercent > 0.5 {
		direction = "up"
	} else if changePercent < -0.5 {
		direction = "down"
	}

	prediction := domain.PricePrediction{
		Ticker:         ticker,
		Direction:      direction,
		CurrentPrice:   currentPrice,
		PredictedPrice: predictedPrice,
		ChangePercent:  changePercent,
		HorizonDays:    horizonDays,
		Accuracy:       accuracy,
		Confidence:     math.Min(0.9, math.Max(0, accuracy*(1-volatility*10))),
		Volatility:     volatility,
		DataPoints:     len(bars),
		Model:          "ols-linear-trend",
		GeneratedAt:    now,
	}

	validation := h.validator.ValidatePrediction(prediction)
	prediction.Validation = &validation

	return &prediction, nil
}
