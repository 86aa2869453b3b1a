package calculator

import (
	"fmt"

	"esgrank/internal/domain"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/mat"
)

// DailyReturns converts a bar series into simple close-to-close returns.
// The result has one fewer element than the input.
func DailyReturns(bars []domain.PriceBar) []float64 {
	if len(bars) < 2 {
		return nil
	}

	returns := make([]float64, 0, len(bars)-1)
	for i := 1; i < len(bars); i++ {
		previous := bars[i-1].Close.InexactFloat64()
		if previous == 0 {
			returns = append(returns, 0)
			continue
		}
		returns = append(returns, bars[i].Close.InexactFloat64()/previous-1)
	}

	return returns
}

// Volatility is the sample standard deviation of daily returns.
func Volatility(bars []domain.PriceBar) (float64, error) {
	returns := DailyReturns(bars)
	if len(returns) < 2 {
		return 0, fmt.Errorf("cannot calculate volatility on < 3 bars")
	}

	stdev, err := stats.StandardDeviationSample(returns)
	if err != nil {
		return 0, fmt.Errorf("failed to calculate volatility: %w", err)
	}

	return stdev, nil
}

// VolumeRatio compares the last bar's volume to the average volume over
// the whole series. A spike above ~2x is unusual.
func VolumeRatio(bars []domain.PriceBar) (float64, error) {
	if len(bars) == 0 {
		return 0, fmt.Errorf("cannot calculate volume ratio on empty bars")
	}

	total := 0.0
	for _, bar := range bars {
		total += float64(bar.Volume)
	}
	average := total / float64(len(bars))
	if average == 0 {
		return 0, nil
	}

	return float64(bars[len(bars)-1].Volume) / average, nil
}

// LargeMoveCount counts days whose absolute return exceeds the threshold.
func LargeMoveCount(bars []domain.PriceBar, threshold float64) int {
	count := 0
	for _, r := range DailyReturns(bars) {
		if r > threshold || r < -threshold {
			count++
		}
	}
	return count
}

// HighLowRatio is the bar's intraday range expressed as high over low.
// Degenerate bars report 1.
func HighLowRatio(bar domain.PriceBar) float64 {
	low := bar.Low.InexactFloat64()
	if low == 0 {
		return 1
	}
	return bar.High.InexactFloat64() / low
}

// FitOLS solves an ordinary least squares regression of target on the
// feature rows, with an intercept prepended. The returned coefficients
// are [intercept, beta_1, ..., beta_k].
func FitOLS(features [][]float64, target []float64) ([]float64, error) {
	if len(features) == 0 || len(features) != len(target) {
		return nil, fmt.Errorf("feature rows (%d) must match targets (%d) and be non-empty", len(features), len(target))
	}

	numFeatures := len(features[0])
	if len(features) <= numFeatures {
		return nil, fmt.Errorf("need more observations (%d) than features (%d)", len(features), numFeatures)
	}

	design := mat.NewDense(len(features), numFeatures+1, nil)
	for i, row := range features {
		if len(row) != numFeatures {
			return nil, fmt.Errorf("feature row %d has %d values, expected %d", i, len(row), numFeatures)
		}
		design.Set(i, 0, 1)
		for j, value := range row {
			design.Set(i, j+1, value)
		}
	}

	response := mat.NewVecDense(len(target), target)

	var qr mat.QR
	qr.Factorize(design)

	var solution mat.Dense
	if err := qr.SolveTo(&solution, false, response); err != nil {
		return nil, fmt.Errorf("failed to solve least squares: %w", err)
	}

	coefficients := make([]float64, numFeatures+1)
	for i := range coefficients {
		coefficients[i] = solution.At(i, 0)
	}

	return coefficients, nil
}

// PredictOLS evaluates a fitted model at one feature row.
func PredictOLS(coefficients []float64, features []float64) (float64, error) {
	if len(features) != len(coefficients)-1 {
		return 0, fmt.Errorf("got %d features for a model with %d coefficients", len(features), len(coefficients))
	}

	prediction := coefficients[0]
	for i, value := range features {
		prediction += coefficients[i+1] * value
	}

	return prediction, nil
}

// MeanAbsoluteError averages |predicted - actual| across the holdout.
func MeanAbsoluteError(predicted, actual []float64) (float64, error) {
	if len(predicted) == 0 || len(predicted) != len(actual) {
		return 0, fmt.Errorf("predicted (%d) and actual (%d) must be non-empty and equal length", len(predicted), len(actual))
	}

	total := 0.0
	for i := range predicted {
		diff := predicted[i] - actual[i]
		if diff < 0 {
			diff = -diff
		}
		total += diff
	}

	return total / float64(len(predicted)), nil
}
