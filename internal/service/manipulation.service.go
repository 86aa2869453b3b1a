package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"esgrank/internal/calculator"
	"esgrank/internal/domain"
	"esgrank/internal/logger"
)

// ManipulationThresholds are the trigger points for the heuristic risk
// signals. Zero values fall back to the defaults below.
type ManipulationThresholds struct {
	VolumeSpikeRatio float64
	LargeMoveReturn  float64
	MaxLargeMoves    int
}

const (
	defaultVolumeSpikeRatio = 2.0
	defaultLargeMoveReturn  = 0.05
	defaultMaxLargeMoves    = 5

	manipulationLookbackDays = 30
	maxControversySignals    = 2

	volumeSpikePoints = 30
	lastDayMovePoints = 25
	choppinessPoints  = 20
	controversyPoints = 15
	maxRiskScore      = 100
)

// ManipulationService scores heuristic manipulation risk from recent
// trading behavior plus regulatory controversy flags. It is a screening
// signal, not an accusation.
type ManipulationService interface {
	Assess(ctx context.Context, ticker string) (*domain.ManipulationAssessment, error)
}

func NewManipulationService(marketData MarketDataService, controversy ControversyService, thresholds ManipulationThresholds) ManipulationService {
	if thresholds.VolumeSpikeRatio == 0 {
		thresholds.VolumeSpikeRatio = defaultVolumeSpikeRatio
	}
	if thresholds.LargeMoveReturn == 0 {
		thresholds.LargeMoveReturn = defaultLargeMoveReturn
	}
	if thresholds.MaxLargeMoves == 0 {
		thresholds.MaxLargeMoves = defaultMaxLargeMoves
	}

	return manipulationServiceHandler{
		marketData:  marketData,
		controversy: controversy,
		thresholds:  thresholds,
	}
}

type manipulationServiceHandler struct {
	marketData  MarketDataService
	controversy ControversyService
	thresholds  ManipulationThresholds
}

func (h manipulationServiceHandler) Assess(ctx context.Context, ticker string) (*domain.ManipulationAssessment, error) {
	now := time.Now().UTC()
	bars, err := h.marketData.DailyBars(ticker, now.AddDate(0, 0, -manipulationLookbackDays), now)
	if err != nil {
		return nil, fmt.Errorf("failed to load price history for %s: %w", ticker, err)
	}
	if len(bars) < 3 {
		return nil, fmt.Errorf("%w: %s has %d bars in the last %d days", domain.ErrInsufficientHistory, ticker, len(bars), manipulationLookbackDays)
	}

	signals := []domain.ManipulationSignal{}

	volumeRatio, err := calculator.VolumeRatio(bars)
	if err != nil {
		return nil, err
	}
	if volumeRatio > h.thresholds.VolumeSpikeRatio {
		signals = append(signals, domain.ManipulationSignal{
			Name:      "volume_spike",
			Observed:  volumeRatio,
			Threshold: h.thresholds.VolumeSpikeRatio,
			Points:    volumeSpikePoints,
		})
	}

	returns := calculator.DailyReturns(bars)
	lastReturn := returns[len(returns)-1]
	if math.Abs(lastReturn) > h.thresholds.LargeMoveReturn {
		signals = append(signals, domain.ManipulationSignal{
			Name:      "large_last_day_move",
			Observed:  lastReturn,
			Threshold: h.thresholds.LargeMoveReturn,
			Points:    lastDayMovePoints,
		})
	}

	largeMoves := calculator.LargeMoveCount(bars, h.thresholds.LargeMoveReturn)
	if largeMoves > h.thresholds.MaxLargeMoves {
		signals = append(signals, domain.ManipulationSignal{
			Name:      "frequent_large_moves",
			Observed:  float64(largeMoves),
			Threshold: float64(h.thresholds.MaxLargeMoves),
			Points:    choppinessPoints,
		})
	}

	// controversy flags sweeten the score but a feed outage shouldn't
	// sink the whole assessment
	flags, err := h.controversy.FlagControversies(ctx, ticker)
	if err != nil {
		logger.FromContext(ctx).Warnf("skipping controversy signals for %s: %v", ticker, err)
	} else {
		counted := len(flags)
		if counted > maxControversySignals {
			counted = maxControversySignals
		}
		for i := 0; i < counted; i++ {
			signals = append(signals, domain.ManipulationSignal{
				Name:      "controversy_flag",
				Observed:  float64(len(flags)),
				Threshold: 1,
				Points:    controversyPoints,
			})
		}
	}

	score := 0
	for _, signal := range signals {
		score += signal.Points
	}
	if score > maxRiskScore {
		score = maxRiskScore
	}

	return &domain.ManipulationAssessment{
		Ticker:     ticker,
		Score:      score,
		Level:      riskLevelForScore(score),
		Signals:    signals,
		AnalyzedAt: now,
	}, nil
}

func riskLevelForScore(score int) domain.RiskLevel {
	switch {
	case score >= 70:
		return domain.RiskLevel_High
	case score >= 40:
		return domain.RiskLevel_Medium
	case score >= 20:
		return domain.RiskLevel_Low
	default:
		return domain.RiskLevel_Minimal
	}
}
