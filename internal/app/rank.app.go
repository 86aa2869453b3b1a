package app

import (
	"context"
	"fmt"

	"esgrank/internal"
	"esgrank/internal/domain"
	"esgrank/internal/logger"
	"esgrank/internal/repository"
)

type RankHandler struct {
	EsgRecordRepository repository.ESGRecordRepository
}

// Rank reads the reference universe fresh from the store and ranks the
// requested portfolio against it. No caching between calls: ingestion
// landing between two requests is visible to the second one.
func (h RankHandler) Rank(ctx context.Context, lines []domain.PortfolioLine, opts internal.RankOptions) (*internal.RankResult, error) {
	universe, err := h.EsgRecordRepository.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load reference universe: %w", err)
	}

	result, err := internal.RankPortfolio(lines, universe, opts)
	if err != nil {
		return nil, err
	}

	if len(result.UnmatchedTickers) > 0 {
		logger.FromContext(ctx).Warnf("no reference data for %v, holdings zero-filled", result.UnmatchedTickers)
	}

	return result, nil
}
