package api

import (
	"errors"
	"fmt"

	"esgrank/internal"
	"esgrank/internal/domain"
	"esgrank/internal/logger"

	"github.com/gin-gonic/gin"
)

type rankEnhancedSummary struct {
	PortfolioESGScore  float64 `json:"portfolio_esg_score"`
	PortfolioROIC      float64 `json:"portfolio_roic"`
	TotalHoldings      int     `json:"total_holdings"`
	TopESGPerformer    string  `json:"top_esg_performer"`
	BottomESGPerformer string  `json:"bottom_esg_performer"`
	AvgESGZScore       float64 `json:"avg_esg_zscore"`
	AvgROICZScore      float64 `json:"avg_roic_zscore"`
}

type rankEnhancedResponse struct {
	Data     []domain.RankedHolding `json:"data"`
	Summary  rankEnhancedSummary    `json:"summary"`
	Warnings []string               `json:"warnings,omitempty"`
}

// rankEnhanced is the historical relaxed path: it accepts weights
// summing anywhere near 1, and ingests tickers missing from the store
// before ranking so a fresh deployment still answers.
func (h ApiHandler) rankEnhanced(c *gin.Context) {
	var requestBody RankRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(fmt.Errorf("failed to read request body: %w", err), c, 400)
		return
	}

	lines, err := toPortfolioLines(requestBody)
	if err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}

	ctx := c.Request.Context()

	missing := []string{}
	for _, line := range lines {
		if _, err := h.EsgRecordRepository.Get(line.Ticker); errors.Is(err, domain.ErrRecordNotFound) {
			missing = append(missing, line.Ticker)
		}
	}
	if len(missing) > 0 {
		// best effort: ranking degrades to zeros for anything ingestion
		// couldn't resolve
		if _, err := h.IngestHandler.Ingest(ctx, missing); err != nil {
			logger.FromContext(ctx).Warnf("auto-ingest before ranking failed: %v", err)
		}
	}

	result, err := h.RankHandler.Rank(ctx, lines, internal.RankOptions{
		WeightSumTolerance: internal.RelaxedWeightSumTolerance,
	})
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	summary := rankEnhancedSummary{
		PortfolioESGScore: result.Summary.ESGScore,
		PortfolioROIC:     result.Summary.ROIC,
		TotalHoldings:     len(result.Holdings),
	}
	if len(result.Holdings) > 0 {
		summary.TopESGPerformer = result.Holdings[0].Ticker
		summary.BottomESGPerformer = result.Holdings[len(result.Holdings)-1].Ticker

		for _, holding := range result.Holdings {
			summary.AvgESGZScore += holding.ESGZScore
			summary.AvgROICZScore += holding.ROICZScore
		}
		summary.AvgESGZScore /= float64(len(result.Holdings))
		summary.AvgROICZScore /= float64(len(result.Holdings))
	}

	c.JSON(200, rankEnhancedResponse{
		Data:     result.Holdings,
		Summary:  summary,
		Warnings: unmatchedWarnings(result.UnmatchedTickers),
	})
}
