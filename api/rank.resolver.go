package api

import (
	"fmt"
	"strings"

	"esgrank/internal"
	"esgrank/internal/domain"

	"github.com/gin-gonic/gin"
)

type RankRequest struct {
	Tickers []string  `json:"tickers"`
	Weights []float64 `json:"weights"`
}

type RankSummary struct {
	TotalHoldings         int     `json:"total_holdings"`
	PortfolioWeightedESG  float64 `json:"portfolio_weighted_esg"`
	PortfolioWeightedROIC float64 `json:"portfolio_weighted_roic"`
	TopESGTicker          string  `json:"top_esg_ticker"`
	BottomESGTicker       string  `json:"bottom_esg_ticker"`
}

type RankResponse struct {
	Data     []domain.RankedHolding `json:"data"`
	Summary  RankSummary            `json:"summary"`
	Warnings []string               `json:"warnings,omitempty"`
}

// toPortfolioLines pairs the parallel ticker/weight arrays of the wire
// format into lines, upper-casing tickers on the way.
func toPortfolioLines(requestBody RankRequest) ([]domain.PortfolioLine, error) {
	if len(requestBody.Tickers) == 0 {
		return nil, &domain.MissingFieldError{Field: "tickers"}
	}
	if len(requestBody.Tickers) != len(requestBody.Weights) {
		return nil, fmt.Errorf("got %d tickers but %d weights", len(requestBody.Tickers), len(requestBody.Weights))
	}

	lines := make([]domain.PortfolioLine, 0, len(requestBody.Tickers))
	for i, ticker := range requestBody.Tickers {
		lines = append(lines, domain.PortfolioLine{
			Ticker: strings.ToUpper(strings.TrimSpace(ticker)),
			Weight: requestBody.Weights[i],
		})
	}

	return lines, nil
}

func (h ApiHandler) rank(c *gin.Context) {
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

	result, err := h.RankHandler.Rank(c.Request.Context(), lines, internal.RankOptions{
		WeightSumTolerance: internal.DefaultWeightSumTolerance,
	})
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	summary := RankSummary{
		TotalHoldings:         len(result.Holdings),
		PortfolioWeightedESG:  result.Summary.ESGScore,
		PortfolioWeightedROIC: result.Summary.ROIC,
	}
	if len(result.Holdings) > 0 {
		summary.TopESGTicker = result.Holdings[0].Ticker
		summary.BottomESGTicker = result.Holdings[len(result.Holdings)-1].Ticker
	}

	c.JSON(200, RankResponse{
		Data:     result.Holdings,
		Summary:  summary,
		Warnings: unmatchedWarnings(result.UnmatchedTickers),
	})
}

func unmatchedWarnings(unmatched []string) []string {
	warnings := make([]string, 0, len(unmatched))
	for _, ticker := range unmatched {
		warnings = append(warnings, fmt.Sprintf("no reference data for %s, using zeros", ticker))
	}
	return warnings
}
