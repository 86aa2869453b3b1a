package service

import (
	"fmt"
	"time"

	"esgrank/internal/domain"

	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
)

// MarketDataService serves daily OHLCV bars for a symbol.
type MarketDataService interface {
	DailyBars(symbol string, start, end time.Time) ([]domain.PriceBar, error)
}

func NewMarketDataService() MarketDataService {
	return marketDataServiceHandler{}
}

type marketDataServiceHandler struct{}

func (h marketDataServiceHandler) DailyBars(symbol string, start, end time.Time) ([]domain.PriceBar, error) {
	params := &chart.Params{
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Symbol:   symbol,
		Interval: datetime.OneDay,
	}
	iter := chart.Get(params)

	bars := []domain.PriceBar{}
	for iter.Next() {
		b := iter.Bar()
		bars = append(bars, domain.PriceBar{
			Date:   time.Unix(int64(b.Timestamp), 0).UTC(),
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: int64(b.Volume),
		})
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to get daily bars for %s: %w", symbol, err)
	}

	return bars, nil
}
