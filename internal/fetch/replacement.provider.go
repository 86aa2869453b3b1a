package fetch

import (
	"context"
	"fmt"

	"esgrank/internal/domain"
)

// delistedReplacements maps tickers that no longer trade to the listed
// company whose data stands in for them.
var delistedReplacements = map[string]string{
	"DHFL.NS":       "HDFCBANK.NS",
	"YES.NS":        "YESBANK.NS",
	"IL&FS.NS":      "HDFCBANK.NS",
	"JETAIRWAYS.NS": "INDIGO.NS",
}

// ReplacementProvider serves delisted tickers by fetching their known
// successor through the delegate and echoing the requested ticker back.
type ReplacementProvider struct {
	Delegate CompanyDataProvider
}

func (p ReplacementProvider) Name() string {
	return "replacement"
}

func (p ReplacementProvider) Fetch(ctx context.Context, ticker string) (*domain.CompanyData, error) {
	successor, ok := delistedReplacements[ticker]
	if !ok {
		return nil, fmt.Errorf("%w: %s has no known replacement", domain.ErrTickerNotCovered, ticker)
	}

	data, err := p.Delegate.Fetch(ctx, successor)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch replacement %s for %s: %w", successor, ticker, err)
	}

	data.Ticker = ticker
	data.DataSource = fmt.Sprintf("%s (via %s)", data.DataSource, successor)
	data.DataQuality = domain.DataQuality_Replacement
	return data, nil
}
