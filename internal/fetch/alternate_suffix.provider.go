package fetch

import (
	"context"
	"fmt"
	"strings"

	"esgrank/internal/domain"
)

// AlternateSuffixProvider retries an NSE symbol on the Bombay exchange
// and then with no exchange suffix at all. Some listings only resolve
// under one of the two exchanges.
type AlternateSuffixProvider struct {
	Delegate CompanyDataProvider
}

func (p AlternateSuffixProvider) Name() string {
	return "alternate-suffix"
}

func (p AlternateSuffixProvider) Fetch(ctx context.Context, ticker string) (*domain.CompanyData, error) {
	base, hadSuffix := strings.CutSuffix(ticker, ".NS")
	if !hadSuffix {
		return nil, fmt.Errorf("%w: %s has no alternate symbols", domain.ErrTickerNotCovered, ticker)
	}

	var lastErr error
	for _, alternate := range []string{base + ".BO", base} {
		data, err := p.Delegate.Fetch(ctx, alternate)
		if err != nil {
			lastErr = err
			continue
		}

		data.Ticker = ticker
		data.DataSource = fmt.Sprintf("%s (as %s)", data.DataSource, alternate)
		data.DataQuality = domain.DataQuality_AlternateSymbol
		return data, nil
	}

	return nil, fmt.Errorf("failed to fetch %s under alternate symbols: %w", ticker, lastErr)
}
