package fetch

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"esgrank/internal/domain"
)

// CompanyDataProvider is one named strategy for resolving company data.
// Providers return domain.ErrTickerNotCovered when they have nothing for
// a ticker, so callers can tell "not ours" from a transport failure.
type CompanyDataProvider interface {
	Name() string
	Fetch(ctx context.Context, ticker string) (*domain.CompanyData, error)
}

// Chain runs an explicit ordered list of providers and records every
// attempt, so which strategy served a ticker is observable instead of
// being inferred from which error got swallowed.
type Chain struct {
	providers []CompanyDataProvider
}

func NewChain(providers ...CompanyDataProvider) *Chain {
	return &Chain{providers: providers}
}

func (c *Chain) Fetch(ctx context.Context, ticker string) (*domain.FetchOutcome, error) {
	if len(c.providers) == 0 {
		return nil, fmt.Errorf("fetch chain has no providers")
	}

	attempts := []domain.StrategyAttempt{}
	for _, provider := range c.providers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		data, err := provider.Fetch(ctx, ticker)
		attempts = append(attempts, domain.StrategyAttempt{
			Strategy: provider.Name(),
			Err:      err,
		})
		if err != nil {
			continue
		}

		return &domain.FetchOutcome{
			Data:     data,
			Strategy: provider.Name(),
			Attempts: attempts,
		}, nil
	}

	return nil, &ExhaustedError{Ticker: ticker, Attempts: attempts}
}

// ExhaustedError means every strategy in the chain failed. It keeps the
// per-strategy errors so nothing is lost to the fallback.
type ExhaustedError struct {
	Ticker   string
	Attempts []domain.StrategyAttempt
}

func (e *ExhaustedError) Error() string {
	parts := make([]string, 0, len(e.Attempts))
	for _, attempt := range e.Attempts {
		parts = append(parts, fmt.Sprintf("%s: %v", attempt.Strategy, attempt.Err))
	}
	return fmt.Sprintf("all %d fetch strategies failed for %s [%s]", len(e.Attempts), e.Ticker, strings.Join(parts, "; "))
}

// NotCovered reports whether every attempt failed with the typed
// "not available" result rather than a real failure.
func (e *ExhaustedError) NotCovered() bool {
	for _, attempt := range e.Attempts {
		if !errors.Is(attempt.Err, domain.ErrTickerNotCovered) {
			return false
		}
	}
	return len(e.Attempts) > 0
}
