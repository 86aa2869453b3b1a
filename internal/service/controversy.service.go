package service

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"esgrank/internal/domain"
	"esgrank/pkg/edgar"
)

// MaxControversyFlags caps how many matched filings a lookup returns.
const MaxControversyFlags = 10

// controversyKeywords are scanned against filing titles and summaries.
// A filing only counts when a keyword AND the ticker symbol both match.
var controversyKeywords = []string{
	"esg",
	"cyber",
	"climate",
	"lawsuit",
	"litigation",
	"investigation",
	"violation",
	"penalty",
	"fine",
	"environmental",
	"social",
	"governance",
}

// FilingsSource abstracts the regulatory feed so the scan is testable
// without the network. pkg/edgar's client is the production source.
type FilingsSource interface {
	RecentFilings(ctx context.Context) ([]edgar.Filing, error)
}

// ControversyService scans recent regulatory filings for qualitative
// risk signals tied to a ticker. This is a rolling window over current
// filings, not a historical search, and it performs a network fetch.
type ControversyService interface {
	FlagControversies(ctx context.Context, ticker string) ([]domain.ControversyFlag, error)
}

func NewControversyService(source FilingsSource) ControversyService {
	return controversyServiceHandler{source: source}
}

type controversyServiceHandler struct {
	source FilingsSource
}

func (h controversyServiceHandler) FlagControversies(ctx context.Context, ticker string) ([]domain.ControversyFlag, error) {
	filings, err := h.source.RecentFilings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to scan filings for %s: %w", ticker, err)
	}

	symbolPattern, err := tickerPattern(ticker)
	if err != nil {
		return nil, err
	}

	flags := []domain.ControversyFlag{}
	for _, filing := range filings {
		text := strings.ToLower(filing.Title + " " + filing.Summary)
		if !symbolPattern.MatchString(text) {
			continue
		}

		matched := []string{}
		for _, keyword := range controversyKeywords {
			if strings.Contains(text, keyword) {
				matched = append(matched, keyword)
			}
		}
		if len(matched) == 0 {
			continue
		}

		flags = append(flags, domain.ControversyFlag{
			Date:  filing.Date,
			Title: fmt.Sprintf("%s [Keywords: %s]", filing.Title, strings.Join(matched, ", ")),
			Link:  filing.Link,
		})
	}

	// most recent first; dates are ISO-8601 so they sort lexically
	sort.SliceStable(flags, func(i, j int) bool {
		return flags[i].Date > flags[j].Date
	})

	if len(flags) > MaxControversyFlags {
		flags = flags[:MaxControversyFlags]
	}

	return flags, nil
}

// tickerPattern matches the bare company symbol on word boundaries, so
// "INFY" doesn't light up on "INFYNITE HOLDINGS".
func tickerPattern(ticker string) (*regexp.Regexp, error) {
	symbol := strings.ToLower(strings.TrimSpace(ticker))
	symbol = strings.TrimSuffix(symbol, ".ns")
	symbol = strings.TrimSuffix(symbol, ".bo")
	if symbol == "" {
		return nil, fmt.Errorf("cannot scan filings for empty ticker")
	}

	pattern, err := regexp.Compile(`\b` + regexp.QuoteMeta(symbol) + `\b`)
	if err != nil {
		return nil, fmt.Errorf("failed to build ticker pattern for %s: %w", ticker, err)
	}

	return pattern, nil
}
