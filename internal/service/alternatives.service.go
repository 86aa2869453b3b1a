package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"esgrank/internal/domain"
	"esgrank/internal/logger"
	"esgrank/internal/repository"
	"esgrank/internal/universe"
	"esgrank/internal/util"
)

const DefaultAlternativesCount = 3

// AlternativesService suggests same-sector companies with better ESG
// profiles than the subject.
type AlternativesService interface {
	Alternatives(ctx context.Context, ticker string, count int) ([]domain.AlternativeSuggestion, error)
}

func NewAlternativesService(catalog *universe.Catalog, esgRepository repository.ESGRecordRepository) AlternativesService {
	return alternativesServiceHandler{
		catalog:       catalog,
		esgRepository: esgRepository,
	}
}

type alternativesServiceHandler struct {
	catalog       *universe.Catalog
	esgRepository repository.ESGRecordRepository
}

func (h alternativesServiceHandler) Alternatives(ctx context.Context, ticker string, count int) ([]domain.AlternativeSuggestion, error) {
	if count <= 0 {
		count = DefaultAlternativesCount
	}

	sector := h.catalog.SectorOf(ticker)
	if sector == "" {
		return nil, fmt.Errorf("cannot suggest alternatives for %s: unknown sector", ticker)
	}

	subjectScore := 0.0
	if record, err := h.esgRepository.Get(ticker); err == nil {
		subjectScore = record.ESGScore
	} else if !errors.Is(err, domain.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to load subject record for %s: %w", ticker, err)
	}

	suggestions := []domain.AlternativeSuggestion{}
	for _, peer := range h.catalog.SectorPeers(sector, ticker) {
		record, err := h.esgRepository.Get(peer.Symbol)
		if err != nil {
			if !errors.Is(err, domain.ErrRecordNotFound) {
				logger.FromContext(ctx).Warnf("skipping alternative %s: %v", peer.Symbol, err)
			}
			continue
		}

		suggestions = append(suggestions, domain.AlternativeSuggestion{
			Ticker:             peer.Symbol,
			Name:               peer.Name,
			Sector:             sector,
			MarketCapFormatted: util.FormatMarketCapINR(record.MarketCap),
			ESGScore:           record.ESGScore,
			ROIC:               record.ROIC,
			ESGDelta:           record.ESGScore - subjectScore,
			DataSource:         record.DataSource,
			Reason:             reasonFor(record.ESGScore, subjectScore, sector),
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].ESGScore > suggestions[j].ESGScore
	})

	if len(suggestions) > count {
		suggestions = suggestions[:count]
	}

	return suggestions, nil
}

func reasonFor(peerScore, subjectScore float64, sector string) string {
	if peerScore > subjectScore {
		return fmt.Sprintf("stronger composite ESG score within the %s sector", sector)
	}
	return fmt.Sprintf("comparable %s sector exposure", sector)
}
