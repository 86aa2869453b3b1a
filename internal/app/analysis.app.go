package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"esgrank/internal"
	"esgrank/internal/domain"
	"esgrank/internal/logger"
	"esgrank/internal/repository"
	"esgrank/internal/service"
	"esgrank/internal/universe"
	"esgrank/internal/util"
)

type AnalysisHandler struct {
	EsgRecordRepository repository.ESGRecordRepository
	Fetcher             CompanyFetcher
	ControversyService  service.ControversyService
	ValidatorService    service.ValidatorService
	// AiSummaryRepository is nil when no API key is configured; the
	// summary is simply omitted.
	AiSummaryRepository repository.AiSummaryRepository
	Catalog             *universe.Catalog
}

// Analyze assembles the full per-company view: the stored record
// (fetched on demand when absent), its standing versus the reference
// universe, recent controversy flags, a data-quality verdict and an
// optional AI-written summary.
func (h AnalysisHandler) Analyze(ctx context.Context, ticker string) (*domain.CompanyAnalysis, error) {
	log := logger.FromContext(ctx)

	endSpan := startSpan(ctx, "load record")
	record, err := h.EsgRecordRepository.Get(ticker)
	if errors.Is(err, domain.ErrRecordNotFound) {
		record, err = h.fetchAndStore(ctx, ticker)
	}
	endSpan()
	if err != nil {
		return nil, err
	}

	sector := ""
	name := ""
	if h.Catalog != nil {
		sector = h.Catalog.SectorOf(ticker)
		if entry, ok := h.Catalog.Get(ticker); ok {
			name = entry.Name
		}
	}

	analysis := &domain.CompanyAnalysis{
		Ticker:             ticker,
		Name:               name,
		Sector:             sector,
		Record:             *record,
		MarketCapFormatted: util.FormatMarketCapINR(record.MarketCap),
		Controversies:      []domain.ControversyFlag{},
		GeneratedAt:        time.Now().UTC(),
	}

	// ranking the ticker as a single-line portfolio gives its z-scores
	// against the same universe the dashboard ranks with
	endSpan = startSpan(ctx, "z-scores")
	esgZScore, roicZScore, err := h.zScores(ctx, ticker)
	endSpan()
	if err != nil {
		log.Warnf("skipping z-scores for %s: %v", ticker, err)
	} else {
		analysis.ESGZScore = esgZScore
		analysis.ROICZScore = roicZScore
	}

	endSpan = startSpan(ctx, "controversy scan")
	flags, err := h.ControversyService.FlagControversies(ctx, ticker)
	endSpan()
	if err != nil {
		log.Warnf("skipping controversy flags for %s: %v", ticker, err)
	} else {
		analysis.Controversies = flags
	}

	if h.ValidatorService != nil {
		report := h.ValidatorService.ValidateRecord(*record, sector)
		analysis.Validation = &report
	}

	if h.AiSummaryRepository != nil {
		endSpan = startSpan(ctx, "ai summary")
		summary, err := h.AiSummaryRepository.GetCompanySummary(summaryPrompt(analysis))
		endSpan()
		if err != nil {
			log.Warnf("skipping ai summary for %s: %v", ticker, err)
		} else {
			analysis.AISummary = summary
		}
	}

	return analysis, nil
}

// startSpan opens a timing span on the request profile when one is
// attached to ctx. The returned func ends the span; without a profile it
// is a no-op.
func startSpan(ctx context.Context, name string) func() {
	profile, ok := domain.GetProfile(ctx)
	if !ok {
		return func() {}
	}
	_, endSpan := profile.StartNewSpan(name)
	return endSpan
}

func (h AnalysisHandler) fetchAndStore(ctx context.Context, ticker string) (*domain.ESGRecord, error) {
	outcome, err := h.Fetcher.Fetch(ctx, ticker)
	if err != nil {
		return nil, fmt.Errorf("no stored record and fetch failed for %s: %w", ticker, err)
	}

	data := outcome.Data
	record := domain.ESGRecord{
		Ticker:        ticker,
		Environmental: data.Environmental,
		Social:        data.Social,
		Governance:    data.Governance,
		ESGScore:      data.ESGScore,
		ROIC:          data.ROIC,
		MarketCap:     data.MarketCap,
		LastUpdated:   time.Now().UTC(),
		DataSource:    data.DataSource,
		DataQuality:   data.DataQuality,
	}

	if err := h.EsgRecordRepository.Upsert(record); err != nil {
		logger.FromContext(ctx).Warnf("failed to store fetched record for %s: %v", ticker, err)
	}

	return &record, nil
}

func (h AnalysisHandler) zScores(ctx context.Context, ticker string) (float64, float64, error) {
	result, err := RankHandler{EsgRecordRepository: h.EsgRecordRepository}.Rank(
		ctx,
		[]domain.PortfolioLine{{Ticker: ticker, Weight: 1.0}},
		internal.RankOptions{},
	)
	if err != nil {
		return 0, 0, err
	}

	holding := result.Holdings[0]
	return holding.ESGZScore, holding.ROICZScore, nil
}

func summaryPrompt(analysis *domain.CompanyAnalysis) string {
	subject := analysis.Ticker
	if analysis.Name != "" {
		subject = fmt.Sprintf("%s (%s)", analysis.Name, analysis.Ticker)
	}

	return fmt.Sprintf(
		"Summarize the ESG investment profile of %s, an Indian listed company in the %s sector. "+
			"Composite ESG score: %.1f (E %.1f / S %.1f / G %.1f), ESG z-score vs universe: %.2f, ROIC: %.1f%%, market cap: %s. "+
			"Recent controversy flags: %d. Keep it under 150 words.",
		subject,
		analysis.Sector,
		analysis.Record.ESGScore,
		analysis.Record.Environmental,
		analysis.Record.Social,
		analysis.Record.Governance,
		analysis.ESGZScore,
		analysis.Record.ROIC*100,
		analysis.MarketCapFormatted,
		len(analysis.Controversies),
	)
}
