package app

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"esgrank/internal/domain"
	"esgrank/internal/logger"
	"esgrank/internal/repository"
	"esgrank/internal/service"
	"esgrank/internal/universe"
	"esgrank/pkg/fmp"

	"github.com/google/uuid"
)

// runningWorkers bounds concurrent per-ticker fetches. Both upstream
// APIs rate limit aggressively, so a small pool is deliberate.
const runningWorkers = 5

// defaultROIC stands in when neither provider has a usable
// profitability ratio.
const defaultROIC = 0.05

// CompanyFetcher is the fallback path for tickers the primary data
// provider has no coverage for. internal/fetch's Chain is the
// production implementation.
type CompanyFetcher interface {
	Fetch(ctx context.Context, ticker string) (*domain.FetchOutcome, error)
}

// EsgDataClient is the primary provider contract. pkg/fmp's client is
// the production implementation; nil means no API key is configured and
// every ticker goes straight to the fallback chain.
type EsgDataClient interface {
	GetEsgScores(ctx context.Context, symbol string) (*fmp.EsgScores, []byte, error)
	GetRatiosTTM(ctx context.Context, symbol string) (*fmp.RatiosTTM, []byte, error)
}

type IngestHandler struct {
	FmpClient            EsgDataClient
	Fetcher              CompanyFetcher
	EsgRecordRepository  repository.ESGRecordRepository
	RawArchiveRepository repository.RawArchiveRepository
	ValidatorService     service.ValidatorService
	Catalog              *universe.Catalog
}

// Ingest fetches and stores reference data for every requested ticker.
// Per-ticker failures are collected into the report instead of aborting
// the batch, so one bad symbol can't sink a refresh.
func (h IngestHandler) Ingest(ctx context.Context, tickers []string) (*domain.IngestReport, error) {
	normalized := normalizeTickers(tickers)
	if len(normalized) == 0 {
		return nil, fmt.Errorf("no tickers to ingest")
	}

	start := time.Now().UTC()

	inputCh := make(chan string, len(normalized))
	resultCh := make(chan domain.IngestResult, len(normalized))
	var wg sync.WaitGroup
	for _, ticker := range normalized {
		wg.Add(1)
		inputCh <- ticker
	}
	close(inputCh)

	for i := 0; i < runningWorkers; i++ {
		go func() {
			for {
				select {
				case <-ctx.Done():
					// drain the queue so wg.Wait can finish; the report
					// still accounts for every requested ticker
					for ticker := range inputCh {
						resultCh <- domain.IngestResult{Ticker: ticker, Err: ctx.Err().Error()}
						wg.Done()
					}
					return
				case ticker, ok := <-inputCh:
					if !ok {
						return
					}
					resultCh <- h.ingestOne(ctx, ticker)
					wg.Done()
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	report := &domain.IngestReport{
		RunID:     uuid.New().String(),
		Requested: len(normalized),
		StartedAt: start,
	}
	for result := range resultCh {
		if result.Err == "" {
			report.Succeeded++
		} else {
			report.Failed++
		}
		report.PerTicker = append(report.PerTicker, result)
	}
	report.DurationMs = time.Since(start).Milliseconds()

	return report, nil
}

func (h IngestHandler) ingestOne(ctx context.Context, ticker string) domain.IngestResult {
	log := logger.FromContext(ctx)

	record, strategy, err := h.resolve(ctx, ticker)
	if err != nil {
		log.Errorf("ingest failed for %s: %v", ticker, err)
		return domain.IngestResult{Ticker: ticker, Err: err.Error()}
	}

	if h.ValidatorService != nil {
		report := h.ValidatorService.ValidateRecord(*record, h.sectorOf(ticker))
		for _, warning := range report.Warnings {
			log.Warnf("data quality for %s: %s", ticker, warning)
		}
	}

	if err := h.EsgRecordRepository.Upsert(*record); err != nil {
		return domain.IngestResult{Ticker: ticker, Err: err.Error()}
	}

	return domain.IngestResult{
		Ticker:   ticker,
		Source:   record.DataSource,
		Strategy: strategy,
	}
}

// resolve tries the primary provider first and falls back to the
// strategy chain. The chain's terminal sector-default strategy means a
// configured chain never leaves a ticker unresolved.
func (h IngestHandler) resolve(ctx context.Context, ticker string) (*domain.ESGRecord, string, error) {
	if h.FmpClient != nil {
		record, err := h.fromFmp(ctx, ticker)
		if err == nil {
			return record, "fmp", nil
		}
		logger.FromContext(ctx).Warnf("primary provider failed for %s, falling back: %v", ticker, err)
	}

	outcome, err := h.Fetcher.Fetch(ctx, ticker)
	if err != nil {
		return nil, "", err
	}

	data := outcome.Data
	return &domain.ESGRecord{
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
	}, outcome.Strategy, nil
}

func (h IngestHandler) fromFmp(ctx context.Context, ticker string) (*domain.ESGRecord, error) {
	scores, rawScores, err := h.FmpClient.GetEsgScores(ctx, ticker)
	if err != nil {
		return nil, err
	}
	h.archive(ctx, ticker, "fmp-esg", rawScores)

	record := &domain.ESGRecord{
		Ticker:        ticker,
		Environmental: scores.EnvironmentalScore,
		Social:        scores.SocialScore,
		Governance:    scores.GovernanceScore,
		ESGScore:      scores.ESGScore,
		ROIC:          defaultROIC,
		LastUpdated:   time.Now().UTC(),
		DataSource:    "fmp",
		DataQuality:   domain.DataQuality_Verified,
	}

	// ratios are enrichment: a miss degrades ROIC to the default
	// rather than failing the ticker
	ratios, rawRatios, err := h.FmpClient.GetRatiosTTM(ctx, ticker)
	if err != nil {
		logger.FromContext(ctx).Warnf("no ratios for %s, using default roic: %v", ticker, err)
		return record, nil
	}
	h.archive(ctx, ticker, "fmp-ratios", rawRatios)

	if ratios.ReturnOnCapitalEmployedTTM != 0 {
		record.ROIC = ratios.ReturnOnCapitalEmployedTTM
	} else if ratios.NetProfitMarginTTM != 0 {
		record.ROIC = ratios.NetProfitMarginTTM / 100
	}
	record.MarketCap = ratios.MarketCapTTM

	return record, nil
}

func (h IngestHandler) archive(ctx context.Context, ticker, source string, body []byte) {
	if h.RawArchiveRepository == nil || len(body) == 0 {
		return
	}
	err := h.RawArchiveRepository.Archive(domain.RawPayload{
		Ticker: ticker,
		Source: source,
		Body:   body,
	})
	if err != nil {
		logger.FromContext(ctx).Warnf("failed to archive %s payload for %s: %v", source, ticker, err)
	}
}

func (h IngestHandler) sectorOf(ticker string) string {
	if h.Catalog == nil {
		return ""
	}
	return h.Catalog.SectorOf(ticker)
}

func normalizeTickers(tickers []string) []string {
	seen := map[string]bool{}
	normalized := []string{}
	for _, ticker := range tickers {
		ticker = strings.ToUpper(strings.TrimSpace(ticker))
		if ticker == "" || seen[ticker] {
			continue
		}
		seen[ticker] = true
		normalized = append(normalized, ticker)
	}
	return normalized
}
