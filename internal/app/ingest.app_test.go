package app

import (
	"context"
	"fmt"
	"testing"
	"time"

	"esgrank/internal/domain"
	mock_repository "esgrank/internal/repository/mocks"
	"esgrank/pkg/fmp"

	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"
)

type stubFetcher struct {
	outcomes map[string]*domain.FetchOutcome
	err      error
}

func (s stubFetcher) Fetch(_ context.Context, ticker string) (*domain.FetchOutcome, error) {
	if s.err != nil {
		return nil, s.err
	}
	outcome, ok := s.outcomes[ticker]
	if !ok {
		return nil, fmt.Errorf("unexpected fetch for %s", ticker)
	}
	return outcome, nil
}

// blockingFetcher reports each fetch on started, then holds it open
// until the context is cancelled.
type blockingFetcher struct {
	started chan string
}

func (s blockingFetcher) Fetch(ctx context.Context, ticker string) (*domain.FetchOutcome, error) {
	s.started <- ticker
	<-ctx.Done()
	return nil, ctx.Err()
}

type stubFmpClient struct {
	scores map[string]*fmp.EsgScores
	ratios map[string]*fmp.RatiosTTM
}

func (s stubFmpClient) GetEsgScores(_ context.Context, symbol string) (*fmp.EsgScores, []byte, error) {
	scores, ok := s.scores[symbol]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", fmp.ErrNoData, symbol)
	}
	return scores, []byte(`[{"symbol":"` + symbol + `"}]`), nil
}

func (s stubFmpClient) GetRatiosTTM(_ context.Context, symbol string) (*fmp.RatiosTTM, []byte, error) {
	ratios, ok := s.ratios[symbol]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", fmp.ErrNoData, symbol)
	}
	return ratios, []byte(`[{}]`), nil
}

func chainOutcome(ticker string) *domain.FetchOutcome {
	return &domain.FetchOutcome{
		Data: &domain.CompanyData{
			Ticker:        ticker,
			Environmental: 55,
			Social:        60,
			Governance:    62,
			ESGScore:      59,
			ROIC:          0.05,
			MarketCap:     1e10,
			DataSource:    "sector_default",
			DataQuality:   domain.DataQuality_SectorDefault,
		},
		Strategy: "sector-default",
		Attempts: []domain.StrategyAttempt{{Strategy: "sector-default"}},
	}
}

func TestIngestHandler(t *testing.T) {
	ctx := context.Background()

	t.Run("primary provider serves, raw payloads archived", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		esgRepository := mock_repository.NewMockESGRecordRepository(ctrl)
		rawArchive := mock_repository.NewMockRawArchiveRepository(ctrl)

		var stored domain.ESGRecord
		esgRepository.EXPECT().Upsert(gomock.Any()).DoAndReturn(func(record domain.ESGRecord) error {
			stored = record
			return nil
		})
		rawArchive.EXPECT().Archive(gomock.Any()).Return(nil).Times(2)

		handler := IngestHandler{
			FmpClient: stubFmpClient{
				scores: map[string]*fmp.EsgScores{
					"RELIANCE.NS": {Symbol: "RELIANCE.NS", EnvironmentalScore: 61.2, SocialScore: 58.4, GovernanceScore: 70.1, ESGScore: 63.2},
				},
				ratios: map[string]*fmp.RatiosTTM{
					"RELIANCE.NS": {ReturnOnCapitalEmployedTTM: 0.093, MarketCapTTM: 2.1e11},
				},
			},
			Fetcher:              stubFetcher{},
			EsgRecordRepository:  esgRepository,
			RawArchiveRepository: rawArchive,
		}

		report, err := handler.Ingest(ctx, []string{"reliance.ns"})
		require.NoError(t, err)

		require.Equal(t, 1, report.Requested)
		require.Equal(t, 1, report.Succeeded)
		require.Zero(t, report.Failed)
		require.Equal(t, "fmp", report.PerTicker[0].Strategy)

		require.Equal(t, "RELIANCE.NS", stored.Ticker)
		require.Equal(t, 63.2, stored.ESGScore)
		require.Equal(t, 0.093, stored.ROIC)
		require.Equal(t, 2.1e11, stored.MarketCap)
		require.Equal(t, domain.DataQuality_Verified, stored.DataQuality)
	})

	t.Run("falls back to the chain when the provider has no coverage", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		esgRepository := mock_repository.NewMockESGRecordRepository(ctrl)

		var stored domain.ESGRecord
		esgRepository.EXPECT().Upsert(gomock.Any()).DoAndReturn(func(record domain.ESGRecord) error {
			stored = record
			return nil
		})

		handler := IngestHandler{
			FmpClient:           stubFmpClient{},
			Fetcher:             stubFetcher{outcomes: map[string]*domain.FetchOutcome{"OBSCURE.NS": chainOutcome("OBSCURE.NS")}},
			EsgRecordRepository: esgRepository,
		}

		report, err := handler.Ingest(ctx, []string{"OBSCURE.NS"})
		require.NoError(t, err)

		require.Equal(t, 1, report.Succeeded)
		require.Equal(t, "sector-default", report.PerTicker[0].Strategy)
		require.Equal(t, domain.DataQuality_SectorDefault, stored.DataQuality)
	})

	t.Run("per-ticker failures don't abort the batch", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		esgRepository := mock_repository.NewMockESGRecordRepository(ctrl)
		esgRepository.EXPECT().Upsert(gomock.Any()).Return(nil)

		handler := IngestHandler{
			Fetcher: stubFetcher{outcomes: map[string]*domain.FetchOutcome{
				"GOOD.NS": chainOutcome("GOOD.NS"),
			}},
			EsgRecordRepository: esgRepository,
		}

		report, err := handler.Ingest(ctx, []string{"GOOD.NS", "BAD.NS"})
		require.NoError(t, err)

		require.Equal(t, 2, report.Requested)
		require.Equal(t, 1, report.Succeeded)
		require.Equal(t, 1, report.Failed)

		byTicker := map[string]domain.IngestResult{}
		for _, result := range report.PerTicker {
			byTicker[result.Ticker] = result
		}
		require.Empty(t, byTicker["GOOD.NS"].Err)
		require.NotEmpty(t, byTicker["BAD.NS"].Err)
	})

	t.Run("tickers are upper-cased and de-duplicated", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		esgRepository := mock_repository.NewMockESGRecordRepository(ctrl)
		esgRepository.EXPECT().Upsert(gomock.Any()).Return(nil).Times(1)

		handler := IngestHandler{
			Fetcher:             stubFetcher{outcomes: map[string]*domain.FetchOutcome{"TCS.NS": chainOutcome("TCS.NS")}},
			EsgRecordRepository: esgRepository,
		}

		report, err := handler.Ingest(ctx, []string{" tcs.ns ", "TCS.NS", ""})
		require.NoError(t, err)
		require.Equal(t, 1, report.Requested)
	})

	t.Run("empty ticker list is an error", func(t *testing.T) {
		handler := IngestHandler{}
		_, err := handler.Ingest(ctx, []string{"", "  "})
		require.Error(t, err)
	})

	t.Run("cancellation mid-batch still returns a full report", func(t *testing.T) {
		cancelCtx, cancel := context.WithCancel(ctx)
		defer cancel()

		tickers := make([]string, 0, 2*runningWorkers)
		for i := 0; i < 2*runningWorkers; i++ {
			tickers = append(tickers, fmt.Sprintf("T%02d.NS", i))
		}

		started := make(chan string, len(tickers))
		handler := IngestHandler{
			Fetcher:             blockingFetcher{started: started},
			EsgRecordRepository: mock_repository.NewMockESGRecordRepository(gomock.NewController(t)),
		}

		type ingestReturn struct {
			report *domain.IngestReport
			err    error
		}
		done := make(chan ingestReturn, 1)
		go func() {
			report, err := handler.Ingest(cancelCtx, tickers)
			done <- ingestReturn{report, err}
		}()

		// cancel once every worker holds an in-flight fetch, leaving the
		// rest of the batch still queued
		for i := 0; i < runningWorkers; i++ {
			<-started
		}
		cancel()

		select {
		case result := <-done:
			require.NoError(t, result.err)
			require.Equal(t, len(tickers), result.report.Requested)
			require.Equal(t, len(tickers), result.report.Failed)
			require.Len(t, result.report.PerTicker, len(tickers))
			for _, perTicker := range result.report.PerTicker {
				require.Contains(t, perTicker.Err, context.Canceled.Error())
			}
		case <-time.After(5 * time.Second):
			t.Fatal("ingest did not return after cancellation")
		}
	})
}
