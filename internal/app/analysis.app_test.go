package app

import (
	"context"
	"fmt"
	"testing"
	"time"

	"esgrank/internal/domain"
	mock_repository "esgrank/internal/repository/mocks"
	"esgrank/internal/service"
	"esgrank/internal/universe"

	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"
)

type stubControversyService struct {
	flags []domain.ControversyFlag
	err   error
}

func (s stubControversyService) FlagControversies(_ context.Context, _ string) ([]domain.ControversyFlag, error) {
	return s.flags, s.err
}

func TestAnalysisHandler(t *testing.T) {
	ctx := context.Background()
	catalog, err := universe.NewCatalog()
	require.NoError(t, err)

	storedRecord := domain.ESGRecord{
		Ticker:        "TCS.NS",
		Environmental: 72.3,
		Social:        68.1,
		Governance:    74.6,
		ESGScore:      71.7,
		ROIC:          0.41,
		MarketCap:     1.2e11,
		LastUpdated:   time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		DataSource:    "fmp",
		DataQuality:   domain.DataQuality_Verified,
	}
	restOfUniverse := []domain.ESGRecord{
		storedRecord,
		{Ticker: "INFY.NS", ESGScore: 70.1, ROIC: 0.33},
		{Ticker: "RELIANCE.NS", ESGScore: 63.9, ROIC: 0.09},
	}

	t.Run("assembles the stored record with z-scores, flags and validation", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		esgRepository := mock_repository.NewMockESGRecordRepository(ctrl)
		esgRepository.EXPECT().Get("TCS.NS").Return(&storedRecord, nil)
		esgRepository.EXPECT().GetAll().Return(restOfUniverse, nil)

		aiSummary := mock_repository.NewMockAiSummaryRepository(ctrl)
		aiSummary.EXPECT().GetCompanySummary(gomock.Any()).Return("Strong ESG profile.", nil)

		handler := AnalysisHandler{
			EsgRecordRepository: esgRepository,
			ControversyService:  stubControversyService{flags: []domain.ControversyFlag{{Date: "2024-06-20", Title: "x", Link: "y"}}},
			ValidatorService:    service.NewValidatorService(),
			AiSummaryRepository: aiSummary,
			Catalog:             catalog,
		}

		analysis, err := handler.Analyze(ctx, "TCS.NS")
		require.NoError(t, err)

		require.Equal(t, "Tata Consultancy Services", analysis.Name)
		require.Equal(t, "IT", analysis.Sector)
		require.Equal(t, storedRecord, analysis.Record)
		require.Equal(t, "₹120.00B", analysis.MarketCapFormatted)
		require.Greater(t, analysis.ESGZScore, 0.0)
		require.Len(t, analysis.Controversies, 1)
		require.NotNil(t, analysis.Validation)
		require.True(t, analysis.Validation.Valid)
		require.Equal(t, "Strong ESG profile.", analysis.AISummary)
	})

	t.Run("missing record is fetched on demand and stored", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		esgRepository := mock_repository.NewMockESGRecordRepository(ctrl)
		esgRepository.EXPECT().Get("OBSCURE.NS").Return(nil, domain.ErrRecordNotFound)
		esgRepository.EXPECT().Upsert(gomock.Any()).Return(nil)
		esgRepository.EXPECT().GetAll().Return(restOfUniverse, nil)

		handler := AnalysisHandler{
			EsgRecordRepository: esgRepository,
			Fetcher:             stubFetcher{outcomes: map[string]*domain.FetchOutcome{"OBSCURE.NS": chainOutcome("OBSCURE.NS")}},
			ControversyService:  stubControversyService{},
			Catalog:             catalog,
		}

		analysis, err := handler.Analyze(ctx, "OBSCURE.NS")
		require.NoError(t, err)

		require.Equal(t, 59.0, analysis.Record.ESGScore)
		require.Equal(t, domain.DataQuality_SectorDefault, analysis.Record.DataQuality)
		require.Empty(t, analysis.AISummary)
	})

	t.Run("fetch failure for an unknown ticker surfaces", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		esgRepository := mock_repository.NewMockESGRecordRepository(ctrl)
		esgRepository.EXPECT().Get("BAD.NS").Return(nil, domain.ErrRecordNotFound)

		handler := AnalysisHandler{
			EsgRecordRepository: esgRepository,
			Fetcher:             stubFetcher{err: fmt.Errorf("all strategies failed")},
			ControversyService:  stubControversyService{},
			Catalog:             catalog,
		}

		_, err := handler.Analyze(ctx, "BAD.NS")
		require.Error(t, err)
	})

	t.Run("controversy outage degrades to an empty list", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		esgRepository := mock_repository.NewMockESGRecordRepository(ctrl)
		esgRepository.EXPECT().Get("TCS.NS").Return(&storedRecord, nil)
		esgRepository.EXPECT().GetAll().Return(restOfUniverse, nil)

		handler := AnalysisHandler{
			EsgRecordRepository: esgRepository,
			ControversyService:  stubControversyService{err: fmt.Errorf("feed down")},
			Catalog:             catalog,
		}

		analysis, err := handler.Analyze(ctx, "TCS.NS")
		require.NoError(t, err)
		require.Empty(t, analysis.Controversies)
	})
}
