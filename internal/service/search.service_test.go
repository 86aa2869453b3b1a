package service

import (
	"context"
	"testing"

	"esgrank/internal/domain"
	mock_repository "esgrank/internal/repository/mocks"
	"esgrank/internal/universe"

	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"
)

func TestSearchService(t *testing.T) {
	catalog, err := universe.NewCatalog()
	require.NoError(t, err)

	t.Run("enriches catalog hits with stored records", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		esgRepository := mock_repository.NewMockESGRecordRepository(ctrl)
		esgRepository.EXPECT().Get("TCS.NS").Return(&domain.ESGRecord{
			Ticker:     "TCS.NS",
			ESGScore:   74.2,
			ROIC:       0.41,
			MarketCap:  1.2e11,
			DataSource: "fmp",
		}, nil)

		svc := NewSearchService(catalog, esgRepository, nil)
		results, err := svc.Search(context.Background(), "TCS")
		require.NoError(t, err)

		require.NotEmpty(t, results)
		require.Equal(t, "TCS.NS", results[0].Symbol)
		require.Equal(t, universe.ScoreExactSymbol, results[0].Score)
		require.Equal(t, 74.2, results[0].ESGScore)
		require.Equal(t, "₹120.00B", results[0].MarketCapFormatted)
		require.Equal(t, "fmp", results[0].DataSource)
	})

	t.Run("missing records leave zeros, not errors", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		esgRepository := mock_repository.NewMockESGRecordRepository(ctrl)
		esgRepository.EXPECT().Get(gomock.Any()).Return(nil, domain.ErrRecordNotFound).AnyTimes()

		svc := NewSearchService(catalog, esgRepository, nil)
		results, err := svc.Search(context.Background(), "infosys")
		require.NoError(t, err)

		require.NotEmpty(t, results)
		require.Zero(t, results[0].ESGScore)
		require.Equal(t, "N/A", results[0].MarketCapFormatted)
		require.Equal(t, "catalog", results[0].DataSource)
	})

	t.Run("no hits yields an empty list", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		esgRepository := mock_repository.NewMockESGRecordRepository(ctrl)

		svc := NewSearchService(catalog, esgRepository, nil)
		results, err := svc.Search(context.Background(), "zzzz-not-a-company")
		require.NoError(t, err)
		require.Empty(t, results)
	})
}
