package cmd

import (
	"fmt"
	"log"
	"time"

	"esgrank/api"
	"esgrank/internal"
	"esgrank/internal/app"
	"esgrank/internal/fetch"
	"esgrank/internal/repository"
	"esgrank/internal/service"
	"esgrank/internal/universe"
	"esgrank/pkg/alphavantage"
	"esgrank/pkg/edgar"
	"esgrank/pkg/fmp"
	"esgrank/pkg/groq"

	"github.com/timshannon/badgerhold/v4"
	"golang.org/x/time/rate"
)

// Dependencies is everything a binary needs to run: the wired API
// handler, the open store it must close on exit, and the loaded secrets
// for anything the binary schedules itself.
type Dependencies struct {
	ApiHandler *api.ApiHandler
	Store      *badgerhold.Store
	Secrets    *internal.Secrets
}

func CloseDependencies(deps *Dependencies) {
	err := deps.Store.Close()
	if err != nil {
		log.Fatalf("failed to close store: %v", err)
	}
}

func InitializeDependencies() (*Dependencies, error) {
	secrets, err := internal.LoadSecrets()
	if err != nil {
		return nil, fmt.Errorf("failed to load secrets: %w", err)
	}

	store, err := repository.NewStore(secrets.DbPath)
	if err != nil {
		return nil, err
	}

	esgRecordRepository := repository.NewESGRecordRepository(store)
	rawArchiveRepository := repository.NewRawArchiveRepository(store)
	apiRequestRepository := repository.NewApiRequestRepository(store)

	catalog, err := universe.NewCatalog()
	if err != nil {
		return nil, fmt.Errorf("failed to load universe catalog: %w", err)
	}

	// ordered fallback: live quotes, then delisted replacements, then the
	// BSE/no-suffix retry, then sector defaults which always answer
	yahoo := fetch.YahooProvider{Catalog: catalog}
	fetcher := fetch.NewChain(
		yahoo,
		fetch.ReplacementProvider{Delegate: yahoo},
		fetch.AlternateSuffixProvider{Delegate: yahoo},
		fetch.SectorDefaultProvider{Catalog: catalog},
	)

	// fmp's free tier is ~250 requests/day, so calls are throttled and the
	// client is left nil without a key
	var fmpClient app.EsgDataClient
	if secrets.FmpApiKey != "" {
		fmpClient = fmp.Client{
			ApiKey:  secrets.FmpApiKey,
			Limiter: rate.NewLimiter(rate.Every(250*time.Millisecond), 1),
		}
	}

	var aiSummaryRepository repository.AiSummaryRepository
	if secrets.GroqApiKey != "" {
		aiSummaryRepository, err = repository.NewAiSummaryRepository(groq.Client{ApiKey: secrets.GroqApiKey})
		if err != nil {
			return nil, err
		}
	}

	var alphaVantageClient *alphavantage.Client
	if secrets.AlphaVantageApiKey != "" {
		alphaVantageClient = &alphavantage.Client{
			ApiKey:  secrets.AlphaVantageApiKey,
			Limiter: rate.NewLimiter(rate.Every(time.Second), 1),
		}
	}

	validatorService := service.NewValidatorService()
	marketDataService := service.NewMarketDataService()
	controversyService := service.NewControversyService(edgar.Client{
		UserAgent: secrets.EdgarUserAgent,
		Limiter:   rate.NewLimiter(10, 10),
	})
	predictionService := service.NewPredictionService(marketDataService, validatorService)
	manipulationService := service.NewManipulationService(marketDataService, controversyService, service.ManipulationThresholds{})
	searchService := service.NewSearchService(catalog, esgRecordRepository, alphaVantageClient)
	alternativesService := service.NewAlternativesService(catalog, esgRecordRepository)

	ingestHandler := app.IngestHandler{
		FmpClient:            fmpClient,
		Fetcher:              fetcher,
		EsgRecordRepository:  esgRecordRepository,
		RawArchiveRepository: rawArchiveRepository,
		ValidatorService:     validatorService,
		Catalog:              catalog,
	}

	apiHandler := &api.ApiHandler{
		RankHandler: app.RankHandler{
			EsgRecordRepository: esgRecordRepository,
		},
		IngestHandler: ingestHandler,
		AnalysisHandler: app.AnalysisHandler{
			EsgRecordRepository: esgRecordRepository,
			Fetcher:             fetcher,
			ControversyService:  controversyService,
			ValidatorService:    validatorService,
			AiSummaryRepository: aiSummaryRepository,
			Catalog:             catalog,
		},
		ControversyService:   controversyService,
		SearchService:        searchService,
		AlternativesService:  alternativesService,
		PredictionService:    predictionService,
		ManipulationService:  manipulationService,
		EsgRecordRepository:  esgRecordRepository,
		ApiRequestRepository: apiRequestRepository,
	}

	return &Dependencies{
		ApiHandler: apiHandler,
		Store:      store,
		Secrets:    secrets,
	}, nil
}
