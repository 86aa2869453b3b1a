package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"esgrank/internal/app"
	"esgrank/internal/domain"
	"esgrank/internal/fetch"
	"esgrank/internal/logger"
	"esgrank/internal/repository"
	"esgrank/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type ApiHandler struct {
	RankHandler          app.RankHandler
	IngestHandler        app.IngestHandler
	AnalysisHandler      app.AnalysisHandler
	ControversyService   service.ControversyService
	SearchService        service.SearchService
	AlternativesService  service.AlternativesService
	PredictionService    service.PredictionService
	ManipulationService  service.ManipulationService
	EsgRecordRepository  repository.ESGRecordRepository
	ApiRequestRepository repository.ApiRequestRepository
}

func int64Ptr(i int64) *int64 {
	return &i
}
func int32Ptr(i int32) *int32 {
	return &i
}
func strPtr(s string) *string {
	return &s
}

func (m ApiHandler) StartApi(port int) error {
	router := m.Router()
	return router.Run(fmt.Sprintf(":%d", port))
}

func (m ApiHandler) Router() *gin.Engine {
	router := gin.Default()
	router.Use(cors.Default())
	router.Use(contextLoggerMiddleware)
	router.Use(m.logRequestMiddlware)

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(200, map[string]string{"message": "welcome to esgrank"})
	})
	router.GET("/health", m.health)
	router.POST("/rank", m.rank)
	router.POST("/rank_enhanced", m.rankEnhanced)
	router.POST("/ingest", m.ingest)
	router.GET("/flags/:ticker", m.flags)
	router.GET("/search/:query", m.search)
	router.GET("/analyze/:ticker", m.analyze)
	router.GET("/predict/:ticker", m.predict)
	router.GET("/manipulation/:ticker", m.manipulation)
	router.GET("/alternatives/:ticker", m.alternatives)

	return router
}

func returnErrorJson(err error, c *gin.Context) {
	returnErrorJsonCode(err, c, statusForError(err))
}

func returnErrorJsonCode(err error, c *gin.Context, code int) {
	logger.Error(err.Error())
	c.AbortWithStatusJSON(code, gin.H{
		"error": err.Error(),
	})
}

// statusForError maps the domain error taxonomy onto HTTP statuses:
// malformed portfolio input is the caller's fault, missing reference
// data or history is a 404-ish gap, upstream fetch exhaustion is a bad
// gateway, everything else is ours.
func statusForError(err error) int {
	var missingField *domain.MissingFieldError
	var weightSum *domain.WeightSumError
	var noReferenceData *domain.NoReferenceDataError
	var exhausted *fetch.ExhaustedError

	switch {
	case errors.As(err, &missingField),
		errors.As(err, &weightSum),
		errors.As(err, &noReferenceData),
		errors.Is(err, domain.ErrInsufficientHistory):
		return 400
	case errors.Is(err, domain.ErrRecordNotFound),
		errors.Is(err, domain.ErrTickerNotCovered):
		return 404
	case errors.As(err, &exhausted):
		return 502
	default:
		return 500
	}
}

// contextLoggerMiddleware stashes a request logger in the request ctx
// so services resolve it without building their own.
func contextLoggerMiddleware(c *gin.Context) {
	ctx := context.WithValue(c.Request.Context(), logger.ContextKey, logger.New())
	c.Request = c.Request.WithContext(ctx)
	c.Next()
}

type responseBodyWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (r responseBodyWriter) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

func (m ApiHandler) logRequestMiddlware(ctx *gin.Context) {
	w := &responseBodyWriter{body: &bytes.Buffer{}, ResponseWriter: ctx.Writer}
	ctx.Writer = w

	body, err := ctx.GetRawData()
	if err != nil {
		logger.Warn(fmt.Errorf("failed to get raw data: %w", err))
	}
	ctx.Request.Body = io.NopCloser(bytes.NewReader(body))

	start := time.Now().UTC()
	req, err := m.ApiRequestRepository.Add(domain.APIRequest{
		IPAddress:   strPtr(ctx.ClientIP()),
		Method:      ctx.Request.Method,
		Route:       ctx.Request.URL.Path,
		RequestBody: strPtr(string(body)),
		StartTs:     start,
	})
	if err != nil {
		logger.Warn(err)
	}

	ctx.Next()

	if req != nil {
		req.DurationMs = int64Ptr(time.Since(start).Milliseconds())
		req.StatusCode = int32Ptr(int32(ctx.Writer.Status()))
		req.ResponseBody = strPtr(w.body.String())

		err = m.ApiRequestRepository.Update(*req)
		if err != nil {
			logger.Warn(err)
		}
	}
}
