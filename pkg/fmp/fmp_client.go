package fmp

import (
	"context"
	"encoding/json"
	"errors"
	"esgrank/internal/logger"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultBaseUrl = "https://financialmodelingprep.com/api"
	maxAttempts    = 5
)

// ErrNoData means the API answered but has no coverage for the symbol.
// Common for the NSE listings, which is why callers keep a fallback chain.
var ErrNoData = errors.New("fmp has no data for symbol")

type Client struct {
	HttpClient *http.Client
	ApiKey     string
	// BaseUrl overrides the production endpoint. Leave empty outside tests.
	BaseUrl string
	// Limiter throttles outbound calls when set. The free tier allows
	// roughly 250 requests per day.
	Limiter *rate.Limiter
	// Backoff overrides the retry wait. Leave nil for exponential backoff.
	Backoff func(attempt int) time.Duration
}

type EsgScores struct {
	Symbol             string  `json:"symbol"`
	CompanyName        string  `json:"companyName"`
	Date               string  `json:"date"`
	EnvironmentalScore float64 `json:"environmentalScore"`
	SocialScore        float64 `json:"socialScore"`
	GovernanceScore    float64 `json:"governanceScore"`
	ESGScore           float64 `json:"ESGScore"`
}

type RatiosTTM struct {
	ReturnOnCapitalEmployedTTM float64 `json:"returnOnCapitalEmployedTTM"`
	NetProfitMarginTTM         float64 `json:"netProfitMarginTTM"`
	MarketCapTTM               float64 `json:"marketCapTTM"`
}

// GetEsgScores returns the most recent ESG disclosure for the symbol along
// with the unparsed response body for archival.
func (c Client) GetEsgScores(ctx context.Context, symbol string) (*EsgScores, []byte, error) {
	url := fmt.Sprintf("%s/v4/esg-environmental-social-governance-data?symbol=%s&apikey=%s", c.baseUrl(), symbol, c.ApiKey)
	responseBytes, err := c.get(ctx, url)
	if err != nil {
		return nil, nil, err
	}

	var scores []EsgScores
	err = json.Unmarshal(responseBytes, &scores)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse esg response for %s: %w", symbol, err)
	}
	if len(scores) == 0 {
		return nil, responseBytes, fmt.Errorf("%w: %s", ErrNoData, symbol)
	}

	return &scores[0], responseBytes, nil
}

// GetRatiosTTM returns trailing-twelve-month ratios for the symbol along
// with the unparsed response body for archival.
func (c Client) GetRatiosTTM(ctx context.Context, symbol string) (*RatiosTTM, []byte, error) {
	url := fmt.Sprintf("%s/v3/ratios-ttm/%s?apikey=%s", c.baseUrl(), symbol, c.ApiKey)
	responseBytes, err := c.get(ctx, url)
	if err != nil {
		return nil, nil, err
	}

	var ratios []RatiosTTM
	err = json.Unmarshal(responseBytes, &ratios)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse ratios response for %s: %w", symbol, err)
	}
	if len(ratios) == 0 {
		return nil, responseBytes, fmt.Errorf("%w: %s", ErrNoData, symbol)
	}

	return &ratios[0], responseBytes, nil
}

func (c Client) baseUrl() string {
	if c.BaseUrl != "" {
		return c.BaseUrl
	}
	return defaultBaseUrl
}

func (c Client) httpClient() *http.Client {
	if c.HttpClient != nil {
		return c.HttpClient
	}
	return http.DefaultClient
}

func (c Client) backoff(attempt int) time.Duration {
	if c.Backoff != nil {
		return c.Backoff(attempt)
	}
	// 1, 2, 4, 8 seconds between the five attempts
	return time.Duration(math.Pow(2, float64(attempt))) * time.Second
}

func (c Client) get(ctx context.Context, url string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if c.Limiter != nil {
			if err := c.Limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		response, err := c.httpClient().Do(req)
		if err != nil {
			lastErr = err
			if attempt == maxAttempts-1 {
				break
			}
			time.Sleep(c.backoff(attempt))
			continue
		}

		responseBytes, err := io.ReadAll(response.Body)
		response.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("received status code %d and failed to read body: %w", response.StatusCode, err)
		}

		if response.StatusCode == 429 {
			logger.Debug("hit fmp rate limit. backing off...")
			lastErr = fmt.Errorf("rate limited with status code 429")
			time.Sleep(c.backoff(attempt))
			continue
		} else if response.StatusCode != 200 {
			return nil, fmt.Errorf("fmp request failed with status code %d: %s", response.StatusCode, string(responseBytes))
		}

		return responseBytes, nil
	}

	return nil, fmt.Errorf("fmp request failed after %d attempts: %w", maxAttempts, lastErr)
}
