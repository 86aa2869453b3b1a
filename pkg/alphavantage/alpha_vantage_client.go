package alphavantage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"golang.org/x/time/rate"
)

const defaultBaseUrl = "https://www.alphavantage.co"

type Client struct {
	HttpClient *http.Client
	ApiKey     string
	// BaseUrl overrides the production endpoint. Leave empty outside tests.
	BaseUrl string
	// Limiter throttles outbound calls when set. The free tier allows 25
	// requests per day.
	Limiter *rate.Limiter
}

// SymbolMatch is one SYMBOL_SEARCH hit. The upstream JSON uses numbered
// keys ("1. symbol"), hence the odd tags.
type SymbolMatch struct {
	Symbol string `json:"1. symbol"`
	Name   string `json:"2. name"`
	Type   string `json:"3. type"`
	Region string `json:"4. region"`
}

type symbolSearchResponse struct {
	BestMatches []SymbolMatch `json:"bestMatches"`
}

func (c Client) SearchSymbols(ctx context.Context, keywords string) ([]SymbolMatch, error) {
	baseUrl := c.BaseUrl
	if baseUrl == "" {
		baseUrl = defaultBaseUrl
	}
	requestUrl := fmt.Sprintf("%s/query?function=SYMBOL_SEARCH&keywords=%s&apikey=%s", baseUrl, url.QueryEscape(keywords), c.ApiKey)

	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestUrl, nil)
	if err != nil {
		return nil, err
	}

	httpClient := c.HttpClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	response, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	responseBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("received status code %d and failed to read body: %w", response.StatusCode, err)
	}
	if response.StatusCode != 200 {
		return nil, fmt.Errorf("symbol search failed with status code %d: %s", response.StatusCode, string(responseBytes))
	}

	var responseJson symbolSearchResponse
	err = json.Unmarshal(responseBytes, &responseJson)
	if err != nil {
		return nil, err
	}

	return responseJson.BestMatches, nil
}
