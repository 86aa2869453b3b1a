package groq

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	defaultBaseUrl = "https://api.groq.com/openai/v1"

	// llama3 is fast and cheap enough to run on every analyze request.
	DefaultModel       = "llama3-8b-8192"
	DefaultMaxTokens   = 500
	DefaultTemperature = 0.3
)

type Client struct {
	HttpClient *http.Client
	ApiKey     string
	// BaseUrl overrides the production endpoint. Leave empty outside tests.
	BaseUrl string
}

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Messages    []ChatMessage `json:"messages"`
	Model       string        `json:"model"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message ChatMessage `json:"message"`
	} `json:"choices"`
}

// ChatCompletion sends one system+user exchange and returns the assistant
// reply with surrounding whitespace trimmed.
func (c Client) ChatCompletion(systemPrompt, userPrompt string) (string, error) {
	baseUrl := c.BaseUrl
	if baseUrl == "" {
		baseUrl = defaultBaseUrl
	}

	body, err := json.Marshal(chatRequest{
		Messages: []ChatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Model:       DefaultModel,
		MaxTokens:   DefaultMaxTokens,
		Temperature: DefaultTemperature,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest(http.MethodPost, baseUrl+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.ApiKey)
	req.Header.Set("Content-Type", "application/json")

	httpClient := c.HttpClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	response, err := httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer response.Body.Close()

	responseBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return "", fmt.Errorf("received status code %d and failed to read body: %w", response.StatusCode, err)
	}

	if response.StatusCode != 200 {
		return "", fmt.Errorf("chat completion failed with status code %d: %s", response.StatusCode, string(responseBytes))
	}

	var responseJson chatResponse
	err = json.Unmarshal(responseBytes, &responseJson)
	if err != nil {
		return "", err
	}
	if len(responseJson.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}

	return strings.TrimSpace(responseJson.Choices[0].Message.Content), nil
}
