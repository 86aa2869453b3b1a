package repository

import (
	"esgrank/pkg/groq"
	"fmt"
)

type AiSummaryRepository interface {
	GetCompanySummary(prompt string) (string, error)
}

type aiSummaryRepositoryHandler struct {
	GroqClient groq.Client
}

func NewAiSummaryRepository(client groq.Client) (AiSummaryRepository, error) {
	if client.ApiKey == "" {
		return nil, fmt.Errorf("groq api key is not configured")
	}

	return aiSummaryRepositoryHandler{
		GroqClient: client,
	}, nil
}

const systemPrompt = `You are an expert ESG (Environmental, Social, Governance) investment analyst specializing in Indian markets. Provide professional, actionable insights in a concise format suitable for investment reports.`

func (h aiSummaryRepositoryHandler) GetCompanySummary(prompt string) (string, error) {
	summary, err := h.GroqClient.ChatCompletion(systemPrompt, prompt)
	if err != nil {
		return "", fmt.Errorf("failed to generate company summary: %w", err)
	}

	return summary, nil
}
