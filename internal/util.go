package internal

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

func Pprint(i interface{}) {
	bytes, err := json.MarshalIndent(i, "", "    ")
	if err != nil {
		panic(err)
	}
	fmt.Println(string(bytes))
}

type Secrets struct {
	FmpApiKey          string `json:"fmp"`
	GroqApiKey         string `json:"groq"`
	AlphaVantageApiKey string `json:"alphaVantage"`
	DbPath             string `json:"dbPath"`
	EdgarUserAgent     string `json:"edgarUserAgent"`
	RefreshCron        string `json:"refreshCron"`
}

// LoadSecrets layers config the same way the service is deployed: an
// optional .env for local runs, an optional secrets file picked by
// ESGRANK_ENV, then plain env vars overriding both.
func LoadSecrets() (*Secrets, error) {
	_ = godotenv.Load()

	secretsFile := "secrets.json"
	if os.Getenv("ESGRANK_ENV") == "dev" {
		secretsFile = "secrets-dev.json"
	} else if os.Getenv("ESGRANK_ENV") == "test" {
		secretsFile = "secrets-test.json"
	}

	secrets := Secrets{}
	f, err := os.ReadFile(secretsFile)
	if err == nil {
		if err := json.Unmarshal(f, &secrets); err != nil {
			return nil, fmt.Errorf("could not parse %s: %w", secretsFile, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("could not open %s: %w", secretsFile, err)
	}

	if v := os.Getenv("FMP_API_KEY"); v != "" {
		secrets.FmpApiKey = v
	}
	if v := os.Getenv("GROQ_API_KEY"); v != "" {
		secrets.GroqApiKey = v
	}
	if v := os.Getenv("ALPHAVANTAGE_API_KEY"); v != "" {
		secrets.AlphaVantageApiKey = v
	}
	if v := os.Getenv("ESGRANK_DB_PATH"); v != "" {
		secrets.DbPath = v
	}
	if v := os.Getenv("ESGRANK_REFRESH_CRON"); v != "" {
		secrets.RefreshCron = v
	}

	if secrets.DbPath == "" {
		secrets.DbPath = "data/esgrank.db"
	}
	if secrets.EdgarUserAgent == "" {
		// EDGAR rejects requests without a descriptive UA
		secrets.EdgarUserAgent = "esgrank research contact@esgrank.dev"
	}

	return &secrets, nil
}
