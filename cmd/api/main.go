package main

import (
	"context"
	"fmt"
	"log"

	"esgrank/cmd"
	"esgrank/internal/logger"

	"github.com/robfig/cron/v3"
)

func main() {
	deps, err := cmd.InitializeDependencies()
	if err != nil {
		log.Fatal(err)
	}
	defer cmd.CloseDependencies(deps)

	if expr := deps.Secrets.RefreshCron; expr != "" {
		scheduler := cron.New()
		_, err = scheduler.AddFunc(expr, func() {
			refreshStoredRecords(deps)
		})
		if err != nil {
			log.Fatalf("invalid refresh cron %q: %v", expr, err)
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	err = deps.ApiHandler.StartApi(3009)
	if err != nil {
		log.Fatal(err)
	}
}

// refreshStoredRecords re-ingests every ticker already in the store so
// scheduled runs keep existing data current without growing the universe.
func refreshStoredRecords(deps *cmd.Dependencies) {
	records, err := deps.ApiHandler.EsgRecordRepository.GetAll()
	if err != nil {
		logger.Error("scheduled refresh failed to list records: ", err)
		return
	}
	if len(records) == 0 {
		logger.Info("scheduled refresh skipped - store is empty")
		return
	}

	tickers := make([]string, 0, len(records))
	for _, record := range records {
		tickers = append(tickers, record.Ticker)
	}

	report, err := deps.ApiHandler.IngestHandler.Ingest(context.Background(), tickers)
	if err != nil {
		logger.Error("scheduled refresh failed: ", err)
		return
	}
	logger.Info(fmt.Sprintf("scheduled refresh done: %d succeeded, %d failed", report.Succeeded, report.Failed))
}
