package repository

import (
	"esgrank/internal/domain"
	"fmt"
	"time"

	"github.com/timshannon/badgerhold/v4"
)

// RawArchiveRepository keeps the unmodified upstream payloads that fed an
// ingestion run, so a bad parse can be replayed without re-hitting the API.
type RawArchiveRepository interface {
	Archive(payload domain.RawPayload) error
	ListByTicker(ticker string) ([]domain.RawPayload, error)
}

func NewRawArchiveRepository(store *badgerhold.Store) RawArchiveRepository {
	return rawArchiveRepositoryHandler{store}
}

type rawArchiveRepositoryHandler struct {
	store *badgerhold.Store
}

// Archive stores one payload per source, ticker and calendar day. A second
// fetch on the same day overwrites the earlier one.
func (h rawArchiveRepositoryHandler) Archive(payload domain.RawPayload) error {
	if payload.FetchedAt.IsZero() {
		payload.FetchedAt = time.Now().UTC()
	}
	payload.Key = fmt.Sprintf("%s:%s:%s", payload.Source, payload.Ticker, payload.FetchedAt.UTC().Format(time.DateOnly))

	err := h.store.Upsert(payload.Key, &payload)
	if err != nil {
		return fmt.Errorf("failed to archive %s payload for %s: %w", payload.Source, payload.Ticker, err)
	}

	return nil
}

func (h rawArchiveRepositoryHandler) ListByTicker(ticker string) ([]domain.RawPayload, error) {
	payloads := []domain.RawPayload{}
	err := h.store.Find(&payloads, badgerhold.Where("Ticker").Eq(ticker))
	if err != nil {
		return nil, fmt.Errorf("failed to list archived payloads for %s: %w", ticker, err)
	}

	return payloads, nil
}
