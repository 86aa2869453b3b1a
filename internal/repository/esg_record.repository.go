package repository

import (
	"errors"
	"fmt"
	"time"

	"esgrank/internal/domain"

	"github.com/timshannon/badgerhold/v4"
)

// ESGRecordRepository is the reference-universe store: one document per
// ticker, upsert keyed by ticker so re-ingestion is idempotent.
type ESGRecordRepository interface {
	Upsert(record domain.ESGRecord) error
	Get(ticker string) (*domain.ESGRecord, error)
	GetAll() ([]domain.ESGRecord, error)
	Delete(ticker string) error
	Count() (int, error)
}

func NewESGRecordRepository(store *badgerhold.Store) ESGRecordRepository {
	return esgRecordRepositoryHandler{store: store}
}

type esgRecordRepositoryHandler struct {
	store *badgerhold.Store
}

func (h esgRecordRepositoryHandler) Upsert(record domain.ESGRecord) error {
	if record.Ticker == "" {
		return &domain.MissingFieldError{Field: "ticker"}
	}
	if record.LastUpdated.IsZero() {
		record.LastUpdated = time.Now().UTC()
	}

	if err := h.store.Upsert(record.Ticker, &record); err != nil {
		return fmt.Errorf("failed to upsert esg record for %s: %w", record.Ticker, err)
	}

	return nil
}

func (h esgRecordRepositoryHandler) Get(ticker string) (*domain.ESGRecord, error) {
	record := domain.ESGRecord{}
	if err := h.store.Get(ticker, &record); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get esg record for %s: %w", ticker, err)
	}

	return &record, nil
}

// GetAll returns the full universe in one read, no pagination.
func (h esgRecordRepositoryHandler) GetAll() ([]domain.ESGRecord, error) {
	var records []domain.ESGRecord
	err := h.store.Find(&records, badgerhold.Where("Ticker").Ne(""))
	if err != nil {
		return nil, fmt.Errorf("failed to list esg records: %w", err)
	}

	return records, nil
}

func (h esgRecordRepositoryHandler) Delete(ticker string) error {
	if err := h.store.Delete(ticker, &domain.ESGRecord{}); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to delete esg record for %s: %w", ticker, err)
	}

	return nil
}

func (h esgRecordRepositoryHandler) Count() (int, error) {
	count, err := h.store.Count(&domain.ESGRecord{}, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count esg records: %w", err)
	}

	return int(count), nil
}
