package repository

import (
	"esgrank/internal/domain"
	"fmt"

	"github.com/google/uuid"
	"github.com/timshannon/badgerhold/v4"
)

type ApiRequestRepository interface {
	Add(ar domain.APIRequest) (*domain.APIRequest, error)
	Update(ar domain.APIRequest) error
}

func NewApiRequestRepository(store *badgerhold.Store) ApiRequestRepository {
	return apiRequestRepositoryHandler{store}
}

type apiRequestRepositoryHandler struct {
	store *badgerhold.Store
}

func (h apiRequestRepositoryHandler) Add(ar domain.APIRequest) (*domain.APIRequest, error) {
	ar.RequestID = uuid.New()

	err := h.store.Insert(ar.RequestID.String(), &ar)
	if err != nil {
		return nil, fmt.Errorf("failed to insert API request: %w", err)
	}

	return &ar, nil
}

func (h apiRequestRepositoryHandler) Update(ar domain.APIRequest) error {
	err := h.store.Update(ar.RequestID.String(), &ar)
	if err != nil {
		return fmt.Errorf("failed to update API request %s: %w", ar.RequestID, err)
	}

	return nil
}
