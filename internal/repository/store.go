package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/timshannon/badgerhold/v4"
)

// NewStore opens the embedded document store. Records are persisted as
// one JSON document per key, so what sits on disk is the same shape the
// API serves.
func NewStore(path string) (*badgerhold.Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	options := badgerhold.DefaultOptions
	options.Dir = path
	options.ValueDir = path
	options.Logger = nil
	options.Encoder = json.Marshal
	options.Decoder = json.Unmarshal

	store, err := badgerhold.Open(options)
	if err != nil {
		return nil, fmt.Errorf("failed to open document store at %s: %w", path, err)
	}

	return store, nil
}
