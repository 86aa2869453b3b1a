package domain

import (
	"errors"
	"fmt"
)

// Ranking rejects malformed input with one of three error kinds so the
// API layer can map each to a precise status and message.

type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("portfolio line missing required field %q", e.Field)
}

// WeightSumError carries the observed sum and the tolerance it was
// checked against.
type WeightSumError struct {
	Sum       float64
	Tolerance float64
}

func (e *WeightSumError) Error() string {
	return fmt.Sprintf("portfolio weights must sum to 1.0 within %g, got %f", e.Tolerance, e.Sum)
}

type NoReferenceDataError struct{}

func (e *NoReferenceDataError) Error() string {
	return "no ESG reference data available - run ingestion first"
}

// ErrRecordNotFound is returned by the record store for unknown tickers.
var ErrRecordNotFound = errors.New("esg record not found")

// ErrTickerNotCovered is the typed "not available" result a fetch
// strategy returns when it cannot serve a ticker at all, as opposed to a
// transport or upstream failure.
var ErrTickerNotCovered = errors.New("ticker not covered by this provider")

// ErrInsufficientHistory means the symbol has too few price bars to fit
// a model on.
var ErrInsufficientHistory = errors.New("insufficient price history")
