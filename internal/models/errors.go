package models

import (
	"errors"
	"fmt"
)

var (
	// ErrDocumentUnavailable is returned when the browser cannot be started or
	// the company page never becomes ready within the bound.
	ErrDocumentUnavailable = errors.New("document unavailable")

	// ErrMarketDataUnavailable is returned when the price history request
	// fails or comes back empty.
	ErrMarketDataUnavailable = errors.New("market data unavailable")

	// ErrPersistence wraps individual artifact write failures.
	ErrPersistence = errors.New("artifact write failed")

	// ErrSessionState is returned when a session operation is called from the
	// wrong state.
	ErrSessionState = errors.New("invalid session state")

	// ErrSectionNotFound means the section's region is absent from the page.
	ErrSectionNotFound = errors.New("section not found")

	// ErrTableNotFound means the region exists but holds no table.
	ErrTableNotFound = errors.New("table not found")
)

// ExtractionError reports a section that could not be located or parsed.
// It is always recovered into an empty section by the caller.
type ExtractionError struct {
	Section string
	Err     error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.Section, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}
