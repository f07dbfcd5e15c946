package screener

import (
	"errors"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/finquant/internal/models"
)

// Result is the outcome of one extractor. Value is always usable: on
// failure it holds the section's empty default and Err says why.
type Result[T any] struct {
	Value T
	Err   error
}

func ok[T any](v T) Result[T] {
	return Result[T]{Value: v}
}

func failed[T any](section string, fallback T, err error) Result[T] {
	return Result[T]{Value: fallback, Err: &models.ExtractionError{Section: section, Err: err}}
}

// Collapse returns the value, logging the failure if there was one.
func (r Result[T]) Collapse(logger arbor.ILogger) T {
	if r.Err != nil && logger != nil {
		section := "unknown"
		var extractErr *models.ExtractionError
		if errors.As(r.Err, &extractErr) {
			section = extractErr.Section
		}
		logger.Warn().Str("section", section).Err(r.Err).Msg("Section extraction failed, using empty default")
	}
	return r.Value
}
