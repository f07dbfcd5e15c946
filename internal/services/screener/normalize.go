package screener

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/ternarybob/finquant/internal/models"
)

// NormalizeValue converts one raw table cell into a typed value.
// It is total: every input maps to exactly one of Missing, Percent, Number or Text.
func NormalizeValue(raw string) models.Value {
	cleaned := strings.TrimSpace(raw)
	switch cleaned {
	case "", "-", "NA":
		return models.Missing()
	}

	cleaned = strings.TrimSpace(strings.ReplaceAll(cleaned, ",", ""))

	if strings.Contains(cleaned, "%") {
		remainder := strings.TrimSpace(strings.ReplaceAll(cleaned, "%", ""))
		f, err := strconv.ParseFloat(remainder, 64)
		if err != nil || !isFinite(f) {
			return models.Missing()
		}
		return models.Percent(f / 100)
	}

	if f, ok := parseNumber(cleaned); ok {
		return models.Number(f)
	}
	return models.Text(cleaned)
}

// parseNumber parses decimals as floats and everything else as integers.
// Integers too large for int64 fall back to float parsing.
func parseNumber(s string) (float64, bool) {
	if strings.Contains(s, ".") {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || !isFinite(f) {
			return 0, false
		}
		return f, true
	}

	i, err := strconv.ParseInt(s, 10, 64)
	if err == nil {
		return float64(i), true
	}
	if errors.Is(err, strconv.ErrRange) {
		if f, ferr := strconv.ParseFloat(s, 64); ferr == nil && isFinite(f) {
			return f, true
		}
	}
	return 0, false
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// cellText collapses runs of whitespace (including non-breaking spaces)
// into single spaces.
func cellText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
