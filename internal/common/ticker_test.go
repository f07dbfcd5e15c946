package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTicker(t *testing.T) {
	tests := []struct {
		input        string
		wantExchange string
		wantCode     string
		wantString   string
		wantYahoo    string
	}{
		// Exchange-qualified format with colon separator
		{"NSE:IRFC", "NSE", "IRFC", "NSE:IRFC", "IRFC.NS"},
		{"BSE:500325", "BSE", "500325", "BSE:500325", "500325.BO"},

		// Yahoo suffix form
		{"IRFC.NS", "NSE", "IRFC", "NSE:IRFC", "IRFC.NS"},
		{"RELIANCE.BO", "BSE", "RELIANCE", "BSE:RELIANCE", "RELIANCE.BO"},
		{"bajaj-auto.ns", "NSE", "BAJAJ-AUTO", "NSE:BAJAJ-AUTO", "BAJAJ-AUTO.NS"},

		// Bare codes
		{"IRFC", "NSE", "IRFC", "NSE:IRFC", "IRFC.NS"},
		{"500325", "BSE", "500325", "BSE:500325", "500325.BO"},
		{"M&M", "NSE", "M&M", "NSE:M&M", "M&M.NS"},

		// Unknown exchange qualifier takes the default suffix
		{"MCX:GOLD", "MCX", "GOLD", "MCX:GOLD", "GOLD.NS"},

		// Case and whitespace normalization
		{"irfc", "NSE", "IRFC", "NSE:IRFC", "IRFC.NS"},
		{"  nse:irfc  ", "NSE", "IRFC", "NSE:IRFC", "IRFC.NS"},

		// Empty input
		{"", "", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := ParseTicker(tt.input, ".NS")

			if result.Exchange != tt.wantExchange {
				t.Errorf("Exchange = %q, want %q", result.Exchange, tt.wantExchange)
			}
			if result.Code != tt.wantCode {
				t.Errorf("Code = %q, want %q", result.Code, tt.wantCode)
			}
			if result.String() != tt.wantString {
				t.Errorf("String() = %q, want %q", result.String(), tt.wantString)
			}
			if result.YahooSymbol() != tt.wantYahoo {
				t.Errorf("YahooSymbol() = %q, want %q", result.YahooSymbol(), tt.wantYahoo)
			}
		})
	}
}

func yahoo(ticker, defaultSuffix string) string {
	return ParseTicker(ticker, defaultSuffix).YahooSymbol()
}

func TestYahooSymbol(t *testing.T) {
	assert.Equal(t, "IRFC.NS", yahoo("IRFC.NS", ".NS"))
	assert.Equal(t, "IRFC.NS", yahoo("irfc", ".NS"))
	assert.Equal(t, "500325.BO", yahoo("500325", ".NS"))
	assert.Equal(t, "TCS.BO", yahoo("tcs.bo", ".NS"))
	assert.Equal(t, "", yahoo("  ", ".NS"))
}

func TestParseTicker_DefaultSuffixIsPerCall(t *testing.T) {
	assert.Equal(t, "IRFC.BO", yahoo("IRFC", ".BO"))
	assert.Equal(t, "BSE:IRFC", ParseTicker("IRFC", ".bo").String())

	// A different default in one call never leaks into the next
	assert.Equal(t, "IRFC.NS", yahoo("IRFC", ".NS"))
	assert.Equal(t, "IRFC.NS", yahoo("IRFC", ""), "empty default falls back to .NS")
	assert.Equal(t, "IRFC.NS", yahoo("IRFC", "NS"), "malformed default falls back to .NS")

	// Explicit suffixes and numeric codes ignore the default
	assert.Equal(t, "IRFC.NS", yahoo("IRFC.NS", ".BO"))
	assert.Equal(t, "500325.BO", yahoo("500325", ".NS"))
}
