// Package common provides shared utilities across the application.
package common

import (
	"strings"
)

// DefaultSuffix is the Yahoo suffix for bare codes when none is configured.
const DefaultSuffix = ".NS"

// Ticker represents a parsed exchange-qualified ticker.
// Format: EXCHANGE:CODE (e.g., "NSE:IRFC", "BSE:500325")
type Ticker struct {
	// Exchange is the exchange code ("NSE" or "BSE"); empty when unknown
	Exchange string
	// Code is the stock/security code (e.g., "IRFC", "500325")
	Code string
	// Suffix is the Yahoo Finance suffix for the exchange (e.g., ".NS")
	Suffix string
	// Raw is the original ticker string
	Raw string
}

// ExchangeToSuffix maps exchange codes to Yahoo Finance suffixes.
var ExchangeToSuffix = map[string]string{
	"NSE": ".NS",
	"BSE": ".BO",
}

// suffixToExchange is the inverse of ExchangeToSuffix.
var suffixToExchange = map[string]string{
	".NS": "NSE",
	".BO": "BSE",
}

// ParseTicker parses a ticker in any of the accepted forms:
//   - "NSE:IRFC"   -> Exchange="NSE", Code="IRFC"
//   - "IRFC.NS"    -> Exchange="NSE", Code="IRFC" (Yahoo form)
//   - "500325"     -> Exchange="BSE", Code="500325" (numeric scrip codes are BSE)
//   - "irfc"       -> Code="IRFC" on the exchange of defaultSuffix
//
// defaultSuffix ([market] default_suffix) also applies to exchange
// qualifiers with no known suffix. Empty means DefaultSuffix.
func ParseTicker(ticker, defaultSuffix string) Ticker {
	ticker = strings.TrimSpace(ticker)
	if ticker == "" {
		return Ticker{}
	}
	upper := strings.ToUpper(ticker)

	defaultSuffix = strings.ToUpper(strings.TrimSpace(defaultSuffix))
	if !strings.HasPrefix(defaultSuffix, ".") {
		defaultSuffix = DefaultSuffix
	}

	if idx := strings.Index(upper, ":"); idx > 0 {
		exchange := upper[:idx]
		suffix, ok := ExchangeToSuffix[exchange]
		if !ok {
			suffix = defaultSuffix
		}
		return Ticker{
			Exchange: exchange,
			Code:     strings.TrimSpace(upper[idx+1:]),
			Suffix:   suffix,
			Raw:      ticker,
		}
	}

	for suffix, exchange := range suffixToExchange {
		if code, ok := strings.CutSuffix(upper, suffix); ok && code != "" {
			return Ticker{Exchange: exchange, Code: code, Suffix: suffix, Raw: ticker}
		}
	}

	if isDigits(upper) {
		return Ticker{Exchange: "BSE", Code: upper, Suffix: ExchangeToSuffix["BSE"], Raw: ticker}
	}

	return Ticker{Exchange: suffixToExchange[defaultSuffix], Code: upper, Suffix: defaultSuffix, Raw: ticker}
}

// String returns the full exchange-qualified ticker string.
func (t Ticker) String() string {
	if t.Exchange == "" || t.Code == "" {
		return t.Code
	}
	return t.Exchange + ":" + t.Code
}

// YahooSymbol returns the Yahoo Finance symbol.
// Example: "NSE:IRFC" -> "IRFC.NS"
func (t Ticker) YahooSymbol() string {
	if t.Code == "" {
		return ""
	}
	return t.Code + t.Suffix
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
