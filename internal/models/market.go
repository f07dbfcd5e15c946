package models

import "time"

// PricePoint is one trading day's close.
type PricePoint struct {
	Date  time.Time `json:"date"`
	Close float64   `json:"close"`
}

// MarketSeries is a trailing daily close-price history for one ticker.
// Closes and TodayOpen are rounded to two decimal places.
type MarketSeries struct {
	Ticker    string       `json:"ticker"`
	Points    []PricePoint `json:"points"`
	TodayOpen float64      `json:"today_open"`
	TodayDate time.Time    `json:"today_date"`
	Currency  string       `json:"currency"`
}

// Closes returns the close prices in series order.
func (s *MarketSeries) Closes() []float64 {
	closes := make([]float64, len(s.Points))
	for i, p := range s.Points {
		closes[i] = p.Close
	}
	return closes
}

// SeriesStats are the summary statistics of a close series.
type SeriesStats struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Count  int     `json:"count"`
}
