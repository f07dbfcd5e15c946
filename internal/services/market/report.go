package market

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/ternarybob/finquant/internal/models"
)

const reportDateLayout = "02-01-2006"

// RenderReport formats the volatility summary of a series as markdown.
func RenderReport(series *models.MarketSeries) string {
	stats := ComputeStats(series.Closes())
	currency := series.Currency

	var b strings.Builder
	b.WriteString("# Technical & Volatility Analysis\n\n")
	fmt.Fprintf(&b, "**Ticker**: %s | **Date**: %s\n", series.Ticker, series.TodayDate.Format(reportDateLayout))
	fmt.Fprintf(&b, "**30-Day Avg**: %s | **Std Dev**: ±%s\n", formatMoney(stats.Mean, currency), formatMoney(stats.StdDev, currency))
	fmt.Fprintf(&b, "**High**: %s | **Low**: %s\n", formatMoney(stats.High, currency), formatMoney(stats.Low, currency))
	fmt.Fprintf(&b, "**Today's Open**: %s", formatMoney(series.TodayOpen, currency))
	return b.String()
}

// Unavailable is the report used when the series could not be fetched.
func Unavailable(ticker string, err error) string {
	return fmt.Sprintf("Price data not available for %s: %v", ticker, err)
}

// formatMoney renders amount with the currency's symbol and grouping,
// rounded half away from zero to the currency's minor unit.
func formatMoney(amount float64, code string) string {
	currency := money.GetCurrency(code)
	if currency == nil {
		return fmt.Sprintf("%.2f %s", amount, code)
	}

	minor := decimal.NewFromFloat(amount).Shift(int32(currency.Fraction)).Round(0).IntPart()
	return money.New(minor, currency.Code).Display()
}
