package screener

import (
	"errors"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/ternarybob/finquant/internal/models"
)

// ExtractSection reads the metric x period table of one page region.
// A missing region or table yields an empty section and an ExtractionError.
func ExtractSection(doc *goquery.Document, region string) Result[*models.Section] {
	root := doc.Find("#" + region)
	if root.Length() == 0 {
		return failed(region, models.NewSection(), models.ErrSectionNotFound)
	}

	// Growth range tables live in the same region as the P&L table
	table := root.Find("table").Not(selectorRangesTable).First()
	if table.Length() == 0 {
		return failed(region, models.NewSection(), models.ErrTableNotFound)
	}

	return ok(readTable(table, isRawDocumentRow))
}

// ExtractGrowthMetrics reads the compounded growth tables that sit under
// the profit and loss table. Each table has a title header followed by
// "label: value" rows.
func ExtractGrowthMetrics(doc *goquery.Document) Result[*models.GrowthMetrics] {
	const section = "growth_metrics"

	root := doc.Find("#" + regionProfitLoss)
	if root.Length() == 0 {
		return failed(section, models.NewGrowthMetrics(), models.ErrSectionNotFound)
	}

	tables := root.Find(selectorRangesTable)
	if tables.Length() == 0 {
		return failed(section, models.NewGrowthMetrics(), models.ErrTableNotFound)
	}

	metrics := models.NewGrowthMetrics()
	tables.Each(func(_ int, table *goquery.Selection) {
		title := cellText(table.Find("th").First().Text())
		if title == "" {
			return
		}

		ranges := models.NewRangeTable()
		table.Find("tr").Each(func(i int, tr *goquery.Selection) {
			if i == 0 {
				return
			}
			cells := tr.ChildrenFiltered("td")
			if cells.Length() != 2 {
				return
			}
			label := strings.TrimSpace(strings.ReplaceAll(cellText(cells.Eq(0).Text()), ":", ""))
			if label == "" {
				return
			}
			ranges.Set(label, NormalizeValue(cellText(cells.Eq(1).Text())))
		})
		metrics.Set(title, ranges)
	})

	return ok(metrics)
}

// ExtractProfitLoss combines the annual P&L table with its growth ranges.
// Either half may fail without emptying the other.
func ExtractProfitLoss(doc *goquery.Document) Result[models.ProfitLoss] {
	annual := ExtractSection(doc, regionProfitLoss)
	growth := ExtractGrowthMetrics(doc)

	return Result[models.ProfitLoss]{
		Value: models.ProfitLoss{AnnualData: annual.Value, GrowthMetrics: growth.Value},
		Err:   errors.Join(annual.Err, growth.Err),
	}
}

// ExtractCompanyName returns the page heading, or "" when absent.
func ExtractCompanyName(doc *goquery.Document) string {
	return cellText(doc.Find(selectorCompanyName).First().Text())
}

// readTable applies the shared table convention: the first header cell is
// blank, the remaining header cells are period labels, and each body row is
// a metric name followed by values aligned to those labels. Headers are read
// once and reused for every row.
func readTable(table *goquery.Selection, skip func(name string) bool) *models.Section {
	headers := readHeaders(table)
	section := models.NewSection()

	table.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
		cells := tr.ChildrenFiltered("td")
		if cells.Length() == 0 {
			return
		}

		name := cellText(cells.First().Text())
		if name == "" || skip(name) {
			return
		}

		row := models.NewRow()
		for i, period := range headers {
			value := models.Missing()
			if i+1 < cells.Length() {
				value = NormalizeValue(cellText(cells.Eq(i + 1).Text()))
			}
			row.Set(period, value)
		}
		section.Set(name, row)
	})

	return section
}

func readHeaders(table *goquery.Selection) []string {
	headerRow := table.Find("thead tr").First()
	if headerRow.ChildrenFiltered("th").Length() == 0 {
		headerRow = table.Find("tr").FilterFunction(func(_ int, tr *goquery.Selection) bool {
			return tr.ChildrenFiltered("th").Length() > 0
		}).First()
	}

	var headers []string
	headerRow.ChildrenFiltered("th").Each(func(i int, th *goquery.Selection) {
		if i == 0 {
			return
		}
		headers = append(headers, cellText(th.Text()))
	})
	return headers
}

func isRawDocumentRow(name string) bool {
	return strings.Contains(name, rawDocumentMarker)
}

func isShareholderCountRow(name string) bool {
	return strings.HasPrefix(name, shareholderCountLabel) || isRawDocumentRow(name)
}
