package screener

// CSS selectors for the screener.in company page.
const (
	selectorHomeSearch  = ".home-search"
	selectorSearchInput = ".home-search input[aria-label='Search for a company']"

	// Anchors whose presence marks a loaded company page
	selectorProfitLoss = "#profit-loss"
	selectorAnalysis   = "#analysis"

	selectorCompanyName = "h1"
	selectorRangesTable = ".ranges-table"
)

// Section region identifiers on the company page.
const (
	regionQuarters     = "quarters"
	regionProfitLoss   = "profit-loss"
	regionBalanceSheet = "balance-sheet"
	regionShareholding = "shareholding"
	regionAnalysis     = "analysis"

	panelQuarterly = "quarterly-shp"
	panelYearly    = "yearly-shp"
)

// Row names that are not metrics.
const (
	rawDocumentMarker     = "Raw PDF"
	shareholderCountLabel = "No. of Shareholders"
)
