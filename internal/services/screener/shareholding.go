package screener

import (
	"errors"

	"github.com/PuerkitoBio/goquery"

	"github.com/ternarybob/finquant/internal/models"
)

// ExtractShareholding reads the quarterly and yearly shareholding panels.
// A missing region empties both panels; a missing panel empties only itself.
func ExtractShareholding(doc *goquery.Document) Result[models.ShareholdingSection] {
	root := doc.Find("#" + regionShareholding)
	if root.Length() == 0 {
		return failed(models.SectionShareholding, models.EmptyShareholding(), models.ErrSectionNotFound)
	}

	quarterly, qErr := readPanel(root, panelQuarterly)
	yearly, yErr := readPanel(root, panelYearly)

	return Result[models.ShareholdingSection]{
		Value: models.ShareholdingSection{Quarterly: quarterly, Yearly: yearly},
		Err:   errors.Join(qErr, yErr),
	}
}

func readPanel(root *goquery.Selection, panelID string) (*models.Section, error) {
	table := root.Find("#" + panelID).Find("table").First()
	if table.Length() == 0 {
		return models.NewSection(), &models.ExtractionError{Section: panelID, Err: models.ErrTableNotFound}
	}
	return readTable(table, isShareholderCountRow), nil
}
