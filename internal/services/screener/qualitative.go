package screener

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/ternarybob/finquant/internal/models"
)

// ExtractQualitative reads the pros and cons bullet lists of the analysis region.
func ExtractQualitative(doc *goquery.Document) Result[models.QualitativeSection] {
	root := doc.Find("#" + regionAnalysis)
	if root.Length() == 0 {
		return failed(models.SectionAnalysis, models.EmptyQualitative(), models.ErrSectionNotFound)
	}

	return ok(models.QualitativeSection{
		Pros: listItems(root.Find(".pros li")),
		Cons: listItems(root.Find(".cons li")),
	})
}

func listItems(items *goquery.Selection) []string {
	out := []string{}
	items.Each(func(_ int, li *goquery.Selection) {
		if text := cellText(li.Text()); text != "" {
			out = append(out, text)
		}
	})
	return out
}
