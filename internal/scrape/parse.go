package scrape

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"cv-optimizer-backend/internal/shared/util"
)

const (
	selectorTitle        = "h1"
	selectorCompany      = `a[data-tracking-control-name="public_jobs_topcard-org-name"]`
	selectorDescription  = "div.description__text"
	selectorCriteriaList = ".description__job-criteria-list li"
	selectorCriteriaHead = ".description__job-criteria-subheader"
	selectorCriteriaText = ".description__job-criteria-text"
)

// parseVacancy extracts the fixed field set from rendered posting markup.
// Absent elements leave their field unavailable; partial extraction is
// success, not failure.
func parseVacancy(html, url string, keywords KeywordStrategy) (*VacancyRecord, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse vacancy markup: %w", err)
	}

	record := &VacancyRecord{
		URL:         FieldOf(url),
		Title:       selectText(doc, selectorTitle),
		Company:     selectText(doc, selectorCompany),
		Description: selectDescription(doc),
		// The posting layout carries no structured values for these; they
		// arrive later from the enrichment or stay at the sentinel.
		Recruiter: NA(),
		Email:     NA(),
		Phone:     NA(),
		Salary:    NA(),
		Schedule:  FieldOf("Tiempo completo"),
		Modality:  FieldOf("Remoto"),
		Location:  NA(),
		Benefits:  NA(),
	}

	record.Requirements = parseCriteria(doc)
	record.Keywords = deriveKeywords(record, keywords)

	return record, nil
}

func selectText(doc *goquery.Document, selector string) Field {
	sel := doc.Find(selector).First()
	if sel.Length() == 0 {
		return NA()
	}
	return FieldOf(sel.Text())
}

func selectDescription(doc *goquery.Document) Field {
	sel := doc.Find(selectorDescription).First()
	if sel.Length() == 0 {
		return NA()
	}
	return FieldOf(util.CleanText(sel.Text()))
}

// parseCriteria flattens the job-criteria list into a bulleted
// "header: value" block.
func parseCriteria(doc *goquery.Document) Field {
	var items []string
	doc.Find(selectorCriteriaList).Each(func(_ int, li *goquery.Selection) {
		header := util.CleanText(li.Find(selectorCriteriaHead).First().Text())
		value := util.CleanText(li.Find(selectorCriteriaText).First().Text())
		if header == "" || value == "" {
			return
		}
		items = append(items, fmt.Sprintf("%s: %s", header, value))
	})
	if len(items) == 0 {
		return NA()
	}
	return Preformatted("\n- " + strings.Join(items, "\n- "))
}

func deriveKeywords(record *VacancyRecord, strategy KeywordStrategy) []string {
	if strategy == nil {
		strategy = DefaultAllowList()
	}
	if !record.Description.Available() || !record.Requirements.Available() {
		return strategy.Keywords("")
	}
	return strategy.Keywords(record.Description.Value() + " " + record.Requirements.Value())
}
