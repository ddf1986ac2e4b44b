package jobsource

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const noiseSelector = "nav, footer, header, script, style, noscript, iframe, form, .ad, .advertisement, .ads, .sidebar, .cookie-banner, .popup"

const blockSelector = "p, li, div, section, article, tr, h1, h2, h3, h4, h5, h6"

// contentSelectors are tried in order; the first match is treated as the posting body.
var contentSelectors = []string{
	".job-description",
	".job-content",
	"#job-description",
	"#job-content",
	".posting-content",
	".job-details",
	"[data-testid='job-description']",
	"[data-qa='vacancy-description']",
	"main",
	"article",
	".content",
	"#content",
}

// ExtractMainText parses an HTML page and returns its title and the text of
// the main posting body. Navigation and scripts are dropped. Block elements
// end up on their own lines.
func ExtractMainText(html string) (title, text string, err error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", "", fmt.Errorf("parse html: %w", err)
	}

	title = strings.TrimSpace(doc.Find("h1").First().Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	doc.Find(noiseSelector).Remove()
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find(blockSelector).AppendHtml("\n")

	var main *goquery.Selection
	for _, selector := range contentSelectors {
		if selection := doc.Find(selector); selection.Length() > 0 {
			main = selection.First()
			break
		}
	}
	if main == nil {
		main = doc.Find("body")
	}

	return CleanText(title), CleanText(main.Text()), nil
}

// fragmentText converts an HTML fragment such as an API description field to text.
func fragmentText(fragment string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<body>" + fragment + "</body>"))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find(blockSelector).AppendHtml("\n")

	return CleanText(doc.Find("body").Text()), nil
}
