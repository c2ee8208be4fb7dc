package bandcamp

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/samber/lo"
)

// ScrapeLinks returns the absolute release URLs listed in a discography
// grid, in page order without duplicates.
//
// Hrefs are resolved against the page's og:url. A page without one yields
// no links.
func ScrapeLinks(doc *goquery.Document) []string {
	content, ok := doc.Find(`meta[property="og:url"]`).First().Attr("content")
	if !ok || strings.TrimSpace(content) == "" {
		return nil
	}
	base, err := url.Parse(strings.TrimSpace(content))
	if err != nil || !base.IsAbs() {
		return nil
	}

	var links []string
	doc.Find("#music-grid > li > a").Each(func(_ int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			return
		}
		ref, err := url.Parse(strings.TrimSpace(href))
		if err != nil {
			return
		}
		links = append(links, base.ResolveReference(ref).String())
	})
	return lo.Uniq(links)
}
