package crawl

import (
	"fmt"
	"net/url"
)

// Well-known locations in the Ozon seller analytics area.
const (
	// SearchQueriesURL is the authenticated analytics page; a session whose
	// location starts with this prefix is considered logged in.
	SearchQueriesURL = "https://data.ozon.ru/app/search-queries"

	// RequestsLimitURL is where the site parks a session that has exceeded
	// its request quota.
	RequestsLimitURL = "https://data.ozon.ru/app/requests-limit"
)

// QueryURL returns the analytics page location for a keyword. The query
// string only disambiguates keywords for logging and history purposes; the
// page itself reads the keyword from the extraction script.
func QueryURL(keyword string) string {
	return fmt.Sprintf("%s?__%s", SearchQueriesURL, url.QueryEscape(keyword))
}
