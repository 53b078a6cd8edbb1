package yahoo

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PaesslerAG/jsonpath"
)

// fallbackLogo is shown for instruments without a resolvable website.
const fallbackLogo = "https://cdn-icons-png.flaticon.com/512/3310/3310624.png"

// Metadata is display information for one instrument.
type Metadata struct {
	Symbol string
	Name   string
	Logo   string
}

// Metadata fetches the long name and a logo URL for a symbol. The logo is
// derived from the company website via the clearbit logo service. Lookup
// failures degrade to the raw symbol and a generic logo instead of
// erroring, display data is never worth failing a report over.
func (c *Client) Metadata(symbol string) Metadata {
	meta := Metadata{Symbol: symbol, Name: symbol, Logo: fallbackLogo}

	ticker, _, err := c.resolve(symbol, "1d", "1d")
	if err != nil {
		return meta
	}

	addr := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=price,assetProfile",
		c.baseURL, url.PathEscape(ticker))
	var jobj any
	if err := jwget(c.http, addr, &jobj); err != nil {
		c.log.Debug().Str("symbol", symbol).Err(err).Msg("no metadata")
		return meta
	}

	// The summary nests results one level deep and renames fields per
	// module, jsonpath keeps the plucking readable.
	if name := pluckString(jobj, "$.quoteSummary.result[0].price.longName"); name != "" {
		meta.Name = name
	} else if name := pluckString(jobj, "$.quoteSummary.result[0].price.shortName"); name != "" {
		meta.Name = name
	}
	if website := pluckString(jobj, "$.quoteSummary.result[0].assetProfile.website"); website != "" {
		if domain := domainOf(website); domain != "" {
			meta.Logo = "https://logo.clearbit.com/" + domain
		}
	}
	return meta
}

// pluckString extracts a single string value at a jsonpath, tolerating
// the library's habit of wrapping single answers in a list.
func pluckString(jobj any, path string) string {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return ""
	}
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	s, _ := jval.(string)
	return s
}

// domainOf reduces a website URL to its bare domain.
func domainOf(website string) string {
	website = strings.TrimPrefix(website, "https://")
	website = strings.TrimPrefix(website, "http://")
	website, _, _ = strings.Cut(website, "/")
	return strings.TrimPrefix(website, "www.")
}
