// Package alphavantage implements the company-to-symbol lookup on top of
// the Alpha Vantage SYMBOL_SEARCH endpoint.
package alphavantage

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/kmoroz/pdufa"
)

// EnvAPIKey is the environment variable holding the API key.
const EnvAPIKey = "ALPHAVANTAGE_API_KEY"

const queryURL = "https://www.alphavantage.co/query"

// searchResult matches one item of the SYMBOL_SEARCH response. Alpha
// Vantage numbers its JSON keys.
type searchResult struct {
	Symbol   string `json:"1. symbol"`
	Name     string `json:"2. name"`
	Type     string `json:"3. type"`
	Region   string `json:"4. region"`
	Currency string `json:"8. currency"`
}

type searchResponse struct {
	BestMatches []searchResult `json:"bestMatches"`
}

// Client queries Alpha Vantage. Responses are cached on disk with a daily
// expiry, the free tier is heavily rate limited.
type Client struct {
	apiKey  string
	client  *http.Client
	baseURL string
}

// NewClient returns a Client using the given API key.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		client:  newDailyCachingClient(20 * time.Second),
		baseURL: queryURL,
	}
}

// Search looks up candidate symbols for free company text. It implements
// pdufa.Lookup.
func (c *Client) Search(text string) ([]pdufa.Match, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("missing %s", EnvAPIKey)
	}

	v := url.Values{}
	v.Set("function", "SYMBOL_SEARCH")
	v.Set("keywords", text)
	v.Set("apikey", c.apiKey)

	var resp searchResponse
	if err := jwget(c.client, c.baseURL+"?"+v.Encode(), &resp); err != nil {
		return nil, err
	}

	matches := make([]pdufa.Match, 0, len(resp.BestMatches))
	for _, r := range resp.BestMatches {
		matches = append(matches, pdufa.Match{
			Symbol:   r.Symbol,
			Name:     r.Name,
			Region:   r.Region,
			Currency: r.Currency,
		})
	}
	return matches, nil
}
