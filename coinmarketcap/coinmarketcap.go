// Package coinmarketcap reads crypto quotes from the CoinMarketCap pro API.
package coinmarketcap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/etnz/cryptofolio"
	"github.com/etnz/cryptofolio/jsonapi"
)

const DefaultURL = "https://pro-api.coinmarketcap.com"

// ErrAPI is returned when CoinMarketCap reports an error in its status.
var ErrAPI = errors.New("coinmarketcap error")

// Client is a CoinMarketCap API client.
type Client struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
}

func New(apiKey string, client *http.Client) *Client {
	return &Client{BaseURL: DefaultURL, APIKey: apiKey, HTTP: client}
}

// Quote returns the USD price and market cap of symbol.
func (c *Client) Quote(ctx context.Context, symbol string) (float64, cryptofolio.Figure, error) {
	addr := c.BaseURL + "/v2/cryptocurrency/quotes/latest?" + url.Values{"symbol": {symbol}, "convert": {"USD"}}.Encode()
	header := http.Header{"X-CMC_PRO_API_KEY": {c.APIKey}}

	var obj any
	if err := jsonapi.Get(ctx, c.HTTP, addr, header, &obj); err != nil {
		return 0, cryptofolio.NA, fmt.Errorf("cannot quote %s: %w", symbol, err)
	}
	if code, err := jsonapi.PathFloat(obj, "$.status.error_code"); err == nil && code != 0 {
		msg, _ := jsonapi.Path(obj, "$.status.error_message")
		return 0, cryptofolio.NA, fmt.Errorf("%w: %v", ErrAPI, msg)
	}

	// symbols are not unique, the first match is the most relevant one.
	quote := fmt.Sprintf("$.data.%s[0].quote.USD", symbol)
	price, err := jsonapi.PathFloat(obj, quote+".price")
	if err != nil {
		return 0, cryptofolio.NA, fmt.Errorf("cannot quote %s: %w", symbol, err)
	}
	marketCap := cryptofolio.NA
	if mc, err := jsonapi.PathFloat(obj, quote+".market_cap"); err == nil {
		marketCap = cryptofolio.Known(mc)
	}
	return price, marketCap, nil
}
