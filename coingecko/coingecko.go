// Package coingecko reads crypto quotes from the CoinGecko public API.
package coingecko

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/etnz/cryptofolio"
	"github.com/etnz/cryptofolio/jsonapi"
)

const DefaultURL = "https://api.coingecko.com/api/v3"

// IDs maps ticker symbols to CoinGecko coin ids.
var IDs = map[string]string{
	"BTC":  "bitcoin",
	"ETH":  "ethereum",
	"FET":  "fetch-ai",
	"GALA": "gala",
	"XRP":  "ripple",
	"USDC": "usd-coin",
	"USDT": "tether",
	"BNB":  "binancecoin",
	"SOL":  "solana",
}

// Client is a CoinGecko API client.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func New(client *http.Client) *Client {
	return &Client{BaseURL: DefaultURL, HTTP: client}
}

// Quote returns the USD price and market cap of symbol.
func (c *Client) Quote(ctx context.Context, symbol string) (float64, cryptofolio.Figure, error) {
	id, ok := IDs[strings.ToUpper(symbol)]
	if !ok {
		return 0, cryptofolio.NA, fmt.Errorf("unknown coingecko symbol %q", symbol)
	}
	addr := c.BaseURL + "/simple/price?" + url.Values{
		"ids":                {id},
		"vs_currencies":      {"usd"},
		"include_market_cap": {"true"},
	}.Encode()

	var obj any
	if err := jsonapi.Get(ctx, c.HTTP, addr, nil, &obj); err != nil {
		return 0, cryptofolio.NA, fmt.Errorf("cannot quote %s: %w", symbol, err)
	}
	price, err := jsonapi.PathFloat(obj, fmt.Sprintf("$[%q].usd", id))
	if err != nil {
		return 0, cryptofolio.NA, fmt.Errorf("cannot quote %s: %w", symbol, err)
	}
	marketCap := cryptofolio.NA
	if mc, err := jsonapi.PathFloat(obj, fmt.Sprintf("$[%q].usd_market_cap", id)); err == nil {
		marketCap = cryptofolio.Known(mc)
	}
	return price, marketCap, nil
}
