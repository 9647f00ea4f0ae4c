// Package xrpscan reads XRP Ledger account balances from the xrpscan API.
package xrpscan

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/etnz/cryptofolio/jsonapi"
	"github.com/shopspring/decimal"
)

const DefaultURL = "https://api.xrpscan.com/api/v1"

// dropsPerXRP is the number of drops in one XRP.
const dropsPerXRP = 6

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func New(client *http.Client) *Client {
	return &Client{BaseURL: DefaultURL, HTTP: client}
}

// Balance returns the XRP balance of account.
func (c *Client) Balance(ctx context.Context, account string) (decimal.Decimal, error) {
	var obj map[string]any
	if err := jsonapi.Get(ctx, c.HTTP, c.BaseURL+"/account/"+url.PathEscape(account), nil, &obj); err != nil {
		return decimal.Zero, fmt.Errorf("cannot get xrp account: %w", err)
	}
	// xrpBalance is in XRP, Balance in drops.
	if v, exists := obj["xrpBalance"]; exists && v != nil {
		f, err := jsonapi.Float(v)
		if err != nil {
			return decimal.Zero, fmt.Errorf("invalid xrpBalance: %w", err)
		}
		return decimal.NewFromFloat(f), nil
	}
	if v, exists := obj["Balance"]; exists && v != nil {
		f, err := jsonapi.Float(v)
		if err != nil {
			return decimal.Zero, fmt.Errorf("invalid Balance: %w", err)
		}
		return decimal.NewFromFloat(f).Shift(-dropsPerXRP), nil
	}
	return decimal.Zero, fmt.Errorf("no balance for xrp account %s", account)
}
