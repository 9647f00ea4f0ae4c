// Package hyperliquid reads perpetual account values from the Hyperliquid info API.
package hyperliquid

import (
	"context"
	"fmt"
	"net/http"

	"github.com/etnz/cryptofolio/jsonapi"
	"github.com/shopspring/decimal"
)

const DefaultURL = "https://api.hyperliquid.xyz/info"

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func New(client *http.Client) *Client {
	return &Client{BaseURL: DefaultURL, HTTP: client}
}

type clearinghouseState struct {
	MarginSummary struct {
		AccountValue string `json:"accountValue"`
	} `json:"marginSummary"`
}

// AccountValue returns the USD value of the perpetuals account of user.
func (c *Client) AccountValue(ctx context.Context, user string) (decimal.Decimal, error) {
	body := map[string]string{"type": "clearinghouseState", "user": user}
	var state clearinghouseState
	if err := jsonapi.Post(ctx, c.HTTP, c.BaseURL, nil, body, &state); err != nil {
		return decimal.Zero, fmt.Errorf("cannot get clearinghouse state: %w", err)
	}
	v, err := decimal.NewFromString(state.MarginSummary.AccountValue)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid account value %q: %w", state.MarginSummary.AccountValue, err)
	}
	return v, nil
}
