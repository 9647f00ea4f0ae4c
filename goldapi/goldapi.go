// Package goldapi reads the gold spot price from goldapi.io.
package goldapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/etnz/cryptofolio/jsonapi"
)

const DefaultURL = "https://www.goldapi.io/api"

type Client struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
}

func New(apiKey string, client *http.Client) *Client {
	return &Client{BaseURL: DefaultURL, APIKey: apiKey, HTTP: client}
}

// PricePerGram returns the USD price of a gram of 24 carat gold.
func (c *Client) PricePerGram(ctx context.Context) (float64, error) {
	var obj any
	header := http.Header{"x-access-token": {c.APIKey}}
	if err := jsonapi.Get(ctx, c.HTTP, c.BaseURL+"/XAU/USD", header, &obj); err != nil {
		return 0, fmt.Errorf("cannot get gold price: %w", err)
	}
	price, err := jsonapi.PathFloat(obj, "$.price_gram_24k")
	if err != nil {
		return 0, fmt.Errorf("cannot get gold price: %w", err)
	}
	if price <= 0 {
		return 0, fmt.Errorf("invalid gold price %v", price)
	}
	return price, nil
}
