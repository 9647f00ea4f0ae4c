// Package etherscan reads Ethereum balances from the Etherscan API.
package etherscan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/etnz/cryptofolio/jsonapi"
	"github.com/shopspring/decimal"
)

const (
	DefaultURL = "https://api.etherscan.io/v2/api"
	// Mainnet is the chain id of the Ethereum mainnet.
	Mainnet = "1"
)

// ErrAPI is returned when etherscan answers with a failure status.
var ErrAPI = errors.New("etherscan error")

// Client is an Etherscan API client.
type Client struct {
	BaseURL string
	APIKey  string
	ChainID string
	HTTP    *http.Client
}

// New returns a client to the mainnet.
func New(apiKey string, client *http.Client) *Client {
	return &Client{BaseURL: DefaultURL, APIKey: apiKey, ChainID: Mainnet, HTTP: client}
}

// response is the envelope of every etherscan answer.
type response struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
}

// call performs a "account" module action and returns its result.
func (c *Client) call(ctx context.Context, params url.Values) (string, error) {
	params.Set("chainid", c.ChainID)
	params.Set("module", "account")
	params.Set("tag", "latest")
	params.Set("apikey", c.APIKey)

	var resp response
	if err := jsonapi.Get(ctx, c.HTTP, c.BaseURL+"?"+params.Encode(), nil, &resp); err != nil {
		return "", err
	}
	var result string
	// on error, result is a human message.
	json.Unmarshal(resp.Result, &result)
	if resp.Status != "1" {
		return "", fmt.Errorf("%w: %s -- %s", ErrAPI, resp.Message, result)
	}
	return result, nil
}

// Balance returns the ether balance of address.
func (c *Client) Balance(ctx context.Context, address string) (decimal.Decimal, error) {
	raw, err := c.call(ctx, url.Values{"action": {"balance"}, "address": {address}})
	if err != nil {
		return decimal.Zero, err
	}
	return scale(raw, 18)
}

// TokenBalance returns the balance of an ERC-20 token held by address.
func (c *Client) TokenBalance(ctx context.Context, address, contract string, decimals int32) (decimal.Decimal, error) {
	raw, err := c.call(ctx, url.Values{
		"action":          {"tokenbalance"},
		"contractaddress": {contract},
		"address":         {address},
	})
	if err != nil {
		return decimal.Zero, err
	}
	return scale(raw, decimals)
}

// scale converts an integer amount of the smallest unit into units.
func scale(raw string, decimals int32) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil || !d.IsInteger() || d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: invalid balance %q", ErrAPI, raw)
	}
	return d.Shift(-decimals), nil
}
