// Package binance reads spot balances from a Binance account.
//
// Only read-only endpoints are used.
package binance

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/etnz/cryptofolio/jsonapi"
	"github.com/shopspring/decimal"
)

const DefaultURL = "https://api.binance.com"

// Client is a Binance spot API client.
type Client struct {
	BaseURL    string
	APIKey     string
	Secret     string
	RecvWindow time.Duration
	HTTP       *http.Client
	Now        func() time.Time // nil means time.Now
}

func New(apiKey, secret string, client *http.Client) *Client {
	return &Client{BaseURL: DefaultURL, APIKey: apiKey, Secret: secret, RecvWindow: 10 * time.Second, HTTP: client}
}

// Balance is a spot balance.
type Balance struct {
	Asset  string
	Free   decimal.Decimal
	Locked decimal.Decimal
}

// Total is the free and locked amount.
func (b Balance) Total() decimal.Decimal { return b.Free.Add(b.Locked) }

// sign adds the timestamp and the signature of params.
func (c *Client) sign(params url.Values) string {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	params.Set("timestamp", strconv.FormatInt(now().UnixMilli(), 10))
	if c.RecvWindow > 0 {
		params.Set("recvWindow", strconv.FormatInt(c.RecvWindow.Milliseconds(), 10))
	}
	query := params.Encode()
	mac := hmac.New(sha256.New, []byte(c.Secret))
	mac.Write([]byte(query))
	return query + "&signature=" + hex.EncodeToString(mac.Sum(nil))
}

// Balances returns the non zero spot balances of the account.
func (c *Client) Balances(ctx context.Context) ([]Balance, error) {
	var account struct {
		Balances []struct {
			Asset  string `json:"asset"`
			Free   string `json:"free"`
			Locked string `json:"locked"`
		} `json:"balances"`
	}
	addr := c.BaseURL + "/api/v3/account?" + c.sign(url.Values{"omitZeroBalances": {"true"}})
	header := http.Header{"X-MBX-APIKEY": {c.APIKey}}
	if err := jsonapi.Get(ctx, c.HTTP, addr, header, &account); err != nil {
		return nil, fmt.Errorf("cannot get binance account: %w", err)
	}
	var res []Balance
	for _, b := range account.Balances {
		free, err := decimal.NewFromString(b.Free)
		if err != nil {
			return nil, fmt.Errorf("invalid free balance of %s: %w", b.Asset, err)
		}
		locked, err := decimal.NewFromString(b.Locked)
		if err != nil {
			return nil, fmt.Errorf("invalid locked balance of %s: %w", b.Asset, err)
		}
		if free.IsZero() && locked.IsZero() {
			continue
		}
		res = append(res, Balance{Asset: b.Asset, Free: free, Locked: locked})
	}
	return res, nil
}

// Price returns the last price of a symbol like "ETHUSDT".
func (c *Client) Price(ctx context.Context, symbol string) (decimal.Decimal, error) {
	var ticker struct {
		Symbol string `json:"symbol"`
		Price  string `json:"price"`
	}
	addr := c.BaseURL + "/api/v3/ticker/price?" + url.Values{"symbol": {symbol}}.Encode()
	if err := jsonapi.Get(ctx, c.HTTP, addr, nil, &ticker); err != nil {
		return decimal.Zero, fmt.Errorf("cannot get %s price: %w", symbol, err)
	}
	p, err := decimal.NewFromString(ticker.Price)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s price %q: %w", symbol, ticker.Price, err)
	}
	return p, nil
}
