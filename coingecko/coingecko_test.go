package coingecko

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestQuote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/simple/price" || r.URL.Query().Get("include_market_cap") != "true" {
			http.NotFound(w, r)
			return
		}
		switch r.URL.Query().Get("ids") {
		case "ripple":
			w.Write([]byte(`{"ripple":{"usd":0.62,"usd_market_cap":35000000000}}`))
		case "fetch-ai":
			w.Write([]byte(`{"fetch-ai":{"usd":1.42}}`))
		default:
			w.Write([]byte(`{}`))
		}
	}))
	defer srv.Close()
	c := New(srv.Client())
	c.BaseURL = srv.URL

	price, mc, err := c.Quote(context.Background(), "XRP")
	if err != nil || price != 0.62 || mc.Compact() != "35.00B" {
		t.Errorf("Quote(XRP) = %v, %v, %v, want 0.62, 35.00B", price, mc, err)
	}
	price, mc, err = c.Quote(context.Background(), "fet")
	if err != nil || price != 1.42 || mc.IsKnown() {
		t.Errorf("Quote(FET) = %v, %v, %v, want 1.42, N/A", price, mc, err)
	}
	if _, _, err := c.Quote(context.Background(), "GALA"); err == nil {
		t.Error("Quote(GALA) succeeded on an empty answer")
	}
	if _, _, err := c.Quote(context.Background(), "ESX"); err == nil {
		t.Error("Quote(ESX) succeeded for an unknown symbol")
	}
}
