package hyperliquid

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAccountValue(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		json.NewDecoder(r.Body).Decode(&req)
		if req["type"] != "clearinghouseState" {
			http.Error(w, "unknown type", http.StatusUnprocessableEntity)
			return
		}
		if req["user"] != "0xabc" {
			w.Write([]byte(`null`))
			return
		}
		w.Write([]byte(`{"marginSummary":{"accountValue":"190.123456","totalNtlPos":"0.0"},"withdrawable":"190.1"}`))
	}))
	defer srv.Close()
	c := New(srv.Client())
	c.BaseURL = srv.URL

	got, err := c.AccountValue(context.Background(), "0xabc")
	if err != nil {
		t.Fatalf("AccountValue() error = %v", err)
	}
	if got.String() != "190.123456" {
		t.Errorf("AccountValue() = %v, want 190.123456", got)
	}
	if _, err := c.AccountValue(context.Background(), "0xdef"); err == nil {
		t.Error("AccountValue() of an unknown user succeeded")
	}
}
