package xrpscan

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestBalance(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/account/rXRP":
			w.Write([]byte(`{"account":"rXRP","xrpBalance":"486.5","Balance":"486500000"}`))
		case "/account/rDrops":
			w.Write([]byte(`{"account":"rDrops","Balance":"25000000"}`))
		case "/account/rEmpty":
			w.Write([]byte(`{"account":"rEmpty"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()
	c := New(srv.Client())
	c.BaseURL = srv.URL

	tests := []struct {
		account string
		want    string
		wantErr bool
	}{
		{"rXRP", "486.5", false},
		{"rDrops", "25", false},
		{"rEmpty", "0", true},
		{"rUnknown", "0", true},
	}
	for _, tt := range tests {
		got, err := c.Balance(context.Background(), tt.account)
		if (err != nil) != tt.wantErr || got.String() != tt.want {
			t.Errorf("Balance(%s) = %v, %v, want %v (error %v)", tt.account, got, err, tt.want, tt.wantErr)
		}
	}
}
