package jsonapi

import (
	"bufio"
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httputil"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultCacheTTL is the lifetime of cached responses.
const DefaultCacheTTL = 5 * time.Minute

// Cache is an http.RoundTripper that keeps successful GET responses in redis.
type Cache struct {
	Base  http.RoundTripper // nil means http.DefaultTransport
	Redis *redis.Client
	TTL   time.Duration // 0 means DefaultCacheTTL
}

// NewCachingClient returns a client with DefaultTimeout that caches GET responses in rdb.
func NewCachingClient(rdb *redis.Client, ttl time.Duration) *http.Client {
	return &http.Client{
		Timeout:   DefaultTimeout,
		Transport: &Cache{Redis: rdb, TTL: ttl},
	}
}

func (c *Cache) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Method != http.MethodGet {
		return c.roundTrip(req)
	}
	key := cacheKey(req)
	if resp, err := c.get(req.Context(), key, req); err == nil {
		return resp, nil
	} else if !errors.Is(err, redis.Nil) {
		log.Printf("cache read err (ignored): %v", err)
	}

	resp, err := c.roundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 300 {
		return resp, nil
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, err
	}
	resp.Body = io.NopCloser(bytes.NewReader(body))
	if rejected(body) {
		return resp, nil
	}
	// otherwise attempt to store it in cache
	if err := c.put(req.Context(), key, resp); err != nil {
		log.Printf("cache write err (ignored): %v", err)
	}
	return resp, nil
}

func (c *Cache) roundTrip(req *http.Request) (*http.Response, error) {
	base := c.Base
	if base == nil {
		base = http.DefaultTransport
	}
	resp, err := base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	log.Printf("%v %v%v %v", req.Method, req.URL.Host, req.URL.Path, resp.Status)
	return resp, nil
}

// rejected reports whether a successful response carries an API error that
// must not be served again: etherscan "status":"0", coinmarketcap non zero
// status.error_code, or an "error" member. Payloads that are not JSON are
// rejected too.
func rejected(body []byte) bool {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return true
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return false
	}
	switch status := obj["status"].(type) {
	case string:
		if status == "0" {
			return true
		}
	case map[string]any:
		if code, err := Float(status["error_code"]); err == nil && code != 0 {
			return true
		}
	}
	if e, ok := obj["error"]; ok && e != nil && e != "" {
		return true
	}
	return false
}

// cacheKey identifies a request. Credentials sent as headers are part of the
// key, so that two accounts never share a response.
func cacheKey(req *http.Request) string {
	h := sha1.New()
	fmt.Fprintf(h, "%s %s", req.Method, req.URL.String())
	for _, name := range []string{"X-CMC_PRO_API_KEY", "x-access-token", "X-MBX-APIKEY"} {
		fmt.Fprintf(h, " %s", req.Header.Get(name))
	}
	return fmt.Sprintf("cfo:http:%x", h.Sum(nil))
}

func (c *Cache) get(ctx context.Context, key string, req *http.Request) (*http.Response, error) {
	content, err := c.Redis.Get(ctx, key).Bytes()
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewReader(content)), req)
}

func (c *Cache) put(ctx context.Context, key string, resp *http.Response) error {
	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}
	ttl := c.TTL
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return c.Redis.Set(ctx, key, content, ttl).Err()
}
