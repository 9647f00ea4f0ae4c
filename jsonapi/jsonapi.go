// Package jsonapi contains http utils to deal with remote JSON services.
package jsonapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
)

// DefaultTimeout is the timeout of the clients returned by NewClient.
const DefaultTimeout = 8 * time.Second

// ErrStatus is returned for non 2xx responses.
var ErrStatus = errors.New("unexpected http status")

// NewClient returns a client with DefaultTimeout.
func NewClient() *http.Client {
	return &http.Client{Timeout: DefaultTimeout}
}

// Get performs an HTTP GET request and unmarshals the JSON response into data.
func Get(ctx context.Context, client *http.Client, addr string, header http.Header, data any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	return do(client, req, header, data)
}

// Post performs an HTTP POST request with body encoded in JSON and unmarshals
// the JSON response into data.
func Post(ctx context.Context, client *http.Client, addr string, header http.Header, body, data any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, addr, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return do(client, req, header, data)
}

func do(client *http.Client, req *http.Request, header http.Header, data any) error {
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Accept", "application/json")
	if client == nil {
		client = NewClient()
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: cannot http %s %v%v: %v: %s", ErrStatus, req.Method, req.URL.Host, req.URL.Path, resp.Status, bytes.TrimSpace(snippet))
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return err
	}
	if err := json.Unmarshal(buf.Bytes(), data); err != nil {
		return fmt.Errorf("cannot decode %v%v: %w", req.URL.Host, req.URL.Path, err)
	}
	return nil
}

// Path evaluates a jsonpath expression on a decoded JSON object.
func Path(obj any, path string) (any, error) {
	v, err := jsonpath.Get(path, obj)
	if err != nil {
		return nil, fmt.Errorf("error parsing %q: %w", path, err)
	}
	// because jsonpath is never clear about whether it returns a list of 1 answer, or a single answer:
	// by this call I keep the first one if any
	if list, ok := v.([]any); ok {
		if len(list) == 0 {
			return nil, fmt.Errorf("error parsing %q: no value", path)
		}
		v = list[0]
	}
	return v, nil
}

// Float converts a decoded JSON value into a float. Some APIs return numbers
// as strings.
func Float(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case json.Number:
		return x.Float64()
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, fmt.Errorf("invalid number %q: %w", x, err)
		}
		return f, nil
	case nil:
		return 0, errors.New("null value")
	default:
		return 0, fmt.Errorf("not a number: %v", v)
	}
}

// PathFloat evaluates a jsonpath expression that must resolve to a number.
func PathFloat(obj any, path string) (float64, error) {
	v, err := Path(obj, path)
	if err != nil {
		return 0, err
	}
	f, err := Float(v)
	if err != nil {
		return 0, fmt.Errorf("error parsing %q: %w", path, err)
	}
	return f, nil
}
