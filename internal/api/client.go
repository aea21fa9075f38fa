package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jmespath/go-jmespath"

	"github.com/nikbrunner/starter/internal/log"
)

// DefaultBaseURL is the gateway every endpoint is resolved against.
const DefaultBaseURL = "https://gateway.marvel.com"

var (
	// ErrParse covers unsupported methods and responses without a data.results array.
	ErrParse  = errors.New("parse error")
	ErrStatus = errors.New("unexpected response status")
	ErrNoKeys = errors.New("public and private API keys must be set")
)

// resultsPath locates the record array inside the response envelope.
var resultsPath = jmespath.MustCompile("data.results")

// Method is an HTTP method understood by Fetch.
type Method int

const (
	MethodGet Method = iota
	MethodPost
)

func (m Method) String() string {
	switch m {
	case MethodGet:
		return http.MethodGet
	case MethodPost:
		return http.MethodPost
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// Client performs signed requests against the gateway.
type Client struct {
	baseURL    *url.URL
	signer     Signer
	httpClient *http.Client
	now        func() time.Time
}

// ClientParams holds parameters for creating a new Client.
type ClientParams struct {
	BaseURL    string // defaults to DefaultBaseURL
	PublicKey  string
	PrivateKey string
	Timeout    time.Duration // 0 = transport default
	HTTPClient *http.Client  // optional, overrides Timeout
	Now        func() time.Time
}

// NewClient creates a new Client.
// Returns ErrNoKeys if either key is empty.
func NewClient(params ClientParams) (*Client, error) {
	if params.PublicKey == "" || params.PrivateKey == "" {
		return nil, ErrNoKeys
	}

	base := params.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	baseURL, err := url.Parse(strings.TrimRight(base, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}

	httpClient := params.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: params.Timeout}
	}

	now := params.Now
	if now == nil {
		now = time.Now
	}

	return &Client{
		baseURL:    baseURL,
		signer:     Signer{PublicKey: params.PublicKey, PrivateKey: params.PrivateKey},
		httpClient: httpClient,
		now:        now,
	}, nil
}

// Fetch requests endpoint and decodes every element of data.results with dec.
// Elements that fail to decode are dropped; the rest are returned in order.
// Only MethodGet is supported, any other method fails with ErrParse without
// touching the network.
func Fetch[T any](ctx context.Context, c *Client, dec Decoder[T], endpoint Endpoint, method Method, params url.Values) ([]T, error) {
	if method != MethodGet {
		return nil, fmt.Errorf("%s %s: %w", method, endpoint.Path(), ErrParse)
	}

	body, err := c.get(ctx, endpoint, params)
	if err != nil {
		return nil, err
	}

	elements, err := extractResults(body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, endpoint.Path(), err)
	}

	records := make([]T, 0, len(elements))
	dropped := 0
	for _, raw := range elements {
		record, err := dec.Decode(raw)
		if err != nil {
			dropped++
			continue
		}
		records = append(records, record)
	}

	if dropped > 0 {
		log.WarningLog.Printf("%s: dropped %d malformed %s records", endpoint.Path(), dropped, dec.Kind)
	}
	return records, nil
}

// FetchAsync runs Fetch on its own goroutine and settles the returned promise with the outcome.
func FetchAsync[T any](ctx context.Context, c *Client, dec Decoder[T], endpoint Endpoint, method Method, params url.Values) *Promise[[]T] {
	p := NewPromise[[]T]()
	go func() {
		records, err := Fetch(ctx, c, dec, endpoint, method, params)
		if err != nil {
			p.Reject(err)
			return
		}
		p.Resolve(records)
	}()
	return p
}

// RequestURL builds the signed URL for endpoint.
func (c *Client) RequestURL(endpoint Endpoint, params url.Values) string {
	u := *c.baseURL
	u.Path = c.baseURL.Path + endpoint.Path()
	u.RawQuery = c.parameters(params).Encode()
	return u.String()
}

// parameters merges the auth triple with caller params; caller params win on collision.
func (c *Client) parameters(params url.Values) url.Values {
	values := c.signer.Sign(c.now())
	for key, vals := range params {
		values[key] = append([]string(nil), vals...)
	}
	return values
}

func (c *Client) get(ctx context.Context, endpoint Endpoint, params url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.RequestURL(endpoint, params), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", endpoint.Path(), err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	log.InfoLog.Printf("GET %s -> %d (%d bytes, %s)", endpoint.Path(), resp.StatusCode, len(body), time.Since(start).Round(time.Millisecond))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d: %s", ErrStatus, resp.StatusCode, truncate(string(body), 200))
	}
	return body, nil
}

// extractResults pulls data.results out of the envelope as raw JSON elements.
func extractResults(body []byte) ([]json.RawMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var envelope interface{}
	if err := dec.Decode(&envelope); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON: %v", ErrParse, err)
	}

	found, err := resultsPath.Search(envelope)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	results, ok := found.([]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: missing data.results array", ErrParse)
	}

	elements := make([]json.RawMessage, 0, len(results))
	for _, r := range results {
		raw, err := json.Marshal(r)
		if err != nil {
			continue
		}
		elements = append(elements, raw)
	}
	return elements, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
