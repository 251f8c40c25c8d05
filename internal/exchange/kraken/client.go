// Package kraken implements the exchange facades for the Kraken spot
// REST API. The wire representation (market names, currency codes, order
// tokens, response envelope) stays inside this package.
package kraken

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/coinharbor/cryptobot/internal/domain"
	"github.com/coinharbor/cryptobot/internal/monitor"
)

const defaultBaseURL = "https://api.kraken.com"

// PlatformName is the registry key for this venue.
const PlatformName = "kraken"

// ClientConfig carries the connector dependencies. HTTPClient is shared
// with the other facades of the run for connection reuse.
type ClientConfig struct {
	APIKey     string
	Secret     string
	BaseURL    string
	HTTPClient *http.Client
	Logger     *monitor.Logger
}

// Client is the low-level Kraken REST connector. It speaks the response
// envelope ({error: [...], result: ...}) and the private-call signing
// convention; everything above it works with decoded result payloads.
type Client struct {
	apiKey     string
	secret     string
	baseURL    string
	httpClient *http.Client
	logger     *monitor.Logger
	nonce      func() int64
}

// NewClient creates a Kraken REST connector.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = monitor.NewLogger("info")
	}

	return &Client{
		apiKey:     cfg.APIKey,
		secret:     cfg.Secret,
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     logger,
		nonce:      func() int64 { return time.Now().UnixNano() / int64(time.Millisecond) },
	}
}

// queryPublic performs a GET against /0/public/<method> and returns the
// decoded result payload.
func (c *Client) queryPublic(ctx context.Context, method string, params url.Values) (json.RawMessage, error) {
	requestURL := c.baseURL + "/0/public/" + method
	if len(params) > 0 {
		requestURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, &domain.InternalError{Err: err}
	}

	return c.do(method, req)
}

// queryPrivate performs a signed POST against /0/private/<method> and
// returns the decoded result payload.
func (c *Client) queryPrivate(ctx context.Context, method string, params url.Values) (json.RawMessage, error) {
	path := "/0/private/" + method

	if params == nil {
		params = url.Values{}
	}
	nonce := strconv.FormatInt(c.nonce(), 10)
	params.Set("nonce", nonce)
	postData := params.Encode()

	signature, err := sign(path, nonce, postData, c.secret)
	if err != nil {
		return nil, &domain.ConfigurationError{Reason: "invalid trading platform secret", Err: err}
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.baseURL+path, strings.NewReader(postData))
	if err != nil {
		return nil, &domain.InternalError{Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("API-Key", c.apiKey)
	req.Header.Set("API-Sign", signature)

	return c.do(method, req)
}

func (c *Client) do(method string, req *http.Request) (json.RawMessage, error) {
	c.logger.Debugf("kraken %s - %s %s", method, req.Method, req.URL.Path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.ExchangeError{Op: method, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.ExchangeError{Op: method, Err: err}
	}

	c.logger.Debugf("kraken %s - raw response: %s", method, monitor.Truncate(string(body), 512))

	if resp.StatusCode >= 300 {
		return nil, &domain.ExchangeError{
			Op:  method,
			Err: fmt.Errorf("unexpected response status %d: %s", resp.StatusCode, monitor.Truncate(string(body), 512)),
		}
	}

	var envelope response
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, &domain.ExchangeError{Op: method, Err: fmt.Errorf("malformed response envelope: %w", err)}
	}

	if len(envelope.Error) > 0 {
		return nil, &domain.ExchangeError{Op: method, Messages: envelope.Error}
	}

	return envelope.Result, nil
}
