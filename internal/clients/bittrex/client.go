// Package bittrex implements the signed request protocol of the Bittrex v3 REST API.
package bittrex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	DefaultBaseURL = "https://api.bittrex.com/v3"
	defaultTimeout = 30 * time.Second

	headerAPIKey      = "Api-Key"
	headerTimestamp   = "Api-Timestamp"
	headerContentHash = "Api-Content-Hash"
	headerSignature   = "Api-Signature"
)

// Method HTTP method supported by the API.
type Method string

const (
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodDelete Method = "DELETE"
)

// Client signs and sends requests to the exchange. It never retries.
type Client struct {
	apiKey    string
	apiSecret string
	baseURL   string
	http      *resty.Client
	timeout   time.Duration
	now       func() time.Time
	logger    *zap.Logger
}

// Option configures the Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(u, "/")
	}
}

// WithHTTPClient sets the underlying resty client.
func WithHTTPClient(h *resty.Client) Option {
	return func(c *Client) {
		c.http = h
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithClock sets the time source used for request timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient creates a signed API client. Both key and secret are required.
func NewClient(apiKey, apiSecret string, opts ...Option) (*Client, error) {
	if apiKey == "" || apiSecret == "" {
		return nil, errors.New("bittrex api key and secret are required")
	}

	c := &Client{
		apiKey:    apiKey,
		apiSecret: apiSecret,
		baseURL:   DefaultBaseURL,
		http:      resty.New(),
		timeout:   defaultTimeout,
		now:       time.Now,
		logger:    zap.NewNop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	// failures go straight back to the caller
	c.http.SetTimeout(c.timeout).SetRetryCount(0)

	return c, nil
}

// Do sends a signed request to path (relative to the base URL, query included).
// body, when not nil, is JSON encoded; the encoded bytes are both hashed and sent.
// A response carrying a "code" field is returned as *APIError, a failed round trip
// as *TransportError. On success the response is decoded into out, if given.
func (c *Client) Do(ctx context.Context, method Method, path string, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "failed to marshal request body")
		}
	}

	fullURL := c.baseURL + path
	sig := Sign(c.apiSecret, c.now(), fullURL, method, payload)

	req := c.http.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetHeader(headerAPIKey, c.apiKey).
		SetHeader(headerTimestamp, sig.Timestamp).
		SetHeader(headerContentHash, sig.ContentHash).
		SetHeader(headerSignature, sig.Signature)
	if payload != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(payload)
	}

	var (
		resp *resty.Response
		err  error
	)
	switch method {
	case MethodGet:
		resp, err = req.Get(fullURL)
	case MethodPost:
		resp, err = req.Post(fullURL)
	case MethodDelete:
		resp, err = req.Delete(fullURL)
	default:
		return fmt.Errorf("unsupported method: %s", method)
	}
	if err != nil {
		return &TransportError{Method: method, URL: fullURL, Err: err}
	}

	c.logger.Debug("bittrex request",
		zap.String("method", string(method)),
		zap.String("url", fullURL),
		zap.Int("status", resp.StatusCode()))

	return decodeResponse(resp.StatusCode(), resp.Body(), out)
}

func decodeResponse(status int, raw []byte, out any) error {
	trimmed := bytes.TrimSpace(raw)

	if len(trimmed) > 0 && trimmed[0] == '{' {
		var probe struct {
			Code   string `json:"code"`
			Detail string `json:"detail"`
		}
		if err := json.Unmarshal(trimmed, &probe); err != nil {
			return errors.Wrapf(err, "malformed response (status %d)", status)
		}
		if probe.Code != "" {
			return &APIError{StatusCode: status, Code: probe.Code, Detail: probe.Detail}
		}
	}

	if status < 200 || status > 299 {
		return &APIError{StatusCode: status, Code: fmt.Sprintf("HTTP_%d", status), Detail: string(trimmed)}
	}

	if out == nil || len(trimmed) == 0 {
		return nil
	}

	if err := json.Unmarshal(trimmed, out); err != nil {
		return errors.Wrapf(err, "malformed response (status %d)", status)
	}

	return nil
}
