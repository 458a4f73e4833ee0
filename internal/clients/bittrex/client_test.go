package bittrex

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.UnixMilli(1700000000000)

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	c, err := NewClient("key", "secret",
		WithBaseURL(baseURL),
		WithClock(func() time.Time { return fixedNow }),
		WithTimeout(2*time.Second))
	require.NoError(t, err)
	return c
}

func TestNewClient_RequiresCredentials(t *testing.T) {
	_, err := NewClient("", "secret")
	assert.Error(t, err)
	_, err = NewClient("key", "")
	assert.Error(t, err)
}

func TestNewClient_TimeoutOptionOrder(t *testing.T) {
	t.Run("timeout before http client", func(t *testing.T) {
		h := resty.New()
		_, err := NewClient("key", "secret", WithTimeout(3*time.Second), WithHTTPClient(h))
		require.NoError(t, err)
		assert.Equal(t, 3*time.Second, h.GetClient().Timeout)
	})

	t.Run("timeout after http client", func(t *testing.T) {
		h := resty.New()
		_, err := NewClient("key", "secret", WithHTTPClient(h), WithTimeout(3*time.Second))
		require.NoError(t, err)
		assert.Equal(t, 3*time.Second, h.GetClient().Timeout)
	})

	t.Run("default timeout", func(t *testing.T) {
		h := resty.New()
		_, err := NewClient("key", "secret", WithHTTPClient(h))
		require.NoError(t, err)
		assert.Equal(t, defaultTimeout, h.GetClient().Timeout)
	})
}

func TestClient_Do_SignsRequest(t *testing.T) {
	var (
		gotHeaders http.Header
		gotBody    []byte
		gotMethod  string
		gotURI     string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		gotMethod = r.Method
		gotURI = r.URL.RequestURI()
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"order-1","status":"OPEN"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL+"/v3")

	var out struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	body := map[string]string{"marketSymbol": "BTC-EUR"}
	err := c.Do(context.Background(), MethodPost, "/orders", body, &out)
	require.NoError(t, err)

	assert.Equal(t, "order-1", out.ID)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/v3/orders", gotURI)
	assert.JSONEq(t, `{"marketSymbol":"BTC-EUR"}`, string(gotBody))

	expected := Sign("secret", fixedNow, srv.URL+"/v3/orders", MethodPost, gotBody)
	assert.Equal(t, "key", gotHeaders.Get(headerAPIKey))
	assert.Equal(t, "1700000000000", gotHeaders.Get(headerTimestamp))
	assert.Equal(t, ContentHash(gotBody), gotHeaders.Get(headerContentHash), "hash must cover transmitted bytes")
	assert.Equal(t, expected.Signature, gotHeaders.Get(headerSignature))
}

func TestClient_Do_GetHashesEmptyBody(t *testing.T) {
	var gotHeaders http.Header
	var gotURI string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		gotURI = r.URL.RequestURI()
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)

	var out []map[string]any
	require.NoError(t, c.Do(context.Background(), MethodGet, "/orders/closed?pageSize=10", nil, &out))

	assert.Equal(t, "/orders/closed?pageSize=10", gotURI)
	assert.Equal(t, emptyHash, gotHeaders.Get(headerContentHash))
	expected := Sign("secret", fixedNow, srv.URL+"/orders/closed?pageSize=10", MethodGet, nil)
	assert.Equal(t, expected.Signature, gotHeaders.Get(headerSignature))
}

func TestClient_Do_Errors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		expectCode string
		expectAPI  bool
	}{
		{name: "code in 200 response", status: http.StatusOK, body: `{"code":"INSUFFICIENT_FUNDS"}`, expectCode: "INSUFFICIENT_FUNDS", expectAPI: true},
		{name: "code in 400 response", status: http.StatusBadRequest, body: `{"code":"MARKET_DOES_NOT_EXIST","detail":"no such market"}`, expectCode: "MARKET_DOES_NOT_EXIST", expectAPI: true},
		{name: "non-2xx without code", status: http.StatusBadGateway, body: `bad gateway`, expectCode: "HTTP_502", expectAPI: true},
		{name: "malformed object", status: http.StatusOK, body: `{"id":`, expectAPI: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := newTestClient(t, srv.URL)
			var out map[string]any
			err := c.Do(context.Background(), MethodGet, "/markets/BTC-EUR/ticker", nil, &out)
			require.Error(t, err)

			var apiErr *APIError
			assert.Equal(t, tt.expectAPI, errors.As(err, &apiErr))
			if tt.expectAPI {
				assert.Equal(t, tt.expectCode, apiErr.Code)
				assert.Equal(t, tt.status, apiErr.StatusCode)
			}
		})
	}
}

func TestClient_Do_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := newTestClient(t, url)
	err := c.Do(context.Background(), MethodGet, "/balances", nil, nil)
	require.Error(t, err)

	var trErr *TransportError
	require.True(t, errors.As(err, &trErr))
	assert.Equal(t, MethodGet, trErr.Method)
	assert.Equal(t, url+"/balances", trErr.URL)
}

func TestClient_Do_NoRetry(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	err := c.Do(context.Background(), MethodGet, "/balances", nil, nil)
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestClient_Do_UnsupportedMethod(t *testing.T) {
	c := newTestClient(t, "http://127.0.0.1:1")
	err := c.Do(context.Background(), Method("PATCH"), "/orders/1", nil, nil)
	assert.EqualError(t, err, "unsupported method: PATCH")
}
