package pricer

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vadiminshakov/trex/internal/clients/bittrex"
	"github.com/vadiminshakov/trex/internal/domain"
)

type mockRequester struct {
	mock.Mock
}

func (m *mockRequester) Do(ctx context.Context, method bittrex.Method, path string, body, out any) error {
	args := m.Called(ctx, method, path, body)
	if raw, ok := args.Get(0).(string); ok && raw != "" {
		if err := json.Unmarshal([]byte(raw), out); err != nil {
			return err
		}
	}
	return args.Error(1)
}

func TestBittrexPricer_GetTicker(t *testing.T) {
	client := &mockRequester{}
	client.On("Do", mock.Anything, bittrex.MethodGet, "/markets/BTC-EUR/ticker", nil).
		Return(`{"symbol":"BTC-EUR","lastTradeRate":"19990.5","bidRate":"19980.12345","askRate":"20000"}`, nil)

	p := NewBittrexPricer(client, nil)
	ticker, err := p.GetTicker(context.Background(), domain.Pair{Target: "BTC", Base: "EUR"})
	require.NoError(t, err)

	assert.Equal(t, "BTC-EUR", ticker.Symbol)
	assert.True(t, ticker.AskRate.Equal(decimal.NewFromInt(20000)))
	assert.Equal(t, "19980.12345", ticker.BidRate.String())
	assert.Equal(t, "19.8765", ticker.Spread().String())
	client.AssertExpectations(t)
}

func TestBittrexPricer_GetPrice(t *testing.T) {
	pair := domain.Pair{Target: "BTC", Base: "EUR"}

	t.Run("returns ask rate", func(t *testing.T) {
		client := &mockRequester{}
		client.On("Do", mock.Anything, bittrex.MethodGet, "/markets/BTC-EUR/ticker", nil).
			Return(`{"symbol":"BTC-EUR","bidRate":"19000","askRate":"20000"}`, nil)

		price, err := NewBittrexPricer(client, nil).GetPrice(context.Background(), pair)
		require.NoError(t, err)
		assert.True(t, price.Equal(decimal.NewFromInt(20000)))
	})

	t.Run("api error is returned", func(t *testing.T) {
		client := &mockRequester{}
		client.On("Do", mock.Anything, bittrex.MethodGet, "/markets/BTC-EUR/ticker", nil).
			Return("", &bittrex.APIError{StatusCode: 404, Code: "MARKET_DOES_NOT_EXIST"})

		price, err := NewBittrexPricer(client, nil).GetPrice(context.Background(), pair)
		require.Error(t, err)
		var apiErr *bittrex.APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, "MARKET_DOES_NOT_EXIST", apiErr.Code)
		assert.True(t, price.IsZero())
	})

	t.Run("zero ask rate is rejected", func(t *testing.T) {
		client := &mockRequester{}
		client.On("Do", mock.Anything, bittrex.MethodGet, "/markets/BTC-EUR/ticker", nil).
			Return(`{"symbol":"BTC-EUR","bidRate":"0","askRate":"0"}`, nil)

		_, err := NewBittrexPricer(client, nil).GetPrice(context.Background(), pair)
		assert.Error(t, err)
	})
}
