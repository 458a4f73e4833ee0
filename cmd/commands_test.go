package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vadiminshakov/trex/internal/clients/bittrex"
	"github.com/vadiminshakov/trex/internal/domain"
)

func TestCreateFlags(t *testing.T) {
	tests := []struct {
		name          string
		args          []string
		wantDirection domain.Direction
		wantErr       bool
	}{
		{name: "direction defaults to buy", args: []string{"--pair", "BTC-EUR", "--spend", "100"}, wantDirection: domain.DirectionBuy},
		{name: "explicit sell", args: []string{"--pair", "BTC-EUR", "--direction", "sell", "--quantity", "0.1"}, wantDirection: domain.DirectionSell},
		{name: "invalid direction", args: []string{"--pair", "BTC-EUR", "--direction", "hold", "--spend", "100"}, wantErr: true},
		{name: "invalid spend", args: []string{"--pair", "BTC-EUR", "--spend", "lots"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f createFlags
			require.NoError(t, newCreateFlagSet(&f).Parse(tt.args))

			params, err := f.params()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantDirection, params.Direction)
			assert.Equal(t, domain.Pair{Target: "BTC", Base: "EUR"}, params.Pair)
			assert.True(t, params.Limit.IsZero())
			assert.False(t, params.Confirm)
		})
	}
}

func TestErrorMessage_APIErrorCodeOnce(t *testing.T) {
	err := &bittrex.APIError{StatusCode: 409, Code: "INSUFFICIENT_FUNDS", Detail: "not enough EUR"}

	msg := errorMessage(err)
	assert.Equal(t, 1, strings.Count(msg, "INSUFFICIENT_FUNDS"), msg)
	assert.Contains(t, msg, "not enough EUR")
}
