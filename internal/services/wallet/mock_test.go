package wallet

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"

	"github.com/vadiminshakov/trex/internal/clients/bittrex"
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
