package domain

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_SameCurrencySkipsLookup(t *testing.T) {
	invoked := false
	lookup := func(ctx context.Context, from, to string) (float64, error) {
		invoked = true
		return 0, errors.New("must not be called")
	}

	amount, err := Normalize(context.Background(), 60, "USD", "USD", lookup)
	require.NoError(t, err)
	assert.Equal(t, 60.0, amount)
	assert.False(t, invoked)
}

func TestNormalize_ConvertsWithDisplayToBaseRate(t *testing.T) {
	lookup := func(ctx context.Context, from, to string) (float64, error) {
		// 查询方向沿用历史行为：display -> base
		assert.Equal(t, "EUR", from)
		assert.Equal(t, "USD", to)
		return 0.5, nil
	}

	amount, err := Normalize(context.Background(), 60, "USD", "EUR", lookup)
	require.NoError(t, err)
	assert.Equal(t, 30.0, amount)
}

func TestNormalize_LookupFailureReturnsOriginalAmount(t *testing.T) {
	lookup := func(ctx context.Context, from, to string) (float64, error) {
		return 0, errors.New("rates service is down")
	}

	amount, err := Normalize(context.Background(), 60, "USD", "EUR", lookup)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCurrencyLookup))
	// 调用方降级时直接使用返回的未换算金额
	assert.Equal(t, 60.0, amount)
}
