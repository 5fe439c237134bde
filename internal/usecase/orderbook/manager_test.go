package orderbook

import (
	"testing"

	orderv1 "github.com/hoanghiep2625/cex-be/internal/domain/order/v1"
	orderbookv1 "github.com/hoanghiep2625/cex-be/internal/domain/orderbook/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager(t *testing.T) {
	m := NewManager()

	_, err := m.Insert("BTCUSDT", createTestEntry("a1", orderv1.SideSell, "50000", "1"))
	assert.ErrorIs(t, err, orderbookv1.ErrUnknownSymbol)

	btc := m.Open("BTCUSDT")
	assert.Same(t, btc, m.Open("BTCUSDT"))
	m.Open("ETHUSDT")
	assert.Equal(t, []string{"BTCUSDT", "ETHUSDT"}, m.Symbols())

	_, err = m.Insert("BTCUSDT", createTestEntry("a1", orderv1.SideSell, "50000", "1"))
	require.NoError(t, err)
	_, err = m.Insert("ETHUSDT", createTestEntry("e1", orderv1.SideBuy, "3000", "2"))
	require.NoError(t, err)

	price, ok := m.BestPrice("BTCUSDT", orderv1.SideSell)
	require.True(t, ok)
	assert.Equal(t, "50000", price.String())

	_, ok = m.BestPrice("ETHUSDT", orderv1.SideSell)
	assert.False(t, ok)

	top, err := m.BestBidAsk("ETHUSDT")
	require.NoError(t, err)
	assert.Equal(t, "3000", top.BidPrice.Decimal.String())

	require.NoError(t, m.ReduceQuantity("BTCUSDT", orderv1.SideSell, d("50000"), "a1", d("0.25")))
	assert.Equal(t, "0.25", m.EntriesAt("BTCUSDT", orderv1.SideSell, d("50000"))[0].Remaining.String())

	require.NoError(t, m.Remove("BTCUSDT", orderv1.SideSell, d("50000"), "a1"))
	depth, err := m.DepthSnapshot("BTCUSDT", 10)
	require.NoError(t, err)
	assert.Empty(t, depth.Asks)

	_, err = m.DepthSnapshot("SOLUSDT", 10)
	assert.ErrorIs(t, err, orderbookv1.ErrUnknownSymbol)
}
