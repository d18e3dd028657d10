package controller

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/hypersdk/chain/chaintest"
	"github.com/ava-labs/hypersdk/codec"
	"github.com/ava-labs/hypersdk/state"
	"github.com/stretchr/testify/require"

	"github.com/yapdotfun/predictionvm/storage"
)

func TestBalanceHandler(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	mu := chaintest.NewInMemoryStore()
	addr := codec.CreateAddress(0, ids.GenerateTestID())
	c := New()

	keys := c.SponsorStateKeys(addr)
	require.Equal(state.Read|state.Write, keys[string(storage.BalanceKey(addr))])

	require.ErrorIs(c.CanDeduct(ctx, addr, mu, 1), storage.ErrInsufficientBalance)
	require.NoError(c.AddBalance(ctx, addr, mu, 500))
	require.NoError(c.CanDeduct(ctx, addr, mu, 500))
	require.NoError(c.Deduct(ctx, addr, mu, 200))

	bal, err := c.GetBalance(ctx, addr, mu)
	require.NoError(err)
	require.Equal(uint64(300), bal)
}
