package genesis

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/hypersdk/chain/chaintest"
	"github.com/ava-labs/hypersdk/codec"
	"github.com/stretchr/testify/require"

	"github.com/yapdotfun/predictionvm/controller"
	"github.com/yapdotfun/predictionvm/storage"
)

func TestAddressRoundTrip(t *testing.T) {
	require := require.New(t)
	addr := codec.CreateAddress(0, ids.GenerateTestID())

	encoded, err := FormatAddress(addr)
	require.NoError(err)
	require.Contains(encoded, "pred1")

	parsed, err := ParseAddress(encoded)
	require.NoError(err)
	require.Equal(addr, parsed)

	parsed, err = ParseAddress(addr.String())
	require.NoError(err)
	require.Equal(addr, parsed)
}

func TestParseAddress_Invalid(t *testing.T) {
	_, err := ParseAddress("pred1notbech32")
	require.Error(t, err)
	_, err = ParseAddress("garbage")
	require.Error(t, err)
}

func TestNew_FundsAllocations(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	alice := codec.CreateAddress(0, ids.GenerateTestID())
	bob := codec.CreateAddress(0, ids.GenerateTestID())
	aliceStr, err := FormatAddress(alice)
	require.NoError(err)

	g, err := New([]Allocation{
		{Address: aliceStr, Balance: 10_000},
		{Address: bob.String(), Balance: 5},
	})
	require.NoError(err)
	require.Len(g.CustomAllocation, 2)

	mu := chaintest.NewInMemoryStore()
	require.NoError(g.InitializeState(ctx, trace.Noop, mu, controller.New()))

	bal, err := storage.GetBalance(ctx, mu, alice)
	require.NoError(err)
	require.Equal(uint64(10_000), bal)
	bal, err = storage.GetBalance(ctx, mu, bob)
	require.NoError(err)
	require.Equal(uint64(5), bal)

	_, err = New([]Allocation{{Address: aliceStr, Balance: 1}, {Address: alice.String(), Balance: 2}})
	require.ErrorIs(err, ErrDuplicateAddress)
}
