package actions_test

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/hypersdk/chain/chaintest"
	"github.com/ava-labs/hypersdk/codec"
	"github.com/ava-labs/hypersdk/state"
	"github.com/stretchr/testify/require"

	"github.com/yapdotfun/predictionvm/actions"
	"github.com/yapdotfun/predictionvm/escrow"
	"github.com/yapdotfun/predictionvm/storage"
)

const testTimestamp int64 = 1_700_000_000_000

func newAddress() codec.Address {
	return codec.CreateAddress(0, ids.GenerateTestID())
}

// fund credits addr with amount base units.
func fund(t *testing.T, mu state.Mutable, addr codec.Address, amount uint64) {
	t.Helper()
	require.NoError(t, storage.SetBalance(context.Background(), mu, addr, amount))
}

// createMarket opens a market owned by creator and returns its ID.
func createMarket(t *testing.T, mu state.Mutable, creator codec.Address, description string) ids.ID {
	t.Helper()
	_, err := (&actions.CreateMarket{Description: description}).Execute(
		context.Background(), nil, mu, testTimestamp, creator, ids.GenerateTestID(),
	)
	require.NoError(t, err)
	return storage.MarketID(description, creator)
}

func buy(mu state.Mutable, actor codec.Address, marketID ids.ID, side bool, amount uint64) ([]byte, error) {
	return (&actions.Buy{MarketID: marketID, Side: side, Amount: amount}).Execute(
		context.Background(), nil, mu, testTimestamp, actor, ids.GenerateTestID(),
	)
}

func closeMarket(mu state.Mutable, actor codec.Address, marketID ids.ID, answer bool) ([]byte, error) {
	return (&actions.Close{MarketID: marketID, Answer: answer}).Execute(
		context.Background(), nil, mu, testTimestamp, actor, ids.GenerateTestID(),
	)
}

func getLedger(t *testing.T, mu state.Immutable, marketID ids.ID) *storage.MarketLedger {
	t.Helper()
	ledger, err := storage.GetLedger(context.Background(), mu, storage.LedgerID(marketID))
	require.NoError(t, err)
	return ledger
}

func getBalance(t *testing.T, mu state.Immutable, addr codec.Address) uint64 {
	t.Helper()
	bal, err := storage.GetBalance(context.Background(), mu, addr)
	require.NoError(t, err)
	return bal
}

// requireBalanced checks that custody matches the pooled rewards.
func requireBalanced(t *testing.T, mu state.Immutable, marketID ids.ID) {
	t.Helper()
	held, err := escrow.GetCustody(context.Background(), mu, marketID)
	require.NoError(t, err)
	require.Equal(t, getLedger(t, mu, marketID).TotalRewards, held)
}

func newStore() state.Mutable {
	return chaintest.NewInMemoryStore()
}
