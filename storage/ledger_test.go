package storage

import (
	"context"
	"math"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/hypersdk/chain/chaintest"
	"github.com/stretchr/testify/require"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

func TestMarketLedger_DepositWithdraw(t *testing.T) {
	require := require.New(t)
	ledger := &MarketLedger{}

	require.NoError(ledger.Deposit(true, 3_000, 3))
	require.NoError(ledger.Deposit(false, 1_500, 1))
	require.Equal(&MarketLedger{
		TotalYesAssets: 3_000,
		TotalNoAssets:  1_500,
		TotalYesShares: 3,
		TotalNoShares:  1,
		TotalRewards:   4_500,
	}, ledger)
	require.Equal(uint64(3), ledger.Shares(true))
	require.Equal(uint64(1), ledger.Shares(false))

	require.NoError(ledger.Withdraw(true, 2_000, 2))
	require.Equal(ledger.TotalYesAssets+ledger.TotalNoAssets, ledger.TotalRewards)
	require.Equal(uint64(1), ledger.TotalYesShares)
}

func TestMarketLedger_FailureLeavesRecordUntouched(t *testing.T) {
	require := require.New(t)
	ledger := &MarketLedger{TotalYesAssets: 1, TotalRewards: math.MaxUint64}
	before := *ledger

	require.ErrorIs(ledger.Deposit(true, 1, 1), smath.ErrOverflow)
	require.Equal(before, *ledger)

	require.ErrorIs(ledger.Withdraw(true, 1, 1), smath.ErrUnderflow)
	require.Equal(before, *ledger)

	require.ErrorIs(ledger.Payout(false, 1, 1), smath.ErrUnderflow)
	require.Equal(before, *ledger)
}

func TestMarketLedger_Payout(t *testing.T) {
	require := require.New(t)
	ledger := &MarketLedger{TotalNoAssets: 2_000, TotalNoShares: 2, TotalYesAssets: 1_000, TotalYesShares: 1, TotalRewards: 3_000}

	require.NoError(ledger.Payout(false, 1_500, 1))
	require.Equal(&MarketLedger{
		TotalNoAssets:  2_000,
		TotalNoShares:  1,
		TotalYesAssets: 1_000,
		TotalYesShares: 1,
		TotalRewards:   1_500,
	}, ledger)
}

func TestLedger_Store(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	st := chaintest.NewInMemoryStore()
	ledgerID := LedgerID(ids.GenerateTestID())

	_, err := GetLedger(ctx, st, ledgerID)
	require.ErrorIs(err, ErrLedgerNotFound)

	require.NoError(InsertLedger(ctx, st, ledgerID, &MarketLedger{}))
	require.ErrorIs(InsertLedger(ctx, st, ledgerID, &MarketLedger{TotalRewards: 1}), ErrSlotOccupied)

	updated := &MarketLedger{TotalYesAssets: 7, TotalYesShares: 0, TotalRewards: 7}
	require.NoError(SetLedger(ctx, st, ledgerID, updated))
	got, err := GetLedger(ctx, st, ledgerID)
	require.NoError(err)
	require.Equal(updated, got)
}
