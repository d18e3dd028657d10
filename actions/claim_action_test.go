package actions_test

import (
	"context"
	"math"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/hypersdk/codec"
	"github.com/ava-labs/hypersdk/state"
	"github.com/stretchr/testify/require"

	smath "github.com/ava-labs/avalanchego/utils/math"

	"github.com/yapdotfun/predictionvm/actions"
	"github.com/yapdotfun/predictionvm/storage"
)

func claim(mu state.Mutable, actor codec.Address, marketID ids.ID) ([]byte, error) {
	return (&actions.Claim{MarketID: marketID}).Execute(
		context.Background(), nil, mu, testTimestamp, actor, ids.GenerateTestID(),
	)
}

func TestClaim_PaysWinnersProRata(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	mu := newStore()
	creator := newAddress()
	alice, bob, carol := newAddress(), newAddress(), newAddress()
	marketID := createMarket(t, mu, creator, "pro rata")
	fund(t, mu, alice, 3_000)
	fund(t, mu, bob, 1_500)
	fund(t, mu, carol, 2_000)

	_, err := buy(mu, alice, marketID, true, 3_000)
	require.NoError(err)
	_, err = buy(mu, bob, marketID, true, 1_500)
	require.NoError(err)
	_, err = buy(mu, carol, marketID, false, 2_000)
	require.NoError(err)

	_, err = claim(mu, alice, marketID)
	require.ErrorIs(err, actions.ErrMarketNotClosed)

	_, err = closeMarket(mu, creator, marketID, true)
	require.NoError(err)

	output, err := claim(mu, alice, marketID)
	require.NoError(err)
	typed, err := actions.UnmarshalClaimResult(output)
	require.NoError(err)
	require.Equal(&actions.ClaimResult{MarketID: marketID, Claimant: alice, Shares: 3, Payout: 4_875}, typed)
	requireBalanced(t, mu, marketID)

	output, err = claim(mu, bob, marketID)
	require.NoError(err)
	typed, err = actions.UnmarshalClaimResult(output)
	require.NoError(err)
	require.Equal(uint64(1_625), typed.(*actions.ClaimResult).Payout)

	require.Equal(uint64(4_875), getBalance(t, mu, alice))
	require.Equal(uint64(1_625), getBalance(t, mu, bob))
	require.Zero(getBalance(t, mu, carol))

	// The pool is drained; losing side assets remain as a record.
	ledger := getLedger(t, mu, marketID)
	require.Zero(ledger.TotalRewards)
	require.Zero(ledger.TotalYesShares)
	require.Equal(uint64(2), ledger.TotalNoShares)
	require.Equal(uint64(2_000), ledger.TotalNoAssets)
	requireBalanced(t, mu, marketID)

	position, err := storage.GetVoter(ctx, mu, marketID, alice)
	require.NoError(err)
	require.Zero(position.Amount)
}

func TestClaim_Failures(t *testing.T) {
	require := require.New(t)
	mu := newStore()
	creator, winner, loser := newAddress(), newAddress(), newAddress()
	marketID := createMarket(t, mu, creator, "claim failures")
	fund(t, mu, winner, 1_000)
	fund(t, mu, loser, 1_000)

	_, err := buy(mu, winner, marketID, false, 1_000)
	require.NoError(err)
	_, err = buy(mu, loser, marketID, true, 1_000)
	require.NoError(err)
	_, err = closeMarket(mu, creator, marketID, false)
	require.NoError(err)

	_, err = claim(mu, creator, ids.GenerateTestID())
	require.ErrorIs(err, actions.ErrMarketDoesNotExist)

	_, err = claim(mu, loser, marketID)
	require.ErrorIs(err, actions.ErrNoWinningShares)

	_, err = claim(mu, newAddress(), marketID)
	require.ErrorIs(err, actions.ErrNoWinningShares)

	_, err = claim(mu, winner, marketID)
	require.NoError(err)
	require.Equal(uint64(2_000), getBalance(t, mu, winner))

	_, err = claim(mu, winner, marketID)
	require.ErrorIs(err, actions.ErrNoWinningShares)
	require.Equal(uint64(2_000), getBalance(t, mu, winner))
	requireBalanced(t, mu, marketID)
}

func TestClaim_PayoutOverflowWritesNothing(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	mu := newStore()
	creator, winner := newAddress(), newAddress()
	marketID := createMarket(t, mu, creator, "overflow on payout")
	fund(t, mu, winner, 1_000)
	_, err := buy(mu, winner, marketID, true, 1_000)
	require.NoError(err)
	_, err = closeMarket(mu, creator, marketID, true)
	require.NoError(err)
	fund(t, mu, winner, math.MaxUint64)
	before := getLedger(t, mu, marketID)

	_, err = claim(mu, winner, marketID)
	require.ErrorIs(err, smath.ErrOverflow)

	position, err := storage.GetVoter(ctx, mu, marketID, winner)
	require.NoError(err)
	require.Equal(uint64(1_000), position.Amount)
	require.Equal(before, getLedger(t, mu, marketID))
	requireBalanced(t, mu, marketID)
}
