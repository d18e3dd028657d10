package actions_test

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"

	"github.com/yapdotfun/predictionvm/actions"
	"github.com/yapdotfun/predictionvm/consts"
	"github.com/yapdotfun/predictionvm/storage"
)

func TestClose_Success(t *testing.T) {
	for _, answer := range []bool{true, false} {
		t.Run(consts.OutcomeToString(answer), func(t *testing.T) {
			require := require.New(t)
			ctx := context.Background()
			mu := newStore()
			creator := newAddress()
			marketID := createMarket(t, mu, creator, "close me")

			output, err := closeMarket(mu, creator, marketID, answer)
			require.NoError(err)

			typed, err := actions.UnmarshalMarketClosedEvent(output)
			require.NoError(err)
			require.Equal(&actions.MarketClosedEvent{
				Message:     "Market closed",
				MarketID:    marketID,
				MetadataID:  storage.LedgerID(marketID),
				Initializer: creator,
				Answer:      answer,
			}, typed)

			market, err := storage.GetMarket(ctx, mu, marketID)
			require.NoError(err)
			require.Equal(storage.MarketStatus_Closed, market.Status)
			require.Equal(answer, market.Answer)
			require.Equal(testTimestamp, market.ClosedAt)
		})
	}
}

func TestClose_DelegatedResolver(t *testing.T) {
	require := require.New(t)
	mu := newStore()
	creator, resolver := newAddress(), newAddress()
	action := &actions.CreateMarket{Description: "delegated", Resolver: resolver}
	_, err := action.Execute(context.Background(), nil, mu, testTimestamp, creator, ids.GenerateTestID())
	require.NoError(err)
	marketID := storage.MarketID(action.Description, creator)

	_, err = closeMarket(mu, creator, marketID, true)
	require.ErrorIs(err, actions.ErrNotOracle)

	_, err = closeMarket(mu, resolver, marketID, true)
	require.NoError(err)
}

func TestClose_Failures(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	mu := newStore()
	creator := newAddress()
	marketID := createMarket(t, mu, creator, "close failures")

	_, err := closeMarket(mu, creator, ids.GenerateTestID(), true)
	require.ErrorIs(err, actions.ErrMarketDoesNotExist)

	_, err = closeMarket(mu, newAddress(), marketID, true)
	require.ErrorIs(err, actions.ErrNotOracle)

	_, err = closeMarket(mu, creator, marketID, false)
	require.NoError(err)

	// A second close leaves the first answer in place.
	_, err = closeMarket(mu, creator, marketID, true)
	require.ErrorIs(err, actions.ErrMarketClosed)

	market, err := storage.GetMarket(ctx, mu, marketID)
	require.NoError(err)
	require.False(market.Answer)
}

func TestClose_StateKeys(t *testing.T) {
	marketID := ids.GenerateTestID()
	keys := (&actions.Close{MarketID: marketID}).StateKeys(newAddress(), ids.Empty)
	require.Len(t, keys, 1)
	require.Contains(t, keys, string(storage.MarketKey(marketID)))
}
