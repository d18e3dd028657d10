package actions

import (
	"context"
	"errors"
	"fmt"
	"math/bits"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/hypersdk/chain"
	"github.com/ava-labs/hypersdk/codec"
	"github.com/ava-labs/hypersdk/state"

	"github.com/yapdotfun/predictionvm/consts"
	"github.com/yapdotfun/predictionvm/escrow"
	"github.com/yapdotfun/predictionvm/storage"
)

var _ chain.Action = (*Claim)(nil)

// Claim pays a winning position its share of the closed market's pool.
type Claim struct {
	MarketID ids.ID `serialize:"true" json:"marketId"`
}

func (*Claim) GetTypeID() uint8 {
	return consts.ClaimID
}

func (c *Claim) StateKeys(actor codec.Address, _ ids.ID) state.Keys {
	return positionStateKeys(c.MarketID, actor, state.Read|state.Write)
}

func (c *Claim) Execute(
	ctx context.Context,
	_ chain.Rules,
	mu state.Mutable,
	_ int64,
	actor codec.Address,
	_ ids.ID,
) ([]byte, error) {
	market, ledger, err := loadMarket(ctx, mu, c.MarketID)
	if err != nil {
		return nil, err
	}
	if market.Status != storage.MarketStatus_Closed {
		return nil, fmt.Errorf("%w: market %s is %s", ErrMarketNotClosed, c.MarketID, market.Status)
	}

	position, err := storage.GetVoter(ctx, mu, c.MarketID, actor)
	if errors.Is(err, storage.ErrVoterNotFound) {
		return nil, fmt.Errorf("%w: %s has no position in market %s", ErrNoWinningShares, actor, c.MarketID)
	}
	if err != nil {
		return nil, err
	}
	shares := position.Shares()
	if position.Vote != market.Answer || shares == 0 {
		return nil, fmt.Errorf("%w: %s in market %s", ErrNoWinningShares, actor, c.MarketID)
	}

	payout, err := proRata(shares, ledger.TotalRewards, ledger.Shares(market.Answer))
	if err != nil {
		return nil, fmt.Errorf("market %s: %w", c.MarketID, err)
	}
	if err := ledger.Payout(market.Answer, payout, shares); err != nil {
		return nil, fmt.Errorf("%w: ledger of market %s cannot pay %d", err, c.MarketID, payout)
	}
	position.Amount = 0

	if payout > 0 {
		if err := escrow.Release(ctx, mu, c.MarketID, actor, payout); err != nil {
			return nil, err
		}
	}
	if err := storage.SetVoter(ctx, mu, c.MarketID, actor, position); err != nil {
		return nil, err
	}
	if err := storage.SetLedger(ctx, mu, market.MetadataRef, ledger); err != nil {
		return nil, err
	}

	result := &ClaimResult{
		MarketID: c.MarketID,
		Claimant: actor,
		Shares:   shares,
		Payout:   payout,
	}
	return result.Bytes(), nil
}

// proRata returns shares*pool/total rounded down. The product is taken in 128
// bits; shares <= total keeps the quotient within pool.
func proRata(shares, pool, total uint64) (uint64, error) {
	if shares > total {
		return 0, fmt.Errorf("%w: %d shares exceed %d outstanding", ErrNotEnoughShares, shares, total)
	}
	hi, lo := bits.Mul64(shares, pool)
	quo, _ := bits.Div64(hi, lo, total)
	return quo, nil
}

func (*Claim) ComputeUnits(chain.Rules) uint64 {
	return ClaimComputeUnits
}

func (*Claim) ValidRange(chain.Rules) (int64, int64) {
	return -1, -1
}

func (c *Claim) Bytes() []byte {
	return packTyped(consts.ClaimID, c, consts.MaxActionSize)
}

func UnmarshalClaim(bytes []byte) (chain.Action, error) {
	c := &Claim{}
	if err := unpackTyped(bytes, consts.ClaimID, c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal Claim action: %w", err)
	}
	return c, nil
}
