package actions

import (
	"context"
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/hypersdk/chain"
	"github.com/ava-labs/hypersdk/codec"
	"github.com/ava-labs/hypersdk/state"

	"github.com/yapdotfun/predictionvm/consts"
	"github.com/yapdotfun/predictionvm/escrow"
	"github.com/yapdotfun/predictionvm/storage"
)

var _ chain.Action = (*Sell)(nil)

// Sell redeems whole shares of the actor's position at SharePrice each while
// the market is still open.
type Sell struct {
	MarketID ids.ID `serialize:"true" json:"marketId"`
	Side     bool   `serialize:"true" json:"bet"`
	Shares   uint64 `serialize:"true" json:"shares"`
}

func (*Sell) GetTypeID() uint8 {
	return consts.SellID
}

func (s *Sell) StateKeys(actor codec.Address, _ ids.ID) state.Keys {
	return positionStateKeys(s.MarketID, actor, state.Read|state.Write)
}

func (s *Sell) Execute(
	ctx context.Context,
	_ chain.Rules,
	mu state.Mutable,
	_ int64,
	actor codec.Address,
	_ ids.ID,
) ([]byte, error) {
	if s.Shares == 0 {
		return nil, ErrAmountConstraintViolated
	}

	market, ledger, err := loadMarket(ctx, mu, s.MarketID)
	if err != nil {
		return nil, err
	}
	if market.Status != storage.MarketStatus_Open {
		return nil, fmt.Errorf("%w: market %s is %s", ErrMarketClosed, s.MarketID, market.Status)
	}

	position, err := storage.GetVoter(ctx, mu, s.MarketID, actor)
	if errors.Is(err, storage.ErrVoterNotFound) {
		return nil, fmt.Errorf("%w: %s has no position in market %s", ErrNoSharesToSell, actor, s.MarketID)
	}
	if err != nil {
		return nil, err
	}
	if position.Vote != s.Side || position.Amount == 0 {
		return nil, fmt.Errorf("%w: %s holds no %s shares in market %s", ErrNoSharesToSell, actor, consts.OutcomeToString(s.Side), s.MarketID)
	}
	if held := position.Shares(); s.Shares > held {
		return nil, fmt.Errorf("%w: selling %d, holding %d", ErrNotEnoughShares, s.Shares, held)
	}

	// Shares <= Amount/SharePrice, so the product stays within Amount.
	refund := s.Shares * consts.SharePrice
	if err := ledger.Withdraw(s.Side, refund, s.Shares); err != nil {
		return nil, fmt.Errorf("%w: ledger of market %s cannot refund %d", err, s.MarketID, refund)
	}
	position.Amount -= refund

	// Release checks custody and the balance overflow before it writes, so
	// it goes first.
	if err := escrow.Release(ctx, mu, s.MarketID, actor, refund); err != nil {
		return nil, err
	}
	if err := storage.SetVoter(ctx, mu, s.MarketID, actor, position); err != nil {
		return nil, err
	}
	if err := storage.SetLedger(ctx, mu, market.MetadataRef, ledger); err != nil {
		return nil, err
	}

	result := &SellResult{
		MarketID:  s.MarketID,
		Side:      s.Side,
		Shares:    s.Shares,
		Refund:    refund,
		Remaining: position.Amount,
	}
	return result.Bytes(), nil
}

func (*Sell) ComputeUnits(chain.Rules) uint64 {
	return SellComputeUnits
}

func (*Sell) ValidRange(chain.Rules) (int64, int64) {
	return -1, -1
}

func (s *Sell) Bytes() []byte {
	return packTyped(consts.SellID, s, consts.MaxActionSize)
}

func UnmarshalSell(bytes []byte) (chain.Action, error) {
	s := &Sell{}
	if err := unpackTyped(bytes, consts.SellID, s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal Sell action: %w", err)
	}
	return s, nil
}
