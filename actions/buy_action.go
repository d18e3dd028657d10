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

var _ chain.Action = (*Buy)(nil)

// Buy wagers Amount base units on Side of a market. Each actor holds at most
// one position per market, so a second Buy fails whatever its side.
type Buy struct {
	MarketID ids.ID `serialize:"true" json:"marketId"`
	// Side is true for YES and false for NO.
	Side   bool   `serialize:"true" json:"bet"`
	Amount uint64 `serialize:"true" json:"amount"`
}

func (*Buy) GetTypeID() uint8 {
	return consts.BuyID
}

func (b *Buy) StateKeys(actor codec.Address, _ ids.ID) state.Keys {
	return positionStateKeys(b.MarketID, actor, state.Read|state.Allocate|state.Write)
}

// positionStateKeys lists the keys touched by actions that move funds
// between an actor and a market.
func positionStateKeys(marketID ids.ID, actor codec.Address, voterPerms state.Permissions) state.Keys {
	marketKey := storage.MarketKey(marketID)
	ledgerKey := storage.LedgerKey(storage.LedgerID(marketID))
	voterKey := storage.VoterKey(marketID, actor)
	balanceKey := storage.BalanceKey(actor)
	custodyKey := storage.CustodyKey(marketID)
	return state.Keys{
		string(marketKey):  state.Read,
		string(ledgerKey):  state.Read | state.Write,
		string(voterKey):   voterPerms,
		string(balanceKey): state.Read | state.Allocate | state.Write,
		string(custodyKey): state.Read | state.Allocate | state.Write,
	}
}

func (b *Buy) Execute(
	ctx context.Context,
	_ chain.Rules,
	mu state.Mutable,
	_ int64,
	actor codec.Address,
	_ ids.ID,
) ([]byte, error) {
	if b.Amount == 0 {
		return nil, ErrAmountConstraintViolated
	}

	market, ledger, err := loadMarket(ctx, mu, b.MarketID)
	if err != nil {
		return nil, err
	}
	if market.Status != storage.MarketStatus_Open {
		return nil, fmt.Errorf("%w: market %s is %s", ErrMarketClosed, b.MarketID, market.Status)
	}

	// A resubmitted buy must fail as a duplicate whatever the caller's
	// balance is now, so the slot is checked before the funds.
	if _, err := storage.GetVoter(ctx, mu, b.MarketID, actor); err == nil {
		return nil, fmt.Errorf("%w: %s in market %s", ErrAlreadyVoted, actor, b.MarketID)
	} else if !errors.Is(err, storage.ErrVoterNotFound) {
		return nil, err
	}

	// Truncates; amounts below SharePrice add to the pool without shares.
	shares := b.Amount / consts.SharePrice
	if err := ledger.Deposit(b.Side, b.Amount, shares); err != nil {
		return nil, fmt.Errorf("%w: ledger of market %s cannot take %d more", err, b.MarketID, b.Amount)
	}
	if err := storage.EnsureActorHasBalance(ctx, mu, actor, b.Amount); err != nil {
		return nil, err
	}

	// The insert is the first write of the action.
	position := &storage.VoterPosition{Amount: b.Amount, Vote: b.Side}
	if err := storage.InsertVoter(ctx, mu, b.MarketID, actor, position); err != nil {
		if errors.Is(err, storage.ErrSlotOccupied) {
			return nil, fmt.Errorf("%w: %s in market %s", ErrAlreadyVoted, actor, b.MarketID)
		}
		return nil, err
	}
	if err := escrow.Lock(ctx, mu, b.MarketID, actor, b.Amount); err != nil {
		return nil, err
	}
	if err := storage.SetLedger(ctx, mu, market.MetadataRef, ledger); err != nil {
		return nil, err
	}

	result := &BuyResult{
		MarketID: b.MarketID,
		Side:     b.Side,
		Amount:   b.Amount,
		Shares:   shares,
	}
	return result.Bytes(), nil
}

func (*Buy) ComputeUnits(chain.Rules) uint64 {
	return BuyComputeUnits
}

func (*Buy) ValidRange(chain.Rules) (int64, int64) {
	return -1, -1
}

func (b *Buy) Bytes() []byte {
	return packTyped(consts.BuyID, b, consts.MaxActionSize)
}

func UnmarshalBuy(bytes []byte) (chain.Action, error) {
	b := &Buy{}
	if err := unpackTyped(bytes, consts.BuyID, b); err != nil {
		return nil, fmt.Errorf("failed to unmarshal Buy action: %w", err)
	}
	return b, nil
}
