package actions

import (
	"context"
	"fmt"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/hypersdk/chain"
	"github.com/ava-labs/hypersdk/codec"
	"github.com/ava-labs/hypersdk/state"

	"github.com/yapdotfun/predictionvm/consts"
	"github.com/yapdotfun/predictionvm/storage"
)

var _ chain.Action = (*Close)(nil)

// Close settles a market with Answer. Only the market's resolver may close
// it, and only once.
type Close struct {
	MarketID ids.ID `serialize:"true" json:"marketId"`
	Answer   bool   `serialize:"true" json:"answer"`
}

func (*Close) GetTypeID() uint8 {
	return consts.CloseID
}

func (c *Close) StateKeys(codec.Address, ids.ID) state.Keys {
	return state.Keys{
		string(storage.MarketKey(c.MarketID)): state.Read | state.Write,
	}
}

func (c *Close) Execute(
	ctx context.Context,
	_ chain.Rules,
	mu state.Mutable,
	timestamp int64,
	actor codec.Address,
	_ ids.ID,
) ([]byte, error) {
	market, err := storage.GetMarket(ctx, mu, c.MarketID)
	if err != nil {
		return nil, marketLookupError(c.MarketID, err)
	}
	if actor != market.Resolver {
		return nil, fmt.Errorf("%w: %s cannot close market %s", ErrNotOracle, actor, c.MarketID)
	}
	if market.Status != storage.MarketStatus_Open {
		return nil, fmt.Errorf("%w: market %s is %s", ErrMarketClosed, c.MarketID, market.Status)
	}

	market.Status = storage.MarketStatus_Closed
	market.Answer = c.Answer
	market.ClosedAt = timestamp
	if err := storage.SetMarket(ctx, mu, market); err != nil {
		return nil, fmt.Errorf("failed to close market %s: %w", c.MarketID, err)
	}

	result := &MarketClosedEvent{
		Message:     "Market closed",
		MarketID:    market.ID,
		MetadataID:  market.MetadataRef,
		Initializer: market.Initializer,
		Answer:      market.Answer,
	}
	return result.Bytes(), nil
}

func (*Close) ComputeUnits(chain.Rules) uint64 {
	return CloseComputeUnits
}

func (*Close) ValidRange(chain.Rules) (int64, int64) {
	return -1, -1
}

func (c *Close) Bytes() []byte {
	return packTyped(consts.CloseID, c, consts.MaxActionSize)
}

func UnmarshalClose(bytes []byte) (chain.Action, error) {
	c := &Close{}
	if err := unpackTyped(bytes, consts.CloseID, c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal Close action: %w", err)
	}
	return c, nil
}
