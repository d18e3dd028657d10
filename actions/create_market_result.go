package actions

import (
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/hypersdk/codec"

	"github.com/yapdotfun/predictionvm/consts"
)

var _ codec.Typed = (*MarketInitializedEvent)(nil)

// MarketInitializedEvent is the output of a successful CreateMarket action.
type MarketInitializedEvent struct {
	Message     string        `serialize:"true" json:"message"`
	MarketID    ids.ID        `serialize:"true" json:"marketId"`
	MetadataID  ids.ID        `serialize:"true" json:"marketMetadataId"`
	Initializer codec.Address `serialize:"true" json:"initializer"`
}

func (*MarketInitializedEvent) GetTypeID() uint8 {
	return consts.CreateMarketID
}

func (e *MarketInitializedEvent) Bytes() []byte {
	return packTyped(consts.CreateMarketID, e, consts.MaxOutputSize)
}

func UnmarshalMarketInitializedEvent(b []byte) (codec.Typed, error) {
	e := &MarketInitializedEvent{}
	if err := unpackTyped(b, consts.CreateMarketID, e); err != nil {
		return nil, err
	}
	return e, nil
}
