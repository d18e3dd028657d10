package actions

import (
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/hypersdk/codec"

	"github.com/yapdotfun/predictionvm/consts"
)

var _ codec.Typed = (*MarketClosedEvent)(nil)

// MarketClosedEvent is emitted when the resolver closes a market.
type MarketClosedEvent struct {
	Message     string        `serialize:"true" json:"message"`
	MarketID    ids.ID        `serialize:"true" json:"marketId"`
	MetadataID  ids.ID        `serialize:"true" json:"marketMetadataId"`
	Initializer codec.Address `serialize:"true" json:"initializer"`
	Answer      bool          `serialize:"true" json:"answer"`
}

func (*MarketClosedEvent) GetTypeID() uint8 {
	return consts.CloseID
}

func (e *MarketClosedEvent) Bytes() []byte {
	return packTyped(consts.CloseID, e, consts.MaxOutputSize)
}

func UnmarshalMarketClosedEvent(b []byte) (codec.Typed, error) {
	e := &MarketClosedEvent{}
	if err := unpackTyped(b, consts.CloseID, e); err != nil {
		return nil, err
	}
	return e, nil
}
