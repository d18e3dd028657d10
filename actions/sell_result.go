package actions

import (
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/hypersdk/codec"

	"github.com/yapdotfun/predictionvm/consts"
)

var _ codec.Typed = (*SellResult)(nil)

// SellResult reports the refund paid for redeemed shares and the amount still
// wagered by the seller.
type SellResult struct {
	MarketID  ids.ID `serialize:"true" json:"marketId"`
	Side      bool   `serialize:"true" json:"bet"`
	Shares    uint64 `serialize:"true" json:"shares"`
	Refund    uint64 `serialize:"true" json:"refund"`
	Remaining uint64 `serialize:"true" json:"remaining"`
}

func (*SellResult) GetTypeID() uint8 {
	return consts.SellID
}

func (r *SellResult) Bytes() []byte {
	return packTyped(consts.SellID, r, consts.MaxOutputSize)
}

func UnmarshalSellResult(b []byte) (codec.Typed, error) {
	r := &SellResult{}
	if err := unpackTyped(b, consts.SellID, r); err != nil {
		return nil, err
	}
	return r, nil
}
