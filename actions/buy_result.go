package actions

import (
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/hypersdk/codec"

	"github.com/yapdotfun/predictionvm/consts"
)

var _ codec.Typed = (*BuyResult)(nil)

type BuyResult struct {
	MarketID ids.ID `serialize:"true" json:"marketId"`
	Side     bool   `serialize:"true" json:"bet"`
	Amount   uint64 `serialize:"true" json:"amount"`
	Shares   uint64 `serialize:"true" json:"shares"`
}

func (*BuyResult) GetTypeID() uint8 {
	return consts.BuyID
}

func (r *BuyResult) Bytes() []byte {
	return packTyped(consts.BuyID, r, consts.MaxOutputSize)
}

func UnmarshalBuyResult(b []byte) (codec.Typed, error) {
	r := &BuyResult{}
	if err := unpackTyped(b, consts.BuyID, r); err != nil {
		return nil, err
	}
	return r, nil
}
