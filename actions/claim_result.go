package actions

import (
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/hypersdk/codec"

	"github.com/yapdotfun/predictionvm/consts"
)

var _ codec.Typed = (*ClaimResult)(nil)

type ClaimResult struct {
	MarketID ids.ID        `serialize:"true" json:"marketId"`
	Claimant codec.Address `serialize:"true" json:"claimant"`
	Shares   uint64        `serialize:"true" json:"shares"`
	Payout   uint64        `serialize:"true" json:"payout"`
}

func (*ClaimResult) GetTypeID() uint8 {
	return consts.ClaimID
}

func (r *ClaimResult) Bytes() []byte {
	return packTyped(consts.ClaimID, r, consts.MaxOutputSize)
}

func UnmarshalClaimResult(b []byte) (codec.Typed, error) {
	r := &ClaimResult{}
	if err := unpackTyped(b, consts.ClaimID, r); err != nil {
		return nil, err
	}
	return r, nil
}
