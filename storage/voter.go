package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/hypersdk/codec"
	"github.com/ava-labs/hypersdk/state"

	"github.com/yapdotfun/predictionvm/consts"
)

var ErrVoterNotFound = errors.New("voter position not found")

// VoterPosition is a user's single position in a market. Its existence is the
// "has voted" flag; Vote never changes after creation.
// Key: VoterPrefix | VoterID(marketID, user) -> VoterPosition
type VoterPosition struct {
	Amount uint64 `serialize:"true" json:"amount"`
	Vote   bool   `serialize:"true" json:"vote"`
}

// Shares returns the whole shares backed by the position's amount.
func (v *VoterPosition) Shares() uint64 {
	return v.Amount / consts.SharePrice
}

// VoterKey generates the state key for user's position in marketID.
func VoterKey(marketID ids.ID, user codec.Address) []byte {
	voterID := VoterID(marketID, user)
	return chunkedKey(VoterPrefix, voterID[:], consts.VoterChunks)
}

// GetVoter retrieves user's position in marketID.
func GetVoter(ctx context.Context, im state.Immutable, marketID ids.ID, user codec.Address) (*VoterPosition, error) {
	valBytes, err := im.GetValue(ctx, VoterKey(marketID, user))
	if errors.Is(err, database.ErrNotFound) {
		return nil, fmt.Errorf("%w: user %s in market %s", ErrVoterNotFound, user, marketID)
	}
	if err != nil {
		return nil, err
	}
	voter := &VoterPosition{}
	if err := unmarshalRecord(valBytes, voter); err != nil {
		return nil, fmt.Errorf("failed to unmarshal voter position for %s in market %s: %w", user, marketID, err)
	}
	return voter, nil
}

// SetVoter overwrites user's position in marketID.
func SetVoter(ctx context.Context, mu state.Mutable, marketID ids.ID, user codec.Address, voter *VoterPosition) error {
	b, err := marshalRecord(voter, maxRecordSize(consts.VoterChunks))
	if err != nil {
		return fmt.Errorf("failed to marshal voter position for %s in market %s: %w", user, marketID, err)
	}
	return mu.Insert(ctx, VoterKey(marketID, user), b)
}

// InsertVoter creates user's position in marketID. A second call for the same
// pair fails with ErrSlotOccupied and writes nothing.
func InsertVoter(ctx context.Context, mu state.Mutable, marketID ids.ID, user codec.Address, voter *VoterPosition) error {
	b, err := marshalRecord(voter, maxRecordSize(consts.VoterChunks))
	if err != nil {
		return fmt.Errorf("failed to marshal voter position for %s in market %s: %w", user, marketID, err)
	}
	return InsertIfAbsent(ctx, mu, VoterKey(marketID, user), b)
}
