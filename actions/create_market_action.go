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
	"github.com/yapdotfun/predictionvm/storage"
)

var _ chain.Action = (*CreateMarket)(nil)

// CreateMarket opens a new YES/NO market. The market lives at an address
// derived from the description and the actor, so the same actor asking the
// same question twice is rejected.
type CreateMarket struct {
	Description            string `serialize:"true" json:"description"`
	ExpectedResolutionDate uint64 `serialize:"true" json:"expectedResolutionDate"`
	// Resolver may close the market. Left empty it defaults to the creator.
	Resolver codec.Address `serialize:"true" json:"resolver"`
}

func (*CreateMarket) GetTypeID() uint8 {
	return consts.CreateMarketID
}

// StateKeys declares the market and ledger slots. Both are computable before
// execution because their addresses depend only on the request and actor.
func (cm *CreateMarket) StateKeys(actor codec.Address, _ ids.ID) state.Keys {
	marketID := storage.MarketID(cm.Description, actor)
	marketKey := storage.MarketKey(marketID)
	ledgerKey := storage.LedgerKey(storage.LedgerID(marketID))
	return state.Keys{
		string(marketKey): state.Read | state.Allocate | state.Write,
		string(ledgerKey): state.Read | state.Allocate | state.Write,
	}
}

func (cm *CreateMarket) Execute(
	ctx context.Context,
	_ chain.Rules,
	mu state.Mutable,
	_ int64,
	actor codec.Address,
	_ ids.ID,
) ([]byte, error) {
	if len(cm.Description) == 0 {
		return nil, ErrDescriptionEmpty
	}
	if len(cm.Description) > consts.MaxDescriptionLen {
		return nil, fmt.Errorf("%w: %d bytes, max %d", ErrDescriptionTooLong, len(cm.Description), consts.MaxDescriptionLen)
	}

	marketID := storage.MarketID(cm.Description, actor)
	ledgerID := storage.LedgerID(marketID)
	resolver := cm.Resolver
	if resolver == codec.EmptyAddress {
		resolver = actor
	}

	market := &storage.Market{
		ID:                     marketID,
		Description:            cm.Description,
		Status:                 storage.MarketStatus_Open,
		Answer:                 false,
		Initializer:            actor,
		Resolver:               resolver,
		ExpectedResolutionDate: cm.ExpectedResolutionDate,
		MetadataRef:            ledgerID,
	}
	if err := storage.InsertMarket(ctx, mu, market); err != nil {
		if errors.Is(err, storage.ErrSlotOccupied) {
			return nil, fmt.Errorf("%w: %s", ErrMarketAlreadyExists, marketID)
		}
		return nil, fmt.Errorf("failed to insert market %s: %w", marketID, err)
	}
	if err := storage.InsertLedger(ctx, mu, ledgerID, &storage.MarketLedger{}); err != nil {
		return nil, fmt.Errorf("failed to insert ledger %s of market %s: %w", ledgerID, marketID, err)
	}

	result := &MarketInitializedEvent{
		Message:     "Market initialized",
		MarketID:    marketID,
		MetadataID:  ledgerID,
		Initializer: actor,
	}
	return result.Bytes(), nil
}

func (*CreateMarket) ComputeUnits(chain.Rules) uint64 {
	return CreateMarketComputeUnits
}

func (*CreateMarket) ValidRange(chain.Rules) (int64, int64) {
	return -1, -1
}

// Bytes serializes the CreateMarket action.
func (cm *CreateMarket) Bytes() []byte {
	return packTyped(consts.CreateMarketID, cm, consts.MaxActionSize)
}

// UnmarshalCreateMarket deserializes bytes into a CreateMarket action.
func UnmarshalCreateMarket(bytes []byte) (chain.Action, error) {
	cm := &CreateMarket{}
	if err := unpackTyped(bytes, consts.CreateMarketID, cm); err != nil {
		return nil, fmt.Errorf("failed to unmarshal CreateMarket action: %w", err)
	}
	return cm, nil
}
