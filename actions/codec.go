package actions

import (
	"context"
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/ava-labs/hypersdk/codec"
	"github.com/ava-labs/hypersdk/state"

	"github.com/yapdotfun/predictionvm/storage"
)

// packTyped serializes v behind its one byte type id. Encoding a fixed struct
// into a buffer sized for it cannot fail, so errors are dropped the same way
// hypersdk actions do in Bytes.
func packTyped(typeID uint8, v any, maxSize int) []byte {
	p := &wrappers.Packer{
		Bytes:   make([]byte, 0, maxSize),
		MaxSize: maxSize,
	}
	p.PackByte(typeID)
	_ = codec.LinearCodec.MarshalInto(v, p)
	return p.Bytes
}

// unpackTyped is the inverse of packTyped.
func unpackTyped(b []byte, typeID uint8, v any) error {
	if len(b) == 0 {
		return fmt.Errorf("%w: empty bytes, want %d", ErrUnexpectedTypeID, typeID)
	}
	if b[0] != typeID {
		return fmt.Errorf("%w: %d != %d", ErrUnexpectedTypeID, b[0], typeID)
	}
	return codec.LinearCodec.UnmarshalFrom(&wrappers.Packer{Bytes: b[1:]}, v)
}

// loadMarket fetches a market and its ledger, translating a missing record
// into ErrMarketDoesNotExist.
func loadMarket(ctx context.Context, im state.Immutable, marketID ids.ID) (*storage.Market, *storage.MarketLedger, error) {
	market, err := storage.GetMarket(ctx, im, marketID)
	if err != nil {
		return nil, nil, marketLookupError(marketID, err)
	}
	ledger, err := storage.GetLedger(ctx, im, market.MetadataRef)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get ledger of market %s: %w", marketID, err)
	}
	return market, ledger, nil
}

func marketLookupError(marketID ids.ID, err error) error {
	if errors.Is(err, storage.ErrMarketNotFound) {
		return fmt.Errorf("%w: %s", ErrMarketDoesNotExist, marketID)
	}
	return fmt.Errorf("failed to get market %s: %w", marketID, err)
}
