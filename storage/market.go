package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/ava-labs/hypersdk/codec"
	"github.com/ava-labs/hypersdk/state"

	"github.com/yapdotfun/predictionvm/consts"
)

// ErrMarketNotFound is returned when no market record lives at a market id.
var ErrMarketNotFound = errors.New("market not found")

// MarketStatus defines the possible states of a prediction market.
type MarketStatus uint8

const (
	MarketStatus_Open   MarketStatus = 0 // Market is accepting wagers
	MarketStatus_Closed MarketStatus = 1 // Resolver has set the answer
)

func (ms MarketStatus) String() string {
	switch ms {
	case MarketStatus_Open:
		return "Open"
	case MarketStatus_Closed:
		return "Closed"
	default:
		return fmt.Sprintf("UnknownMarketStatus:%d", ms)
	}
}

// Market is the record of one prediction question.
// Key: MarketPrefix | MarketID(description, initializer) -> Market
type Market struct {
	ID                     ids.ID        `serialize:"true" json:"id"`
	Description            string        `serialize:"true" json:"description"`
	Status                 MarketStatus  `serialize:"true" json:"status"`
	Answer                 bool          `serialize:"true" json:"answer"`
	Initializer            codec.Address `serialize:"true" json:"initializer"`
	Resolver               codec.Address `serialize:"true" json:"resolver"`
	ExpectedResolutionDate uint64        `serialize:"true" json:"expectedResolutionDate"`
	MetadataRef            ids.ID        `serialize:"true" json:"metadataRef"`
	ClosedAt               int64         `serialize:"true" json:"closedAt"`
}

// MarketKey generates the state key for a given market ID.
func MarketKey(marketID ids.ID) []byte {
	return chunkedKey(MarketPrefix, marketID[:], consts.MarketChunks)
}

func marshalRecord(v any, maxSize int) ([]byte, error) {
	p := &wrappers.Packer{
		Bytes:   make([]byte, 0, maxSize),
		MaxSize: maxSize,
	}
	if err := codec.LinearCodec.MarshalInto(v, p); err != nil {
		return nil, err
	}
	return p.Bytes, nil
}

func unmarshalRecord(b []byte, v any) error {
	return codec.LinearCodec.UnmarshalFrom(&wrappers.Packer{Bytes: b}, v)
}

func maxRecordSize(chunks uint16) int {
	return int(chunks) * chunkSize
}

// chunkSize is the hypersdk storage chunk in bytes.
const chunkSize = 64

// GetMarket retrieves a market by its ID from the state.
func GetMarket(ctx context.Context, im state.Immutable, marketID ids.ID) (*Market, error) {
	valBytes, err := im.GetValue(ctx, MarketKey(marketID))
	if errors.Is(err, database.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrMarketNotFound, marketID)
	}
	if err != nil {
		return nil, err
	}
	market := &Market{}
	if err := unmarshalRecord(valBytes, market); err != nil {
		return nil, fmt.Errorf("failed to unmarshal market %s: %w", marketID, err)
	}
	return market, nil
}

// SetMarket overwrites the market record.
func SetMarket(ctx context.Context, mu state.Mutable, market *Market) error {
	b, err := marshalRecord(market, maxRecordSize(consts.MarketChunks))
	if err != nil {
		return fmt.Errorf("failed to marshal market %s: %w", market.ID, err)
	}
	return mu.Insert(ctx, MarketKey(market.ID), b)
}

// InsertMarket stores a new market record. It fails with ErrSlotOccupied if
// the market's derived slot already holds a record.
func InsertMarket(ctx context.Context, mu state.Mutable, market *Market) error {
	b, err := marshalRecord(market, maxRecordSize(consts.MarketChunks))
	if err != nil {
		return fmt.Errorf("failed to marshal market %s: %w", market.ID, err)
	}
	return InsertIfAbsent(ctx, mu, MarketKey(market.ID), b)
}
