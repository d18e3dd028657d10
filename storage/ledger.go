package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/hypersdk/state"

	smath "github.com/ava-labs/avalanchego/utils/math"

	"github.com/yapdotfun/predictionvm/consts"
)

var ErrLedgerNotFound = errors.New("market ledger not found")

// MarketLedger is the pooled accounting of one market. All amounts are in base
// currency units, all share counts in whole shares.
// Key: LedgerPrefix | LedgerID(marketID) -> MarketLedger
type MarketLedger struct {
	TotalYesAssets uint64 `serialize:"true" json:"totalYesAssets"`
	TotalNoAssets  uint64 `serialize:"true" json:"totalNoAssets"`
	TotalYesShares uint64 `serialize:"true" json:"totalYesShares"`
	TotalNoShares  uint64 `serialize:"true" json:"totalNoShares"`
	TotalRewards   uint64 `serialize:"true" json:"totalRewards"`
}

// Shares returns the shares issued on side.
func (l *MarketLedger) Shares(side bool) uint64 {
	if side {
		return l.TotalYesShares
	}
	return l.TotalNoShares
}

// Deposit records amount wagered on side for shares newly issued.
func (l *MarketLedger) Deposit(side bool, amount uint64, shares uint64) error {
	next := *l
	assets, sideShares := &next.TotalNoAssets, &next.TotalNoShares
	if side {
		assets, sideShares = &next.TotalYesAssets, &next.TotalYesShares
	}
	var err error
	if *assets, err = smath.Add(*assets, amount); err != nil {
		return err
	}
	if *sideShares, err = smath.Add(*sideShares, shares); err != nil {
		return err
	}
	if next.TotalRewards, err = smath.Add(next.TotalRewards, amount); err != nil {
		return err
	}
	*l = next
	return nil
}

// Withdraw is the inverse of Deposit: shares on side are redeemed for amount.
func (l *MarketLedger) Withdraw(side bool, amount uint64, shares uint64) error {
	next := *l
	assets, sideShares := &next.TotalNoAssets, &next.TotalNoShares
	if side {
		assets, sideShares = &next.TotalYesAssets, &next.TotalYesShares
	}
	var err error
	if *assets, err = smath.Sub(*assets, amount); err != nil {
		return err
	}
	if *sideShares, err = smath.Sub(*sideShares, shares); err != nil {
		return err
	}
	if next.TotalRewards, err = smath.Sub(next.TotalRewards, amount); err != nil {
		return err
	}
	*l = next
	return nil
}

// Payout removes winning shares and their payout from the pool after the
// market closed. Assets stay untouched as the settled record of the wagers.
func (l *MarketLedger) Payout(side bool, payout uint64, shares uint64) error {
	next := *l
	sideShares := &next.TotalNoShares
	if side {
		sideShares = &next.TotalYesShares
	}
	var err error
	if *sideShares, err = smath.Sub(*sideShares, shares); err != nil {
		return err
	}
	if next.TotalRewards, err = smath.Sub(next.TotalRewards, payout); err != nil {
		return err
	}
	*l = next
	return nil
}

// LedgerKey generates the state key for a ledger ID.
func LedgerKey(ledgerID ids.ID) []byte {
	return chunkedKey(LedgerPrefix, ledgerID[:], consts.LedgerChunks)
}

// GetLedger retrieves the ledger stored at ledgerID.
func GetLedger(ctx context.Context, im state.Immutable, ledgerID ids.ID) (*MarketLedger, error) {
	valBytes, err := im.GetValue(ctx, LedgerKey(ledgerID))
	if errors.Is(err, database.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrLedgerNotFound, ledgerID)
	}
	if err != nil {
		return nil, err
	}
	ledger := &MarketLedger{}
	if err := unmarshalRecord(valBytes, ledger); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ledger %s: %w", ledgerID, err)
	}
	return ledger, nil
}

// SetLedger overwrites the ledger stored at ledgerID.
func SetLedger(ctx context.Context, mu state.Mutable, ledgerID ids.ID, ledger *MarketLedger) error {
	b, err := marshalRecord(ledger, maxRecordSize(consts.LedgerChunks))
	if err != nil {
		return fmt.Errorf("failed to marshal ledger %s: %w", ledgerID, err)
	}
	return mu.Insert(ctx, LedgerKey(ledgerID), b)
}

// InsertLedger stores a new ledger, failing with ErrSlotOccupied if one exists.
func InsertLedger(ctx context.Context, mu state.Mutable, ledgerID ids.ID, ledger *MarketLedger) error {
	b, err := marshalRecord(ledger, maxRecordSize(consts.LedgerChunks))
	if err != nil {
		return fmt.Errorf("failed to marshal ledger %s: %w", ledgerID, err)
	}
	return InsertIfAbsent(ctx, mu, LedgerKey(ledgerID), b)
}
