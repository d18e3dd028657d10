package escrow

import (
	"context"
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/hypersdk/codec"
	"github.com/ava-labs/hypersdk/state"

	smath "github.com/ava-labs/avalanchego/utils/math"

	"github.com/yapdotfun/predictionvm/storage"
)

var (
	ErrInsufficientCustody = errors.New("insufficient funds in market custody")
	ErrAmountCannotBeZero  = errors.New("amount cannot be zero")
)

// GetCustody returns the base units held by marketID.
func GetCustody(ctx context.Context, im state.Immutable, marketID ids.ID) (uint64, error) {
	valBytes, err := im.GetValue(ctx, storage.CustodyKey(marketID))
	if errors.Is(err, database.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get custody for market %s: %w", marketID, err)
	}
	return database.ParseUInt64(valBytes)
}

// Lock moves amount from actor's balance into marketID's custody.
func Lock(ctx context.Context, mu state.Mutable, marketID ids.ID, actor codec.Address, amount uint64) error {
	if amount == 0 {
		return ErrAmountCannotBeZero
	}
	held, err := GetCustody(ctx, mu, marketID)
	if err != nil {
		return err
	}
	newHeld, err := smath.Add(held, amount)
	if err != nil {
		return fmt.Errorf("%w: custody of market %s", err, marketID)
	}
	if err := storage.DeductBalance(ctx, mu, actor, amount); err != nil {
		return fmt.Errorf("failed to lock %d from %s into market %s: %w", amount, actor, marketID, err)
	}
	return mu.Insert(ctx, storage.CustodyKey(marketID), database.PackUInt64(newHeld))
}

// Release moves amount from marketID's custody to recipient's balance.
func Release(ctx context.Context, mu state.Mutable, marketID ids.ID, recipient codec.Address, amount uint64) error {
	if amount == 0 {
		return ErrAmountCannotBeZero
	}
	held, err := GetCustody(ctx, mu, marketID)
	if err != nil {
		return err
	}
	if held < amount {
		return fmt.Errorf("%w: market %s has %d, needs to release %d", ErrInsufficientCustody, marketID, held, amount)
	}
	if err := storage.AddBalance(ctx, mu, recipient, amount); err != nil {
		return fmt.Errorf("failed to release %d from market %s to %s: %w", amount, marketID, recipient, err)
	}
	return mu.Insert(ctx, storage.CustodyKey(marketID), database.PackUInt64(held-amount))
}
