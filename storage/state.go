package storage

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/hypersdk/codec"
	"github.com/ava-labs/hypersdk/state"

	smath "github.com/ava-labs/avalanchego/utils/math"

	"github.com/yapdotfun/predictionvm/consts"
)

const (
	// BalancePrefix is the prefix for storing native token balances for accounts.
	// Format: BalancePrefix | Address | chunks -> uint64
	BalancePrefix byte = 0x0

	// MarketPrefix is the prefix for storing market records.
	// Format: MarketPrefix | MarketID | chunks -> Market
	MarketPrefix byte = 0x1

	// LedgerPrefix is the prefix for storing per-market pooled accounting.
	// Format: LedgerPrefix | LedgerID | chunks -> MarketLedger
	LedgerPrefix byte = 0x2

	// VoterPrefix is the prefix for storing a user's position in a market.
	// Format: VoterPrefix | VoterID | chunks -> VoterPosition
	VoterPrefix byte = 0x3

	// CustodyPrefix is the prefix for funds held by a market.
	// Format: CustodyPrefix | MarketID | chunks -> uint64
	CustodyPrefix byte = 0x4
)

var (
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrSlotOccupied        = errors.New("state slot already occupied")
)

// chunkedKey appends the 2 byte max chunk suffix hypersdk expects on every key.
func chunkedKey(prefix byte, body []byte, chunks uint16) []byte {
	key := make([]byte, 1+len(body)+consts.Uint16Len)
	key[0] = prefix
	copy(key[1:], body)
	binary.BigEndian.PutUint16(key[1+len(body):], chunks)
	return key
}

// BalanceKey returns the state key for an address's native token balance.
func BalanceKey(addr codec.Address) []byte {
	return chunkedKey(BalancePrefix, addr[:], consts.BalanceChunks)
}

// InsertIfAbsent writes value under key only if the key holds no record.
// Returns ErrSlotOccupied without writing otherwise. Callers rely on the
// executor holding exclusive access to key for the duration of the action.
func InsertIfAbsent(ctx context.Context, mu state.Mutable, key []byte, value []byte) error {
	_, err := mu.GetValue(ctx, key)
	switch {
	case err == nil:
		return ErrSlotOccupied
	case errors.Is(err, database.ErrNotFound):
		return mu.Insert(ctx, key, value)
	default:
		return err
	}
}

// GetBalance retrieves the native token balance for a given address.
func GetBalance(ctx context.Context, im state.Immutable, addr codec.Address) (uint64, error) {
	valBytes, err := im.GetValue(ctx, BalanceKey(addr))
	if errors.Is(err, database.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return database.ParseUInt64(valBytes)
}

// SetBalance sets the native token balance for a given address.
func SetBalance(ctx context.Context, mu state.Mutable, addr codec.Address, amount uint64) error {
	return mu.Insert(ctx, BalanceKey(addr), database.PackUInt64(amount))
}

// DeductBalance subtracts an amount from an address's native token balance.
// It returns ErrInsufficientBalance if the deduction is not possible.
func DeductBalance(ctx context.Context, mu state.Mutable, addr codec.Address, amount uint64) error {
	currentBalance, err := GetBalance(ctx, mu, addr)
	if err != nil {
		return err
	}
	if currentBalance < amount {
		return fmt.Errorf("%w: %s has %d, needs %d", ErrInsufficientBalance, addr, currentBalance, amount)
	}
	return SetBalance(ctx, mu, addr, currentBalance-amount)
}

// AddBalance adds an amount to an address's native token balance.
func AddBalance(ctx context.Context, mu state.Mutable, addr codec.Address, amount uint64) error {
	currentBalance, err := GetBalance(ctx, mu, addr)
	if err != nil {
		return err
	}
	newBalance, err := smath.Add(currentBalance, amount)
	if err != nil {
		return fmt.Errorf("%w: could not add balance (bal=%d, addr=%s, amount=%d)", err, currentBalance, addr, amount)
	}
	return SetBalance(ctx, mu, addr, newBalance)
}

// EnsureActorHasBalance checks if an actor has at least a certain amount
// without writing anything.
func EnsureActorHasBalance(ctx context.Context, im state.Immutable, actor codec.Address, required uint64) error {
	bal, err := GetBalance(ctx, im, actor)
	if err != nil {
		return err
	}
	if bal < required {
		return fmt.Errorf("%w: %s has %d, needs %d", ErrInsufficientBalance, actor, bal, required)
	}
	return nil
}

// CustodyKey returns the state key for the funds held by marketID.
func CustodyKey(marketID ids.ID) []byte {
	return chunkedKey(CustodyPrefix, marketID[:], consts.CustodyChunks)
}
