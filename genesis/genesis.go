package genesis

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ava-labs/hypersdk/codec"
	"github.com/ava-labs/hypersdk/genesis"
	"github.com/btcsuite/btcd/btcutil/bech32"

	"github.com/yapdotfun/predictionvm/consts"
)

var (
	ErrWrongHRP         = errors.New("address has wrong human readable part")
	ErrAddressLength    = errors.New("decoded address has wrong length")
	ErrDuplicateAddress = errors.New("duplicate genesis allocation")
)

// Allocation is a genesis balance entry. Address may be bech32 with the
// chain HRP or the hex form printed by codec.Address.
type Allocation struct {
	Address string `json:"address" mapstructure:"address"`
	Balance uint64 `json:"balance" mapstructure:"balance"`
}

// ParseAddress decodes a bech32 or hex address.
func ParseAddress(s string) (codec.Address, error) {
	if !strings.HasPrefix(s, consts.HRP+"1") {
		return codec.StringToAddress(s)
	}
	hrp, data5bit, err := bech32.Decode(s)
	if err != nil {
		return codec.EmptyAddress, fmt.Errorf("failed to decode bech32 address %s: %w", s, err)
	}
	if hrp != consts.HRP {
		return codec.EmptyAddress, fmt.Errorf("%w: %s != %s", ErrWrongHRP, hrp, consts.HRP)
	}
	data8bit, err := bech32.ConvertBits(data5bit, 5, 8, false)
	if err != nil {
		return codec.EmptyAddress, fmt.Errorf("failed to convert bech32 data bits for address %s: %w", s, err)
	}
	if len(data8bit) != codec.AddressLen {
		return codec.EmptyAddress, fmt.Errorf("%w: got %d bytes, expected %d", ErrAddressLength, len(data8bit), codec.AddressLen)
	}
	var addr codec.Address
	copy(addr[:], data8bit)
	return addr, nil
}

// FormatAddress encodes addr as bech32 with the chain HRP.
func FormatAddress(addr codec.Address) (string, error) {
	data5bit, err := bech32.ConvertBits(addr[:], 8, 5, true)
	if err != nil {
		return "", err
	}
	return bech32.Encode(consts.HRP, data5bit)
}

// New builds the hypersdk default genesis funding every allocation.
func New(allocations []Allocation) (*genesis.DefaultGenesis, error) {
	seen := make(map[codec.Address]struct{}, len(allocations))
	custom := make([]*genesis.CustomAllocation, 0, len(allocations))
	for _, alloc := range allocations {
		addr, err := ParseAddress(alloc.Address)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[addr]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateAddress, alloc.Address)
		}
		seen[addr] = struct{}{}
		custom = append(custom, &genesis.CustomAllocation{
			Address: addr,
			Balance: alloc.Balance,
		})
	}
	return genesis.NewDefaultGenesis(custom), nil
}
