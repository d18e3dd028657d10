// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package consts

import (
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/version"
)

const (
	Name   = "predictionvm"
	Symbol = "PRED"

	// HRP is the bech32 human readable part used for addresses.
	HRP = "pred"
)

// Action and output type IDs. Outputs reuse the ID of the action that
// produced them.
const (
	CreateMarketID uint8 = iota
	BuyID
	SellID
	CloseID
	ClaimID
)

const (
	// SharePrice is the fixed number of base units one share costs. Shares are
	// issued as amount / SharePrice with truncating integer division.
	SharePrice uint64 = 1_000

	// MaxDescriptionLen bounds the market question in bytes.
	MaxDescriptionLen = 512

	// MaxActionSize limits the serialized size of a single action.
	MaxActionSize = 1024

	// MaxOutputSize limits the serialized size of an action output.
	MaxOutputSize = 1024
)

// State chunk limits. hypersdk charges storage in 64 byte chunks and every
// key carries its maximum chunk count as a 2 byte suffix.
const (
	Uint16Len = 2

	BalanceChunks uint16 = 1
	CustodyChunks uint16 = 1
	LedgerChunks  uint16 = 1
	VoterChunks   uint16 = 1
	// MarketChunks covers the largest encoded market: a 512 byte description
	// plus fixed fields (662 bytes).
	MarketChunks uint16 = 11
)

// OutcomeToString converts a side to its string representation.
func OutcomeToString(side bool) string {
	if side {
		return "YES"
	}
	return "NO"
}

var ID ids.ID

func init() {
	b := make([]byte, ids.IDLen)
	copy(b, []byte(Name))
	vmID, err := ids.ToID(b)
	if err != nil {
		panic(err)
	}
	ID = vmID
}

var Version = &version.Semantic{
	Major: 0,
	Minor: 1,
	Patch: 0,
}
