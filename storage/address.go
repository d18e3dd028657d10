package storage

import (
	"encoding/binary"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/hashing"
	"github.com/ava-labs/hypersdk/codec"
)

// Namespaces separate the id spaces of the different record types so that
// identical content can never alias across them.
const (
	MarketNamespace = "market"
	LedgerNamespace = "market_metadata"
	VoterNamespace  = "market_voter"
)

const fieldPrefixLen = 2

// deriveID hashes a namespace tag followed by the given fields. Every field is
// length prefixed so ("ab","c") and ("a","bc") produce different ids.
func deriveID(namespace string, fields ...[]byte) ids.ID {
	size := fieldPrefixLen + len(namespace)
	for _, f := range fields {
		size += fieldPrefixLen + len(f)
	}
	buf := make([]byte, 0, size)
	buf = appendField(buf, []byte(namespace))
	for _, f := range fields {
		buf = appendField(buf, f)
	}
	return ids.ID(hashing.ComputeHash256Array(buf))
}

func appendField(buf []byte, field []byte) []byte {
	buf = binary.BigEndian.AppendUint16(buf, uint16(len(field)))
	return append(buf, field...)
}

// MarketID derives the address of the market asked by creator with the given
// description. The same (description, creator) pair always maps to the same
// market, which is what makes duplicate creation detectable.
func MarketID(description string, creator codec.Address) ids.ID {
	digest := hashing.ComputeHash256Array([]byte(description))
	return deriveID(MarketNamespace, digest[:], creator[:])
}

// LedgerID derives the address of the accounting record owned by marketID.
func LedgerID(marketID ids.ID) ids.ID {
	return deriveID(LedgerNamespace, marketID[:])
}

// VoterID derives the address of user's position in marketID.
func VoterID(marketID ids.ID, user codec.Address) ids.ID {
	return deriveID(VoterNamespace, user[:], marketID[:])
}
