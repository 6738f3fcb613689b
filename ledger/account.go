package ledger

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// AccountIDSize is the length of an account identifier in bytes.
const AccountIDSize = 32

// AccountID identifies an account on the host ledger. It is opaque to this
// library; two accounts are the same account exactly when their identifiers
// are equal.
type AccountID [AccountIDSize]byte

// AccountFromSeed derives an AccountID from arbitrary seed material using
// BLAKE2b-256, matching hosts that address accounts by a hash of key material.
func AccountFromSeed(seed []byte) AccountID {
	return AccountID(blake2b.Sum256(seed))
}

// String returns a short hex prefix of the identifier for error messages.
func (a AccountID) String() string {
	return hex.EncodeToString(a[:8])
}

// IsZero reports whether a is the zero account.
func (a AccountID) IsZero() bool {
	return a == AccountID{}
}
