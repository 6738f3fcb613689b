package redpacket

import "github.com/bitfsorg/redpacket-go/ledger"

// Origin identifies where an operation was dispatched from. The host's
// transaction envelope authenticates the caller and hands the module a
// signed origin; None models an unauthenticated dispatch.
type Origin struct {
	signer *ledger.AccountID
}

// Signed returns an origin authenticated as account.
func Signed(account ledger.AccountID) Origin {
	return Origin{signer: &account}
}

// None returns an unauthenticated origin. Every operation rejects it.
func None() Origin {
	return Origin{}
}

// ensureSigned resolves origin to its signing account, or fails ErrBadOrigin.
func ensureSigned(origin Origin) (ledger.AccountID, error) {
	if origin.signer == nil {
		return ledger.AccountID{}, ErrBadOrigin
	}
	return *origin.signer, nil
}
