// Package ledger defines the reservable-currency capability the red-packet
// module consumes, and an in-memory implementation of it.
//
// A reservable currency keeps two pools per account: a spendable (free) pool
// and a reserved pool. Reserving moves funds between the pools without
// changing the account's total; transfers move spendable funds between
// accounts.
package ledger

// ReservableCurrency is the host-ledger capability required by the
// red-packet module. Amounts are non-negative integers.
type ReservableCurrency interface {
	// FreeBalance returns the current spendable balance of account.
	FreeBalance(account AccountID) uint64

	// Reserve moves amount from the spendable pool to the reserved pool of
	// account. It fails with ErrInsufficientFunds if the spendable balance
	// is below amount, leaving the account unchanged.
	Reserve(account AccountID, amount uint64) error

	// Unreserve moves up to amount from the reserved pool back to the
	// spendable pool of account, saturating at whatever is reserved. It
	// returns the amount actually moved and cannot fail.
	Unreserve(account AccountID, amount uint64) uint64

	// Transfer moves amount from the spendable pool of from to the
	// spendable pool of to. With keepAlive set it fails with ErrWouldKill
	// rather than leave from below the ledger's existential deposit.
	Transfer(from, to AccountID, amount uint64, keepAlive bool) error
}
