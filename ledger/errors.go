package ledger

import "errors"

var (
	// ErrInsufficientFunds indicates the account's free balance cannot cover
	// the requested reserve or transfer.
	ErrInsufficientFunds = errors.New("ledger: insufficient funds")

	// ErrWouldKill indicates a keep-alive transfer would leave the sender
	// below the existential deposit.
	ErrWouldKill = errors.New("ledger: transfer would reap the sender account")
)
