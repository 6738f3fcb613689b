package ledger

import "sync"

// balance holds the two pools of one account.
type balance struct {
	free     uint64
	reserved uint64
}

// MemLedger is an in-memory ReservableCurrency. It is safe for concurrent
// use, although the red-packet module itself runs operations serially.
type MemLedger struct {
	mu          sync.RWMutex
	existential uint64
	accounts    map[AccountID]*balance
}

// Compile-time interface check.
var _ ReservableCurrency = (*MemLedger)(nil)

// NewMemLedger creates an empty ledger. existentialDeposit is the minimum
// spendable balance a keep-alive transfer may leave on the sender; zero
// disables the check.
func NewMemLedger(existentialDeposit uint64) *MemLedger {
	return &MemLedger{
		existential: existentialDeposit,
		accounts:    make(map[AccountID]*balance),
	}
}

// SetBalance sets the spendable balance of account, creating it if needed.
// The reserved pool is left untouched. Intended for genesis and test setup.
func (l *MemLedger) SetBalance(account AccountID, free uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.account(account).free = free
}

// FreeBalance returns the current spendable balance of account.
func (l *MemLedger) FreeBalance(account AccountID) uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if b, ok := l.accounts[account]; ok {
		return b.free
	}
	return 0
}

// ReservedBalance returns the current reserved balance of account.
func (l *MemLedger) ReservedBalance(account AccountID) uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if b, ok := l.accounts[account]; ok {
		return b.reserved
	}
	return 0
}

// Reserve moves amount from the spendable to the reserved pool of account.
func (l *MemLedger) Reserve(account AccountID, amount uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	b := l.account(account)
	if b.free < amount {
		return ErrInsufficientFunds
	}
	b.free -= amount
	b.reserved += amount
	return nil
}

// Unreserve moves up to amount from the reserved pool back to the spendable
// pool of account and returns the amount actually moved.
func (l *MemLedger) Unreserve(account AccountID, amount uint64) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	b := l.account(account)
	if amount > b.reserved {
		amount = b.reserved
	}
	b.reserved -= amount
	b.free += amount
	return amount
}

// Transfer moves amount between the spendable pools of from and to.
func (l *MemLedger) Transfer(from, to AccountID, amount uint64, keepAlive bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	src := l.account(from)
	if src.free < amount {
		return ErrInsufficientFunds
	}
	if keepAlive && src.free-amount < l.existential {
		return ErrWouldKill
	}
	dst := l.account(to)
	src.free -= amount
	dst.free += amount
	return nil
}

// account returns the balance record for id, creating it if absent.
// Callers must hold the write lock.
func (l *MemLedger) account(id AccountID) *balance {
	b, ok := l.accounts[id]
	if !ok {
		b = &balance{}
		l.accounts[id] = b
	}
	return b
}
