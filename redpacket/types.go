package redpacket

import "github.com/bitfsorg/redpacket-go/ledger"

// PacketID identifies one red packet. Ids are assigned from a monotonically
// increasing counter and never reused.
type PacketID uint64

// Balance is an amount of currency units.
type Balance uint64

// BlockNumber is an abstract block height supplied by the host clock.
type BlockNumber uint64

// Packet is one red-packet record. Total, Count, ExpiresAt and Owner are
// immutable after creation; Unclaimed decreases by one quota per accepted
// claim and Distributed latches to true exactly once.
type Packet struct {
	ID          PacketID
	Total       Balance
	Unclaimed   Balance
	Count       uint32
	ExpiresAt   BlockNumber
	Owner       ledger.AccountID
	Distributed bool
}

// Quota returns the fixed per-claimant amount, Total / Count.
func (p *Packet) Quota() Balance {
	return p.Total / Balance(p.Count)
}
