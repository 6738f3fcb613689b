// Package redpacket implements an on-chain red-packet (airdrop envelope)
// bookkeeping module on top of a host ledger.
//
// A creator locks quota*count units of currency into a packet. Up to count
// distinct accounts may each claim one quota. Once the packet is fully
// claimed or its block-height deadline has passed, the creator triggers a
// one-shot distribution that pays every recorded claimant except the
// creator themself.
//
// The module holds no balances: all funds move through the
// ledger.ReservableCurrency collaborator. The aggregate stays reserved on
// the owner from creation until distribution.
package redpacket

import (
	"math"
	"math/bits"

	"github.com/bitfsorg/redpacket-go/ledger"
)

// Module is the red-packet state machine. Operations are expected to be
// dispatched serially by the host; each one validates, mutates the store,
// moves funds through the currency collaborator and deposits an event.
type Module struct {
	store    Store
	currency ledger.ReservableCurrency
	clock    Clock
	events   EventSink
}

// New creates a module over the given collaborators. A nil events sink
// discards events.
func New(store Store, currency ledger.ReservableCurrency, clock Clock, events EventSink) *Module {
	if events == nil {
		events = NopSink{}
	}
	return &Module{
		store:    store,
		currency: currency,
		clock:    clock,
		events:   events,
	}
}

// Create creates a new packet that locks quota*count units on the caller.
//
// The caller's free balance must cover the total, which is then reserved for
// the lifetime of the packet so distribution cannot fail for lack of funds.
// The packet expires at the current block height plus expires.
func (m *Module) Create(origin Origin, quota Balance, count uint32, expires BlockNumber) error {
	if count == 0 || quota == 0 || expires == 0 {
		return ErrGreaterThanZero
	}

	sender, err := ensureSigned(origin)
	if err != nil {
		return err
	}

	total := saturatingMul(quota, Balance(count))

	if Balance(m.currency.FreeBalance(sender)) < total {
		return ErrInsufficientBalance
	}
	if err := m.currency.Reserve(sender, uint64(total)); err != nil {
		return err
	}

	id, err := m.store.NextPacketID()
	if err != nil {
		m.currency.Unreserve(sender, uint64(total))
		return err
	}

	packet := &Packet{
		ID:        id,
		Total:     total,
		Unclaimed: total,
		Count:     count,
		ExpiresAt: m.clock.BlockNumber() + expires,
		Owner:     sender,
	}
	if err := m.store.CreatePacket(packet); err != nil {
		m.currency.Unreserve(sender, uint64(total))
		return err
	}

	m.events.Deposit(CreatedEvent{ID: id, Owner: sender, Total: total, Count: count})
	return nil
}

// Claim records the caller's intent to receive one quota from packet id.
//
// A claim is accepted while the packet has not expired, still has unclaimed
// quota, and the caller has not claimed before. The owner may claim their
// own packet; the slot is consumed but Distribute will not pay them.
func (m *Module) Claim(origin Origin, id PacketID) error {
	user, err := ensureSigned(origin)
	if err != nil {
		return err
	}

	packet, err := m.store.GetPacket(id)
	if err != nil {
		return err
	}

	if m.clock.BlockNumber() > packet.ExpiresAt {
		return ErrExpired
	}
	quota := packet.Quota()
	// Unclaimed can fall below one quota only when the total saturated at
	// creation; such a remainder is not claimable.
	if packet.Unclaimed < quota || packet.Unclaimed == 0 {
		return ErrUnavailable
	}

	claims, err := m.store.Claims(id)
	if err != nil {
		return err
	}
	for _, claimant := range claims {
		if claimant == user {
			return ErrAlreadyClaimed
		}
	}

	packet.Unclaimed -= quota
	if err := m.store.RecordClaim(packet, user); err != nil {
		return err
	}

	m.events.Deposit(ClaimedEvent{ID: id, Claimant: user, Quota: quota})
	return nil
}

// Distribute pays one quota to every recorded claimant except the owner.
//
// Only the owner may distribute, and only once the packet has expired or is
// fully claimed. The reserved total is released, the distributed latch is
// persisted, and then claimants are paid in claim order with keep-alive
// transfers. The latch is written before any transfer so that a mid-loop
// transfer failure cannot lead to double payment: a retry fails with
// ErrAlreadyDistributed, leaving any unpaid claimants to off-ledger
// reconciliation.
func (m *Module) Distribute(origin Origin, id PacketID) error {
	owner, err := ensureSigned(origin)
	if err != nil {
		return err
	}

	packet, err := m.store.GetPacket(id)
	if err != nil {
		return err
	}

	if packet.Owner != owner {
		return ErrNotOwner
	}
	if packet.Distributed {
		return ErrAlreadyDistributed
	}

	now := m.clock.BlockNumber()
	expired := now > packet.ExpiresAt
	finished := packet.Unclaimed == 0
	if !expired && !finished {
		return ErrCannotBeDistributed
	}

	claims, err := m.store.Claims(id)
	if err != nil {
		return err
	}

	m.currency.Unreserve(owner, uint64(packet.Total))

	packet.Distributed = true
	if err := m.store.MarkDistributed(packet); err != nil {
		return err
	}

	quota := packet.Quota()
	var distributed Balance
	for _, claimant := range claims {
		if claimant == owner {
			continue
		}
		if err := m.currency.Transfer(owner, claimant, uint64(quota), true); err != nil {
			return err
		}
		distributed += quota
	}

	m.events.Deposit(DistributedEvent{ID: id, Owner: owner, Total: distributed})
	return nil
}

// Packet returns the packet record for id.
func (m *Module) Packet(id PacketID) (*Packet, error) {
	return m.store.GetPacket(id)
}

// ClaimsOf returns the claim list of packet id in insertion order.
func (m *Module) ClaimsOf(id PacketID) ([]ledger.AccountID, error) {
	return m.store.Claims(id)
}

// NextPacketID returns the id the next created packet will receive.
func (m *Module) NextPacketID() (PacketID, error) {
	return m.store.NextPacketID()
}

// saturatingMul multiplies a and b, clamping to the maximum Balance on
// overflow. Wrapping here would let a packet reserve less than it pays out.
func saturatingMul(a, b Balance) Balance {
	hi, lo := bits.Mul64(uint64(a), uint64(b))
	if hi != 0 {
		return Balance(math.MaxUint64)
	}
	return Balance(lo)
}
