package redpacket

import (
	"sync"

	"github.com/bitfsorg/redpacket-go/ledger"
)

// Event is an observable side effect deposited after a successful operation.
// Delivery is fire and forget; the transport is the host's responsibility.
type Event interface {
	isEvent()
}

// CreatedEvent is deposited when a packet is created.
type CreatedEvent struct {
	ID    PacketID
	Owner ledger.AccountID
	Total Balance
	Count uint32
}

// ClaimedEvent is deposited when a claim is accepted.
type ClaimedEvent struct {
	ID       PacketID
	Claimant ledger.AccountID
	Quota    Balance
}

// DistributedEvent is deposited when a packet is distributed. Total is the
// amount actually transferred, which is less than the packet total when the
// owner claimed a slot or the packet expired with slots unclaimed.
type DistributedEvent struct {
	ID    PacketID
	Owner ledger.AccountID
	Total Balance
}

func (CreatedEvent) isEvent()     {}
func (ClaimedEvent) isEvent()     {}
func (DistributedEvent) isEvent() {}

// EventSink receives deposited events.
type EventSink interface {
	Deposit(Event)
}

// NopSink discards all events.
type NopSink struct{}

// Deposit discards e.
func (NopSink) Deposit(Event) {}

// RecordingSink is a test double that keeps events in deposit order.
type RecordingSink struct {
	mu     sync.Mutex
	events []Event
}

// Deposit appends e to the record.
func (s *RecordingSink) Deposit(e Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
}

// Events returns a copy of the recorded events.
func (s *RecordingSink) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}
