package redpacket

import (
	"sync"

	"github.com/bitfsorg/redpacket-go/ledger"
)

// Store persists packets, their claim lists and the id allocator. All writes
// of one method are atomic: they become visible together or not at all.
type Store interface {
	// NextPacketID returns the id the next created packet will receive.
	// The allocator never decreases and ids are never reused.
	NextPacketID() (PacketID, error)

	// GetPacket retrieves a packet by id. Returns ErrPacketNotFound if the
	// id was never created.
	GetPacket(id PacketID) (*Packet, error)

	// CreatePacket inserts a new packet with an empty claim list and
	// advances the id allocator past p.ID. Returns ErrPacketExists if the
	// id is already in use.
	CreatePacket(p *Packet) error

	// Claims returns the claim list of a packet in insertion order.
	Claims(id PacketID) ([]ledger.AccountID, error)

	// RecordClaim persists the updated packet and appends claimant to its
	// claim list.
	RecordClaim(p *Packet, claimant ledger.AccountID) error

	// MarkDistributed persists the packet with its distributed latch set.
	MarkDistributed(p *Packet) error
}

// MemStore is an in-memory Store for tests and embedders that do not need
// persistence.
type MemStore struct {
	mu      sync.RWMutex
	packets map[PacketID]Packet
	claims  map[PacketID][]ledger.AccountID
	nextID  PacketID
}

// Compile-time interface check.
var _ Store = (*MemStore)(nil)

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		packets: make(map[PacketID]Packet),
		claims:  make(map[PacketID][]ledger.AccountID),
	}
}

// NextPacketID returns the id the next created packet will receive.
func (s *MemStore) NextPacketID() (PacketID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nextID, nil
}

// GetPacket retrieves a packet by id.
func (s *MemStore) GetPacket(id PacketID) (*Packet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.packets[id]
	if !ok {
		return nil, ErrPacketNotFound
	}
	return &p, nil
}

// CreatePacket inserts a new packet with an empty claim list.
func (s *MemStore) CreatePacket(p *Packet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.packets[p.ID]; exists {
		return ErrPacketExists
	}
	s.packets[p.ID] = *p
	s.claims[p.ID] = nil
	if p.ID >= s.nextID {
		s.nextID = p.ID + 1
	}
	return nil
}

// Claims returns the claim list of a packet in insertion order.
func (s *MemStore) Claims(id PacketID) ([]ledger.AccountID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	claims := s.claims[id]
	out := make([]ledger.AccountID, len(claims))
	copy(out, claims)
	return out, nil
}

// RecordClaim persists the updated packet and appends claimant to its list.
func (s *MemStore) RecordClaim(p *Packet, claimant ledger.AccountID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.packets[p.ID]; !exists {
		return ErrPacketNotFound
	}
	s.packets[p.ID] = *p
	s.claims[p.ID] = append(s.claims[p.ID], claimant)
	return nil
}

// MarkDistributed persists the packet with its distributed latch set.
func (s *MemStore) MarkDistributed(p *Packet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.packets[p.ID]; !exists {
		return ErrPacketNotFound
	}
	s.packets[p.ID] = *p
	return nil
}
