package redpacket

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"

	"github.com/bitfsorg/redpacket-go/ledger"
)

var (
	bucketPackets = []byte("packets")
	bucketClaims  = []byte("claims")
	bucketMeta    = []byte("meta")

	keyNextPacketID = []byte("next_packet_id")
)

// BoltStore is a bbolt-backed Store. Every method runs in a single bbolt
// transaction, which gives the per-operation atomicity the state machine
// relies on.
type BoltStore struct {
	db *bbolt.DB
}

// Compile-time interface check.
var _ Store = (*BoltStore)(nil)

// OpenBoltStore opens or creates the bbolt database at dbPath.
// The parent directory is created if it does not exist.
func OpenBoltStore(dbPath string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("redpacket: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("redpacket: open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketPackets, bucketClaims, bucketMeta} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("boltstore: create bucket %q: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("redpacket: create buckets: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// Close closes the underlying database.
func (s *BoltStore) Close() error { return s.db.Close() }

// idKey encodes a packet id as an 8-byte big-endian key for sorted storage.
func idKey(id PacketID) []byte {
	k := make([]byte, 8)
	binary.BigEndian.PutUint64(k, uint64(id))
	return k
}

// encodeGob serializes a value using gob encoding.
func encodeGob(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodeGob deserializes gob-encoded data into a value.
func decodeGob(data []byte, v interface{}) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
}

// NextPacketID returns the id the next created packet will receive.
func (s *BoltStore) NextPacketID() (PacketID, error) {
	var next PacketID
	err := s.db.View(func(tx *bbolt.Tx) error {
		if data := tx.Bucket(bucketMeta).Get(keyNextPacketID); data != nil {
			next = PacketID(binary.BigEndian.Uint64(data))
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("boltstore: read next packet id: %w", err)
	}
	return next, nil
}

// GetPacket retrieves a packet by id.
func (s *BoltStore) GetPacket(id PacketID) (*Packet, error) {
	var packet Packet
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketPackets).Get(idKey(id))
		if data == nil {
			return ErrPacketNotFound
		}
		if err := decodeGob(data, &packet); err != nil {
			return fmt.Errorf("boltstore: decode packet: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &packet, nil
}

// CreatePacket inserts a new packet with an empty claim list and advances
// the id allocator, all in one transaction.
func (s *BoltStore) CreatePacket(p *Packet) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		pb := tx.Bucket(bucketPackets)
		key := idKey(p.ID)
		if pb.Get(key) != nil {
			return ErrPacketExists
		}

		data, err := encodeGob(p)
		if err != nil {
			return fmt.Errorf("boltstore: encode packet: %w", err)
		}
		if err := pb.Put(key, data); err != nil {
			return fmt.Errorf("boltstore: put packet: %w", err)
		}

		claims, err := encodeGob([]ledger.AccountID{})
		if err != nil {
			return fmt.Errorf("boltstore: encode claims: %w", err)
		}
		if err := tx.Bucket(bucketClaims).Put(key, claims); err != nil {
			return fmt.Errorf("boltstore: put claims: %w", err)
		}

		meta := tx.Bucket(bucketMeta)
		var next PacketID
		if data := meta.Get(keyNextPacketID); data != nil {
			next = PacketID(binary.BigEndian.Uint64(data))
		}
		if p.ID >= next {
			if err := meta.Put(keyNextPacketID, idKey(p.ID+1)); err != nil {
				return fmt.Errorf("boltstore: put next packet id: %w", err)
			}
		}
		return nil
	})
}

// Claims returns the claim list of a packet in insertion order.
func (s *BoltStore) Claims(id PacketID) ([]ledger.AccountID, error) {
	var claims []ledger.AccountID
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketClaims).Get(idKey(id))
		if data == nil {
			return nil
		}
		if err := decodeGob(data, &claims); err != nil {
			return fmt.Errorf("boltstore: decode claims: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// RecordClaim persists the updated packet and appends claimant to its claim
// list in one transaction.
func (s *BoltStore) RecordClaim(p *Packet, claimant ledger.AccountID) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		pb := tx.Bucket(bucketPackets)
		key := idKey(p.ID)
		if pb.Get(key) == nil {
			return ErrPacketNotFound
		}

		data, err := encodeGob(p)
		if err != nil {
			return fmt.Errorf("boltstore: encode packet: %w", err)
		}
		if err := pb.Put(key, data); err != nil {
			return fmt.Errorf("boltstore: put packet: %w", err)
		}

		cb := tx.Bucket(bucketClaims)
		var claims []ledger.AccountID
		if data := cb.Get(key); data != nil {
			if err := decodeGob(data, &claims); err != nil {
				return fmt.Errorf("boltstore: decode claims: %w", err)
			}
		}
		claims = append(claims, claimant)
		encoded, err := encodeGob(claims)
		if err != nil {
			return fmt.Errorf("boltstore: encode claims: %w", err)
		}
		if err := cb.Put(key, encoded); err != nil {
			return fmt.Errorf("boltstore: put claims: %w", err)
		}
		return nil
	})
}

// MarkDistributed persists the packet with its distributed latch set.
func (s *BoltStore) MarkDistributed(p *Packet) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		pb := tx.Bucket(bucketPackets)
		key := idKey(p.ID)
		if pb.Get(key) == nil {
			return ErrPacketNotFound
		}
		data, err := encodeGob(p)
		if err != nil {
			return fmt.Errorf("boltstore: encode packet: %w", err)
		}
		if err := pb.Put(key, data); err != nil {
			return fmt.Errorf("boltstore: put packet: %w", err)
		}
		return nil
	})
}
