package state

import (
	"encoding/binary"

	dbm "github.com/cometbft/cometbft-db"
)

// KVStore is the raw byte-level storage a contract instance operates on.
// Implementations must treat nil and empty values as "not present".
type KVStore interface {
	Get(key []byte) []byte
	Set(key, value []byte)
	Delete(key []byte)
}

// Store adapts a cometbft-db backend to the KVStore interface.
// Backend errors panic: a state store that fails mid-call leaves no
// consistent way to continue, the same stance the sdk stores take.
type Store struct {
	db dbm.DB
}

var _ KVStore = (*Store)(nil)

// NewStore wraps the given database. The caller keeps ownership of db and
// is responsible for closing it.
func NewStore(db dbm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Get(key []byte) []byte {
	v, err := s.db.Get(key)
	if err != nil {
		panic(err)
	}
	return v
}

func (s *Store) Set(key, value []byte) {
	if err := s.db.Set(key, value); err != nil {
		panic(err)
	}
}

func (s *Store) Delete(key []byte) {
	if err := s.db.Delete(key); err != nil {
		panic(err)
	}
}

// PrefixedKVStore namespaces all keys of a parent store under one or more
// prefix components. Each component is length-prefixed (big-endian uint16)
// so that distinct component splits can never produce colliding keys.
type PrefixedKVStore struct {
	prefix []byte
	parent KVStore
}

var _ KVStore = (*PrefixedKVStore)(nil)

// NewPrefixedKVStore namespaces parent under a single prefix component.
func NewPrefixedKVStore(prefix []byte, parent KVStore) *PrefixedKVStore {
	return NewMultilevelKVStore([][]byte{prefix}, parent)
}

// NewMultilevelKVStore namespaces parent under a sequence of prefix
// components, e.g. ["allowances", owner].
func NewMultilevelKVStore(prefixes [][]byte, parent KVStore) *PrefixedKVStore {
	var prefix []byte
	for _, p := range prefixes {
		prefix = append(prefix, lengthPrefixed(p)...)
	}
	return &PrefixedKVStore{prefix: prefix, parent: parent}
}

// lengthPrefixed encodes one prefix component as big-endian uint16 length
// followed by the component bytes.
func lengthPrefixed(component []byte) []byte {
	if len(component) > 0xFFFF {
		panic("prefix component longer than 65535 bytes")
	}
	out := make([]byte, 2+len(component))
	binary.BigEndian.PutUint16(out, uint16(len(component)))
	copy(out[2:], component)
	return out
}

func (s *PrefixedKVStore) key(key []byte) []byte {
	out := make([]byte, 0, len(s.prefix)+len(key))
	out = append(out, s.prefix...)
	return append(out, key...)
}

func (s *PrefixedKVStore) Get(key []byte) []byte {
	return s.parent.Get(s.key(key))
}

func (s *PrefixedKVStore) Set(key, value []byte) {
	s.parent.Set(s.key(key), value)
}

func (s *PrefixedKVStore) Delete(key []byte) {
	s.parent.Delete(s.key(key))
}
