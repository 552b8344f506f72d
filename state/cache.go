package state

// CacheKVStore buffers all writes to a parent store until Write is called.
// A handler that fails mid-way is simply never committed, which gives
// handlers the same revert-on-error storage semantics contracts get from
// their host.
type CacheKVStore struct {
	parent KVStore
	writes map[string][]byte // nil value marks a staged deletion
}

var _ KVStore = (*CacheKVStore)(nil)

func NewCacheKVStore(parent KVStore) *CacheKVStore {
	return &CacheKVStore{
		parent: parent,
		writes: make(map[string][]byte),
	}
}

// Get returns staged values first, falling back to the parent store.
// Staged deletions read back as "not present".
func (s *CacheKVStore) Get(key []byte) []byte {
	if value, ok := s.writes[string(key)]; ok {
		return value
	}
	return s.parent.Get(key)
}

func (s *CacheKVStore) Set(key, value []byte) {
	s.writes[string(key)] = append([]byte(nil), value...)
}

func (s *CacheKVStore) Delete(key []byte) {
	s.writes[string(key)] = nil
}

// Write flushes all staged writes to the parent store. The write order is
// not deterministic, which is fine for independent keys.
func (s *CacheKVStore) Write() {
	for key, value := range s.writes {
		if value == nil {
			s.parent.Delete([]byte(key))
		} else {
			s.parent.Set([]byte(key), value)
		}
	}
}
