// Package storage provides the byte-key/byte-value abstraction the bridge
// core is built against. The core never talks to a concrete backend; it only
// assumes Get/Set/Delete, a Has check and a prefix namespacing operator,
// matching a smart-contract host's key-value storage primitive.
package storage

import (
	"fmt"
	"sort"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"
)

// KVStore is the minimal persistence primitive the bridge core requires.
// Implementations need not support transactions; the host is assumed to
// snapshot/commit the write set around each invocation.
type KVStore interface {
	Get(key []byte) ([]byte, bool, error)
	Set(key []byte, value []byte) error
	Delete(key []byte) error
	Has(key []byte) (bool, error)
}

// Prefixed returns a view of store scoped under prefix. Keys passed to the
// returned store are transparently prepended with prefix; callers never see
// the prefix in their own key space.
func Prefixed(store KVStore, prefix []byte) KVStore {
	return &prefixedStore{store: store, prefix: append([]byte(nil), prefix...)}
}

type prefixedStore struct {
	store  KVStore
	prefix []byte
}

func (p *prefixedStore) scopedKey(key []byte) []byte {
	buf := make([]byte, len(p.prefix)+len(key))
	copy(buf, p.prefix)
	copy(buf[len(p.prefix):], key)
	return buf
}

func (p *prefixedStore) Get(key []byte) ([]byte, bool, error) {
	return p.store.Get(p.scopedKey(key))
}

func (p *prefixedStore) Set(key []byte, value []byte) error {
	return p.store.Set(p.scopedKey(key), value)
}

func (p *prefixedStore) Delete(key []byte) error {
	return p.store.Delete(p.scopedKey(key))
}

func (p *prefixedStore) Has(key []byte) (bool, error) {
	return p.store.Has(p.scopedKey(key))
}

// MemStore is an in-memory KVStore, primarily for tests and local simulation
// via cmd/bridgectl. Every method takes an internal read/write lock, so
// concurrent calls on one MemStore are safe.
type MemStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemStore constructs an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{data: make(map[string][]byte)}
}

func (m *MemStore) Get(key []byte) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.data[string(key)]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), value...), true, nil
}

func (m *MemStore) Set(key []byte, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[string(key)] = append([]byte(nil), value...)
	return nil
}

func (m *MemStore) Delete(key []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, string(key))
	return nil
}

func (m *MemStore) Has(key []byte) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.data[string(key)]
	return ok, nil
}

// Keys returns a sorted snapshot of every key currently stored, primarily
// useful for debugging.
func (m *MemStore) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// LevelStore is a persistent KVStore backed by goleveldb, used when the
// operator configures a durable storage path rather than the in-memory
// backend.
type LevelStore struct {
	db *leveldb.DB
}

// NewLevelStore opens (creating if absent) a LevelDB database at path.
func NewLevelStore(path string) (*LevelStore, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("storage: open leveldb at %q: %w", path, err)
	}
	return &LevelStore{db: db}, nil
}

func (l *LevelStore) Get(key []byte) ([]byte, bool, error) {
	value, err := l.db.Get(key, nil)
	if err == leveldb.ErrNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

func (l *LevelStore) Set(key []byte, value []byte) error {
	return l.db.Put(key, value, nil)
}

func (l *LevelStore) Delete(key []byte) error {
	return l.db.Delete(key, nil)
}

func (l *LevelStore) Has(key []byte) (bool, error) {
	return l.db.Has(key, nil)
}

// Close releases the underlying LevelDB handle.
func (l *LevelStore) Close() error {
	return l.db.Close()
}

// IteratePrefix invokes fn for every key/value pair stored under prefix, in
// key order, stopping early if fn returns false. Nothing in the bridge core
// calls it; the core never range-scans (see SPEC_FULL.md §9).
func (l *LevelStore) IteratePrefix(prefix []byte, fn func(key, value []byte) bool) error {
	iter := l.db.NewIterator(util.BytesPrefix(prefix), nil)
	defer iter.Release()
	for iter.Next() {
		if !fn(append([]byte(nil), iter.Key()...), append([]byte(nil), iter.Value()...)) {
			break
		}
	}
	return iter.Error()
}
