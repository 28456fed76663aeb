package auth

import (
	"context"
	"hash/fnv"
	"sync"
	"time"
)

const keyShardCount = 32

// SessionKey is the signing secret of one login session.
type SessionKey struct {
	Owner    string
	Key      []byte
	IssuedAt time.Time
}

// KeyRegistry maps a username to its current SessionKey. It holds at most one
// key per user: a new login replaces the previous key, which invalidates every
// token signed with it. Entries live only in process memory.
//
// The map is split into shards, each behind its own RWMutex, so validations
// for different users do not serialize on one lock.
//
// Every Remove also bumps the owner's revocation generation. A login reads the
// generation before it checks credentials and installs its key with
// PutIfGeneration, so a revocation that lands in between wins.
type KeyRegistry struct {
	shards [keyShardCount]keyShard
}

type keyShard struct {
	mu          sync.RWMutex
	keys        map[string]SessionKey
	generations map[string]uint64
}

func NewKeyRegistry() *KeyRegistry {
	r := &KeyRegistry{}
	for i := range r.shards {
		r.shards[i].keys = make(map[string]SessionKey)
		r.shards[i].generations = make(map[string]uint64)
	}
	return r
}

func (r *KeyRegistry) shard(owner string) *keyShard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(owner))
	return &r.shards[h.Sum32()%keyShardCount]
}

// Put stores a copy of key as owner's current key, replacing any previous one.
func (r *KeyRegistry) Put(owner string, key []byte, issuedAt time.Time) SessionKey {
	sk := SessionKey{Owner: owner, Key: cloneBytes(key), IssuedAt: issuedAt}

	s := r.shard(owner)
	s.mu.Lock()
	s.keys[owner] = sk
	s.mu.Unlock()

	return SessionKey{Owner: owner, Key: cloneBytes(sk.Key), IssuedAt: issuedAt}
}

// Generation returns owner's revocation generation.
func (r *KeyRegistry) Generation(owner string) uint64 {
	s := r.shard(owner)
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generations[owner]
}

// PutIfGeneration stores key like Put, but only while owner's revocation
// generation still equals gen. It reports whether the key was stored.
func (r *KeyRegistry) PutIfGeneration(owner string, key []byte, issuedAt time.Time, gen uint64) (SessionKey, bool) {
	sk := SessionKey{Owner: owner, Key: cloneBytes(key), IssuedAt: issuedAt}

	s := r.shard(owner)
	s.mu.Lock()
	if s.generations[owner] != gen {
		s.mu.Unlock()
		return SessionKey{}, false
	}
	s.keys[owner] = sk
	s.mu.Unlock()

	return SessionKey{Owner: owner, Key: cloneBytes(sk.Key), IssuedAt: issuedAt}, true
}

// Get returns a copy of owner's current key.
func (r *KeyRegistry) Get(owner string) (SessionKey, bool) {
	s := r.shard(owner)
	s.mu.RLock()
	sk, ok := s.keys[owner]
	s.mu.RUnlock()

	if !ok {
		return SessionKey{}, false
	}
	sk.Key = cloneBytes(sk.Key)
	return sk, true
}

// Remove drops owner's key and revokes logins still in flight. It reports
// whether a key was present.
func (r *KeyRegistry) Remove(owner string) bool {
	s := r.shard(owner)
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generations[owner]++
	if _, ok := s.keys[owner]; !ok {
		return false
	}
	delete(s.keys, owner)
	return true
}

func (r *KeyRegistry) Len() int {
	n := 0
	for i := range r.shards {
		s := &r.shards[i]
		s.mu.RLock()
		n += len(s.keys)
		s.mu.RUnlock()
	}
	return n
}

// Sweep removes keys issued before cutoff and returns how many were dropped.
// With cutoff = now - token TTL only keys whose tokens have all expired go.
func (r *KeyRegistry) Sweep(cutoff time.Time) int {
	removed := 0
	for i := range r.shards {
		s := &r.shards[i]
		s.mu.Lock()
		for owner, sk := range s.keys {
			if sk.IssuedAt.Before(cutoff) {
				delete(s.keys, owner)
				removed++
			}
		}
		s.mu.Unlock()
	}
	return removed
}

// SweepEvery calls Sweep(now() - maxAge) on every tick until ctx is done.
// onSweep, when set, receives the number of removed keys.
func (r *KeyRegistry) SweepEvery(ctx context.Context, interval, maxAge time.Duration, now func() time.Time, onSweep func(removed int)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n := r.Sweep(now().Add(-maxAge))
			if onSweep != nil {
				onSweep(n)
			}
		}
	}
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
