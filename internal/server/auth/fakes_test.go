package auth

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/goldmanager/internal/common"
	"github.com/dmitrijs2005/goldmanager/internal/server/models"
)

type fakeStore struct {
	mu    sync.RWMutex
	users map[string]models.User
	err   error
	calls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: map[string]models.User{}}
}

func (s *fakeStore) add(t interface{ Fatalf(string, ...any) }, name, password string, active bool) {
	digest, err := NewSHA3Hasher().Hash(password)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	s.mu.Lock()
	s.users[name] = models.User{UserName: name, PasswordDigest: digest, Active: active}
	s.mu.Unlock()
}

func (s *fakeStore) setActive(name string, active bool) {
	s.mu.Lock()
	u := s.users[name]
	u.Active = active
	s.users[name] = u
	s.mu.Unlock()
}

func (s *fakeStore) FindActive(ctx context.Context, userName string) (*models.User, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.err != nil {
		return nil, s.err
	}
	u, ok := s.users[userName]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &u, nil
}

// clock is a settable time source.
type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

type fixture struct {
	store *fakeStore
	keys  *KeyRegistry
	clock *clock
	authn *Authenticator
	valid *TokenValidator
}

const testTTL = 30 * time.Minute

func newFixture() *fixture {
	f := &fixture{
		store: newFakeStore(),
		keys:  NewKeyRegistry(),
		clock: &clock{now: time.Unix(1_700_000_000, 0)},
	}
	f.authn = NewAuthenticator(f.store, NewSHA3Hasher(), f.keys, testTTL, WithClock(f.clock.Now))
	f.valid = NewTokenValidator(f.keys, f.store, WithClock(f.clock.Now))
	return f
}

// hookStore runs afterFind once FindActive has answered, to model a write
// that lands between a login's lookup and its key install.
type hookStore struct {
	CredentialStore
	afterFind func()
}

func (s *hookStore) FindActive(ctx context.Context, userName string) (*models.User, error) {
	u, err := s.CredentialStore.FindActive(ctx, userName)
	if s.afterFind != nil {
		s.afterFind()
	}
	return u, err
}
