package auth

import (
	"context"
	"sync"
	"time"
)

// Known roles. Role values outside this set never pass a route guard.
const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
	RoleStudent = "student"
)

// Profile is the cached identity of the logged-in user.
type Profile struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Session is the per-browser state held server-side behind the session
// cookie. User is non-nil exactly while a login is in effect.
type Session struct {
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	User         *Profile `json:"user"`
	Flash        string   `json:"flash,omitempty"`
	FlashError   string   `json:"flash_error,omitempty"`
}

// Store persists sessions keyed by session id. Implementations expire
// entries after the TTL given at construction.
type Store interface {
	Get(ctx context.Context, sid string) (Session, bool, error)
	Put(ctx context.Context, sid string, sess Session) error
	Delete(ctx context.Context, sid string) error
	Healthy(ctx context.Context) bool
}

// MemoryStore is a map-backed store for dev and tests.
type MemoryStore struct {
	ttl time.Duration
	mu  sync.Mutex
	m   map[string]memEntry
}

type memEntry struct {
	sess    Session
	expires time.Time
}

// NewMemoryStore creates an in-memory store with the given session TTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &MemoryStore{ttl: ttl, m: make(map[string]memEntry)}
}

// Get returns the session for sid if present and unexpired.
func (s *MemoryStore) Get(_ context.Context, sid string) (Session, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.m[sid]
	if !ok {
		return Session{}, false, nil
	}
	if time.Now().After(e.expires) {
		delete(s.m, sid)
		return Session{}, false, nil
	}
	return e.sess, true, nil
}

// Put stores the session, resetting its TTL.
func (s *MemoryStore) Put(_ context.Context, sid string, sess Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[sid] = memEntry{sess: sess, expires: time.Now().Add(s.ttl)}
	return nil
}

// Delete removes the session. Deleting an absent session is a no-op.
func (s *MemoryStore) Delete(_ context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, sid)
	return nil
}

// Healthy always succeeds for the in-memory backend.
func (s *MemoryStore) Healthy(context.Context) bool { return true }
