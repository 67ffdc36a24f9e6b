package auth

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"
)

// Identity is the authenticated principal a session resolves to. All fields
// are written together at creation and read together thereafter.
type Identity struct {
	UserID    uint
	UserEmail string
	UserName  string
}

// SessionStore maps opaque tokens to identities. The token is the only thing
// the client ever holds; it carries no user-readable data.
type SessionStore interface {
	Create(identity Identity) (string, error)
	Load(token string) (Identity, bool)
	Destroy(token string) error
}

type memorySession struct {
	identity  Identity
	expiresAt time.Time
}

// MemoryStore is a thread-safe in-memory session store with a fixed lifetime
// per session, counted from creation.
type MemoryStore struct {
	mu       sync.RWMutex
	ttl      time.Duration
	sessions map[string]memorySession
}

var _ SessionStore = (*MemoryStore)(nil)

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:      ttl,
		sessions: make(map[string]memorySession),
	}
}

// Create stores a new session and returns its token.
func (s *MemoryStore) Create(identity Identity) (string, error) {
	token := randomHex(16)
	s.mu.Lock()
	s.sessions[token] = memorySession{
		identity:  identity,
		expiresAt: time.Now().Add(s.ttl),
	}
	s.mu.Unlock()
	return token, nil
}

// Load returns the identity bound to token. A missing or expired session
// reports absent; expired entries are removed on the way out.
func (s *MemoryStore) Load(token string) (Identity, bool) {
	s.mu.RLock()
	sess, ok := s.sessions[token]
	s.mu.RUnlock()
	if !ok {
		return Identity{}, false
	}
	if time.Now().After(sess.expiresAt) {
		_ = s.Destroy(token)
		return Identity{}, false
	}
	return sess.identity, true
}

// Destroy removes a session. Destroying an absent session is not an error.
func (s *MemoryStore) Destroy(token string) error {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
	return nil
}

// StartSweeping reaps expired sessions on the given interval until the
// returned stop function is called.
func (s *MemoryStore) StartSweeping(interval time.Duration) (stop func()) {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.sweep()
			case <-done:
				return
			}
		}
	}()
	return func() { close(done) }
}

func (s *MemoryStore) sweep() {
	now := time.Now()
	s.mu.Lock()
	for token, sess := range s.sessions {
		if now.After(sess.expiresAt) {
			delete(s.sessions, token)
		}
	}
	s.mu.Unlock()
}

func randomHex(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		panic(err) // crypto/rand never fails on supported platforms
	}
	return hex.EncodeToString(buf)
}
