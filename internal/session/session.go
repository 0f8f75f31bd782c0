// Package session provides in-memory HTTP session management.
// Sessions are identified by a secure cookie and kept in a mutex-guarded
// map with TTL expiry checked on access. Like the rest of the shop's
// runtime state they do not survive a restart.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"sync"
	"time"
)

const (
	// CookieName is the name of the session cookie sent to the browser.
	CookieName = "fs_session"

	// DefaultTTL is how long a session lives before expiry.
	DefaultTTL = 24 * time.Hour

	// idLength is the byte length of the random session ID (32 bytes = 64 hex chars).
	idLength = 32
)

// Data holds the session payload for an authenticated admin.
type Data struct {
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type entry struct {
	data      Data
	expiresAt time.Time
}

// Store manages session lifecycle in process memory.
type Store struct {
	mu       sync.Mutex
	sessions map[string]entry
	ttl      time.Duration
	now      func() time.Time
}

// NewStore creates an empty session store with the default TTL.
func NewStore() *Store {
	return &Store{
		sessions: make(map[string]entry),
		ttl:      DefaultTTL,
		now:      time.Now,
	}
}

// Create generates a new session and sets the session cookie on the
// response. Returns the session ID.
func (s *Store) Create(w http.ResponseWriter, data *Data) (string, error) {
	id, err := generateID()
	if err != nil {
		return "", err
	}

	data.CreatedAt = s.now()

	s.mu.Lock()
	s.sessions[id] = entry{data: *data, expiresAt: data.CreatedAt.Add(s.ttl)}
	s.mu.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   false, // Set to true behind TLS in production
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(s.ttl.Seconds()),
	})

	return id, nil
}

// Get retrieves session data using the session ID from the request
// cookie. Returns nil if no valid session exists; expired sessions are
// removed on access.
func (s *Store) Get(r *http.Request) *Data {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil // No cookie = no session (not an error)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[cookie.Value]
	if !ok {
		return nil
	}
	if s.now().After(e.expiresAt) {
		delete(s.sessions, cookie.Value)
		return nil
	}

	data := e.data
	return &data
}

// Destroy removes the session and clears the cookie.
func (s *Store) Destroy(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(CookieName); err == nil {
		s.mu.Lock()
		delete(s.sessions, cookie.Value)
		s.mu.Unlock()
	}

	// Expire the cookie immediately.
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

// generateID creates a cryptographically random session identifier.
func generateID() (string, error) {
	b := make([]byte, idLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
