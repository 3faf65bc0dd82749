package cart

import (
	"sync"

	"github.com/google/uuid"
)

// Sessions maps session tokens to carts. It is owned by the HTTP server and
// injected into the handlers that need it, so tests get a fresh registry.
type Sessions struct {
	mu    sync.Mutex
	carts map[string]*Cart
}

// NewSessions returns an empty registry.
func NewSessions() *Sessions {
	return &Sessions{carts: make(map[string]*Cart)}
}

// Get returns the cart for the token, creating it on first use. An empty or
// unknown token gets a fresh cart under a new token; the (possibly new)
// token is returned so the handler can set the cookie.
func (s *Sessions) Get(token string) (*Cart, string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token != "" {
		if c, ok := s.carts[token]; ok {
			return c, token
		}
	}
	token = uuid.NewString()
	c := New()
	s.carts[token] = c
	return c, token
}

// Drop forgets the cart for the token, if any.
func (s *Sessions) Drop(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, token)
}
