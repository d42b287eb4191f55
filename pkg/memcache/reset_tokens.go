package mem

import (
	"sync"
	"time"
)

// ResetTokenStore holds single-use password reset tokens with a TTL.
type ResetTokenStore interface {
	Set(token, accountEmail string, ttl time.Duration)

	// Consume returns the email bound to token and removes it, so a token
	// can only reset a password once. Unknown or expired tokens yield "".
	Consume(token string) string
}

type entry struct {
	email     string
	expiresAt time.Time
}

type ResetTokens struct {
	mu   sync.Mutex
	data map[string]entry
}

func NewResetTokens() *ResetTokens {
	return &ResetTokens{
		data: make(map[string]entry),
	}
}

func (s *ResetTokens) Set(token, accountEmail string, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()
	s.data[token] = entry{
		email:     accountEmail,
		expiresAt: time.Now().Add(ttl),
	}
}

func (s *ResetTokens) Consume(token string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.data[token]
	if !ok {
		return ""
	}
	delete(s.data, token)
	if time.Now().After(e.expiresAt) {
		return ""
	}
	return e.email
}

// sweepLocked drops expired entries so abandoned resets do not accumulate.
func (s *ResetTokens) sweepLocked() {
	now := time.Now()
	for token, e := range s.data {
		if now.After(e.expiresAt) {
			delete(s.data, token)
		}
	}
}
