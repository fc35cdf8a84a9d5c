package auth

import "sync"

// RevokedSet records logged-out bearer tokens for the lifetime of the
// process. Not persisted: a restart clears it, which is acceptable
// because the tokens themselves expire. Safe for concurrent use by
// in-flight requests.
//
// Entries are never pruned; tokens outlive their own expiry in the set.
// TODO: sweep entries older than the refresh TTL if memory ever matters.
type RevokedSet struct {
	mu     sync.RWMutex
	tokens map[string]struct{}
}

// NewRevokedSet returns an empty set.
func NewRevokedSet() *RevokedSet {
	return &RevokedSet{tokens: make(map[string]struct{})}
}

// Add marks a token as revoked. Idempotent.
func (s *RevokedSet) Add(token string) {
	s.mu.Lock()
	s.tokens[token] = struct{}{}
	s.mu.Unlock()
}

// Contains reports whether the token has been revoked.
func (s *RevokedSet) Contains(token string) bool {
	s.mu.RLock()
	_, ok := s.tokens[token]
	s.mu.RUnlock()
	return ok
}

// Len returns the number of revoked tokens.
func (s *RevokedSet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tokens)
}
