package service

import "sync"

// sessionIdentity is the in-memory [Identity] for the client process. The
// auth service records the owner after a successful login; sign-out clears
// it.
type sessionIdentity struct {
	mu      sync.RWMutex
	ownerID int64
	signed  bool
}

// NewSessionIdentity returns an [Identity] with nobody signed in.
func NewSessionIdentity() *sessionIdentity {
	return &sessionIdentity{}
}

func (s *sessionIdentity) CurrentOwnerID() (int64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ownerID, s.signed
}

// SignIn records ownerID as the authenticated user.
func (s *sessionIdentity) SignIn(ownerID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ownerID = ownerID
	s.signed = true
}

// SignOut clears the authenticated user.
func (s *sessionIdentity) SignOut() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ownerID = 0
	s.signed = false
}
