package auth

import "sync"

// SessionProvider holds the opaque current-user id supplied by the session
// bootstrap. The authentication flow itself lives outside the core; this
// only observes authenticated / not-authenticated transitions.
type SessionProvider struct {
	mu     sync.RWMutex
	userID string
}

func NewSessionProvider(initialUserID string) *SessionProvider {
	return &SessionProvider{userID: initialUserID}
}

func (p *SessionProvider) SetCurrentUser(userID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.userID = userID
}

func (p *SessionProvider) ClearCurrentUser() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.userID = ""
}

// CurrentUserID returns the signed-in user id, false when nobody is
// signed in.
func (p *SessionProvider) CurrentUserID() (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.userID == "" {
		return "", false
	}
	return p.userID, true
}
