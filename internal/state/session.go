package state

import "github.com/atomicstack/storefront-account/internal/account"

// SessionStore holds the signed-in user's identity and role. The role is
// refreshed from the role service and read on every render.
type SessionStore interface {
	UserID() string
	SetUserID(string)
	Role() account.Role
	SetRole(account.Role)
}

type sessionStore struct {
	userID string
	role   account.Role
}

func NewSessionStore(userID string, role account.Role) SessionStore {
	return &sessionStore{userID: userID, role: role}
}

func (s *sessionStore) UserID() string {
	return s.userID
}

func (s *sessionStore) SetUserID(id string) {
	s.userID = id
}

func (s *sessionStore) Role() account.Role {
	return s.role
}

func (s *sessionStore) SetRole(role account.Role) {
	s.role = role
}
