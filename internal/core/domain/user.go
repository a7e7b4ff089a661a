package domain

import "time"

type UserID string

const DefaultDisplayName = "Unspecified"

// User is the persisted identity record. Credential holds a bcrypt hash,
// never the password itself. Sessions is the set of live login tokens.
type User struct {
	ID         UserID    `json:"uid"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Credential string    `json:"credential"`
	Sessions   []Session `json:"sessions"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Session is one active login token, identified by the jti claim of the
// JWT handed to the client. Expired entries are pruned on sign-in.
type Session struct {
	TokenID   string    `json:"tokenId"`
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (s Session) ExpiredAt(t time.Time) bool {
	return !t.Before(s.ExpiresAt)
}

// FindSession returns the session with the given token ID, if present.
func (u *User) FindSession(tokenID string) (Session, bool) {
	for _, s := range u.Sessions {
		if s.TokenID == tokenID {
			return s, true
		}
	}
	return Session{}, false
}

// AddSession appends a session, replacing any stale entry with the same token ID.
func (u *User) AddSession(s Session) {
	u.RemoveSession(s.TokenID)
	u.Sessions = append(u.Sessions, s)
}

// RemoveSession deletes the session with the given token ID and reports
// whether it was present.
func (u *User) RemoveSession(tokenID string) bool {
	for i, s := range u.Sessions {
		if s.TokenID == tokenID {
			u.Sessions = append(u.Sessions[:i], u.Sessions[i+1:]...)
			return true
		}
	}
	return false
}

// PruneSessions drops sessions that are expired as of t.
func (u *User) PruneSessions(t time.Time) {
	kept := u.Sessions[:0]
	for _, s := range u.Sessions {
		if !s.ExpiredAt(t) {
			kept = append(kept, s)
		}
	}
	u.Sessions = kept
}

// PublicUser is the client-facing view of a user with credential and
// session state stripped.
type PublicUser struct {
	ID        UserID    `json:"uid"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
	}
}

// UserPatch carries optional profile updates. Nil means "leave untouched",
// so an explicit empty string is a deliberate value.
type UserPatch struct {
	Name *string
}
