package domain

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrEventNotFound      = errors.New("event not found")
	ErrFriendNotFound     = errors.New("friendship not found")
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token expired")
	ErrCredentialMismatch = errors.New("credential mismatch")
	ErrNotEventHost       = errors.New("not the event host")
	ErrAlreadyVisited     = errors.New("event already visited")
	ErrInvalidJoinKey     = errors.New("invalid join key")
	ErrSelfRelation       = errors.New("cannot befriend yourself")
)
