package ports

import (
	"context"

	"huddle/internal/core/domain"
)

type UserRepository interface {
	// Create persists a new user and enforces email uniqueness, returning
	// domain.ErrDuplicateEmail when the address is already taken.
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id domain.UserID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	// SearchByName and SearchByEmail match case-insensitive substrings.
	SearchByName(ctx context.Context, query string) ([]*domain.User, error)
	SearchByEmail(ctx context.Context, query string) ([]*domain.User, error)
}

type FriendshipRepository interface {
	// Get looks up the record for the unordered pair (a, b), returning
	// domain.ErrFriendNotFound when none exists.
	Get(ctx context.Context, a, b domain.UserID) (*domain.Friendship, error)
	Put(ctx context.Context, friendship *domain.Friendship) error
	Delete(ctx context.Context, a, b domain.UserID) error
	ListByUser(ctx context.Context, id domain.UserID) ([]*domain.Friendship, error)
}

type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) error
	GetByID(ctx context.Context, id domain.EventID) (*domain.Event, error)
	Update(ctx context.Context, event *domain.Event) error
	Delete(ctx context.Context, id domain.EventID) error
	FindByHost(ctx context.Context, hostID domain.UserID) ([]*domain.Event, error)
	FindByMember(ctx context.Context, memberID domain.UserID) ([]*domain.Event, error)
}
