package ports

import (
	"context"

	"huddle/internal/core/domain"
)

type UserService interface {
	Register(ctx context.Context, email, password string) (*domain.User, error)
	GetByID(ctx context.Context, id domain.UserID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id domain.UserID, patch domain.UserPatch) (*domain.User, error)
	Search(ctx context.Context, query string) ([]*domain.User, error)
	SearchByName(ctx context.Context, query string) ([]*domain.User, error)
	SearchByEmail(ctx context.Context, query string) ([]*domain.User, error)
}

type SessionService interface {
	// SignIn verifies the password and issues a fresh login token recorded
	// in the user's session set.
	SignIn(ctx context.Context, email, password string) (string, *domain.User, error)
	// Validate is the authorization gate: it returns the user only when the
	// token is validly signed, unexpired and still present in the session set.
	Validate(ctx context.Context, email, token string) (*domain.User, error)
	// SignOut revokes the token. An expired but validly signed token is
	// accepted so clients can always terminate a session.
	SignOut(ctx context.Context, email, token string) error
}

type FriendService interface {
	// RequestOrAccept is the single state-transition entry point: it creates
	// a pending request, accepts one when the actor is the addressee, and is
	// a no-op when the transition is already done.
	RequestOrAccept(ctx context.Context, actorID, targetID domain.UserID) (*domain.Friendship, error)
	// Remove deletes the relationship in any state, from either side.
	Remove(ctx context.Context, actorID, targetID domain.UserID) error
	List(ctx context.Context, userID domain.UserID) ([]domain.RelationshipEntry, error)
	Get(ctx context.Context, userID, peerID domain.UserID) (domain.RelationshipEntry, error)
}

type EventService interface {
	Create(ctx context.Context, hostID domain.UserID, title string, members []domain.UserID, startTime, endTime int64) (*domain.Event, error)
	Update(ctx context.Context, actorID domain.UserID, id domain.EventID, patch domain.EventPatch) (*domain.Event, error)
	Delete(ctx context.Context, actorID domain.UserID, id domain.EventID) error
	GetByID(ctx context.Context, id domain.EventID) (*domain.Event, error)
	ListByHost(ctx context.Context, hostID domain.UserID, activeOnly bool) ([]*domain.Event, error)
	ListByMember(ctx context.Context, memberID domain.UserID, activeOnly bool) ([]*domain.Event, error)
	// RecordVisit credits a visit via a "<userID>:<eventID>" key. The user
	// component must match the authenticated actor.
	RecordVisit(ctx context.Context, actorID domain.UserID, key string) (*domain.Event, error)
}
