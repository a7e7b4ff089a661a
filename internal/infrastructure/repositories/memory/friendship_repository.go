package memory

import (
	"context"
	"sync"

	"huddle/internal/core/domain"
	"huddle/internal/core/ports"
)

type MemoryFriendshipRepository struct {
	friendships map[string]*domain.Friendship
	mu          sync.RWMutex
}

func NewMemoryFriendshipRepository() ports.FriendshipRepository {
	return &MemoryFriendshipRepository{
		friendships: make(map[string]*domain.Friendship),
	}
}

func (r *MemoryFriendshipRepository) Get(ctx context.Context, a, b domain.UserID) (*domain.Friendship, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	friendship, exists := r.friendships[domain.PairKey(a, b)]
	if !exists {
		return nil, domain.ErrFriendNotFound
	}
	return friendship, nil
}

func (r *MemoryFriendshipRepository) Put(ctx context.Context, friendship *domain.Friendship) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.friendships[friendship.PairKey] = friendship
	return nil
}

// Delete removes the pair record if present. Deleting an absent record is
// not an error: unfriending is unconditional.
func (r *MemoryFriendshipRepository) Delete(ctx context.Context, a, b domain.UserID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.friendships, domain.PairKey(a, b))
	return nil
}

func (r *MemoryFriendshipRepository) ListByUser(ctx context.Context, id domain.UserID) ([]*domain.Friendship, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*domain.Friendship
	for _, f := range r.friendships {
		if f.RequesterID == id || f.AddresseeID == id {
			matched = append(matched, f)
		}
	}
	return matched, nil
}
