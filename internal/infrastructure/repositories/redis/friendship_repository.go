package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"huddle/internal/core/domain"
	"huddle/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

type RedisFriendshipRepository struct {
	client *redis.Client
	prefix string
}

func NewRedisFriendshipRepository(client *redis.Client) ports.FriendshipRepository {
	return &RedisFriendshipRepository{
		client: client,
		prefix: "huddle:friendship:",
	}
}

func (r *RedisFriendshipRepository) pairDocKey(pairKey string) string {
	return r.prefix + pairKey
}

// userIndexKey holds the pair keys of every friendship the user is part of.
func (r *RedisFriendshipRepository) userIndexKey(id domain.UserID) string {
	return r.prefix + "user:" + string(id)
}

func (r *RedisFriendshipRepository) Get(ctx context.Context, a, b domain.UserID) (*domain.Friendship, error) {
	return r.getByPairKey(ctx, domain.PairKey(a, b))
}

func (r *RedisFriendshipRepository) getByPairKey(ctx context.Context, pairKey string) (*domain.Friendship, error) {
	data, err := r.client.Get(ctx, r.pairDocKey(pairKey)).Result()
	if err == redis.Nil {
		return nil, domain.ErrFriendNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get friendship from Redis: %w", err)
	}

	var friendship domain.Friendship
	if err := json.Unmarshal([]byte(data), &friendship); err != nil {
		return nil, fmt.Errorf("failed to unmarshal friendship: %w", err)
	}
	return &friendship, nil
}

func (r *RedisFriendshipRepository) Put(ctx context.Context, friendship *domain.Friendship) error {
	data, err := json.Marshal(friendship)
	if err != nil {
		return fmt.Errorf("failed to marshal friendship: %w", err)
	}

	if err := r.client.Set(ctx, r.pairDocKey(friendship.PairKey), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to set friendship in Redis: %w", err)
	}

	for _, id := range []domain.UserID{friendship.RequesterID, friendship.AddresseeID} {
		if err := r.client.SAdd(ctx, r.userIndexKey(id), friendship.PairKey).Err(); err != nil {
			return fmt.Errorf("failed to index friendship in Redis: %w", err)
		}
	}
	return nil
}

func (r *RedisFriendshipRepository) Delete(ctx context.Context, a, b domain.UserID) error {
	pairKey := domain.PairKey(a, b)

	if err := r.client.Del(ctx, r.pairDocKey(pairKey)).Err(); err != nil {
		return fmt.Errorf("failed to delete friendship from Redis: %w", err)
	}

	for _, id := range []domain.UserID{a, b} {
		if err := r.client.SRem(ctx, r.userIndexKey(id), pairKey).Err(); err != nil {
			return fmt.Errorf("failed to unindex friendship in Redis: %w", err)
		}
	}
	return nil
}

func (r *RedisFriendshipRepository) ListByUser(ctx context.Context, id domain.UserID) ([]*domain.Friendship, error) {
	pairKeys, err := r.client.SMembers(ctx, r.userIndexKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read friendship index from Redis: %w", err)
	}

	var friendships []*domain.Friendship
	for _, pairKey := range pairKeys {
		friendship, err := r.getByPairKey(ctx, pairKey)
		if err != nil {
			// Skip index entries whose document no longer exists
			continue
		}
		friendships = append(friendships, friendship)
	}
	return friendships, nil
}
