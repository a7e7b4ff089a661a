package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"huddle/internal/core/domain"
	"huddle/internal/core/ports"
	"huddle/pkg/utils"

	"github.com/redis/go-redis/v9"
)

type RedisUserRepository struct {
	client *redis.Client
	prefix string
}

func NewRedisUserRepository(client *redis.Client) ports.UserRepository {
	return &RedisUserRepository{
		client: client,
		prefix: "huddle:user:",
	}
}

func (r *RedisUserRepository) userKey(id domain.UserID) string {
	return r.prefix + string(id)
}

// emailKey is the unique email -> user id index.
func (r *RedisUserRepository) emailKey(email string) string {
	return r.prefix + "email:" + email
}

// allUsersKey is the index set scanned by the search operations.
func (r *RedisUserRepository) allUsersKey() string {
	return r.prefix + "all"
}

func (r *RedisUserRepository) Create(ctx context.Context, user *domain.User) error {
	// Claim the email first; SETNX makes the uniqueness check atomic even
	// across racing registrations.
	claimed, err := r.client.SetNX(ctx, r.emailKey(user.Email), string(user.ID), 0).Result()
	if err != nil {
		return fmt.Errorf("failed to claim email in Redis: %w", err)
	}
	if !claimed {
		return domain.ErrDuplicateEmail
	}

	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}

	if err := r.client.Set(ctx, r.userKey(user.ID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to set user in Redis: %w", err)
	}

	if err := r.client.SAdd(ctx, r.allUsersKey(), string(user.ID)).Err(); err != nil {
		return fmt.Errorf("failed to add user to index: %w", err)
	}

	return nil
}

func (r *RedisUserRepository) GetByID(ctx context.Context, id domain.UserID) (*domain.User, error) {
	data, err := r.client.Get(ctx, r.userKey(id)).Result()
	if err == redis.Nil {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user from Redis: %w", err)
	}

	var user domain.User
	if err := json.Unmarshal([]byte(data), &user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}
	return &user, nil
}

func (r *RedisUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	id, err := r.client.Get(ctx, r.emailKey(email)).Result()
	if err == redis.Nil {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve email in Redis: %w", err)
	}
	return r.GetByID(ctx, domain.UserID(id))
}

func (r *RedisUserRepository) Update(ctx context.Context, user *domain.User) error {
	if _, err := r.GetByID(ctx, user.ID); err != nil {
		return err
	}

	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}

	if err := r.client.Set(ctx, r.userKey(user.ID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to update user in Redis: %w", err)
	}
	return nil
}

func (r *RedisUserRepository) SearchByName(ctx context.Context, query string) ([]*domain.User, error) {
	return r.search(ctx, func(u *domain.User) bool {
		return utils.ContainsFold(u.Name, query)
	})
}

func (r *RedisUserRepository) SearchByEmail(ctx context.Context, query string) ([]*domain.User, error) {
	return r.search(ctx, func(u *domain.User) bool {
		return utils.ContainsFold(u.Email, query)
	})
}

func (r *RedisUserRepository) search(ctx context.Context, match func(*domain.User) bool) ([]*domain.User, error) {
	ids, err := r.client.SMembers(ctx, r.allUsersKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read user index from Redis: %w", err)
	}

	var matched []*domain.User
	for _, id := range ids {
		user, err := r.GetByID(ctx, domain.UserID(id))
		if err != nil {
			// Skip index entries whose document no longer exists
			continue
		}
		if match(user) {
			matched = append(matched, user)
		}
	}
	return matched, nil
}
