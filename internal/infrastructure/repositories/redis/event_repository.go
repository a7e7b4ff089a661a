package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"huddle/internal/core/domain"
	"huddle/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

type RedisEventRepository struct {
	client *redis.Client
	prefix string
}

func NewRedisEventRepository(client *redis.Client) ports.EventRepository {
	return &RedisEventRepository{
		client: client,
		prefix: "huddle:event:",
	}
}

func (r *RedisEventRepository) eventKey(id domain.EventID) string {
	return r.prefix + string(id)
}

func (r *RedisEventRepository) hostIndexKey(id domain.UserID) string {
	return r.prefix + "host:" + string(id)
}

func (r *RedisEventRepository) memberIndexKey(id domain.UserID) string {
	return r.prefix + "member:" + string(id)
}

func (r *RedisEventRepository) Create(ctx context.Context, event *domain.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := r.client.Set(ctx, r.eventKey(event.ID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to set event in Redis: %w", err)
	}

	if err := r.client.SAdd(ctx, r.hostIndexKey(event.HostID), string(event.ID)).Err(); err != nil {
		return fmt.Errorf("failed to index event host in Redis: %w", err)
	}
	for _, member := range event.Members {
		if err := r.client.SAdd(ctx, r.memberIndexKey(member), string(event.ID)).Err(); err != nil {
			return fmt.Errorf("failed to index event member in Redis: %w", err)
		}
	}
	return nil
}

func (r *RedisEventRepository) GetByID(ctx context.Context, id domain.EventID) (*domain.Event, error) {
	data, err := r.client.Get(ctx, r.eventKey(id)).Result()
	if err == redis.Nil {
		return nil, domain.ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event from Redis: %w", err)
	}

	var event domain.Event
	if err := json.Unmarshal([]byte(data), &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}
	return &event, nil
}

func (r *RedisEventRepository) Update(ctx context.Context, event *domain.Event) error {
	existing, err := r.GetByID(ctx, event.ID)
	if err != nil {
		return err
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := r.client.Set(ctx, r.eventKey(event.ID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to update event in Redis: %w", err)
	}

	// Reconcile the member index with the new member list.
	current := make(map[domain.UserID]bool, len(event.Members))
	for _, member := range event.Members {
		current[member] = true
		if err := r.client.SAdd(ctx, r.memberIndexKey(member), string(event.ID)).Err(); err != nil {
			return fmt.Errorf("failed to index event member in Redis: %w", err)
		}
	}
	for _, member := range existing.Members {
		if !current[member] {
			if err := r.client.SRem(ctx, r.memberIndexKey(member), string(event.ID)).Err(); err != nil {
				return fmt.Errorf("failed to unindex event member in Redis: %w", err)
			}
		}
	}
	return nil
}

func (r *RedisEventRepository) Delete(ctx context.Context, id domain.EventID) error {
	event, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := r.client.Del(ctx, r.eventKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete event from Redis: %w", err)
	}

	if err := r.client.SRem(ctx, r.hostIndexKey(event.HostID), string(id)).Err(); err != nil {
		return fmt.Errorf("failed to unindex event host in Redis: %w", err)
	}
	for _, member := range event.Members {
		if err := r.client.SRem(ctx, r.memberIndexKey(member), string(id)).Err(); err != nil {
			return fmt.Errorf("failed to unindex event member in Redis: %w", err)
		}
	}
	return nil
}

func (r *RedisEventRepository) FindByHost(ctx context.Context, hostID domain.UserID) ([]*domain.Event, error) {
	return r.findByIndex(ctx, r.hostIndexKey(hostID))
}

func (r *RedisEventRepository) FindByMember(ctx context.Context, memberID domain.UserID) ([]*domain.Event, error) {
	return r.findByIndex(ctx, r.memberIndexKey(memberID))
}

func (r *RedisEventRepository) findByIndex(ctx context.Context, indexKey string) ([]*domain.Event, error) {
	ids, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read event index from Redis: %w", err)
	}

	var events []*domain.Event
	for _, id := range ids {
		event, err := r.GetByID(ctx, domain.EventID(id))
		if err != nil {
			// Skip index entries whose document no longer exists
			continue
		}
		events = append(events, event)
	}
	return events, nil
}
