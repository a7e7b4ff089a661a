package memory

import (
	"context"
	"fmt"
	"sync"

	"huddle/internal/core/domain"
	"huddle/internal/core/ports"
)

type MemoryEventRepository struct {
	events map[domain.EventID]*domain.Event
	mu     sync.RWMutex
}

func NewMemoryEventRepository() ports.EventRepository {
	return &MemoryEventRepository{
		events: make(map[domain.EventID]*domain.Event),
	}
}

func (r *MemoryEventRepository) Create(ctx context.Context, event *domain.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.events[event.ID]; exists {
		return fmt.Errorf("event already exists: %s", event.ID)
	}
	r.events[event.ID] = event
	return nil
}

func (r *MemoryEventRepository) GetByID(ctx context.Context, id domain.EventID) (*domain.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	event, exists := r.events[id]
	if !exists {
		return nil, domain.ErrEventNotFound
	}
	return event, nil
}

func (r *MemoryEventRepository) Update(ctx context.Context, event *domain.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.events[event.ID]; !exists {
		return domain.ErrEventNotFound
	}
	r.events[event.ID] = event
	return nil
}

func (r *MemoryEventRepository) Delete(ctx context.Context, id domain.EventID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.events[id]; !exists {
		return domain.ErrEventNotFound
	}
	delete(r.events, id)
	return nil
}

func (r *MemoryEventRepository) FindByHost(ctx context.Context, hostID domain.UserID) ([]*domain.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*domain.Event
	for _, event := range r.events {
		if event.HostID == hostID {
			matched = append(matched, event)
		}
	}
	return matched, nil
}

func (r *MemoryEventRepository) FindByMember(ctx context.Context, memberID domain.UserID) ([]*domain.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*domain.Event
	for _, event := range r.events {
		if event.IsMember(memberID) {
			matched = append(matched, event)
		}
	}
	return matched, nil
}
