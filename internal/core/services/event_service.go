package services

import (
	"context"
	"strings"
	"time"

	"huddle/internal/core/domain"
	"huddle/internal/core/ports"
	"huddle/internal/infrastructure/monitoring"
	"huddle/pkg/utils"
)

type eventService struct {
	events  ports.EventRepository
	users   ports.UserRepository
	metrics *monitoring.PrometheusCollector
}

func NewEventService(
	events ports.EventRepository,
	users ports.UserRepository,
	metrics *monitoring.PrometheusCollector,
) ports.EventService {
	return &eventService{
		events:  events,
		users:   users,
		metrics: metrics,
	}
}

func (s *eventService) Create(ctx context.Context, hostID domain.UserID, title string, members []domain.UserID, startTime, endTime int64) (*domain.Event, error) {
	event := &domain.Event{
		ID:             domain.EventID(utils.GenerateEventID()),
		HostID:         hostID,
		Title:          utils.SanitizeString(title),
		StartTime:      startTime,
		EndTime:        endTime,
		Members:        dedupeMembers(members),
		VisitedMembers: []domain.UserID{},
		CreatedAt:      time.Now(),
	}

	if err := s.events.Create(ctx, event); err != nil {
		return nil, err
	}

	s.metrics.RecordEventCreated()
	return event, nil
}

func (s *eventService) Update(ctx context.Context, actorID domain.UserID, id domain.EventID, patch domain.EventPatch) (*domain.Event, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event.HostID != actorID {
		return nil, domain.ErrNotEventHost
	}

	patch.Apply(event)

	if patch.Members != nil {
		event.Members = dedupeMembers(event.Members)
		// Replacing the member list may orphan visit records; drop them so
		// visitedMembers stays a subset of members.
		kept := event.VisitedMembers[:0]
		for _, v := range event.VisitedMembers {
			if event.IsMember(v) {
				kept = append(kept, v)
			}
		}
		event.VisitedMembers = kept
	}

	if err := s.events.Update(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *eventService) Delete(ctx context.Context, actorID domain.UserID, id domain.EventID) error {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if event.HostID != actorID {
		return domain.ErrNotEventHost
	}

	if err := s.events.Delete(ctx, id); err != nil {
		return err
	}

	s.metrics.RecordEventDeleted()
	return nil
}

func (s *eventService) GetByID(ctx context.Context, id domain.EventID) (*domain.Event, error) {
	return s.events.GetByID(ctx, id)
}

func (s *eventService) ListByHost(ctx context.Context, hostID domain.UserID, activeOnly bool) ([]*domain.Event, error) {
	if _, err := s.users.GetByID(ctx, hostID); err != nil {
		return nil, err
	}

	events, err := s.events.FindByHost(ctx, hostID)
	if err != nil {
		return nil, err
	}
	return filterActive(events, activeOnly), nil
}

func (s *eventService) ListByMember(ctx context.Context, memberID domain.UserID, activeOnly bool) ([]*domain.Event, error) {
	if _, err := s.users.GetByID(ctx, memberID); err != nil {
		return nil, err
	}

	events, err := s.events.FindByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	return filterActive(events, activeOnly), nil
}

func (s *eventService) RecordVisit(ctx context.Context, actorID domain.UserID, key string) (*domain.Event, error) {
	parts := strings.SplitN(key, ":", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return nil, domain.ErrInvalidJoinKey
	}

	// The uid half of the key must belong to the authenticated caller, so a
	// session cannot credit a visit for another member.
	if domain.UserID(parts[0]) != actorID {
		return nil, domain.ErrInvalidJoinKey
	}

	event, err := s.events.GetByID(ctx, domain.EventID(parts[1]))
	if err != nil {
		// An unknown event is indistinguishable from a bad key to the caller.
		return nil, domain.ErrInvalidJoinKey
	}

	if !event.IsMember(actorID) {
		return nil, domain.ErrInvalidJoinKey
	}
	if event.HasVisited(actorID) {
		return nil, domain.ErrAlreadyVisited
	}

	event.VisitedMembers = append(event.VisitedMembers, actorID)
	if err := s.events.Update(ctx, event); err != nil {
		return nil, err
	}

	s.metrics.RecordEventVisit()
	return event, nil
}

func filterActive(events []*domain.Event, activeOnly bool) []*domain.Event {
	if !activeOnly {
		return events
	}
	now := time.Now()
	active := make([]*domain.Event, 0, len(events))
	for _, e := range events {
		if e.ActiveAt(now) {
			active = append(active, e)
		}
	}
	return active
}

func dedupeMembers(members []domain.UserID) []domain.UserID {
	seen := make(map[domain.UserID]bool, len(members))
	out := make([]domain.UserID, 0, len(members))
	for _, m := range members {
		if m != "" && !seen[m] {
			seen[m] = true
			out = append(out, m)
		}
	}
	return out
}
