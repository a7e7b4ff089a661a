package services

import (
	"context"
	"errors"
	"time"

	"huddle/internal/core/domain"
	"huddle/internal/core/ports"
	"huddle/internal/infrastructure/monitoring"
)

type friendService struct {
	users       ports.UserRepository
	friendships ports.FriendshipRepository
	metrics     *monitoring.PrometheusCollector
}

func NewFriendService(
	users ports.UserRepository,
	friendships ports.FriendshipRepository,
	metrics *monitoring.PrometheusCollector,
) ports.FriendService {
	return &friendService{
		users:       users,
		friendships: friendships,
		metrics:     metrics,
	}
}

// RequestOrAccept applies the relationship state machine on the single
// pair-keyed record:
//
//	no record            -> pending request from the actor
//	pending, actor is addressee -> accepted
//	pending, actor is requester -> no-op (re-send)
//	accepted             -> no-op
func (s *friendService) RequestOrAccept(ctx context.Context, actorID, targetID domain.UserID) (*domain.Friendship, error) {
	if actorID == targetID {
		return nil, domain.ErrSelfRelation
	}
	if _, err := s.users.GetByID(ctx, targetID); err != nil {
		return nil, err
	}

	friendship, err := s.friendships.Get(ctx, actorID, targetID)
	if errors.Is(err, domain.ErrFriendNotFound) {
		now := time.Now()
		friendship = &domain.Friendship{
			PairKey:     domain.PairKey(actorID, targetID),
			RequesterID: actorID,
			AddresseeID: targetID,
			State:       domain.FriendshipPending,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := s.friendships.Put(ctx, friendship); err != nil {
			return nil, err
		}
		s.metrics.RecordFriendTransition("requested")
		return friendship, nil
	}
	if err != nil {
		return nil, err
	}

	if friendship.State == domain.FriendshipPending && friendship.AddresseeID == actorID {
		friendship.State = domain.FriendshipAccepted
		friendship.UpdatedAt = time.Now()
		if err := s.friendships.Put(ctx, friendship); err != nil {
			return nil, err
		}
		s.metrics.RecordFriendTransition("accepted")
	}

	return friendship, nil
}

func (s *friendService) Remove(ctx context.Context, actorID, targetID domain.UserID) error {
	if err := s.friendships.Delete(ctx, actorID, targetID); err != nil {
		return err
	}
	s.metrics.RecordFriendTransition("removed")
	return nil
}

func (s *friendService) List(ctx context.Context, userID domain.UserID) ([]domain.RelationshipEntry, error) {
	friendships, err := s.friendships.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.RelationshipEntry, 0, len(friendships))
	for _, f := range friendships {
		entries = append(entries, f.EntryFor(userID))
	}
	return entries, nil
}

func (s *friendService) Get(ctx context.Context, userID, peerID domain.UserID) (domain.RelationshipEntry, error) {
	friendship, err := s.friendships.Get(ctx, userID, peerID)
	if err != nil {
		return domain.RelationshipEntry{}, err
	}
	return friendship.EntryFor(userID), nil
}
