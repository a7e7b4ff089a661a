package domain

import (
	"strings"
	"time"
)

// RelationshipStatus is one side's view of a friendship.
type RelationshipStatus string

const (
	RelationRequestSent      RelationshipStatus = "REQUEST_SENT"
	RelationRequestReceived  RelationshipStatus = "REQUEST_RECEIVED"
	RelationSenderAccepted   RelationshipStatus = "SENDER_ACCEPTED"
	RelationReceiverAccepted RelationshipStatus = "RECEIVER_ACCEPTED"
)

// FriendshipState is the stored state of the shared relationship record.
type FriendshipState string

const (
	FriendshipPending  FriendshipState = "pending"
	FriendshipAccepted FriendshipState = "accepted"
)

// Friendship is the single record for an unordered pair of users. Both
// sides' statuses are derived from it, so a transition is one write.
type Friendship struct {
	PairKey     string          `json:"pairKey"`
	RequesterID UserID          `json:"requesterId"`
	AddresseeID UserID          `json:"addresseeId"`
	State       FriendshipState `json:"state"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// PairKey builds the canonical key for an unordered user pair.
func PairKey(a, b UserID) string {
	if strings.Compare(string(a), string(b)) > 0 {
		a, b = b, a
	}
	return string(a) + "|" + string(b)
}

// Peer returns the other side of the relationship.
func (f *Friendship) Peer(viewer UserID) UserID {
	if f.RequesterID == viewer {
		return f.AddresseeID
	}
	return f.RequesterID
}

// StatusFor derives the viewer's local status.
func (f *Friendship) StatusFor(viewer UserID) RelationshipStatus {
	if f.State == FriendshipAccepted {
		if f.RequesterID == viewer {
			return RelationSenderAccepted
		}
		return RelationReceiverAccepted
	}
	if f.RequesterID == viewer {
		return RelationRequestSent
	}
	return RelationRequestReceived
}

// EntryFor is the viewer's (peer, status) projection of the record.
func (f *Friendship) EntryFor(viewer UserID) RelationshipEntry {
	return RelationshipEntry{
		PeerID: f.Peer(viewer),
		Status: f.StatusFor(viewer),
	}
}

// RelationshipEntry is what clients see: one peer and the local status.
type RelationshipEntry struct {
	PeerID UserID             `json:"userUid"`
	Status RelationshipStatus `json:"status"`
}
