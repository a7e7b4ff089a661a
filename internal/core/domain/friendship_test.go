package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPairKey_Unordered(t *testing.T) {
	assert.Equal(t, PairKey("user_a", "user_b"), PairKey("user_b", "user_a"))
	assert.Equal(t, "user_a|user_b", PairKey("user_b", "user_a"))
	assert.Equal(t, "user_a|user_a", PairKey("user_a", "user_a"))
}

func TestFriendship_StatusFor(t *testing.T) {
	f := &Friendship{
		PairKey:     PairKey("user_a", "user_b"),
		RequesterID: "user_a",
		AddresseeID: "user_b",
		State:       FriendshipPending,
	}

	tests := []struct {
		name   string
		state  FriendshipState
		viewer UserID
		want   RelationshipStatus
	}{
		{"pending requester", FriendshipPending, "user_a", RelationRequestSent},
		{"pending addressee", FriendshipPending, "user_b", RelationRequestReceived},
		{"accepted requester", FriendshipAccepted, "user_a", RelationSenderAccepted},
		{"accepted addressee", FriendshipAccepted, "user_b", RelationReceiverAccepted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f.State = tt.state
			assert.Equal(t, tt.want, f.StatusFor(tt.viewer))
		})
	}
}

func TestFriendship_EntryFor(t *testing.T) {
	f := &Friendship{
		RequesterID: "user_a",
		AddresseeID: "user_b",
		State:       FriendshipAccepted,
	}

	entry := f.EntryFor("user_b")
	assert.Equal(t, UserID("user_a"), entry.PeerID)
	assert.Equal(t, RelationReceiverAccepted, entry.Status)
}
