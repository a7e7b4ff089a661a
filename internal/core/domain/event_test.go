package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEvent_ActiveAt_HalfOpenWindow(t *testing.T) {
	event := &Event{StartTime: 100, EndTime: 200}

	tests := []struct {
		name string
		ms   int64
		want bool
	}{
		{"before start", 99, false},
		{"at start", 100, true},
		{"inside", 150, true},
		{"at end", 200, false},
		{"after end", 201, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, event.ActiveAt(time.UnixMilli(tt.ms)))
		})
	}
}

func TestEventPatch_Apply(t *testing.T) {
	event := &Event{
		Title:     "Dinner",
		StartTime: 100,
		EndTime:   200,
		Members:   []UserID{"user_a"},
	}

	// Absent fields stay untouched.
	title := "Brunch"
	EventPatch{Title: &title}.Apply(event)
	assert.Equal(t, "Brunch", event.Title)
	assert.Equal(t, int64(100), event.StartTime)
	assert.Equal(t, []UserID{"user_a"}, event.Members)

	// A present zero is a deliberate value, not "leave alone".
	zero := int64(0)
	EventPatch{StartTime: &zero}.Apply(event)
	assert.Equal(t, int64(0), event.StartTime)
	assert.Equal(t, int64(200), event.EndTime)
}

func TestEvent_Membership(t *testing.T) {
	event := &Event{
		Members:        []UserID{"user_a", "user_b"},
		VisitedMembers: []UserID{"user_a"},
	}

	assert.True(t, event.IsMember("user_a"))
	assert.False(t, event.IsMember("user_c"))
	assert.True(t, event.HasVisited("user_a"))
	assert.False(t, event.HasVisited("user_b"))
}
