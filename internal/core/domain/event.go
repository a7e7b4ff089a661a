package domain

import "time"

type EventID string

// Event is a time-bounded gathering. StartTime/EndTime are epoch
// milliseconds, matching the wire format clients already send.
// VisitedMembers is always a subset of Members.
type Event struct {
	ID             EventID   `json:"uid"`
	HostID         UserID    `json:"host"`
	Title          string    `json:"title"`
	StartTime      int64     `json:"startDate"`
	EndTime        int64     `json:"endDate"`
	Members        []UserID  `json:"members"`
	VisitedMembers []UserID  `json:"visitedMembers"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ActiveAt reports whether t falls inside the event window. The window is
// half-open: the start instant counts, the end instant does not.
func (e *Event) ActiveAt(t time.Time) bool {
	ms := t.UnixMilli()
	return e.StartTime <= ms && ms < e.EndTime
}

func (e *Event) IsMember(id UserID) bool {
	for _, m := range e.Members {
		if m == id {
			return true
		}
	}
	return false
}

func (e *Event) HasVisited(id UserID) bool {
	for _, m := range e.VisitedMembers {
		if m == id {
			return true
		}
	}
	return false
}

// EventPatch carries optional event updates. Nil fields are untouched,
// which makes a literal 0 start time settable.
type EventPatch struct {
	Title     *string
	Members   *[]UserID
	StartTime *int64
	EndTime   *int64
}

// Apply copies present patch fields onto the event.
func (p EventPatch) Apply(e *Event) {
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Members != nil {
		e.Members = *p.Members
	}
	if p.StartTime != nil {
		e.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		e.EndTime = *p.EndTime
	}
}
