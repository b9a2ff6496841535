package realtime

import "github.com/google/uuid"

const (
	EventInvitationCome = "InvitationCome"
	EventAssignmentCome = "AssignmentCome"
)

// Event is one push message addressed to a session.
type Event struct {
	Name    string
	Payload any
}

// Message is the payload of every workflow event.
type Message struct {
	Content string `json:"content"`
}

// Session is one open push connection.
type Session struct {
	ID     uuid.UUID
	UserID uuid.UUID
	events chan Event
}

func NewSession(userID uuid.UUID, buffer int) *Session {
	return &Session{
		ID:     uuid.New(),
		UserID: userID,
		events: make(chan Event, buffer),
	}
}

// Events is drained by the transport writing to the client.
func (s *Session) Events() <-chan Event {
	return s.events
}

// offer enqueues e unless the buffer is full.
func (s *Session) offer(e Event) bool {
	select {
	case s.events <- e:
		return true
	default:
		return false
	}
}
