package realtime

import (
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Dispatcher unicasts events to users found in the registry. Delivery is
// best effort: absent users and full session buffers drop the event.
type Dispatcher struct {
	registry *Registry
}

func NewDispatcher(registry *Registry) *Dispatcher {
	return &Dispatcher{registry: registry}
}

// Notify reports whether the event was handed to a session.
func (d *Dispatcher) Notify(userID uuid.UUID, event string, payload any) bool {
	session, ok := d.registry.Lookup(userID)
	if !ok {
		return false
	}
	if !session.offer(Event{Name: event, Payload: payload}) {
		log.WithFields(log.Fields{
			"user_id":    userID,
			"session_id": session.ID,
			"event":      event,
		}).Debug("session buffer full, dropping event")
		return false
	}
	return true
}
