// Package publishers delivers session events (login, logout, invalidation)
// to external sinks declared in a YAML or JSON file.
package publishers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/salaryhelper/salaryhelper-client/internal/logger"
)

// Session event kinds.
const (
	KindLogin       = "login"
	KindLogout      = "logout"
	KindInvalidated = "invalidated"
)

// Event is a local session transition.
type Event struct {
	ID         string    `json:"id"`
	Kind       string    `json:"kind"`
	UserID     string    `json:"user_id,omitempty"`
	Reason     string    `json:"reason,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewEvent stamps a new Event with a random id and the current UTC time.
func NewEvent(kind, userID string) Event {
	return Event{
		ID:         uuid.NewString(),
		Kind:       kind,
		UserID:     userID,
		OccurredAt: time.Now().UTC(),
	}
}

// Publisher is one sink.
type Publisher interface {
	ID() string
	Type() string
	Publish(ctx context.Context, evt Event) error
}

// encode returns the JSON body and the routing attributes every broker sink
// attaches to the message.
func (e Event) encode() ([]byte, map[string]string, error) {
	body, err := json.Marshal(e)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal %s event: %w", e.Kind, err)
	}
	attrs := map[string]string{"event_kind": e.Kind}
	if e.UserID != "" {
		attrs["user_id"] = e.UserID
	}
	return body, attrs, nil
}

// reportDelivery logs the outcome of one send. ref is the broker's message id
// or the HTTP status, whichever the sink has.
func reportDelivery(log logger.Logger, p Publisher, evt Event, ref any, err error) {
	fields := map[string]any{
		"publisher_id": p.ID(),
		"event_id":     evt.ID,
		"event_kind":   evt.Kind,
	}
	if err != nil {
		fields["error"] = err.Error()
		log.ErrorObj(p.Type()+" publisher send failed", "publisher_error", fields)
		return
	}
	fields["ref"] = ref
	log.DebugObj(p.Type()+" publisher delivered event", "publisher_delivery", fields)
}
