package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/diagnosis/hotel-frontdesk/pkg/logger"
)

type Publisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
	Close() error
}

// NATSEventBus publishes JSON events to NATS core subjects.
type NATSEventBus struct {
	conn   *nats.Conn
	prefix string
}

// NewNATSEventBus connects to url. Every subject is published under prefix
// ("frontdesk" gives "frontdesk.reservation.created").
func NewNATSEventBus(url, prefix string) (*NATSEventBus, error) {
	conn, err := nats.Connect(url,
		nats.Name("frontdesk"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &NATSEventBus{conn: conn, prefix: prefix}, nil
}

func (n *NATSEventBus) subject(s string) string {
	if n.prefix == "" {
		return s
	}
	return n.prefix + "." + s
}

func (n *NATSEventBus) Publish(ctx context.Context, subject string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}

	logger.DebugContext(ctx, "Publishing event", "subject", n.subject(subject), "data", string(payload))

	return n.conn.Publish(n.subject(subject), payload)
}

func (n *NATSEventBus) Close() error {
	if err := n.conn.Drain(); err != nil {
		n.conn.Close()
		return err
	}
	return nil
}

// NopPublisher drops events. Used when no NATS URL is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, subject string, data interface{}) error {
	logger.DebugContext(ctx, "Event dropped, no event bus configured", "subject", subject)
	return nil
}

func (NopPublisher) Close() error { return nil }

const (
	ReservationCreated = "reservation.created"
	ReservationUpdated = "reservation.updated"
	ReservationDeleted = "reservation.deleted"

	RoomStatusChanged = "room.status_changed"

	MaintenanceCreated = "maintenance.created"
	MaintenanceUpdated = "maintenance.updated"
)

type ReservationEvent struct {
	ReservationID int64     `json:"reservation_id"`
	RoomID        int64     `json:"room_id"`
	GuestID       int64     `json:"guest_id"`
	CheckIn       string    `json:"check_in_date"`
	CheckOut      string    `json:"check_out_date"`
	ActorID       string    `json:"actor_id"`
	ActorRole     string    `json:"actor_role"`
	OccurredAt    time.Time `json:"occurred_at"`
}

type RoomStatusChangedEvent struct {
	RoomID     int64     `json:"room_id"`
	RoomNumber string    `json:"room_number"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	ActorID    string    `json:"actor_id"`
	ActorRole  string    `json:"actor_role"`
	ChangedAt  time.Time `json:"changed_at"`
}

type MaintenanceEvent struct {
	RequestID  int64     `json:"request_id"`
	RoomID     int64     `json:"room_id"`
	Priority   string    `json:"priority"`
	Status     string    `json:"status"`
	ActorID    string    `json:"actor_id"`
	ActorRole  string    `json:"actor_role"`
	OccurredAt time.Time `json:"occurred_at"`
}

var (
	_ Publisher = (*NATSEventBus)(nil)
	_ Publisher = NopPublisher{}
)
