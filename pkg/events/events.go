package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/campusbook/appointments/pkg/logger"
)

type Publisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
	Close() error
}

type NATSPublisher struct {
	conn *nats.Conn
}

func NewNATSPublisher(url string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &NATSPublisher{conn: conn}, nil
}

func (p *NATSPublisher) Publish(ctx context.Context, subject string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}

	logger.DebugContext(ctx, "publishing event", "subject", subject)

	return p.conn.Publish(subject, payload)
}

func (p *NATSPublisher) Close() error {
	p.conn.Close()
	return nil
}

// Subjects
const (
	SlotCreated         = "slot.created"
	AppointmentBooked   = "appointment.booked"
	AppointmentCanceled = "appointment.canceled"
)

// Payloads
type SlotCreatedEvent struct {
	SlotID      int64     `json:"slot_id"`
	ProfessorID int64     `json:"professor_id"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
}

type AppointmentBookedEvent struct {
	AppointmentID int64     `json:"appointment_id"`
	SlotID        int64     `json:"slot_id"`
	StudentID     int64     `json:"student_id"`
	BookedAt      time.Time `json:"booked_at"`
}

type AppointmentCanceledEvent struct {
	SlotID      int64     `json:"slot_id"`
	ProfessorID int64     `json:"professor_id"`
	CanceledAt  time.Time `json:"canceled_at"`
}
