package service

import (
	"context"
	"fmt"
	"time"

	"github.com/campusbook/appointments/internal/domain"
	"github.com/campusbook/appointments/internal/repo/postgres"
	"github.com/campusbook/appointments/pkg/events"
	"github.com/campusbook/appointments/pkg/logger"
)

type BookingService interface {
	CreateSlot(ctx context.Context, professor *domain.User, start time.Time, duration time.Duration) (*domain.Slot, error)
	ListOpenSlots(ctx context.Context) ([]domain.Slot, error)
	Book(ctx context.Context, studentID, slotID int64) (*domain.Appointment, error)
	Cancel(ctx context.Context, professorID, slotID int64) error
	ListAppointments(ctx context.Context, studentID int64) ([]domain.AppointmentWithSlot, error)
}

type bookingService struct {
	slots        postgres.SlotsRepo
	appointments postgres.AppointmentsRepo
	publisher    events.Publisher
}

func NewBookingService(slots postgres.SlotsRepo, appointments postgres.AppointmentsRepo, publisher events.Publisher) BookingService {
	return &bookingService{slots: slots, appointments: appointments, publisher: publisher}
}

func (s *bookingService) CreateSlot(ctx context.Context, professor *domain.User, start time.Time, duration time.Duration) (*domain.Slot, error) {
	// Overlapping slots from the same professor are allowed.
	slot, err := s.slots.Create(ctx, professor.ID, professor.Name, start, start.Add(duration))
	if err != nil {
		return nil, fmt.Errorf("failed to create slot: %w", err)
	}

	s.publish(ctx, events.SlotCreated, events.SlotCreatedEvent{
		SlotID:      slot.ID,
		ProfessorID: slot.ProfessorID,
		StartTime:   slot.StartTime,
		EndTime:     slot.EndTime,
	})
	return slot, nil
}

func (s *bookingService) ListOpenSlots(ctx context.Context) ([]domain.Slot, error) {
	slots, err := s.slots.ListOpen(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list open slots: %w", err)
	}
	return slots, nil
}

func (s *bookingService) Book(ctx context.Context, studentID, slotID int64) (*domain.Appointment, error) {
	appt, err := s.appointments.Book(ctx, studentID, slotID)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.AppointmentBooked, events.AppointmentBookedEvent{
		AppointmentID: appt.ID,
		SlotID:        appt.SlotID,
		StudentID:     appt.StudentID,
		BookedAt:      appt.CreatedAt,
	})
	return appt, nil
}

func (s *bookingService) Cancel(ctx context.Context, professorID, slotID int64) error {
	slot, err := s.slots.GetByID(ctx, slotID)
	if err != nil {
		return fmt.Errorf("failed to load slot: %w", err)
	}
	if slot == nil {
		return domain.ErrNotFound
	}
	if slot.ProfessorID != professorID {
		return domain.ErrNotOwner
	}

	if err := s.appointments.Cancel(ctx, slotID); err != nil {
		return err
	}

	s.publish(ctx, events.AppointmentCanceled, events.AppointmentCanceledEvent{
		SlotID:      slotID,
		ProfessorID: professorID,
		CanceledAt:  time.Now(),
	})
	return nil
}

func (s *bookingService) ListAppointments(ctx context.Context, studentID int64) ([]domain.AppointmentWithSlot, error) {
	appts, err := s.appointments.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appts, nil
}

// publish logs and moves on; event delivery never fails a request.
func (s *bookingService) publish(ctx context.Context, subject string, payload interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, subject, payload); err != nil {
		logger.ErrorContext(ctx, "failed to publish event", "subject", subject, "error", err)
	}
}
