package domain

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors mapped to HTTP status by the handlers.
var (
	ErrEmailTaken         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSlotUnavailable    = errors.New("slot unavailable")
	ErrNotFound           = errors.New("not found")
	ErrNotOwner           = errors.New("slot belongs to another professor")
)

type Slot struct {
	ID            int64     `json:"id"`
	ProfessorID   int64     `json:"professor_id"`
	ProfessorName string    `json:"professor_name"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	IsBooked      bool      `json:"is_booked"`
	CreatedAt     time.Time `json:"created_at"`
}

type Appointment struct {
	ID        int64     `json:"id"`
	StudentID int64     `json:"student_id"`
	SlotID    int64     `json:"slot_id"`
	CreatedAt time.Time `json:"created_at"`
}

// AppointmentWithSlot is the student-facing listing shape: a booking joined
// with its slot detail.
type AppointmentWithSlot struct {
	Appointment Appointment `json:"appointment"`
	Slot        Slot        `json:"slot"`
}

type CreateSlotRequest struct {
	Time     string `json:"time"`
	Duration int    `json:"duration"`
}

func (r *CreateSlotRequest) Parse() (start time.Time, duration time.Duration, err error) {
	if r.Time == "" {
		return time.Time{}, 0, fmt.Errorf("time is required")
	}
	start, err = time.Parse(time.RFC3339, r.Time)
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("time must be an RFC 3339 timestamp")
	}
	if r.Duration <= 0 {
		return time.Time{}, 0, fmt.Errorf("duration must be a positive number of minutes")
	}
	return start, time.Duration(r.Duration) * time.Minute, nil
}

type BookRequest struct {
	SlotID int64 `json:"slotId"`
}
