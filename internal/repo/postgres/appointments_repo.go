package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusbook/appointments/internal/domain"
)

type AppointmentsRepo interface {
	Book(ctx context.Context, studentID, slotID int64) (*domain.Appointment, error)
	Cancel(ctx context.Context, slotID int64) error
	ListByStudent(ctx context.Context, studentID int64) ([]domain.AppointmentWithSlot, error)
}

type AppointmentsRepoImpl struct{ pool *pgxpool.Pool }

func NewAppointmentsRepo(pool *pgxpool.Pool) *AppointmentsRepoImpl {
	return &AppointmentsRepoImpl{pool: pool}
}

// Book flips the slot to booked and inserts the appointment as one
// transaction. The UPDATE is conditional on is_booked=false, so of two
// concurrent books on the same slot exactly one sees a row change; the
// other gets ErrSlotUnavailable and the transaction rolls back with no
// mutation. A missing slot takes the same path.
func (r *AppointmentsRepoImpl) Book(ctx context.Context, studentID, slotID int64) (*domain.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	ct, err := tx.Exec(ctx, `UPDATE slots SET is_booked=true WHERE id=$1 AND is_booked=false`, slotID)
	if err != nil {
		return nil, err
	}
	if ct.RowsAffected() == 0 {
		return nil, domain.ErrSlotUnavailable
	}

	var a domain.Appointment
	err = tx.QueryRow(ctx, `
INSERT INTO appointments (student_id, slot_id)
VALUES ($1,$2)
RETURNING id, student_id, slot_id, created_at`, studentID, slotID).Scan(
		&a.ID, &a.StudentID, &a.SlotID, &a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &a, nil
}

// Cancel deletes the slot's appointment and reopens the slot as one
// transaction. No appointment on the slot means ErrNotFound and the slot
// flag is left alone.
func (r *AppointmentsRepoImpl) Cancel(ctx context.Context, slotID int64) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	ct, err := tx.Exec(ctx, `DELETE FROM appointments WHERE slot_id=$1`, slotID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	if _, err := tx.Exec(ctx, `UPDATE slots SET is_booked=false WHERE id=$1`, slotID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *AppointmentsRepoImpl) ListByStudent(ctx context.Context, studentID int64) ([]domain.AppointmentWithSlot, error) {
	const q = `
SELECT a.id, a.student_id, a.slot_id, a.created_at,
       s.id, s.professor_id, s.professor_name, s.start_time, s.end_time, s.is_booked, s.created_at
FROM appointments a
JOIN slots s ON s.id = a.slot_id
WHERE a.student_id = $1
ORDER BY a.created_at, a.id`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	rows, err := r.pool.Query(ctx, q, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.AppointmentWithSlot, 0)
	for rows.Next() {
		var item domain.AppointmentWithSlot
		if err := rows.Scan(
			&item.Appointment.ID, &item.Appointment.StudentID, &item.Appointment.SlotID, &item.Appointment.CreatedAt,
			&item.Slot.ID, &item.Slot.ProfessorID, &item.Slot.ProfessorName,
			&item.Slot.StartTime, &item.Slot.EndTime, &item.Slot.IsBooked, &item.Slot.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

var _ AppointmentsRepo = (*AppointmentsRepoImpl)(nil)
