package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusbook/appointments/internal/domain"
)

type SlotsRepo interface {
	Create(ctx context.Context, professorID int64, professorName string, start, end time.Time) (*domain.Slot, error)
	GetByID(ctx context.Context, id int64) (*domain.Slot, error)
	ListOpen(ctx context.Context) ([]domain.Slot, error)
}

type SlotsRepoImpl struct{ pool *pgxpool.Pool }

func NewSlotsRepo(pool *pgxpool.Pool) *SlotsRepoImpl { return &SlotsRepoImpl{pool: pool} }

const slotCols = `id, professor_id, professor_name, start_time, end_time, is_booked, created_at`

func (r *SlotsRepoImpl) Create(ctx context.Context, professorID int64, professorName string, start, end time.Time) (*domain.Slot, error) {
	const q = `
INSERT INTO slots (professor_id, professor_name, start_time, end_time, is_booked)
VALUES ($1,$2,$3,$4,false)
RETURNING ` + slotCols
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	var s domain.Slot
	err := r.pool.QueryRow(ctx, q, professorID, professorName, start, end).Scan(
		&s.ID, &s.ProfessorID, &s.ProfessorName, &s.StartTime, &s.EndTime, &s.IsBooked, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SlotsRepoImpl) GetByID(ctx context.Context, id int64) (*domain.Slot, error) {
	const q = `SELECT ` + slotCols + ` FROM slots WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	var s domain.Slot
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&s.ID, &s.ProfessorID, &s.ProfessorName, &s.StartTime, &s.EndTime, &s.IsBooked, &s.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ListOpen returns unbooked slots in creation order so the listing is stable
// without pagination.
func (r *SlotsRepoImpl) ListOpen(ctx context.Context) ([]domain.Slot, error) {
	const q = `SELECT ` + slotCols + ` FROM slots WHERE is_booked=false ORDER BY created_at, id`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	slots := make([]domain.Slot, 0)
	for rows.Next() {
		var s domain.Slot
		if err := rows.Scan(
			&s.ID, &s.ProfessorID, &s.ProfessorName, &s.StartTime, &s.EndTime, &s.IsBooked, &s.CreatedAt,
		); err != nil {
			return nil, err
		}
		slots = append(slots, s)
	}
	return slots, rows.Err()
}

var _ SlotsRepo = (*SlotsRepoImpl)(nil)
