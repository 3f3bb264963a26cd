package service_test

import (
	"context"
	"sync"
	"time"

	"github.com/campusbook/appointments/internal/domain"
)

// mockUsersRepo implements postgres.UsersRepo in memory.
type mockUsersRepo struct {
	mu      sync.Mutex
	nextID  int64
	byID    map[int64]*domain.User
	byEmail map[string]*domain.User
}

func newMockUsersRepo() *mockUsersRepo {
	return &mockUsersRepo{
		nextID:  1,
		byID:    make(map[int64]*domain.User),
		byEmail: make(map[string]*domain.User),
	}
}

func (m *mockUsersRepo) Create(_ context.Context, name, email, hash, role string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.byEmail[email]; exists {
		return nil, domain.ErrEmailTaken
	}
	u := &domain.User{
		ID:           m.nextID,
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	m.nextID++
	m.byID[u.ID] = u
	m.byEmail[u.Email] = u
	return u, nil
}

func (m *mockUsersRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.byEmail[email], nil
}

func (m *mockUsersRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.byID[id], nil
}

// mockBookingStore implements postgres.SlotsRepo and postgres.AppointmentsRepo
// with the same check-and-set semantics the SQL gives: the booked flip and
// the appointment insert happen under one lock.
type mockBookingStore struct {
	mu       sync.Mutex
	nextSlot int64
	nextAppt int64
	slots    map[int64]*domain.Slot
	bySlot   map[int64]*domain.Appointment
}

func newMockBookingStore() *mockBookingStore {
	return &mockBookingStore{
		nextSlot: 1,
		nextAppt: 1,
		slots:    make(map[int64]*domain.Slot),
		bySlot:   make(map[int64]*domain.Appointment),
	}
}

func (m *mockBookingStore) Create(_ context.Context, professorID int64, professorName string, start, end time.Time) (*domain.Slot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := &domain.Slot{
		ID:            m.nextSlot,
		ProfessorID:   professorID,
		ProfessorName: professorName,
		StartTime:     start,
		EndTime:       end,
		CreatedAt:     time.Now(),
	}
	m.nextSlot++
	m.slots[s.ID] = s
	return s, nil
}

func (m *mockBookingStore) GetByID(_ context.Context, id int64) (*domain.Slot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.slots[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (m *mockBookingStore) ListOpen(_ context.Context) ([]domain.Slot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	open := make([]domain.Slot, 0)
	for id := int64(1); id < m.nextSlot; id++ {
		if s, ok := m.slots[id]; ok && !s.IsBooked {
			open = append(open, *s)
		}
	}
	return open, nil
}

func (m *mockBookingStore) Book(_ context.Context, studentID, slotID int64) (*domain.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.slots[slotID]
	if !ok || s.IsBooked {
		return nil, domain.ErrSlotUnavailable
	}
	s.IsBooked = true
	a := &domain.Appointment{
		ID:        m.nextAppt,
		StudentID: studentID,
		SlotID:    slotID,
		CreatedAt: time.Now(),
	}
	m.nextAppt++
	m.bySlot[slotID] = a
	return a, nil
}

func (m *mockBookingStore) Cancel(_ context.Context, slotID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.bySlot[slotID]; !ok {
		return domain.ErrNotFound
	}
	delete(m.bySlot, slotID)
	if s, ok := m.slots[slotID]; ok {
		s.IsBooked = false
	}
	return nil
}

func (m *mockBookingStore) ListByStudent(_ context.Context, studentID int64) ([]domain.AppointmentWithSlot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.AppointmentWithSlot, 0)
	for slotID, a := range m.bySlot {
		if a.StudentID != studentID {
			continue
		}
		out = append(out, domain.AppointmentWithSlot{Appointment: *a, Slot: *m.slots[slotID]})
	}
	return out, nil
}

// appointmentCount reports how many appointments reference the slot; used to
// assert the booked-flag invariant.
func (m *mockBookingStore) appointmentCount(slotID int64) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.bySlot[slotID]; ok {
		return 1
	}
	return 0
}

// mockPublisher records subjects instead of talking to NATS.
type mockPublisher struct {
	mu       sync.Mutex
	subjects []string
	err      error
}

func (m *mockPublisher) Publish(_ context.Context, subject string, _ interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subjects = append(m.subjects, subject)
	return m.err
}

func (m *mockPublisher) Close() error { return nil }
