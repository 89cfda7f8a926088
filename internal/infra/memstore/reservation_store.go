package memstore

import (
	"context"
	"slices"
	"sync"

	"tablekeeper/internal/domain/reservation"
	"tablekeeper/internal/domain/table"
	"tablekeeper/internal/infra"

	"github.com/google/uuid"
)

// ReservationStore owns reservation records. Callers only ever see clones;
// Update applies a mutation to a private copy and swaps it in under the lock.
type ReservationStore struct {
	mu    sync.RWMutex
	byID  map[uuid.UUID]*reservation.Reservation
	usage map[table.ID]int
}

func NewReservationStore() *ReservationStore {
	return &ReservationStore{
		byID:  make(map[uuid.UUID]*reservation.Reservation),
		usage: make(map[table.ID]int),
	}
}

func (s *ReservationStore) Insert(_ context.Context, r *reservation.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byID[r.ID()]; exists {
		return infra.NewRepoErr(infra.KindDuplicateKey, "reservation "+r.ID().String()+" already exists")
	}
	s.byID[r.ID()] = r.Clone()
	if r.TableID() != "" {
		s.usage[r.TableID()]++
	}
	return nil
}

func (s *ReservationStore) Get(_ context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.byID[id]
	if !ok {
		return nil, infra.NewRepoErr(infra.KindNotFound, "reservation "+id.String()+" not found")
	}
	return r.Clone(), nil
}

// Update runs mutate against a copy of the stored reservation. The copy
// replaces the stored record only when mutate succeeds.
func (s *ReservationStore) Update(_ context.Context, id uuid.UUID, mutate func(*reservation.Reservation) error) (*reservation.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.byID[id]
	if !ok {
		return nil, infra.NewRepoErr(infra.KindNotFound, "reservation "+id.String()+" not found")
	}
	next := cur.Clone()
	if err := mutate(next); err != nil {
		return nil, err
	}
	s.byID[id] = next
	return next.Clone(), nil
}

// List returns matching reservations ordered by start time, then creation time.
func (s *ReservationStore) List(_ context.Context, f reservation.Filter) ([]*reservation.Reservation, error) {
	s.mu.RLock()
	out := make([]*reservation.Reservation, 0)
	for _, r := range s.byID {
		if f.Matches(r) {
			out = append(out, r.Clone())
		}
	}
	s.mu.RUnlock()

	slices.SortFunc(out, func(a, b *reservation.Reservation) int {
		if c := a.StartsAt().Compare(b.StartsAt()); c != 0 {
			return c
		}
		return a.CreatedAt().Compare(b.CreatedAt())
	})
	return out, nil
}

// ActiveOnTable returns the reservations still holding a table.
func (s *ReservationStore) ActiveOnTable(ctx context.Context, id table.ID) ([]*reservation.Reservation, error) {
	all, err := s.List(ctx, reservation.Filter{TableID: id})
	if err != nil {
		return nil, err
	}
	return slices.DeleteFunc(all, func(r *reservation.Reservation) bool { return !r.IsActive() }), nil
}

// SeedUsage adds historical use counts, typically loaded from the journal at
// startup. Reservations inserted afterwards keep counting on top.
func (s *ReservationStore) SeedUsage(counts map[table.ID]int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, n := range counts {
		if n > 0 {
			s.usage[id] += n
		}
	}
}

// UseCount is how many reservations have ever been placed on a table, seeded
// history included.
func (s *ReservationStore) UseCount(_ context.Context, id table.ID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.usage[id], nil
}

func (s *ReservationStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}
