// Package memory is an in-process implementation of the repository contracts,
// used for local development and tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/diagnosis/hotel-frontdesk/services/frontdesk/internal/domain"
	"github.com/diagnosis/hotel-frontdesk/services/frontdesk/internal/repository"
)

type DB struct {
	mu           sync.RWMutex
	rooms        map[int64]domain.Room
	guests       map[int64]domain.Guest
	reservations map[int64]domain.Reservation
	maintenance  map[int64]domain.MaintenanceRequest
	seq          int64

	locksMu   sync.Mutex
	roomLocks map[int64]*sync.Mutex

	now func() time.Time
}

func New() *DB {
	return &DB{
		rooms:        make(map[int64]domain.Room),
		guests:       make(map[int64]domain.Guest),
		reservations: make(map[int64]domain.Reservation),
		maintenance:  make(map[int64]domain.MaintenanceRequest),
		roomLocks:    make(map[int64]*sync.Mutex),
		now:          time.Now,
	}
}

func (db *DB) Store() repository.Store {
	return repository.Store{
		Rooms:        &roomRepo{db},
		Guests:       &guestRepo{db},
		Reservations: &reservationRepo{db},
		Maintenance:  &maintenanceRepo{db},
	}
}

func (db *DB) nextID() int64 {
	db.seq++
	return db.seq
}

// AddRoom stores rm as is, assigning an id when it has none.
func (db *DB) AddRoom(rm domain.Room) domain.Room {
	db.mu.Lock()
	defer db.mu.Unlock()
	if rm.ID == 0 {
		rm.ID = db.nextID()
	} else if rm.ID > db.seq {
		db.seq = rm.ID
	}
	if rm.Status == "" {
		rm.Status = domain.RoomAvailable
	}
	if rm.Features == nil {
		rm.Features = []string{}
	}
	rm.CreatedAt = db.now()
	rm.UpdatedAt = rm.CreatedAt
	db.rooms[rm.ID] = rm
	return rm
}

func (db *DB) AddGuest(g domain.Guest) domain.Guest {
	db.mu.Lock()
	defer db.mu.Unlock()
	if g.ID == 0 {
		g.ID = db.nextID()
	} else if g.ID > db.seq {
		db.seq = g.ID
	}
	g.CreatedAt = db.now()
	db.guests[g.ID] = g
	return g
}

// PutReservation writes r without any checks, the way a legacy import or an
// unguarded write path would.
func (db *DB) PutReservation(r domain.Reservation) domain.Reservation {
	db.mu.Lock()
	defer db.mu.Unlock()
	if r.ID == 0 {
		r.ID = db.nextID()
	} else if r.ID > db.seq {
		db.seq = r.ID
	}
	r.CreatedAt = db.now()
	r.UpdatedAt = r.CreatedAt
	db.reservations[r.ID] = r
	return r
}

func (db *DB) roomLock(roomID int64) *sync.Mutex {
	db.locksMu.Lock()
	defer db.locksMu.Unlock()
	l, ok := db.roomLocks[roomID]
	if !ok {
		l = &sync.Mutex{}
		db.roomLocks[roomID] = l
	}
	return l
}

func page[T any](items []T, limit, offset int) []T {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

type roomRepo struct{ db *DB }

func (r *roomRepo) List(_ context.Context) ([]domain.Room, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	out := make([]domain.Room, 0, len(r.db.rooms))
	for _, rm := range r.db.rooms {
		out = append(out, rm)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RoomNumber < out[j].RoomNumber })
	return out, nil
}

func (r *roomRepo) GetByID(_ context.Context, id int64) (*domain.Room, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	rm, ok := r.db.rooms[id]
	if !ok {
		return nil, nil
	}
	return &rm, nil
}

func (r *roomRepo) UpdateStatus(_ context.Context, id int64, status domain.RoomStatus) (*domain.Room, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	rm, ok := r.db.rooms[id]
	if !ok {
		return nil, nil
	}
	rm.Status = status
	rm.UpdatedAt = r.db.now()
	r.db.rooms[id] = rm
	return &rm, nil
}

type guestRepo struct{ db *DB }

func (r *guestRepo) Create(_ context.Context, g *domain.Guest) (*domain.Guest, error) {
	created := r.db.AddGuest(*g)
	return &created, nil
}

func (r *guestRepo) GetByID(_ context.Context, id int64) (*domain.Guest, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	g, ok := r.db.guests[id]
	if !ok {
		return nil, nil
	}
	return &g, nil
}

func (r *guestRepo) List(_ context.Context, limit, offset int) ([]domain.Guest, error) {
	r.db.mu.RLock()
	out := make([]domain.Guest, 0, len(r.db.guests))
	for _, g := range r.db.guests {
		out = append(out, g)
	}
	r.db.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return page(out, limit, offset), nil
}

func (r *guestRepo) Update(_ context.Context, in *domain.Guest) (*domain.Guest, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	existing, ok := r.db.guests[in.ID]
	if !ok {
		return nil, nil
	}
	g := *in
	g.CreatedAt = existing.CreatedAt
	r.db.guests[g.ID] = g
	return &g, nil
}

func (r *guestRepo) Delete(_ context.Context, id int64) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.guests[id]; !ok {
		return false, nil
	}
	for _, res := range r.db.reservations {
		if res.GuestID == id {
			return false, domain.Invalid("id", "guest has reservations and cannot be deleted")
		}
	}
	delete(r.db.guests, id)
	return true, nil
}

type reservationRepo struct{ db *DB }

func (r *reservationRepo) List(_ context.Context, limit, offset int) ([]domain.Reservation, error) {
	r.db.mu.RLock()
	out := make([]domain.Reservation, 0, len(r.db.reservations))
	for _, res := range r.db.reservations {
		out = append(out, res)
	}
	r.db.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CheckIn.Equal(out[j].CheckIn) {
			return out[i].CheckIn.After(out[j].CheckIn)
		}
		return out[i].ID > out[j].ID
	})
	return page(out, limit, offset), nil
}

func (r *reservationRepo) ListByRoom(_ context.Context, roomID int64) ([]domain.Reservation, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return r.db.listByRoomLocked(roomID), nil
}

func (db *DB) listByRoomLocked(roomID int64) []domain.Reservation {
	var out []domain.Reservation
	for _, res := range db.reservations {
		if res.RoomID == roomID {
			out = append(out, res)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CheckIn.Equal(out[j].CheckIn) {
			return out[i].CheckIn.Before(out[j].CheckIn)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (r *reservationRepo) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	res, ok := r.db.reservations[id]
	if !ok {
		return nil, nil
	}
	return &res, nil
}

func (r *reservationRepo) Delete(_ context.Context, id int64) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.reservations[id]; !ok {
		return false, nil
	}
	delete(r.db.reservations, id)
	return true, nil
}

// WithRoomLock holds a per-room mutex around fn. Writes inside fn are applied
// immediately; there is no rollback.
func (r *reservationRepo) WithRoomLock(ctx context.Context, roomID int64, fn func(tx repository.ReservationTx) error) error {
	r.db.mu.RLock()
	_, ok := r.db.rooms[roomID]
	r.db.mu.RUnlock()
	if !ok {
		return domain.NotFound("room", roomID)
	}

	l := r.db.roomLock(roomID)
	l.Lock()
	defer l.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(&reservationTx{db: r.db})
}

type reservationTx struct{ db *DB }

func (t *reservationTx) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	t.db.mu.RLock()
	defer t.db.mu.RUnlock()
	res, ok := t.db.reservations[id]
	if !ok {
		return nil, nil
	}
	return &res, nil
}

func (t *reservationTx) ListByRoom(_ context.Context, roomID int64) ([]domain.Reservation, error) {
	t.db.mu.RLock()
	defer t.db.mu.RUnlock()
	return t.db.listByRoomLocked(roomID), nil
}

func (t *reservationTx) checkRefs(in *domain.Reservation) error {
	if _, ok := t.db.rooms[in.RoomID]; !ok {
		return domain.Invalid("room_id", "references a room that does not exist")
	}
	if _, ok := t.db.guests[in.GuestID]; !ok {
		return domain.Invalid("guest_id", "references a guest that does not exist")
	}
	if !in.Stay().Valid() {
		return domain.Invalid("check_out_date", "must be after check_in_date")
	}
	return nil
}

func (t *reservationTx) Create(_ context.Context, in *domain.Reservation) (*domain.Reservation, error) {
	t.db.mu.Lock()
	defer t.db.mu.Unlock()
	if err := t.checkRefs(in); err != nil {
		return nil, err
	}
	res := *in
	res.ID = t.db.nextID()
	res.CreatedAt = t.db.now()
	res.UpdatedAt = res.CreatedAt
	t.db.reservations[res.ID] = res
	return &res, nil
}

func (t *reservationTx) Update(_ context.Context, in *domain.Reservation) (*domain.Reservation, error) {
	t.db.mu.Lock()
	defer t.db.mu.Unlock()
	existing, ok := t.db.reservations[in.ID]
	if !ok {
		return nil, nil
	}
	if err := t.checkRefs(in); err != nil {
		return nil, err
	}
	res := *in
	res.CreatedAt = existing.CreatedAt
	res.UpdatedAt = t.db.now()
	t.db.reservations[res.ID] = res
	return &res, nil
}

type maintenanceRepo struct{ db *DB }

func (r *maintenanceRepo) Create(_ context.Context, in *domain.MaintenanceRequest) (*domain.MaintenanceRequest, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.rooms[in.RoomID]; !ok {
		return nil, domain.Invalid("room_id", "references a room that does not exist")
	}
	m := *in
	m.ID = r.db.nextID()
	m.CreatedAt = r.db.now()
	m.UpdatedAt = m.CreatedAt
	r.db.maintenance[m.ID] = m
	return &m, nil
}

func (r *maintenanceRepo) GetByID(_ context.Context, id int64) (*domain.MaintenanceRequest, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	m, ok := r.db.maintenance[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (r *maintenanceRepo) List(_ context.Context, limit, offset int) ([]domain.MaintenanceRequest, error) {
	r.db.mu.RLock()
	out := make([]domain.MaintenanceRequest, 0, len(r.db.maintenance))
	for _, m := range r.db.maintenance {
		out = append(out, m)
	}
	r.db.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return page(out, limit, offset), nil
}

func (r *maintenanceRepo) Update(_ context.Context, in *domain.MaintenanceRequest) (*domain.MaintenanceRequest, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	existing, ok := r.db.maintenance[in.ID]
	if !ok {
		return nil, nil
	}
	if _, ok := r.db.rooms[in.RoomID]; !ok {
		return nil, domain.Invalid("room_id", "references a room that does not exist")
	}
	m := *in
	m.CreatedAt = existing.CreatedAt
	m.UpdatedAt = r.db.now()
	r.db.maintenance[m.ID] = m
	return &m, nil
}

var (
	_ repository.RoomRepository        = (*roomRepo)(nil)
	_ repository.GuestRepository       = (*guestRepo)(nil)
	_ repository.ReservationRepository = (*reservationRepo)(nil)
	_ repository.MaintenanceRepository = (*maintenanceRepo)(nil)
)
