// Package repository declares the storage contracts of the front desk.
//
// Lookups return (nil, nil) when the row does not exist. Implementations live in
// the postgres and memory subpackages.
package repository

import (
	"context"

	"github.com/diagnosis/hotel-frontdesk/services/frontdesk/internal/domain"
)

type RoomRepository interface {
	List(ctx context.Context) ([]domain.Room, error)
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
	UpdateStatus(ctx context.Context, id int64, status domain.RoomStatus) (*domain.Room, error)
}

type GuestRepository interface {
	Create(ctx context.Context, g *domain.Guest) (*domain.Guest, error)
	GetByID(ctx context.Context, id int64) (*domain.Guest, error)
	List(ctx context.Context, limit, offset int) ([]domain.Guest, error)
	Update(ctx context.Context, g *domain.Guest) (*domain.Guest, error)
	// Delete reports false when no guest has id. A guest still referenced by a
	// reservation is not deleted and yields a ValidationError.
	Delete(ctx context.Context, id int64) (bool, error)
}

type ReservationRepository interface {
	List(ctx context.Context, limit, offset int) ([]domain.Reservation, error)
	ListByRoom(ctx context.Context, roomID int64) ([]domain.Reservation, error)
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	Delete(ctx context.Context, id int64) (bool, error)

	// WithRoomLock runs fn while holding the serialization boundary of roomID.
	// No other WithRoomLock call for the same room can observe or commit
	// reservations until fn returns. A missing room yields a NotFoundError.
	WithRoomLock(ctx context.Context, roomID int64, fn func(tx ReservationTx) error) error
}

// ReservationTx is the view of the reservation store inside a room lock.
// GetByID also locks the returned reservation until the room lock is released.
type ReservationTx interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	ListByRoom(ctx context.Context, roomID int64) ([]domain.Reservation, error)
	Create(ctx context.Context, r *domain.Reservation) (*domain.Reservation, error)
	Update(ctx context.Context, r *domain.Reservation) (*domain.Reservation, error)
}

type MaintenanceRepository interface {
	Create(ctx context.Context, m *domain.MaintenanceRequest) (*domain.MaintenanceRequest, error)
	GetByID(ctx context.Context, id int64) (*domain.MaintenanceRequest, error)
	List(ctx context.Context, limit, offset int) ([]domain.MaintenanceRequest, error)
	Update(ctx context.Context, m *domain.MaintenanceRequest) (*domain.MaintenanceRequest, error)
}

// Store bundles the repositories the service needs.
type Store struct {
	Rooms        RoomRepository
	Guests       GuestRepository
	Reservations ReservationRepository
	Maintenance  MaintenanceRepository
}
