package service

import (
	"context"
	"time"

	"github.com/diagnosis/hotel-frontdesk/pkg/events"
	"github.com/diagnosis/hotel-frontdesk/pkg/logger"
	"github.com/diagnosis/hotel-frontdesk/services/frontdesk/internal/domain"
	"github.com/diagnosis/hotel-frontdesk/services/frontdesk/internal/repository"
)

type ReservationService interface {
	ProposeReservation(ctx context.Context, p domain.Proposal) error
	CreateReservation(ctx context.Context, actor domain.Actor, req *domain.ReservationReq) (*domain.Reservation, error)
	UpdateReservation(ctx context.Context, actor domain.Actor, id int64, patch domain.ReservationPatch) (*domain.Reservation, error)
	DeleteReservation(ctx context.Context, actor domain.Actor, id int64) error
	CanDeleteReservation(role domain.Role) bool
	GetReservation(ctx context.Context, actor domain.Actor, id int64) (*domain.ReservationDetail, error)
	ListReservations(ctx context.Context, actor domain.Actor, roomID int64, limit, offset int) ([]domain.ReservationDetail, error)
}

type RoomService interface {
	Today() domain.Date
	ListRooms(ctx context.Context, actor domain.Actor, day domain.Date) ([]domain.RoomView, error)
	GetRoom(ctx context.Context, actor domain.Actor, id int64, day domain.Date) (*domain.RoomView, error)
	ResolveOccupant(ctx context.Context, actor domain.Actor, roomID int64, day domain.Date) (*domain.Occupant, error)
	ChangeRoomStatus(ctx context.Context, actor domain.Actor, roomID int64, target string) (*domain.Room, error)
	RoomCalendar(ctx context.Context, actor domain.Actor, roomID int64, window domain.DateRange) ([]domain.Reservation, error)
}

type GuestService interface {
	CreateGuest(ctx context.Context, actor domain.Actor, req *domain.GuestReq) (*domain.Guest, error)
	GetGuest(ctx context.Context, actor domain.Actor, id int64) (*domain.Guest, error)
	ListGuests(ctx context.Context, actor domain.Actor, limit, offset int) ([]domain.Guest, error)
	UpdateGuest(ctx context.Context, actor domain.Actor, id int64, patch domain.GuestPatch) (*domain.Guest, error)
	DeleteGuest(ctx context.Context, actor domain.Actor, id int64) error
}

type MaintenanceService interface {
	CreateMaintenance(ctx context.Context, actor domain.Actor, req *domain.MaintenanceReq) (*domain.MaintenanceRequest, error)
	GetMaintenance(ctx context.Context, actor domain.Actor, id int64) (*domain.MaintenanceRequest, error)
	ListMaintenance(ctx context.Context, actor domain.Actor, limit, offset int) ([]domain.MaintenanceRequest, error)
	UpdateMaintenance(ctx context.Context, actor domain.Actor, id int64, patch domain.MaintenancePatch) (*domain.MaintenanceRequest, error)
}

// Service is the front desk core: occupancy resolution, the reservation
// conflict guard and the room status machine, plus the pass-through
// operations the request layer needs.
type Service struct {
	rooms        repository.RoomRepository
	guests       repository.GuestRepository
	reservations repository.ReservationRepository
	maintenance  repository.MaintenanceRepository
	events       events.Publisher

	location         *time.Location
	now              func() time.Time
	occupancyWorkers int
}

type Option func(*Service)

// WithLocation sets the property's time zone, which decides what "today" is.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.location = loc
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithOccupancyWorkers bounds the rooms resolved concurrently by ListRooms.
func WithOccupancyWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.occupancyWorkers = n
		}
	}
}

func New(store repository.Store, publisher events.Publisher, opts ...Option) *Service {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	s := &Service{
		rooms:            store.Rooms,
		guests:           store.Guests,
		reservations:     store.Reservations,
		maintenance:      store.Maintenance,
		events:           publisher,
		location:         time.UTC,
		now:              time.Now,
		occupancyWorkers: 8,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Today is the current calendar day at the property.
func (s *Service) Today() domain.Date {
	return domain.DateOf(s.now().In(s.location))
}

// publish never fails the caller; the mutation is already committed.
func (s *Service) publish(ctx context.Context, subject string, event any) {
	if err := s.events.Publish(ctx, subject, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish event", "subject", subject, "error", err)
	}
}

var (
	_ ReservationService = (*Service)(nil)
	_ RoomService        = (*Service)(nil)
	_ GuestService       = (*Service)(nil)
	_ MaintenanceService = (*Service)(nil)
)
