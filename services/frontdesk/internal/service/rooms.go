package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/diagnosis/hotel-frontdesk/pkg/events"
	"github.com/diagnosis/hotel-frontdesk/pkg/logger"
	"github.com/diagnosis/hotel-frontdesk/services/frontdesk/internal/authz"
	"github.com/diagnosis/hotel-frontdesk/services/frontdesk/internal/domain"
	"github.com/diagnosis/hotel-frontdesk/services/frontdesk/internal/occupancy"
)

func (s *Service) getRoom(ctx context.Context, id int64) (*domain.Room, error) {
	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}
	if room == nil {
		return nil, domain.NotFound("room", id)
	}
	return room, nil
}

// occupantOf resolves who holds roomID on day. Reads take no lock; the view is
// rebuilt on every call.
func (s *Service) occupantOf(ctx context.Context, roomID int64, day domain.Date) (*domain.Occupant, error) {
	reservations, err := s.reservations.ListByRoom(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations for room %d: %w", roomID, err)
	}
	res := occupancy.Resolve(ctx, reservations, day)
	if res == nil {
		return nil, nil
	}
	guest, err := s.guests.GetByID(ctx, res.GuestID)
	if err != nil {
		return nil, fmt.Errorf("failed to get guest: %w", err)
	}
	if guest == nil {
		logger.WarnContext(ctx, "Occupying reservation references a missing guest",
			"reservation_id", res.ID, "guest_id", res.GuestID)
		guest = &domain.Guest{ID: res.GuestID}
	}
	return &domain.Occupant{Reservation: *res, Guest: *guest}, nil
}

func (s *Service) ResolveOccupant(ctx context.Context, actor domain.Actor, roomID int64, day domain.Date) (*domain.Occupant, error) {
	if err := authz.Check(actor.Role, authz.RoomRead); err != nil {
		return nil, err
	}
	if _, err := s.getRoom(ctx, roomID); err != nil {
		return nil, err
	}
	return s.occupantOf(ctx, roomID, day)
}

func roomView(room domain.Room, occ *domain.Occupant) domain.RoomView {
	v := domain.RoomView{Room: room, ActiveGuest: occ.ActiveGuest()}
	if occ != nil {
		id := occ.Reservation.ID
		v.ReservationID = &id
	}
	return v
}

// ListRooms returns every room with its occupant on day. Rooms are resolved
// concurrently, bounded by the configured worker count.
func (s *Service) ListRooms(ctx context.Context, actor domain.Actor, day domain.Date) ([]domain.RoomView, error) {
	if err := authz.Check(actor.Role, authz.RoomRead); err != nil {
		return nil, err
	}
	rooms, err := s.rooms.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}

	views := make([]domain.RoomView, len(rooms))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.occupancyWorkers)
	for i := range rooms {
		g.Go(func() error {
			occ, err := s.occupantOf(gctx, rooms[i].ID, day)
			if err != nil {
				return err
			}
			views[i] = roomView(rooms[i], occ)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return views, nil
}

func (s *Service) GetRoom(ctx context.Context, actor domain.Actor, id int64, day domain.Date) (*domain.RoomView, error) {
	if err := authz.Check(actor.Role, authz.RoomRead); err != nil {
		return nil, err
	}
	room, err := s.getRoom(ctx, id)
	if err != nil {
		return nil, err
	}
	occ, err := s.occupantOf(ctx, id, day)
	if err != nil {
		return nil, err
	}
	v := roomView(*room, occ)
	return &v, nil
}

// ChangeRoomStatus moves a room to target. Any status may follow any other;
// only the actor's role limits which targets are reachable. The result is not
// reconciled with occupancy: status is a staff workflow flag.
func (s *Service) ChangeRoomStatus(ctx context.Context, actor domain.Actor, roomID int64, target string) (*domain.Room, error) {
	to, ok := domain.ParseRoomStatus(target)
	if !ok {
		return nil, domain.Invalid("status", "must be one of available, reserved, occupied, cleaning, maintenance")
	}
	if err := authz.Check(actor.Role, authz.SetRoomStatus(to)); err != nil {
		return nil, err
	}
	room, err := s.getRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if room.Status == to {
		return room, nil
	}

	updated, err := s.rooms.UpdateStatus(ctx, roomID, to)
	if err != nil {
		return nil, fmt.Errorf("failed to update room status: %w", err)
	}
	if updated == nil {
		return nil, domain.NotFound("room", roomID)
	}

	logger.InfoContext(ctx, "Room status changed",
		"room_id", roomID, "from", room.Status, "to", to, "role", actor.Role)
	s.publish(ctx, events.RoomStatusChanged, events.RoomStatusChangedEvent{
		RoomID:     updated.ID,
		RoomNumber: updated.RoomNumber,
		From:       string(room.Status),
		To:         string(to),
		ActorID:    actor.ID,
		ActorRole:  string(actor.Role),
		ChangedAt:  s.now(),
	})
	return updated, nil
}

// RoomCalendar lists the room's reservations that share a night with window,
// ordered by check-in.
func (s *Service) RoomCalendar(ctx context.Context, actor domain.Actor, roomID int64, window domain.DateRange) ([]domain.Reservation, error) {
	if err := authz.Check(actor.Role, authz.ReservationRead); err != nil {
		return nil, err
	}
	if !window.Valid() {
		return nil, domain.Invalid("to", "must be after from")
	}
	if _, err := s.getRoom(ctx, roomID); err != nil {
		return nil, err
	}
	reservations, err := s.reservations.ListByRoom(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	return occupancy.Overlapping(ctx, reservations, window), nil
}
