package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/diagnosis/hotel-frontdesk/pkg/events"
	"github.com/diagnosis/hotel-frontdesk/pkg/logger"
	"github.com/diagnosis/hotel-frontdesk/services/frontdesk/internal/authz"
	"github.com/diagnosis/hotel-frontdesk/services/frontdesk/internal/domain"
	"github.com/diagnosis/hotel-frontdesk/services/frontdesk/internal/repository"
)

// precheck covers the input-only steps of the conflict guard: the stay must be
// well formed, then the actor must be allowed to create or modify.
func precheck(p domain.Proposal) error {
	if p.RoomID <= 0 {
		return domain.Invalid("room_id", "is required")
	}
	if p.Stay.CheckIn.IsZero() {
		return domain.Invalid("check_in_date", "is required")
	}
	if p.Stay.CheckOut.IsZero() {
		return domain.Invalid("check_out_date", "is required")
	}
	if !p.Stay.CheckIn.Before(p.Stay.CheckOut) {
		return domain.Invalid("check_out_date", "must be after check_in_date")
	}
	op := authz.ReservationCreate
	if p.ExcludeID != 0 {
		op = authz.ReservationModify
	}
	return authz.Check(p.Actor.Role, op)
}

// findConflict returns a ConflictError for the first existing reservation of
// the room whose stay overlaps the proposal.
func findConflict(ctx context.Context, p domain.Proposal, existing []domain.Reservation) error {
	for _, r := range existing {
		if r.ID == p.ExcludeID || r.RoomID != p.RoomID {
			continue
		}
		if !r.Stay().Valid() {
			logger.WarnContext(ctx, "Skipping malformed reservation in conflict check",
				"reservation_id", r.ID, "room_id", r.RoomID)
			continue
		}
		if r.Stay().Overlaps(p.Stay) {
			return &domain.ConflictError{RoomID: p.RoomID, ExistingID: r.ID, Existing: r.Stay()}
		}
	}
	return nil
}

// ProposeReservation runs the conflict guard without committing anything.
// A nil error means the proposal would be accepted right now.
func (s *Service) ProposeReservation(ctx context.Context, p domain.Proposal) error {
	if err := precheck(p); err != nil {
		return err
	}
	room, err := s.rooms.GetByID(ctx, p.RoomID)
	if err != nil {
		return fmt.Errorf("failed to get room: %w", err)
	}
	if room == nil {
		return domain.NotFound("room", p.RoomID)
	}
	existing, err := s.reservations.ListByRoom(ctx, p.RoomID)
	if err != nil {
		return fmt.Errorf("failed to list reservations: %w", err)
	}
	return findConflict(ctx, p, existing)
}

// guardedWrite runs the guard and the write under the room's lock so that no
// other reservation for the room can commit in between.
func (s *Service) guardedWrite(ctx context.Context, p domain.Proposal, write func(tx repository.ReservationTx) (*domain.Reservation, error)) (*domain.Reservation, error) {
	var out *domain.Reservation
	err := s.reservations.WithRoomLock(ctx, p.RoomID, func(tx repository.ReservationTx) error {
		existing, err := tx.ListByRoom(ctx, p.RoomID)
		if err != nil {
			return fmt.Errorf("failed to list reservations: %w", err)
		}
		if err := findConflict(ctx, p, existing); err != nil {
			return err
		}
		out, err = write(tx)
		return storeErr("failed to write reservation", err)
	})
	return out, err
}

func (s *Service) requireGuest(ctx context.Context, id int64) error {
	g, err := s.guests.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get guest: %w", err)
	}
	if g == nil {
		return domain.NotFound("guest", id)
	}
	return nil
}

func paymentStatus(raw string) (domain.PaymentStatus, error) {
	if raw == "" {
		return domain.PaymentPending, nil
	}
	st, ok := domain.ParsePaymentStatus(raw)
	if !ok {
		return "", domain.Invalid("payment_status", "must be one of pending, paid, partial, refunded")
	}
	return st, nil
}

func (s *Service) CreateReservation(ctx context.Context, actor domain.Actor, req *domain.ReservationReq) (*domain.Reservation, error) {
	p := domain.Proposal{
		RoomID: req.RoomID,
		Stay:   domain.DateRange{CheckIn: req.CheckIn, CheckOut: req.CheckOut},
		Actor:  actor,
	}
	if err := precheck(p); err != nil {
		return nil, err
	}
	if req.GuestID <= 0 {
		return nil, domain.Invalid("guest_id", "is required")
	}
	if req.TotalAmount == nil || *req.TotalAmount < 0 {
		return nil, domain.Invalid("total_amount", "is required and must not be negative")
	}
	status, err := paymentStatus(req.PaymentStatus)
	if err != nil {
		return nil, err
	}
	if err := s.requireGuest(ctx, req.GuestID); err != nil {
		return nil, err
	}

	created, err := s.guardedWrite(ctx, p, func(tx repository.ReservationTx) (*domain.Reservation, error) {
		return tx.Create(ctx, &domain.Reservation{
			RoomID:        req.RoomID,
			GuestID:       req.GuestID,
			CheckIn:       req.CheckIn,
			CheckOut:      req.CheckOut,
			TotalAmount:   *req.TotalAmount,
			PaymentStatus: status,
			PaymentMethod: req.PaymentMethod,
		})
	})
	if err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "Reservation created",
		"reservation_id", created.ID, "room_id", created.RoomID, "stay", created.Stay().String())
	s.publish(ctx, events.ReservationCreated, s.reservationEvent(created, actor))
	return created, nil
}

// errMovedAway means a concurrent update changed the reservation's room
// between the unlocked read and taking the lock.
var errMovedAway = errors.New("reservation moved to another room")

const updateAttempts = 3

// prepareUpdate applies patch to stored and runs every input check on the
// result. It returns the proposal the conflict guard has to evaluate.
func (s *Service) prepareUpdate(ctx context.Context, actor domain.Actor, stored domain.Reservation, patch domain.ReservationPatch) (domain.Reservation, domain.Proposal, error) {
	merged := patch.Apply(stored)
	p := domain.Proposal{RoomID: merged.RoomID, Stay: merged.Stay(), Actor: actor, ExcludeID: stored.ID}
	if err := precheck(p); err != nil {
		return merged, p, err
	}
	if patch.PaymentStatus != nil {
		st, err := paymentStatus(*patch.PaymentStatus)
		if err != nil {
			return merged, p, err
		}
		merged.PaymentStatus = st
	}
	if merged.TotalAmount < 0 {
		return merged, p, domain.Invalid("total_amount", "must not be negative")
	}
	if merged.GuestID != stored.GuestID {
		if err := s.requireGuest(ctx, merged.GuestID); err != nil {
			return merged, p, err
		}
	}
	return merged, p, nil
}

func (s *Service) UpdateReservation(ctx context.Context, actor domain.Actor, id int64, patch domain.ReservationPatch) (*domain.Reservation, error) {
	if patch.Empty() {
		return nil, domain.Invalid("", "no fields provided for update")
	}

	for attempt := 1; ; attempt++ {
		existing, err := s.reservations.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to get reservation: %w", err)
		}
		if existing == nil {
			return nil, domain.NotFound("reservation", id)
		}
		_, p, err := s.prepareUpdate(ctx, actor, *existing, patch)
		if err != nil {
			return nil, err
		}

		var updated *domain.Reservation
		err = s.reservations.WithRoomLock(ctx, p.RoomID, func(tx repository.ReservationTx) error {
			// merge onto the row as it is now, not as it was before the lock
			current, err := tx.GetByID(ctx, id)
			if err != nil {
				return fmt.Errorf("failed to get reservation: %w", err)
			}
			if current == nil {
				return domain.NotFound("reservation", id)
			}
			merged, locked, err := s.prepareUpdate(ctx, actor, *current, patch)
			if err != nil {
				return err
			}
			if locked.RoomID != p.RoomID {
				return errMovedAway
			}
			others, err := tx.ListByRoom(ctx, locked.RoomID)
			if err != nil {
				return fmt.Errorf("failed to list reservations: %w", err)
			}
			if err := findConflict(ctx, locked, others); err != nil {
				return err
			}
			updated, err = tx.Update(ctx, &merged)
			return storeErr("failed to write reservation", err)
		})
		if errors.Is(err, errMovedAway) && attempt < updateAttempts {
			logger.DebugContext(ctx, "Reservation moved while waiting for lock, retrying", "reservation_id", id)
			continue
		}
		if errors.Is(err, errMovedAway) {
			return nil, fmt.Errorf("%w: reservation %d keeps moving between rooms", domain.ErrConflict, id)
		}
		if err != nil {
			return nil, err
		}
		if updated == nil {
			return nil, domain.NotFound("reservation", id)
		}

		logger.InfoContext(ctx, "Reservation updated", "reservation_id", updated.ID, "room_id", updated.RoomID)
		s.publish(ctx, events.ReservationUpdated, s.reservationEvent(updated, actor))
		return updated, nil
	}
}

func (s *Service) CanDeleteReservation(role domain.Role) bool {
	return authz.CanDeleteReservation(role)
}

func (s *Service) DeleteReservation(ctx context.Context, actor domain.Actor, id int64) error {
	if err := authz.Check(actor.Role, authz.ReservationDelete); err != nil {
		return err
	}
	existing, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get reservation: %w", err)
	}
	if existing == nil {
		return domain.NotFound("reservation", id)
	}
	ok, err := s.reservations.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete reservation: %w", err)
	}
	if !ok {
		return domain.NotFound("reservation", id)
	}

	logger.InfoContext(ctx, "Reservation deleted", "reservation_id", id, "room_id", existing.RoomID)
	s.publish(ctx, events.ReservationDeleted, s.reservationEvent(existing, actor))
	return nil
}

// details inlines each reservation's guest and room. Lookups are shared
// across the slice.
func (s *Service) details(ctx context.Context, rs []domain.Reservation) ([]domain.ReservationDetail, error) {
	guests := make(map[int64]*domain.GuestSummary)
	rooms := make(map[int64]*domain.RoomSummary)
	out := make([]domain.ReservationDetail, 0, len(rs))
	for _, r := range rs {
		g, ok := guests[r.GuestID]
		if !ok {
			found, err := s.guests.GetByID(ctx, r.GuestID)
			if err != nil {
				return nil, fmt.Errorf("failed to get guest: %w", err)
			}
			if found != nil {
				g = &domain.GuestSummary{ID: found.ID, Name: found.Name, Email: found.Email}
			}
			guests[r.GuestID] = g
		}
		rm, ok := rooms[r.RoomID]
		if !ok {
			found, err := s.rooms.GetByID(ctx, r.RoomID)
			if err != nil {
				return nil, fmt.Errorf("failed to get room: %w", err)
			}
			if found != nil {
				rm = &domain.RoomSummary{ID: found.ID, RoomNumber: found.RoomNumber, Type: found.Type}
			}
			rooms[r.RoomID] = rm
		}
		out = append(out, domain.ReservationDetail{Reservation: r, Guest: g, Room: rm})
	}
	return out, nil
}

func (s *Service) GetReservation(ctx context.Context, actor domain.Actor, id int64) (*domain.ReservationDetail, error) {
	if err := authz.Check(actor.Role, authz.ReservationRead); err != nil {
		return nil, err
	}
	res, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get reservation: %w", err)
	}
	if res == nil {
		return nil, domain.NotFound("reservation", id)
	}
	out, err := s.details(ctx, []domain.Reservation{*res})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

// ListReservations pages through all reservations, or returns every
// reservation of one room when roomID is set.
func (s *Service) ListReservations(ctx context.Context, actor domain.Actor, roomID int64, limit, offset int) ([]domain.ReservationDetail, error) {
	if err := authz.Check(actor.Role, authz.ReservationRead); err != nil {
		return nil, err
	}
	var (
		list []domain.Reservation
		err  error
	)
	if roomID > 0 {
		list, err = s.reservations.ListByRoom(ctx, roomID)
	} else {
		list, err = s.reservations.List(ctx, limit, offset)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	return s.details(ctx, list)
}

func (s *Service) reservationEvent(r *domain.Reservation, actor domain.Actor) events.ReservationEvent {
	return events.ReservationEvent{
		ReservationID: r.ID,
		RoomID:        r.RoomID,
		GuestID:       r.GuestID,
		CheckIn:       r.CheckIn.String(),
		CheckOut:      r.CheckOut.String(),
		ActorID:       actor.ID,
		ActorRole:     string(actor.Role),
		OccurredAt:    s.now(),
	}
}
