package service

import (
	"context"
	"fmt"

	"github.com/diagnosis/hotel-frontdesk/internal/utils"
	"github.com/diagnosis/hotel-frontdesk/pkg/logger"
	"github.com/diagnosis/hotel-frontdesk/pkg/validation"
	"github.com/diagnosis/hotel-frontdesk/services/frontdesk/internal/authz"
	"github.com/diagnosis/hotel-frontdesk/services/frontdesk/internal/domain"
)

// normalizeGuest cleans the contact fields of g and checks them with the same
// rules the request layer applies.
func normalizeGuest(g domain.Guest) (domain.Guest, error) {
	g.Name = utils.NormalizeString(g.Name)
	g.Email = utils.NormalizeEmail(g.Email)
	g.Phone = utils.NormalizePhone(g.Phone)
	if g.Name == "" {
		return g, domain.Invalid("name", "is required")
	}
	if g.Email != "" && !validation.Default.IsEmail(g.Email) {
		return g, domain.Invalid("email", "is not a valid address")
	}
	if g.Phone != "" && !utils.IsValidPhone(g.Phone) {
		return g, domain.Invalid("phone", "is not a valid phone number")
	}
	return g, nil
}

func (s *Service) CreateGuest(ctx context.Context, actor domain.Actor, req *domain.GuestReq) (*domain.Guest, error) {
	if err := authz.Check(actor.Role, authz.GuestWrite); err != nil {
		return nil, err
	}
	g, err := normalizeGuest(domain.Guest{Name: req.Name, Email: req.Email, Phone: req.Phone})
	if err != nil {
		return nil, err
	}

	created, err := s.guests.Create(ctx, &g)
	if err != nil {
		return nil, fmt.Errorf("failed to create guest: %w", err)
	}
	return created, nil
}

func (s *Service) UpdateGuest(ctx context.Context, actor domain.Actor, id int64, patch domain.GuestPatch) (*domain.Guest, error) {
	if err := authz.Check(actor.Role, authz.GuestWrite); err != nil {
		return nil, err
	}
	if patch.Empty() {
		return nil, domain.Invalid("", "no fields provided for update")
	}
	existing, err := s.guests.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get guest: %w", err)
	}
	if existing == nil {
		return nil, domain.NotFound("guest", id)
	}
	g, err := normalizeGuest(patch.Apply(*existing))
	if err != nil {
		return nil, err
	}

	updated, err := s.guests.Update(ctx, &g)
	if err != nil {
		return nil, storeErr("failed to update guest", err)
	}
	if updated == nil {
		return nil, domain.NotFound("guest", id)
	}
	return updated, nil
}

// DeleteGuest removes a guest with no reservations. A guest still referenced
// by a reservation is a ValidationError.
func (s *Service) DeleteGuest(ctx context.Context, actor domain.Actor, id int64) error {
	if err := authz.Check(actor.Role, authz.GuestDelete); err != nil {
		return err
	}
	ok, err := s.guests.Delete(ctx, id)
	if err != nil {
		return storeErr("failed to delete guest", err)
	}
	if !ok {
		return domain.NotFound("guest", id)
	}
	logger.InfoContext(ctx, "Guest deleted", "guest_id", id)
	return nil
}

func (s *Service) GetGuest(ctx context.Context, actor domain.Actor, id int64) (*domain.Guest, error) {
	if err := authz.Check(actor.Role, authz.GuestRead); err != nil {
		return nil, err
	}
	g, err := s.guests.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get guest: %w", err)
	}
	if g == nil {
		return nil, domain.NotFound("guest", id)
	}
	return g, nil
}

func (s *Service) ListGuests(ctx context.Context, actor domain.Actor, limit, offset int) ([]domain.Guest, error) {
	if err := authz.Check(actor.Role, authz.GuestRead); err != nil {
		return nil, err
	}
	guests, err := s.guests.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list guests: %w", err)
	}
	return guests, nil
}
