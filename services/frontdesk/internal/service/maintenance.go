package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/diagnosis/hotel-frontdesk/pkg/events"
	"github.com/diagnosis/hotel-frontdesk/services/frontdesk/internal/authz"
	"github.com/diagnosis/hotel-frontdesk/services/frontdesk/internal/domain"
)

// storeErr keeps domain errors raised by the store (bad references) visible to
// callers and wraps everything else.
func storeErr(msg string, err error) error {
	if domain.Kind(err) != domain.KindInfrastructure {
		return err
	}
	return fmt.Errorf("%s: %w", msg, err)
}

func (s *Service) CreateMaintenance(ctx context.Context, actor domain.Actor, req *domain.MaintenanceReq) (*domain.MaintenanceRequest, error) {
	if err := authz.Check(actor.Role, authz.MaintenanceWrite); err != nil {
		return nil, err
	}
	if req.RoomID <= 0 {
		return nil, domain.Invalid("room_id", "is required")
	}
	desc := strings.TrimSpace(req.Description)
	if desc == "" {
		return nil, domain.Invalid("description", "is required")
	}
	priority := domain.PriorityMedium
	if req.Priority != "" {
		p, ok := domain.ParseMaintenancePriority(req.Priority)
		if !ok {
			return nil, domain.Invalid("priority", "must be one of low, medium, high")
		}
		priority = p
	}
	if _, err := s.getRoom(ctx, req.RoomID); err != nil {
		return nil, err
	}

	m, err := s.maintenance.Create(ctx, &domain.MaintenanceRequest{
		RoomID:      req.RoomID,
		Description: desc,
		Priority:    priority,
		Status:      domain.MaintenancePending,
	})
	if err != nil {
		return nil, storeErr("failed to create maintenance request", err)
	}
	s.publish(ctx, events.MaintenanceCreated, s.maintenanceEvent(m, actor))
	return m, nil
}

func (s *Service) GetMaintenance(ctx context.Context, actor domain.Actor, id int64) (*domain.MaintenanceRequest, error) {
	if err := authz.Check(actor.Role, authz.MaintenanceRead); err != nil {
		return nil, err
	}
	m, err := s.maintenance.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get maintenance request: %w", err)
	}
	if m == nil {
		return nil, domain.NotFound("maintenance request", id)
	}
	return m, nil
}

func (s *Service) ListMaintenance(ctx context.Context, actor domain.Actor, limit, offset int) ([]domain.MaintenanceRequest, error) {
	if err := authz.Check(actor.Role, authz.MaintenanceRead); err != nil {
		return nil, err
	}
	out, err := s.maintenance.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list maintenance requests: %w", err)
	}
	return out, nil
}

// UpdateMaintenance edits a ticket. Completing a ticket does not touch the
// room's status.
func (s *Service) UpdateMaintenance(ctx context.Context, actor domain.Actor, id int64, patch domain.MaintenancePatch) (*domain.MaintenanceRequest, error) {
	if err := authz.Check(actor.Role, authz.MaintenanceWrite); err != nil {
		return nil, err
	}
	if patch.Empty() {
		return nil, domain.Invalid("", "no fields provided for update")
	}
	if patch.Status != nil {
		if _, ok := domain.ParseMaintenanceStatus(*patch.Status); !ok {
			return nil, domain.Invalid("status", "must be one of pending, in_progress, completed")
		}
	}
	if patch.Priority != nil {
		if _, ok := domain.ParseMaintenancePriority(*patch.Priority); !ok {
			return nil, domain.Invalid("priority", "must be one of low, medium, high")
		}
	}
	if patch.Description != nil && strings.TrimSpace(*patch.Description) == "" {
		return nil, domain.Invalid("description", "must not be empty")
	}

	existing, err := s.GetMaintenance(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	merged := patch.Apply(*existing, s.now())
	updated, err := s.maintenance.Update(ctx, &merged)
	if err != nil {
		return nil, storeErr("failed to update maintenance request", err)
	}
	if updated == nil {
		return nil, domain.NotFound("maintenance request", id)
	}
	s.publish(ctx, events.MaintenanceUpdated, s.maintenanceEvent(updated, actor))
	return updated, nil
}

func (s *Service) maintenanceEvent(m *domain.MaintenanceRequest, actor domain.Actor) events.MaintenanceEvent {
	return events.MaintenanceEvent{
		RequestID:  m.ID,
		RoomID:     m.RoomID,
		Priority:   string(m.Priority),
		Status:     string(m.Status),
		ActorID:    actor.ID,
		ActorRole:  string(actor.Role),
		OccurredAt: s.now(),
	}
}

