package domain

import "time"

type MaintenanceStatus string

const (
	MaintenancePending    MaintenanceStatus = "pending"
	MaintenanceInProgress MaintenanceStatus = "in_progress"
	MaintenanceCompleted  MaintenanceStatus = "completed"
)

func ParseMaintenanceStatus(s string) (MaintenanceStatus, bool) {
	switch MaintenanceStatus(s) {
	case MaintenancePending, MaintenanceInProgress, MaintenanceCompleted:
		return MaintenanceStatus(s), true
	default:
		return "", false
	}
}

type MaintenancePriority string

const (
	PriorityLow    MaintenancePriority = "low"
	PriorityMedium MaintenancePriority = "medium"
	PriorityHigh   MaintenancePriority = "high"
)

func ParseMaintenancePriority(s string) (MaintenancePriority, bool) {
	switch MaintenancePriority(s) {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return MaintenancePriority(s), true
	default:
		return "", false
	}
}

// MaintenanceRequest is a work ticket against a room. It never drives room status.
type MaintenanceRequest struct {
	ID          int64               `json:"id"`
	RoomID      int64               `json:"room_id"`
	Description string              `json:"description"`
	Priority    MaintenancePriority `json:"priority"`
	Status      MaintenanceStatus   `json:"status"`
	CompletedAt *time.Time          `json:"completed_at,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

type MaintenanceReq struct {
	RoomID      int64  `json:"room_id" validate:"required,gt=0"`
	Description string `json:"description" validate:"required"`
	Priority    string `json:"priority" validate:"omitempty,oneof=low medium high"`
}

type MaintenancePatch struct {
	RoomID      *int64  `json:"room_id,omitempty" validate:"omitempty,gt=0"`
	Description *string `json:"description,omitempty"`
	Priority    *string `json:"priority,omitempty" validate:"omitempty,oneof=low medium high"`
	Status      *string `json:"status,omitempty" validate:"omitempty,oneof=pending in_progress completed"`
}

func (p MaintenancePatch) Empty() bool {
	return p.RoomID == nil && p.Description == nil && p.Priority == nil && p.Status == nil
}

// Apply returns a copy of m with the patch applied. Entering completed stamps
// CompletedAt, leaving it clears the stamp.
func (p MaintenancePatch) Apply(m MaintenanceRequest, now time.Time) MaintenanceRequest {
	if p.RoomID != nil {
		m.RoomID = *p.RoomID
	}
	if p.Description != nil {
		m.Description = *p.Description
	}
	if p.Priority != nil {
		m.Priority = MaintenancePriority(*p.Priority)
	}
	if p.Status != nil {
		next := MaintenanceStatus(*p.Status)
		switch {
		case next == MaintenanceCompleted && m.Status != MaintenanceCompleted:
			t := now
			m.CompletedAt = &t
		case next != MaintenanceCompleted:
			m.CompletedAt = nil
		}
		m.Status = next
	}
	return m
}
