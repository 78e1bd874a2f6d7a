// Package authz maps an actor's role to the operations it may invoke.
// The table is the only place role names are compared.
package authz

import "github.com/diagnosis/hotel-frontdesk/services/frontdesk/internal/domain"

type Operation string

const (
	ReservationRead   Operation = "reservation.read"
	ReservationCreate Operation = "reservation.create"
	ReservationModify Operation = "reservation.modify"
	ReservationDelete Operation = "reservation.delete"

	RoomRead Operation = "room.read"

	GuestRead   Operation = "guest.read"
	GuestWrite  Operation = "guest.write"
	GuestDelete Operation = "guest.delete"

	MaintenanceRead  Operation = "maintenance.read"
	MaintenanceWrite Operation = "maintenance.write"
)

// SetRoomStatus is the operation of moving a room into target.
func SetRoomStatus(target domain.RoomStatus) Operation {
	return Operation("room.status." + string(target))
}

var staffOps = []Operation{
	ReservationRead, ReservationCreate, ReservationModify,
	RoomRead,
	GuestRead, GuestWrite,
	MaintenanceRead, MaintenanceWrite,
	SetRoomStatus(domain.RoomAvailable),
	SetRoomStatus(domain.RoomCleaning),
}

var managerOps = []Operation{
	ReservationDelete,
	GuestDelete,
	SetRoomStatus(domain.RoomReserved),
	SetRoomStatus(domain.RoomOccupied),
	SetRoomStatus(domain.RoomMaintenance),
}

var capabilities = buildCapabilities()

func buildCapabilities() map[domain.Role]map[Operation]bool {
	grant := func(ops ...[]Operation) map[Operation]bool {
		m := make(map[Operation]bool)
		for _, set := range ops {
			for _, op := range set {
				m[op] = true
			}
		}
		return m
	}
	return map[domain.Role]map[Operation]bool{
		domain.RoleAdmin:     grant(staffOps, managerOps),
		domain.RoleOwner:     grant(staffOps, managerOps),
		domain.RoleAttendant: grant(staffOps),
	}
}

// Allowed reports whether role may perform op. Unknown roles get nothing.
func Allowed(role domain.Role, op Operation) bool {
	return capabilities[role][op]
}

// Check returns a ForbiddenError when role may not perform op.
func Check(role domain.Role, op Operation) error {
	if Allowed(role, op) {
		return nil
	}
	return &domain.ForbiddenError{Role: role, Operation: string(op)}
}

func CanDeleteReservation(role domain.Role) bool {
	return Allowed(role, ReservationDelete)
}
