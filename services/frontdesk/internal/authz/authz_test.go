package authz

import (
	"errors"
	"testing"

	"github.com/diagnosis/hotel-frontdesk/services/frontdesk/internal/domain"
)

func TestRoomStatusTargets(t *testing.T) {
	tests := []struct {
		target    domain.RoomStatus
		manager   bool
		attendant bool
	}{
		{domain.RoomAvailable, true, true},
		{domain.RoomCleaning, true, true},
		{domain.RoomReserved, true, false},
		{domain.RoomOccupied, true, false},
		{domain.RoomMaintenance, true, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.target), func(t *testing.T) {
			op := SetRoomStatus(tt.target)
			for _, role := range []domain.Role{domain.RoleAdmin, domain.RoleOwner} {
				if got := Allowed(role, op); got != tt.manager {
					t.Errorf("Allowed(%s, %s) = %v, want %v", role, op, got, tt.manager)
				}
			}
			if got := Allowed(domain.RoleAttendant, op); got != tt.attendant {
				t.Errorf("Allowed(attendant, %s) = %v, want %v", op, got, tt.attendant)
			}
		})
	}
}

func TestReservationOperations(t *testing.T) {
	for _, role := range []domain.Role{domain.RoleAdmin, domain.RoleOwner, domain.RoleAttendant} {
		for _, op := range []Operation{ReservationRead, ReservationCreate, ReservationModify} {
			if !Allowed(role, op) {
				t.Errorf("%s should be allowed %s", role, op)
			}
		}
	}

	if !CanDeleteReservation(domain.RoleAdmin) || !CanDeleteReservation(domain.RoleOwner) {
		t.Error("admin and owner must be able to delete reservations")
	}
	if CanDeleteReservation(domain.RoleAttendant) {
		t.Error("attendant must not delete reservations")
	}
}

func TestGuestOperations(t *testing.T) {
	for _, role := range []domain.Role{domain.RoleAdmin, domain.RoleOwner, domain.RoleAttendant} {
		if !Allowed(role, GuestRead) || !Allowed(role, GuestWrite) {
			t.Errorf("%s should read and write guests", role)
		}
	}
	if !Allowed(domain.RoleAdmin, GuestDelete) || !Allowed(domain.RoleOwner, GuestDelete) {
		t.Error("admin and owner must be able to delete guests")
	}
	if Allowed(domain.RoleAttendant, GuestDelete) {
		t.Error("attendant must not delete guests")
	}
}

func TestUnknownRoleGetsNothing(t *testing.T) {
	for _, role := range []domain.Role{"", "guest", "ADMIN"} {
		for _, op := range []Operation{ReservationRead, ReservationCreate, RoomRead, SetRoomStatus(domain.RoomAvailable)} {
			if Allowed(role, op) {
				t.Errorf("role %q allowed %s", role, op)
			}
		}
	}
}

func TestCheck(t *testing.T) {
	if err := Check(domain.RoleOwner, ReservationDelete); err != nil {
		t.Fatalf("owner delete: %v", err)
	}

	err := Check(domain.RoleAttendant, SetRoomStatus(domain.RoomMaintenance))
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
	var fe *domain.ForbiddenError
	if !errors.As(err, &fe) || fe.Operation != "room.status.maintenance" || fe.Role != domain.RoleAttendant {
		t.Errorf("unexpected error detail: %#v", err)
	}
}
