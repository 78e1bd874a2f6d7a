package domain

import "time"

type RoomStatus string

const (
	RoomAvailable   RoomStatus = "available"
	RoomReserved    RoomStatus = "reserved"
	RoomOccupied    RoomStatus = "occupied"
	RoomCleaning    RoomStatus = "cleaning"
	RoomMaintenance RoomStatus = "maintenance"
)

func ParseRoomStatus(s string) (RoomStatus, bool) {
	switch RoomStatus(s) {
	case RoomAvailable, RoomReserved, RoomOccupied, RoomCleaning, RoomMaintenance:
		return RoomStatus(s), true
	default:
		return "", false
	}
}

type Room struct {
	ID            int64      `json:"id"`
	RoomNumber    string     `json:"room_number"`
	Type          string     `json:"type"`
	Beds          string     `json:"beds"`
	Capacity      int        `json:"capacity"`
	PricePerNight float64    `json:"price_per_night"`
	Features      []string   `json:"features"`
	Status        RoomStatus `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// ActiveGuest is the slim guest projection shown on room cards.
type ActiveGuest struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// RoomView is a room with its occupant for the requested day.
type RoomView struct {
	Room
	ActiveGuest   *ActiveGuest `json:"active_guest"`
	ReservationID *int64       `json:"reservation_id,omitempty"`
}

// Occupant pairs the reservation holding a room on a given day with its guest.
type Occupant struct {
	Reservation Reservation `json:"reservation"`
	Guest       Guest       `json:"guest"`
}

func (o *Occupant) ActiveGuest() *ActiveGuest {
	if o == nil {
		return nil
	}
	return &ActiveGuest{ID: o.Guest.ID, Name: o.Guest.Name, Email: o.Guest.Email}
}

type RoomStatusChangeReq struct {
	Status string `json:"status" validate:"required"`
}
