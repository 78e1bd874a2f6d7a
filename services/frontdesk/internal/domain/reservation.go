package domain

import "time"

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentPartial  PaymentStatus = "partial"
	PaymentRefunded PaymentStatus = "refunded"
)

func ParsePaymentStatus(s string) (PaymentStatus, bool) {
	switch PaymentStatus(s) {
	case PaymentPending, PaymentPaid, PaymentPartial, PaymentRefunded:
		return PaymentStatus(s), true
	default:
		return "", false
	}
}

type Reservation struct {
	ID            int64         `json:"id"`
	RoomID        int64         `json:"room_id"`
	GuestID       int64         `json:"guest_id"`
	CheckIn       Date          `json:"check_in_date"`
	CheckOut      Date          `json:"check_out_date"`
	TotalAmount   float64       `json:"total_amount"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	PaymentMethod string        `json:"payment_method"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

func (r *Reservation) Stay() DateRange {
	return DateRange{CheckIn: r.CheckIn, CheckOut: r.CheckOut}
}

// ReservationReq is the create payload.
type ReservationReq struct {
	GuestID       int64    `json:"guest_id" validate:"required,gt=0"`
	RoomID        int64    `json:"room_id" validate:"required,gt=0"`
	CheckIn       Date     `json:"check_in_date"`
	CheckOut      Date     `json:"check_out_date"`
	TotalAmount   *float64 `json:"total_amount" validate:"required,gte=0"`
	PaymentStatus string   `json:"payment_status"`
	PaymentMethod string   `json:"payment_method"`
}

// ReservationPatch is a partial update; nil fields are left as stored.
type ReservationPatch struct {
	GuestID       *int64   `json:"guest_id,omitempty" validate:"omitempty,gt=0"`
	RoomID        *int64   `json:"room_id,omitempty" validate:"omitempty,gt=0"`
	CheckIn       *Date    `json:"check_in_date,omitempty"`
	CheckOut      *Date    `json:"check_out_date,omitempty"`
	TotalAmount   *float64 `json:"total_amount,omitempty" validate:"omitempty,gte=0"`
	PaymentStatus *string  `json:"payment_status,omitempty"`
	PaymentMethod *string  `json:"payment_method,omitempty"`
}

func (p ReservationPatch) Empty() bool {
	return p.GuestID == nil && p.RoomID == nil && p.CheckIn == nil && p.CheckOut == nil &&
		p.TotalAmount == nil && p.PaymentStatus == nil && p.PaymentMethod == nil
}

// Apply returns a copy of r with the patch applied.
func (p ReservationPatch) Apply(r Reservation) Reservation {
	if p.GuestID != nil {
		r.GuestID = *p.GuestID
	}
	if p.RoomID != nil {
		r.RoomID = *p.RoomID
	}
	if p.CheckIn != nil {
		r.CheckIn = *p.CheckIn
	}
	if p.CheckOut != nil {
		r.CheckOut = *p.CheckOut
	}
	if p.TotalAmount != nil {
		r.TotalAmount = *p.TotalAmount
	}
	if p.PaymentStatus != nil {
		r.PaymentStatus = PaymentStatus(*p.PaymentStatus)
	}
	if p.PaymentMethod != nil {
		r.PaymentMethod = *p.PaymentMethod
	}
	return r
}

// Proposal is what the conflict guard evaluates.
type Proposal struct {
	RoomID    int64
	Stay      DateRange
	Actor     Actor
	ExcludeID int64 // reservation being modified, 0 on create
}

type AvailabilityReq struct {
	RoomID        int64 `json:"room_id" validate:"required,gt=0"`
	CheckIn       Date  `json:"check_in_date"`
	CheckOut      Date  `json:"check_out_date"`
	ReservationID int64 `json:"reservation_id,omitempty" validate:"gte=0"`
}

// RoomSummary is the room embedded in reservation responses.
type RoomSummary struct {
	ID         int64  `json:"id"`
	RoomNumber string `json:"room_number"`
	Type       string `json:"type"`
}

// ReservationDetail is a reservation with its guest and room inlined under
// the "guests" and "rooms" keys existing clients read. Either is null when
// the referenced row is gone.
type ReservationDetail struct {
	Reservation
	Guest *GuestSummary `json:"guests"`
	Room  *RoomSummary  `json:"rooms"`
}
