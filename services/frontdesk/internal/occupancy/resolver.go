package occupancy

import (
	"context"

	"github.com/diagnosis/hotel-frontdesk/pkg/logger"
	"github.com/diagnosis/hotel-frontdesk/services/frontdesk/internal/domain"
)

// Resolve returns the reservation whose stay contains day, or nil.
//
// Reservations with missing or inverted dates are skipped with a data quality
// warning. If stored data holds more than one match, the first in list order wins.
func Resolve(ctx context.Context, reservations []domain.Reservation, day domain.Date) *domain.Reservation {
	for i := range reservations {
		r := &reservations[i]
		if !r.Stay().Valid() {
			logger.WarnContext(ctx, "Skipping malformed reservation",
				"reservation_id", r.ID,
				"room_id", r.RoomID,
				"check_in_date", r.CheckIn.String(),
				"check_out_date", r.CheckOut.String(),
			)
			continue
		}
		if r.Stay().Contains(day) {
			return r
		}
	}
	return nil
}

// Overlapping filters reservations whose stay shares a night with window,
// preserving order and skipping malformed entries.
func Overlapping(ctx context.Context, reservations []domain.Reservation, window domain.DateRange) []domain.Reservation {
	out := make([]domain.Reservation, 0, len(reservations))
	for _, r := range reservations {
		if !r.Stay().Valid() {
			logger.WarnContext(ctx, "Skipping malformed reservation", "reservation_id", r.ID, "room_id", r.RoomID)
			continue
		}
		if r.Stay().Overlaps(window) {
			out = append(out, r)
		}
	}
	return out
}
