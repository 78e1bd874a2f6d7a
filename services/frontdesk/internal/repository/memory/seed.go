package memory

import (
	"time"

	"github.com/diagnosis/hotel-frontdesk/services/frontdesk/internal/domain"
)

// SeedDemo loads a handful of rooms and one in-house guest so a memory-backed
// server has something to show.
func SeedDemo(db *DB, today domain.Date) {
	rooms := []domain.Room{
		{ID: 101, RoomNumber: "101", Type: "Standard", Beds: "Queen", Capacity: 2, PricePerNight: 120, Features: []string{"Wi-Fi", "TV", "AC", "Breakfast"}, Status: domain.RoomOccupied},
		{ID: 102, RoomNumber: "102", Type: "Standard", Beds: "Twin", Capacity: 2, PricePerNight: 120, Features: []string{"Wi-Fi", "TV", "AC"}},
		{ID: 201, RoomNumber: "201", Type: "Deluxe", Beds: "King", Capacity: 3, PricePerNight: 180, Features: []string{"Wi-Fi", "TV", "AC", "Minibar"}},
		{ID: 301, RoomNumber: "301", Type: "Suite", Beds: "King", Capacity: 4, PricePerNight: 320, Features: []string{"Wi-Fi", "TV", "AC", "Minibar", "Jacuzzi"}, Status: domain.RoomCleaning},
	}
	for _, rm := range rooms {
		db.AddRoom(rm)
	}

	g := db.AddGuest(domain.Guest{Name: "John Smith", Email: "john.smith@example.com", Phone: "+15550100"})
	db.PutReservation(domain.Reservation{
		RoomID:        101,
		GuestID:       g.ID,
		CheckIn:       today.AddDays(-1),
		CheckOut:      today.AddDays(2),
		TotalAmount:   360,
		PaymentStatus: domain.PaymentPaid,
		PaymentMethod: "card",
		CreatedAt:     time.Now(),
	})
}
