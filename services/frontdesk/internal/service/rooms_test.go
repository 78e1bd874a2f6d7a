package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diagnosis/hotel-frontdesk/pkg/events"
	"github.com/diagnosis/hotel-frontdesk/services/frontdesk/internal/domain"
)

func TestResolveOccupantScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	r, err := f.book(t, admin, 101, f.guestA.ID, "2024-06-12", "2024-06-15")
	require.NoError(t, err)

	occ, err := f.svc.ResolveOccupant(ctx, attendant, 101, d("2024-06-13"))
	require.NoError(t, err)
	require.NotNil(t, occ)
	assert.Equal(t, r.ID, occ.Reservation.ID)
	assert.Equal(t, "Guest A", occ.Guest.Name)

	occ, err = f.svc.ResolveOccupant(ctx, attendant, 101, d("2024-06-15"))
	require.NoError(t, err)
	assert.Nil(t, occ)

	again, err := f.svc.ResolveOccupant(ctx, attendant, 101, d("2024-06-15"))
	require.NoError(t, err)
	assert.Equal(t, occ, again)
}

func TestResolveOccupantErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.ResolveOccupant(ctx, attendant, 999, d("2024-06-13"))
	requireKind(t, err, domain.KindNotFound)

	_, err = f.svc.ResolveOccupant(ctx, stranger, 101, d("2024-06-13"))
	requireKind(t, err, domain.KindForbidden)
}

func TestResolveOccupantMissingGuest(t *testing.T) {
	f := newFixture(t)
	f.db.PutReservation(domain.Reservation{RoomID: 101, GuestID: 777, CheckIn: d("2024-06-12"), CheckOut: d("2024-06-15")})

	occ, err := f.svc.ResolveOccupant(context.Background(), admin, 101, d("2024-06-13"))
	require.NoError(t, err)
	require.NotNil(t, occ)
	assert.Equal(t, int64(777), occ.Guest.ID)
	assert.Empty(t, occ.Guest.Name)
}

func TestListRoomsResolvesEachRoom(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.mustBook(t, 101, "2024-06-12", "2024-06-15")
	f.mustBook(t, 201, "2024-06-13", "2024-06-14")
	// corrupt row on 102 must not break the listing
	f.db.PutReservation(domain.Reservation{RoomID: 102, GuestID: f.guestB.ID})

	views, err := f.svc.ListRooms(ctx, attendant, f.svc.Today())
	require.NoError(t, err)
	require.Len(t, views, 3)

	byNumber := map[string]domain.RoomView{}
	for _, v := range views {
		byNumber[v.RoomNumber] = v
	}
	require.NotNil(t, byNumber["101"].ActiveGuest)
	assert.Equal(t, "Guest A", byNumber["101"].ActiveGuest.Name)
	assert.NotNil(t, byNumber["101"].ReservationID)
	assert.Nil(t, byNumber["102"].ActiveGuest)
	assert.NotNil(t, byNumber["201"].ActiveGuest)
	assert.Equal(t, domain.RoomCleaning, byNumber["201"].Status, "status is not derived from occupancy")

	views, err = f.svc.ListRooms(ctx, attendant, d("2024-06-14"))
	require.NoError(t, err)
	for _, v := range views {
		if v.RoomNumber == "201" {
			assert.Nil(t, v.ActiveGuest, "checkout day is free")
		}
	}
}

func TestGetRoom(t *testing.T) {
	f := newFixture(t)
	f.mustBook(t, 101, "2024-06-12", "2024-06-15")

	v, err := f.svc.GetRoom(context.Background(), owner, 101, d("2024-06-12"))
	require.NoError(t, err)
	require.NotNil(t, v.ActiveGuest)

	_, err = f.svc.GetRoom(context.Background(), owner, 404, d("2024-06-12"))
	requireKind(t, err, domain.KindNotFound)
}

func TestChangeRoomStatusRoleGating(t *testing.T) {
	tests := []struct {
		target  domain.RoomStatus
		allowed bool
	}{
		{domain.RoomAvailable, true},
		{domain.RoomCleaning, true},
		{domain.RoomReserved, false},
		{domain.RoomOccupied, false},
		{domain.RoomMaintenance, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.target), func(t *testing.T) {
			f := newFixture(t)
			// start from a status different from every target
			_, err := f.svc.ChangeRoomStatus(context.Background(), admin, 101, string(domain.RoomReserved))
			require.NoError(t, err)
			if tt.target == domain.RoomReserved {
				_, err = f.svc.ChangeRoomStatus(context.Background(), admin, 101, string(domain.RoomOccupied))
				require.NoError(t, err)
			}

			room, err := f.svc.ChangeRoomStatus(context.Background(), attendant, 101, string(tt.target))
			if tt.allowed {
				require.NoError(t, err)
				assert.Equal(t, tt.target, room.Status)
			} else {
				requireKind(t, err, domain.KindForbidden)
			}

			room, err = f.svc.ChangeRoomStatus(context.Background(), admin, 101, string(tt.target))
			require.NoError(t, err)
			assert.Equal(t, tt.target, room.Status)
		})
	}
}

func TestChangeRoomStatusScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.ChangeRoomStatus(ctx, attendant, 101, "maintenance")
	requireKind(t, err, domain.KindForbidden)

	room, err := f.svc.ChangeRoomStatus(ctx, admin, 101, "maintenance")
	require.NoError(t, err)
	assert.Equal(t, domain.RoomMaintenance, room.Status)
	assert.Equal(t, []string{events.RoomStatusChanged}, f.events.subjects())
}

func TestChangeRoomStatusEdgeCases(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.ChangeRoomStatus(ctx, admin, 101, "haunted")
	requireKind(t, err, domain.KindValidation)

	_, err = f.svc.ChangeRoomStatus(ctx, admin, 999, "cleaning")
	requireKind(t, err, domain.KindNotFound)

	_, err = f.svc.ChangeRoomStatus(ctx, stranger, 101, "available")
	requireKind(t, err, domain.KindForbidden)

	// same status: authorized, no write, no event
	room, err := f.svc.ChangeRoomStatus(ctx, attendant, 201, "cleaning")
	require.NoError(t, err)
	assert.Equal(t, domain.RoomCleaning, room.Status)
	assert.Empty(t, f.events.subjects())

	// permissive: available on an occupied room is allowed
	f.mustBook(t, 101, "2024-06-12", "2024-06-15")
	_, err = f.svc.ChangeRoomStatus(ctx, admin, 101, "occupied")
	require.NoError(t, err)
	room, err = f.svc.ChangeRoomStatus(ctx, attendant, 101, "available")
	require.NoError(t, err)
	assert.Equal(t, domain.RoomAvailable, room.Status)
}

func TestRoomCalendar(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.mustBook(t, 101, "2024-06-01", "2024-06-05")
	f.mustBook(t, 101, "2024-06-05", "2024-06-08")
	f.mustBook(t, 101, "2024-06-20", "2024-06-22")

	got, err := f.svc.RoomCalendar(ctx, attendant, 101, domain.DateRange{CheckIn: d("2024-06-04"), CheckOut: d("2024-06-20")})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "2024-06-01", got[0].CheckIn.String())

	_, err = f.svc.RoomCalendar(ctx, attendant, 101, domain.DateRange{CheckIn: d("2024-06-20"), CheckOut: d("2024-06-04")})
	requireKind(t, err, domain.KindValidation)

	_, err = f.svc.RoomCalendar(ctx, attendant, 999, domain.DateRange{CheckIn: d("2024-06-04"), CheckOut: d("2024-06-20")})
	requireKind(t, err, domain.KindNotFound)
}
