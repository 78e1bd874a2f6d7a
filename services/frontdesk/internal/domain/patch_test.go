package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReservationPatchApply(t *testing.T) {
	base := Reservation{ID: 1, RoomID: 101, GuestID: 7, CheckIn: MustParseDate("2024-06-12"), CheckOut: MustParseDate("2024-06-15"), TotalAmount: 360}

	assert.True(t, ReservationPatch{}.Empty())

	out := MustParseDate("2024-06-16")
	amount := 480.0
	p := ReservationPatch{CheckOut: &out, TotalAmount: &amount}
	assert.False(t, p.Empty())

	got := p.Apply(base)
	assert.Equal(t, "2024-06-16", got.CheckOut.String())
	assert.Equal(t, 480.0, got.TotalAmount)
	assert.Equal(t, int64(101), got.RoomID)
	assert.Equal(t, "2024-06-15", base.CheckOut.String(), "original is untouched")
}

func TestMaintenancePatchCompletion(t *testing.T) {
	now := time.Date(2024, 6, 13, 9, 0, 0, 0, time.UTC)
	m := MaintenanceRequest{ID: 1, RoomID: 101, Status: MaintenancePending, Priority: PriorityMedium}

	done := string(MaintenanceCompleted)
	completed := MaintenancePatch{Status: &done}.Apply(m, now)
	if assert.NotNil(t, completed.CompletedAt) {
		assert.Equal(t, now, *completed.CompletedAt)
	}

	reopen := string(MaintenanceInProgress)
	reopened := MaintenancePatch{Status: &reopen}.Apply(completed, now.Add(time.Hour))
	assert.Nil(t, reopened.CompletedAt)
	assert.Equal(t, MaintenanceInProgress, reopened.Status)
}
