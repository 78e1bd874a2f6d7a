package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKind(t *testing.T) {
	tests := []struct {
		err  error
		want ErrorKind
	}{
		{nil, ""},
		{Invalid("check_in_date", "is required"), KindValidation},
		{&ConflictError{RoomID: 101, ExistingID: 3, Existing: stay("2024-06-12", "2024-06-15")}, KindConflict},
		{&ForbiddenError{Role: RoleAttendant, Operation: "reservation.delete"}, KindForbidden},
		{NotFound("room", 9), KindNotFound},
		{fmt.Errorf("failed to get room: %w", NotFound("room", 9)), KindNotFound},
		{errors.New("connection refused"), KindInfrastructure},
		{fmt.Errorf("failed to list: %w", errors.New("timeout")), KindInfrastructure},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Kind(tt.err), "%v", tt.err)
	}
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "check_out_date: must be after check_in_date",
		Invalid("check_out_date", "must be after check_in_date").Error())
	assert.Equal(t, "no fields provided", Invalid("", "no fields provided").Error())
	assert.Equal(t, "role 'undefined' is not authorized to reservation.delete",
		(&ForbiddenError{Operation: "reservation.delete"}).Error())

	err := &ConflictError{RoomID: 101, ExistingID: 3, Existing: stay("2024-06-12", "2024-06-15")}
	assert.Contains(t, err.Error(), "[2024-06-12, 2024-06-15)")
	assert.ErrorIs(t, err, ErrConflict)
}
