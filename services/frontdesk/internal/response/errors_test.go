package response

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/diagnosis/hotel-frontdesk/services/frontdesk/internal/domain"
)

func TestFromError(t *testing.T) {
	stay := domain.DateRange{CheckIn: domain.MustParseDate("2024-06-10"), CheckOut: domain.MustParseDate("2024-06-15")}

	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", domain.Invalid("check_out_date", "must be after check_in_date"), http.StatusBadRequest, CodeInvalidInput},
		{"conflict", &domain.ConflictError{RoomID: 1, ExistingID: 9, Existing: stay}, http.StatusConflict, CodeConflict},
		{"forbidden", &domain.ForbiddenError{Role: domain.RoleAttendant, Operation: "reservation.delete"}, http.StatusForbidden, CodeForbidden},
		{"not found wrapped", fmt.Errorf("lookup: %w", domain.NotFound("room", 4)), http.StatusNotFound, CodeNotFound},
		{"infrastructure", errors.New("connection reset"), http.StatusInternalServerError, CodeInternalError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			FromError(context.Background(), rr, tt.err)

			if rr.Code != tt.status {
				t.Errorf("status = %d, want %d", rr.Code, tt.status)
			}
			var body ErrorResponse
			if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Code != tt.code {
				t.Errorf("code = %q, want %q", body.Code, tt.code)
			}
		})
	}
}

func TestFromErrorConflictDetails(t *testing.T) {
	stay := domain.DateRange{CheckIn: domain.MustParseDate("2024-06-10"), CheckOut: domain.MustParseDate("2024-06-15")}
	rr := httptest.NewRecorder()
	FromError(context.Background(), rr, &domain.ConflictError{RoomID: 1, ExistingID: 9, Existing: stay})

	var body ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.ConflictingReservationID != 9 || body.ConflictingStay != stay.String() {
		t.Errorf("unexpected conflict body: %+v", body)
	}
}

func TestFromErrorHidesInfrastructureDetail(t *testing.T) {
	rr := httptest.NewRecorder()
	FromError(context.Background(), rr, errors.New("pq: password authentication failed"))

	var body ErrorResponse
	json.NewDecoder(rr.Body).Decode(&body)
	if body.Error != "internal server error" {
		t.Errorf("error leaked: %q", body.Error)
	}
}
