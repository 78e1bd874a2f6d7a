package handlers

import (
	"net/http"
	"strconv"

	"github.com/diagnosis/hotel-frontdesk/services/frontdesk/internal/domain"
	"github.com/diagnosis/hotel-frontdesk/services/frontdesk/internal/response"
)

func (h *Handlers) ListReservations(w http.ResponseWriter, r *http.Request) {
	var roomID int64
	if v := r.URL.Query().Get("room_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			response.FromError(r.Context(), w, domain.Invalid("room_id", "must be a positive integer"))
			return
		}
		roomID = id
	}
	limit, offset := parsePagination(r)

	out, err := h.reservations.ListReservations(r.Context(), actorFrom(r), roomID, limit, offset)
	if err != nil {
		response.FromError(r.Context(), w, err)
		return
	}
	if out == nil {
		out = []domain.ReservationDetail{}
	}
	response.JSON(w, http.StatusOK, out)
}

func (h *Handlers) GetReservation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.FromError(r.Context(), w, err)
		return
	}
	res, err := h.reservations.GetReservation(r.Context(), actorFrom(r), id)
	if err != nil {
		response.FromError(r.Context(), w, err)
		return
	}
	response.JSON(w, http.StatusOK, res)
}

func (h *Handlers) CreateReservation(w http.ResponseWriter, r *http.Request) {
	var in domain.ReservationReq
	if err := h.decode(r, &in); err != nil {
		response.FromError(r.Context(), w, err)
		return
	}
	created, err := h.reservations.CreateReservation(r.Context(), actorFrom(r), &in)
	if err != nil {
		response.FromError(r.Context(), w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

// CheckAvailability runs the conflict guard without booking anything.
func (h *Handlers) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	var in domain.AvailabilityReq
	if err := h.decode(r, &in); err != nil {
		response.FromError(r.Context(), w, err)
		return
	}
	err := h.reservations.ProposeReservation(r.Context(), domain.Proposal{
		RoomID:    in.RoomID,
		Stay:      domain.DateRange{CheckIn: in.CheckIn, CheckOut: in.CheckOut},
		Actor:     actorFrom(r),
		ExcludeID: in.ReservationID,
	})
	if err != nil {
		response.FromError(r.Context(), w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]bool{"available": true})
}

func (h *Handlers) UpdateReservation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.FromError(r.Context(), w, err)
		return
	}
	var patch domain.ReservationPatch
	if err := h.decode(r, &patch); err != nil {
		response.FromError(r.Context(), w, err)
		return
	}
	updated, err := h.reservations.UpdateReservation(r.Context(), actorFrom(r), id, patch)
	if err != nil {
		response.FromError(r.Context(), w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

func (h *Handlers) DeleteReservation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.FromError(r.Context(), w, err)
		return
	}
	if err := h.reservations.DeleteReservation(r.Context(), actorFrom(r), id); err != nil {
		response.FromError(r.Context(), w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
