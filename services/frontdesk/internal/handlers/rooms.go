package handlers

import (
	"net/http"

	"github.com/diagnosis/hotel-frontdesk/services/frontdesk/internal/domain"
	"github.com/diagnosis/hotel-frontdesk/services/frontdesk/internal/response"
)

// ListRooms returns every room with its active guest on ?date (default today).
func (h *Handlers) ListRooms(w http.ResponseWriter, r *http.Request) {
	day, err := queryDate(r, "date", h.rooms.Today())
	if err != nil {
		response.FromError(r.Context(), w, err)
		return
	}
	views, err := h.rooms.ListRooms(r.Context(), actorFrom(r), day)
	if err != nil {
		response.FromError(r.Context(), w, err)
		return
	}
	if views == nil {
		views = []domain.RoomView{}
	}
	response.JSON(w, http.StatusOK, views)
}

func (h *Handlers) GetRoom(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.FromError(r.Context(), w, err)
		return
	}
	day, err := queryDate(r, "date", h.rooms.Today())
	if err != nil {
		response.FromError(r.Context(), w, err)
		return
	}
	view, err := h.rooms.GetRoom(r.Context(), actorFrom(r), id, day)
	if err != nil {
		response.FromError(r.Context(), w, err)
		return
	}
	response.JSON(w, http.StatusOK, view)
}

// GetOccupant answers 204 when nobody holds the room on the day.
func (h *Handlers) GetOccupant(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.FromError(r.Context(), w, err)
		return
	}
	day, err := queryDate(r, "date", h.rooms.Today())
	if err != nil {
		response.FromError(r.Context(), w, err)
		return
	}
	occ, err := h.rooms.ResolveOccupant(r.Context(), actorFrom(r), id, day)
	if err != nil {
		response.FromError(r.Context(), w, err)
		return
	}
	if occ == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	response.JSON(w, http.StatusOK, occ)
}

func (h *Handlers) GetCalendar(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.FromError(r.Context(), w, err)
		return
	}
	from, err := queryDate(r, "from", h.rooms.Today())
	if err != nil {
		response.FromError(r.Context(), w, err)
		return
	}
	to, err := queryDate(r, "to", from.AddDays(30))
	if err != nil {
		response.FromError(r.Context(), w, err)
		return
	}
	out, err := h.rooms.RoomCalendar(r.Context(), actorFrom(r), id, domain.DateRange{CheckIn: from, CheckOut: to})
	if err != nil {
		response.FromError(r.Context(), w, err)
		return
	}
	if out == nil {
		out = []domain.Reservation{}
	}
	response.JSON(w, http.StatusOK, out)
}

func (h *Handlers) ChangeRoomStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.FromError(r.Context(), w, err)
		return
	}
	var in domain.RoomStatusChangeReq
	if err := h.decode(r, &in); err != nil {
		response.FromError(r.Context(), w, err)
		return
	}
	room, err := h.rooms.ChangeRoomStatus(r.Context(), actorFrom(r), id, in.Status)
	if err != nil {
		response.FromError(r.Context(), w, err)
		return
	}
	response.JSON(w, http.StatusOK, room)
}
