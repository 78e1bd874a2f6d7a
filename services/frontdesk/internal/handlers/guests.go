package handlers

import (
	"net/http"

	"github.com/diagnosis/hotel-frontdesk/services/frontdesk/internal/domain"
	"github.com/diagnosis/hotel-frontdesk/services/frontdesk/internal/response"
)

func (h *Handlers) ListGuests(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)
	out, err := h.guests.ListGuests(r.Context(), actorFrom(r), limit, offset)
	if err != nil {
		response.FromError(r.Context(), w, err)
		return
	}
	if out == nil {
		out = []domain.Guest{}
	}
	response.JSON(w, http.StatusOK, out)
}

func (h *Handlers) GetGuest(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.FromError(r.Context(), w, err)
		return
	}
	g, err := h.guests.GetGuest(r.Context(), actorFrom(r), id)
	if err != nil {
		response.FromError(r.Context(), w, err)
		return
	}
	response.JSON(w, http.StatusOK, g)
}

func (h *Handlers) CreateGuest(w http.ResponseWriter, r *http.Request) {
	var in domain.GuestReq
	if err := h.decode(r, &in); err != nil {
		response.FromError(r.Context(), w, err)
		return
	}
	g, err := h.guests.CreateGuest(r.Context(), actorFrom(r), &in)
	if err != nil {
		response.FromError(r.Context(), w, err)
		return
	}
	response.JSON(w, http.StatusCreated, g)
}

func (h *Handlers) UpdateGuest(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.FromError(r.Context(), w, err)
		return
	}
	var patch domain.GuestPatch
	if err := h.decode(r, &patch); err != nil {
		response.FromError(r.Context(), w, err)
		return
	}
	g, err := h.guests.UpdateGuest(r.Context(), actorFrom(r), id, patch)
	if err != nil {
		response.FromError(r.Context(), w, err)
		return
	}
	response.JSON(w, http.StatusOK, g)
}

func (h *Handlers) DeleteGuest(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.FromError(r.Context(), w, err)
		return
	}
	if err := h.guests.DeleteGuest(r.Context(), actorFrom(r), id); err != nil {
		response.FromError(r.Context(), w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
