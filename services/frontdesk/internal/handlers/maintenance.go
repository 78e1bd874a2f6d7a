package handlers

import (
	"net/http"

	"github.com/diagnosis/hotel-frontdesk/services/frontdesk/internal/domain"
	"github.com/diagnosis/hotel-frontdesk/services/frontdesk/internal/response"
)

func (h *Handlers) ListMaintenance(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)
	out, err := h.maintenance.ListMaintenance(r.Context(), actorFrom(r), limit, offset)
	if err != nil {
		response.FromError(r.Context(), w, err)
		return
	}
	if out == nil {
		out = []domain.MaintenanceRequest{}
	}
	response.JSON(w, http.StatusOK, out)
}

func (h *Handlers) GetMaintenance(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.FromError(r.Context(), w, err)
		return
	}
	m, err := h.maintenance.GetMaintenance(r.Context(), actorFrom(r), id)
	if err != nil {
		response.FromError(r.Context(), w, err)
		return
	}
	response.JSON(w, http.StatusOK, m)
}

func (h *Handlers) CreateMaintenance(w http.ResponseWriter, r *http.Request) {
	var in domain.MaintenanceReq
	if err := h.decode(r, &in); err != nil {
		response.FromError(r.Context(), w, err)
		return
	}
	m, err := h.maintenance.CreateMaintenance(r.Context(), actorFrom(r), &in)
	if err != nil {
		response.FromError(r.Context(), w, err)
		return
	}
	response.JSON(w, http.StatusCreated, m)
}

func (h *Handlers) UpdateMaintenance(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.FromError(r.Context(), w, err)
		return
	}
	var patch domain.MaintenancePatch
	if err := h.decode(r, &patch); err != nil {
		response.FromError(r.Context(), w, err)
		return
	}
	m, err := h.maintenance.UpdateMaintenance(r.Context(), actorFrom(r), id, patch)
	if err != nil {
		response.FromError(r.Context(), w, err)
		return
	}
	response.JSON(w, http.StatusOK, m)
}
