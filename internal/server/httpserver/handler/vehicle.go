package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/yndnr/easycar-go/internal/telemetry/logger"
)

// ListVehicles handles GET /vehicle.
func (h *Handler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.vehicleSvc.List(r.Context(), UserFromContext(r.Context()))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, vehicles)
}

// CreateVehicle handles POST /vehicle.
func (h *Handler) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	var req CreateVehicleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	owner := UserFromContext(r.Context())
	v, err := h.vehicleSvc.Create(r.Context(), owner, req.Plate)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	logger.L(r.Context()).Info("vehicle created", "owner", owner, "id", v.ID, "plate", v.Plate)
	h.writeJSON(w, r, http.StatusCreated, v)
}

// DeleteVehicle handles DELETE /vehicle/{id}.
func (h *Handler) DeleteVehicle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	owner := UserFromContext(r.Context())

	if err := h.vehicleSvc.Delete(r.Context(), owner, id); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	logger.L(r.Context()).Info("vehicle deleted", "owner", owner, "id", id)
	h.writeJSON(w, r, http.StatusOK, map[string]string{"id": id})
}
