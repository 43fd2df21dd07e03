package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"autorental-backend/internal/domain"
	"autorental-backend/internal/service"
)

type VehicleHandler struct {
	vehicles service.VehicleService
}

func NewVehicleHandler(vehicles service.VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicles: vehicles}
}

type addVehicleRequest struct {
	Plate             string `json:"plate"`
	Make              string `json:"make"`
	Model             string `json:"model"`
	RateNormalCents   int64  `json:"rate_normal_cents"`
	RateVIPCents      int64  `json:"rate_vip_cents"`
	RateLongTermCents int64  `json:"rate_long_term_cents"`
	RateMonthlyCents  int64  `json:"rate_monthly_cents"`
}

func (h *VehicleHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req addVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: invalid request body: %v", domain.ErrValidation, err))
		return
	}
	vehicle := &domain.Vehicle{
		Plate:             req.Plate,
		Make:              req.Make,
		Model:             req.Model,
		RateNormalCents:   req.RateNormalCents,
		RateVIPCents:      req.RateVIPCents,
		RateLongTermCents: req.RateLongTermCents,
		RateMonthlyCents:  req.RateMonthlyCents,
	}
	if err := h.vehicles.AddVehicle(r.Context(), vehicle); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toVehicleView(vehicle))
}

func (h *VehicleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	vehicle, err := h.vehicles.GetVehicle(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toVehicleView(vehicle))
}

type vehicleListResponse struct {
	Vehicles []VehicleView `json:"vehicles"`
	Total    int32         `json:"total"`
}

func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, pageSize := pagination(q)
	vehicles, total, err := h.vehicles.ListVehicles(r.Context(), q.Get("status"), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicleListResponse{Vehicles: toVehicleViews(vehicles), Total: total})
}

func (h *VehicleHandler) SendToMaintenance(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	vehicle, err := h.vehicles.SendToMaintenance(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toVehicleView(vehicle))
}

func (h *VehicleHandler) ReturnToService(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	vehicle, err := h.vehicles.ReturnToService(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toVehicleView(vehicle))
}

func (h *VehicleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.vehicles.DeleteVehicle(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
