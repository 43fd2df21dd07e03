package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"autorental-backend/internal/domain"
	"autorental-backend/internal/repository"
	"autorental-backend/internal/service"
)

type RentalHandler struct {
	rentals service.RentalService
}

func NewRentalHandler(rentals service.RentalService) *RentalHandler {
	return &RentalHandler{rentals: rentals}
}

type createRentalRequest struct {
	VehicleID  int64  `json:"vehicle_id"`
	CustomerID int64  `json:"customer_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Notes      string `json:"notes"`
}

func (h *RentalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRentalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: invalid request body: %v", domain.ErrValidation, err))
		return
	}
	start, err := parseDate(req.StartDate, "start_date")
	if err != nil {
		writeError(w, err)
		return
	}
	end, err := parseDate(req.EndDate, "end_date")
	if err != nil {
		writeError(w, err)
		return
	}

	rental, err := h.rentals.CreateRental(r.Context(), service.CreateRentalInput{
		VehicleID:  req.VehicleID,
		CustomerID: req.CustomerID,
		StartDate:  start,
		EndDate:    end,
		Notes:      req.Notes,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toRentalView(rental))
}

func (h *RentalHandler) Deliver(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.rentals.DeliverVehicle)
}

func (h *RentalHandler) Return(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.rentals.ReturnVehicle)
}

func (h *RentalHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.rentals.CancelRental)
}

func (h *RentalHandler) transition(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, rentalID int64) (*domain.Rental, error)) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	rental, err := op(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRentalView(rental))
}

func (h *RentalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.rentals.DeleteRental(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *RentalHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	rental, err := h.rentals.GetRental(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRentalView(rental))
}

type rentalListResponse struct {
	Rentals []RentalView `json:"rentals"`
	Total   int32        `json:"total"`
}

func (h *RentalHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := repository.RentalFilter{
		Status: domain.RentalStatus(q.Get("status")),
	}
	if v := q.Get("customer_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			writeError(w, fmt.Errorf("%w: invalid customer_id", domain.ErrValidation))
			return
		}
		filter.CustomerID = id
	}
	if v := q.Get("vehicle_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			writeError(w, fmt.Errorf("%w: invalid vehicle_id", domain.ErrValidation))
			return
		}
		filter.VehicleID = id
	}
	if v := q.Get("from"); v != "" {
		from, err := parseDate(v, "from")
		if err != nil {
			writeError(w, err)
			return
		}
		filter.From = &from
	}
	if v := q.Get("to"); v != "" {
		to, err := parseDate(v, "to")
		if err != nil {
			writeError(w, err)
			return
		}
		filter.To = &to
	}
	if q.Get("overdue") == "true" {
		if filter.Status != "" && filter.Status != domain.RentalStatusActive {
			writeError(w, fmt.Errorf("%w: overdue=true only applies to ACTIVE rentals", domain.ErrValidation))
			return
		}
		// Compare whole days; a rental ending today is not overdue yet.
		now := time.Now().UTC()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		filter.OverdueOn = &today
	}

	page, pageSize := pagination(q)
	rentals, total, err := h.rentals.ListRentals(r.Context(), filter, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rentalListResponse{Rentals: toRentalViews(rentals), Total: total})
}

func (h *RentalHandler) ContractDocument(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	path, err := h.rentals.ContractDocument(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"document": path})
}

func pathID(r *http.Request, name string) (int64, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid %s %q", domain.ErrValidation, name, raw)
	}
	return id, nil
}

func parseDate(value, field string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be yyyy-mm-dd", domain.ErrValidation, field)
	}
	return t, nil
}

func pagination(q map[string][]string) (int32, int32) {
	get := func(name string, def, max int32) int32 {
		vals := q[name]
		if len(vals) == 0 {
			return def
		}
		n, err := strconv.ParseInt(vals[0], 10, 32)
		if err != nil || n < 1 || int32(n) > max {
			return def
		}
		return int32(n)
	}
	// The caps keep (page-1)*page_size inside int32.
	return get("page", 1, 1000000), get("page_size", 20, 100)
}
