package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"autorental-backend/internal/service"
)

// NewRouter wires the exposed operations onto a mux router.
func NewRouter(rentals service.RentalService, payments service.PaymentService, vehicles service.VehicleService) *mux.Router {
	r := mux.NewRouter()
	r.Use(RequestID, RequestLogger)

	rentalHandler := NewRentalHandler(rentals)
	paymentHandler := NewPaymentHandler(payments)
	vehicleHandler := NewVehicleHandler(vehicles)

	v1 := r.PathPrefix("/v1").Subrouter()

	v1.HandleFunc("/rentals", rentalHandler.Create).Methods(http.MethodPost)
	v1.HandleFunc("/rentals", rentalHandler.List).Methods(http.MethodGet)
	v1.HandleFunc("/rentals/{id}", rentalHandler.Get).Methods(http.MethodGet)
	v1.HandleFunc("/rentals/{id}", rentalHandler.Delete).Methods(http.MethodDelete)
	v1.HandleFunc("/rentals/{id}/deliver", rentalHandler.Deliver).Methods(http.MethodPost)
	v1.HandleFunc("/rentals/{id}/return", rentalHandler.Return).Methods(http.MethodPost)
	v1.HandleFunc("/rentals/{id}/cancel", rentalHandler.Cancel).Methods(http.MethodPost)
	v1.HandleFunc("/rentals/{id}/payments", paymentHandler.ListByRental).Methods(http.MethodGet)
	v1.HandleFunc("/rentals/{id}/contract-document", rentalHandler.ContractDocument).Methods(http.MethodGet)

	v1.HandleFunc("/payments", paymentHandler.Register).Methods(http.MethodPost)
	v1.HandleFunc("/payments/income", paymentHandler.Income).Methods(http.MethodGet)
	v1.HandleFunc("/payments/{id}/refund", paymentHandler.Refund).Methods(http.MethodPost)
	v1.HandleFunc("/payments/{id}/confirm", paymentHandler.Confirm).Methods(http.MethodPost)
	v1.HandleFunc("/payments/{id}/reject", paymentHandler.Reject).Methods(http.MethodPost)
	v1.HandleFunc("/payments/{id}", paymentHandler.Delete).Methods(http.MethodDelete)

	v1.HandleFunc("/vehicles", vehicleHandler.Add).Methods(http.MethodPost)
	v1.HandleFunc("/vehicles", vehicleHandler.List).Methods(http.MethodGet)
	v1.HandleFunc("/vehicles/{id}", vehicleHandler.Get).Methods(http.MethodGet)
	v1.HandleFunc("/vehicles/{id}", vehicleHandler.Delete).Methods(http.MethodDelete)
	v1.HandleFunc("/vehicles/{id}/maintenance", vehicleHandler.SendToMaintenance).Methods(http.MethodPost)
	v1.HandleFunc("/vehicles/{id}/activate", vehicleHandler.ReturnToService).Methods(http.MethodPost)

	return r
}
