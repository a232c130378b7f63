package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"bellezza/internal/entities"
	httperrors "bellezza/internal/errors"
	"bellezza/internal/service"

	"github.com/gorilla/mux"
)

type AppointmentHandler struct {
	Service *service.BookingService
}

func NewAppointmentHandler(svc *service.BookingService) *AppointmentHandler {
	return &AppointmentHandler{Service: svc}
}

// CreateAppointment handles POST /api/appointments
func (h *AppointmentHandler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	var req entities.AppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.WriteJSON(w, httperrors.ErrBadRequest("invalid request body"))
		return
	}
	if req.CustomerName == "" || req.CustomerEmail == "" {
		httperrors.WriteJSON(w, httperrors.ErrBadRequest("customer name and email are required"))
		return
	}

	resp, err := h.Service.CreateAppointment(&req)
	if err != nil {
		writeBookingError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(resp)
}

// GetAppointment handles POST /api/appointments/{code} with the customer
// email in the body as a lookup credential.
func (h *AppointmentHandler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.WriteJSON(w, httperrors.ErrBadRequest("invalid request body"))
		return
	}

	resp, err := h.Service.GetAppointment(code, req.Email)
	if err != nil {
		httperrors.WriteJSON(w, httperrors.ErrNotFound("appointment not found"))
		return
	}
	json.NewEncoder(w).Encode(resp)
}

// CancelAppointment handles POST /api/appointments/{code}/cancel
func (h *AppointmentHandler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.WriteJSON(w, httperrors.ErrBadRequest("invalid request body"))
		return
	}

	if err := h.Service.CancelAppointment(code, req.Email); err != nil {
		writeBookingError(w, err)
		return
	}
	json.NewEncoder(w).Encode(map[string]string{"message": "Appointment cancelled."})
}

// RescheduleAppointment handles PUT /api/appointments/{code}
func (h *AppointmentHandler) RescheduleAppointment(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	var req entities.RescheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.WriteJSON(w, httperrors.ErrBadRequest("invalid request body"))
		return
	}

	resp, err := h.Service.RescheduleAppointment(code, &req)
	if err != nil {
		writeBookingError(w, err)
		return
	}
	json.NewEncoder(w).Encode(resp)
}

func writeBookingError(w http.ResponseWriter, err error) {
	var rejected *service.SlotRejectedError
	switch {
	case errors.As(err, &rejected):
		httperrors.WriteJSON(w, httperrors.ErrConflict(rejected.Error()))
	case errors.Is(err, sql.ErrNoRows):
		httperrors.WriteJSON(w, httperrors.ErrNotFound("appointment not found"))
	default:
		httperrors.WriteJSON(w, httperrors.ErrBadRequest(err.Error()))
	}
}
