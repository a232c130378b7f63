package api

import (
	"encoding/json"
	"net/http"

	"bellezza/internal/entities"
	httperrors "bellezza/internal/errors"
	"bellezza/internal/schedule"
	"bellezza/internal/service"

	"github.com/gorilla/mux"
)

type AvailabilityHandler struct {
	Service *service.AvailabilityService
}

func NewAvailabilityHandler(svc *service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{Service: svc}
}

// GetDaySchedule handles GET /api/availability/day/{date}?service_id=&employee_id=
func (h *AvailabilityHandler) GetDaySchedule(w http.ResponseWriter, r *http.Request) {
	date, err := schedule.ParseDate(mux.Vars(r)["date"])
	if err != nil {
		httperrors.WriteJSON(w, httperrors.ErrBadRequest("invalid date, expected YYYY-MM-DD"))
		return
	}
	serviceID, ok := intQuery(r, "service_id")
	if !ok {
		httperrors.WriteJSON(w, httperrors.ErrBadRequest("service_id is required"))
		return
	}

	day, err := h.Service.DaySchedule(date, serviceID, r.URL.Query().Get("employee_id"))
	if err != nil {
		httperrors.WriteJSON(w, httperrors.ErrBadRequest(err.Error()))
		return
	}
	json.NewEncoder(w).Encode(day)
}

// GetWeekSchedule handles GET /api/availability/week/{date}?service_id=&employee_id=
// The date may be any day; the schedule starts on that week's Monday.
func (h *AvailabilityHandler) GetWeekSchedule(w http.ResponseWriter, r *http.Request) {
	anchor, err := schedule.ParseDate(mux.Vars(r)["date"])
	if err != nil {
		httperrors.WriteJSON(w, httperrors.ErrBadRequest("invalid date, expected YYYY-MM-DD"))
		return
	}
	serviceID, ok := intQuery(r, "service_id")
	if !ok {
		httperrors.WriteJSON(w, httperrors.ErrBadRequest("service_id is required"))
		return
	}

	week, err := h.Service.WeekSchedule(anchor, serviceID, r.URL.Query().Get("employee_id"))
	if err != nil {
		httperrors.WriteJSON(w, httperrors.ErrBadRequest(err.Error()))
		return
	}
	json.NewEncoder(w).Encode(week)
}

// ValidateSlot handles POST /api/availability/validate
func (h *AvailabilityHandler) ValidateSlot(w http.ResponseWriter, r *http.Request) {
	var req entities.SlotValidationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.WriteJSON(w, httperrors.ErrBadRequest("invalid request body"))
		return
	}

	check, err := h.Service.ValidateSlot(req)
	if err != nil {
		httperrors.WriteJSON(w, httperrors.ErrBadRequest(err.Error()))
		return
	}
	json.NewEncoder(w).Encode(entities.SlotValidationResponse{
		Valid:  check.Valid,
		Reason: string(check.Reason),
	})
}
