package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"bellezza/internal/db"
	"bellezza/internal/entities"
	httperrors "bellezza/internal/errors"
	"bellezza/internal/schedule"
	"bellezza/internal/service"

	"github.com/gorilla/mux"
)

type AdminHandler struct {
	Admin    *service.AdminService
	Booking  *service.BookingService
	Checkout *service.CheckoutService
}

func NewAdminHandler(admin *service.AdminService, booking *service.BookingService, checkout *service.CheckoutService) *AdminHandler {
	return &AdminHandler{Admin: admin, Booking: booking, Checkout: checkout}
}

// ListAppointments handles GET /admin/appointments?date=&employee_id=&status=&limit=&offset=
func (h *AdminHandler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))

	list, err := h.Admin.ListAppointments(q.Get("date"), q.Get("employee_id"), q.Get("status"), limit, offset)
	if err != nil {
		httperrors.WriteJSON(w, httperrors.ErrBadRequest(err.Error()))
		return
	}
	json.NewEncoder(w).Encode(list)
}

// ConfirmAppointment handles POST /admin/appointments/{code}/confirm
func (h *AdminHandler) ConfirmAppointment(w http.ResponseWriter, r *http.Request) {
	resp, err := h.Booking.ConfirmAppointment(mux.Vars(r)["code"])
	if err != nil {
		writeBookingError(w, err)
		return
	}
	json.NewEncoder(w).Encode(resp)
}

// MarkNoShow handles POST /admin/appointments/{code}/no-show
func (h *AdminHandler) MarkNoShow(w http.ResponseWriter, r *http.Request) {
	if err := h.Admin.MarkNoShow(mux.Vars(r)["code"]); err != nil {
		writeBookingError(w, err)
		return
	}
	json.NewEncoder(w).Encode(map[string]string{"message": "Appointment marked as no-show."})
}

func (h *AdminHandler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Admin.ListEmployees(r.URL.Query().Get("active") == "true")
	if err != nil {
		httperrors.WriteJSON(w, httperrors.ErrBadRequest(err.Error()))
		return
	}
	json.NewEncoder(w).Encode(employees)
}

func (h *AdminHandler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FullName string `json:"full_name"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.WriteJSON(w, httperrors.ErrBadRequest("invalid request body"))
		return
	}
	employee, err := h.Admin.CreateEmployee(req.FullName, req.Email, req.Phone)
	if err != nil {
		httperrors.WriteJSON(w, httperrors.ErrBadRequest(err.Error()))
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(employee)
}

func (h *AdminHandler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	var employee db.Employee
	if err := json.NewDecoder(r.Body).Decode(&employee); err != nil {
		httperrors.WriteJSON(w, httperrors.ErrBadRequest("invalid request body"))
		return
	}
	employee.ID = mux.Vars(r)["id"]
	if err := h.Admin.UpdateEmployee(&employee); err != nil {
		httperrors.WriteJSON(w, httperrors.ErrBadRequest(err.Error()))
		return
	}
	json.NewEncoder(w).Encode(map[string]string{"message": "Employee updated."})
}

// CreateLeaveRequest handles POST /admin/employees/{id}/leave
func (h *AdminHandler) CreateLeaveRequest(w http.ResponseWriter, r *http.Request) {
	var req struct {
		StartDate string `json:"start_date"`
		EndDate   string `json:"end_date"`
		Reason    string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.WriteJSON(w, httperrors.ErrBadRequest("invalid request body"))
		return
	}
	leave, err := h.Admin.CreateLeaveRequest(mux.Vars(r)["id"], req.StartDate, req.EndDate, req.Reason)
	if err != nil {
		httperrors.WriteJSON(w, httperrors.ErrBadRequest(err.Error()))
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(leave)
}

func (h *AdminHandler) ListLeaveRequests(w http.ResponseWriter, r *http.Request) {
	leaves, err := h.Admin.ListLeaveRequests(r.URL.Query().Get("status"))
	if err != nil {
		httperrors.WriteJSON(w, httperrors.ErrBadRequest(err.Error()))
		return
	}
	json.NewEncoder(w).Encode(leaves)
}

// SetLeaveStatus handles PUT /admin/leave/{id}
func (h *AdminHandler) SetLeaveStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		httperrors.WriteJSON(w, httperrors.ErrBadRequest("invalid leave request id"))
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.WriteJSON(w, httperrors.ErrBadRequest("invalid request body"))
		return
	}
	if err := h.Admin.SetLeaveStatus(id, req.Status); err != nil {
		httperrors.WriteJSON(w, httperrors.ErrBadRequest(err.Error()))
		return
	}
	json.NewEncoder(w).Encode(map[string]string{"message": "Leave request updated."})
}

func (h *AdminHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.Admin.ListServices(r.URL.Query().Get("active") == "true")
	if err != nil {
		httperrors.WriteJSON(w, httperrors.ErrBadRequest(err.Error()))
		return
	}
	json.NewEncoder(w).Encode(services)
}

func (h *AdminHandler) CreateService(w http.ResponseWriter, r *http.Request) {
	var svc db.Service
	if err := json.NewDecoder(r.Body).Decode(&svc); err != nil {
		httperrors.WriteJSON(w, httperrors.ErrBadRequest("invalid request body"))
		return
	}
	if err := h.Admin.CreateService(&svc); err != nil {
		httperrors.WriteJSON(w, httperrors.ErrBadRequest(err.Error()))
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(svc)
}

func (h *AdminHandler) UpdateService(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		httperrors.WriteJSON(w, httperrors.ErrBadRequest("invalid service id"))
		return
	}
	var svc db.Service
	if err := json.NewDecoder(r.Body).Decode(&svc); err != nil {
		httperrors.WriteJSON(w, httperrors.ErrBadRequest("invalid request body"))
		return
	}
	svc.ID = id
	if err := h.Admin.UpdateService(&svc); err != nil {
		httperrors.WriteJSON(w, httperrors.ErrBadRequest(err.Error()))
		return
	}
	json.NewEncoder(w).Encode(map[string]string{"message": "Service updated."})
}

// GetOpeningHours handles GET /admin/opening-hours
func (h *AdminHandler) GetOpeningHours(w http.ResponseWriter, r *http.Request) {
	hours, err := h.Admin.GetOpeningHours()
	if err != nil {
		httperrors.WriteJSON(w, httperrors.ErrBadRequest(err.Error()))
		return
	}
	raw, err := schedule.MarshalWeekHours(hours)
	if err != nil {
		httperrors.WriteJSON(w, httperrors.ErrBadRequest(err.Error()))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(raw)
}

// UpdateOpeningHours handles PUT /admin/opening-hours with the raw weekly
// hours JSON as the body.
func (h *AdminHandler) UpdateOpeningHours(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		httperrors.WriteJSON(w, httperrors.ErrBadRequest("could not read request body"))
		return
	}
	if err := h.Admin.UpdateOpeningHours(raw); err != nil {
		httperrors.WriteJSON(w, httperrors.ErrBadRequest(err.Error()))
		return
	}
	json.NewEncoder(w).Encode(map[string]string{"message": "Opening hours updated."})
}

func (h *AdminHandler) ListClosures(w http.ResponseWriter, r *http.Request) {
	closures, err := h.Admin.ListClosures()
	if err != nil {
		httperrors.WriteJSON(w, httperrors.ErrBadRequest(err.Error()))
		return
	}
	json.NewEncoder(w).Encode(closures)
}

func (h *AdminHandler) CreateClosure(w http.ResponseWriter, r *http.Request) {
	var req struct {
		StartDate string `json:"start_date"`
		EndDate   string `json:"end_date"`
		Reason    string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.WriteJSON(w, httperrors.ErrBadRequest("invalid request body"))
		return
	}
	closure, err := h.Admin.CreateClosure(req.StartDate, req.EndDate, req.Reason)
	if err != nil {
		httperrors.WriteJSON(w, httperrors.ErrBadRequest(err.Error()))
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(closure)
}

func (h *AdminHandler) DeleteClosure(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		httperrors.WriteJSON(w, httperrors.ErrBadRequest("invalid closure id"))
		return
	}
	if err := h.Admin.DeleteClosure(id); err != nil {
		httperrors.WriteJSON(w, httperrors.ErrBadRequest(err.Error()))
		return
	}
	json.NewEncoder(w).Encode(map[string]string{"message": "Closure deleted."})
}

func (h *AdminHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.Admin.ListProducts(r.URL.Query().Get("active") == "true")
	if err != nil {
		httperrors.WriteJSON(w, httperrors.ErrBadRequest(err.Error()))
		return
	}
	json.NewEncoder(w).Encode(products)
}

func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var product db.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		httperrors.WriteJSON(w, httperrors.ErrBadRequest("invalid request body"))
		return
	}
	if err := h.Admin.CreateProduct(&product); err != nil {
		httperrors.WriteJSON(w, httperrors.ErrBadRequest(err.Error()))
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(product)
}

// AdjustStock handles POST /admin/products/{id}/stock with {"delta": n}.
func (h *AdminHandler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		httperrors.WriteJSON(w, httperrors.ErrBadRequest("invalid product id"))
		return
	}
	var req struct {
		Delta int `json:"delta"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.WriteJSON(w, httperrors.ErrBadRequest("invalid request body"))
		return
	}
	if err := h.Admin.AdjustStock(id, req.Delta); err != nil {
		httperrors.WriteJSON(w, httperrors.ErrConflict(err.Error()))
		return
	}
	json.NewEncoder(w).Encode(map[string]string{"message": "Stock adjusted."})
}

func (h *AdminHandler) ListLowStock(w http.ResponseWriter, r *http.Request) {
	products, err := h.Admin.ListLowStock()
	if err != nil {
		httperrors.WriteJSON(w, httperrors.ErrBadRequest(err.Error()))
		return
	}
	json.NewEncoder(w).Encode(products)
}

// CreateSale handles POST /admin/sales, the point-of-sale checkout.
func (h *AdminHandler) CreateSale(w http.ResponseWriter, r *http.Request) {
	var req entities.SaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.WriteJSON(w, httperrors.ErrBadRequest("invalid request body"))
		return
	}
	resp, err := h.Checkout.CreateSale(&req)
	if err != nil {
		httperrors.WriteJSON(w, httperrors.ErrBadRequest(err.Error()))
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(resp)
}

func (h *AdminHandler) GetSale(w http.ResponseWriter, r *http.Request) {
	sale, items, err := h.Checkout.GetSale(mux.Vars(r)["id"])
	if err != nil {
		httperrors.WriteJSON(w, httperrors.ErrNotFound("sale not found"))
		return
	}
	json.NewEncoder(w).Encode(map[string]interface{}{
		"sale":  sale,
		"items": items,
	})
}

// DailyReport handles GET /admin/reports/daily/{date}
func (h *AdminHandler) DailyReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.Admin.DailyReport(mux.Vars(r)["date"])
	if err != nil {
		httperrors.WriteJSON(w, httperrors.ErrBadRequest(err.Error()))
		return
	}
	json.NewEncoder(w).Encode(report)
}
