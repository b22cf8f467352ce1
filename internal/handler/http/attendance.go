package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/workpulse/hr-backend-go/internal/domain/attendance"
	"github.com/workpulse/hr-backend-go/internal/handler/http/middleware"
	"github.com/workpulse/hr-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	GetToday(w http.ResponseWriter, r *http.Request)
	ListHistory(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	AdminUpdate(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.Service
}

func NewAttendanceHandler(attendanceService attendance.Service) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// CheckIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	usr, ok := middleware.CurrentUser(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req attendance.CheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format")
		return
	}

	req.UserID = usr.ID
	// A position typed in by hand would arrive the same way; the
	// client marks the fix as device-sourced.
	req.GPSVerified = req.Position != nil

	result, err := h.attendanceService.CheckIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Checked in", result)
}

// CheckOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	usr, ok := middleware.CurrentUser(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req attendance.CheckOutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format")
		return
	}

	req.UserID = usr.ID
	req.GPSVerified = req.Position != nil

	result, err := h.attendanceService.CheckOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Checked out", result)
}

// GetToday implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetToday(w http.ResponseWriter, r *http.Request) {
	usr, ok := middleware.CurrentUser(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	result, err := h.attendanceService.GetToday(r.Context(), usr.ID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	// No record yet today is a normal answer, not a 404.
	response.Success(w, result)
}

// ListHistory implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListHistory(w http.ResponseWriter, r *http.Request) {
	usr, ok := middleware.CurrentUser(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	filter := attendance.HistoryFilter{}
	query := r.URL.Query()

	if v := query.Get("start_date"); v != "" {
		filter.StartDate = &v
	}
	if v := query.Get("end_date"); v != "" {
		filter.EndDate = &v
	}
	if v := query.Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil {
			response.BadRequest(w, "page must be a number")
			return
		}
		filter.Page = page
	}
	if v := query.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			response.BadRequest(w, "limit must be a number")
			return
		}
		filter.Limit = limit
	}

	result, err := h.attendanceService.ListHistory(r.Context(), usr.ID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Records, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}

// Get implements AttendanceHandler. Admin only.
func (h *attendanceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.attendanceService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// AdminUpdate implements AttendanceHandler. Admin only.
func (h *attendanceHandlerImpl) AdminUpdate(w http.ResponseWriter, r *http.Request) {
	usr, ok := middleware.CurrentUser(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req attendance.AdminUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format")
		return
	}

	req.ID = chi.URLParam(r, "id")
	req.EditorID = usr.ID

	result, err := h.attendanceService.AdminUpdate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance record updated", result)
}
