package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/workpulse/hr-backend-go/internal/domain/worklocation"
	"github.com/workpulse/hr-backend-go/internal/handler/http/response"
)

type WorkLocationHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Deactivate(w http.ResponseWriter, r *http.Request)
}

type workLocationHandlerImpl struct {
	workLocationService worklocation.Service
}

func NewWorkLocationHandler(workLocationService worklocation.Service) WorkLocationHandler {
	return &workLocationHandlerImpl{
		workLocationService: workLocationService,
	}
}

// List implements WorkLocationHandler.
func (h *workLocationHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.workLocationService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Get implements WorkLocationHandler.
func (h *workLocationHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.workLocationService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Create implements WorkLocationHandler. Admin only.
func (h *workLocationHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req worklocation.CreateWorkLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format")
		return
	}

	result, err := h.workLocationService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Work location created", result)
}

// Update implements WorkLocationHandler. Admin only.
func (h *workLocationHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req worklocation.UpdateWorkLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format")
		return
	}

	req.ID = chi.URLParam(r, "id")

	result, err := h.workLocationService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Work location updated", result)
}

// Deactivate implements WorkLocationHandler. Admin only.
func (h *workLocationHandlerImpl) Deactivate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.workLocationService.Deactivate(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Work location deactivated", nil)
}
